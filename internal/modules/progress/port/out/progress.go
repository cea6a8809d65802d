package out

import (
	"context"

	"liftlog/internal/modules/progress/domain"
	"liftlog/internal/platform/units"
)

// HistorySource supplies raw session samples for charting. An empty splitID
// means all sessions.
type HistorySource interface {
	ListSamples(ctx context.Context, splitID string) ([]domain.SessionSample, error)
}

// UnitSource yields the user's display-unit preference.
type UnitSource interface {
	DisplayUnit(ctx context.Context) (units.Unit, error)
}
