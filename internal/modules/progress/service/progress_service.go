package service

import (
	"context"
	"strings"

	"liftlog/internal/modules/progress/domain"
	progressout "liftlog/internal/modules/progress/port/out"
	"liftlog/internal/platform/units"
)

// ProgressService turns session history into labeled chart series.
type ProgressService struct {
	history progressout.HistorySource
	prefs   progressout.UnitSource
}

func NewProgressService(history progressout.HistorySource, prefs progressout.UnitSource) *ProgressService {
	return &ProgressService{history: history, prefs: prefs}
}

// BuildChart assembles the volume series for a split. An empty unit falls
// back to the stored preference; maxPoints <= 0 uses the default window.
func (s *ProgressService) BuildChart(ctx context.Context, splitID, rawUnit string, maxPoints int) (domain.Series, error) {
	unit, err := s.resolveUnit(ctx, rawUnit)
	if err != nil {
		return domain.Series{}, err
	}
	samples, err := s.history.ListSamples(ctx, splitID)
	if err != nil {
		return domain.Series{}, err
	}
	if maxPoints <= 0 {
		maxPoints = domain.DefaultRecentSessions
	}
	series := domain.BuildSeries(samples, unit, maxPoints)
	domain.ApplyDensityLabels(series.Points)
	return series, nil
}

func (s *ProgressService) resolveUnit(ctx context.Context, raw string) (units.Unit, error) {
	if strings.TrimSpace(raw) != "" {
		return units.Parse(raw)
	}
	return s.prefs.DisplayUnit(ctx)
}
