package out

import (
	"context"

	"liftlog/internal/modules/progress/domain"
	progressout "liftlog/internal/modules/progress/port/out"
	sessionin "liftlog/internal/modules/session/port/in"
)

// SessionHistoryBridge adapts the session module's history listing to the
// loosely-shaped samples the chart pipeline filters.
type SessionHistoryBridge struct {
	sessions sessionin.Usecase
}

func NewSessionHistoryBridge(sessions sessionin.Usecase) progressout.HistorySource {
	return &SessionHistoryBridge{sessions: sessions}
}

func (b *SessionHistoryBridge) ListSamples(ctx context.Context, splitID string) ([]domain.SessionSample, error) {
	workouts, err := b.sessions.ListHistory(ctx, splitID)
	if err != nil {
		return nil, err
	}
	samples := make([]domain.SessionSample, 0, len(workouts))
	for _, workout := range workouts {
		volume := workout.TotalVolumeKg
		samples = append(samples, domain.SessionSample{
			StartedAt:     workout.StartedAt,
			TotalVolumeKg: &volume,
		})
	}
	return samples, nil
}
