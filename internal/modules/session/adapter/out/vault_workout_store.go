package out

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"liftlog/internal/modules/session/domain"
	sessionout "liftlog/internal/modules/session/port/out"
	"liftlog/internal/platform/markdown"
	"liftlog/internal/platform/slug"
)

type VaultWorkoutStore struct {
	vaultPath string
}

func NewVaultWorkoutStore(vaultPath string) sessionout.WorkoutStore {
	return &VaultWorkoutStore{vaultPath: vaultPath}
}

func (s *VaultWorkoutStore) Save(_ context.Context, workout domain.Workout) (string, error) {
	started := workout.StartedAt.UTC()
	name := fmt.Sprintf("%s-%s.md", started.Format("150405"), slug.Make(workout.SplitName))
	notePath := filepath.Join(s.vaultPath, "workouts", started.Format("2006"), started.Format("01"), started.Format("02"), name)
	if err := os.MkdirAll(filepath.Dir(notePath), 0o755); err != nil {
		return "", fmt.Errorf("create workout directory: %w", err)
	}

	body := renderSummary(workout)
	rendered, err := markdown.RenderFrontmatter(toFrontmatter(workout), body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(notePath, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write workout note: %w", err)
	}
	return notePath, nil
}

func (s *VaultWorkoutStore) List(ctx context.Context) ([]domain.Workout, error) {
	root := filepath.Join(s.vaultPath, "workouts")
	var workouts []domain.Workout
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("read %s: %w", path, readErr)
		}
		meta, _, splitErr := markdown.SplitFrontmatter(string(content))
		if splitErr != nil {
			return fmt.Errorf("parse %s: %w", path, splitErr)
		}
		workout, convErr := fromFrontmatter(meta)
		if convErr != nil {
			return fmt.Errorf("decode workout %s: %w", path, convErr)
		}
		workouts = append(workouts, workout)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(workouts, func(i, j int) bool {
		return workouts[i].StartedAt.Before(workouts[j].StartedAt)
	})
	return workouts, nil
}

func (s *VaultWorkoutStore) ListBySplit(ctx context.Context, splitID string) ([]domain.Workout, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Workout, 0, len(all))
	for _, workout := range all {
		if workout.SplitID == splitID {
			out = append(out, workout)
		}
	}
	return out, nil
}

func renderSummary(workout domain.Workout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", workout.SplitName)
	fmt.Fprintf(&b, "%d sets, %.1f kg total volume in %d min.\n", len(workout.Sets), workout.TotalVolumeKg, workout.DurationMin)
	return b.String()
}

func toFrontmatter(workout domain.Workout) map[string]any {
	sets := make([]map[string]any, 0, len(workout.Sets))
	for _, set := range workout.Sets {
		sets = append(sets, map[string]any{
			"exercise":  set.Exercise,
			"weight_kg": set.WeightKg,
			"reps":      set.Reps,
			"logged_at": set.LoggedAt.Format(time.RFC3339),
		})
	}
	return map[string]any{
		"schema_version":  domain.SchemaVersion,
		"id":              workout.ID,
		"split_id":        workout.SplitID,
		"split_name":      workout.SplitName,
		"started_at":      workout.StartedAt.Format(time.RFC3339),
		"ended_at":        workout.EndedAt.Format(time.RFC3339),
		"duration_min":    workout.DurationMin,
		"sets":            sets,
		"total_volume_kg": workout.TotalVolumeKg,
	}
}

func fromFrontmatter(meta map[string]any) (domain.Workout, error) {
	workout := domain.Workout{
		ID:            asString(meta["id"]),
		SplitID:       asString(meta["split_id"]),
		SplitName:     asString(meta["split_name"]),
		DurationMin:   int(asFloat(meta["duration_min"])),
		TotalVolumeKg: asFloat(meta["total_volume_kg"]),
	}
	startedAt, err := time.Parse(time.RFC3339, asString(meta["started_at"]))
	if err != nil {
		return domain.Workout{}, fmt.Errorf("bad started_at: %w", err)
	}
	endedAt, err := time.Parse(time.RFC3339, asString(meta["ended_at"]))
	if err != nil {
		return domain.Workout{}, fmt.Errorf("bad ended_at: %w", err)
	}
	workout.StartedAt = startedAt
	workout.EndedAt = endedAt

	for _, item := range asSlice(meta["sets"]) {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		loggedAt, _ := time.Parse(time.RFC3339, asString(entry["logged_at"]))
		workout.Sets = append(workout.Sets, domain.SetEntry{
			Exercise: asString(entry["exercise"]),
			WeightKg: asFloat(entry["weight_kg"]),
			Reps:     int(asFloat(entry["reps"])),
			LoggedAt: loggedAt,
		})
	}
	if err := workout.Validate(); err != nil {
		return domain.Workout{}, err
	}
	return workout, nil
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	if x, ok := v.(string); ok {
		return x
	}
	return fmt.Sprint(v)
}

func asFloat(v any) float64 {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float64:
		return x
	case float32:
		return float64(x)
	case string:
		var out float64
		_, _ = fmt.Sscanf(x, "%f", &out)
		return out
	default:
		return 0
	}
}

func asSlice(v any) []any {
	if x, ok := v.([]any); ok {
		return x
	}
	return nil
}
