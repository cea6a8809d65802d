package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"liftlog/internal/modules/split/domain"
	splitout "liftlog/internal/modules/split/port/out"
	apperrors "liftlog/internal/platform/errors"
	"liftlog/internal/platform/markdown"
)

type VaultSplitStore struct {
	vaultPath string
}

func NewVaultSplitStore(vaultPath string) splitout.SplitStore {
	return &VaultSplitStore{vaultPath: vaultPath}
}

func (s *VaultSplitStore) Save(_ context.Context, document domain.SplitDocument) (string, error) {
	split := document.Split
	notePath := filepath.Join(s.vaultPath, "splits", split.Slug+".md")
	if err := os.MkdirAll(filepath.Dir(notePath), 0o755); err != nil {
		return "", fmt.Errorf("create splits directory: %w", err)
	}

	body := document.Body
	if existing, err := os.ReadFile(notePath); err == nil {
		_, existingBody, splitErr := markdown.SplitFrontmatter(string(existing))
		if splitErr == nil && strings.TrimSpace(body) == "" {
			body = existingBody
		}
	}
	if strings.TrimSpace(body) == "" {
		body = "## Notes\n\n## Progression\n"
	}

	schedule := make([]string, 0, len(split.Weekdays))
	for _, day := range split.Weekdays {
		schedule = append(schedule, "- "+day.String())
	}
	body = markdown.ReplaceManagedBlock(body, domain.ManagedScheduleStart, domain.ManagedScheduleEnd, strings.Join(schedule, "\n"))

	rendered, err := markdown.RenderFrontmatter(toFrontmatter(split), body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(notePath, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write split note: %w", err)
	}
	return notePath, nil
}

func (s *VaultSplitStore) FindByID(ctx context.Context, id string) (domain.SplitDocument, error) {
	docs, err := s.List(ctx)
	if err != nil {
		return domain.SplitDocument{}, err
	}
	for _, doc := range docs {
		if doc.Split.ID == id {
			return doc, nil
		}
	}
	return domain.SplitDocument{}, apperrors.ErrNotFound
}

func (s *VaultSplitStore) List(_ context.Context) ([]domain.SplitDocument, error) {
	glob := filepath.Join(s.vaultPath, "splits", "*.md")
	matches, err := filepath.Glob(glob)
	if err != nil {
		return nil, fmt.Errorf("glob split notes: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.SplitDocument, 0, len(matches))
	for _, path := range matches {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		meta, body, splitErr := markdown.SplitFrontmatter(string(content))
		if splitErr != nil {
			return nil, fmt.Errorf("parse %s: %w", path, splitErr)
		}
		split, convErr := fromFrontmatter(meta, path)
		if convErr != nil {
			return nil, fmt.Errorf("decode split %s: %w", path, convErr)
		}
		out = append(out, domain.SplitDocument{Split: split, Body: body})
	}
	return out, nil
}

func toFrontmatter(split domain.Split) map[string]any {
	exercises := make([]map[string]any, 0, len(split.Exercises))
	for _, exercise := range split.Exercises {
		exercises = append(exercises, map[string]any{
			"name":        exercise.Name,
			"target_sets": exercise.TargetSets,
			"target_reps": exercise.TargetReps,
		})
	}
	return map[string]any{
		"schema_version":  domain.SchemaVersion,
		"id":              split.ID,
		"name":            split.Name,
		"color":           split.Color,
		"days":            domain.WeekdayNames(split.Weekdays),
		"exercises":       exercises,
		"status":          split.Status,
		"added_at":        split.AddedAt.Format(time.RFC3339),
		"updated_at":      split.UpdatedAt.Format(time.RFC3339),
		"last_workout_id": split.LastWorkoutID,
	}
}

func fromFrontmatter(meta map[string]any, notePath string) (domain.Split, error) {
	split := domain.Split{
		ID:            asString(meta["id"]),
		Name:          asString(meta["name"]),
		Color:         asString(meta["color"]),
		Status:        asString(meta["status"]),
		LastWorkoutID: asString(meta["last_workout_id"]),
	}
	split.Slug = strings.TrimSuffix(filepath.Base(notePath), filepath.Ext(notePath))

	days, err := domain.ParseWeekdays(asStringSlice(meta["days"]))
	if err != nil {
		return domain.Split{}, err
	}
	split.Weekdays = days

	for _, item := range asSlice(meta["exercises"]) {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		split.Exercises = append(split.Exercises, domain.Exercise{
			Name:       asString(entry["name"]),
			TargetSets: int(asFloat(entry["target_sets"])),
			TargetReps: int(asFloat(entry["target_reps"])),
		})
	}

	addedAt, _ := time.Parse(time.RFC3339, asString(meta["added_at"]))
	updatedAt, _ := time.Parse(time.RFC3339, asString(meta["updated_at"]))
	split.AddedAt = addedAt
	split.UpdatedAt = updatedAt

	if err := split.Validate(); err != nil {
		return domain.Split{}, err
	}
	return split, nil
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	default:
		return fmt.Sprint(v)
	}
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
	if v == nil {
		return nil
	}
	if x, ok := v.([]any); ok {
		return x
	}
	return nil
}

func asStringSlice(v any) []string {
	if v == nil {
		return nil
	}
	switch x := v.(type) {
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}
