package main

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleNote = `---
schema_version: 1
id: workout-001
split_id: s1
split_name: Push Day
started_at: "2026-08-22T09:00:00Z"
sets:
  - exercise: bench press
    weight_kg: 100
    reps: 5
total_volume_kg: 1300
---

# Push Day
`

func TestParseWorkoutNote(t *testing.T) {
	t.Parallel()

	row, ok := parseWorkoutNote(sampleNote)
	if !ok {
		t.Fatal("expected note to parse")
	}
	if row.id != "workout-001" || row.splitID != "s1" {
		t.Fatalf("got (%q, %q), want (workout-001, s1)", row.id, row.splitID)
	}
	if row.volumeKg != 1300 {
		t.Fatalf("volume = %v, want 1300", row.volumeKg)
	}
}

func TestParseWorkoutNoteRejectsMissingID(t *testing.T) {
	t.Parallel()

	if _, ok := parseWorkoutNote("---\nsplit_id: s1\n---\n"); ok {
		t.Fatal("expected note without id to be skipped")
	}
}

func TestWorkoutRowsFiltersBySplit(t *testing.T) {
	t.Parallel()

	vault := t.TempDir()
	dir := filepath.Join(vault, "workouts", "2026", "08", "22")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "090000-push-day.md"), []byte(sampleNote), 0o644); err != nil {
		t.Fatalf("write note: %v", err)
	}
	other := "---\nid: workout-002\nsplit_id: s2\ntotal_volume_kg: 500\n---\n"
	if err := os.WriteFile(filepath.Join(dir, "180000-pull-day.md"), []byte(other), 0o644); err != nil {
		t.Fatalf("write note: %v", err)
	}

	rows, err := workoutRows(vault, "s1")
	if err != nil {
		t.Fatalf("workoutRows: %v", err)
	}
	if len(rows) != 1 || rows[0].id != "workout-001" {
		t.Fatalf("got %+v, want the single s1 workout", rows)
	}

	all, err := workoutRows(vault, "")
	if err != nil {
		t.Fatalf("workoutRows: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d rows, want 2", len(all))
	}
}

func TestWorkoutRowsEmptyVault(t *testing.T) {
	t.Parallel()

	rows, err := workoutRows(t.TempDir(), "")
	if err != nil {
		t.Fatalf("workoutRows: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("got %d rows, want 0", len(rows))
	}
}
