package progress

import (
	"context"
	"testing"

	progressdto "liftlog/internal/modules/progress/dto"
)

type capturePort struct {
	splitID   string
	unit      string
	maxPoints int
}

func (p *capturePort) Chart(_ context.Context, splitID, unit string, maxPoints int) (progressdto.ChartOutput, error) {
	p.splitID = splitID
	p.unit = unit
	p.maxPoints = maxPoints
	return progressdto.ChartOutput{Unit: "kg", MaxValue: 10}, nil
}

func TestLoadChartPassesConfiguredWindow(t *testing.T) {
	t.Parallel()

	port := &capturePort{}
	m := New(port, 20)
	m.splitID = "split-1"
	m.unit = "lb"

	msg := m.loadChartCmd()()
	loaded, ok := msg.(ChartLoadedMsg)
	if !ok {
		t.Fatalf("got %T, want ChartLoadedMsg", msg)
	}
	if loaded.Err != nil {
		t.Fatalf("load: %v", loaded.Err)
	}
	if port.maxPoints != 20 {
		t.Fatalf("maxPoints = %d, want 20", port.maxPoints)
	}
	if port.splitID != "split-1" || port.unit != "lb" {
		t.Fatalf("port got (%q, %q), want (split-1, lb)", port.splitID, port.unit)
	}
}

func TestLoadChartZeroWindowLeavesDefaultToEngine(t *testing.T) {
	t.Parallel()

	port := &capturePort{}
	m := New(port, 0)

	m.loadChartCmd()()
	if port.maxPoints != 0 {
		t.Fatalf("maxPoints = %d, want 0", port.maxPoints)
	}
}
