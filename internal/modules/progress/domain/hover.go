package domain

import "time"

// LongPressDuration is how long a press must be held before inspection
// starts.
const LongPressDuration = 300 * time.Millisecond

// HoverPhase is the drag-to-inspect lifecycle phase.
type HoverPhase int

const (
	HoverIdle HoverPhase = iota
	HoverPendingLongPress
	HoverDragging
)

func (p HoverPhase) String() string {
	switch p {
	case HoverIdle:
		return "idle"
	case HoverPendingLongPress:
		return "pending"
	case HoverDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// HoverState is the interaction state of one chart instance. HoverIndex is
// -1 while no point is inspected. Generation identifies the current press so
// a long-press timer started for an earlier press is ignored when it fires.
type HoverState struct {
	Phase      HoverPhase
	HoverIndex int
	PressX     float64
	Generation int
}

func NewHoverState() HoverState {
	return HoverState{Phase: HoverIdle, HoverIndex: -1}
}

// HoverEvent is one of PressEvent, TimerElapsedEvent, MoveEvent,
// ReleaseEvent.
type HoverEvent interface{ isHoverEvent() }

type PressEvent struct{ X float64 }

// TimerElapsedEvent fires when the long-press timer for the identified
// press generation elapses.
type TimerElapsedEvent struct{ Generation int }

type MoveEvent struct{ X float64 }

type ReleaseEvent struct{}

func (PressEvent) isHoverEvent()        {}
func (TimerElapsedEvent) isHoverEvent() {}
func (MoveEvent) isHoverEvent()         {}
func (ReleaseEvent) isHoverEvent()      {}

// Transition is the pure step function of the drag lifecycle. indexAt maps
// a press x-coordinate to the nearest point index; it is only consulted
// when entering or moving within the dragging phase.
//
// Movement while the long press is still pending updates the tracked press
// position but never promotes to dragging early; only the timer does that.
// Releasing at any time returns to idle and clears the hover index.
func Transition(state HoverState, event HoverEvent, indexAt func(x float64) int) HoverState {
	switch ev := event.(type) {
	case PressEvent:
		state.Phase = HoverPendingLongPress
		state.PressX = ev.X
		state.HoverIndex = -1
		state.Generation++
		return state
	case TimerElapsedEvent:
		if state.Phase != HoverPendingLongPress || ev.Generation != state.Generation {
			return state
		}
		state.Phase = HoverDragging
		state.HoverIndex = indexAt(state.PressX)
		return state
	case MoveEvent:
		switch state.Phase {
		case HoverPendingLongPress:
			state.PressX = ev.X
		case HoverDragging:
			state.PressX = ev.X
			state.HoverIndex = indexAt(ev.X)
		}
		return state
	case ReleaseEvent:
		state.Phase = HoverIdle
		state.HoverIndex = -1
		return state
	default:
		return state
	}
}
