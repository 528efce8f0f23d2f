package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep      EventType = "step"
	EventTraceDone EventType = "trace_done"
	EventMatch     EventType = "match"
	EventLatchStep EventType = "latch_step"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Circuit   string    `json:"circuit,omitempty"`
}

// StepEvent is emitted once per simulated cycle.
type StepEvent struct {
	EventBase
	Cycle  int   `json:"cycle"`
	From   State `json:"from"`
	To     State `json:"to"`
	Inputs []JK  `json:"inputs,omitempty"`
}

// TraceEvent is emitted when a generator finalizes its trace.
type TraceEvent struct {
	EventBase
	Trace []string `json:"trace"`
}

// MatchEvent is emitted after a trace has been compared with the candidates.
type MatchEvent struct {
	EventBase
	Result MatchResult `json:"result"`
}

// LatchEvent is emitted after a drive is applied to a latch.
type LatchEvent struct {
	EventBase
	Kind  string `json:"kind"`
	Drive Drive  `json:"drive"`
	From  State  `json:"from"`
	To    State  `json:"to"`
	Steps int    `json:"steps"`
}

// Hooks defines callbacks for simulation observability.
// Nil callbacks are skipped.
type Hooks struct {
	OnStep      func(context.Context, *StepEvent)
	OnTraceDone func(context.Context, *TraceEvent)
	OnMatch     func(context.Context, *MatchEvent)
	OnLatchStep func(context.Context, *LatchEvent)
}

// Merge returns hooks that call h first and then other for every event.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnStep:      chain(h.OnStep, other.OnStep),
		OnTraceDone: chain(h.OnTraceDone, other.OnTraceDone),
		OnMatch:     chain(h.OnMatch, other.OnMatch),
		OnLatchStep: chain(h.OnLatchStep, other.OnLatchStep),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
