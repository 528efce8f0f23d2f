package sequence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/logicsim/pkg/circuit"
	"github.com/aretw0/logicsim/pkg/domain"
)

// Generator records the state of a counter before each of Cycles clock edges.
type Generator struct {
	counter *circuit.Counter
	cycles  int
	hooks   domain.Hooks
	logger  *slog.Logger

	trace domain.Trace
	done  bool
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithHooks registers observability hooks.
func WithHooks(h domain.Hooks) GeneratorOption {
	return func(g *Generator) {
		g.hooks = h
	}
}

// WithLogger sets a structured logger for step tracing.
func WithLogger(l *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = l
	}
}

// NewGenerator validates the counter and cycle count.
func NewGenerator(c *circuit.Counter, cycles int, opts ...GeneratorOption) (*Generator, error) {
	if c == nil || c.Rule == nil {
		return nil, fmt.Errorf("counter and feedback rule are required")
	}
	if cycles < 1 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidCycles, cycles)
	}
	if err := c.Initial.Validate(); err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}

	g := &Generator{counter: c, cycles: cycles}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.New(slog.DiscardHandler)
	}
	return g, nil
}

// Done reports whether the trace has been finalized.
func (g *Generator) Done() bool {
	return g.done
}

// Run steps the counter and returns the trace. Calling Run again returns the same trace.
// A cancelled context stops the run before the next cycle; the generator stays running.
func (g *Generator) Run(ctx context.Context) (domain.Trace, error) {
	if g.done {
		return g.trace, nil
	}

	trace := make(domain.Trace, 0, g.cycles)
	s := domain.NewState(g.counter.Initial...)
	for cycle := 0; cycle < g.cycles; cycle++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("cycle %d: %w", cycle, err)
		}
		trace = append(trace, s)
		next, in, err := g.counter.Step(s)
		if err != nil {
			return nil, fmt.Errorf("cycle %d: %w", cycle, err)
		}
		g.logger.Debug("step", "circuit", g.counter.Name, "cycle", cycle, "from", s.String(), "to", next.String())
		if g.hooks.OnStep != nil {
			g.hooks.OnStep(ctx, &domain.StepEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep, Circuit: g.counter.Name},
				Cycle:     cycle,
				From:      s,
				To:        next,
				Inputs:    in,
			})
		}
		s = next
	}

	g.trace = trace
	g.done = true
	if g.hooks.OnTraceDone != nil {
		g.hooks.OnTraceDone(ctx, &domain.TraceEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTraceDone, Circuit: g.counter.Name},
			Trace:     trace.Strings(),
		})
	}
	return g.trace, nil
}

// Simulate is a shorthand for NewGenerator followed by Run.
func Simulate(ctx context.Context, c *circuit.Counter, cycles int, opts ...GeneratorOption) (domain.Trace, error) {
	g, err := NewGenerator(c, cycles, opts...)
	if err != nil {
		return nil, err
	}
	return g.Run(ctx)
}
