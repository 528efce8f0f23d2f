package logicsim

import (
	"context"
	"log/slog"

	"github.com/aretw0/logicsim/pkg/analysis"
	"github.com/aretw0/logicsim/pkg/catalog"
	"github.com/aretw0/logicsim/pkg/circuit"
	"github.com/aretw0/logicsim/pkg/domain"
	"github.com/aretw0/logicsim/pkg/logic"
	"github.com/aretw0/logicsim/pkg/problem"
	"github.com/aretw0/logicsim/pkg/sequence"
)

// Simulator is the high-level entry point for the library.
// It wraps the catalog, the sequence generator and the problem solver behind one API.
type Simulator struct {
	registry *catalog.Registry
	hooks    domain.Hooks
	logger   *slog.Logger
	policy   sequence.Policy
	solver   *problem.Solver
}

// Option defines a functional option for configuring the Simulator.
type Option func(*Simulator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// WithHooks registers observability hooks. Repeated calls merge.
func WithHooks(hooks domain.Hooks) Option {
	return func(s *Simulator) {
		s.hooks = s.hooks.Merge(hooks)
	}
}

// WithCatalog replaces the built-in circuit catalog.
func WithCatalog(r *catalog.Registry) Option {
	return func(s *Simulator) {
		s.registry = r
	}
}

// WithPolicy sets how an answer is picked when candidates match (default strict).
// It overrides the policy named by problem documents.
func WithPolicy(p sequence.Policy) Option {
	return func(s *Simulator) {
		s.policy = p
	}
}

// New initializes a Simulator.
func New(opts ...Option) *Simulator {
	s := &Simulator{}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = catalog.Default()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	s.solver = &problem.Solver{
		Registry: s.registry,
		Hooks:    s.hooks,
		Logger:   s.logger,
		Policy:   s.policy,
	}
	return s
}

// Policy returns the effective answer policy.
func (s *Simulator) Policy() sequence.Policy {
	if s.policy == "" {
		return sequence.PolicyStrict
	}
	return s.policy
}

// Circuits lists the catalog entries sorted by name.
func (s *Simulator) Circuits() []catalog.Entry {
	return s.registry.List()
}

// Counter looks up a counter in the catalog.
func (s *Simulator) Counter(name string) (*circuit.Counter, error) {
	return s.registry.Counter(name)
}

// Simulate clocks a catalog counter for the given number of cycles.
func (s *Simulator) Simulate(ctx context.Context, name string, cycles int) (domain.Trace, error) {
	c, err := s.registry.Counter(name)
	if err != nil {
		return nil, err
	}
	return s.SimulateCounter(ctx, c, cycles)
}

// SimulateCounter clocks an arbitrary counter.
func (s *Simulator) SimulateCounter(ctx context.Context, c *circuit.Counter, cycles int) (domain.Trace, error) {
	return sequence.Simulate(ctx, c, cycles,
		sequence.WithHooks(s.hooks),
		sequence.WithLogger(s.logger.With("circuit", c.Name)),
	)
}

// Match reports, for every candidate, whether it is a cyclic rotation of the trace.
func (s *Simulator) Match(trace domain.Trace, candidates map[string][]string) domain.MatchResult {
	return sequence.Match(trace.Strings(), sequence.Candidates(candidates))
}

// Answer matches and resolves a single answer under the simulator's policy.
// The solution is returned even when resolution fails; the error is then
// ErrNoMatch or an *AmbiguityError.
func (s *Simulator) Answer(ctx context.Context, circuitName string, trace domain.Trace, candidates map[string][]string) (*problem.CounterSolution, error) {
	sol := s.solver.Answer(ctx, circuitName, trace.Strings(), sequence.Candidates(candidates), s.Policy())
	if sol.AnswerError != "" {
		_, err := sequence.Resolve(sol.Result, s.Policy())
		return sol, err
	}
	return sol, nil
}

// StepLatch applies each drive to a latch in turn, starting from initial.
func (s *Simulator) StepLatch(ctx context.Context, kind logic.LatchKind, initial domain.State, drives ...domain.Drive) ([]problem.LatchStep, error) {
	return s.solver.StepLatch(ctx, kind, initial, drives...)
}

// CountGates counts the distinct gates of each kind.
func (s *Simulator) CountGates(gates map[string][]string) (*problem.GateSolution, error) {
	return problem.SolveGates(gates)
}

// StableStates enumerates the latch states that hold under a drive.
func (s *Simulator) StableStates(kind logic.LatchKind, d domain.Drive) ([]domain.State, error) {
	return analysis.StableStates(kind, d)
}

// Solve validates and solves a problem document.
func (s *Simulator) Solve(ctx context.Context, p *problem.Problem) (*problem.Solution, error) {
	return s.solver.Solve(ctx, p)
}
