package problem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/logicsim/pkg/catalog"
	"github.com/aretw0/logicsim/pkg/circuit"
	"github.com/aretw0/logicsim/pkg/domain"
	"github.com/aretw0/logicsim/pkg/dsl"
	"github.com/aretw0/logicsim/pkg/gatecount"
	"github.com/aretw0/logicsim/pkg/logic"
	"github.com/aretw0/logicsim/pkg/sequence"
)

// Solution is the outcome of solving a problem. Exactly one of Counter, Latch or Gates is set.
type Solution struct {
	Kind    Kind             `json:"kind"`
	Title   string           `json:"title,omitempty"`
	Counter *CounterSolution `json:"counter,omitempty"`
	Latch   *LatchSolution   `json:"latch,omitempty"`
	Gates   *GateSolution    `json:"gates,omitempty"`

	// Expected is the document's answer; Correct is set only when Expected is.
	Expected string `json:"expected,omitempty"`
	Correct  *bool  `json:"correct,omitempty"`
}

// CounterSolution holds the trace, the per-candidate verdicts and the resolved answer.
type CounterSolution struct {
	Circuit string             `json:"circuit"`
	Result  domain.MatchResult `json:"result"`
	Answer  string             `json:"answer,omitempty"`
	// AnswerError explains why no single answer was selected.
	AnswerError string `json:"answer_error,omitempty"`
}

// LatchStep is one row of a latch truth-table walk.
type LatchStep struct {
	Drive   domain.Drive `json:"drive"`
	State   string       `json:"state"`
	Updates int          `json:"updates"`
}

// LatchSolution holds the state after each drive.
type LatchSolution struct {
	Kind    logic.LatchKind `json:"kind"`
	Initial string          `json:"initial"`
	Steps   []LatchStep     `json:"steps"`
}

// GateSolution holds the minimum gate count per kind.
type GateSolution struct {
	Counts map[string]int      `json:"counts"`
	Unique map[string][]string `json:"unique"`
	Total  int                 `json:"total"`
}

// Solver solves problems against a circuit catalog.
type Solver struct {
	Registry *catalog.Registry
	Hooks    domain.Hooks
	Logger   *slog.Logger
	// Policy, when set, overrides the document's answer policy.
	Policy sequence.Policy
}

// NewSolver returns a solver over the built-in catalog.
func NewSolver() *Solver {
	return &Solver{Registry: catalog.Default()}
}

func (s *Solver) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func (s *Solver) registry() *catalog.Registry {
	if s.Registry == nil {
		s.Registry = catalog.Default()
	}
	return s.Registry
}

// Solve validates and solves a problem.
func (s *Solver) Solve(ctx context.Context, p *Problem) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sol := &Solution{Kind: p.Kind, Title: p.Title, Expected: p.Answer}
	var err error
	switch p.Kind {
	case KindCounter:
		sol.Counter, err = s.solveCounter(ctx, p)
		if err == nil && p.Answer != "" {
			correct := strings.EqualFold(sol.Counter.Answer, p.Answer)
			sol.Correct = &correct
		}
	case KindLatch:
		sol.Latch, err = s.solveLatch(ctx, p)
		if err == nil && len(p.Expect) > 0 {
			correct := true
			for i, st := range sol.Latch.Steps {
				want, perr := domain.ParseState(p.Expect[i])
				if perr != nil || want.String() != st.State {
					correct = false
				}
			}
			sol.Correct = &correct
		}
	case KindGates:
		sol.Gates, err = SolveGates(p.Gates)
	}
	if err != nil {
		return nil, err
	}

	s.logger().Info("problem solved", "kind", p.Kind, "title", p.Title)
	return sol, nil
}

func (s *Solver) solveCounter(ctx context.Context, p *Problem) (*CounterSolution, error) {
	var (
		counter *circuit.Counter
		err     error
	)
	if p.Counter != nil {
		counter, err = buildCounter(p.Counter)
	} else {
		counter, err = s.registry().Counter(p.Circuit)
	}
	if err != nil {
		return nil, err
	}

	trace, err := sequence.Simulate(ctx, counter, p.Cycles,
		sequence.WithHooks(s.Hooks),
		sequence.WithLogger(s.logger()),
	)
	if err != nil {
		return nil, err
	}

	padded := padCandidates(p.Candidates, counter.Width())
	var errs []error
	validateCandidates(padded, counter.Width(), func(key, reason string, value any) {
		errs = append(errs, &domain.ValidationError{Key: key, Reason: reason, Value: value})
	})
	if len(errs) > 0 {
		return nil, &domain.AggregateError{Errors: errs}
	}
	candidates := sequence.Candidates(padded)
	policy := s.Policy
	if policy == "" {
		policy, _ = sequence.ParsePolicy(p.Policy)
	}
	return s.Answer(ctx, counter.Name, trace.Strings(), candidates, policy), nil
}

// Answer matches a trace against candidates, emits the match event and resolves the answer.
// Resolution failures (no match, ambiguity) are reported in AnswerError, not as errors.
func (s *Solver) Answer(ctx context.Context, name string, trace []string, candidates []domain.Candidate, policy sequence.Policy) *CounterSolution {
	res := sequence.Match(trace, candidates)
	if s.Hooks.OnMatch != nil {
		s.Hooks.OnMatch(ctx, &domain.MatchEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventMatch, Circuit: name},
			Result:    res,
		})
	}

	out := &CounterSolution{Circuit: name, Result: res}
	answer, err := sequence.Resolve(res, policy)
	if err != nil {
		out.AnswerError = err.Error()
		if !errors.Is(err, domain.ErrNoMatch) {
			s.logger().Warn("ambiguous answer", "circuit", name, "matches", res.Matches)
		}
		return out
	}
	out.Answer = answer
	return out
}

func (s *Solver) solveLatch(ctx context.Context, p *Problem) (*LatchSolution, error) {
	kind, err := logic.ParseLatchKind(p.Latch)
	if err != nil {
		return nil, err
	}
	initial := domain.NewState(domain.Unknown, domain.Unknown)
	for i, raw := range p.Initial {
		if initial[i], err = domain.ParseBit(raw); err != nil {
			return nil, fmt.Errorf("initial: %w", err)
		}
	}

	drives := make([]domain.Drive, len(p.Steps))
	for i, step := range p.Steps {
		if drives[i], err = parseDrive(step); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	steps, err := s.StepLatch(ctx, kind, initial, drives...)
	if err != nil {
		return nil, err
	}
	return &LatchSolution{Kind: kind, Initial: initial.String(), Steps: steps}, nil
}

// StepLatch applies each drive to the latch in turn and emits a latch event per step.
func (s *Solver) StepLatch(ctx context.Context, kind logic.LatchKind, initial domain.State, drives ...domain.Drive) ([]LatchStep, error) {
	out := make([]LatchStep, 0, len(drives))
	q := initial
	for i, d := range drives {
		next, updates, err := logic.Latch(kind, d, q)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		if s.Hooks.OnLatchStep != nil {
			s.Hooks.OnLatchStep(ctx, &domain.LatchEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventLatchStep, Circuit: string(kind) + "-latch"},
				Kind:      string(kind),
				Drive:     d,
				From:      q,
				To:        next,
				Steps:     updates,
			})
		}
		s.logger().Debug("latch stepped", "kind", kind, "drive", d.String(), "from", q.String(), "to", next.String(), "updates", updates)
		out = append(out, LatchStep{Drive: d, State: next.String(), Updates: updates})
		q = next
	}
	return out, nil
}

// SolveGates counts the distinct gates of a kind -> expressions map.
func SolveGates(gates map[string][]string) (*GateSolution, error) {
	n, err := gatecount.FromMap(gates)
	if err != nil {
		return nil, err
	}
	sol := &GateSolution{
		Counts: make(map[string]int),
		Unique: make(map[string][]string),
		Total:  n.Total(),
	}
	for kind, c := range n.Count() {
		sol.Counts[string(kind)] = c
		sol.Unique[string(kind)] = n.Unique(kind)
	}
	return sol, nil
}

func buildCounter(spec *CounterSpec) (*circuit.Counter, error) {
	name := spec.Name
	if name == "" {
		name = "inline"
	}
	b := dsl.NewCounter(name).Initial(spec.Initial)
	for _, ff := range spec.FlipFlops {
		b.FlipFlop().J(ff.J).K(ff.K)
	}
	return b.Build()
}

// padCandidates left-pads encodings that lost leading zeros as JSON numbers (01 -> 1).
func padCandidates(in map[string][]string, width int) map[string][]string {
	out := make(map[string][]string, len(in))
	for name, seq := range in {
		padded := make([]string, len(seq))
		for i, v := range seq {
			v = strings.TrimSpace(v)
			if len(v) < width {
				v = strings.Repeat("0", width-len(v)) + v
			}
			padded[i] = v
		}
		out[name] = padded
	}
	return out
}
