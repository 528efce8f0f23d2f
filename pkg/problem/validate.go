package problem

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/aretw0/logicsim/pkg/circuit"
	"github.com/aretw0/logicsim/pkg/domain"
	"github.com/aretw0/logicsim/pkg/gatecount"
	"github.com/aretw0/logicsim/pkg/logic"
	"github.com/aretw0/logicsim/pkg/sequence"
)

// Validate checks the document and returns a *domain.AggregateError listing every failure.
// Candidates whose length differs from the cycle count are not errors: they never match.
func (p *Problem) Validate() error {
	var errs []error
	fail := func(key, reason string, value any) {
		errs = append(errs, &domain.ValidationError{Key: key, Reason: reason, Value: value})
	}

	switch p.Kind {
	case KindCounter:
		p.validateCounter(fail)
	case KindLatch:
		p.validateLatch(fail)
	case KindGates:
		if len(p.Gates) == 0 {
			fail("gates", "required", nil)
		}
		for k := range p.Gates {
			if _, err := gatecount.ParseKind(k); err != nil {
				fail("gates."+k, err.Error(), nil)
			}
		}
	case "":
		fail("kind", "required", nil)
	default:
		fail("kind", "must be counter, latch or gates", string(p.Kind))
	}

	if len(errs) > 0 {
		return &domain.AggregateError{Errors: errs}
	}
	return nil
}

func (p *Problem) validateCounter(fail func(string, string, any)) {
	switch {
	case p.Circuit == "" && p.Counter == nil:
		fail("circuit", "circuit or counter is required", nil)
	case p.Circuit != "" && p.Counter != nil:
		fail("counter", "cannot be combined with circuit", p.Circuit)
	}
	if p.Counter != nil {
		if len(p.Counter.FlipFlops) == 0 {
			fail("counter.flipflops", "required", nil)
		}
		for i, ff := range p.Counter.FlipFlops {
			if _, err := circuit.ParseSource(ff.J); err != nil {
				fail(fmt.Sprintf("counter.flipflops[%d].j", i), err.Error(), nil)
			}
			if _, err := circuit.ParseSource(ff.K); err != nil {
				fail(fmt.Sprintf("counter.flipflops[%d].k", i), err.Error(), nil)
			}
		}
		if p.Counter.Initial != "" {
			s, err := domain.ParseState(p.Counter.Initial)
			if err == nil {
				err = s.Validate()
			}
			if err != nil {
				fail("counter.initial", err.Error(), nil)
			}
		}
	}
	width := 0
	if p.Counter != nil {
		width = len(p.Counter.FlipFlops)
	}
	validateCandidates(p.Candidates, width, fail)
	if p.Cycles < 1 {
		fail("cycles", domain.ErrInvalidCycles.Error(), p.Cycles)
	}
	if _, err := sequence.ParsePolicy(p.Policy); err != nil {
		fail("policy", err.Error(), nil)
	}
}

func (p *Problem) validateLatch(fail func(string, string, any)) {
	if _, err := logic.ParseLatchKind(p.Latch); err != nil {
		fail("latch", err.Error(), nil)
	}
	if len(p.Initial) != 0 && len(p.Initial) != 2 {
		fail("initial", "must have 2 bits", len(p.Initial))
	}
	for i, b := range p.Initial {
		if _, err := domain.ParseBit(b); err != nil {
			fail(fmt.Sprintf("initial[%d]", i), err.Error(), nil)
		}
	}
	if len(p.Steps) == 0 {
		fail("steps", "required", nil)
	}
	for i, step := range p.Steps {
		if _, err := parseDrive(step); err != nil {
			fail(fmt.Sprintf("steps[%d]", i), err.Error(), nil)
		}
	}
	if len(p.Expect) != 0 && len(p.Expect) != len(p.Steps) {
		fail("expect", "must have one state per step", len(p.Expect))
	}
}

func parseDrive(step []string) (domain.Drive, error) {
	if len(step) != 2 {
		return domain.Drive{}, fmt.Errorf("drive needs 2 bits, got %d", len(step))
	}
	return domain.ParseDrive(strings.Join(step, ","))
}

// validateCandidates requires every candidate state to be a binary string.
// A width of 0 means the counter width is not known yet; shorter states are
// zero-padded when solved, longer ones can never match and are rejected.
func validateCandidates(candidates map[string][]string, width int, fail func(string, string, any)) {
	for _, name := range sortedNames(candidates) {
		for i, v := range candidates[name] {
			key := fmt.Sprintf("candidates.%s[%d]", name, i)
			st, err := domain.ParseState(v)
			if err == nil {
				err = st.Validate()
			}
			if err != nil {
				fail(key, "must be a binary state: "+err.Error(), v)
				continue
			}
			if width > 0 && st.Width() > width {
				fail(key, fmt.Sprintf("must have %d bits", width), v)
			}
		}
	}
}

func sortedNames(m map[string][]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
