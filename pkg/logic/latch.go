package logic

import (
	"fmt"
	"strings"

	"github.com/aretw0/logicsim/pkg/domain"
)

// LatchKind selects the gate that forms the cross-coupled pair.
type LatchKind string

const (
	NAND LatchKind = "nand"
	NOR  LatchKind = "nor"
)

// MaxSettleSteps bounds the number of simultaneous updates Latch applies
// to resolve an unknown power-on pair before declaring it indeterminate.
const MaxSettleSteps = 8

// ParseLatchKind accepts "nand" or "nor" in any case.
func ParseLatchKind(s string) (LatchKind, error) {
	switch LatchKind(strings.ToLower(strings.TrimSpace(s))) {
	case NAND:
		return NAND, nil
	case NOR:
		return NOR, nil
	default:
		return "", fmt.Errorf("unknown latch kind %q (want nand or nor)", s)
	}
}

// Gate returns the two-input gate the latch is built from.
func (k LatchKind) Gate() func(a, b domain.Bit) domain.Bit {
	if k == NOR {
		return Nor
	}
	return Nand
}

func (k LatchKind) String() string {
	return strings.ToUpper(string(k))
}

// LatchStep applies one simultaneous update of the cross-coupled pair:
//
//	q1' = G(p1, q2)
//	q2' = G(p2, q1)
//
// Both outputs are computed from the pre-update pair. Unknown outputs are allowed.
func LatchStep(kind LatchKind, d domain.Drive, q domain.State) (domain.State, error) {
	if err := checkLatch(d, q); err != nil {
		return nil, err
	}
	g := kind.Gate()
	return domain.NewState(g(d.P1, q[1]), g(d.P2, q[0])), nil
}

// Latch evaluates the latch for one drive. A defined pair gets exactly one
// simultaneous update. A pair holding Unknown bits is the power-on condition:
// updates repeat until no Unknown remains, and ErrIndeterminate is returned
// when that never happens within MaxSettleSteps.
// It returns the new state and the number of updates applied.
func Latch(kind LatchKind, d domain.Drive, q domain.State) (domain.State, int, error) {
	if err := checkLatch(d, q); err != nil {
		return nil, 0, err
	}

	cur := q
	for step := 1; step <= MaxSettleSteps; step++ {
		next, err := LatchStep(kind, d, cur)
		if err != nil {
			return nil, step, err
		}
		if next.Defined() {
			return next, step, nil
		}
		if next.Equal(cur) {
			break
		}
		cur = next
	}
	return nil, MaxSettleSteps, fmt.Errorf("%s latch from %s with drive %s: %w", kind, q, d, domain.ErrIndeterminate)
}

// StepLatchSequence applies Latch for each drive in order and returns every resulting state.
func StepLatchSequence(kind LatchKind, initial domain.State, drives ...domain.Drive) ([]domain.State, error) {
	out := make([]domain.State, 0, len(drives))
	q := initial
	for i, d := range drives {
		next, _, err := Latch(kind, d, q)
		if err != nil {
			return out, fmt.Errorf("step %d: %w", i+1, err)
		}
		out = append(out, next)
		q = next
	}
	return out, nil
}

func checkLatch(d domain.Drive, q domain.State) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if q.Width() != 2 {
		return fmt.Errorf("latch state must have 2 bits, got %d: %w", q.Width(), domain.ErrInvalidBit)
	}
	for i, b := range q {
		if !b.Valid() {
			return &domain.BitError{Position: i, Value: b.String()}
		}
	}
	return nil
}
