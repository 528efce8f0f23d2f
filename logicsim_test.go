package logicsim_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/logicsim"
	"github.com/aretw0/logicsim/pkg/catalog"
	"github.com/aretw0/logicsim/pkg/circuit"
	"github.com/aretw0/logicsim/pkg/domain"
	"github.com/aretw0/logicsim/pkg/logic"
	"github.com/aretw0/logicsim/pkg/problem"
	"github.com/aretw0/logicsim/pkg/sequence"
)

func TestSimulator_AnswerPolicies(t *testing.T) {
	ctx := context.Background()
	candidates := map[string][]string{
		"A": {"00", "01", "10"},
		"B": {"10", "00", "01"},
	}

	strict := logicsim.New()
	trace, err := strict.Simulate(ctx, "jk-ring-counter", 3)
	require.NoError(t, err)

	sol, err := strict.Answer(ctx, "jk-ring-counter", trace, candidates)
	var ambiguous *domain.AmbiguityError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []string{"A", "B"}, ambiguous.Matches)
	assert.Empty(t, sol.Answer)

	first := logicsim.New(logicsim.WithPolicy(sequence.PolicyFirst))
	sol, err = first.Answer(ctx, "jk-ring-counter", trace, candidates)
	require.NoError(t, err)
	assert.Equal(t, "A", sol.Answer)

	_, err = strict.Answer(ctx, "jk-ring-counter", trace, map[string][]string{"Z": {"11", "11", "11"}})
	assert.ErrorIs(t, err, domain.ErrNoMatch)
}

func TestSimulator_Hooks(t *testing.T) {
	var steps, traces, matches int
	sim := logicsim.New(
		logicsim.WithHooks(domain.Hooks{
			OnStep:      func(context.Context, *domain.StepEvent) { steps++ },
			OnTraceDone: func(context.Context, *domain.TraceEvent) { traces++ },
		}),
		logicsim.WithHooks(domain.Hooks{
			OnMatch: func(context.Context, *domain.MatchEvent) { matches++ },
		}),
	)

	ctx := context.Background()
	trace, err := sim.Simulate(ctx, "jk-ring-counter", 6)
	require.NoError(t, err)
	_, err = sim.Answer(ctx, "jk-ring-counter", trace, map[string][]string{"D": {"01", "10", "00", "01", "10", "00"}})
	require.NoError(t, err)

	assert.Equal(t, 6, steps)
	assert.Equal(t, 1, traces)
	assert.Equal(t, 1, matches)
}

func TestSimulator_Catalog(t *testing.T) {
	reg := catalog.NewRegistry()
	reg.Register(catalog.Entry{
		Name: "hold",
		Kind: catalog.KindCounter,
		Counter: &circuit.Counter{
			Name:    "hold",
			Initial: domain.MustState("1"),
			Rule:    circuit.Wiring{{J: circuit.Const(domain.Zero), K: circuit.Const(domain.Zero)}},
		},
	})
	sim := logicsim.New(logicsim.WithCatalog(reg))

	require.Len(t, sim.Circuits(), 1)
	trace, err := sim.Simulate(context.Background(), "hold", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "1", "1"}, trace.Strings())

	_, err = sim.Simulate(context.Background(), "jk-ring-counter", 3)
	assert.ErrorIs(t, err, domain.ErrUnknownCircuit)
}

func TestSimulator_LatchAndGates(t *testing.T) {
	sim := logicsim.New()

	steps, err := sim.StepLatch(context.Background(), logic.NAND, domain.MustState("xx"),
		domain.Drive{P1: domain.Zero, P2: domain.One},
		domain.Drive{P1: domain.One, P2: domain.One},
	)
	require.NoError(t, err)
	assert.Equal(t, "10", steps[0].State)
	assert.Equal(t, "10", steps[1].State)

	_, err = sim.StepLatch(context.Background(), logic.NAND, domain.MustState("xx"),
		domain.Drive{P1: domain.One, P2: domain.One})
	assert.ErrorIs(t, err, domain.ErrIndeterminate)

	stable, err := sim.StableStates(logic.NOR, domain.Drive{P1: domain.Zero, P2: domain.Zero})
	require.NoError(t, err)
	assert.Equal(t, []string{"01", "10"}, domain.Trace(stable).Strings())

	gates, err := sim.CountGates(map[string][]string{"OR": {"a + b", "b + a"}, "NOT": {"~a"}})
	require.NoError(t, err)
	assert.Equal(t, 1, gates.Counts["OR"])
	assert.Equal(t, 2, gates.Total)
}

func TestSimulator_Solve(t *testing.T) {
	p, err := problem.Load("examples/problems/jk-ring-counter.yaml")
	require.NoError(t, err)

	sol, err := logicsim.New().Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "D", sol.Counter.Answer)
	assert.True(t, *sol.Correct)
}
