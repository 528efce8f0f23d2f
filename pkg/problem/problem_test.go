package problem_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/logicsim/pkg/domain"
	"github.com/aretw0/logicsim/pkg/problem"
	"github.com/aretw0/logicsim/pkg/sequence"
)

const examplesDir = "../../examples/problems"

func load(t *testing.T, name string) *problem.Problem {
	t.Helper()
	p, err := problem.Load(filepath.Join(examplesDir, name))
	require.NoError(t, err)
	return p
}

func TestSolve_Examples(t *testing.T) {
	ctx := context.Background()
	solver := problem.NewSolver()

	t.Run("catalog counter", func(t *testing.T) {
		sol, err := solver.Solve(ctx, load(t, "jk-ring-counter.yaml"))
		require.NoError(t, err)
		require.NotNil(t, sol.Counter)
		assert.Equal(t, []string{"00", "01", "10", "00", "01", "10"}, sol.Counter.Result.Trace)
		assert.Equal(t, "D", sol.Counter.Answer)
		require.NotNil(t, sol.Correct)
		assert.True(t, *sol.Correct)
	})

	t.Run("inline counter with unquoted states", func(t *testing.T) {
		p := load(t, "inline-counter.yaml")
		sol, err := solver.Solve(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, "ring", sol.Counter.Circuit)
		assert.Equal(t, []string{"D"}, sol.Counter.Result.Matches)
	})

	t.Run("nand latch", func(t *testing.T) {
		sol, err := solver.Solve(ctx, load(t, "latch.yaml"))
		require.NoError(t, err)
		require.NotNil(t, sol.Latch)
		assert.Equal(t, "xx", sol.Latch.Initial)
		assert.Equal(t, "10", sol.Latch.Steps[0].State)
		assert.Equal(t, "10", sol.Latch.Steps[1].State)
		assert.True(t, *sol.Correct)
	})

	t.Run("nor latch json", func(t *testing.T) {
		sol, err := solver.Solve(ctx, load(t, "nor-latch.json"))
		require.NoError(t, err)
		assert.Equal(t, "10", sol.Latch.Steps[0].State)
		assert.Equal(t, "00", sol.Latch.Steps[1].State)
		assert.True(t, *sol.Correct)
	})

	t.Run("gate count", func(t *testing.T) {
		sol, err := solver.Solve(ctx, load(t, "ec2009-60.yaml"))
		require.NoError(t, err)
		require.NotNil(t, sol.Gates)
		assert.Equal(t, 2, sol.Gates.Counts["NOT"])
		assert.Equal(t, 3, sol.Gates.Counts["OR"])
		assert.Nil(t, sol.Correct)
	})
}

func TestParse_UnquotedStatesKeepTheirDigits(t *testing.T) {
	// Leading-zero scalars such as 010 and 011 would otherwise resolve as octal numbers.
	doc := []byte(`
kind: counter
counter:
  name: johnson
  initial: "000"
  flipflops:
    - {j: "!q3", k: q3}
    - {j: q1, k: "!q1"}
    - {j: q2, k: "!q2"}
cycles: 6
candidates:
  A: [011, 001, 000, 100, 110, 111]
  B: [000, 001, 010, 011, 100, 101]
`)
	p, err := problem.Parse(doc, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"000", "001", "010", "011", "100", "101"}, p.Candidates["B"])
	assert.Equal(t, 6, p.Cycles)

	sol, err := problem.NewSolver().Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, []string{"000", "100", "110", "111", "011", "001"}, sol.Counter.Result.Trace)
	assert.Equal(t, []string{"A"}, sol.Counter.Result.Matches)
	assert.Equal(t, "A", sol.Counter.Answer)
}

func TestParse_RejectsNonBinaryCandidates(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		key  string
	}{
		{
			"digit outside 0 and 1",
			"kind: counter\ncircuit: jk-ring-counter\ncycles: 2\ncandidates: {A: [\"00\", \"12\"]}\n",
			"candidates.A[1]",
		},
		{
			"wider than the inline counter",
			"kind: counter\ncycles: 2\ncounter: {initial: \"00\", flipflops: [{j: q2, k: \"1\"}, {j: \"!q1\", k: \"1\"}]}\ncandidates: {A: [010, 00]}\n",
			"candidates.A[0]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := problem.Parse([]byte(tt.doc), ".yaml")
			errs := domain.ValidationErrors(err)
			require.Len(t, errs, 1)
			var vErr *domain.ValidationError
			require.ErrorAs(t, errs[0], &vErr)
			assert.Equal(t, tt.key, vErr.Key)
		})
	}
}

func TestSolve_RejectsCandidatesWiderThanCatalogCounter(t *testing.T) {
	p := &problem.Problem{
		Kind:       problem.KindCounter,
		Circuit:    "jk-ring-counter",
		Cycles:     2,
		Candidates: map[string][]string{"A": {"000", "001"}},
	}
	require.NoError(t, p.Validate())

	_, err := problem.NewSolver().Solve(context.Background(), p)
	errs := domain.ValidationErrors(err)
	require.Len(t, errs, 2)
}

func TestParse_ValidationErrors(t *testing.T) {
	doc := []byte(`
kind: counter
cycles: 0
policy: last
`)
	_, err := problem.Parse(doc, ".yaml")
	require.Error(t, err)

	errs := domain.ValidationErrors(err)
	require.Len(t, errs, 3)

	keys := []string{}
	for _, e := range errs {
		var vErr *domain.ValidationError
		require.ErrorAs(t, e, &vErr)
		keys = append(keys, vErr.Key)
	}
	assert.ElementsMatch(t, []string{"circuit", "cycles", "policy"}, keys)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "kind: gates\ngates: {OR: [a+b]}\nextra: 1\n"},
		{"bad kind", "kind: fsm\n"},
		{"missing kind", "title: nothing\n"},
		{"bad latch drive", "kind: latch\nlatch: nand\nsteps: [[x, 1]]\n"},
		{"bad latch kind", "kind: latch\nlatch: xor\nsteps: [[0, 1]]\n"},
		{"expect length", "kind: latch\nlatch: nor\nsteps: [[0, 1]]\nexpect: [\"10\", \"00\"]\n"},
		{"bad gate kind", "kind: gates\ngates: {MUX: [a]}\n"},
		{"bad wiring", "kind: counter\ncycles: 2\ncounter: {flipflops: [{j: q1+q2, k: \"1\"}]}\n"},
		{"malformed yaml", "kind: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := problem.Parse([]byte(tt.doc), ".yaml")
			assert.Error(t, err)
		})
	}
}

func TestSolve_AmbiguityReported(t *testing.T) {
	p := &problem.Problem{
		Kind:    problem.KindCounter,
		Circuit: "jk-ring-counter",
		Cycles:  3,
		Candidates: map[string][]string{
			"A": {"00", "01", "10"},
			"B": {"01", "10", "00"},
			"C": {"00", "01"},
		},
	}

	sol, err := problem.NewSolver().Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Empty(t, sol.Counter.Answer)
	assert.Contains(t, sol.Counter.AnswerError, "more than one candidate")
	assert.Equal(t, []string{"A", "B"}, sol.Counter.Result.Matches)

	solver := problem.NewSolver()
	solver.Policy = sequence.PolicyFirst
	sol, err = solver.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "A", sol.Counter.Answer)
}

func TestSolve_UnknownCircuit(t *testing.T) {
	p := &problem.Problem{Kind: problem.KindCounter, Circuit: "nope", Cycles: 2}
	_, err := problem.NewSolver().Solve(context.Background(), p)
	assert.ErrorIs(t, err, domain.ErrUnknownCircuit)
}

func TestSolver_StepLatchEmitsEvents(t *testing.T) {
	var events []*domain.LatchEvent
	solver := problem.NewSolver()
	solver.Hooks = domain.Hooks{
		OnLatchStep: func(ctx context.Context, e *domain.LatchEvent) { events = append(events, e) },
	}

	p := &problem.Problem{Kind: problem.KindLatch, Latch: "nor", Steps: [][]string{{"0", "1"}, {"1", "1"}}}
	sol, err := solver.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Len(t, sol.Latch.Steps, 2)
	require.Len(t, events, 2)
	assert.Equal(t, "xx", events[0].From.String())
	assert.Equal(t, "00", events[1].To.String())
}
