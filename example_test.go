package logicsim_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/logicsim"
	"github.com/aretw0/logicsim/pkg/domain"
	"github.com/aretw0/logicsim/pkg/dsl"
	"github.com/aretw0/logicsim/pkg/logic"
)

func ExampleSimulator_Answer() {
	sim := logicsim.New()
	ctx := context.Background()

	trace, err := sim.Simulate(ctx, "jk-ring-counter", 6)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(trace.Strings())

	sol, err := sim.Answer(ctx, "jk-ring-counter", trace, map[string][]string{
		"A": {"11", "10", "00", "11", "10", "00"},
		"B": {"01", "10", "11", "00", "01", "10"},
		"C": {"00", "11", "01", "10", "00", "11"},
		"D": {"01", "10", "00", "01", "10", "00"},
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("answer:", sol.Answer)

	// Output:
	// [00 01 10 00 01 10]
	// answer: D
}

func ExampleSimulator_SimulateCounter() {
	// A 2-bit binary up counter: ff1 toggles every clock, ff2 toggles when q1 is set.
	counter, err := dsl.NewCounter("up").
		FlipFlop().Toggle().Next().
		FlipFlop().J("q1").K("q1").Next().
		Build()
	if err != nil {
		log.Fatal(err)
	}

	trace, err := logicsim.New().SimulateCounter(context.Background(), counter, 4)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(trace.Strings())

	// Output:
	// [00 10 01 11]
}

func ExampleSimulator_StepLatch() {
	sim := logicsim.New()
	steps, err := sim.StepLatch(context.Background(), logic.NOR,
		domain.MustState("xx"),
		domain.Drive{P1: domain.Zero, P2: domain.One},
		domain.Drive{P1: domain.One, P2: domain.One},
	)
	if err != nil {
		log.Fatal(err)
	}
	for _, s := range steps {
		fmt.Println(s.Drive, "->", s.State)
	}

	// Output:
	// (0, 1) -> 10
	// (1, 1) -> 00
}
