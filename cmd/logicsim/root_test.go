package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const problemsDir = "../../examples/problems"

// resetFlags restores every flag to its default. Commands are package globals,
// so values from a previous Execute would otherwise leak into the next one.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args on freshly reset flags.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSimulateCommand(t *testing.T) {
	out, err := execute(t, "simulate", "--circuit", "jk-ring-counter", "--cycles", "6",
		"--candidate", "A=11,10,00,11,10,00",
		"--candidate", "D=01,10,00,01,10,00")
	require.NoError(t, err)
	assert.Contains(t, out, "00 → 01 → 10 → 00 → 01 → 10")
	assert.Contains(t, out, "✅ Correct Option: (D)")
}

func TestSimulateCommand_StrictAmbiguity(t *testing.T) {
	_, err := execute(t, "simulate", "--circuit", "jk-ring-counter", "--cycles", "6", "--strict",
		"--candidate", "B=10,00,01,10,00,01",
		"--candidate", "D=01,10,00,01,10,00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no single answer")
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "--check",
		filepath.Join(problemsDir, "jk-ring-counter.yaml"),
		filepath.Join(problemsDir, "latch.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Expected D: ✅ correct")
	assert.Contains(t, out, "NAND latch, initial Q1 Q2 = xx")
}

func TestRunCommand_JSON(t *testing.T) {
	out, err := execute(t, "run", "--json", filepath.Join(problemsDir, "ec2009-60.yaml"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "gates", decoded["kind"])
}

func TestLatchCommand(t *testing.T) {
	out, err := execute(t, "latch", "--kind", "nor", "--initial", "xx", "--step", "01", "--step", "11")
	require.NoError(t, err)
	assert.Contains(t, out, "Step 1: (P1, P2) = (0, 1) -> Q1 Q2 = 10")
	assert.Contains(t, out, "Step 2: (P1, P2) = (1, 1) -> Q1 Q2 = 00")
}

func TestLatchCommand_Indeterminate(t *testing.T) {
	_, err := execute(t, "latch", "--kind", "nand", "--initial", "xx", "--step", "11")
	require.Error(t, err)
}

func TestGatesCommand(t *testing.T) {
	out, err := execute(t, "gates")
	require.NoError(t, err)
	assert.Contains(t, out, "Minimum number of NOT gates: 2")
	assert.Contains(t, out, "Minimum number of OR gates: 3")
}

func TestStableCommand(t *testing.T) {
	out, err := execute(t, "stable", "--kind", "nand", "--drive", "11", "--verify")
	require.NoError(t, err)
	assert.Contains(t, out, "01, 10")
	assert.Contains(t, out, "JK table matches")
}

func TestGraphCommand(t *testing.T) {
	out, err := execute(t, "graph", "--circuit", "jk-ring-counter", "--cycles", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, `s00 -- "01 11" --> s01`)
}

func TestCircuitsCommand(t *testing.T) {
	out, err := execute(t, "circuits")
	require.NoError(t, err)
	assert.Contains(t, out, "jk-ring-counter")
	assert.Contains(t, out, "NAME")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "logicsim version")
}
