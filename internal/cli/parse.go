package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/logicsim/pkg/domain"
)

// ParseCandidates decodes repeated NAME=STATE,STATE,... flags.
func ParseCandidates(flags []string) (map[string][]string, error) {
	out := make(map[string][]string, len(flags))
	for _, f := range flags {
		name, seq, ok := strings.Cut(f, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("candidate %q: want NAME=STATE,STATE,...", f)
		}
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("candidate %q given twice", name)
		}
		states := strings.Split(seq, ",")
		for i := range states {
			states[i] = strings.TrimSpace(states[i])
		}
		out[name] = states
	}
	return out, nil
}

// ParseDrives decodes every drive in order.
func ParseDrives(in []string) ([]domain.Drive, error) {
	out := make([]domain.Drive, len(in))
	for i, s := range in {
		d, err := domain.ParseDrive(s)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		out[i] = d
	}
	return out, nil
}

// ParseLatchState decodes a 2-bit latch state; "x" marks an unknown output.
func ParseLatchState(s string) (domain.State, error) {
	st, err := domain.ParseState(s)
	if err != nil {
		return nil, err
	}
	if st.Width() != 2 {
		return nil, fmt.Errorf("%w: latch state %q must have 2 bits", domain.ErrInvalidBit, s)
	}
	return st, nil
}

// SortedKeys returns the map keys in order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
