package sequence

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/aretw0/logicsim/pkg/domain"
)

// Rotation returns the left rotation offset at which trace equals candidate, or -1.
// Sequences of different lengths never match.
func Rotation(trace, candidate []string) int {
	n := len(trace)
	if n != len(candidate) {
		return -1
	}
	for i := 0; i < n; i++ {
		ok := true
		for j := 0; j < n; j++ {
			if trace[(i+j)%n] != candidate[j] {
				ok = false
				break
			}
		}
		if ok {
			return i
		}
	}
	return -1
}

// IsRotation reports whether candidate is a cyclic rotation of trace.
func IsRotation(trace, candidate []string) bool {
	return Rotation(trace, candidate) >= 0
}

// Match compares trace with every candidate and reports all matches.
func Match(trace []string, candidates []domain.Candidate) domain.MatchResult {
	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, func(a, b domain.Candidate) int {
		return strings.Compare(a.Name, b.Name)
	})

	res := domain.MatchResult{
		Trace:    slices.Clone(trace),
		Verdicts: make([]domain.Verdict, 0, len(sorted)),
		Matches:  []string{},
	}
	for _, c := range sorted {
		off := Rotation(trace, c.Sequence)
		res.Verdicts = append(res.Verdicts, domain.Verdict{Candidate: c, Match: off >= 0, Offset: off})
		if off >= 0 {
			res.Matches = append(res.Matches, c.Name)
		}
	}
	return res
}

// Candidates converts a name -> sequence mapping into candidates.
func Candidates(m map[string][]string) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(m))
	for name, seq := range m {
		out = append(out, domain.Candidate{Name: name, Sequence: seq})
	}
	slices.SortFunc(out, func(a, b domain.Candidate) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Policy decides how an answer is picked from a MatchResult.
type Policy string

const (
	// PolicyStrict requires exactly one matching candidate.
	PolicyStrict Policy = "strict"
	// PolicyFirst picks the first match in name order.
	PolicyFirst Policy = "first"
)

// ParsePolicy accepts "strict", "first" or "" (strict).
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyStrict:
		return PolicyStrict, nil
	case PolicyFirst:
		return PolicyFirst, nil
	default:
		return "", fmt.Errorf("unknown policy %q (want strict or first)", s)
	}
}

// Resolve selects the answer from a match result.
func Resolve(res domain.MatchResult, p Policy) (string, error) {
	switch {
	case len(res.Matches) == 0:
		return "", domain.ErrNoMatch
	case len(res.Matches) > 1 && p != PolicyFirst:
		return "", &domain.AmbiguityError{Matches: slices.Clone(res.Matches)}
	}
	return res.Matches[0], nil
}
