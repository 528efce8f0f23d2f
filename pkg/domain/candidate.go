package domain

// Candidate is a named multiple-choice option: an ordered sequence of state encodings.
type Candidate struct {
	Name     string   `json:"name" yaml:"name" mapstructure:"name"`
	Sequence []string `json:"sequence" yaml:"sequence" mapstructure:"sequence"`
}

// Verdict is the outcome of comparing one candidate with a trace.
type Verdict struct {
	Candidate
	Match bool `json:"match"`
	// Offset is the left rotation of the trace that reproduced the candidate, or -1.
	Offset int `json:"offset"`
}

// MatchResult collects the verdicts for a trace. Verdicts are ordered by candidate name.
type MatchResult struct {
	Trace    []string  `json:"trace"`
	Verdicts []Verdict `json:"verdicts"`
	Matches  []string  `json:"matches"`
}

// Ambiguous reports whether more than one candidate matched.
func (r MatchResult) Ambiguous() bool {
	return len(r.Matches) > 1
}
