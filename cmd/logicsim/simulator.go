package main

import (
	"io"

	"github.com/aretw0/logicsim"
	"github.com/aretw0/logicsim/internal/report"
)

// simulator pairs the library facade with the report settings of one invocation.
type simulator struct {
	*logicsim.Simulator
	markdown bool
}

func (s *simulator) report(w io.Writer) *report.Renderer {
	return report.New(w, report.WithMarkdown(s.markdown))
}
