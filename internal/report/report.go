// Package report renders solutions for humans: plain text, terminal colors or markdown.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/logicsim/pkg/domain"
	"github.com/aretw0/logicsim/pkg/problem"
)

const arrow = " → "

// Renderer writes reports to a writer.
type Renderer struct {
	w        io.Writer
	profile  termenv.Profile
	markdown bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMarkdown renders reports as markdown through glamour.
func WithMarkdown(enabled bool) Option {
	return func(r *Renderer) {
		r.markdown = enabled
	}
}

// WithProfile forces a color profile. termenv.Ascii disables colors.
func WithProfile(p termenv.Profile) Option {
	return func(r *Renderer) {
		r.profile = p
	}
}

// New returns a renderer. Colors are enabled only when w is a terminal.
func New(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{w: w, profile: termenv.Ascii}
	if IsTerminal(w) {
		r.profile = termenv.EnvColorProfile()
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Solution writes the report matching the solution kind.
func (r *Renderer) Solution(sol *problem.Solution) error {
	return r.emit(func(w io.Writer) {
		if sol.Title != "" {
			if r.markdown {
				fmt.Fprintf(w, "# %s\n\n", sol.Title)
			} else {
				fmt.Fprintf(w, "%s\n\n", r.bold(sol.Title))
			}
		}

		switch {
		case sol.Counter != nil:
			r.counter(w, sol.Counter)
		case sol.Latch != nil:
			r.latch(w, sol.Latch)
		case sol.Gates != nil:
			r.gates(w, sol.Gates)
		}

		if sol.Correct == nil {
			return
		}
		verdict := r.good("✅ correct")
		if !*sol.Correct {
			verdict = r.bad("❌ incorrect")
		}
		label := "Expected"
		if sol.Expected != "" {
			label += " " + sol.Expected
		}
		if r.markdown {
			label = "**" + label + "**"
		}
		fmt.Fprintf(w, "\n%s: %s\n", label, verdict)
	})
}

// Counter writes a trace-and-candidates report.
func (r *Renderer) Counter(sol *problem.CounterSolution) error {
	return r.emit(func(w io.Writer) { r.counter(w, sol) })
}

// Latch writes one line per drive.
func (r *Renderer) Latch(sol *problem.LatchSolution) error {
	return r.emit(func(w io.Writer) { r.latch(w, sol) })
}

// Gates writes the gate counts.
func (r *Renderer) Gates(sol *problem.GateSolution) error {
	return r.emit(func(w io.Writer) { r.gates(w, sol) })
}

// Stable writes the stable states of a latch under one drive.
func (r *Renderer) Stable(kind string, d domain.Drive, states []domain.State) error {
	labels := domain.Trace(states).Strings()
	if len(labels) == 0 {
		labels = []string{"none"}
	}
	return r.emit(func(w io.Writer) {
		if r.markdown {
			fmt.Fprintf(w, "**%s latch %s** stable states: `%s`\n", strings.ToUpper(kind), d, strings.Join(labels, "`, `"))
			return
		}
		fmt.Fprintf(w, "%s latch %s stable states: %s\n", strings.ToUpper(kind), d, strings.Join(labels, ", "))
	})
}

// emit runs body against the output, or against a buffer rendered through glamour in markdown mode.
func (r *Renderer) emit(body func(io.Writer)) error {
	if !r.markdown {
		body(r.w)
		return nil
	}
	var md strings.Builder
	body(&md)
	return r.render(md.String())
}

func (r *Renderer) counter(w io.Writer, sol *problem.CounterSolution) {
	width := 0
	if len(sol.Result.Trace) > 0 {
		width = len(sol.Result.Trace[0])
	}
	labels := make([]string, width)
	for i := range labels {
		labels[i] = fmt.Sprintf("Q%d", i+1)
	}

	if r.markdown {
		fmt.Fprintf(w, "## Simulated state sequence (%s)\n\n`%s`\n\n", strings.Join(labels, " "), strings.Join(sol.Result.Trace, arrow))
		fmt.Fprintf(w, "| Option | Sequence | Match |\n|---|---|---|\n")
		for _, v := range sol.Result.Verdicts {
			fmt.Fprintf(w, "| %s | `%s` | %s |\n", v.Candidate.Name, strings.Join(v.Candidate.Sequence, arrow), mark(v.Match))
		}
		fmt.Fprintf(w, "\n%s\n", r.answerLine(sol))
		return
	}

	fmt.Fprintf(w, "Simulated State Sequence (%s):\n", strings.Join(labels, " "))
	fmt.Fprintln(w, strings.Join(sol.Result.Trace, arrow))
	fmt.Fprintln(w, "\nChecking options:")
	for _, v := range sol.Result.Verdicts {
		line := fmt.Sprintf("Option %s: %s %s", v.Candidate.Name, strings.Join(v.Candidate.Sequence, arrow), mark(v.Match))
		if v.Match {
			line = r.good(line)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "\n%s\n", r.answerLine(sol))
}

func (r *Renderer) answerLine(sol *problem.CounterSolution) string {
	switch {
	case sol.Answer != "":
		return r.good(fmt.Sprintf("✅ Correct Option: (%s)", sol.Answer))
	case len(sol.Result.Matches) > 1:
		return r.bad(fmt.Sprintf("⚠️ Ambiguous: options %s all match cyclically.", strings.Join(sol.Result.Matches, ", ")))
	}
	return r.bad("❌ No option matches cyclically.")
}

func (r *Renderer) latch(w io.Writer, sol *problem.LatchSolution) {
	if r.markdown {
		fmt.Fprintf(w, "## %s latch from `%s`\n\n| Drive (P1, P2) | Q1 Q2 | Updates |\n|---|---|---|\n", strings.ToUpper(string(sol.Kind)), sol.Initial)
		for _, s := range sol.Steps {
			fmt.Fprintf(w, "| %s | `%s` | %d |\n", s.Drive, s.State, s.Updates)
		}
		return
	}
	fmt.Fprintf(w, "%s latch, initial Q1 Q2 = %s\n", strings.ToUpper(string(sol.Kind)), sol.Initial)
	for i, s := range sol.Steps {
		fmt.Fprintf(w, "Step %d: (P1, P2) = %s -> Q1 Q2 = %s\n", i+1, s.Drive, s.State)
	}
}

func (r *Renderer) gates(w io.Writer, sol *problem.GateSolution) {
	kinds := make([]string, 0, len(sol.Counts))
	for k := range sol.Counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	if r.markdown {
		fmt.Fprintf(w, "## Gate count\n\n| Gate | Count | Expressions |\n|---|---|---|\n")
		for _, k := range kinds {
			fmt.Fprintf(w, "| %s | %d | `%s` |\n", k, sol.Counts[k], strings.Join(sol.Unique[k], "`, `"))
		}
		fmt.Fprintf(w, "\n**Total**: %d\n", sol.Total)
		return
	}
	for _, k := range kinds {
		fmt.Fprintf(w, "Minimum number of %s gates: %d\n", k, sol.Counts[k])
	}
	fmt.Fprintf(w, "Total: %d\n", sol.Total)
}

func (r *Renderer) render(md string) error {
	g, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := g.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(r.w, out)
	return err
}

func (r *Renderer) good(s string) string {
	return r.profile.String(s).Foreground(r.profile.Color("#22c55e")).String()
}

func (r *Renderer) bad(s string) string {
	return r.profile.String(s).Foreground(r.profile.Color("#ef4444")).String()
}

func (r *Renderer) bold(s string) string {
	return r.profile.String(s).Bold().String()
}

func mark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}
