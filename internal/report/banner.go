package report

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text, color string
}{
	{` _             _          _`, "#38bdf8"},
	{`| | ___   __ _(_) ___ ___(_)_ __ ___`, "#22d3ee"},
	{`| |/ _ \ / _' | |/ __/ __| | '_ ' _ \`, "#2dd4bf"},
	{`| | (_) | (_| | | (__\__ \ | | | | | |`, "#34d399"},
	{`|_|\___/ \__, |_|\___|___/_|_| |_| |_|`, "#4ade80"},
	{`         |___/`, "#a3e635"},
}

// PrintBanner writes the ASCII banner with a gradient when w is a terminal.
func PrintBanner(w io.Writer, version string) {
	p := termenv.Ascii
	if IsTerminal(w) {
		p = termenv.EnvColorProfile()
	}
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, "  %s\n\n", p.String("v"+version).Faint())
}
