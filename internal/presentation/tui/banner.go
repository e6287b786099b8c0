package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the kopye banner.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Teal to blue.
	lines := []struct {
		text  string
		color string
	}{
		{" _                        ", "#2dd4bf"},
		{"| | _____  _ __  _   _  ___ ", "#22d3ee"},
		{"| |/ / _ \\| '_ \\| | | |/ _ \\", "#38bdf8"},
		{"|   < (_) | |_) | |_| |  __/", "#60a5fa"},
		{"|_|\\_\\___/| .__/ \\__, |\\___|", "#818cf8"},
		{"          |_|    |___/      ", "#a78bfa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
