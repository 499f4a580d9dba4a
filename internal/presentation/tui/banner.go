package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the herald banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{" _                    _     _ ", "#fbbf24"},
		{"| |__   ___ _ __ __ _| | __| |", "#f59e0b"},
		{"| '_ \\ / _ \\ '__/ _` | |/ _` |", "#f97316"},
		{"| | | |  __/ | | (_| | | (_| |", "#ef4444"},
		{"|_| |_|\\___|_|  \\__,_|_|\\__,_|", "#dc2626"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}
