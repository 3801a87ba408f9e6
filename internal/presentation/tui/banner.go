package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the startup banner with the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  _                    _                  ", "#818cf8"},
		{" | |__  _ __ ___   ___| |__  _   _ _ __ ___", "#a78bfa"},
		{" | '_ \\| '__/ _ \\ / __| '_ \\| | | | '__/ _ \\", "#c084fc"},
		{" | |_) | | | (_) | (__| | | | |_| | | |  __/", "#e879f9"},
		{" |_.__/|_|  \\___/ \\___|_| |_|\\__,_|_|  \\___|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, "  v%s\n\n", version)
}
