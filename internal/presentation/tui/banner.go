package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the mcpgate banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"                                    _       ", "#818cf8"},
		{"  _ __ ___   ___ _ __   __ _  __ _| |_ ___ ", "#a78bfa"},
		{" | '_ ` _ \\ / __| '_ \\ / _` |/ _` | __/ _ \\", "#c084fc"},
		{" | | | | | | (__| |_) | (_| | (_| | ||  __/", "#e879f9"},
		{" |_| |_| |_|\\___| .__/ \\__, |\\__,_|\\__\\___|", "#f472b6"},
		{"                |_|    |___/               ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, " %s\n\n", termenv.String("v"+version).Faint())
}
