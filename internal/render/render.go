package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/keshon/litterbox"
)

// Color functions
var (
	colorCreated   = color.New(color.FgGreen)
	colorDeleted   = color.New(color.FgRed)
	colorTransient = color.New(color.FgYellow)
	colorClean     = color.New(color.FgGreen)
	colorHeader    = color.New(color.Bold)
)

// Report prints a detection report for root. Colors are dropped
// automatically when w is not a terminal.
func Report(w io.Writer, root string, rep *litterbox.Report) {
	if rep.Clean() && len(rep.Transient) == 0 {
		colorClean.Fprintf(w, "✓ no litter under %s\n", root)
		return
	}

	if !rep.Clean() {
		colorHeader.Fprintf(w, "Litter detected under %s\n", root)
	}
	section(w, colorCreated, "Created:", rep.Created)
	section(w, colorDeleted, "Deleted:", rep.Deleted)
	section(w, colorTransient, "Transient:", rep.Transient)
}

func section(w io.Writer, c *color.Color, header string, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintln(w, header)
	for _, p := range paths {
		c.Fprintf(w, "  %s\n", p)
	}
}
