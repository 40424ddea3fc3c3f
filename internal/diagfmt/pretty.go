// Package diagfmt renders collected diagnostics for terminals and tooling.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"oricc/internal/diag"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	codeColor    = color.New(color.Faint)
)

// Pretty renders diagnostics in emission order, one line per diagnostic:
//
//	oricc: ERROR [LNK2001]: no such file: a.o
//	  note: ...
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	if bag == nil {
		return
	}
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}
	for i := range maxItems {
		d := items[i]
		sev := d.Severity.String()
		code := fmt.Sprintf("[%s]", d.Code.ID())
		if opts.Color {
			sev = severityColor(d.Severity).Sprint(sev)
			code = codeColor.Sprint(code)
		}
		fmt.Fprintf(w, "oricc: %s %s: %s\n", sev, code, d.Message)
		if !opts.ShowNotes {
			continue
		}
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  note: %s\n", note.Msg)
		}
	}
	if maxItems < len(items) {
		fmt.Fprintf(w, "oricc: %d diagnostic(s) not shown\n", len(items)-maxItems)
	}
}

// Summary prints a one-line error and warning count, or nothing when the bag
// is empty.
func Summary(w io.Writer, bag *diag.Bag, colored bool) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	errs := bag.CountBySeverity(diag.SevError)
	warns := bag.CountBySeverity(diag.SevWarning)
	parts := ""
	switch {
	case errs > 0 && warns > 0:
		parts = fmt.Sprintf("%d error(s), %d warning(s)", errs, warns)
	case errs > 0:
		parts = fmt.Sprintf("%d error(s)", errs)
	case warns > 0:
		parts = fmt.Sprintf("%d warning(s)", warns)
	default:
		return
	}
	if colored && errs > 0 {
		parts = errorColor.Sprint(parts)
	} else if colored {
		parts = warningColor.Sprint(parts)
	}
	fmt.Fprintf(w, "oricc: %s emitted\n", parts)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}
