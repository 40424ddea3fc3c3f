package diag

import "fmt"

// Reporter is the minimal contract for receiving diagnostics from the
// driver and the toolchain core.
// Implementations: BagReporter (stores into a Bag), NopReporter,
// DedupReporter (suppresses repeats).
type Reporter interface {
	Report(d Diagnostic)
}

// Errorf reports a formatted error diagnostic.
func Errorf(r Reporter, code Code, format string, args ...any) {
	if r == nil {
		return
	}
	r.Report(NewError(code, fmt.Sprintf(format, args...)))
}

// Warningf reports a formatted warning diagnostic.
func Warningf(r Reporter, code Code, format string, args ...any) {
	if r == nil {
		return
	}
	r.Report(NewWarning(code, fmt.Sprintf(format, args...)))
}

// BagReporter is an adapter that writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter discards every diagnostic.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}
