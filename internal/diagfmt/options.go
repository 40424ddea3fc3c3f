package diagfmt

// PrettyOpts configures human-readable diagnostic output.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
	Max       int // cap on rendered diagnostics; the Bag itself is never truncated
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludeNotes bool
	Max          int
}
