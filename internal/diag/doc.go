// Package diag defines the diagnostic model shared by the driver and the
// toolchain core.
//
// Diagnostics produced here are configuration findings, not source-located
// compiler errors: an unsupported runtime-library name, a missing link
// input, a malformed manifest. They carry a severity, a compact numeric
// code with a stable string form, and a human-oriented message.
//
// Producers emit through a Reporter so they stay decoupled from storage and
// formatting. BagReporter aggregates into a Bag; DedupReporter suppresses
// repeats so a given mismatch is surfaced once per invocation. Rendering
// lives in internal/diagfmt.
package diag
