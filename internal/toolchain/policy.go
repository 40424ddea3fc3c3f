package toolchain

import (
	"fmt"

	"oricc/internal/diag"
)

// RuntimeLibKind identifies a compiler runtime library implementation.
type RuntimeLibKind uint8

const (
	// RuntimeCompilerRT is the only runtime library shipped for Orihime.
	RuntimeCompilerRT RuntimeLibKind = iota
)

func (k RuntimeLibKind) String() string {
	switch k {
	case RuntimeCompilerRT:
		return "compiler-rt"
	}
	return "unknown"
}

// CXXStdlibKind identifies a C++ standard library implementation.
type CXXStdlibKind uint8

const (
	// CXXStdlibLibcxx is the only C++ standard library shipped for Orihime.
	CXXStdlibLibcxx CXXStdlibKind = iota
)

func (k CXXStdlibKind) String() string {
	switch k {
	case CXXStdlibLibcxx:
		return "libc++"
	}
	return "unknown"
}

// LTOMode selects link-time optimization behavior.
type LTOMode uint8

const (
	LTONone LTOMode = iota
	LTOFull
	LTOThin
)

func (m LTOMode) String() string {
	switch m {
	case LTONone:
		return "none"
	case LTOFull:
		return "full"
	case LTOThin:
		return "thin"
	}
	return "unknown"
}

// ParseLTOMode reads the user spelling of an LTO mode.
func ParseLTOMode(s string) (LTOMode, error) {
	switch s {
	case "", "none", "off":
		return LTONone, nil
	case "full", "on":
		return LTOFull, nil
	case "thin":
		return LTOThin, nil
	default:
		return LTONone, fmt.Errorf("invalid LTO mode %q (expected none|full|thin)", s)
	}
}

// Platform holds the fixed policy answers for one target OS. It is built
// once at startup and only ever queried afterwards; nothing in the driver
// mutates it. Every answer that clang would model as a virtual override is
// a plain field or method here.
type Platform struct {
	Name          string
	DefaultLinker string

	// RuntimeLib and CXXStdlib are the single supported kinds. Requests
	// for anything else are diagnosed and overridden, never honored.
	RuntimeLib RuntimeLibKind
	CXXStdlib  CXXStdlibKind

	// BaseRuntimeLib is the archive linked into every non-relocatable
	// executable unless standard libraries are suppressed.
	BaseRuntimeLib string

	PIEDefault bool
	PICDefault bool
	PICForced  bool

	StackProtectorLevel uint
	UnwindTablesDefault bool
	IntegratedAssembler bool
	MathErrno           bool
	RelaxRelocations    bool
	DebuggerTuning      string

	sanitizers []string
}

// Orihime returns the platform descriptor for the Orihime OS: static-only
// linking, compiler-rt, libc++, PIE on by default, and no sanitizer
// runtimes at all.
func Orihime() Platform {
	return Platform{
		Name:                "orihime",
		DefaultLinker:       "ld.lld",
		RuntimeLib:          RuntimeCompilerRT,
		CXXStdlib:           CXXStdlibLibcxx,
		BaseRuntimeLib:      "osrt",
		PIEDefault:          true,
		PICDefault:          false,
		PICForced:           false,
		StackProtectorLevel: 0,
		UnwindTablesDefault: true,
		IntegratedAssembler: true,
		MathErrno:           false,
		RelaxRelocations:    true,
		DebuggerTuning:      "gdb",
		sanitizers:          nil,
	}
}

// SupportedSanitizers returns the sanitizers this platform can instrument
// for. Orihime supports none.
func (p Platform) SupportedSanitizers() []string {
	out := make([]string, len(p.sanitizers))
	copy(out, p.sanitizers)
	return out
}

// SupportsSanitizer reports whether the named sanitizer is available.
func (p Platform) SupportsSanitizer(name string) bool {
	for _, s := range p.sanitizers {
		if s == name {
			return true
		}
	}
	return false
}

// ValidateRuntimeLib resolves a requested runtime library name against the
// platform. An unsupported name is diagnosed once and the supported kind is
// returned; the build always continues.
func (p Platform) ValidateRuntimeLib(requested string, r diag.Reporter) RuntimeLibKind {
	if requested != "" && requested != p.RuntimeLib.String() {
		diag.Warningf(r, diag.CfgInvalidRuntimeLib,
			"invalid runtime library name %q; using %q", requested, p.RuntimeLib)
	}
	return p.RuntimeLib
}

// ValidateCXXStdlib resolves a requested C++ standard library name against
// the platform, with the same diagnose-and-continue policy.
func (p Platform) ValidateCXXStdlib(requested string, r diag.Reporter) CXXStdlibKind {
	if requested != "" && requested != p.CXXStdlib.String() {
		diag.Warningf(r, diag.CfgInvalidCXXStdlib,
			"invalid C++ standard library name %q; using %q", requested, p.CXXStdlib)
	}
	return p.CXXStdlib
}
