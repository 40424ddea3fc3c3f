// Package toolchain encodes the linking and header-search policy of the
// Orihime target: which multilib variant to use, where system headers
// live, how the linker must be invoked, and the fixed platform answers
// everything else queries. All decisions are pure computations over the
// configuration captured at construction; the only filesystem access is
// the existence probe used while filtering multilib candidates.
package toolchain

import (
	"os"
	"os/exec"
	"path/filepath"

	"oricc/internal/diag"
	"oricc/internal/target"
)

// Config carries everything a toolchain instance is built from. The
// driver frontend fills it once per invocation.
type Config struct {
	// Platform is the fixed policy descriptor. A zero value means the
	// Orihime platform.
	Platform Platform

	Triple target.Triple

	// Sysroot may be empty; path resolution then falls back to "/".
	Sysroot     string
	ResourceDir string

	// InstalledDir and DriverDir seed the program search paths, in that
	// order. DriverDir is skipped when it repeats InstalledDir.
	InstalledDir string
	DriverDir    string

	// Linker overrides the platform's default linker program name.
	Linker string

	// CIncludeDirs is a colon-separated override for the extern-C system
	// include directories.
	CIncludeDirs string

	// ExtraLibDirs are appended to the file search paths after the
	// sysroot library directory.
	ExtraLibDirs []string

	// Features is the resolved flag state the multilib decision is bound
	// to. Selection happens once, at construction.
	Features Features

	// Exists is the filesystem probe used during multilib filtering and
	// linker resolution. Nil means stat the real filesystem.
	Exists ExistsFunc

	// Reporter receives configuration diagnostics. Nil discards them.
	Reporter diag.Reporter
}

// Toolchain is the per-target decision procedure: one instance per
// invocation, constructed once, read-only afterwards. The search-path
// lists are filled during construction and never mutated again.
type Toolchain struct {
	platform Platform
	triple   target.Triple

	sysroot      string
	resourceDir  string
	linker       string
	cIncludeDirs string

	programPaths []string
	filePaths    []string

	selected   Multilib
	selectedOK bool

	exists   ExistsFunc
	reporter diag.Reporter
}

// New builds a toolchain instance: seeds the program and file search
// paths, filters the multilib candidates against the filesystem, and
// binds the multilib decision to cfg.Features. That binding is made once
// here; later per-invocation flag changes do not re-run selection, so a
// process that wants a different variant must construct a new instance.
func New(cfg Config) *Toolchain {
	platform := cfg.Platform
	if platform.Name == "" {
		platform = Orihime()
	}
	exists := cfg.Exists
	if exists == nil {
		exists = statExists
	}
	linker := cfg.Linker
	if linker == "" {
		linker = platform.DefaultLinker
	}

	tc := &Toolchain{
		platform:     platform,
		triple:       cfg.Triple,
		sysroot:      cfg.Sysroot,
		resourceDir:  cfg.ResourceDir,
		linker:       linker,
		cIncludeDirs: cfg.CIncludeDirs,
		exists:       exists,
		reporter:     cfg.Reporter,
	}

	if cfg.InstalledDir != "" {
		tc.programPaths = append(tc.programPaths, cfg.InstalledDir)
	}
	if cfg.DriverDir != "" && cfg.DriverDir != cfg.InstalledDir {
		tc.programPaths = append(tc.programPaths, cfg.DriverDir)
	}

	if tc.sysroot != "" {
		tc.filePaths = append(tc.filePaths, tc.libraryDir())
	}
	tc.filePaths = append(tc.filePaths, cfg.ExtraLibDirs...)

	set := NewMultilibSet(
		Multilib{},
		Multilib{
			Suffix:   "noexcept",
			Priority: 1,
			Requires: map[string]bool{FeatureExceptions: false},
		},
	)
	set.PathsFor = func(m Multilib) []string {
		if tc.sysroot == "" {
			return nil
		}
		return []string{m.Dir(tc.libraryDir())}
	}
	set.Filter(exists)

	tc.selected, tc.selectedOK = set.Select(cfg.Features)
	if tc.selectedOK && !tc.selected.IsDefault() {
		tc.filePaths = append(set.PathsFor(tc.selected), tc.filePaths...)
	}

	return tc
}

func statExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// libraryDir is the target library root under the sysroot.
func (tc *Toolchain) libraryDir() string {
	return filepath.Join(tc.sysroot, "resource", "development", "library")
}

// sysrootDir is the sysroot, or "/" when none is configured.
func (tc *Toolchain) sysrootDir() string {
	if tc.sysroot == "" {
		return "/"
	}
	return tc.sysroot
}

// Platform returns the fixed policy descriptor.
func (tc *Toolchain) Platform() Platform { return tc.platform }

// Triple returns the target triple the instance was built for.
func (tc *Toolchain) Triple() target.Triple { return tc.triple }

// Sysroot returns the configured sysroot, possibly empty.
func (tc *Toolchain) Sysroot() string { return tc.sysroot }

// ResourceDir returns the compiler resource directory.
func (tc *Toolchain) ResourceDir() string { return tc.resourceDir }

// ProgramPaths returns the directories searched for toolchain programs.
func (tc *Toolchain) ProgramPaths() []string {
	return append([]string(nil), tc.programPaths...)
}

// FilePaths returns the library search directories, selected multilib
// variant first.
func (tc *Toolchain) FilePaths() []string {
	return append([]string(nil), tc.filePaths...)
}

// SelectedMultilib returns the multilib decision. ok is false when no
// variant matched and the default was used as a fallback.
func (tc *Toolchain) SelectedMultilib() (m Multilib, ok bool) {
	return tc.selected, tc.selectedOK
}

// LinkerPath resolves the configured linker program to an executable
// path: absolute names are taken as-is, then the program search paths
// are probed, then PATH. An unresolvable name is returned bare so the
// failure surfaces at execution with the name the user configured.
func (tc *Toolchain) LinkerPath() string {
	name := tc.linker
	if filepath.IsAbs(name) {
		return name
	}
	for _, dir := range tc.programPaths {
		cand := filepath.Join(dir, name)
		if tc.exists(cand) {
			return cand
		}
	}
	if p, err := exec.LookPath(name); err == nil {
		return p
	}
	return name
}

// EffectiveTriple returns the normalized triple spelling handed to the
// code-generation stage.
func (tc *Toolchain) EffectiveTriple() string {
	return tc.triple.String()
}

// RuntimeLib resolves the requested runtime library name, diagnosing
// unsupported requests and always answering with the supported kind.
func (tc *Toolchain) RuntimeLib(requested string) RuntimeLibKind {
	return tc.platform.ValidateRuntimeLib(requested, tc.reporter)
}

// CXXStdlib resolves the requested C++ standard library name with the
// same diagnose-and-continue policy as RuntimeLib.
func (tc *Toolchain) CXXStdlib(requested string) CXXStdlibKind {
	return tc.platform.ValidateCXXStdlib(requested, tc.reporter)
}

// CXXStdlibLibArgs returns the linker arguments that pull in the C++
// standard library.
func (tc *Toolchain) CXXStdlibLibArgs(requested string) []string {
	switch tc.CXXStdlib(requested) {
	case CXXStdlibLibcxx:
		return []string{"-lc++"}
	}
	panic("toolchain: unreachable C++ standard library kind")
}

// CodegenFlags returns the extra flags handed to the code-generation
// stage. Static initializer arrays stay disabled unless the user turned
// them back on; the target has no floating-point support.
func (tc *Toolchain) CodegenFlags(fl Features) []string {
	var args []string
	if !fl[FeatureUseInitArray] {
		args = append(args, "-fno-use-init-array")
	}
	args = append(args, "-no-implicit-float")
	return args
}
