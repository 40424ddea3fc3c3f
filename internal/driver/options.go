package driver

import (
	"fmt"

	"oricc/internal/diag"
	"oricc/internal/target"
	"oricc/internal/toolchain"
)

// Options is the resolved invocation state the frontend hands to the
// toolchain core: flag values already parsed, manifest values already
// merged. The core never sees the command line itself.
type Options struct {
	Triple      string
	Sysroot     string
	ResourceDir string
	Linker      string

	// CIncludeDirs is the colon-separated C include override, usually
	// from the manifest.
	CIncludeDirs string
	// ExtraLibDirs come from the manifest's [link] lib_dirs.
	ExtraLibDirs []string

	Exceptions   bool
	UseInitArray bool
	CXX          bool

	Strip        bool
	Relocatable  bool
	NoStdlib     bool
	NoStartFiles bool

	NoStdInc     bool
	NoBuiltinInc bool
	NoStdlibInc  bool
	NoStdIncCXX  bool

	// RuntimeLib and CXXStdlib are the user-requested library names,
	// empty when the user did not ask.
	RuntimeLib string
	CXXStdlib  string

	// LTO is the user spelling of the LTO mode; parsed on use.
	LTO string

	LibPaths  []string
	Undefined []string

	Output string
	Inputs []string

	// Jobs caps input verification parallelism; 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps the diagnostic bag.
	MaxDiagnostics int

	NoCache       bool
	PrintCommands bool
	DryRun        bool
}

// DefaultOptions returns the frontend defaults: exceptions on, init
// arrays off, linking a C executable named a.out.
func DefaultOptions() Options {
	return Options{
		Exceptions:     true,
		Output:         "a.out",
		MaxDiagnostics: 256,
	}
}

// ApplyManifest fills options the command line left unset from an
// oricc.toml manifest. Explicit flags always win over manifest values.
func (o *Options) ApplyManifest(m *target.Manifest) {
	if m == nil {
		return
	}
	if o.Triple == "" {
		o.Triple = m.Config.Target.Triple
	}
	if o.Sysroot == "" {
		o.Sysroot = m.Config.Target.Sysroot
	}
	if o.ResourceDir == "" {
		o.ResourceDir = m.Config.Target.ResourceDir
	}
	if o.Linker == "" {
		o.Linker = m.Config.Link.Linker
	}
	if o.CIncludeDirs == "" {
		o.CIncludeDirs = m.Config.Includes.CDirs
	}
	if len(o.ExtraLibDirs) == 0 {
		o.ExtraLibDirs = append(o.ExtraLibDirs, m.Config.Link.LibDirs...)
	}
}

// Features renders the option state as the feature set multilib
// selection and codegen policy consume.
func (o Options) Features() toolchain.Features {
	return toolchain.Features{
		toolchain.FeatureExceptions:   o.Exceptions,
		toolchain.FeatureUseInitArray: o.UseInitArray,
	}
}

// IncludeOptions maps the suppression flags for the include resolver.
func (o Options) IncludeOptions() toolchain.IncludeOptions {
	return toolchain.IncludeOptions{
		NoStdInc:     o.NoStdInc,
		NoBuiltinInc: o.NoBuiltinInc,
		NoStdlibInc:  o.NoStdlibInc,
		NoStdIncCXX:  o.NoStdIncCXX,
	}
}

// LinkOptions maps the option state for the link command builder. The
// LTO spelling is validated here so a bad value fails before any command
// is assembled.
func (o Options) LinkOptions() (toolchain.LinkOptions, error) {
	lto, err := toolchain.ParseLTOMode(o.LTO)
	if err != nil {
		return toolchain.LinkOptions{}, err
	}
	out := o.Output
	if out == "" {
		out = "a.out"
	}
	return toolchain.LinkOptions{
		Inputs:       o.Inputs,
		Output:       out,
		CXX:          o.CXX,
		Strip:        o.Strip,
		Relocatable:  o.Relocatable,
		NoStdlib:     o.NoStdlib,
		NoStartFiles: o.NoStartFiles,
		LibPaths:     o.LibPaths,
		Undefined:    o.Undefined,
		RuntimeLib:   o.RuntimeLib,
		CXXStdlib:    o.CXXStdlib,
		LTO:          lto,
	}, nil
}

// ToolchainConfig assembles the toolchain construction config. The
// triple is parsed and normalized here; an invalid spelling is a
// frontend error, not a diagnostic.
func (o Options) ToolchainConfig(installedDir, driverDir string, rep diag.Reporter) (toolchain.Config, error) {
	spelling := o.Triple
	if spelling == "" {
		spelling = target.DefaultTriple
	}
	triple, err := target.ParseTriple(spelling)
	if err != nil {
		return toolchain.Config{}, fmt.Errorf("resolve target: %w", err)
	}
	return toolchain.Config{
		Platform:     toolchain.Orihime(),
		Triple:       triple,
		Sysroot:      o.Sysroot,
		ResourceDir:  o.ResourceDir,
		InstalledDir: installedDir,
		DriverDir:    driverDir,
		Linker:       o.Linker,
		CIncludeDirs: o.CIncludeDirs,
		ExtraLibDirs: o.ExtraLibDirs,
		Features:     o.Features(),
		Reporter:     rep,
	}, nil
}
