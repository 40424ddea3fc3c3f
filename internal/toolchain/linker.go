package toolchain

import (
	"path/filepath"
	"strings"

	"oricc/internal/command"
)

// LinkOptions are the per-invocation inputs to link command construction,
// resolved by the driver frontend before the builder runs.
type LinkOptions struct {
	// Inputs are the object files and archives to link, in order.
	Inputs []string
	// Output is the produced file path.
	Output string

	// CXX links the C++ standard library in front of the base runtime.
	CXX bool

	// Strip drops the symbol table from the output.
	Strip bool
	// Relocatable produces a relinkable object instead of an executable.
	Relocatable bool

	// NoStdlib and NoStartFiles suppress the base runtime archive.
	NoStdlib     bool
	NoStartFiles bool

	// LibPaths and Undefined are the user's extra -L directories and
	// forced-undefined symbols, appended in the order given.
	LibPaths  []string
	Undefined []string

	// RuntimeLib and CXXStdlib are the user-requested library names, empty
	// when unset.
	RuntimeLib string
	CXXStdlib  string

	// LTO selects the link-time optimization block. LTO with zero
	// inputs is a caller contract violation.
	LTO LTOMode
}

// fastLinker is the linker that supports separate loadable segments.
const fastLinker = "ld.lld"

// isFastLinker matches the resolved linker executable by file name or by
// stem, so both "ld.lld" and "ld.lld.exe" qualify.
func isFastLinker(path string) bool {
	name := filepath.Base(path)
	if strings.EqualFold(name, fastLinker) {
		return true
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.EqualFold(stem, fastLinker)
}

// LinkCommand assembles the linker invocation for the given options.
// Argument order is part of the contract: linkers are order-sensitive, so
// every step below appends in a fixed position. The command is returned
// for an external executor; nothing is spawned here.
//
// The platform links everything statically. -Bstatic is emitted
// unconditionally and no step may remove it.
func (tc *Toolchain) LinkCommand(opts LinkOptions) command.Command {
	// The runtime kind cannot change the command on this target, but a
	// misconfigured name must still warn once per link.
	_ = tc.RuntimeLib(opts.RuntimeLib)

	cmd := command.New(tc.LinkerPath())
	cmd.Inputs = append(cmd.Inputs, opts.Inputs...)
	cmd.Output = opts.Output

	if isFastLinker(cmd.Path) {
		cmd.Args = append(cmd.Args, "-z", "separate-loadable-segments")
	}

	if tc.sysroot != "" {
		cmd.Args = append(cmd.Args, "--sysroot="+tc.sysroot)
	}

	if opts.Strip {
		cmd.Args = append(cmd.Args, "-s")
	}

	if opts.Relocatable {
		cmd.Args = append(cmd.Args, "-r")
	} else {
		cmd.Args = append(cmd.Args, "--build-id", "--hash-style=gnu")
	}

	cmd.Args = append(cmd.Args, "--eh-frame-hdr")
	cmd.Args = append(cmd.Args, "-Bstatic")

	cmd.Args = append(cmd.Args, "-o", opts.Output)
	cmd.Args = append(cmd.Args, opts.Inputs...)

	// A relocatable link is relinked later; it never pulls in libraries.
	if !opts.Relocatable && !opts.NoStdlib {
		if opts.CXX {
			cmd.Args = append(cmd.Args, tc.CXXStdlibLibArgs(opts.CXXStdlib)...)
		}
		if !opts.NoStartFiles {
			cmd.Args = append(cmd.Args, "-l"+tc.platform.BaseRuntimeLib)
		}
	}

	for _, dir := range opts.LibPaths {
		cmd.Args = append(cmd.Args, "-L"+dir)
	}
	for _, sym := range opts.Undefined {
		cmd.Args = append(cmd.Args, "-u", sym)
	}

	for _, dir := range tc.filePaths {
		cmd.Args = append(cmd.Args, "-L"+dir)
	}

	if opts.LTO != LTONone {
		cmd.Args = append(cmd.Args, tc.ltoArgs(opts)...)
	}

	return cmd
}

// ltoArgs builds the LTO option block. The first link input stands in as
// the representative action: the thin-LTO cache lands next to it.
func (tc *Toolchain) ltoArgs(opts LinkOptions) []string {
	if len(opts.Inputs) == 0 {
		panic("toolchain: LTO requested with no link inputs")
	}
	switch opts.LTO {
	case LTOFull:
		return []string{"--lto-O2"}
	case LTOThin:
		cacheDir := filepath.Join(filepath.Dir(opts.Inputs[0]), "thinlto-cache")
		return []string{"--thinlto-jobs=all", "--thinlto-cache-dir=" + cacheDir}
	}
	return nil
}
