package toolchain

import (
	"path/filepath"
	"strings"
)

// IncludeOptions are the header-search suppression flags resolved by the
// driver frontend.
type IncludeOptions struct {
	// NoStdInc suppresses every system include directory.
	NoStdInc bool
	// NoBuiltinInc suppresses the compiler resource includes.
	NoBuiltinInc bool
	// NoStdlibInc suppresses the target's standard library includes,
	// both C and C++.
	NoStdlibInc bool
	// NoStdIncCXX suppresses only the C++ standard library includes.
	NoStdIncCXX bool
}

// SystemIncludeDirs computes the system header search directories.
// system holds the user-visible system includes, resource directory
// first. externC holds directories whose headers keep C linkage when
// included from C++ translation units. When a C include-directory
// override is configured it replaces the default sysroot include
// directory entirely; relative override entries are taken as-is and
// absolute ones are re-rooted under the sysroot.
func (tc *Toolchain) SystemIncludeDirs(opts IncludeOptions) (system, externC []string) {
	if opts.NoStdInc {
		return nil, nil
	}

	if !opts.NoBuiltinInc {
		system = append(system, filepath.Join(tc.resourceDir, "include"))
	}

	if opts.NoStdlibInc {
		return system, nil
	}

	if tc.cIncludeDirs != "" {
		for _, dir := range strings.Split(tc.cIncludeDirs, ":") {
			prefix := ""
			if filepath.IsAbs(dir) {
				prefix = tc.sysroot
			}
			externC = append(externC, prefix+dir)
		}
		return system, externC
	}

	externC = append(externC, filepath.Join(tc.sysrootDir(), "resource", "development", "include"))
	return system, externC
}

// CXXStdlibIncludeDirs computes the C++ standard library header search
// directories for the requested stdlib kind. Unsupported requests are
// diagnosed and resolved to the supported kind; a resolved kind outside
// the platform's set is a caller contract violation.
func (tc *Toolchain) CXXStdlibIncludeDirs(opts IncludeOptions, requested string) []string {
	if opts.NoStdlibInc || opts.NoStdIncCXX {
		return nil
	}
	switch tc.CXXStdlib(requested) {
	case CXXStdlibLibcxx:
		return []string{filepath.Join(tc.sysrootDir(), "resource", "development", "include", "libcxx")}
	}
	panic("toolchain: unreachable C++ standard library kind")
}
