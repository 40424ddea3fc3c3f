// Package target describes the link target: its triple and the optional
// oricc.toml manifest that pins sysroot, resource directory and linker
// choices for a project tree.
package target

import (
	"fmt"
	"strings"
)

// DefaultTriple is used when neither the manifest nor the command line name
// a triple.
const DefaultTriple = "x86_64-unknown-orihime"

// Triple identifies the configuration being linked for, in the usual
// arch-vendor-os[-env] spelling.
type Triple struct {
	Arch   string
	Vendor string
	OS     string
	Env    string
}

// ParseTriple splits a triple string into its components. Two-component
// spellings ("x86_64-orihime") get the unknown vendor filled in, which is
// also how the effective triple is normalized.
func ParseTriple(s string) (Triple, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	switch len(parts) {
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return Triple{}, fmt.Errorf("invalid target triple %q", s)
		}
		return Triple{Arch: parts[0], Vendor: "unknown", OS: parts[1]}, nil
	case 3:
		if parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return Triple{}, fmt.Errorf("invalid target triple %q", s)
		}
		return Triple{Arch: parts[0], Vendor: parts[1], OS: parts[2]}, nil
	case 4:
		if parts[0] == "" || parts[1] == "" || parts[2] == "" || parts[3] == "" {
			return Triple{}, fmt.Errorf("invalid target triple %q", s)
		}
		return Triple{Arch: parts[0], Vendor: parts[1], OS: parts[2], Env: parts[3]}, nil
	default:
		return Triple{}, fmt.Errorf("invalid target triple %q", s)
	}
}

func (t Triple) String() string {
	parts := []string{t.Arch, t.Vendor, t.OS}
	if t.Env != "" {
		parts = append(parts, t.Env)
	}
	return strings.Join(parts, "-")
}

// IsOrihime reports whether the triple targets the Orihime OS.
func (t Triple) IsOrihime() bool {
	return strings.EqualFold(t.OS, "orihime")
}
