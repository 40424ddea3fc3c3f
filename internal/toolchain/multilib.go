package toolchain

import (
	"path/filepath"
	"sort"
)

// Feature names understood by multilib selection and codegen policy.
const (
	// FeatureExceptions is true when exception support is enabled.
	FeatureExceptions = "exceptions"
	// FeatureUseInitArray is true when .init_array emission was explicitly
	// re-enabled by the user.
	FeatureUseInitArray = "use-init-array"
)

// Features is the normalized flag state a multilib variant can require.
// Keys absent from the map are treated as false.
type Features map[string]bool

// Clone returns an independent copy so callers can hand the map out
// without aliasing the driver's state.
func (f Features) Clone() Features {
	out := make(Features, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// ExistsFunc answers whether a filesystem path exists. Tests and dry runs
// inject their own; nil means "probe the real filesystem".
type ExistsFunc func(path string) bool

// Multilib is one library variant of the target: a directory suffix under
// the library root, a selection priority, and the feature states the
// variant requires. The zero value is the default variant.
type Multilib struct {
	Suffix   string
	Priority int
	Requires map[string]bool
}

// IsDefault reports whether this is the base variant with no suffix.
func (m Multilib) IsDefault() bool {
	return m.Suffix == "" && len(m.Requires) == 0
}

// Matches reports whether every required feature state holds in fl.
// Features missing from fl count as false.
func (m Multilib) Matches(fl Features) bool {
	for name, want := range m.Requires {
		if fl[name] != want {
			return false
		}
	}
	return true
}

// Dir appends the variant suffix to a base library directory.
func (m Multilib) Dir(base string) string {
	if m.Suffix == "" {
		return base
	}
	return filepath.Join(base, m.Suffix)
}

// MultilibSet holds the candidate variants for a toolchain along with the
// path generator used to verify them on disk.
type MultilibSet struct {
	variants []Multilib

	// PathsFor yields the directories a variant would contribute. A
	// variant with no generated paths cannot be verified and is treated
	// as absent during filtering.
	PathsFor func(Multilib) []string
}

// NewMultilibSet builds a set from the given variants in declaration order.
func NewMultilibSet(variants ...Multilib) *MultilibSet {
	return &MultilibSet{variants: append([]Multilib(nil), variants...)}
}

// Variants returns the current candidates.
func (s *MultilibSet) Variants() []Multilib {
	out := make([]Multilib, len(s.variants))
	copy(out, s.variants)
	return out
}

// Default returns the base variant. The set always contains one; if a
// caller ever removes it the zero Multilib still behaves as the default.
func (s *MultilibSet) Default() Multilib {
	for _, m := range s.variants {
		if m.IsDefault() {
			return m
		}
	}
	return Multilib{}
}

// Filter drops every non-default variant none of whose generated paths
// exist. The default variant is never dropped: a target with a sparse or
// absent sysroot must still be able to link against the base layout.
// Nothing is reported for dropped variants. A nil probe leaves the set
// unchanged.
func (s *MultilibSet) Filter(exists ExistsFunc) {
	if exists == nil {
		return
	}
	kept := s.variants[:0]
	for _, m := range s.variants {
		if m.IsDefault() || anyExists(s.pathsFor(m), exists) {
			kept = append(kept, m)
		}
	}
	s.variants = kept
}

func (s *MultilibSet) pathsFor(m Multilib) []string {
	if s.PathsFor == nil {
		return nil
	}
	return s.PathsFor(m)
}

func anyExists(paths []string, exists ExistsFunc) bool {
	for _, p := range paths {
		if exists(p) {
			return true
		}
	}
	return false
}

// Select picks the best variant for the given feature state. The most
// specific match wins: among matching variants, more required flags beat
// fewer, so a named variant always beats the default whenever its
// requirements hold. Equally specific matches are ordered by priority
// (lower wins), then by suffix, so the outcome never depends on
// declaration order. When nothing matches, the default variant is
// returned with ok=false; selection itself never fails.
func (s *MultilibSet) Select(fl Features) (m Multilib, ok bool) {
	matched := make([]Multilib, 0, len(s.variants))
	for _, cand := range s.variants {
		if cand.Matches(fl) {
			matched = append(matched, cand)
		}
	}
	if len(matched) == 0 {
		return s.Default(), false
	}
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if len(a.Requires) != len(b.Requires) {
			return len(a.Requires) > len(b.Requires)
		}
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.Suffix < b.Suffix
	})
	return matched[0], true
}
