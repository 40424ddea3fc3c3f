// Package driver resolves a frontend invocation into a constructed
// toolchain instance: option merging, target resolution, link input
// verification, and the probe cache that skips repeated filesystem
// checks.
package driver

import (
	"os"

	"oricc/internal/diag"
	"oricc/internal/toolchain"
)

// recordingProbe wraps a probe and remembers every answer so a cache
// entry can be written after construction.
type recordingProbe struct {
	inner toolchain.ExistsFunc
	seen  map[string]bool
}

func newRecordingProbe(inner toolchain.ExistsFunc) *recordingProbe {
	return &recordingProbe{inner: inner, seen: make(map[string]bool)}
}

func (r *recordingProbe) probe(path string) bool {
	ok := r.inner(path)
	r.seen[path] = ok
	return ok
}

func statProbe(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// cachedProbe answers recorded paths from the snapshot and falls back to
// the live filesystem for anything the snapshot never saw, so a cache
// hit can only skip work, never invent a missing file.
func cachedProbe(paths map[string]bool) toolchain.ExistsFunc {
	return func(p string) bool {
		if ok, seen := paths[p]; seen {
			return ok
		}
		return statProbe(p)
	}
}

// BuildResult carries the constructed toolchain and whether its probes
// came from the cache.
type BuildResult struct {
	Toolchain *toolchain.Toolchain
	CacheHit  bool
}

// BuildToolchain constructs the toolchain instance for the given
// options, answering multilib existence probes from the probe cache when
// a matching snapshot exists. Cache failures never fail the build; the
// cache is an optimization only.
func BuildToolchain(opts Options, installedDir, driverDir string, rep diag.Reporter) (BuildResult, error) {
	cfg, err := opts.ToolchainConfig(installedDir, driverDir, rep)
	if err != nil {
		return BuildResult{}, err
	}

	var cache *ProbeCache
	if !opts.NoCache {
		if c, cerr := OpenProbeCache("oricc"); cerr == nil {
			cache = c
		}
	}
	key := probeKey(cfg)

	var payload probePayload
	if ok, gerr := cache.Get(key, &payload); gerr == nil && ok {
		if payload.Schema == probeCacheSchemaVersion {
			cfg.Exists = cachedProbe(payload.Paths)
			return BuildResult{Toolchain: toolchain.New(cfg), CacheHit: true}, nil
		}
		// Stale schema: everything under the cache dir is unusable.
		_ = cache.DropAll()
	}

	rec := newRecordingProbe(statProbe)
	cfg.Exists = rec.probe
	tc := toolchain.New(cfg)

	if cache != nil {
		_ = cache.Put(key, &probePayload{
			Schema: probeCacheSchemaVersion,
			Paths:  rec.seen,
		})
	}
	return BuildResult{Toolchain: tc, CacheHit: false}, nil
}
