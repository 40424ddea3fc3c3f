package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"oricc/internal/toolchain"
)

// Current schema version - increment when probePayload format changes.
const probeCacheSchemaVersion uint16 = 1

// Digest identifies one toolchain configuration.
type Digest [sha256.Size]byte

// configDigest hashes the parts in order, NUL-separated so adjacent
// parts cannot run together.
func configDigest(parts ...string) Digest {
	h := sha256.New()
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// probePayload is the cached snapshot of the filesystem answers one
// toolchain construction observed.
type probePayload struct {
	Schema uint16
	Paths  map[string]bool
}

// ProbeCache persists multilib probe results per toolchain configuration
// so repeated invocations skip the stat calls. Safe for concurrent use;
// a nil cache ignores every call.
type ProbeCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenProbeCache initializes and returns a probe cache at the standard
// user cache location.
func OpenProbeCache(app string) (*ProbeCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ProbeCache{dir: dir}, nil
}

// Dir returns the directory the cache lives in.
func (c *ProbeCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *ProbeCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "probes", hexKey+".mp")
}

// Put serializes and writes a payload, replacing any previous entry
// atomically.
func (c *ProbeCache) Put(key Digest, payload *probePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}

	enc := msgpack.NewEncoder(tmp)
	if err := enc.Encode(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// Get reads a payload. A missing entry is (false, nil), not an error.
func (c *ProbeCache) Get(key Digest, out *probePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the whole cache, useful after schema changes.
func (c *ProbeCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// probeKey derives the cache key for a toolchain configuration. Every
// field that can change a probe answer participates.
func probeKey(cfg toolchain.Config) Digest {
	names := make([]string, 0, len(cfg.Features))
	for name := range cfg.Features {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := []string{
		fmt.Sprintf("schema=%d", probeCacheSchemaVersion),
		"triple=" + cfg.Triple.String(),
		"sysroot=" + cfg.Sysroot,
		"resource=" + cfg.ResourceDir,
		"linker=" + cfg.Linker,
		"installed=" + cfg.InstalledDir,
		"driver=" + cfg.DriverDir,
	}
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%t", name, cfg.Features[name]))
	}
	parts = append(parts, cfg.ExtraLibDirs...)
	return configDigest(parts...)
}
