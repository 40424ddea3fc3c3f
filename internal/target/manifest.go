package target

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the driver looks for when no explicit target
// configuration is given on the command line.
const ManifestName = "oricc.toml"

// Manifest is a located and parsed oricc.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest layout.
type Config struct {
	Target   TargetConfig   `toml:"target"`
	Link     LinkConfig     `toml:"link"`
	Includes IncludesConfig `toml:"includes"`
}

// TargetConfig pins the triple and the tree layout.
type TargetConfig struct {
	Triple      string `toml:"triple"`
	Sysroot     string `toml:"sysroot"`
	ResourceDir string `toml:"resource_dir"`
}

// LinkConfig selects the linker program and extra search paths.
type LinkConfig struct {
	Linker  string   `toml:"linker"`
	LibDirs []string `toml:"lib_dirs"`
}

// IncludesConfig overrides the default C include layout. CDirs is
// colon-separated; relative entries live under the sysroot as-is, absolute
// entries are re-rooted below it.
type IncludesConfig struct {
	CDirs string `toml:"c_dirs"`
}

// FindManifest walks up from startDir to locate oricc.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest locates and parses the nearest manifest above startDir.
// ok is false when no manifest exists, which is not an error.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("target") {
		return Config{}, fmt.Errorf("%s: missing [target]", path)
	}
	if meta.IsDefined("target", "triple") {
		if _, err := ParseTriple(cfg.Target.Triple); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if meta.IsDefined("target", "sysroot") && strings.TrimSpace(cfg.Target.Sysroot) == "" {
		return Config{}, fmt.Errorf("%s: [target].sysroot must not be blank", path)
	}
	return cfg, nil
}
