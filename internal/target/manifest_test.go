package target

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[target]
triple = "x86_64-unknown-orihime"
sysroot = "/opt/orihime"
resource_dir = "/opt/orihime/lib/oricc/1"

[link]
linker = "ld.lld"
lib_dirs = ["/opt/extra/lib"]

[includes]
c_dirs = "/usr/include:custom/include"
`)

	m, ok, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected manifest to be found")
	}
	if m.Root != dir {
		t.Errorf("Root = %q, want %q", m.Root, dir)
	}
	if m.Config.Target.Sysroot != "/opt/orihime" {
		t.Errorf("sysroot = %q", m.Config.Target.Sysroot)
	}
	if m.Config.Link.Linker != "ld.lld" {
		t.Errorf("linker = %q", m.Config.Link.Linker)
	}
	if m.Config.Includes.CDirs != "/usr/include:custom/include" {
		t.Errorf("c_dirs = %q", m.Config.Includes.CDirs)
	}
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[target]\ntriple = \"x86_64-orihime\"\n")

	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	m, ok, err := LoadManifest(nested)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected manifest above nested dir to be found")
	}
	if m.Root != root {
		t.Errorf("Root = %q, want %q", m.Root, root)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if ok {
		t.Fatal("expected no manifest in empty dir")
	}
}

func TestLoadManifestValidation(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{
			name:     "missing target table",
			contents: "[link]\nlinker = \"ld.lld\"\n",
		},
		{
			name:     "bad triple",
			contents: "[target]\ntriple = \"x86_64\"\n",
		},
		{
			name:     "blank sysroot",
			contents: "[target]\ntriple = \"x86_64-orihime\"\nsysroot = \" \"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tt.contents)
			if _, _, err := LoadManifest(dir); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
