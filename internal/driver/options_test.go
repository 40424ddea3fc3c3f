package driver

import (
	"testing"

	"oricc/internal/target"
	"oricc/internal/toolchain"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()

	if !o.Exceptions {
		t.Error("exceptions must default on")
	}
	if o.UseInitArray {
		t.Error("init arrays must default off")
	}
	if o.Output != "a.out" {
		t.Errorf("output = %q, want a.out", o.Output)
	}
}

func TestApplyManifest(t *testing.T) {
	m := &target.Manifest{
		Config: target.Config{
			Target: target.TargetConfig{
				Triple:      "aarch64-unknown-orihime",
				Sysroot:     "/opt/orihime",
				ResourceDir: "/opt/orihime/lib/clang/1",
			},
			Link: target.LinkConfig{
				Linker:  "/opt/orihime/bin/ld.lld",
				LibDirs: []string{"/opt/orihime/vendor/lib"},
			},
			Includes: target.IncludesConfig{CDirs: "/usr/include"},
		},
	}

	o := DefaultOptions()
	o.Sysroot = "/explicit"
	o.ApplyManifest(m)

	if o.Sysroot != "/explicit" {
		t.Errorf("explicit sysroot overwritten: %q", o.Sysroot)
	}
	if o.Triple != "aarch64-unknown-orihime" {
		t.Errorf("triple = %q, want manifest value", o.Triple)
	}
	if o.Linker != "/opt/orihime/bin/ld.lld" {
		t.Errorf("linker = %q, want manifest value", o.Linker)
	}
	if o.CIncludeDirs != "/usr/include" {
		t.Errorf("c include dirs = %q, want manifest value", o.CIncludeDirs)
	}
	if len(o.ExtraLibDirs) != 1 || o.ExtraLibDirs[0] != "/opt/orihime/vendor/lib" {
		t.Errorf("extra lib dirs = %v, want manifest value", o.ExtraLibDirs)
	}

	o.ApplyManifest(nil) // must be a no-op
	if o.Triple != "aarch64-unknown-orihime" {
		t.Error("nil manifest must not change options")
	}
}

func TestOptionsFeatures(t *testing.T) {
	o := DefaultOptions()
	fl := o.Features()
	if !fl[toolchain.FeatureExceptions] || fl[toolchain.FeatureUseInitArray] {
		t.Errorf("default features = %v", fl)
	}

	o.Exceptions = false
	o.UseInitArray = true
	fl = o.Features()
	if fl[toolchain.FeatureExceptions] || !fl[toolchain.FeatureUseInitArray] {
		t.Errorf("features = %v after flipping flags", fl)
	}
}

func TestLinkOptions(t *testing.T) {
	o := DefaultOptions()
	o.Inputs = []string{"a.o"}
	o.Output = ""
	o.LTO = "thin"

	lo, err := o.LinkOptions()
	if err != nil {
		t.Fatalf("LinkOptions: %v", err)
	}
	if lo.Output != "a.out" {
		t.Errorf("empty output must default to a.out, got %q", lo.Output)
	}
	if lo.LTO != toolchain.LTOThin {
		t.Errorf("LTO = %v, want thin", lo.LTO)
	}

	o.LTO = "fat"
	if _, err := o.LinkOptions(); err == nil {
		t.Error("expected error for invalid LTO spelling")
	}
}

func TestToolchainConfig(t *testing.T) {
	o := DefaultOptions()
	o.Sysroot = "/sr"

	cfg, err := o.ToolchainConfig("/inst/bin", "/inst/bin", nil)
	if err != nil {
		t.Fatalf("ToolchainConfig: %v", err)
	}
	if cfg.Triple.String() != target.DefaultTriple {
		t.Errorf("triple = %q, want default %q", cfg.Triple.String(), target.DefaultTriple)
	}
	if cfg.Platform.Name != "orihime" {
		t.Errorf("platform = %q", cfg.Platform.Name)
	}

	o.Triple = "not-a-triple-at-all-"
	if _, err := o.ToolchainConfig("/inst/bin", "", nil); err == nil {
		t.Error("expected error for malformed triple")
	}
}

func TestProbeKey(t *testing.T) {
	o := DefaultOptions()
	o.Sysroot = "/sr"
	cfg, err := o.ToolchainConfig("/inst", "", nil)
	if err != nil {
		t.Fatalf("ToolchainConfig: %v", err)
	}

	base := probeKey(cfg)
	if again := probeKey(cfg); again != base {
		t.Error("probe key must be stable for identical configs")
	}

	other := cfg
	other.Sysroot = "/other"
	if probeKey(other) == base {
		t.Error("sysroot change must change the probe key")
	}

	flipped := cfg
	flipped.Features = toolchain.Features{
		toolchain.FeatureExceptions:   false,
		toolchain.FeatureUseInitArray: false,
	}
	if probeKey(flipped) == base {
		t.Error("feature change must change the probe key")
	}
}
