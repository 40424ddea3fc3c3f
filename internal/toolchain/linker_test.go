package toolchain

import (
	"reflect"
	"strings"
	"testing"

	"oricc/internal/diag"
)

const testLinker = "/toolchain/bin/ld"

func linkToolchain(fs []string, features Features) *Toolchain {
	return New(Config{
		Sysroot:     "/opt/target",
		ResourceDir: "/opt/target/lib/clang/1",
		Linker:      testLinker,
		Features:    features,
		Exists:      fakeExists(fs...),
	})
}

func TestLinkCommandEndToEnd(t *testing.T) {
	tc := linkToolchain(nil, Features{FeatureExceptions: true})
	cmd := tc.LinkCommand(LinkOptions{Inputs: []string{"a.o", "b.o"}, Output: "a.out"})

	want := []string{
		"--sysroot=/opt/target",
		"--build-id", "--hash-style=gnu",
		"--eh-frame-hdr",
		"-Bstatic",
		"-o", "a.out",
		"a.o", "b.o",
		"-losrt",
		"-L/opt/target/resource/development/library",
	}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Fatalf("args mismatch:\n got: %s\nwant: %s",
			strings.Join(cmd.Args, " "), strings.Join(want, " "))
	}
	if cmd.Path != testLinker {
		t.Errorf("Path = %q, want %q", cmd.Path, testLinker)
	}
	if !reflect.DeepEqual(cmd.Inputs, []string{"a.o", "b.o"}) {
		t.Errorf("declared inputs = %v", cmd.Inputs)
	}
	if cmd.Output != "a.out" {
		t.Errorf("declared output = %q, want %q", cmd.Output, "a.out")
	}
}

func TestLinkCommandNoExceptVariant(t *testing.T) {
	lib := "/opt/target/resource/development/library"
	tc := linkToolchain([]string{lib, lib + "/noexcept"}, Features{FeatureExceptions: false})

	cmd := tc.LinkCommand(LinkOptions{Inputs: []string{"a.o"}, Output: "a.out"})
	var libArgs []string
	for _, a := range cmd.Args {
		if strings.HasPrefix(a, "-L") {
			libArgs = append(libArgs, a)
		}
	}
	want := []string{"-L" + lib + "/noexcept", "-L" + lib}
	if !reflect.DeepEqual(libArgs, want) {
		t.Errorf("library search args = %v, want %v", libArgs, want)
	}
}

func TestLinkCommandRelocatable(t *testing.T) {
	tc := linkToolchain(nil, nil)

	plain := tc.LinkCommand(LinkOptions{Inputs: []string{"a.o"}, Output: "a.out"})
	for _, arg := range []string{"--build-id", "--hash-style=gnu"} {
		if !plain.HasArg(arg) {
			t.Errorf("non-relocatable link missing %s", arg)
		}
	}
	if plain.HasArg("-r") {
		t.Error("non-relocatable link must not pass -r")
	}

	rel := tc.LinkCommand(LinkOptions{Inputs: []string{"a.o"}, Output: "merged.o", Relocatable: true})
	if !rel.HasArg("-r") {
		t.Error("relocatable link must pass -r")
	}
	for _, arg := range []string{"--build-id", "--hash-style=gnu", "-losrt"} {
		if rel.HasArg(arg) {
			t.Errorf("relocatable link must not pass %s", arg)
		}
	}
}

func TestLinkCommandAlwaysStatic(t *testing.T) {
	tc := linkToolchain(nil, nil)
	opts := []LinkOptions{
		{Inputs: []string{"a.o"}, Output: "a.out"},
		{Inputs: []string{"a.o"}, Output: "a.out", Strip: true},
		{Inputs: []string{"a.o"}, Output: "merged.o", Relocatable: true},
		{Inputs: []string{"a.o"}, Output: "a.out", NoStdlib: true, NoStartFiles: true},
		{Inputs: []string{"a.o"}, Output: "a.out", LTO: LTOFull},
	}
	for _, o := range opts {
		if cmd := tc.LinkCommand(o); !cmd.HasArg("-Bstatic") {
			t.Errorf("link with options %+v missing -Bstatic", o)
		}
	}
}

func TestLinkCommandStrip(t *testing.T) {
	tc := linkToolchain(nil, nil)

	if cmd := tc.LinkCommand(LinkOptions{Inputs: []string{"a.o"}, Output: "a.out", Strip: true}); !cmd.HasArg("-s") {
		t.Error("strip link missing -s")
	}
	if cmd := tc.LinkCommand(LinkOptions{Inputs: []string{"a.o"}, Output: "a.out"}); cmd.HasArg("-s") {
		t.Error("-s must only appear when stripping")
	}
}

func TestLinkCommandFastLinker(t *testing.T) {
	tc := New(Config{
		Sysroot: "/opt/target",
		Linker:  "/toolchain/bin/ld.lld",
		Exists:  fakeExists(),
	})

	cmd := tc.LinkCommand(LinkOptions{Inputs: []string{"a.o"}, Output: "a.out"})
	if len(cmd.Args) < 2 {
		t.Fatalf("too few args: %v", cmd.Args)
	}
	if cmd.Args[0] != "-z" || cmd.Args[1] != "separate-loadable-segments" {
		t.Fatalf("expected -z separate-loadable-segments first, got %v", cmd.Args[:2])
	}
}

func TestIsFastLinker(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/usr/bin/ld.lld", true},
		{"ld.lld", true},
		{"/toolchain/bin/ld.lld.exe", true},
		{"/usr/bin/LD.LLD", true},
		{"/usr/bin/ld", false},
		{"/usr/bin/gold", false},
		{"/usr/bin/ld.bfd", false},
	}
	for _, tt := range tests {
		if got := isFastLinker(tt.path); got != tt.want {
			t.Errorf("isFastLinker(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLinkCommandRuntimeSuppression(t *testing.T) {
	tc := linkToolchain(nil, nil)

	tests := []struct {
		name string
		opts LinkOptions
		want bool
	}{
		{"default links runtime", LinkOptions{Inputs: []string{"a.o"}, Output: "a.out"}, true},
		{"nostdlib", LinkOptions{Inputs: []string{"a.o"}, Output: "a.out", NoStdlib: true}, false},
		{"nostartfiles", LinkOptions{Inputs: []string{"a.o"}, Output: "a.out", NoStartFiles: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tc.LinkCommand(tt.opts).HasArg("-losrt"); got != tt.want {
				t.Errorf("has -losrt = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLinkCommandUserSearchArgs(t *testing.T) {
	tc := linkToolchain(nil, nil)
	cmd := tc.LinkCommand(LinkOptions{
		Inputs:    []string{"a.o"},
		Output:    "a.out",
		LibPaths:  []string{"/extra/lib", "deps"},
		Undefined: []string{"main", "panic_handler"},
	})

	// User search args sit between the runtime archive and the
	// toolchain's own file paths.
	want := []string{
		"-losrt",
		"-L/extra/lib", "-Ldeps",
		"-u", "main", "-u", "panic_handler",
		"-L/opt/target/resource/development/library",
	}
	if len(cmd.Args) < len(want) {
		t.Fatalf("too few args: %v", cmd.Args)
	}
	got := cmd.Args[len(cmd.Args)-len(want):]
	if !reflect.DeepEqual(got, want) {
		t.Errorf("arg tail = %v, want %v", got, want)
	}
}

func TestLinkCommandCXXStdlib(t *testing.T) {
	tc := linkToolchain(nil, nil)

	cmd := tc.LinkCommand(LinkOptions{Inputs: []string{"a.o"}, Output: "a.out", CXX: true})
	args := strings.Join(cmd.Args, " ")
	if !strings.Contains(args, "-lc++ -losrt") {
		t.Errorf("C++ link must place -lc++ before the base runtime: %s", args)
	}

	noStd := tc.LinkCommand(LinkOptions{Inputs: []string{"a.o"}, Output: "a.out", CXX: true, NoStdlib: true})
	if noStd.HasArg("-lc++") {
		t.Error("nostdlib must suppress -lc++")
	}
}

func TestLinkCommandLTO(t *testing.T) {
	tc := linkToolchain(nil, nil)

	full := tc.LinkCommand(LinkOptions{Inputs: []string{"build/a.o"}, Output: "a.out", LTO: LTOFull})
	if !full.HasArg("--lto-O2") {
		t.Error("full LTO must pass --lto-O2")
	}

	thin := tc.LinkCommand(LinkOptions{Inputs: []string{"build/a.o", "build/b.o"}, Output: "a.out", LTO: LTOThin})
	if !thin.HasArg("--thinlto-jobs=all") {
		t.Errorf("thin LTO args missing jobs: %v", thin.Args)
	}
	if !thin.HasArg("--thinlto-cache-dir=build/thinlto-cache") {
		t.Errorf("thin LTO cache must land next to the first input: %v", thin.Args)
	}

	plain := tc.LinkCommand(LinkOptions{Inputs: []string{"a.o"}, Output: "a.out"})
	for _, arg := range plain.Args {
		if strings.HasPrefix(arg, "--lto") || strings.HasPrefix(arg, "--thinlto") {
			t.Errorf("unexpected LTO arg %q without LTO", arg)
		}
	}
}

func TestLinkCommandLTORequiresInputs(t *testing.T) {
	tc := linkToolchain(nil, nil)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for LTO with no inputs")
		}
	}()
	tc.LinkCommand(LinkOptions{Output: "a.out", LTO: LTOFull})
}

func TestLinkCommandRuntimeLibName(t *testing.T) {
	tests := []struct {
		name     string
		rtlib    string
		warnings int
	}{
		{"unset", "", 0},
		{"supported", "compiler-rt", 0},
		{"unsupported", "libgcc", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := diag.NewBag(8)
			tc := New(Config{
				Sysroot:  "/opt/target",
				Linker:   testLinker,
				Exists:   fakeExists(),
				Reporter: diag.BagReporter{Bag: bag},
			})

			cmd := tc.LinkCommand(LinkOptions{Inputs: []string{"a.o"}, Output: "a.out", RuntimeLib: tt.rtlib})
			if got := bag.CountBySeverity(diag.SevWarning); got != tt.warnings {
				t.Fatalf("warnings = %d, want %d: %v", got, tt.warnings, bag.Items())
			}
			if tt.warnings > 0 && bag.Items()[0].Code != diag.CfgInvalidRuntimeLib {
				t.Errorf("code = %v, want %v", bag.Items()[0].Code, diag.CfgInvalidRuntimeLib)
			}

			// The platform runtime is fixed, so the name never changes the args.
			if !cmd.HasArg("-losrt") {
				t.Errorf("base runtime missing: %v", cmd.Args)
			}
		})
	}
}
