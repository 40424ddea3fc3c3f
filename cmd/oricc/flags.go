package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"oricc/internal/driver"
	"oricc/internal/target"
)

// registerTargetFlags adds the flags every toolchain-facing command accepts.
func registerTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("target", "", "target triple (defaults to "+target.DefaultTriple+")")
	cmd.Flags().String("sysroot", "", "target system root")
	cmd.Flags().String("resource-dir", "", "compiler resource directory")
	cmd.Flags().String("linker", "", "linker program (defaults to ld.lld)")
	cmd.Flags().Bool("exceptions", true, "build with exception support")
	cmd.Flags().Bool("use-init-array", false, "emit static initializer arrays")
	cmd.Flags().Bool("no-cache", false, "skip the toolchain probe cache")
}

// readTargetOptions assembles driver options from flags and the nearest
// oricc.toml. Explicit flags win over manifest values.
func readTargetOptions(cmd *cobra.Command) (driver.Options, error) {
	opts := driver.DefaultOptions()
	var err error
	if opts.Triple, err = cmd.Flags().GetString("target"); err != nil {
		return opts, err
	}
	if opts.Sysroot, err = cmd.Flags().GetString("sysroot"); err != nil {
		return opts, err
	}
	if opts.ResourceDir, err = cmd.Flags().GetString("resource-dir"); err != nil {
		return opts, err
	}
	if opts.Linker, err = cmd.Flags().GetString("linker"); err != nil {
		return opts, err
	}
	if opts.Exceptions, err = cmd.Flags().GetBool("exceptions"); err != nil {
		return opts, err
	}
	if opts.UseInitArray, err = cmd.Flags().GetBool("use-init-array"); err != nil {
		return opts, err
	}
	if opts.NoCache, err = cmd.Flags().GetBool("no-cache"); err != nil {
		return opts, err
	}
	if opts.MaxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return opts, err
	}

	manifest, _, err := target.LoadManifest(".")
	if err != nil {
		return opts, err
	}
	opts.ApplyManifest(manifest)
	return opts, nil
}

// installedDirs resolves the directory holding the running binary and, when
// the invocation spelled a path, the directory it was invoked through.
func installedDirs() (installedDir, driverDir string) {
	if exe, err := os.Executable(); err == nil {
		if resolved, rerr := filepath.EvalSymlinks(exe); rerr == nil {
			exe = resolved
		}
		installedDir = filepath.Dir(exe)
	}
	if arg0 := os.Args[0]; strings.ContainsRune(arg0, os.PathSeparator) {
		if abs, err := filepath.Abs(filepath.Dir(arg0)); err == nil {
			driverDir = abs
		}
	}
	return installedDir, driverDir
}

func readUseColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout)), nil
}
