package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"oricc/internal/diag"
	"oricc/internal/diagfmt"
	"oricc/internal/driver"
)

var cc1argsCmd = &cobra.Command{
	Use:   "cc1-args",
	Short: "Print the compiler frontend arguments for this target",
	Long:  "Print the codegen flags and system include search arguments the driver hands to the compiler frontend, one invocation per line.",
	Args:  cobra.NoArgs,
	RunE:  cc1argsExecution,
}

func cc1argsExecution(cmd *cobra.Command, _ []string) error {
	opts, err := readTargetOptions(cmd)
	if err != nil {
		return err
	}
	if opts.CXX, err = cmd.Flags().GetBool("cxx"); err != nil {
		return err
	}
	if opts.CXXStdlib, err = cmd.Flags().GetString("stdlib"); err != nil {
		return err
	}
	if opts.NoStdInc, err = cmd.Flags().GetBool("nostdinc"); err != nil {
		return err
	}
	if opts.NoBuiltinInc, err = cmd.Flags().GetBool("nobuiltininc"); err != nil {
		return err
	}
	if opts.NoStdlibInc, err = cmd.Flags().GetBool("nostdlibinc"); err != nil {
		return err
	}
	if opts.NoStdIncCXX, err = cmd.Flags().GetBool("nostdinc++"); err != nil {
		return err
	}
	useColor, err := readUseColor(cmd)
	if err != nil {
		return err
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	installedDir, driverDir := installedDirs()
	built, err := driver.BuildToolchain(opts, installedDir, driverDir,
		diag.NewDedupReporter(diag.BagReporter{Bag: bag}))
	if err != nil {
		return err
	}
	tc := built.Toolchain

	args := []string{"-triple", tc.EffectiveTriple()}
	args = append(args, tc.CodegenFlags(opts.Features())...)
	if dir := tc.ResourceDir(); dir != "" {
		args = append(args, "-resource-dir", dir)
	}

	// The C++ standard library headers must shadow the C system headers,
	// so they go on the search path first.
	inc := opts.IncludeOptions()
	if opts.CXX {
		for _, dir := range tc.CXXStdlibIncludeDirs(inc, opts.CXXStdlib) {
			args = append(args, "-internal-isystem", dir)
		}
	}
	system, externC := tc.SystemIncludeDirs(inc)
	for _, dir := range system {
		args = append(args, "-internal-isystem", dir)
	}
	for _, dir := range externC {
		args = append(args, "-internal-externc-isystem", dir)
	}

	diagfmt.Pretty(os.Stderr, bag, diagfmt.PrettyOpts{Color: useColor, ShowNotes: true})
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(args, " "))
	return nil
}

func init() {
	registerTargetFlags(cc1argsCmd)
	cc1argsCmd.Flags().Bool("cxx", false, "compute arguments for a C++ compilation")
	cc1argsCmd.Flags().String("stdlib", "", "C++ standard library name (libc++)")
	cc1argsCmd.Flags().Bool("nostdinc", false, "suppress all system include directories")
	cc1argsCmd.Flags().Bool("nobuiltininc", false, "suppress the compiler resource include directory")
	cc1argsCmd.Flags().Bool("nostdlibinc", false, "suppress the target standard library include directories")
	cc1argsCmd.Flags().Bool("nostdinc++", false, "suppress the C++ standard library include directories")
}
