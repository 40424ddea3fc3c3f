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

var searchDirsCmd = &cobra.Command{
	Use:   "search-dirs",
	Short: "Print the toolchain search directories",
	Long:  "Print the program and library search directories the resolved toolchain would use, plus the selected multilib variant.",
	Args:  cobra.NoArgs,
	RunE:  searchDirsExecution,
}

func searchDirsExecution(cmd *cobra.Command, _ []string) error {
	opts, err := readTargetOptions(cmd)
	if err != nil {
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
	diagfmt.Pretty(os.Stderr, bag, diagfmt.PrettyOpts{Color: useColor, ShowNotes: true})

	tc := built.Toolchain
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "programs: =%s\n", strings.Join(tc.ProgramPaths(), ":"))
	_, _ = fmt.Fprintf(out, "libraries: =%s\n", strings.Join(tc.FilePaths(), ":"))
	variant := "."
	if m, ok := tc.SelectedMultilib(); ok && !m.IsDefault() {
		variant = m.Suffix
	}
	_, _ = fmt.Fprintf(out, "multilib: %s\n", variant)
	return nil
}

func init() {
	registerTargetFlags(searchDirsCmd)
}
