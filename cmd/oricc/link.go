package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"oricc/internal/diag"
	"oricc/internal/diagfmt"
	"oricc/internal/pipeline"
)

var linkCmd = &cobra.Command{
	Use:   "link [flags] inputs...",
	Short: "Link object files into an Orihime OS binary",
	Long:  "Link object files against the Orihime OS target sysroot, using oricc.toml for the target layout when present.",
	Args:  cobra.ArbitraryArgs,
	RunE:  linkExecution,
}

func linkExecution(cmd *cobra.Command, args []string) error {
	opts, err := readTargetOptions(cmd)
	if err != nil {
		return err
	}
	if opts.Output, err = cmd.Flags().GetString("output"); err != nil {
		return err
	}
	if opts.CXX, err = cmd.Flags().GetBool("cxx"); err != nil {
		return err
	}
	if opts.Strip, err = cmd.Flags().GetBool("strip"); err != nil {
		return err
	}
	if opts.Relocatable, err = cmd.Flags().GetBool("relocatable"); err != nil {
		return err
	}
	if opts.NoStdlib, err = cmd.Flags().GetBool("nostdlib"); err != nil {
		return err
	}
	if opts.NoStartFiles, err = cmd.Flags().GetBool("nostartfiles"); err != nil {
		return err
	}
	if opts.RuntimeLib, err = cmd.Flags().GetString("rtlib"); err != nil {
		return err
	}
	if opts.CXXStdlib, err = cmd.Flags().GetString("stdlib"); err != nil {
		return err
	}
	if opts.LTO, err = cmd.Flags().GetString("lto"); err != nil {
		return err
	}
	if opts.LibPaths, err = cmd.Flags().GetStringArray("lib-path"); err != nil {
		return err
	}
	if opts.Undefined, err = cmd.Flags().GetStringArray("undefined"); err != nil {
		return err
	}
	if opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return err
	}
	if opts.PrintCommands, err = cmd.Flags().GetBool("print-commands"); err != nil {
		return err
	}
	if opts.DryRun, err = cmd.Flags().GetBool("dry-run"); err != nil {
		return err
	}
	opts.Inputs = args

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	diagFormat, err := cmd.Flags().GetString("diag-format")
	if err != nil {
		return err
	}
	if diagFormat != "pretty" && diagFormat != "json" {
		return fmt.Errorf("unknown diagnostic format: %s (supported: pretty, json)", diagFormat)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	useColor, err := readUseColor(cmd)
	if err != nil {
		return err
	}
	profCleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer profCleanup()

	bag := diag.NewBag(opts.MaxDiagnostics)
	installedDir, driverDir := installedDirs()
	req := &pipeline.LinkRequest{
		Options:      &opts,
		InstalledDir: installedDir,
		DriverDir:    driverDir,
		Reporter:     diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
	}

	// Command echoing and the TUI both own stdout; echoing wins.
	useTUI := shouldUseTUI(uiModeValue) && !opts.PrintCommands && !opts.DryRun && len(opts.Inputs) > 0

	var res pipeline.LinkResult
	if useTUI {
		res, err = runLinkWithUI(cmd.Context(), "oricc link", opts.Inputs, req)
	} else {
		res, err = pipeline.Link(cmd.Context(), req)
	}

	switch diagFormat {
	case "json":
		if jsonErr := diagfmt.JSON(os.Stdout, bag, diagfmt.JSONOpts{IncludeNotes: true}); jsonErr != nil {
			return jsonErr
		}
	default:
		diagfmt.Pretty(os.Stderr, bag, diagfmt.PrettyOpts{Color: useColor, ShowNotes: true})
		if !quiet {
			diagfmt.Summary(os.Stderr, bag, useColor)
		}
	}

	if showTimings {
		_, _ = fmt.Fprint(os.Stdout, res.TimingReport.Summary())
	}
	if err != nil {
		if bag.HasErrors() {
			// Diagnostics already explain the failure.
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return fmt.Errorf("")
		}
		cmd.SilenceUsage = true
		return err
	}

	if !quiet && !opts.DryRun {
		printStageTimings(os.Stdout, res.Timings)
		_, _ = fmt.Fprintf(os.Stdout, "linked %s\n", res.OutputPath)
	}
	return nil
}

func init() {
	registerTargetFlags(linkCmd)
	linkCmd.Flags().StringP("output", "o", "a.out", "output file name")
	linkCmd.Flags().Bool("cxx", false, "link as a C++ program")
	linkCmd.Flags().BoolP("strip", "s", false, "strip symbols from the output")
	linkCmd.Flags().BoolP("relocatable", "r", false, "produce a relocatable object instead of an executable")
	linkCmd.Flags().Bool("nostdlib", false, "do not link the target runtime libraries")
	linkCmd.Flags().Bool("nostartfiles", false, "do not link the base runtime")
	linkCmd.Flags().String("rtlib", "", "runtime library name (compiler-rt)")
	linkCmd.Flags().String("stdlib", "", "C++ standard library name (libc++)")
	linkCmd.Flags().String("lto", "", "link-time optimization mode (none|full|thin)")
	linkCmd.Flags().StringArrayP("lib-path", "L", nil, "additional library search directory")
	linkCmd.Flags().StringArrayP("undefined", "u", nil, "force the symbol to be undefined")
	linkCmd.Flags().Int("jobs", 0, "input verification parallelism (0 = GOMAXPROCS)")
	linkCmd.Flags().Bool("print-commands", false, "print the linker command before running it")
	linkCmd.Flags().Bool("dry-run", false, "print the linker command without running it")
	linkCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
	linkCmd.Flags().String("diag-format", "pretty", "diagnostic output format (pretty|json)")
}
