package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"oricc/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the oricc probe cache",
	Long:  "Remove the cached toolchain probe results so the next run re-probes the installed layout.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := driver.OpenProbeCache("oricc")
	if err != nil {
		return fmt.Errorf("failed to open probe cache: %w", err)
	}
	dir := cache.Dir()
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", dir, err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "removed %s\n", dir)
	return nil
}
