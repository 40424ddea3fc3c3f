package driver

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"oricc/internal/diag"
)

// VerifyInputs checks that every link input names an existing file before
// the linker is spawned, so the user gets one diagnostic per missing file
// instead of whatever the linker prints. Inputs are checked in parallel;
// diagnostics are reported in the original input order.
func VerifyInputs(ctx context.Context, inputs []string, jobs int, rep diag.Reporter) error {
	if len(inputs) == 0 {
		diag.Errorf(rep, diag.LnkNoInputs, "no input files")
		return fmt.Errorf("no input files")
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// One slot per input; indexes are unique per goroutine, no mutex.
	problems := make([]string, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(inputs)))

	for i, path := range inputs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			info, err := os.Stat(path)
			switch {
			case err != nil:
				problems[i] = fmt.Sprintf("no such file: %s", path)
			case info.IsDir():
				problems[i] = fmt.Sprintf("%s is a directory", path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	missing := 0
	for _, msg := range problems {
		if msg == "" {
			continue
		}
		missing++
		diag.Errorf(rep, diag.LnkMissingInput, "%s", msg)
	}
	if missing > 0 {
		return fmt.Errorf("%d link input(s) unusable", missing)
	}
	return nil
}
