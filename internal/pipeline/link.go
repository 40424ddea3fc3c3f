// Package pipeline orchestrates a link run: it resolves the target toolchain,
// verifies the link inputs, assembles the linker invocation, and hands it to
// an executor, reporting per-stage progress along the way.
package pipeline

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"oricc/internal/command"
	"oricc/internal/diag"
	"oricc/internal/driver"
	"oricc/internal/observ"
	"oricc/internal/toolchain"
)

// LinkRequest configures a link run.
type LinkRequest struct {
	Options      *driver.Options
	InstalledDir string
	DriverDir    string
	Reporter     diag.Reporter
	// Executor runs the assembled linker command. When nil, one is picked
	// from the options: printing for dry runs, echo-then-run when command
	// printing is on, plain system execution otherwise.
	Executor command.Executor
	Progress ProgressSink
}

// LinkResult captures the resolved toolchain, the linker invocation, and
// stage timings.
type LinkResult struct {
	Toolchain    *toolchain.Toolchain
	Command      command.Command
	OutputPath   string
	CacheHit     bool
	Timings      Timings
	TimingReport observ.Report
}

// Link resolves the toolchain, verifies the inputs, and runs the linker.
// The timing report covers every phase that ran, also on failure.
func Link(ctx context.Context, req *LinkRequest) (result LinkResult, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, fmt.Errorf("missing link request")
	}
	if req.Options == nil {
		return result, fmt.Errorf("missing link options")
	}
	opts := req.Options
	timer := observ.NewTimer()
	defer func() { result.TimingReport = timer.Report() }()

	if req.Progress != nil && len(opts.Inputs) > 0 {
		emitQueued(req.Progress, opts.Inputs)
	}

	resolveStart := time.Now()
	resolveIdx := timer.Begin("resolve toolchain")
	emitStage(req.Progress, opts.Inputs, StageResolve, StatusWorking, nil, 0)
	built, err := driver.BuildToolchain(*opts, req.InstalledDir, req.DriverDir, req.Reporter)
	if err != nil {
		emitStage(req.Progress, opts.Inputs, StageResolve, StatusError, err, 0)
		return result, err
	}
	result.Toolchain = built.Toolchain
	result.CacheHit = built.CacheHit
	note := "probed"
	if built.CacheHit {
		note = "probe cache hit"
	}
	timer.End(resolveIdx, note)
	result.Timings.Set(StageResolve, time.Since(resolveStart))

	verifyStart := time.Now()
	verifyIdx := timer.Begin("verify inputs")
	emitStage(req.Progress, opts.Inputs, StageVerify, StatusWorking, nil, 0)
	if err := driver.VerifyInputs(ctx, opts.Inputs, opts.Jobs, req.Reporter); err != nil {
		emitStage(req.Progress, opts.Inputs, StageVerify, StatusError, err, 0)
		return result, err
	}
	timer.End(verifyIdx, fmt.Sprintf("%d file(s)", len(opts.Inputs)))
	result.Timings.Set(StageVerify, time.Since(verifyStart))

	linkOpts, err := opts.LinkOptions()
	if err != nil {
		emitStage(req.Progress, opts.Inputs, StageLink, StatusError, err, 0)
		return result, err
	}
	cmd := built.Toolchain.LinkCommand(linkOpts)
	result.Command = cmd
	result.OutputPath = cmd.Output

	// A dry run only prints the invocation, so the linker binary itself
	// does not have to be installed.
	if !opts.DryRun {
		if err := ensureLinkerAvailable(cmd.Path, req.Reporter); err != nil {
			emitStage(req.Progress, opts.Inputs, StageLink, StatusError, err, 0)
			return result, err
		}
	}

	linkStart := time.Now()
	linkIdx := timer.Begin("link")
	emitStage(req.Progress, opts.Inputs, StageLink, StatusWorking, nil, 0)
	if err := req.executor().Run(ctx, cmd); err != nil {
		emitStage(req.Progress, opts.Inputs, StageLink, StatusError, err, 0)
		return result, err
	}
	timer.End(linkIdx, cmd.Path)
	result.Timings.Set(StageLink, time.Since(linkStart))

	emitStage(req.Progress, opts.Inputs, StageLink, StatusDone, nil, result.Timings.Duration(StageLink))
	return result, nil
}

func (req *LinkRequest) executor() command.Executor {
	if req.Executor != nil {
		return req.Executor
	}
	if req.Options.DryRun {
		return command.PrintingExecutor{}
	}
	if req.Options.PrintCommands {
		return command.PrintingExecutor{Next: command.SystemExecutor{}}
	}
	return command.SystemExecutor{}
}

func ensureLinkerAvailable(path string, rep diag.Reporter) error {
	if _, err := exec.LookPath(path); err != nil {
		diag.Errorf(rep, diag.LnkLinkerNotFound,
			"linker %q not found; install with: sudo apt-get update && sudo apt-get install -y lld", path)
		return fmt.Errorf("linker %q not found", path)
	}
	return nil
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageResolve, Status: StatusQueued})
	}
}

func emitStage(sink ProgressSink, files []string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	}
}
