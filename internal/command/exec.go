package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Executor runs finalized commands. The toolchain core hands every Command
// to an Executor and never spawns processes itself.
type Executor interface {
	Run(ctx context.Context, cmd Command) error
}

// SystemExecutor runs commands with os/exec, streaming stdout and folding a
// captured stderr tail into the returned error.
type SystemExecutor struct {
	Stdout io.Writer
}

func (e SystemExecutor) Run(ctx context.Context, cmd Command) error {
	stdout := e.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	// #nosec G204 -- the argument vector is assembled by the toolchain, not a shell string
	proc := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	proc.Stdout = stdout
	var stderr strings.Builder
	proc.Stderr = &stderr
	if err := proc.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return err
		}
		return fmt.Errorf("%s: %s", cmd.Path, msg)
	}
	return nil
}

// PrintingExecutor echoes each command before handing it to the next
// executor. With a nil Next it only prints, which backs --dry-run.
type PrintingExecutor struct {
	W    io.Writer
	Next Executor
}

func (e PrintingExecutor) Run(ctx context.Context, cmd Command) error {
	w := e.W
	if w == nil {
		w = os.Stdout
	}
	if _, err := fmt.Fprintln(w, cmd.String()); err != nil {
		return fmt.Errorf("failed to print command: %w", err)
	}
	if e.Next == nil {
		return nil
	}
	return e.Next.Run(ctx, cmd)
}
