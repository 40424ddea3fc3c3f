// Package prof wires the Go runtime profilers into driver runs.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Options name the output paths for the runtime profilers. An empty
// path leaves that profiler off.
type Options struct {
	CPUPath   string
	MemPath   string
	TracePath string
}

// Enabled reports whether any profiler is requested.
func (o Options) Enabled() bool {
	return o.CPUPath != "" || o.MemPath != "" || o.TracePath != ""
}

// Start enables the requested profilers and returns a stop function
// that flushes them. The stop function is safe to call more than once.
// When a later profiler fails to start, every earlier one is rolled
// back before the error returns.
func Start(opts Options) (func() error, error) {
	var cpuFile, traceFile *os.File

	rollback := func(err error) (func() error, error) {
		if cpuFile != nil {
			pprof.StopCPUProfile()
			_ = cpuFile.Close()
		}
		return nil, err
	}

	if opts.CPUPath != "" {
		f, err := os.Create(opts.CPUPath)
		if err != nil {
			return nil, err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("start cpu profile: %w", err)
		}
		cpuFile = f
	}
	if opts.TracePath != "" {
		f, err := os.Create(opts.TracePath)
		if err != nil {
			return rollback(err)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			return rollback(fmt.Errorf("start runtime trace: %w", err))
		}
		traceFile = f
	}

	done := false
	stop := func() error {
		if done {
			return nil
		}
		done = true
		if traceFile != nil {
			trace.Stop()
			_ = traceFile.Close()
		}
		if cpuFile != nil {
			pprof.StopCPUProfile()
			_ = cpuFile.Close()
		}
		if opts.MemPath != "" {
			return writeHeap(opts.MemPath)
		}
		return nil
	}
	return stop, nil
}

// writeHeap captures a heap profile after forcing a collection so the
// profile reflects live objects.
func writeHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
