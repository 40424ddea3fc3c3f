package main

import (
	"fmt"
	"io"
	"time"

	"oricc/internal/pipeline"
)

func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	if timings.Has(pipeline.StageResolve) {
		_, _ = fmt.Fprintf(out, "resolved %.1f ms\n", toMillis(timings.Duration(pipeline.StageResolve)))
	}
	if timings.Has(pipeline.StageVerify) {
		_, _ = fmt.Fprintf(out, "verified %.1f ms\n", toMillis(timings.Duration(pipeline.StageVerify)))
	}
	if timings.Has(pipeline.StageLink) {
		_, _ = fmt.Fprintf(out, "linked %.1f ms\n", toMillis(timings.Duration(pipeline.StageLink)))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
