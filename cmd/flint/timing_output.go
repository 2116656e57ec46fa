package main

import (
	"fmt"
	"io"
	"time"

	"flint/internal/buildpipeline"
	"flint/internal/observ"
)

func printStageTimings(out io.Writer, timings buildpipeline.Timings, includeBuilt bool) {
	if out == nil {
		return
	}
	var printErr error
	if timings.Has(buildpipeline.StageDecode) {
		_, printErr = fmt.Fprintf(out, "decoded %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageDecode)))
		if printErr != nil {
			panic(printErr)
		}
	}
	if timings.Has(buildpipeline.StageValidate) {
		_, printErr = fmt.Fprintf(out, "validated %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageValidate)))
		if printErr != nil {
			panic(printErr)
		}
	}
	if timings.Has(buildpipeline.StageEmit) {
		_, printErr = fmt.Fprintf(out, "emitted %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageEmit)))
		if printErr != nil {
			panic(printErr)
		}
	}
	if includeBuilt && (timings.Has(buildpipeline.StageBuild) || timings.Has(buildpipeline.StageLink)) {
		built := timings.Sum(buildpipeline.StageBuild, buildpipeline.StageLink)
		_, printErr = fmt.Fprintf(out, "built %.1f ms\n", toMillis(built))
		if printErr != nil {
			panic(printErr)
		}
	}
}

// printTimingsReport dumps the per-phase breakdown requested by --timings.
func printTimingsReport(out io.Writer, report observ.Report) {
	if out == nil || len(report.Phases) == 0 {
		return
	}
	if _, err := fmt.Fprint(out, report.Summary()); err != nil {
		panic(err)
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
