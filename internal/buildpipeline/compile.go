package buildpipeline

import (
	"context"
	"fmt"
	"time"

	"flint/internal/backend/llvm"
	"flint/internal/backend/llvm/md"
	"flint/internal/fir"
	"flint/internal/observ"
	"flint/internal/trace"
)

// CompileRequest configures the shared compilation pipeline.
type CompileRequest struct {
	TargetPath string
	Progress   ProgressSink
	Files      []string
	Debug      md.EmissionKind
	Triple     string
	Producer   string
	DevChecks  bool
}

// CompileResult captures compilation artefacts and stage timings.
// Report carries the per-phase breakdown and is only populated on
// success.
type CompileResult struct {
	Module  *fir.Module
	IR      string
	Timings Timings
	Report  observ.Report
}

// Compile decodes the target module, validates it, and emits LLVM IR.
// The binary never touches disk here; Build layers that on top.
func Compile(ctx context.Context, req *CompileRequest) (CompileResult, error) {
	var result CompileResult
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, fmt.Errorf("missing compile request")
	}
	if req.TargetPath == "" {
		return result, fmt.Errorf("missing target path")
	}

	tracer := trace.FromContext(ctx)
	timer := observ.NewTimer()

	if req.Progress != nil && len(req.Files) > 0 {
		emitQueued(req.Progress, req.Files)
	}

	emitStage(req.Progress, req.Files, StageDecode, StatusWorking, nil, 0)
	decodeIdx := timer.Begin("decode")
	span := trace.Begin(tracer, trace.ScopePass, "decode", 0)
	span.WithExtra("path", req.TargetPath)
	mod, err := fir.ReadFile(req.TargetPath)
	span.End("")
	if err != nil {
		emitStage(req.Progress, req.Files, StageDecode, StatusError, err, 0)
		return result, err
	}
	result.Module = mod
	result.Timings.Set(StageDecode, timer.End(decodeIdx, ""))
	expandProgressFiles(req, mod)

	emitStage(req.Progress, req.Files, StageValidate, StatusWorking, nil, 0)
	validateIdx := timer.Begin("validate")
	span = trace.Begin(tracer, trace.ScopePass, "validate", 0)
	err = fir.Validate(mod)
	span.End(fmt.Sprintf("funcs=%d", len(mod.Funcs)))
	if err != nil {
		emitStage(req.Progress, req.Files, StageValidate, StatusError, err, 0)
		return result, err
	}
	result.Timings.Set(StageValidate, timer.End(validateIdx, fmt.Sprintf("funcs=%d", len(mod.Funcs))))

	emitStage(req.Progress, req.Files, StageEmit, StatusWorking, nil, 0)
	emitIdx := timer.Begin("emit")
	span = trace.Begin(tracer, trace.ScopePass, "emit_llvm", 0)
	ir, err := llvm.EmitModule(mod, llvm.Options{
		Triple:    req.Triple,
		Producer:  req.Producer,
		Debug:     req.Debug,
		DevChecks: req.DevChecks,
	})
	span.End(fmt.Sprintf("bytes=%d", len(ir)))
	if err != nil {
		err = fmt.Errorf("LLVM emit failed: %w", err)
		emitStage(req.Progress, req.Files, StageEmit, StatusError, err, 0)
		return result, err
	}
	result.IR = ir
	result.Timings.Set(StageEmit, timer.End(emitIdx, fmt.Sprintf("bytes=%d", len(ir))))
	result.Report = timer.Report()
	return result, nil
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageDecode, Status: StatusQueued})
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
