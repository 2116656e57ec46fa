package buildpipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"flint/internal/backend/llvm/md"
	"flint/internal/observ"
)

// EmitRequest configures standalone IR emission for one or more modules.
type EmitRequest struct {
	Inputs    []string
	OutDir    string
	Debug     md.EmissionKind
	Triple    string
	Producer  string
	DevChecks bool
	Jobs      int
	Progress  ProgressSink
}

// EmitItem is the outcome of emitting one module.
type EmitItem struct {
	Input      string
	OutputPath string
	Report     observ.Report
	Err        error
}

// EmitResult collects per-input outcomes in input order.
type EmitResult struct {
	Items []EmitItem
}

// Failed returns how many items did not produce output.
func (r EmitResult) Failed() int {
	n := 0
	for _, item := range r.Items {
		if item.Err != nil {
			n++
		}
	}
	return n
}

// Emit compiles every input module and writes one .ll file per input,
// next to it or into OutDir. Inputs are processed concurrently; a
// failed input does not stop the others.
func Emit(ctx context.Context, req *EmitRequest) (EmitResult, error) {
	var result EmitResult
	if req == nil {
		return result, fmt.Errorf("missing emit request")
	}
	if len(req.Inputs) == 0 {
		return result, fmt.Errorf("no input modules")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	if req.OutDir != "" {
		if err := os.MkdirAll(req.OutDir, 0o750); err != nil {
			return result, fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	if req.Progress != nil {
		emitQueued(req.Progress, req.Inputs)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	items := make([]EmitItem, len(req.Inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Inputs)))

	for i, input := range req.Inputs {
		g.Go(func(i int, input string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				items[i] = emitOne(gctx, req, input)
				return nil
			}
		}(i, input))
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	result.Items = items
	return result, nil
}

func emitOne(ctx context.Context, req *EmitRequest, input string) EmitItem {
	item := EmitItem{Input: input}
	emitFileEvent(req.Progress, input, StageDecode, StatusWorking, nil)

	res, err := Compile(ctx, &CompileRequest{
		TargetPath: input,
		Debug:      req.Debug,
		Triple:     req.Triple,
		Producer:   req.Producer,
		DevChecks:  req.DevChecks,
	})
	item.Report = res.Report
	if err != nil {
		item.Err = err
		emitFileEvent(req.Progress, input, failedStage(res.Timings), StatusError, err)
		return item
	}

	outPath := outputPathFor(input, req.OutDir)
	if err := os.WriteFile(outPath, []byte(res.IR), 0o600); err != nil {
		item.Err = fmt.Errorf("failed to write LLVM IR: %w", err)
		emitFileEvent(req.Progress, input, StageEmit, StatusError, item.Err)
		return item
	}
	item.OutputPath = outPath
	emitFileEvent(req.Progress, input, StageEmit, StatusDone, nil)
	return item
}

// failedStage reports where a compile stopped, inferred from which
// stage timings got recorded.
func failedStage(t Timings) Stage {
	switch {
	case !t.Has(StageDecode):
		return StageDecode
	case !t.Has(StageValidate):
		return StageValidate
	default:
		return StageEmit
	}
}

func emitFileEvent(sink ProgressSink, file string, stage Stage, status Status, err error) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err})
}

// outputPathFor maps an input module path to its .ll destination.
func outputPathFor(input, outDir string) string {
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		name = "out"
	}
	name += ".ll"
	if outDir != "" {
		return filepath.Join(outDir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}
