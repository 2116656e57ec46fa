package buildpipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// BatchItem is the outcome of building one target in a batch.
type BatchItem struct {
	TargetPath string
	Result     BuildResult
	Err        error
}

// BuildAll builds every target in parallel, reusing req for shared
// settings. Each target gets its own output name derived from the
// target basename, so parallel builds never share a tmp dir. Build
// failures are recorded per item; only context cancellation aborts
// the whole batch.
func BuildAll(ctx context.Context, targets []string, req *BuildRequest, jobs int) ([]BatchItem, error) {
	if req == nil {
		return nil, fmt.Errorf("missing build request")
	}
	if len(targets) == 0 {
		return nil, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]BatchItem, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(targets)))

	for i, target := range targets {
		g.Go(func(i int, target string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				itemReq := *req
				itemReq.TargetPath = target
				if itemReq.OutputName == "" || len(targets) > 1 {
					itemReq.OutputName = outputNameFor(target)
				}
				res, err := Build(gctx, &itemReq)
				results[i] = BatchItem{TargetPath: target, Result: res, Err: err}
				return nil
			}
		}(i, target))
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func outputNameFor(target string) string {
	base := filepath.Base(target)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		return "a.out"
	}
	return name
}
