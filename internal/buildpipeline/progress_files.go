package buildpipeline

import (
	"path/filepath"
	"sort"

	"flint/internal/fir"
)

// expandProgressFiles fills an empty progress file list with the source
// paths recorded in the decoded module and queues rows for them. A list
// the caller seeded stays untouched so its rows keep receiving events.
func expandProgressFiles(req *CompileRequest, mod *fir.Module) {
	if req == nil || req.Progress == nil || mod == nil {
		return
	}
	if len(req.Files) > 0 || len(mod.Files) == 0 {
		return
	}
	displayFiles := normalizeProgressFiles(mod.Files)
	if len(displayFiles) == 0 {
		return
	}
	req.Files = displayFiles
	emitQueued(req.Progress, displayFiles)
}

func normalizeProgressFiles(files []string) []string {
	if len(files) == 0 {
		return files
	}
	normalized := make([]string, 0, len(files))
	seen := make(map[string]struct{}, len(files))
	for _, file := range files {
		if file == "" {
			continue
		}
		path := filepath.ToSlash(filepath.Clean(file))
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		normalized = append(normalized, path)
	}
	sort.Strings(normalized)
	return normalized
}
