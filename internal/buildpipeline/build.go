// Package buildpipeline orchestrates the compilation process.
package buildpipeline

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"flint/internal/fir"
	"flint/internal/observ"
)

// BuildRequest configures output generation for a compilation.
type BuildRequest struct {
	CompileRequest
	OutputName    string
	OutputRoot    string
	Profile       string
	EmitFIR       bool
	EmitLLVM      bool
	KeepTmp       bool
	PrintCommands bool
	LinkWith      []string
}

// BuildResult captures build artefacts and timings.
type BuildResult struct {
	OutputPath string
	TmpDir     string
	Timings    Timings
	Report     observ.Report
	Module     *fir.Module
	IR         string
}

// Build compiles a module and links it into an executable.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	var result BuildResult
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	reqCopy := *req
	req = &reqCopy

	if req.OutputName == "" {
		req.OutputName = "a.out"
	}
	if req.Profile == "" {
		req.Profile = "debug"
	}

	compileRes, err := Compile(ctx, &req.CompileRequest)
	result.Timings = compileRes.Timings
	result.Report = compileRes.Report
	result.Module = compileRes.Module
	result.IR = compileRes.IR
	if err != nil {
		return result, err
	}

	// A library module compiles fine, but an executable needs main.
	if err := ValidateEntrypoint(compileRes.Module); err != nil {
		emitStage(req.Progress, req.Files, StageBuild, StatusError, err, 0)
		return result, err
	}

	outputRoot := req.OutputRoot
	if outputRoot == "" {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			cwd = "."
		}
		outputRoot = cwd
	}
	outputDir := filepath.Join(outputRoot, "target", req.Profile)
	outputPath := filepath.Join(outputDir, req.OutputName)
	tmpDir := filepath.Join(outputDir, ".tmp", req.OutputName)
	result.OutputPath = outputPath
	result.TmpDir = tmpDir

	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return result, fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := os.MkdirAll(tmpDir, 0o750); err != nil {
		return result, fmt.Errorf("failed to create tmp dir: %w", err)
	}

	if req.EmitFIR {
		dumpPath := filepath.Join(tmpDir, "out.fir.txt")
		if err := writeModuleDump(dumpPath, compileRes.Module); err != nil {
			emitStage(req.Progress, req.Files, StageBuild, StatusError, err, 0)
			return result, err
		}
	}

	buildStart := time.Now()
	emitStage(req.Progress, req.Files, StageBuild, StatusWorking, nil, 0)

	if err := ensureClangAvailable(); err != nil {
		emitStage(req.Progress, req.Files, StageBuild, StatusError, err, 0)
		return result, err
	}
	llPath := filepath.Join(tmpDir, "out.ll")
	if err := os.WriteFile(llPath, []byte(compileRes.IR), 0o600); err != nil {
		err = fmt.Errorf("failed to write LLVM IR: %w", err)
		emitStage(req.Progress, req.Files, StageBuild, StatusError, err, 0)
		return result, err
	}
	objPath := filepath.Join(tmpDir, "out.o")
	if err := compileLLVMIR(req.PrintCommands, llPath, objPath); err != nil {
		emitStage(req.Progress, req.Files, StageBuild, StatusError, err, 0)
		return result, err
	}
	buildDur := time.Since(buildStart)
	result.Timings.Set(StageBuild, buildDur)
	result.Report.AppendPhase("build", buildDur, "")

	linkStart := time.Now()
	emitStage(req.Progress, req.Files, StageLink, StatusWorking, nil, 0)
	if err := linkOutput(req.PrintCommands, objPath, outputPath, req.LinkWith); err != nil {
		emitStage(req.Progress, req.Files, StageLink, StatusError, err, 0)
		return result, err
	}
	linkDur := time.Since(linkStart)
	result.Timings.Set(StageLink, linkDur)
	result.Report.AppendPhase("link", linkDur, "")

	keepTmp := req.KeepTmp || req.EmitFIR || req.EmitLLVM
	if !keepTmp {
		if err := os.RemoveAll(tmpDir); err != nil {
			return result, fmt.Errorf("failed to clean tmp dir: %w", err)
		}
	}

	emitStage(req.Progress, req.Files, StageBuild, StatusDone, nil, result.Timings.Duration(StageBuild))
	return result, nil
}

func writeModuleDump(targetPath string, mod *fir.Module) error {
	if mod == nil {
		return fmt.Errorf("missing module")
	}
	// #nosec G304 -- path is derived from build output configuration
	file, err := os.Create(targetPath)
	if err != nil {
		return fmt.Errorf("failed to write module dump: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			// Игнорируем ошибку закрытия файла, так как основная операция уже завершена
			_ = closeErr
		}
	}()
	if err := fir.DumpModule(file, mod); err != nil {
		return fmt.Errorf("failed to dump module: %w", err)
	}
	return nil
}

func ensureClangAvailable() error {
	if _, err := exec.LookPath("clang"); err != nil {
		return fmt.Errorf("clang not found; install with: sudo apt-get update && sudo apt-get install -y clang llvm lld")
	}
	return nil
}

func compileLLVMIR(printCommands bool, llPath, objPath string) error {
	if err := runCommand(printCommands, "clang", "-c", "-x", "ir", llPath, "-o", objPath); err == nil {
		return nil
	}
	// Fallback to llc
	llcPath, llcErr := exec.LookPath("llc")
	if llcErr != nil {
		return fmt.Errorf("clang failed and llc not found: %w", llcErr)
	}
	triple := hostTripleFromClang()
	args := []string{"-filetype=obj", llPath, "-o", objPath}
	if triple != "" {
		args = append([]string{"-mtriple=" + triple}, args...)
	}
	if err := runCommand(printCommands, llcPath, args...); err != nil {
		return fmt.Errorf("clang and llc failed: %w", err)
	}
	if printCommands {
		_, printErr := fmt.Fprintln(os.Stdout, "note: clang IR compile failed; fell back to llc")
		if printErr != nil {
			return fmt.Errorf("failed to print command: %w", printErr)
		}
	}
	return nil
}

func hostTripleFromClang() string {
	out, err := exec.Command("clang", "-dumpmachine").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func linkOutput(printCommands bool, objPath, outputPath string, extra []string) error {
	args := []string{objPath}
	args = append(args, extra...)
	args = append(args, "-o", outputPath)
	return runCommand(printCommands, "clang", args...)
}

func runCommand(printCommands bool, name string, args ...string) error {
	if printCommands {
		_, printErr := fmt.Fprintf(os.Stdout, "%s %s\n", name, strings.Join(args, " "))
		if printErr != nil {
			return fmt.Errorf("failed to print command: %w", printErr)
		}
	}
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return err
		}
		return fmt.Errorf("%s: %s", name, msg)
	}
	return nil
}
