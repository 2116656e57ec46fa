package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"flint/internal/buildpipeline"
	"flint/internal/version"
)

var emitCmd = &cobra.Command{
	Use:   "emit [flags] <module.fir|dir> [...]",
	Short: "Emit LLVM IR for .fir modules",
	Long: "Emit decodes the given .fir modules and writes textual LLVM IR next to\n" +
		"each input (or into --out-dir). Directories are searched recursively.",
	Args: cobra.ArbitraryArgs,
	RunE: emitExecution,
}

func emitExecution(cmd *cobra.Command, args []string) error {
	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return err
	}
	triple, err := cmd.Flags().GetString("triple")
	if err != nil {
		return err
	}
	validate, err := cmd.Flags().GetBool("validate")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if err := applyColorMode(cmd, os.Stderr); err != nil {
		return err
	}

	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	debugMode, err := readDebugMode(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		manifest, manifestFound, loadErr := loadProjectManifest(".")
		if loadErr != nil {
			return loadErr
		}
		if !manifestFound {
			return errors.New(noFlintTomlMessage)
		}
		input, resolveErr := resolveManifestInput(manifest)
		if resolveErr != nil {
			return resolveErr
		}
		args = []string{input}
	}

	inputs, err := expandInputs(args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.New("nothing to emit")
	}

	cleanupTracing, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanupTracing()
	cleanupProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanupProfiling()

	emitReq := buildpipeline.EmitRequest{
		Inputs:    inputs,
		OutDir:    outDir,
		Debug:     debugMode,
		Triple:    triple,
		Producer:  version.Producer(),
		DevChecks: validate,
		Jobs:      jobs,
	}

	displayFiles := displayFileList(inputs, "")
	var emitRes buildpipeline.EmitResult
	if shouldUseTUI(uiModeValue) && len(displayFiles) > 0 {
		emitRes, err = runEmitWithUI(cmd.Context(), "flint emit", displayFiles, &emitReq)
	} else {
		emitRes, err = buildpipeline.Emit(cmd.Context(), &emitReq)
	}
	if err != nil {
		return err
	}

	var failures []string
	for _, item := range emitRes.Items {
		if item.Err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", item.Input, item.Err))
			continue
		}
		if !quiet {
			if _, printErr := fmt.Fprintf(os.Stdout, "wrote %s\n", filepath.ToSlash(item.OutputPath)); printErr != nil {
				return printErr
			}
		}
		if showTimings {
			printTimingsReport(os.Stdout, item.Report)
		}
	}
	if len(failures) > 0 {
		errLine := color.New(color.FgRed)
		for _, failure := range failures {
			if _, printErr := errLine.Fprintln(os.Stderr, failure); printErr != nil {
				return printErr
			}
		}
		return fmt.Errorf("emit failed for %d of %d modules", len(failures), len(emitRes.Items))
	}
	return nil
}

func init() {
	emitCmd.Flags().String("out-dir", "", "directory for generated .ll files (default: next to each input)")
	emitCmd.Flags().String("debug", "full", "debug info to emit (full|lines|none)")
	emitCmd.Flags().String("triple", "", "override the target triple")
	emitCmd.Flags().Bool("validate", false, "run extra metadata checks before emitting")
	emitCmd.Flags().Int("jobs", 0, "number of parallel emit workers (0 = GOMAXPROCS)")
	emitCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
}
