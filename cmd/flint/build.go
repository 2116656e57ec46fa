package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"flint/internal/buildpipeline"
	"flint/internal/version"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [module.fir]",
	Short: "Build a flint module into an executable",
	Long: "Build compiles a serialized .fir module to LLVM IR, lowers it with clang\n" +
		"and links the result into target/<profile>/. Without an explicit module\n" +
		"argument the input comes from flint.toml.",
	Args: cobra.MaximumNArgs(1),
	RunE: buildExecution,
}

func buildExecution(cmd *cobra.Command, args []string) error {
	release, err := cmd.Flags().GetBool("release")
	if err != nil {
		return err
	}
	dev, err := cmd.Flags().GetBool("dev")
	if err != nil {
		return err
	}
	emitFIR, err := cmd.Flags().GetBool("emit-fir")
	if err != nil {
		return err
	}
	emitLLVM, err := cmd.Flags().GetBool("emit-llvm")
	if err != nil {
		return err
	}
	keepTmpFlag, err := cmd.Flags().GetBool("keep-tmp")
	if err != nil {
		return err
	}
	printCommands, err := cmd.Flags().GetBool("print-commands")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	triple, err := cmd.Flags().GetString("triple")
	if err != nil {
		return err
	}
	linkWith, err := cmd.Flags().GetStringArray("link")
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

	if release && dev {
		return fmt.Errorf("--release and --dev are mutually exclusive")
	}

	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	manifest, manifestFound, err := loadProjectManifest(".")
	if err != nil {
		return err
	}

	var (
		targetPath string
		baseDir    string
		outputName string
	)
	switch {
	case len(args) > 0 && filepath.Clean(args[0]) != ".":
		targetPath = args[0]
		if filepath.Ext(targetPath) != ".fir" {
			return fmt.Errorf("%s is not a .fir module", targetPath)
		}
		outputName = outputNameFromPath(targetPath)
	case manifestFound:
		targetPath, err = resolveManifestInput(manifest)
		if err != nil {
			return err
		}
		baseDir = manifest.Root
		outputName = manifest.Config.Package.Name
	default:
		return errors.New(noFlintTomlMessage)
	}
	if outputName == "" {
		outputName = "a.out"
	}

	debugMode, err := readDebugMode(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("debug") && manifestFound && manifest.Config.Target.Debug != "" {
		debugMode, err = parseDebugMode(manifest.Config.Target.Debug)
		if err != nil {
			return err
		}
	}
	if triple == "" && manifestFound {
		triple = manifest.Config.Target.Triple
	}

	var extraObjects []string
	if manifestFound {
		extraObjects = manifestLinkObjects(manifest)
	}
	extraObjects = append(extraObjects, linkWith...)

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

	profile := "debug"
	if release {
		profile = "release"
	}

	outputRoot := baseDir
	if outputRoot == "" {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			cwd = "."
		}
		outputRoot = cwd
	}

	useTUI := shouldUseTUI(uiModeValue)
	displayFiles := displayFileList([]string{targetPath}, baseDir)

	buildReq := buildpipeline.BuildRequest{
		CompileRequest: buildpipeline.CompileRequest{
			TargetPath: targetPath,
			Files:      displayFiles,
			Debug:      debugMode,
			Triple:     triple,
			Producer:   version.Producer(),
			DevChecks:  dev,
		},
		OutputName:    outputName,
		OutputRoot:    outputRoot,
		Profile:       profile,
		EmitFIR:       emitFIR,
		EmitLLVM:      emitLLVM,
		KeepTmp:       keepTmpFlag,
		PrintCommands: printCommands,
		LinkWith:      extraObjects,
	}

	var buildRes buildpipeline.BuildResult
	if useTUI && len(displayFiles) > 0 {
		buildRes, err = runBuildWithUI(cmd.Context(), "flint build", displayFiles, &buildReq)
	} else {
		buildRes, err = buildpipeline.Build(cmd.Context(), &buildReq)
	}
	if err != nil {
		printStageTimings(os.Stdout, buildRes.Timings, false)
		return err
	}

	if keepTmpFlag {
		_, fprintfErr := fmt.Fprintf(os.Stdout, "tmp dir: %s\n", formatPathForOutput(outputRoot, buildRes.TmpDir))
		if fprintfErr != nil {
			return fprintfErr
		}
	}
	if !quiet {
		printStageTimings(os.Stdout, buildRes.Timings, true)
	}
	if showTimings {
		printTimingsReport(os.Stdout, buildRes.Report)
	}
	_, fprintfErr := fmt.Fprintf(os.Stdout, "built %s\n", formatPathForOutput(outputRoot, buildRes.OutputPath))
	if fprintfErr != nil {
		return fprintfErr
	}
	return nil
}

func outputNameFromPath(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func formatPathForOutput(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	if strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

func init() {
	buildCmd.Flags().Bool("release", false, "optimize for release")
	buildCmd.Flags().Bool("dev", false, "development build with extra metadata checks")
	buildCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
	buildCmd.Flags().String("debug", "full", "debug info to emit (full|lines|none)")
	buildCmd.Flags().String("triple", "", "override the target triple")
	buildCmd.Flags().StringArray("link", nil, "extra object files to pass to the linker")
	buildCmd.Flags().Bool("emit-fir", false, "dump the decoded module to target/.tmp")
	buildCmd.Flags().Bool("emit-llvm", false, "keep the generated LLVM IR in target/.tmp")
	buildCmd.Flags().Bool("keep-tmp", false, "preserve target/.tmp contents")
	buildCmd.Flags().Bool("print-commands", false, "print clang/llc invocations")
}
