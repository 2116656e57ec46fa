package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flint/internal/prof"
)

// setupProfiling включает профилировщики по персистентным флагам и
// возвращает cleanup, идемпотентный при повторных вызовах.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()

	readFlag := func(name string) (string, error) {
		v, err := flags.GetString(name)
		if err != nil {
			return "", fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		return v, nil
	}

	cpuProfile, err := readFlag("cpu-profile")
	if err != nil {
		return nil, err
	}
	memProfile, err := readFlag("mem-profile")
	if err != nil {
		return nil, err
	}
	tracePath, err := readFlag("runtime-trace")
	if err != nil {
		return nil, err
	}

	stopCPU := func() {}
	if cpuProfile != "" {
		if err := prof.StartCPU(cpuProfile); err != nil {
			return nil, fmt.Errorf("failed to start cpu profile: %w", err)
		}
		stopCPU = prof.StopCPU
	}

	stopTrace := func() {}
	if tracePath != "" {
		if err := prof.StartTrace(tracePath); err != nil {
			// CPU-профиль уже пишется, останавливаем перед выходом.
			stopCPU()
			return nil, fmt.Errorf("failed to start trace: %w", err)
		}
		stopTrace = prof.StopTrace
	}

	writeMem := func() {}
	if memProfile != "" {
		writeMem = func() {
			if err := prof.WriteMem(memProfile); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write heap profile: %v\n", err)
			}
		}
	}

	cleaned := false
	return func() {
		if cleaned {
			return
		}
		cleaned = true
		stopTrace()
		stopCPU()
		writeMem()
	}, nil
}
