package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"flint/internal/backend/llvm/md"
)

// parseDebugMode maps the user-facing debug mode names onto emission kinds.
func parseDebugMode(value string) (md.EmissionKind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "full":
		return md.FullDebug, nil
	case "lines", "line-tables":
		return md.LineTablesOnly, nil
	case "none", "off":
		return md.NoDebug, nil
	default:
		return md.NoDebug, fmt.Errorf("invalid debug mode %q (expected full, lines or none)", value)
	}
}

func readDebugMode(cmd *cobra.Command) (md.EmissionKind, error) {
	value, err := cmd.Flags().GetString("debug")
	if err != nil {
		return md.NoDebug, fmt.Errorf("failed to read debug flag: %w", err)
	}
	return parseDebugMode(value)
}
