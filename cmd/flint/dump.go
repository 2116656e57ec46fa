package main

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"flint/internal/fir"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <module.fir>",
	Short: "Print the contents of a .fir module",
	Long:  "Dump decodes a serialized module and prints it in a readable form.",
	Args:  cobra.ExactArgs(1),
	RunE:  dumpExecution,
}

// moduleSummary is the machine-readable shape behind dump --json.
type moduleSummary struct {
	Name    string        `json:"name"`
	Files   []string      `json:"files"`
	Globals int           `json:"globals"`
	Funcs   []funcSummary `json:"funcs"`
}

type funcSummary struct {
	Name    string `json:"name"`
	Params  int    `json:"params"`
	Blocks  int    `json:"blocks"`
	Defined bool   `json:"defined"`
}

func dumpExecution(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	path := args[0]
	if filepath.Ext(path) != ".fir" {
		return fmt.Errorf("%s is not a .fir module", path)
	}
	mod, err := fir.ReadFile(path)
	if err != nil {
		return err
	}

	if asJSON {
		summary := moduleSummary{
			Name:    mod.Name,
			Files:   mod.Files,
			Globals: len(mod.Globals),
			Funcs:   make([]funcSummary, 0, len(mod.Funcs)),
		}
		for i := range mod.Funcs {
			fn := &mod.Funcs[i]
			summary.Funcs = append(summary.Funcs, funcSummary{
				Name:    fn.Name,
				Params:  fn.NumParams,
				Blocks:  len(fn.Blocks),
				Defined: fn.Defined,
			})
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	}

	return fir.DumpModule(os.Stdout, mod)
}

func init() {
	dumpCmd.Flags().Bool("json", false, "print a machine-readable module summary")
}
