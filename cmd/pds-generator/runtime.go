package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pds-generator/internal/catalog"
	"pds-generator/internal/dispatch"
	"pds-generator/internal/gen"
)

var runtimeDir string

var runtimeCmd = &cobra.Command{
	Use:   "runtime",
	Short: "Regenerate the value dispatch table of the pds runtime",
	Long: `Runtime renders the data type ids, container ids and the static value
dispatch table of the pds runtime package into --dir, sized by the
value_table settings.`,
	Args: cobra.NoArgs,
	RunE: runRuntime,
}

func init() {
	runtimeCmd.Flags().StringVar(&runtimeDir, "dir", "pds", "directory of the pds runtime package")
}

func runRuntime(cmd *cobra.Command, args []string) error {
	cat := catalog.Default()

	table, err := dispatch.BuildValueTable(cat, cfg.ValueTable)
	if err != nil {
		return err
	}

	gc := cfg.Gen
	gc.OutputDir = runtimeDir
	gc.ReadOnly = false

	g := gen.NewGenerator(gc, logger)

	f, err := g.Runtime(cat, table)
	if err != nil {
		return err
	}

	res, err := g.WriteFiles([]gen.GeneratedFile{f})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d slots used, %d files written\n", table.Len(), table.Size(), res.Written)

	return nil
}
