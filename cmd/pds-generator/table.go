package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pds-generator/internal/catalog"
	"pds-generator/internal/dispatch"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print dispatch tables",
}

var valueTableCmd = &cobra.Command{
	Use:   "values",
	Short: "Print the value dispatch table of the default catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := dispatch.BuildValueTable(catalog.Default(), cfg.ValueTable)
		if err != nil {
			return err
		}

		return printValueTable(cmd.OutOrStdout(), table)
	},
}

var entityTableCmd = &cobra.Command{
	Use:   "entities <schema.yaml>",
	Short: "Print the entity dispatch table of a schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, pkg, err := loadPackage(args[0])
		if err != nil {
			return err
		}

		table, err := dispatch.BuildEntityTable(pkg, cfg.EntityTable)
		if err != nil {
			return err
		}

		return printEntityTable(cmd.OutOrStdout(), table)
	},
}

func init() {
	tableCmd.AddCommand(valueTableCmd)
	tableCmd.AddCommand(entityTableCmd)
}

func printValueTable(w io.Writer, t *dispatch.ValueTable) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "SLOT\tDATA TYPE\tCONTAINER\tCOMBO")

	for _, e := range t.Entries() {
		fmt.Fprintf(tw, "%d\t0x%02x\t0x%02x\t%s\n", e.Slot, e.Combo.DataTypeID, e.Combo.ContainerID(), e.Combo.BaseTypeCombo)
	}

	fmt.Fprintf(tw, "\n%d of %d slots\n", t.Len(), t.Size())

	return tw.Flush()
}

func printEntityTable(w io.Writer, t *dispatch.EntityTable) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "SLOT\tTYPE STRING\tHASH")

	for _, e := range t.Entries() {
		fmt.Fprintf(tw, "%d\t%s\t%016x\n", e.Slot, e.TypeString, dispatch.FNV1a(e.TypeString))
	}

	fmt.Fprintf(tw, "\n%d of %d slots\n", t.Len(), t.Size())

	return tw.Flush()
}
