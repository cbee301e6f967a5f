package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pds-generator/internal/diagnostic"
	"pds-generator/internal/dispatch"
)

var checkCmd = &cobra.Command{
	Use:   "check <schema.yaml>...",
	Short: "Lint pds schemas without generating code",
	Long: `Check links each schema and reports errors, warnings and hints:
link failures, migrations that cannot be planned, an entity table that
cannot be built or is crowded, previous fields no mapping accounts for,
one-way custom mappings, empty and unreferenced items.

The exit status is 2 when any schema has errors.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

var severityColors = map[diagnostic.Severity]*color.Color{
	diagnostic.SeverityError:   color.New(color.FgRed, color.Bold),
	diagnostic.SeverityWarning: color.New(color.FgYellow),
	diagnostic.SeverityInfo:    color.New(color.FgCyan),
}

func runCheck(cmd *cobra.Command, args []string) error {
	failed := false

	for _, p := range args {
		d := checkSchema(p, cfg.EntityTable)
		printDiagnostics(cmd.OutOrStdout(), p, d)

		if d.HasErrors() {
			failed = true
		}
	}

	if failed {
		return errDiagnostics
	}

	return nil
}

// checkSchema links the schema at path and lints it.
func checkSchema(path string, entities dispatch.EntityTableConfig) diagnostic.Diagnostics {
	_, pkg, err := loadPackage(path)
	if err != nil {
		return diagnostic.FromError(err)
	}

	return diagnostic.Check(pkg, entities)
}

func printDiagnostics(w io.Writer, name string, d diagnostic.Diagnostics) {
	for _, x := range d.All() {
		label := x.Severity.String()
		if c, ok := severityColors[x.Severity]; ok {
			label = c.Sprint(label)
		}

		fmt.Fprintf(w, "%s: %s: %s\n", name, label, x.String())
	}

	fmt.Fprintf(w, "%s: %d errors, %d warnings, %d hints\n", name, len(d.Errors), len(d.Warnings), len(d.Infos))
}
