package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchSchemas bool

var generateCmd = &cobra.Command{
	Use:   "generate <schema.yaml>...",
	Short: "Generate Go packages from pds schemas",
	Long: `Generate links each schema, plans its migrations, builds its entity
table and writes the generated packages below the output directory.

Files whose content did not change are left untouched. With --watch the
schemas are regenerated whenever they are saved, until interrupted.

Example:
  pds-generator generate --output ./gen --import-path example.com/app/gen shapes.yaml
  pds-generator generate --watch shapes.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.String("default-version", "", "version aliased by the root package (default: the schema's, then the latest)")
	f.Bool("read-only", false, "make generated files read-only")
	f.BoolVarP(&watchSchemas, "watch", "w", false, "regenerate when a schema file changes")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	res, err := generateAll(ctx, cfg, logger, args)
	if err != nil && !watchSchemas {
		return err
	}

	if err != nil {
		logger.Error("generation failed", zap.Error(err))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%d files written, %d unchanged\n", res.Written, res.Unchanged)
	}

	if !watchSchemas {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	w := &watcher{
		paths:    args,
		debounce: cfg.Watch.Debounce,
		log:      logger,
		run: func() error {
			res, err := generateAll(ctx, cfg, logger, args)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d files written, %d unchanged\n", res.Written, res.Unchanged)

			return nil
		},
	}

	return w.watch(ctx)
}
