package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pds-generator/internal/analyze"
	"pds-generator/internal/catalog"
	"pds-generator/internal/gen"
)

var verifyRuntime bool

var verifyCmd = &cobra.Command{
	Use:   "verify [schema.yaml]...",
	Short: "Type-check generated packages against their schemas",
	Long: `Verify loads the packages generated for each schema from the output
directory, type-checks them and compares every item with the schema: the
declared fields, aliases of identical items, entity and migration methods,
and the root package's entity record and aliases.

With --runtime the data type and container ids of the pds runtime package
are compared with the type catalog as well.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyRuntime, "runtime", false, "also verify the pds runtime package")
}

func runVerify(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !verifyRuntime {
		return errors.New("verify needs a schema or --runtime")
	}

	a := analyze.NewAnalyzer()
	var errs []error

	if verifyRuntime {
		if err := a.LoadPackages("", cfg.Gen.RuntimeImport); err != nil {
			return err
		}

		r := a.VerifyRuntime(catalog.Default(), cfg.Gen.RuntimeImport)
		if err := r.Err(); err != nil {
			errs = append(errs, fmt.Errorf("runtime %s: %w", cfg.Gen.RuntimeImport, err))
		}
	}

	for _, p := range args {
		f, pkg, err := loadPackage(p)
		if err != nil {
			return err
		}

		gc := cfg.Gen
		if gc.DefaultVersion == "" {
			gc.DefaultVersion = f.DefaultVersion
		}

		g := gen.NewGenerator(gc, logger)

		def, err := g.DefaultVersion(pkg)
		if err != nil {
			return err
		}

		root := g.RootImportPath(pkg)
		if err := a.LoadPackages(cfg.Gen.OutputDir, root+"/..."); err != nil {
			return err
		}

		r := a.Verify(pkg, root, def)
		if err := r.Err(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			continue
		}

		logger.Info("verified", zap.String("schema", p), zap.String("package", root))
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "generated code matches")

	return nil
}
