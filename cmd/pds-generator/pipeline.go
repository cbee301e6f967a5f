package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"pds-generator/internal/config"
	"pds-generator/internal/dispatch"
	"pds-generator/internal/gen"
	"pds-generator/internal/migrate"
	"pds-generator/internal/schema"
)

// loadPackage parses and links the schema file at path.
func loadPackage(path string) (*schema.File, *schema.Package, error) {
	f, err := schema.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	pkg, err := f.Build()
	if err != nil {
		return f, nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, pkg, nil
}

// generatePackage renders every file of the schema at path. A default
// version named by the schema applies unless the configuration names one.
func generatePackage(ctx context.Context, c config.Config, log *zap.Logger, path string) (*gen.Generator, []gen.GeneratedFile, error) {
	f, pkg, err := loadPackage(path)
	if err != nil {
		return nil, nil, err
	}

	plans, err := migrate.PlanPackage(pkg)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	entities, err := dispatch.BuildEntityTable(pkg, c.EntityTable)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	gc := c.Gen
	if gc.DefaultVersion == "" {
		gc.DefaultVersion = f.DefaultVersion
	}

	g := gen.NewGenerator(gc, log)

	files, err := g.Package(ctx, pkg, plans, entities)
	if err != nil {
		return nil, nil, err
	}

	return g, files, nil
}

// generateAll generates and writes every schema in paths.
func generateAll(ctx context.Context, c config.Config, log *zap.Logger, paths []string) (gen.WriteResult, error) {
	var total gen.WriteResult

	for _, p := range paths {
		g, files, err := generatePackage(ctx, c, log, p)
		if err != nil {
			return total, err
		}

		res, err := g.WriteFiles(files)
		total.Written += res.Written
		total.Unchanged += res.Unchanged

		if err != nil {
			return total, err
		}
	}

	return total, nil
}
