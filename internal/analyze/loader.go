package analyze

import (
	"errors"
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedImports |
	packages.NeedDeps

// Analyzer holds type-checked packages by import path.
type Analyzer struct {
	pkgs map[string]*types.Package
}

// NewAnalyzer creates an empty Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{pkgs: make(map[string]*types.Package)}
}

// LoadPackages loads and type-checks the packages matching patterns,
// resolved from dir (the working directory when empty), and adds them and
// their dependencies. Patterns are standard Go package patterns
// ("./gen/...", "example.com/app/gen/shapes/v1").
func (a *Analyzer) LoadPackages(dir string, patterns ...string) error {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}

		if pkg.Types != nil {
			a.Add(pkg.Types)
		}
	})

	if len(errs) > 0 {
		return fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	return nil
}

// Add adds a type-checked package, replacing one with the same path.
func (a *Analyzer) Add(pkg *types.Package) {
	a.pkgs[pkg.Path()] = pkg
}

// Package returns the package with the import path p.
func (a *Analyzer) Package(p string) (*types.Package, bool) {
	pkg, ok := a.pkgs[p]
	return pkg, ok
}
