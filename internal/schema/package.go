package schema

import (
	"errors"
	"fmt"
	"slices"

	"pds-generator/internal/catalog"
)

// ErrNoLatestVersion is returned by Latest when the version chain does not
// end in exactly one version.
var ErrNoLatestVersion = errors.New("no single latest version")

// Package is the root aggregate of a schema: a name, an output path and the
// ordered versions. It owns its versions and their items.
type Package struct {
	name     string
	path     string
	versions []*Version
	cat      *catalog.Catalog
}

// BuildOption configures BuildPackage.
type BuildOption func(*buildOptions)

type buildOptions struct {
	cat *catalog.Catalog
}

// WithCatalog resolves field types against cat instead of catalog.Default().
func WithCatalog(cat *catalog.Catalog) BuildOption {
	return func(o *buildOptions) { o.cat = cat }
}

// BuildPackage links and validates a package. The first violation aborts
// the build with a *DefinitionError and leaves the inputs untouched.
func BuildPackage(name, path string, versions []*Version, opts ...BuildOption) (*Package, error) {
	o := buildOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.cat == nil {
		o.cat = catalog.Default()
	}

	p := &Package{
		name:     name,
		path:     path,
		versions: versions,
		cat:      o.cat,
	}

	l := newLinker(p)
	if err := l.run(); err != nil {
		return nil, err
	}

	l.commit()

	return p, nil
}

func (p *Package) Name() string { return p.name }
func (p *Package) Path() string { return p.path }

// Catalog returns the type catalog the package was resolved against.
func (p *Package) Catalog() *catalog.Catalog { return p.cat }

// Versions returns a copy of the versions in declaration order.
func (p *Package) Versions() []*Version { return slices.Clone(p.versions) }

// FindVersion returns the version called name.
func (p *Package) FindVersion(name string) (*Version, bool) {
	for _, v := range p.versions {
		if v.name == name {
			return v, true
		}
	}

	return nil, false
}

// Latest returns the version no other version derives from.
func (p *Package) Latest() (*Version, error) {
	derived := make(map[*Version]bool, len(p.versions))
	for _, v := range p.versions {
		if v.previous != nil {
			derived[v.previous] = true
		}
	}

	var leaves []*Version

	for _, v := range p.versions {
		if !derived[v] {
			leaves = append(leaves, v)
		}
	}

	if len(leaves) != 1 {
		return nil, fmt.Errorf("package %s: %d leaf versions: %w", p.name, len(leaves), ErrNoLatestVersion)
	}

	return leaves[0], nil
}

// Entities returns every entity that contributes a definition (New or
// Modified), across all versions in declaration order. These are the keys
// of the entity dispatch table.
func (p *Package) Entities() []*Item {
	var out []*Item

	for _, v := range p.versions {
		for _, it := range v.items {
			if it.entity && it.IsDefining() {
				out = append(out, it)
			}
		}
	}

	return out
}

// ModifiedItems returns every Modified item in declaration order.
func (p *Package) ModifiedItems() []*Item {
	var out []*Item

	for _, v := range p.versions {
		for _, it := range v.items {
			if it.lifecycle == LifecycleModified {
				out = append(out, it)
			}
		}
	}

	return out
}
