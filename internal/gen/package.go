package gen

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"path"
	"slices"
	"sync"
	"text/template"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pds-generator/internal/catalog"
	"pds-generator/internal/dispatch"
	"pds-generator/internal/migrate"
	"pds-generator/internal/schema"
)

const (
	// HandlerFilename holds the entity table of the root package.
	HandlerFilename = "handler.go"
	// LatestFilename holds the aliases of the default version.
	LatestFilename = "latest.go"
)

// Package renders every file of pkg: the per-version item files and package
// docs, the entity handler and the aliases of the default version. plans
// must cover every Modified item of pkg and entities must be built from
// pkg. Files are returned sorted by name.
func (g *Generator) Package(ctx context.Context, pkg *schema.Package, plans []*migrate.Plan, entities *dispatch.EntityTable) ([]GeneratedFile, error) {
	dir := path.Clean(pkg.Path())

	byItem := make(map[*schema.Item]*migrate.Plan, len(plans))
	for _, p := range plans {
		byItem[p.Item] = p
	}

	var (
		mu    sync.Mutex
		files []GeneratedFile
	)

	collect := func(f ...GeneratedFile) {
		mu.Lock()
		files = append(files, f...)
		mu.Unlock()
	}

	eg, ctx := errgroup.WithContext(ctx)

	for _, v := range pkg.Versions() {
		eg.Go(func() error {
			out, err := g.version(ctx, dir, v, byItem)
			if err != nil {
				return fmt.Errorf("version %s: %w", v.Name(), err)
			}

			collect(out...)

			return nil
		})
	}

	eg.Go(func() error {
		f, err := g.handler(dir, pkg, entities)
		if err != nil {
			return err
		}

		collect(f)

		return nil
	})

	eg.Go(func() error {
		f, err := g.latest(dir, pkg)
		if err != nil {
			return err
		}

		collect(f)

		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("package %s: %w", pkg.Name(), err)
	}

	slices.SortFunc(files, func(a, b GeneratedFile) int { return cmp.Compare(a.Filename, b.Filename) })

	g.log.Info("generated package",
		zap.String("package", pkg.Name()),
		zap.Int("versions", len(pkg.Versions())),
		zap.Int("files", len(files)))

	return files, nil
}

func (g *Generator) version(ctx context.Context, dir string, v *schema.Version, plans map[*schema.Item]*migrate.Plan) ([]GeneratedFile, error) {
	var files []GeneratedFile

	for _, it := range v.Items() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if it.Lifecycle() == schema.LifecycleDeleted {
			continue
		}

		f, err := g.Item(dir, it, plans[it])
		if err != nil {
			return nil, err
		}

		files = append(files, f)
	}

	doc, err := g.versionDoc(dir, v)
	if err != nil {
		return nil, err
	}

	g.log.Debug("generated version", zap.String("version", v.String()), zap.Int("items", len(files)))

	return append(files, doc), nil
}

// ItemOrder returns the live items of v with every item after the items it
// depends on: declared dependencies and fields that embed an item by value.
// A cycle falls back to declaration order.
func ItemOrder(v *schema.Version) ([]*schema.Item, error) {
	var items []*schema.Item

	for _, it := range v.Items() {
		if it.Lifecycle() != schema.LifecycleDeleted {
			items = append(items, it)
		}
	}

	index := make(map[string]int, len(items))
	for i, it := range items {
		index[it.Name()] = i
	}

	order, err := topoSort(len(items), func(i int) []int {
		def := items[i].Definition()

		var deps []int

		for _, d := range def.Dependencies() {
			if j, ok := index[d.Name]; ok && j != i {
				deps = append(deps, j)
			}
		}

		for _, f := range def.Fields() {
			if f.Ref() == nil || f.Container() != catalog.ContainerNone {
				continue
			}

			if j, ok := index[f.Ref().Name()]; ok && j != i && !slices.Contains(deps, j) {
				deps = append(deps, j)
			}
		}

		return deps
	})
	if err != nil {
		return items, err
	}

	out := make([]*schema.Item, len(order))
	for i, j := range order {
		out[i] = items[j]
	}

	return out, nil
}

type versionDocData struct {
	Header   string
	Package  string
	Version  string
	Previous string
	Name     string
	Items    []string
}

func (g *Generator) versionDoc(dir string, v *schema.Version) (GeneratedFile, error) {
	items, err := ItemOrder(v)
	if err != nil {
		g.log.Warn("item dependencies form a cycle, using declaration order", zap.String("version", v.String()))
	}

	data := versionDocData{
		Header:  header,
		Package: versionPackage(v),
		Version: v.Name(),
		Name:    v.Package().Name(),
	}

	if v.Previous() != nil {
		data.Previous = v.Previous().Name()
	}

	for _, it := range items {
		data.Items = append(data.Items, it.Name()+" ("+it.Lifecycle().String()+")")
	}

	var buf bytes.Buffer
	if err := versionDocTemplate.Execute(&buf, data); err != nil {
		return GeneratedFile{}, fmt.Errorf("executing version doc template: %w", err)
	}

	return g.format(path.Join(dir, versionPackage(v), "doc.go"), buf.Bytes())
}

var versionDocTemplate = template.Must(template.New("doc").Parse(`{{.Header}}

// Package {{.Package}} holds version {{.Version}} of {{.Name}}.
{{- if .Previous}}
// It derives from {{.Previous}}.
{{- end}}
{{- if .Items}}
//
// Items, dependencies first:
{{- range .Items}}
//   - {{.}}
{{- end}}
{{- end}}
package {{.Package}}
`))

type recordData struct {
	Slot       int
	Type       string
	TypeString string
}

type handlerData struct {
	Header  string
	Package string
	Name    string
	Imports []importSpec
	Size    int
	Records []recordData
}

func (g *Generator) handler(dir string, pkg *schema.Package, entities *dispatch.EntityTable) (GeneratedFile, error) {
	imports := make(importSet)
	imports.add("", g.cfg.RuntimeImport)

	data := handlerData{
		Header:  header,
		Package: packageName(pkg.Name()),
		Name:    pkg.Name(),
		Size:    entities.Size(),
	}

	for _, e := range entities.Entries() {
		if e.Item.Package() != pkg {
			return GeneratedFile{}, fmt.Errorf("entity %s does not belong to package %s", e.TypeString, pkg.Name())
		}

		vp := versionPackage(e.Item.Version())
		imports.add(vp, g.importPath(path.Join(dir, vp)))

		data.Records = append(data.Records, recordData{
			Slot:       e.Slot,
			Type:       vp + "." + e.Item.Name(),
			TypeString: e.TypeString,
		})
	}

	data.Imports = imports.sorted()

	var buf bytes.Buffer
	if err := handlerTemplate.Execute(&buf, data); err != nil {
		return GeneratedFile{}, fmt.Errorf("executing handler template: %w", err)
	}

	return g.format(path.Join(dir, HandlerFilename), buf.Bytes())
}

var handlerTemplate = template.Must(template.New("handler").Parse(`{{.Header}}

package {{.Package}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

var entitySlots = [{{.Size}}]*pds.EntityRecord{
{{range .Records}}	{{.Slot}}: pds.NewEntityRecord[{{.Type}}]("{{.TypeString}}"),
{{end}}}

// Record dispatches the entities of every version of {{.Name}}.
var Record = pds.NewPackageRecord("{{.Name}}", pds.NewEntityTable(entitySlots[:]))
`))

type aliasData struct {
	Name string
	Type string
}

type latestData struct {
	Header  string
	Package string
	Version string
	Imports []importSpec
	Aliases []aliasData
}

// DefaultVersion returns the version the root package aliases.
func (g *Generator) DefaultVersion(pkg *schema.Package) (*schema.Version, error) {
	if g.cfg.DefaultVersion == "" {
		return pkg.Latest()
	}

	v, ok := pkg.FindVersion(g.cfg.DefaultVersion)
	if !ok {
		return nil, fmt.Errorf("package %s has no version %s", pkg.Name(), g.cfg.DefaultVersion)
	}

	return v, nil
}

func (g *Generator) latest(dir string, pkg *schema.Package) (GeneratedFile, error) {
	v, err := g.DefaultVersion(pkg)
	if err != nil {
		return GeneratedFile{}, err
	}

	vp := versionPackage(v)

	imports := make(importSet)
	imports.add(vp, g.importPath(path.Join(dir, vp)))

	data := latestData{
		Header:  header,
		Package: packageName(pkg.Name()),
		Version: v.Name(),
		Imports: imports.sorted(),
	}

	for _, it := range v.Items() {
		if it.Lifecycle() != schema.LifecycleDeleted {
			data.Aliases = append(data.Aliases, aliasData{Name: it.Name(), Type: vp + "." + it.Name()})
		}
	}

	var buf bytes.Buffer
	if err := latestTemplate.Execute(&buf, data); err != nil {
		return GeneratedFile{}, fmt.Errorf("executing latest template: %w", err)
	}

	return g.format(path.Join(dir, LatestFilename), buf.Bytes())
}

var latestTemplate = template.Must(template.New("latest").Parse(`{{.Header}}

package {{.Package}}
{{if .Aliases}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

// Items of version {{.Version}}.
type (
{{range .Aliases}}	{{.Name}} = {{.Type}}
{{end}})
{{end}}`))
