package gen

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pds-generator/internal/catalog"
	"pds-generator/internal/dispatch"
	"pds-generator/internal/migrate"
	"pds-generator/internal/schema"
)

const shapesYAML = `
package: Shapes
path: shapes
versions:
  - name: V1
    items:
      - name: Point
        fields:
          - {name: X, type: i32}
          - {name: Label, type: string, optional: true}
      - name: Shape
        entity: true
        fields:
          - {name: Name, type: string}
          - {name: Keys, type: uuid, vector: true}
          - {name: Refs, type: uuid, vector: true, optional: true}
          - {name: Weights, type: i32, vector: true, indexed: true}
          - {name: Parent, type: item_ref, optional: true}
          - {name: Pivot, type: Point}
          - {name: Extra, type: Point, optional: true}
          - {name: Corners, type: Point, vector: true, indexed: true}
        templates:
          - {name: Lookup, template: IdxVector, types: [uuid]}
        validations:
          - {table: Refs, must_exist_in: Keys}
  - name: V2
    previous: V1
    items:
      - name: Point
        lifecycle: modified
        fields:
          - {name: Y, type: i32}
          - {name: Label, type: string, optional: true}
        mappings:
          - {renamed: Y, previous: X}
          - {same: Label}
      - {name: Shape, entity: true, lifecycle: identical}
  - name: V3
    previous: V2
    items:
      - name: Point
        lifecycle: modified
        fields:
          - {name: Z, type: i32}
        mappings:
          - {renamed: Z, previous: Y}
          - {deleted: Label}
      - name: Shape
        entity: true
        lifecycle: modified
        fields:
          - {name: Title, type: string}
          - {name: Pivot, type: Point}
          - {name: Corners, type: Point, vector: true, indexed: true}
          - {name: Celsius, type: double}
        mappings:
          - {renamed: Title, previous: Name}
          - {same: Pivot}
          - {same: Corners}
          - custom: [Celsius]
            from_previous: "dst.Celsius = float64(len(src.Keys))"
`

// squash collapses runs of white space so assertions ignore gofmt alignment.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func generateShapes(t *testing.T) map[string]string {
	t.Helper()

	return generateYAML(t, shapesYAML)
}

func generateYAML(t *testing.T, src string) map[string]string {
	t.Helper()

	f, err := schema.Parse([]byte(src))
	require.NoError(t, err)

	pkg, err := f.Build()
	require.NoError(t, err)

	plans, err := migrate.PlanPackage(pkg)
	require.NoError(t, err)

	entities, err := dispatch.BuildEntityTable(pkg, dispatch.DefaultEntityTableConfig())
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.ImportPath = "example.com/out"

	files, err := NewGenerator(cfg, nil).Package(context.Background(), pkg, plans, entities)
	require.NoError(t, err)

	out := make(map[string]string, len(files))
	for _, f := range files {
		out[f.Filename] = squash(string(f.Content))
	}

	return out
}

func TestPackage_Files(t *testing.T) {
	files := generateShapes(t)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}

	assert.ElementsMatch(t, []string{
		"shapes/handler.go",
		"shapes/latest.go",
		"shapes/v1/doc.go",
		"shapes/v1/point.go",
		"shapes/v1/shape.go",
		"shapes/v2/doc.go",
		"shapes/v2/point.go",
		"shapes/v2/shape.go",
		"shapes/v3/doc.go",
		"shapes/v3/point.go",
		"shapes/v3/shape.go",
	}, names)

	for name, src := range files {
		assert.True(t, strings.HasPrefix(src, header), name)
	}
}

func TestPackage_NewItem(t *testing.T) {
	src := generateShapes(t)["shapes/v1/shape.go"]

	for _, want := range []string{
		"package v1",
		`"github.com/google/uuid"`,
		`"pds-generator/pds"`,
		"type Lookup = pds.IdxVector[uuid.UUID]",
		"Name string",
		"Keys []uuid.UUID",
		"Refs pds.OptionalVector[uuid.UUID]",
		"Weights pds.IdxVector[int32]",
		"Parent pds.Optional[pds.ItemRef]",
		"Pivot Point",
		"Extra *Point",
		"Corners pds.IdxVector[Point]",
		`func (*Shape) EntityTypeString() string { return "Shapes.V1.Shape" }`,
		"x.Keys = slices.Clone(src.Keys)",
		"x.Refs = pds.CloneOptionalVector(src.Refs, pds.Identity[uuid.UUID])",
		"x.Pivot = pds.CloneItem(src.Pivot)",
		"x.Extra = pds.CloneOptionalItem(src.Extra)",
		"x.Corners = pds.CloneIdxVector(src.Corners, pds.CloneItem[Point])",
		"x.Name == o.Name && slices.Equal(x.Keys, o.Keys) &&",
		"x.Pivot.Equals(&o.Pivot)",
		"pds.EqualIdxVector(x.Corners, o.Corners, pds.EqualItem[Point])",
		`pds.WriteOptionalVector(w, "Refs", x.Refs)`,
		`pds.WriteItem(w, "Pivot", &x.Pivot)`,
		`pds.WriteItemIdxVector(w, "Corners", x.Corners)`,
		`pds.ReadOptionalItem(r, "Extra", &x.Extra)`,
		`pds.ValidateIdxVector(v, "Weights", x.Weights)`,
		"pds.ValidateItems(v, x.Corners.Values)",
		`pds.ValidateAllKeysInTable(v, x.Refs.Values(), x.Keys, "Keys")`,
	} {
		assert.Contains(t, src, squash(want))
	}

	assert.NotContains(t, src, "FromPrevious")
}

const sceneYAML = `
package: World
path: world
versions:
  - name: V1
    items:
      - name: Node
        fields:
          - {name: Name, type: string}
      - name: Scene
        entity: true
        fields:
          - {name: Nodes, type: NodeTable}
          - {name: Hierarchy, type: Hierarchy}
          - {name: Names, type: Names}
          - {name: Setting, type: Varying}
          - {name: Extras, type: Varying, vector: true, optional: true}
        templates:
          - {name: NodeTable, template: ItemTable, types: [uuid, Node], flags: [NullEntities]}
          - {name: Hierarchy, template: DirectedGraph, types: [uuid], flags: [Acyclic, SingleRoot]}
          - {name: Names, template: BidirectionalMap, types: [string, uuid]}
`

func TestPackage_BuiltInFields(t *testing.T) {
	src := generateYAML(t, sceneYAML)["world/v1/scene.go"]

	for _, want := range []string{
		"type NodeTable = pds.ItemTable[uuid.UUID, Node, *Node]",
		"type Hierarchy = pds.DirectedGraph[uuid.UUID]",
		"type Names = pds.BidirectionalMap[string, uuid.UUID]",
		"Nodes NodeTable",
		"Setting pds.Varying",
		"Extras pds.OptionalVector[pds.Varying]",
		"x.Nodes = pds.CloneItem(src.Nodes)",
		`pds.WriteItem(w, "Hierarchy", &x.Hierarchy)`,
		`pds.ReadItem(r, "Setting", &x.Setting)`,
		"x.Nodes.ValidateFlags(v, 0x2)",
		"x.Hierarchy.ValidateFlags(v, 0x5)",
		"x.Names.Validate(v)",
		"x.Setting.Validate(v)",
		"pds.ValidateItems(v, x.Extras.Values())",
	} {
		assert.Contains(t, src, squash(want))
	}
}

func TestPackage_IdenticalItem(t *testing.T) {
	src := generateShapes(t)["shapes/v2/shape.go"]

	assert.Contains(t, src, `v1 "example.com/out/shapes/v1"`)
	assert.Contains(t, src, "type Shape = v1.Shape")
	assert.NotContains(t, src, "func ")
}

func TestPackage_ModifiedItem(t *testing.T) {
	files := generateShapes(t)

	point := files["shapes/v2/point.go"]
	assert.Contains(t, point, "func (dst *Point) FromPrevious(src *v1.Point) error { dst.Clear()")
	assert.Contains(t, point, "dst.Y = src.X")
	assert.Contains(t, point, "func (src *Point) ToPrevious(dst *v1.Point) error { dst.Clear()")
	assert.Contains(t, point, "dst.X = src.Y")

	shape := files["shapes/v3/shape.go"]
	for _, want := range []string{
		`v1 "example.com/out/shapes/v1"`,
		`v2 "example.com/out/shapes/v2"`,
		"func (dst *Shape) FromPrevious(src *v1.Shape) error",
		"dst.Title = src.Name",
		`if err := pointV3FromV1(&dst.Pivot, &src.Pivot); err != nil { return fmt.Errorf("Pivot: %w", err) }`,
		`if dst.Corners, err = pds.ConvertIdxVector(src.Corners, pointV3FromV1); err != nil {`,
		"dst.Celsius = float64(len(src.Keys))",
		"func pointV3FromV1(dst *Point, src *v1.Point) error { var m1 v2.Point if err := m1.FromPrevious(src); err != nil { return err } return dst.FromPrevious(&m1) }",
		"func pointV3ToV1(dst *v1.Point, src *Point) error { var m1 v2.Point if err := src.ToPrevious(&m1); err != nil { return err } return m1.ToPrevious(dst) }",
		"// Custom mapping Shapes.V3.Shape#Celsius has no conversion in this direction.",
	} {
		assert.Contains(t, shape, squash(want))
	}

	assert.Equal(t, 1, strings.Count(shape, "func pointV3FromV1("), "helpers are emitted once")
}

func TestPackage_RootFiles(t *testing.T) {
	files := generateShapes(t)

	handler := files["shapes/handler.go"]
	assert.Contains(t, handler, "package shapes")
	assert.Contains(t, handler, "var entitySlots = [23]*pds.EntityRecord{")
	assert.Contains(t, handler, `pds.NewEntityRecord[v1.Shape]("Shapes.V1.Shape")`)
	assert.Contains(t, handler, `pds.NewEntityRecord[v3.Shape]("Shapes.V3.Shape")`)
	assert.NotContains(t, handler, "v2.Shape", "identical entities share the record of their definition")
	assert.Contains(t, handler, `var Record = pds.NewPackageRecord("Shapes", pds.NewEntityTable(entitySlots[:]))`)

	latest := files["shapes/latest.go"]
	assert.Contains(t, latest, `v3 "example.com/out/shapes/v3"`)
	assert.Contains(t, latest, "Point = v3.Point")
	assert.Contains(t, latest, "Shape = v3.Shape")

	doc := files["shapes/v3/doc.go"]
	assert.Contains(t, doc, "// Package v3 holds version V3 of Shapes. // It derives from V2.")
	assert.Contains(t, doc, "// - Point (Modified) // - Shape (Modified)")
}

func TestPackage_DefaultVersion(t *testing.T) {
	f, err := schema.Parse([]byte(shapesYAML))
	require.NoError(t, err)

	pkg, err := f.Build()
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.DefaultVersion = "V2"

	v, err := NewGenerator(cfg, nil).DefaultVersion(pkg)
	require.NoError(t, err)
	assert.Equal(t, "V2", v.Name())

	cfg.DefaultVersion = "V9"
	_, err = NewGenerator(cfg, nil).DefaultVersion(pkg)
	require.Error(t, err)
}

func TestItemOrder(t *testing.T) {
	p, err := schema.Parse([]byte(`
package: P
versions:
  - name: V1
    items:
      - name: Outer
        fields:
          - {name: In, type: Inner}
          - {name: Many, type: Leaf, vector: true}
      - name: Inner
        fields:
          - {name: L, type: Leaf}
        dependencies:
          - {name: Leaf}
      - name: Leaf
        fields:
          - {name: X, type: i32}
`))
	require.NoError(t, err)

	pkg, err := p.Build()
	require.NoError(t, err)

	items, err := ItemOrder(pkg.Versions()[0])
	require.NoError(t, err)

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name()
	}

	assert.Equal(t, []string{"Leaf", "Inner", "Outer"}, names)
}

var (
	slotRe  = regexp.MustCompile(`(?m)^\s*(\d+):\s+(\S+),$`)
	constRe = regexp.MustCompile(`(?m)^\s*(D[tc]\w+|Ct\w+)\s+(?:DataType|ContainerType)\s+=\s+(0x[0-9a-f]+)$`)
)

func matches(re *regexp.Regexp, src []byte) map[string]string {
	out := make(map[string]string)
	for _, m := range re.FindAllSubmatch(src, -1) {
		out[string(m[1])] = string(m[2])
	}

	return out
}

func TestRuntime_MatchesCommittedTable(t *testing.T) {
	cat := catalog.Default()

	table, err := dispatch.BuildValueTable(cat, dispatch.DefaultValueTableConfig())
	require.NoError(t, err)

	f, err := NewGenerator(DefaultConfig(), nil).Runtime(cat, table)
	require.NoError(t, err)
	assert.Equal(t, RuntimeFilename, f.Filename)

	committed, err := os.ReadFile(filepath.Join("..", "..", "pds", RuntimeFilename))
	require.NoError(t, err)

	gotSlots, wantSlots := matches(slotRe, f.Content), matches(slotRe, committed)
	assert.Len(t, gotSlots, len(cat.Combos()))
	assert.Equal(t, wantSlots, gotSlots)
	assert.Equal(t, matches(constRe, committed), matches(constRe, f.Content))
	assert.Contains(t, string(f.Content), "valueTableSize = 577")
}

func TestWriteFiles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	g := NewGenerator(cfg, nil)

	files := []GeneratedFile{
		{Filename: "p/v1/a.go", Content: []byte("package v1\n")},
		{Filename: "p/handler.go", Content: []byte("package p\n")},
	}

	res, err := g.WriteFiles(files)
	require.NoError(t, err)
	assert.Equal(t, WriteResult{Written: 2}, res)

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "p", "v1", "a.go"))
	require.NoError(t, err)
	assert.Equal(t, "package v1\n", string(data))

	files[1].Content = []byte("package p\n\nvar X = 1\n")

	res, err = g.WriteFiles(files)
	require.NoError(t, err)
	assert.Equal(t, WriteResult{Written: 1, Unchanged: 1}, res)
}

func TestWriteFiles_ReadOnly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.ReadOnly = true
	g := NewGenerator(cfg, nil)

	files := []GeneratedFile{{Filename: "a.go", Content: []byte("package p\n")}}

	_, err := g.WriteFiles(files)
	require.NoError(t, err)

	st, err := os.Stat(filepath.Join(cfg.OutputDir, "a.go"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(readOnlyPerm), st.Mode().Perm())

	files[0].Content = []byte("package q\n")

	res, err := g.WriteFiles(files)
	require.NoError(t, err, "read-only files are replaced")
	assert.Equal(t, 1, res.Written)
}

func TestFormat_Error(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()

	src := []byte("package p\n\nfunc {\n")

	f, err := NewGenerator(cfg, nil).format("p/bad.go", src)
	require.Error(t, err)
	assert.Equal(t, src, f.Content)

	side, err := os.ReadFile(filepath.Join(cfg.OutputDir, "p", "bad.unformatted.go"))
	require.NoError(t, err)
	assert.Equal(t, src, side)
}
