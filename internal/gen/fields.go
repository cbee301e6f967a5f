package gen

import (
	"fmt"
	"path"
	"strconv"

	"pds-generator/internal/catalog"
	"pds-generator/internal/schema"
)

// fileContext tracks what one generated file of a version package needs.
type fileContext struct {
	g       *Generator
	dir     string
	version *schema.Version
	cat     *catalog.Catalog
	imports importSet

	helpers     map[string]string
	helperOrder []string
}

// newFileContext starts a file of version v. dir is the root package directory
// relative to the output directory.
func (g *Generator) newFileContext(dir string, v *schema.Version) *fileContext {
	fc := &fileContext{
		g:       g,
		dir:     dir,
		version: v,
		cat:     v.Package().Catalog(),
		imports: make(importSet),
		helpers: make(map[string]string),
	}

	fc.imports.add("", g.cfg.RuntimeImport)
	fc.imports.add("", "slices")
	fc.imports.add("", "github.com/google/uuid")

	return fc
}

// qualify returns the Go type name of item as seen from the file's version
// package, importing the defining version package when needed.
func (fc *fileContext) qualify(item *schema.Item) string {
	if item.Version() == fc.version {
		return item.Name()
	}

	pkg := versionPackage(item.Version())
	fc.imports.add(pkg, fc.g.importPath(path.Join(fc.dir, pkg)))

	return pkg + "." + item.Name()
}

func (fc *fileContext) addHelper(name, src string) {
	if _, ok := fc.helpers[name]; ok {
		return
	}

	fc.helpers[name] = src
	fc.helperOrder = append(fc.helperOrder, name)
}

// fieldType describes the Go shape of a field. Built-ins and templates are
// items of the runtime package; flags are the template validation flags.
type fieldType struct {
	kind   catalog.ContainerKind
	elem   string
	isItem bool
	flags  uint
}

func (fc *fileContext) fieldType(f *schema.Field) (fieldType, error) {
	ft := fieldType{kind: f.Container()}

	if f.IsBuiltIn() {
		ft.elem = "pds." + f.BuiltIn()
		ft.isItem = true

		return ft, nil
	}

	if t, ok := f.Template(); ok {
		ft.elem = t.Name
		ft.isItem = true
		ft.flags = t.FlagBits()

		return ft, nil
	}

	if ref := f.Ref(); ref != nil {
		ft.elem = fc.qualify(ref)
		ft.isItem = true

		return ft, nil
	}

	_, v, ok := fc.cat.Lookup(f.TypeName())
	if !ok {
		return ft, fmt.Errorf("field %s: unknown type %s", f.Name(), f.TypeName())
	}

	ft.elem = catalog.QualifyGoType("pds.", v.GoType)

	return ft, nil
}

// goType is the Go type of the field. Optional items are pointers.
func (ft fieldType) goType() string {
	if ft.isItem && ft.kind == catalog.ContainerOptionalValue {
		return "*" + ft.elem
	}

	return ft.kind.GoType("pds.", ft.elem)
}

func (ft fieldType) cloneFunc() string {
	if ft.isItem {
		return "pds.CloneItem[" + ft.elem + "]"
	}

	return "pds.Identity[" + ft.elem + "]"
}

func (ft fieldType) equalFunc() string {
	if ft.isItem {
		return "pds.EqualItem[" + ft.elem + "]"
	}

	return "pds.Equal[" + ft.elem + "]"
}

// clone returns an expression holding a deep copy of src.
func (ft fieldType) clone(src string) string {
	switch ft.kind {
	case catalog.ContainerNone:
		if ft.isItem {
			return "pds.CloneItem(" + src + ")"
		}

		return src
	case catalog.ContainerOptionalValue:
		if ft.isItem {
			return "pds.CloneOptionalItem(" + src + ")"
		}

		return src
	case catalog.ContainerVector:
		if ft.isItem {
			return "pds.CloneSlice(" + src + ", " + ft.cloneFunc() + ")"
		}

		return "slices.Clone(" + src + ")"
	case catalog.ContainerOptionalVector:
		return "pds.CloneOptionalVector(" + src + ", " + ft.cloneFunc() + ")"
	case catalog.ContainerIdxVector:
		return "pds.CloneIdxVector(" + src + ", " + ft.cloneFunc() + ")"
	default:
		return "pds.CloneOptionalIdxVector(" + src + ", " + ft.cloneFunc() + ")"
	}
}

// equal returns a boolean expression comparing a and b.
func (ft fieldType) equal(a, b string) string {
	switch ft.kind {
	case catalog.ContainerNone:
		if ft.isItem {
			return a + ".Equals(&" + b + ")"
		}

		return a + " == " + b
	case catalog.ContainerOptionalValue:
		if ft.isItem {
			return "pds.EqualOptionalItem(" + a + ", " + b + ")"
		}

		return a + " == " + b
	case catalog.ContainerVector:
		if ft.isItem {
			return "slices.EqualFunc(" + a + ", " + b + ", " + ft.equalFunc() + ")"
		}

		return "slices.Equal(" + a + ", " + b + ")"
	case catalog.ContainerOptionalVector:
		return "pds.EqualOptionalVector(" + a + ", " + b + ", " + ft.equalFunc() + ")"
	case catalog.ContainerIdxVector:
		return "pds.EqualIdxVector(" + a + ", " + b + ", " + ft.equalFunc() + ")"
	default:
		return "pds.EqualOptionalIdxVector(" + a + ", " + b + ", " + ft.equalFunc() + ")"
	}
}

var (
	valueWriters = map[catalog.ContainerKind]string{
		catalog.ContainerNone:              "WriteValue",
		catalog.ContainerOptionalValue:     "WriteOptional",
		catalog.ContainerVector:            "WriteVector",
		catalog.ContainerOptionalVector:    "WriteOptionalVector",
		catalog.ContainerIdxVector:         "WriteIdxVector",
		catalog.ContainerOptionalIdxVector: "WriteOptionalIdxVector",
	}
	itemWriters = map[catalog.ContainerKind]string{
		catalog.ContainerNone:              "WriteItem",
		catalog.ContainerOptionalValue:     "WriteOptionalItem",
		catalog.ContainerVector:            "WriteItemVector",
		catalog.ContainerOptionalVector:    "WriteOptionalItemVector",
		catalog.ContainerIdxVector:         "WriteItemIdxVector",
		catalog.ContainerOptionalIdxVector: "WriteOptionalItemIdxVector",
	}
	valueReaders = map[catalog.ContainerKind]string{
		catalog.ContainerNone:              "ReadValue",
		catalog.ContainerOptionalValue:     "ReadOptional",
		catalog.ContainerVector:            "ReadVector",
		catalog.ContainerOptionalVector:    "ReadOptionalVector",
		catalog.ContainerIdxVector:         "ReadIdxVector",
		catalog.ContainerOptionalIdxVector: "ReadOptionalIdxVector",
	}
	itemReaders = map[catalog.ContainerKind]string{
		catalog.ContainerNone:              "ReadItem",
		catalog.ContainerOptionalValue:     "ReadOptionalItem",
		catalog.ContainerVector:            "ReadItemVector",
		catalog.ContainerOptionalVector:    "ReadOptionalItemVector",
		catalog.ContainerIdxVector:         "ReadItemIdxVector",
		catalog.ContainerOptionalIdxVector: "ReadOptionalItemIdxVector",
	}
	converters = map[catalog.ContainerKind]string{
		catalog.ContainerOptionalValue:     "ConvertOptional",
		catalog.ContainerVector:            "ConvertSlice",
		catalog.ContainerOptionalVector:    "ConvertOptionalVector",
		catalog.ContainerIdxVector:         "ConvertIdxVector",
		catalog.ContainerOptionalIdxVector: "ConvertOptionalIdxVector",
	}
)

func (ft fieldType) write(name string) string {
	key := strconv.Quote(name)

	if !ft.isItem {
		return "pds." + valueWriters[ft.kind] + "(w, " + key + ", x." + name + ")"
	}

	if ft.kind == catalog.ContainerNone {
		return "pds.WriteItem(w, " + key + ", &x." + name + ")"
	}

	return "pds." + itemWriters[ft.kind] + "(w, " + key + ", x." + name + ")"
}

func (ft fieldType) read(name string) string {
	readers := valueReaders
	if ft.isItem {
		readers = itemReaders
	}

	return "pds." + readers[ft.kind] + "(r, " + strconv.Quote(name) + ", &x." + name + ")"
}

// validate returns the calls validating the field, each returning an error.
func (ft fieldType) validate(name string) []string {
	key := strconv.Quote(name)
	x := "x." + name

	var calls []string

	switch ft.kind {
	case catalog.ContainerIdxVector:
		calls = append(calls, "pds.ValidateIdxVector(v, "+key+", "+x+")")
	case catalog.ContainerOptionalIdxVector:
		calls = append(calls, "pds.ValidateOptionalIdxVector(v, "+key+", "+x+")")
	}

	if !ft.isItem {
		return calls
	}

	switch {
	case ft.kind == catalog.ContainerNone && ft.flags != 0:
		calls = append(calls, fmt.Sprintf("%s.ValidateFlags(v, %#x)", x, ft.flags))
	case ft.kind == catalog.ContainerNone:
		calls = append(calls, x+".Validate(v)")
	case ft.kind == catalog.ContainerOptionalValue:
		calls = append(calls, "pds.ValidateOptionalItem(v, "+x+")")
	default:
		calls = append(calls, "pds.ValidateItems(v, "+ft.values(x)+")")
	}

	return calls
}

// values returns the plain slice held by a vector container expression.
func (ft fieldType) values(x string) string {
	switch ft.kind {
	case catalog.ContainerOptionalVector:
		return x + ".Values()"
	case catalog.ContainerIdxVector:
		return x + ".Values"
	case catalog.ContainerOptionalIdxVector:
		return x + ".Vector().Values"
	default:
		return x
	}
}
