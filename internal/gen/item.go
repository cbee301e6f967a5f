package gen

import (
	"bytes"
	"fmt"
	"path"
	"strconv"
	"strings"
	"text/template"

	"pds-generator/internal/catalog"
	"pds-generator/internal/migrate"
	"pds-generator/internal/schema"
)

type fieldData struct {
	Name     string
	GoType   string
	Clone    string
	Equal    string
	Write    string
	Read     string
	Validate []string
}

type templateData struct {
	Name string
	Type string
}

type itemData struct {
	Header     string
	Package    string
	Imports    []importSpec
	Name       string
	TypeString string
	Alias      string
	AliasOf    string
	Entity     bool
	Templates  []templateData
	Fields     []fieldData
	Rules      []string
	Migration  *migrationData
	Helpers    []string
}

// itemFilename returns the file of item relative to the output directory.
func itemFilename(dir string, item *schema.Item) string {
	return path.Join(dir, versionPackage(item.Version()), snakeCase(item.Name())+".go")
}

// Item renders the file of one item of a version. plan is required for
// Modified items and ignored otherwise. Deleted items have no file.
func (g *Generator) Item(dir string, item *schema.Item, plan *migrate.Plan) (GeneratedFile, error) {
	filename := itemFilename(dir, item)

	if item.Lifecycle() == schema.LifecycleDeleted {
		return GeneratedFile{}, fmt.Errorf("%s: deleted items have no file", item.TypeString())
	}

	fc := g.newFileContext(dir, item.Version())

	data := itemData{
		Header:     header,
		Package:    versionPackage(item.Version()),
		Name:       item.Name(),
		TypeString: item.TypeString(),
		Entity:     item.IsEntity(),
	}

	if item.Lifecycle() == schema.LifecycleIdentical {
		def := item.Definition()
		data.Alias = fc.qualify(def)
		data.AliasOf = def.Version().Name()
	} else if err := fc.fillItem(&data, item, plan); err != nil {
		return GeneratedFile{}, err
	}

	for _, name := range fc.helperOrder {
		data.Helpers = append(data.Helpers, fc.helpers[name])
	}

	data.Imports = fc.imports.sorted()

	var buf bytes.Buffer
	if err := itemTemplate.Execute(&buf, data); err != nil {
		return GeneratedFile{}, fmt.Errorf("executing item template for %s: %w", item.TypeString(), err)
	}

	return g.format(filename, buf.Bytes())
}

func (fc *fileContext) fillItem(data *itemData, item *schema.Item, plan *migrate.Plan) error {
	for _, t := range item.Templates() {
		args := make([]string, 0, len(t.Types)+1)

		for _, name := range t.Types {
			arg, err := fc.typeArg(name)
			if err != nil {
				return fmt.Errorf("%s, template %s: %w", item.TypeString(), t.Name, err)
			}

			args = append(args, arg)
		}

		// ItemTable takes the pointer type of its items as well.
		if t.Kind() == schema.TemplateItemTable {
			args = append(args, "*"+args[len(args)-1])
		}

		data.Templates = append(data.Templates, templateData{
			Name: t.Name,
			Type: "pds." + t.Template + "[" + strings.Join(args, ", ") + "]",
		})
	}

	types := make(map[string]fieldType, len(item.Fields()))

	for _, f := range item.Fields() {
		ft, err := fc.fieldType(f)
		if err != nil {
			return fmt.Errorf("%s: %w", item.TypeString(), err)
		}

		types[f.Name()] = ft

		data.Fields = append(data.Fields, fieldData{
			Name:     f.Name(),
			GoType:   ft.goType(),
			Clone:    ft.clone("src." + f.Name()),
			Equal:    ft.equal("x."+f.Name(), "o."+f.Name()),
			Write:    ft.write(f.Name()),
			Read:     ft.read(f.Name()),
			Validate: ft.validate(f.Name()),
		})
	}

	for _, rule := range item.Validations() {
		keys, table := types[rule.Table], types[rule.MustExistIn]
		data.Rules = append(data.Rules, fmt.Sprintf("pds.ValidateAllKeysInTable(v, %s, %s, %s)",
			keys.values("x."+rule.Table), table.values("x."+rule.MustExistIn), strconv.Quote(rule.MustExistIn)))
	}

	if item.Lifecycle() != schema.LifecycleModified {
		return nil
	}

	if plan == nil || plan.Item != item {
		return fmt.Errorf("%s: %w: no migration plan", item.TypeString(), migrate.ErrPlanMismatch)
	}

	m, err := fc.migration(plan)
	if err != nil {
		return fmt.Errorf("%s: %w", item.TypeString(), err)
	}

	data.Migration = m

	return nil
}

// typeArg resolves the type argument of a template: a base type, a built-in
// or an item of the file's version.
func (fc *fileContext) typeArg(name string) (string, error) {
	if _, v, ok := fc.cat.Lookup(name); ok {
		return catalog.QualifyGoType("pds.", v.GoType), nil
	}

	if name == schema.BuiltInVarying {
		return "pds." + name, nil
	}

	it, ok := fc.version.FindItem(name)
	if !ok {
		return "", fmt.Errorf("unknown type %s", name)
	}

	return fc.qualify(it), nil
}

var itemTemplate = template.Must(template.New("item").Parse(`{{.Header}}

package {{.Package}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{- if .Alias}}
// {{.Name}} is unchanged since {{.AliasOf}}.
type {{.Name}} = {{.Alias}}
{{- else}}
{{- range .Templates}}
type {{.Name}} = {{.Type}}
{{end}}
// {{.Name}} is {{.TypeString}}.
type {{.Name}} struct {
{{range .Fields}}	{{.Name}} {{.GoType}}
{{end}}}
{{if .Entity}}
// EntityTypeString returns "{{.TypeString}}".
func (*{{.Name}}) EntityTypeString() string { return "{{.TypeString}}" }
{{end}}
// Clear resets every field to its default.
func (x *{{.Name}}) Clear() { *x = {{.Name}}{} }

// DeepCopy makes x a deep copy of src.
func (x *{{.Name}}) DeepCopy(src *{{.Name}}) {
{{- range .Fields}}
	x.{{.Name}} = {{.Clone}}
{{- end}}
}

// Equals reports whether x and o hold the same values.
func (x *{{.Name}}) Equals(o *{{.Name}}) bool {
	return {{range $i, $f := .Fields}}{{if $i}} &&
		{{end}}{{$f.Equal}}{{else}}true{{end}}
}

func (x *{{.Name}}) Write(w *pds.Writer) error {
{{- range .Fields}}
	if err := {{.Write}}; err != nil {
		return err
	}
{{end}}
	return nil
}

func (x *{{.Name}}) Read(r *pds.Reader) error {
	x.Clear()
{{range .Fields}}
	if err := {{.Read}}; err != nil {
		return err
	}
{{end}}
	return nil
}

// Validate reports invalid values to v. The error is reserved for failures
// that stop validation.
func (x *{{.Name}}) Validate(v *pds.Validator) error {
{{- range .Fields}}{{range .Validate}}
	if err := {{.}}; err != nil {
		return err
	}
{{end}}{{end}}
{{- range .Rules}}
	if err := {{.}}; err != nil {
		return err
	}
{{end}}
	return nil
}
{{with .Migration}}
// FromPrevious converts src, the {{.PreviousVersion}} definition, into dst.
func (dst *{{$.Name}}) FromPrevious(src *{{.Previous}}) error {
	dst.Clear()
{{- if .FromErr}}

	var err error
{{- end}}
{{range .From}}
{{.}}
{{end}}
	return nil
}

// ToPrevious converts src into dst, the {{.PreviousVersion}} definition.
func (src *{{$.Name}}) ToPrevious(dst *{{.Previous}}) error {
	dst.Clear()
{{- if .ToErr}}

	var err error
{{- end}}
{{range .To}}
{{.}}
{{end}}
	return nil
}
{{end}}
{{- range .Helpers}}
{{.}}
{{end}}
{{- end}}
`))
