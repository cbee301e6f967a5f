package gen

import (
	"bytes"
	"fmt"
	"slices"
	"text/template"

	"go.uber.org/zap"

	"pds-generator/internal/catalog"
	"pds-generator/internal/dispatch"
)

// RuntimeFilename is the file Runtime renders into the runtime package.
const RuntimeFilename = "dynamic_types_gen.go"

var recordConstructors = map[catalog.ContainerKind]string{
	catalog.ContainerNone:              "valueRecordOf",
	catalog.ContainerOptionalValue:     "optionalRecordOf",
	catalog.ContainerVector:            "vectorRecordOf",
	catalog.ContainerOptionalVector:    "optionalVectorRecordOf",
	catalog.ContainerIdxVector:         "idxVectorRecordOf",
	catalog.ContainerOptionalIdxVector: "optionalIdxVectorRecordOf",
}

type constData struct {
	Name  string
	Value string
}

type overrideData struct {
	Var              string
	Type             string
	Physical         string
	DataType         string
	PhysicalDataType string
	To               string
	From             string
}

type slotData struct {
	Slot int
	Expr string
}

type runtimeData struct {
	DataTypes     []constData
	Containers    []constData
	TableSize     int
	DataTypeMult  int
	ContainerMult int
	Overrides     []overrideData
	Slots         []slotData
}

// Runtime renders the data type ids, container ids and the static value
// dispatch table of the runtime package. table must be built from cat.
func (g *Generator) Runtime(cat *catalog.Catalog, table *dispatch.ValueTable) (GeneratedFile, error) {
	data := runtimeData{
		DataTypes:     []constData{{Name: "DtNone", Value: "0x00"}},
		TableSize:     table.Size(),
		DataTypeMult:  table.Config().DataTypeMult,
		ContainerMult: table.Config().ContainerMult,
	}

	overrides := make(map[uint16]string)

	for bi, bt := range cat.BaseTypes() {
		for vi, v := range bt.Variants {
			id := catalog.DataTypeID(bi, vi)
			data.DataTypes = append(data.DataTypes, constData{Name: "Dt" + v.GoName, Value: fmt.Sprintf("0x%02x", id)})

			if !v.Overrides {
				continue
			}

			phys := cat.Physical(v)
			o := overrideData{
				Var:              lowerIdent(v.GoName) + "Records",
				Type:             v.GoType,
				Physical:         phys.GoType,
				DataType:         "Dt" + v.GoName,
				PhysicalDataType: "Dt" + phys.GoName,
				To:               lowerIdent(v.GoName) + "To" + phys.GoName,
				From:             lowerIdent(phys.GoName) + "To" + v.GoName,
			}
			data.Overrides = append(data.Overrides, o)
			overrides[id] = o.Var
		}
	}

	for _, k := range cat.Containers() {
		data.Containers = append(data.Containers, constData{Name: "Ct" + k.GoName(), Value: fmt.Sprintf("0x%02x", k.ID())})
	}

	for _, e := range table.Entries() {
		c := e.Combo

		var expr string

		if v, ok := overrides[c.DataTypeID]; ok {
			i := slices.Index(catalog.ContainerKinds, c.Container)
			if i < 0 {
				return GeneratedFile{}, fmt.Errorf("override %s: unknown container %s", c.BaseTypeCombo, c.Container)
			}

			expr = fmt.Sprintf("%s[%d]", v, i)
		} else {
			ctor, ok := recordConstructors[c.Container]
			if !ok {
				return GeneratedFile{}, fmt.Errorf("%s: no record constructor for container %s", c.BaseTypeCombo, c.Container)
			}

			expr = fmt.Sprintf("%s[%s](Dt%s)", ctor, c.Variant().GoType, c.Variant().GoName)
		}

		data.Slots = append(data.Slots, slotData{Slot: e.Slot, Expr: expr})
	}

	var buf bytes.Buffer
	if err := runtimeTemplate.Execute(&buf, data); err != nil {
		return GeneratedFile{}, fmt.Errorf("executing runtime template: %w", err)
	}

	g.log.Debug("rendered runtime", zap.Int("slots", len(data.Slots)), zap.Int("size", data.TableSize))

	return g.format(RuntimeFilename, buf.Bytes())
}

var runtimeTemplate = template.Must(template.New("runtime").Parse(`// Code generated by pds-generator runtime; DO NOT EDIT.

package pds

import "github.com/google/uuid"

// Data type ids.
const (
{{range .DataTypes}}	{{.Name}} DataType = {{.Value}}
{{end}})

// Container ids.
const (
{{range .Containers}}	{{.Name}} ContainerType = {{.Value}}
{{end}})

const (
	valueTableSize = {{.TableSize}}
	dataTypeMult   = {{.DataTypeMult}}
	containerMult  = {{.ContainerMult}}
)
{{if .Overrides}}
var (
{{range .Overrides}}	{{.Var}} = overrideRecordsOf[{{.Type}}, {{.Physical}}]({{.DataType}}, {{.PhysicalDataType}}, {{.To}}, {{.From}})
{{end}})
{{end}}
var valueTable = [valueTableSize]valueRecord{
{{range .Slots}}	{{.Slot}}: {{.Expr}},
{{end}}}
`))
