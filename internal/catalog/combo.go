package catalog

import (
	"bytes"
	"fmt"
	"text/template"
)

// Combo is one (BaseType, Variant, ContainerKind) combination of the dispatch
// space.
type Combo struct {
	BaseTypeIndex int
	VariantIndex  int

	// BaseTypeName is the logical base type ("Vec2").
	BaseTypeName string
	// ImplementingType is the variant name ("fvec2").
	ImplementingType string
	// ContainerType is the container name ("optional_vector").
	ContainerType string
	// ItemType is the scalar element type ("float").
	ItemType string
	// NumItemsPerObject is the scalar element count per value.
	NumItemsPerObject int
	// BaseTypeCombo is the composed type expression ("optional_vector<fvec2>",
	// or "fvec2" for ContainerNone).
	BaseTypeCombo string

	Container  ContainerKind
	DataTypeID uint16
	Overrides  bool

	variant  Variant
	physical Variant
}

// ContainerID returns the container id of the combination.
func (c Combo) ContainerID() uint8 {
	return c.Container.ID()
}

// IsTemplate reports whether the combination wraps the value in a container.
func (c Combo) IsTemplate() bool {
	return c.Container.IsTemplate()
}

// Variant returns the variant of the combination.
func (c Combo) Variant() Variant {
	return c.variant
}

// PhysicalVariant returns the variant the combination is stored as. It is
// Variant() unless the combination is an override.
func (c Combo) PhysicalVariant() Variant {
	return c.physical
}

// GoName is the exported identifier of the combination ("OptionalVectorFVec2",
// "FVec2" for ContainerNone).
func (c Combo) GoName() string {
	if c.Container == ContainerNone {
		return c.variant.GoName
	}

	return c.Container.GoName() + c.variant.GoName
}

// GoType returns the Go type of the bare variant, qualified for use outside
// the runtime package.
func (c Combo) GoType(qualifier string) string {
	return QualifyGoType(qualifier, c.variant.GoType)
}

// GoComboType returns the Go type of the container around the variant.
func (c Combo) GoComboType(qualifier string) string {
	return c.Container.GoType(qualifier, c.GoType(qualifier))
}

// PhysicalGoType returns the Go type of the physical variant.
func (c Combo) PhysicalGoType(qualifier string) string {
	return QualifyGoType(qualifier, c.physical.GoType)
}

// PhysicalGoComboType returns the container around the physical variant.
func (c Combo) PhysicalGoComboType(qualifier string) string {
	return c.Container.GoType(qualifier, c.PhysicalGoType(qualifier))
}

// ComposeTypeName renders the composed type expression of a container around
// an implementing type name.
func ComposeTypeName(k ContainerKind, implementing string) string {
	if k == ContainerNone {
		return implementing
	}

	return k.String() + "<" + implementing + ">"
}

func (c *Catalog) enumerate() []Combo {
	var combos []Combo

	for bi, bt := range c.baseTypes {
		for vi, v := range bt.Variants {
			for _, k := range c.containers {
				combos = append(combos, Combo{
					BaseTypeIndex:     bi,
					VariantIndex:      vi,
					BaseTypeName:      bt.Name,
					ImplementingType:  v.Name,
					ContainerType:     k.String(),
					ItemType:          v.ElemType,
					NumItemsPerObject: v.Count,
					BaseTypeCombo:     ComposeTypeName(k, v.Name),
					Container:         k,
					DataTypeID:        DataTypeID(bi, vi),
					Overrides:         v.Overrides,
					variant:           v,
					physical:          c.Physical(v),
				})
			}
		}
	}

	return combos
}

// Combos returns every combination in enumeration order.
func (c *Catalog) Combos() []Combo {
	return c.combos
}

// Find returns the combination for a data type id and container kind.
func (c *Catalog) Find(dataTypeID uint16, k ContainerKind) (Combo, bool) {
	bi, vi, ok := SplitDataTypeID(dataTypeID)
	if !ok || bi >= len(c.baseTypes) || vi >= len(c.baseTypes[bi].Variants) {
		return Combo{}, false
	}

	for ci, ck := range c.containers {
		if ck != k {
			continue
		}

		offset := 0
		for i := range bi {
			offset += len(c.baseTypes[i].Variants)
		}

		return c.combos[(offset+vi)*len(c.containers)+ci], true
	}

	return Combo{}, false
}

// Expand renders tmpl once per combination, in enumeration order. The
// template receives the Combo as its dot.
func (c *Catalog) Expand(tmpl string) ([]string, error) {
	t, err := template.New("combo").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing combination template: %w", err)
	}

	out := make([]string, 0, len(c.combos))

	var buf bytes.Buffer

	for _, combo := range c.combos {
		buf.Reset()

		if err := t.Execute(&buf, combo); err != nil {
			return nil, fmt.Errorf("expanding %s: %w", combo.BaseTypeCombo, err)
		}

		out = append(out, buf.String())
	}

	return out, nil
}
