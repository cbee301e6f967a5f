package catalog

import (
	"fmt"
	"strings"
	"unicode"
)

// Variant is one concrete storage representation of a BaseType.
type Variant struct {
	// Name is the implementing type name ("fvec3", "item_ref").
	Name string
	// ElemType is the scalar element type the variant is built from. For an
	// override variant this names the variant it is physically stored as.
	ElemType string
	// Count is the number of scalar elements per instance.
	Count int
	// Overrides marks a logically distinct type stored as ElemType.
	Overrides bool
	// GoName is the exported identifier fragment ("FVec3", "ItemRef").
	GoName string
	// GoType is the Go type expression inside the runtime package
	// ("FVec3", "int8", "uuid.UUID").
	GoType string
}

// BaseType is a logical value category with its ordered variants.
type BaseType struct {
	Name     string
	Variants []Variant
}

// Catalog is the immutable registry of base types and container kinds.
// Build it once per compiler invocation and pass it down explicitly.
type Catalog struct {
	baseTypes  []BaseType
	containers []ContainerKind
	byName     map[string]position
	combos     []Combo
}

type position struct {
	base    int
	variant int
}

// New builds a catalog from base types and containers, in declaration order.
func New(baseTypes []BaseType, containers []ContainerKind) (*Catalog, error) {
	c := &Catalog{
		baseTypes:  baseTypes,
		containers: containers,
		byName:     make(map[string]position),
	}

	for bi, bt := range baseTypes {
		if len(bt.Variants) == 0 || len(bt.Variants) >= 0x0f {
			return nil, fmt.Errorf("base type %s: invalid variant count %d", bt.Name, len(bt.Variants))
		}

		for vi, v := range bt.Variants {
			if _, dup := c.byName[v.Name]; dup {
				return nil, fmt.Errorf("duplicate variant %q", v.Name)
			}

			c.byName[v.Name] = position{base: bi, variant: vi}
		}
	}

	seen := map[ContainerKind]struct{}{}

	for _, k := range containers {
		if !k.IsValid() {
			return nil, fmt.Errorf("invalid container kind %#x", uint8(k))
		}

		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("duplicate container kind %s", k)
		}

		seen[k] = struct{}{}
	}

	// Override variants must point at a plain variant of the same base type.
	for _, bt := range baseTypes {
		for _, v := range bt.Variants {
			if !v.Overrides {
				continue
			}

			p, ok := c.byName[v.ElemType]
			if !ok || baseTypes[p.base].Name != bt.Name || baseTypes[p.base].Variants[p.variant].Overrides {
				return nil, fmt.Errorf("override variant %s: %q is not a plain variant of %s", v.Name, v.ElemType, bt.Name)
			}
		}
	}

	c.combos = c.enumerate()

	return c, nil
}

// BaseTypes returns the base types in declaration order.
func (c *Catalog) BaseTypes() []BaseType {
	return c.baseTypes
}

// Containers returns the container kinds in declaration order.
func (c *Catalog) Containers() []ContainerKind {
	return c.containers
}

// Names returns the implementing type names in declaration order.
func (c *Catalog) Names() []string {
	var names []string

	for _, bt := range c.baseTypes {
		for _, v := range bt.Variants {
			names = append(names, v.Name)
		}
	}

	return names
}

// Lookup finds the base type and variant implemented by name.
func (c *Catalog) Lookup(name string) (BaseType, Variant, bool) {
	p, ok := c.byName[name]
	if !ok {
		return BaseType{}, Variant{}, false
	}

	bt := c.baseTypes[p.base]

	return bt, bt.Variants[p.variant], true
}

// IsBaseType reports whether name is an implementing type of the catalog.
func (c *Catalog) IsBaseType(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// DataTypeID returns the dispatch id of the variant implemented by name.
func (c *Catalog) DataTypeID(name string) (uint16, bool) {
	p, ok := c.byName[name]
	if !ok {
		return 0, false
	}

	return DataTypeID(p.base, p.variant), true
}

// Physical returns the variant that stores v. It is v itself unless v
// overrides another variant.
func (c *Catalog) Physical(v Variant) Variant {
	if !v.Overrides {
		return v
	}

	_, phys, _ := c.Lookup(v.ElemType)

	return phys
}

// DataTypeID derives the data type id from zero-based base and variant indices.
func DataTypeID(baseIndex, variantIndex int) uint16 {
	return uint16(((baseIndex + 1) << 4) | (variantIndex + 1))
}

// SplitDataTypeID is the inverse of DataTypeID.
func SplitDataTypeID(id uint16) (baseIndex, variantIndex int, ok bool) {
	if id>>4 == 0 || id&0x0f == 0 {
		return 0, 0, false
	}

	return int(id>>4) - 1, int(id&0x0f) - 1, true
}

// QualifyGoType prefixes runtime-defined types with qualifier. Builtin types
// ("int8", "string") and already qualified types ("uuid.UUID") are returned
// unchanged.
func QualifyGoType(qualifier, goType string) string {
	if qualifier == "" || goType == "" || strings.Contains(goType, ".") {
		return goType
	}

	r := []rune(goType)[0]
	if !unicode.IsUpper(r) {
		return goType
	}

	return qualifier + goType
}
