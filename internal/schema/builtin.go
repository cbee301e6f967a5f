package schema

import (
	"maps"
	"slices"
	"strings"
)

// BuiltInVarying is the item type holding a value whose type is chosen at
// run time. Fields may name it with any container.
const BuiltInVarying = "Varying"

// TemplateKind names a runtime generic a Template instantiates.
type TemplateKind string

const (
	TemplateOptional          TemplateKind = "Optional"
	TemplateOptionalVector    TemplateKind = "OptionalVector"
	TemplateIdxVector         TemplateKind = "IdxVector"
	TemplateOptionalIdxVector TemplateKind = "OptionalIdxVector"
	TemplateItemTable         TemplateKind = "ItemTable"
	TemplateDirectedGraph     TemplateKind = "DirectedGraph"
	TemplateBidirectionalMap  TemplateKind = "BidirectionalMap"
)

type templateArg int

const (
	argAny  templateArg = iota // base type or item
	argBase                    // base type only
	argItem                    // item only
)

type templateSpec struct {
	args []templateArg
	// flags maps flag names to the runtime flag bits.
	flags map[string]uint
	// field marks kinds a field may name directly.
	field bool
}

var templateSpecs = map[TemplateKind]templateSpec{
	TemplateOptional:          {args: []templateArg{argAny}},
	TemplateOptionalVector:    {args: []templateArg{argAny}},
	TemplateIdxVector:         {args: []templateArg{argAny}},
	TemplateOptionalIdxVector: {args: []templateArg{argAny}},
	TemplateItemTable: {
		args:  []templateArg{argBase, argItem},
		flags: map[string]uint{"ZeroKeys": 0x1, "NullEntities": 0x2},
		field: true,
	},
	TemplateDirectedGraph: {
		args:  []templateArg{argBase},
		flags: map[string]uint{"Acyclic": 0x1, "Rooted": 0x2, "SingleRoot": 0x4},
		field: true,
	},
	TemplateBidirectionalMap: {
		args:  []templateArg{argBase, argBase},
		field: true,
	},
}

func templateKindNames() string {
	names := make([]string, 0, len(templateSpecs))
	for k := range templateSpecs {
		names = append(names, string(k))
	}

	slices.Sort(names)

	return strings.Join(names, ", ")
}

// Kind returns the runtime generic of t.
func (t Template) Kind() TemplateKind { return TemplateKind(t.Template) }

// IsFieldType reports whether fields may name t as their type.
func (t Template) IsFieldType() bool { return templateSpecs[t.Kind()].field }

// FlagBits returns the runtime validation flags of t. Unknown names are
// rejected by BuildPackage.
func (t Template) FlagBits() uint {
	var bits uint

	for _, f := range t.Flags {
		bits |= templateSpecs[t.Kind()].flags[f]
	}

	return bits
}

// flagNames lists the flags of kind k, for error messages.
func flagNames(k TemplateKind) []string {
	return slices.Sorted(maps.Keys(templateSpecs[k].flags))
}
