package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPackage_VaryingField(t *testing.T) {
	it := NewItem("A", fields(
		MustField("Varying", "Value"),
		MustField("Varying", "Values", Optional(), Vector(), Indexed()),
	))

	_, err := BuildPackage("Pkg", ".", []*Version{NewVersion("V1", nil, it)})
	require.NoError(t, err)

	for _, f := range it.Fields() {
		assert.True(t, f.IsBuiltIn(), f.Name())
		assert.Equal(t, BuiltInVarying, f.BuiltIn())
		assert.False(t, f.IsBaseType())
		assert.Nil(t, f.Ref())
		assert.True(t, f.IsComplex())
	}
}

func TestBuildPackage_TemplateFields(t *testing.T) {
	node := NewItem("Node", fields(MustField("string", "Name")))
	scene := NewEntity("Scene",
		fields(
			MustField("Nodes", "Nodes"),
			MustField("Hierarchy", "Hierarchy"),
			MustField("Names", "Names"),
		),
		WithTemplates(
			Template{Name: "Nodes", Template: "ItemTable", Types: []string{"uuid", "Node"}, Flags: []string{"NullEntities"}},
			Template{Name: "Hierarchy", Template: "DirectedGraph", Types: []string{"uuid"}, Flags: []string{"Acyclic", "SingleRoot"}},
			Template{Name: "Names", Template: "BidirectionalMap", Types: []string{"string", "uuid"}},
			Template{Name: "Settings", Template: "ItemTable", Types: []string{"string", "Varying"}},
		),
	)

	_, err := BuildPackage("Pkg", ".", []*Version{NewVersion("V1", nil, node, scene)})
	require.NoError(t, err)

	nodes, _ := scene.FindField("Nodes")
	tmpl, ok := nodes.Template()
	require.True(t, ok)
	assert.Equal(t, TemplateItemTable, tmpl.Kind())
	assert.Equal(t, uint(0x2), tmpl.FlagBits())
	assert.False(t, nodes.IsBaseType())
	assert.Nil(t, nodes.Ref())

	hier, _ := scene.FindField("Hierarchy")
	tmpl, _ = hier.Template()
	assert.Equal(t, uint(0x5), tmpl.FlagBits())

	names, _ := scene.FindField("Names")
	_, ok = names.Template()
	assert.True(t, ok)
	assert.False(t, names.IsBuiltIn())
}

func TestBuildPackage_InvalidTemplates(t *testing.T) {
	node := func() *Item { return NewItem("Node", fields(MustField("string", "Name"))) }

	tests := []struct {
		name     string
		template Template
		field    *Field
		msg      string
	}{
		{
			name:     "wrong arity",
			template: Template{Name: "T", Template: "ItemTable", Types: []string{"uuid"}},
			msg:      "matching type arguments",
		},
		{
			name:     "item key",
			template: Template{Name: "T", Template: "ItemTable", Types: []string{"Node", "Node"}},
			msg:      "must be a base type",
		},
		{
			name:     "base value",
			template: Template{Name: "T", Template: "ItemTable", Types: []string{"uuid", "i32"}},
			msg:      "must be an item",
		},
		{
			name:     "unknown flag",
			template: Template{Name: "T", Template: "DirectedGraph", Types: []string{"uuid"}, Flags: []string{"Sorted"}},
			msg:      `unknown DirectedGraph flag "Sorted"`,
		},
		{
			name:     "flags on map",
			template: Template{Name: "T", Template: "BidirectionalMap", Types: []string{"uuid", "i32"}, Flags: []string{"Acyclic"}},
			msg:      "unknown BidirectionalMap flag",
		},
		{
			name:     "name clash",
			template: Template{Name: "Node", Template: "DirectedGraph", Types: []string{"uuid"}},
			msg:      "already a type",
		},
		{
			name:     "optional template as field",
			template: Template{Name: "T", Template: "Optional", Types: []string{"i32"}},
			field:    MustField("T", "X"),
			msg:      "only ItemTable, DirectedGraph and BidirectionalMap",
		},
		{
			name:     "template field with container",
			template: Template{Name: "T", Template: "DirectedGraph", Types: []string{"uuid"}},
			field:    MustField("T", "X", Vector()),
			msg:      "cannot be optional, a vector or indexed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ff []*Field
			if tt.field != nil {
				ff = fields(tt.field)
			}

			v1 := NewVersion("V1", nil, node(), NewItem("A", ff, WithTemplates(tt.template)))

			_, err := BuildPackage("Pkg", ".", []*Version{v1})
			de := requireDefinitionError(t, err, ErrInvalidTemplate, CodeInvalidTemplate)
			assert.Contains(t, de.Msg, tt.msg)
		})
	}
}

func TestBuildPackage_VaryingIsNoValidationKey(t *testing.T) {
	v1 := NewVersion("V1", nil, NewItem("A",
		fields(
			MustField("Varying", "Keys", Vector()),
			MustField("Varying", "Table", Vector()),
		),
		WithValidations(AllKeysInTable("Keys", "Table")),
	))

	_, err := BuildPackage("Pkg", ".", []*Version{v1})
	de := requireDefinitionError(t, err, ErrInvalidValidation, CodeInvalidValidation)
	assert.Contains(t, de.Msg, "keys must be base type values")
}
