package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pds-generator/internal/schema"
	"pds-generator/pds"
)

func buildSettings(t *testing.T) *schema.Item {
	t.Helper()

	settings := schema.NewEntity("Settings", []*schema.Field{
		schema.MustField("Varying", "Default"),
		schema.MustField("Varying", "Override", schema.Optional()),
		schema.MustField("Varying", "History", schema.Vector(), schema.Indexed()),
	})

	_, err := schema.BuildPackage("Config", ".", []*schema.Version{schema.NewVersion("V1", nil, settings)})
	require.NoError(t, err)

	return settings
}

func varyingOf(t *testing.T, dt pds.DataType, ct pds.ContainerType, data any) pds.Varying {
	t.Helper()

	var x pds.Varying
	require.NoError(t, x.Set(dt, ct, data))

	return x
}

func TestObject_VaryingFields(t *testing.T) {
	settings := buildSettings(t)

	o := MustNew(settings)
	require.NoError(t, Set(o, "Default", varyingOf(t, pds.DtString, pds.CtNone, new(string))))

	over := varyingOf(t, pds.DtU16, pds.CtVector, &[]uint16{1, 2})
	require.NoError(t, Set(o, "Override", &over))

	require.NoError(t, Set(o, "History", pds.IdxVector[pds.Varying]{
		Values: []pds.Varying{varyingOf(t, pds.DtBool, pds.CtNone, new(bool))},
		Index:  []int32{0, 0},
	}))

	w := pds.NewWriter()
	require.NoError(t, o.Write(w))

	back := MustNew(settings)
	require.NoError(t, back.Read(pds.NewReader(w.Bytes())))

	eq, err := back.Equals(o)
	require.NoError(t, err)
	assert.True(t, eq)

	got, err := Get[*pds.Varying](back, "Override")
	require.NoError(t, err)

	vals, ok := pds.VaryingData[[]uint16](got)
	require.True(t, ok)
	assert.Equal(t, []uint16{1, 2}, *vals)

	clone, err := o.Clone()
	require.NoError(t, err)

	mine, err := Get[*pds.Varying](o, "Override")
	require.NoError(t, err)

	data, _ := pds.VaryingData[[]uint16](mine)
	(*data)[0] = 9

	eq, err = clone.Equals(o)
	require.NoError(t, err)
	assert.False(t, eq, "the clone does not share data")

	require.NoError(t, back.CopyField("Override", o, "Override"))

	eq, err = back.Equals(o)
	require.NoError(t, err)
	assert.True(t, eq)

	v := pds.NewValidator()
	require.NoError(t, o.Validate(v))
	assert.True(t, v.Valid(), v.Messages())

	require.NoError(t, o.ClearField("Default"))
	v.Reset()
	require.NoError(t, o.Validate(v))
	assert.Equal(t, pds.NullNotAllowed, v.ErrorIDs())
}

func TestObject_VaryingFieldKinds(t *testing.T) {
	settings := buildSettings(t)
	o := MustNew(settings)

	_, err := o.Items("Default")
	require.ErrorIs(t, err, ErrFieldKind)

	require.ErrorIs(t, o.CopyField("Default", o, "Override"), ErrFieldKind)

	w := pds.NewWriter()
	require.ErrorIs(t, o.Write(w), pds.ErrNotInitialized)
}

func TestObject_TemplateFieldNotInstantiable(t *testing.T) {
	node := schema.NewItem("Node", []*schema.Field{schema.MustField("string", "Name")})
	graph := schema.NewItem("Graph",
		[]*schema.Field{schema.MustField("Nodes", "Nodes")},
		schema.WithTemplates(schema.Template{Name: "Nodes", Template: "ItemTable", Types: []string{"uuid", "Node"}}),
	)

	_, err := schema.BuildPackage("Graphs", ".", []*schema.Version{schema.NewVersion("V1", nil, node, graph)})
	require.NoError(t, err)

	_, err = New(graph)
	require.ErrorIs(t, err, ErrNotInstantiable)
}
