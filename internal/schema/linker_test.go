package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(ff ...*Field) []*Field { return ff }

func requireDefinitionError(t *testing.T, err error, sentinel error, code string) *DefinitionError {
	t.Helper()

	require.Error(t, err)
	require.ErrorIs(t, err, sentinel)

	var de *DefinitionError
	require.True(t, errors.As(err, &de), "want *DefinitionError, got %T", err)
	assert.Equal(t, code, de.Code)

	return de
}

func TestBuildPackage_ItemNotCarriedForward(t *testing.T) {
	v1 := NewVersion("V1", nil,
		NewItem("A", fields(MustField("i32", "X"))),
		NewItem("B", fields(MustField("i32", "Y"))),
	)
	v2 := NewVersion("V2", v1, IdenticalItem("A"))

	_, err := BuildPackage("Pkg", ".", []*Version{v1, v2})
	de := requireDefinitionError(t, err, ErrItemNotCarriedForward, CodeItemNotCarriedForward)
	assert.Equal(t, "B", de.Item)
	assert.Equal(t, "V2", de.Version)
	assert.Contains(t, de.Error(), "not defined in subsequent version V2")
}

func TestBuildPackage_DeletedItemNeedNotCarryForward(t *testing.T) {
	v1 := NewVersion("V1", nil,
		NewItem("A", fields(MustField("i32", "X"))),
		DeletedItem("B"),
	)
	v2 := NewVersion("V2", v1, IdenticalItem("A"))

	p, err := BuildPackage("Pkg", ".", []*Version{v1, v2})
	require.NoError(t, err)

	latest, err := p.Latest()
	require.NoError(t, err)
	assert.Equal(t, "V2", latest.Name())
}

func TestBuildPackage_KindMismatch(t *testing.T) {
	v1 := NewVersion("V1", nil, NewEntity("A", fields(MustField("i32", "X"))))
	v2 := NewVersion("V2", v1, IdenticalItem("A"))

	_, err := BuildPackage("Pkg", ".", []*Version{v1, v2})
	requireDefinitionError(t, err, ErrKindMismatch, CodeKindMismatch)
}

func TestBuildPackage_MappingCompleteness(t *testing.T) {
	build := func(mappings []Mapping) error {
		v1 := NewVersion("V1", nil, NewItem("A", fields(MustField("string", "Name"))))
		v2 := NewVersion("V2", v1, ModifiedItem("A", fields(MustField("string", "Name")), mappings))

		_, err := BuildPackage("Pkg", ".", []*Version{v1, v2})

		return err
	}

	de := requireDefinitionError(t, build(nil), ErrFieldNotMapped, CodeFieldNotMapped)
	assert.Equal(t, "Name", de.Field)

	require.NoError(t, build([]Mapping{SameFieldMapping("Name")}))
	require.NoError(t, build([]Mapping{RenamedFieldMapping("Name", "Name")}))

	requireDefinitionError(t, build([]Mapping{SameFieldMapping("Name"), NewFieldMapping("Other")}),
		ErrUnknownMappedField, CodeUnknownMappedField)
	requireDefinitionError(t, build([]Mapping{RenamedFieldMapping("Name", "Missing")}),
		ErrUnknownPreviousField, CodeUnknownPreviousField)
}

func TestBuildPackage_CustomMappingCoversFields(t *testing.T) {
	v1 := NewVersion("V1", nil, NewItem("A", fields(MustField("string", "Full"))))
	v2 := NewVersion("V2", v1, ModifiedItem("A",
		fields(MustField("string", "First"), MustField("string", "Last")),
		[]Mapping{
			CustomMapping([]string{"First", "Last"}, "dst.Full = src.First + \" \" + src.Last", "dst.First = src.Full"),
			DeletedFieldMapping("Full"),
		},
	))

	_, err := BuildPackage("Pkg", ".", []*Version{v1, v2})
	require.NoError(t, err)
}

func TestBuildPackage_PredecessorSkipsAliases(t *testing.T) {
	x1 := NewItem("X", fields(MustField("i32", "A")))
	x2 := IdenticalItem("X")
	x3 := ModifiedItem("X",
		fields(MustField("i32", "A"), MustField("string", "B")),
		[]Mapping{SameFieldMapping("A"), NewFieldMapping("B")},
	)

	v1 := NewVersion("V1", nil, x1)
	v2 := NewVersion("V2", v1, x2)
	v3 := NewVersion("V3", v2, x3)

	p, err := BuildPackage("Pkg", "out", []*Version{v1, v2, v3})
	require.NoError(t, err)

	assert.Same(t, x1, x2.PreviousVersion())
	assert.Same(t, x1, x3.PreviousVersion(), "must bind to the definition, not the alias")
	assert.Same(t, x1, x2.Definition())
	assert.Same(t, x3, x3.Definition())
	assert.Nil(t, x1.PreviousVersion())

	assert.Same(t, p, x3.Package())
	assert.Same(t, v3, x3.Version())
	assert.Equal(t, "Pkg.V3.X", x3.TypeString())
	assert.Equal(t, []*Item{x3}, p.ModifiedItems())
}

func TestBuildPackage_NoPreviousDefinition(t *testing.T) {
	v1 := NewVersion("V1", nil, IdenticalItem("X"))

	_, err := BuildPackage("Pkg", ".", []*Version{v1})
	requireDefinitionError(t, err, ErrNoPreviousDefinition, CodeNoPreviousDefinition)

	v1 = NewVersion("V1", nil, DeletedItem("X"))
	v2 := NewVersion("V2", v1, ModifiedItem("X", nil, nil))

	_, err = BuildPackage("Pkg", ".", []*Version{v1, v2})
	de := requireDefinitionError(t, err, ErrNoPreviousDefinition, CodeNoPreviousDefinition)
	assert.Contains(t, de.Msg, "deleted in version V1")
}

func TestBuildPackage_FailureLeavesInputsUntouched(t *testing.T) {
	x1 := NewItem("X", fields(MustField("i32", "A")))
	x2 := ModifiedItem("X", fields(MustField("i32", "A")), nil)

	v1 := NewVersion("V1", nil, x1)
	v2 := NewVersion("V2", v1, x2)

	_, err := BuildPackage("Pkg", ".", []*Version{v1, v2})
	require.ErrorIs(t, err, ErrFieldNotMapped)

	assert.Nil(t, x2.PreviousVersion())
	assert.Nil(t, x2.Package())
	assert.Nil(t, v1.Package())
	assert.False(t, x1.Fields()[0].IsBaseType())
}

func TestBuildPackage_FieldResolution(t *testing.T) {
	point := NewItem("Point", fields(MustField("dvec3", "Pos")))
	shape := NewEntity("Shape", fields(
		MustField("string", "Name"),
		MustField("Point", "Origin"),
		MustField("Point", "Corners", Vector(), Indexed()),
		MustField("item_ref", "Parent", Optional()),
	))

	p, err := BuildPackage("Pkg", ".", []*Version{NewVersion("V1", nil, point, shape)})
	require.NoError(t, err)

	name, _ := shape.FindField("Name")
	assert.True(t, name.IsSimple())
	assert.True(t, name.IsBaseType())
	assert.Same(t, shape, name.Item())

	origin, _ := shape.FindField("Origin")
	assert.True(t, origin.IsComplex())
	assert.False(t, origin.IsBaseType())
	assert.Same(t, point, origin.Ref())

	corners, _ := shape.FindField("Corners")
	assert.Equal(t, "idx_vector<Point>", corners.TypeString())

	parent, _ := shape.FindField("Parent")
	bt, variant, ok := parent.BaseType()
	require.True(t, ok)
	assert.Equal(t, "Uuid", bt.Name)
	assert.True(t, variant.Overrides)
	assert.True(t, parent.IsComplex())

	assert.Equal(t, []*Item{shape}, p.Entities())
}

func TestBuildPackage_UnknownFieldType(t *testing.T) {
	v1 := NewVersion("V1", nil, NewItem("A", fields(MustField("quaternion", "Q"))))

	_, err := BuildPackage("Pkg", ".", []*Version{v1})
	de := requireDefinitionError(t, err, ErrUnknownFieldType, CodeUnknownFieldType)
	assert.Equal(t, "Q", de.Field)
}

func TestBuildPackage_Hints(t *testing.T) {
	v1 := NewVersion("V1", nil, NewItem("A", fields(MustField("strng", "Name"))))

	_, err := BuildPackage("Pkg", ".", []*Version{v1})
	de := requireDefinitionError(t, err, ErrUnknownFieldType, CodeUnknownFieldType)
	assert.Contains(t, de.Msg, "did you mean string?")

	v1 = NewVersion("V1", nil,
		NewItem("Point", fields(MustField("i32", "X"))),
		NewItem("A", fields(MustField("Pointt", "P"))))

	_, err = BuildPackage("Pkg", ".", []*Version{v1})
	de = requireDefinitionError(t, err, ErrUnknownFieldType, CodeUnknownFieldType)
	assert.Contains(t, de.Msg, "did you mean Point?")

	v1 = NewVersion("V1", nil, NewItem("A", fields(MustField("string", "Name"))))
	v2 := NewVersion("V2", v1, ModifiedItem("A", fields(MustField("string", "Title")),
		[]Mapping{RenamedFieldMapping("Title", "Nmae")}))

	_, err = BuildPackage("Pkg", ".", []*Version{v1, v2})
	de = requireDefinitionError(t, err, ErrUnknownPreviousField, CodeUnknownPreviousField)
	assert.Contains(t, de.Msg, "did you mean Name?")

	v1 = NewVersion("V1", nil, NewItem("A", fields(MustField("quaternion", "Q"))))

	_, err = BuildPackage("Pkg", ".", []*Version{v1})
	de = requireDefinitionError(t, err, ErrUnknownFieldType, CodeUnknownFieldType)
	assert.NotContains(t, de.Msg, "did you mean")
}

func TestBuildPackage_RecursiveItem(t *testing.T) {
	v1 := NewVersion("V1", nil,
		NewItem("Node", fields(MustField("Node", "Children", Vector()))),
	)
	_, err := BuildPackage("Pkg", ".", []*Version{v1})
	require.NoError(t, err)

	v1 = NewVersion("V1", nil,
		NewItem("A", fields(MustField("B", "B"))),
		NewItem("B", fields(MustField("A", "A"))),
	)
	_, err = BuildPackage("Pkg", ".", []*Version{v1})
	requireDefinitionError(t, err, ErrRecursiveItem, CodeRecursiveItem)
}

func TestBuildPackage_Validations(t *testing.T) {
	build := func(rule Validation, ff ...*Field) error {
		v1 := NewVersion("V1", nil, NewItem("A", ff, WithValidations(rule)))
		_, err := BuildPackage("Pkg", ".", []*Version{v1})

		return err
	}

	require.NoError(t, build(AllKeysInTable("Refs", "Keys"),
		MustField("uuid", "Refs", Vector()),
		MustField("uuid", "Keys", Vector(), Optional()),
	))

	requireDefinitionError(t, build(AllKeysInTable("Refs", "Missing"),
		MustField("uuid", "Refs", Vector()),
	), ErrUnknownValidationField, CodeUnknownValidationField)

	requireDefinitionError(t, build(AllKeysInTable("Refs", "Keys"),
		MustField("uuid", "Refs", Vector()),
		MustField("uuid", "Keys"),
	), ErrInvalidValidation, CodeInvalidValidation)

	requireDefinitionError(t, build(AllKeysInTable("Refs", "Keys"),
		MustField("uuid", "Refs", Vector()),
		MustField("hash", "Keys", Vector()),
	), ErrInvalidValidation, CodeInvalidValidation)
}

func TestBuildPackage_Structure(t *testing.T) {
	t.Run("duplicate version", func(t *testing.T) {
		_, err := BuildPackage("Pkg", ".", []*Version{NewVersion("V1", nil), NewVersion("V1", nil)})
		requireDefinitionError(t, err, ErrDuplicateVersion, CodeDuplicateVersion)
	})

	t.Run("previous not declared before", func(t *testing.T) {
		v1 := NewVersion("V1", nil)
		v2 := NewVersion("V2", v1)

		_, err := BuildPackage("Pkg", ".", []*Version{v2, v1})
		requireDefinitionError(t, err, ErrUnknownPreviousVersion, CodeUnknownPreviousVersion)
	})

	t.Run("duplicate item", func(t *testing.T) {
		v1 := NewVersion("V1", nil, NewItem("A", nil), NewEntity("A", nil))

		_, err := BuildPackage("Pkg", ".", []*Version{v1})
		requireDefinitionError(t, err, ErrDuplicateItem, CodeDuplicateItem)
	})

	t.Run("shared item", func(t *testing.T) {
		a := NewItem("A", nil)
		v1 := NewVersion("V1", nil, a)
		v2 := NewVersion("V2", v1, a)

		_, err := BuildPackage("Pkg", ".", []*Version{v1, v2})
		requireDefinitionError(t, err, ErrItemShared, CodeItemShared)
	})

	t.Run("duplicate field", func(t *testing.T) {
		v1 := NewVersion("V1", nil, NewItem("A", fields(MustField("i8", "X"), MustField("u8", "X"))))

		_, err := BuildPackage("Pkg", ".", []*Version{v1})
		requireDefinitionError(t, err, ErrDuplicateField, CodeDuplicateField)
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := BuildPackage("my-pkg", ".", nil)
		requireDefinitionError(t, err, ErrInvalidName, CodeInvalidName)
	})

	t.Run("unknown dependency", func(t *testing.T) {
		v1 := NewVersion("V1", nil, NewItem("A", nil, WithDependencies(Dependency{Name: "B"})))

		_, err := BuildPackage("Pkg", ".", []*Version{v1})
		requireDefinitionError(t, err, ErrUnknownDependency, CodeUnknownDependency)
	})

	t.Run("invalid template", func(t *testing.T) {
		v1 := NewVersion("V1", nil, NewItem("A", nil, WithTemplates(Template{Name: "Lookup", Template: "Map", Types: []string{"uuid"}})))

		_, err := BuildPackage("Pkg", ".", []*Version{v1})
		requireDefinitionError(t, err, ErrInvalidTemplate, CodeInvalidTemplate)
	})
}

func TestNewField_IndexedRequiresVector(t *testing.T) {
	for _, opts := range [][]FieldOption{
		{Indexed()},
		{Indexed(), Optional()},
		{Optional(), Indexed()},
	} {
		f, err := NewField("i32", "X", opts...)
		assert.Nil(t, f)
		requireDefinitionError(t, err, ErrIndexedRequiresVector, CodeIndexedRequiresVector)
	}

	assert.Panics(t, func() { MustField("i32", "X", Indexed()) })

	f, err := NewField("i32", "X", Indexed(), Vector())
	require.NoError(t, err)
	assert.True(t, f.IsIndexed())
}

func TestLatest_MultipleLeaves(t *testing.T) {
	v1 := NewVersion("V1", nil, NewItem("A", nil))
	v2 := NewVersion("V2", v1, IdenticalItem("A"))
	v3 := NewVersion("V3", v1, IdenticalItem("A"))

	p, err := BuildPackage("Pkg", ".", []*Version{v1, v2, v3})
	require.NoError(t, err)

	_, err = p.Latest()
	require.ErrorIs(t, err, ErrNoLatestVersion)
}

func TestPackage_VersionsIsACopy(t *testing.T) {
	v1 := NewVersion("V1", nil, NewItem("A", nil))
	v2 := NewVersion("V2", v1, IdenticalItem("A"))

	p, err := BuildPackage("Pkg", ".", []*Version{v1, v2})
	require.NoError(t, err)

	got := p.Versions()
	got[0], got[1] = got[1], nil

	assert.Equal(t, []*Version{v1, v2}, p.Versions())

	latest, err := p.Latest()
	require.NoError(t, err)
	assert.Same(t, v2, latest)
}

func TestLifecycle_String(t *testing.T) {
	assert.Equal(t, "New", LifecycleNew.String())
	assert.Equal(t, "Identical", LifecycleIdentical.String())
	assert.Equal(t, "Modified", LifecycleModified.String())
	assert.Equal(t, "Deleted", LifecycleDeleted.String())
	assert.Equal(t, "Lifecycle(9)", Lifecycle(9).String())
}
