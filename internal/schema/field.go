package schema

import (
	"fmt"

	"pds-generator/internal/catalog"
)

// FieldOption sets a container flag on a field.
type FieldOption func(*Field)

// Optional marks the field as possibly absent.
func Optional() FieldOption {
	return func(f *Field) { f.optional = true }
}

// Vector marks the field as a sequence.
func Vector() FieldOption {
	return func(f *Field) { f.vector = true }
}

// Indexed adds a re-index list to a vector field.
func Indexed() FieldOption {
	return func(f *Field) { f.indexed = true }
}

// Field is a typed member of an Item.
type Field struct {
	name     string
	typeName string
	optional bool
	vector   bool
	indexed  bool

	item *Item

	// Resolved by BuildPackage.
	resolved bool
	baseType catalog.BaseType
	variant  catalog.Variant
	ref      *Item
	builtin  string
	template *Template
}

// NewField creates a field of typeName. typeName is an implementing type of
// the catalog ("fvec3"), BuiltInVarying, a field template of the declaring
// item or the name of an Item declared in the same version. Indexed without
// Vector is rejected.
func NewField(typeName, name string, opts ...FieldOption) (*Field, error) {
	f := &Field{name: name, typeName: typeName}
	for _, opt := range opts {
		opt(f)
	}

	if f.indexed && !f.vector {
		return nil, &DefinitionError{
			Code:  CodeIndexedRequiresVector,
			Field: name,
			Msg:   "an indexed field must also be a vector",
			Err:   ErrIndexedRequiresVector,
		}
	}

	if !isIdentifier(name) {
		return nil, &DefinitionError{
			Code:  CodeInvalidName,
			Field: name,
			Msg:   fmt.Sprintf("field name %q is not an identifier", name),
			Err:   ErrInvalidName,
		}
	}

	return f, nil
}

// MustField is NewField for static schema declarations. It panics on error.
func MustField(typeName, name string, opts ...FieldOption) *Field {
	f, err := NewField(typeName, name, opts...)
	if err != nil {
		panic(err)
	}

	return f
}

func (f *Field) Name() string { return f.name }
func (f *Field) TypeName() string { return f.typeName }
func (f *Field) IsOptional() bool { return f.optional }
func (f *Field) IsVector() bool { return f.vector }
func (f *Field) IsIndexed() bool { return f.indexed }

// Item returns the item declaring the field.
func (f *Field) Item() *Item { return f.item }

// Container returns the container kind derived from the field flags.
func (f *Field) Container() catalog.ContainerKind {
	k, _ := catalog.ContainerFromFlags(f.optional, f.vector, f.indexed)
	return k
}

// TypeString renders the composed type expression ("optional_vector<fvec3>").
func (f *Field) TypeString() string {
	return catalog.ComposeTypeName(f.Container(), f.typeName)
}

// IsBaseType reports whether the field type is a catalog type.
func (f *Field) IsBaseType() bool {
	return f.resolved && f.ref == nil && f.builtin == "" && f.template == nil
}

// IsBuiltIn reports whether the field names a built-in item type.
func (f *Field) IsBuiltIn() bool { return f.builtin != "" }

// BuiltIn returns the built-in item type of the field, "" for others.
func (f *Field) BuiltIn() string { return f.builtin }

// Template returns the item template the field names.
func (f *Field) Template() (Template, bool) {
	if f.template == nil {
		return Template{}, false
	}

	return *f.template, true
}

// IsSimple reports whether the field is a bare base type value.
func (f *Field) IsSimple() bool {
	return f.IsBaseType() && f.Container() == catalog.ContainerNone
}

// IsComplex reports whether the field is wrapped in a container or names an Item.
func (f *Field) IsComplex() bool {
	return !f.IsSimple()
}

// BaseType returns the catalog base type and variant of the field.
func (f *Field) BaseType() (catalog.BaseType, catalog.Variant, bool) {
	return f.baseType, f.variant, f.IsBaseType()
}

// Ref returns the Item the field type names, or nil for base types,
// built-ins and templates.
func (f *Field) Ref() *Item { return f.ref }

func (f *Field) String() string {
	return f.name + " " + f.TypeString()
}
