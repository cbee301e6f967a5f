package instance

import (
	"errors"
	"fmt"

	"pds-generator/internal/schema"
	"pds-generator/pds"
)

var (
	// ErrUnknownField is returned for a field name the item does not declare.
	ErrUnknownField = errors.New("unknown field")
	// ErrFieldKind is returned when an accessor does not match the field kind.
	ErrFieldKind = errors.New("field kind mismatch")
	// ErrDefinitionMismatch is returned when two objects of different
	// definitions are copied or compared.
	ErrDefinitionMismatch = errors.New("objects have different definitions")
	// ErrNotInstantiable is returned for deleted or unlinked items and for
	// items with template fields, which only generated code can hold.
	ErrNotInstantiable = errors.New("item cannot be instantiated")
)

// Items holds the value of an item-typed field. Present is false only for an
// absent optional container; single-item containers hold one value.
type Items struct {
	Present bool
	Values  []*Object
	Index   []int32
}

// Object is a dynamic instance of an item definition.
type Object struct {
	item   *schema.Item
	values map[string]any
}

// New returns a cleared object of item. Identical items instantiate their
// definition.
func New(item *schema.Item) (*Object, error) {
	def := item.Definition()
	if def.Lifecycle() == schema.LifecycleDeleted || def.Package() == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotInstantiable, item.TypeString())
	}

	o := &Object{item: def, values: make(map[string]any, len(def.Fields()))}

	for _, f := range def.Fields() {
		v, err := newFieldValue(f)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", def.TypeString(), f.Name(), err)
		}

		o.values[f.Name()] = v
	}

	return o, nil
}

// MustNew is New that panics on error.
func MustNew(item *schema.Item) *Object {
	o, err := New(item)
	if err != nil {
		panic(err)
	}

	return o
}

func newFieldValue(f *schema.Field) (any, error) {
	if _, ok := f.Template(); ok {
		return nil, fmt.Errorf("%w: template field %s", ErrNotInstantiable, f.TypeName())
	}

	if f.IsBuiltIn() {
		ops, err := builtinOpsOf(f)
		if err != nil {
			return nil, err
		}

		return ops.new(), nil
	}

	if f.Ref() == nil {
		dt, ct, err := valueKey(f)
		if err != nil {
			return nil, err
		}

		return pds.NewValue(dt, ct)
	}

	k := f.Container()

	items := &Items{Present: !k.IsOptional()}
	if !k.IsVector() && items.Present {
		child, err := New(f.Ref())
		if err != nil {
			return nil, err
		}

		items.Values = []*Object{child}
	}

	if k.IsIndexed() && items.Present {
		items.Index = []int32{}
	}

	return items, nil
}

func valueKey(f *schema.Field) (pds.DataType, pds.ContainerType, error) {
	cat := f.Item().Package().Catalog()

	id, ok := cat.DataTypeID(f.TypeName())
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s is not a base type", ErrFieldKind, f.TypeName())
	}

	return pds.DataType(id), pds.ContainerType(f.Container().ID()), nil
}

// Item returns the definition the object instantiates.
func (o *Object) Item() *schema.Item { return o.item }

func (o *Object) field(name string) (*schema.Field, any, error) {
	f, ok := o.item.FindField(name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, o.item.TypeString(), name)
	}

	return f, o.values[name], nil
}

// Value returns the container pointer of a base type field, as allocated by
// pds.NewValue, or of a built-in field, e.g. *[]pds.Varying.
func (o *Object) Value(name string) (any, error) {
	f, v, err := o.field(name)
	if err != nil {
		return nil, err
	}

	if f.Ref() != nil {
		return nil, fmt.Errorf("%w: %s is item-typed", ErrFieldKind, name)
	}

	return v, nil
}

// Items returns the value of an item-typed field.
func (o *Object) Items(name string) (*Items, error) {
	f, v, err := o.field(name)
	if err != nil {
		return nil, err
	}

	if f.Ref() == nil {
		return nil, fmt.Errorf("%w: %s is a base type", ErrFieldKind, name)
	}

	return v.(*Items), nil
}

// SetItems replaces the value of an item-typed field. Every value must
// instantiate the field's item definition.
func (o *Object) SetItems(name string, items *Items) error {
	f, _, err := o.field(name)
	if err != nil {
		return err
	}

	if f.Ref() == nil {
		return fmt.Errorf("%w: %s is a base type", ErrFieldKind, name)
	}

	k := f.Container()
	if !k.IsVector() && items.Present && len(items.Values) != 1 {
		return fmt.Errorf("%w: %s holds a single item, got %d", ErrFieldKind, name, len(items.Values))
	}

	def := f.Ref().Definition()
	for _, v := range items.Values {
		if v.item != def {
			return fmt.Errorf("%w: %s holds %s, got %s", ErrDefinitionMismatch, name, def.TypeString(), v.item.TypeString())
		}
	}

	o.values[name] = items

	return nil
}

// Child returns the nested object of a non-vector item field; nil when an
// optional field is absent.
func (o *Object) Child(name string) (*Object, error) {
	items, err := o.Items(name)
	if err != nil {
		return nil, err
	}

	if len(items.Values) == 0 {
		return nil, nil
	}

	return items.Values[0], nil
}

// Get returns a base type field as its container type C, e.g. int32,
// pds.Optional[string] or []pds.FVec3.
func Get[C any](o *Object, name string) (C, error) {
	var zero C

	v, err := o.Value(name)
	if err != nil {
		return zero, err
	}

	p, ok := v.(*C)
	if !ok {
		return zero, fmt.Errorf("%w: %s holds %T, not %T", ErrFieldKind, name, v, &zero)
	}

	return *p, nil
}

// Set stores a base type field value of container type C.
func Set[C any](o *Object, name string, value C) error {
	v, err := o.Value(name)
	if err != nil {
		return err
	}

	p, ok := v.(*C)
	if !ok {
		return fmt.Errorf("%w: %s holds %T, not %T", ErrFieldKind, name, v, &value)
	}

	*p = value

	return nil
}

// Clear resets every field to the state of a new object.
func (o *Object) Clear() error {
	for _, f := range o.item.Fields() {
		if err := o.clearField(f); err != nil {
			return err
		}
	}

	return nil
}

// ClearField resets one field to the state of a new object.
func (o *Object) ClearField(name string) error {
	f, _, err := o.field(name)
	if err != nil {
		return err
	}

	return o.clearField(f)
}

func (o *Object) clearField(f *schema.Field) error {
	if f.IsBaseType() {
		dt, ct, err := valueKey(f)
		if err != nil {
			return err
		}

		if err := pds.ClearValue(dt, ct, o.values[f.Name()]); err != nil {
			return fmt.Errorf("%s: %w", f.Name(), err)
		}

		return nil
	}

	v, err := newFieldValue(f)
	if err != nil {
		return err
	}

	o.values[f.Name()] = v

	return nil
}

// Clone returns a deep copy of o.
func (o *Object) Clone() (*Object, error) {
	out, err := New(o.item)
	if err != nil {
		return nil, err
	}

	if err := out.DeepCopy(o); err != nil {
		return nil, err
	}

	return out, nil
}

// DeepCopy copies src into o. Both must share a definition.
func (o *Object) DeepCopy(src *Object) error {
	if src.item != o.item {
		return fmt.Errorf("%w: %s and %s", ErrDefinitionMismatch, o.item.TypeString(), src.item.TypeString())
	}

	for _, f := range o.item.Fields() {
		name := f.Name()

		if f.IsBuiltIn() {
			if err := copyBuiltIn(f, o.values[name], src.values[name]); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			continue
		}

		if f.Ref() == nil {
			dt, ct, err := valueKey(f)
			if err != nil {
				return err
			}

			if err := pds.CopyValue(dt, ct, o.values[name], src.values[name]); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			continue
		}

		items, err := cloneItems(src.values[name].(*Items))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		o.values[name] = items
	}

	return nil
}

func cloneItems(src *Items) (*Items, error) {
	out := &Items{Present: src.Present}

	if src.Values != nil {
		out.Values = make([]*Object, len(src.Values))

		for i, v := range src.Values {
			c, err := v.Clone()
			if err != nil {
				return nil, err
			}

			out.Values[i] = c
		}
	}

	if src.Index != nil {
		out.Index = append([]int32{}, src.Index...)
	}

	return out, nil
}

// Equals compares two objects of the same definition by value.
func (o *Object) Equals(other *Object) (bool, error) {
	if other.item != o.item {
		return false, fmt.Errorf("%w: %s and %s", ErrDefinitionMismatch, o.item.TypeString(), other.item.TypeString())
	}

	for _, f := range o.item.Fields() {
		name := f.Name()

		if f.IsBuiltIn() {
			ops, err := builtinOpsOf(f)
			if err != nil {
				return false, err
			}

			eq, err := ops.equal(o.values[name], other.values[name])
			if err != nil || !eq {
				return false, err
			}

			continue
		}

		if f.Ref() == nil {
			dt, ct, err := valueKey(f)
			if err != nil {
				return false, err
			}

			eq, err := pds.EqualsValue(dt, ct, o.values[name], other.values[name])
			if err != nil || !eq {
				return false, err
			}

			continue
		}

		eq, err := equalItems(o.values[name].(*Items), other.values[name].(*Items))
		if err != nil || !eq {
			return false, err
		}
	}

	return true, nil
}

func equalItems(a, b *Items) (bool, error) {
	if a.Present != b.Present || len(a.Values) != len(b.Values) || len(a.Index) != len(b.Index) {
		return false, nil
	}

	for i := range a.Index {
		if a.Index[i] != b.Index[i] {
			return false, nil
		}
	}

	for i := range a.Values {
		eq, err := a.Values[i].Equals(b.Values[i])
		if err != nil || !eq {
			return false, err
		}
	}

	return true, nil
}

// CopyField deep copies the base type or built-in field srcName of src into
// the field name of o. Both fields must share type and container.
func (o *Object) CopyField(name string, src *Object, srcName string) error {
	f, dst, err := o.field(name)
	if err != nil {
		return err
	}

	sf, sv, err := src.field(srcName)
	if err != nil {
		return err
	}

	if f.IsBuiltIn() || sf.IsBuiltIn() {
		if f.BuiltIn() != sf.BuiltIn() || f.Container() != sf.Container() {
			return fmt.Errorf("%w: %s is %s, %s is %s", ErrFieldKind, name, f.TypeString(), srcName, sf.TypeString())
		}

		return copyBuiltIn(f, dst, sv)
	}

	if f.Ref() != nil || sf.Ref() != nil {
		return fmt.Errorf("%w: %s and %s must be base type fields", ErrFieldKind, name, srcName)
	}

	dt, ct, err := valueKey(f)
	if err != nil {
		return err
	}

	sdt, sct, err := valueKey(sf)
	if err != nil {
		return err
	}

	if dt != sdt || ct != sct {
		return fmt.Errorf("%w: %s is %s, %s is %s", ErrFieldKind, name, f.TypeString(), srcName, sf.TypeString())
	}

	return pds.CopyValue(dt, ct, dst, sv)
}

func copyBuiltIn(f *schema.Field, dst, src any) error {
	ops, err := builtinOpsOf(f)
	if err != nil {
		return err
	}

	return ops.copy(dst, src)
}
