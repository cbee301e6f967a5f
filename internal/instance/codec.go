package instance

import (
	"fmt"

	"pds-generator/internal/catalog"
	"pds-generator/internal/schema"
	"pds-generator/pds"
)

// Write writes every field of o under its name, in declaration order.
func (o *Object) Write(w *pds.Writer) error {
	for _, f := range o.item.Fields() {
		name := f.Name()

		if f.IsBuiltIn() {
			ops, err := builtinOpsOf(f)
			if err != nil {
				return err
			}

			if err := ops.write(w, name, o.values[name]); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			continue
		}

		if f.Ref() == nil {
			dt, ct, err := valueKey(f)
			if err != nil {
				return err
			}

			if err := pds.WriteDynamicValue(dt, ct, w, name, o.values[name]); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			continue
		}

		if err := writeItems(w, name, f.Container(), o.values[name].(*Items)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

func writeItems(w *pds.Writer, key string, k catalog.ContainerKind, items *Items) error {
	if !items.Present {
		if k.IsVector() {
			return w.WriteNullSectionsArray(key)
		}

		return w.WriteNullSection(key)
	}

	if !k.IsVector() {
		if len(items.Values) != 1 {
			return fmt.Errorf("%w: %d values in a single item field", ErrFieldKind, len(items.Values))
		}

		sec, err := w.BeginSection(key)
		if err != nil {
			return err
		}

		if err := items.Values[0].Write(sec); err != nil {
			return err
		}

		return w.EndSection(sec)
	}

	var index []int32
	if k.IsIndexed() {
		index = items.Index
		if index == nil {
			index = []int32{}
		}
	}

	arr, err := w.BeginSectionsArray(key, len(items.Values), index)
	if err != nil {
		return err
	}

	for i, v := range items.Values {
		if err := w.BeginSectionInArray(arr, i); err != nil {
			return err
		}

		if err := v.Write(arr); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}

		if err := w.EndSectionInArray(arr, i); err != nil {
			return err
		}
	}

	return w.EndSectionsArray(arr)
}

// Read reads every field of o from r, replacing the current values.
func (o *Object) Read(r *pds.Reader) error {
	for _, f := range o.item.Fields() {
		name := f.Name()

		if f.IsBuiltIn() {
			ops, err := builtinOpsOf(f)
			if err != nil {
				return err
			}

			if err := ops.read(r, name, o.values[name]); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			continue
		}

		if f.Ref() == nil {
			dt, ct, err := valueKey(f)
			if err != nil {
				return err
			}

			if err := pds.ReadDynamicValue(dt, ct, r, name, o.values[name]); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			continue
		}

		items, err := readItems(r, name, f)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		o.values[name] = items
	}

	return nil
}

func readItems(r *pds.Reader, key string, f *schema.Field) (*Items, error) {
	k := f.Container()

	if !k.IsVector() {
		sec, err := r.BeginSection(key, k.IsOptional())
		if err != nil {
			return nil, err
		}

		if sec == nil {
			return &Items{}, nil
		}

		child, err := New(f.Ref())
		if err != nil {
			return nil, err
		}

		if err := child.Read(sec); err != nil {
			return nil, err
		}

		if err := r.EndSection(sec); err != nil {
			return nil, err
		}

		return &Items{Present: true, Values: []*Object{child}}, nil
	}

	arr, n, index, err := r.BeginSectionsArray(key, k.IsOptional())
	if err != nil {
		return nil, err
	}

	if arr == nil {
		return &Items{}, nil
	}

	if !k.IsIndexed() && index != nil {
		return nil, fmt.Errorf("%w: %q is an indexed vector", pds.ErrTypeMismatch, key)
	}

	items := &Items{Present: true, Values: make([]*Object, n)}

	for i := range n {
		if err := r.BeginSectionInArray(arr, i); err != nil {
			return nil, err
		}

		child, err := New(f.Ref())
		if err != nil {
			return nil, err
		}

		if err := child.Read(arr); err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}

		if err := r.EndSectionInArray(arr, i); err != nil {
			return nil, err
		}

		items.Values[i] = child
	}

	if err := r.EndSectionsArray(arr); err != nil {
		return nil, err
	}

	if k.IsIndexed() {
		items.Index = index
		if items.Index == nil {
			items.Index = make([]int32, n)
			for i := range items.Index {
				items.Index[i] = int32(i)
			}
		}
	}

	return items, nil
}

// Validate reports index entries out of range, validates nested objects and
// checks the item's key table rules. Reports go to v; the returned error is
// set only when validation could not run.
func (o *Object) Validate(v *pds.Validator) error {
	for _, f := range o.item.Fields() {
		name := f.Name()

		if f.IsBuiltIn() {
			ops, err := builtinOpsOf(f)
			if err != nil {
				return err
			}

			if err := ops.validate(v, name, o.values[name]); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			continue
		}

		if f.Ref() == nil {
			dt, ct, err := valueKey(f)
			if err != nil {
				return err
			}

			if err := pds.ValidateValue(dt, ct, v, name, o.values[name]); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			continue
		}

		items := o.values[name].(*Items)

		if f.Container().IsIndexed() && items.Present {
			pds.ValidateIndex(v, name, items.Index, len(items.Values))
		}

		for _, child := range items.Values {
			if err := child.Validate(v); err != nil {
				return err
			}
		}
	}

	for _, rule := range o.item.Validations() {
		keys, err := o.keys(rule.Table)
		if err != nil {
			return err
		}

		table, err := o.keys(rule.MustExistIn)
		if err != nil {
			return err
		}

		if err := pds.ValidateAllKeysInTable(v, keys, table, rule.MustExistIn); err != nil {
			return err
		}
	}

	return nil
}

func (o *Object) keys(name string) ([]any, error) {
	f, data, err := o.field(name)
	if err != nil {
		return nil, err
	}

	dt, ct, err := valueKey(f)
	if err != nil {
		return nil, err
	}

	return pds.ValueKeys(dt, ct, data)
}
