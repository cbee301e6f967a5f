package instance

import (
	"fmt"
	"slices"

	"pds-generator/internal/catalog"
	"pds-generator/internal/schema"
	"pds-generator/pds"
)

// builtinOps handles the fields of one built-in item type and container.
// Values are pointers to the Go type generated code uses for the field,
// e.g. *pds.OptionalVector[pds.Varying].
type builtinOps struct {
	new      func() any
	write    func(w *pds.Writer, key string, data any) error
	read     func(r *pds.Reader, key string, data any) error
	copy     func(dst, src any) error
	equal    func(a, b any) (bool, error)
	validate func(v *pds.Validator, key string, data any) error
}

func typed[C any](data any) (*C, error) {
	p, ok := data.(*C)
	if !ok || p == nil {
		return nil, fmt.Errorf("%w: want %T, got %T", ErrFieldKind, p, data)
	}

	return p, nil
}

func opsOf[C any](
	write func(*pds.Writer, string, C) error,
	read func(*pds.Reader, string, *C) error,
	clone func(C) C,
	equal func(a, b C) bool,
	validate func(*pds.Validator, string, C) error,
) builtinOps {
	return builtinOps{
		new: func() any { return new(C) },
		write: func(w *pds.Writer, key string, data any) error {
			p, err := typed[C](data)
			if err != nil {
				return err
			}

			return write(w, key, *p)
		},
		read: func(r *pds.Reader, key string, data any) error {
			p, err := typed[C](data)
			if err != nil {
				return err
			}

			return read(r, key, p)
		},
		copy: func(dst, src any) error {
			d, err := typed[C](dst)
			if err != nil {
				return err
			}

			s, err := typed[C](src)
			if err != nil {
				return err
			}

			*d = clone(*s)

			return nil
		},
		equal: func(a, b any) (bool, error) {
			pa, err := typed[C](a)
			if err != nil {
				return false, err
			}

			pb, err := typed[C](b)
			if err != nil {
				return false, err
			}

			return equal(*pa, *pb), nil
		},
		validate: func(v *pds.Validator, key string, data any) error {
			p, err := typed[C](data)
			if err != nil {
				return err
			}

			return validate(v, key, *p)
		},
	}
}

type varying = pds.Varying

var varyingOps = map[catalog.ContainerKind]builtinOps{
	catalog.ContainerNone: opsOf[varying](
		func(w *pds.Writer, key string, x varying) error { return pds.WriteItem(w, key, &x) },
		pds.ReadItem[varying],
		pds.CloneItem[varying],
		pds.EqualItem[varying],
		func(v *pds.Validator, _ string, x varying) error { return x.Validate(v) },
	),
	catalog.ContainerOptionalValue: opsOf[*varying](
		pds.WriteOptionalItem[varying],
		pds.ReadOptionalItem[varying],
		pds.CloneOptionalItem[varying],
		pds.EqualOptionalItem[varying],
		func(v *pds.Validator, _ string, x *varying) error { return pds.ValidateOptionalItem(v, x) },
	),
	catalog.ContainerVector: opsOf[[]varying](
		pds.WriteItemVector[varying],
		pds.ReadItemVector[varying],
		func(s []varying) []varying { return pds.CloneSlice(s, pds.CloneItem[varying]) },
		func(a, b []varying) bool { return slices.EqualFunc(a, b, pds.EqualItem[varying]) },
		func(v *pds.Validator, _ string, x []varying) error { return pds.ValidateItems(v, x) },
	),
	catalog.ContainerOptionalVector: opsOf[pds.OptionalVector[varying]](
		pds.WriteOptionalItemVector[varying],
		pds.ReadOptionalItemVector[varying],
		func(o pds.OptionalVector[varying]) pds.OptionalVector[varying] {
			return pds.CloneOptionalVector(o, pds.CloneItem[varying])
		},
		func(a, b pds.OptionalVector[varying]) bool {
			return pds.EqualOptionalVector(a, b, pds.EqualItem[varying])
		},
		func(v *pds.Validator, _ string, x pds.OptionalVector[varying]) error {
			return pds.ValidateItems(v, x.Values())
		},
	),
	catalog.ContainerIdxVector: opsOf[pds.IdxVector[varying]](
		pds.WriteItemIdxVector[varying],
		pds.ReadItemIdxVector[varying],
		func(o pds.IdxVector[varying]) pds.IdxVector[varying] {
			return pds.CloneIdxVector(o, pds.CloneItem[varying])
		},
		func(a, b pds.IdxVector[varying]) bool {
			return pds.EqualIdxVector(a, b, pds.EqualItem[varying])
		},
		func(v *pds.Validator, key string, x pds.IdxVector[varying]) error {
			if err := pds.ValidateIdxVector(v, key, x); err != nil {
				return err
			}

			return pds.ValidateItems(v, x.Values)
		},
	),
	catalog.ContainerOptionalIdxVector: opsOf[pds.OptionalIdxVector[varying]](
		pds.WriteOptionalItemIdxVector[varying],
		pds.ReadOptionalItemIdxVector[varying],
		func(o pds.OptionalIdxVector[varying]) pds.OptionalIdxVector[varying] {
			return pds.CloneOptionalIdxVector(o, pds.CloneItem[varying])
		},
		func(a, b pds.OptionalIdxVector[varying]) bool {
			return pds.EqualOptionalIdxVector(a, b, pds.EqualItem[varying])
		},
		func(v *pds.Validator, key string, x pds.OptionalIdxVector[varying]) error {
			if err := pds.ValidateOptionalIdxVector(v, key, x); err != nil {
				return err
			}

			return pds.ValidateItems(v, x.Vector().Values)
		},
	),
}

// builtinOpsOf returns the ops of a built-in field.
func builtinOpsOf(f *schema.Field) (builtinOps, error) {
	if f.BuiltIn() != schema.BuiltInVarying {
		return builtinOps{}, fmt.Errorf("%w: unknown built-in %s", ErrFieldKind, f.BuiltIn())
	}

	ops, ok := varyingOps[f.Container()]
	if !ok {
		return builtinOps{}, fmt.Errorf("%w: %s has no container kind", ErrFieldKind, f.Name())
	}

	return ops, nil
}
