package pds

import "fmt"

// Object is implemented by pointers to generated item types.
type Object interface {
	Clear()
	Write(w *Writer) error
	Read(r *Reader) error
	Validate(v *Validator) error
}

// ItemPtr constrains a pointer to a generated item type T.
type ItemPtr[T any] interface {
	*T
	Object
	DeepCopy(src *T)
	Equals(o *T) bool
}

// WriteItem writes v as a section under key.
func WriteItem[T any, P ItemPtr[T]](w *Writer, key string, v *T) error {
	sec, err := w.BeginSection(key)
	if err != nil {
		return err
	}

	if err := P(v).Write(sec); err != nil {
		return fmt.Errorf("section %q: %w", key, err)
	}

	return w.EndSection(sec)
}

// WriteOptionalItem writes v as a section, or a null section when v is nil.
func WriteOptionalItem[T any, P ItemPtr[T]](w *Writer, key string, v *T) error {
	if v == nil {
		return w.WriteNullSection(key)
	}

	return WriteItem[T, P](w, key, v)
}

func writeItems[T any, P ItemPtr[T]](w *Writer, key string, items []T, index []int32) error {
	arr, err := w.BeginSectionsArray(key, len(items), index)
	if err != nil {
		return err
	}

	for i := range items {
		if err := w.BeginSectionInArray(arr, i); err != nil {
			return err
		}

		if err := P(&items[i]).Write(arr); err != nil {
			return fmt.Errorf("%s[%d]: %w", key, i, err)
		}

		if err := w.EndSectionInArray(arr, i); err != nil {
			return err
		}
	}

	return w.EndSectionsArray(arr)
}

// WriteItemVector writes items as a sections array.
func WriteItemVector[T any, P ItemPtr[T]](w *Writer, key string, items []T) error {
	return writeItems[T, P](w, key, items, nil)
}

// WriteOptionalItemVector writes a present vector as a sections array and an
// absent one as a null sections array.
func WriteOptionalItemVector[T any, P ItemPtr[T]](w *Writer, key string, v OptionalVector[T]) error {
	if !v.set {
		return w.WriteNullSectionsArray(key)
	}

	return writeItems[T, P](w, key, v.values, nil)
}

// WriteItemIdxVector writes an indexed vector of items.
func WriteItemIdxVector[T any, P ItemPtr[T]](w *Writer, key string, v IdxVector[T]) error {
	return writeItems[T, P](w, key, v.Values, nonNil(v.Index))
}

// WriteOptionalItemIdxVector writes an optional indexed vector of items.
func WriteOptionalItemIdxVector[T any, P ItemPtr[T]](w *Writer, key string, v OptionalIdxVector[T]) error {
	if !v.set {
		return w.WriteNullSectionsArray(key)
	}

	return writeItems[T, P](w, key, v.vec.Values, nonNil(v.vec.Index))
}

func readSection[T any, P ItemPtr[T]](r *Reader, key string, canBeNull bool) (*T, error) {
	sec, err := r.BeginSection(key, canBeNull)
	if err != nil || sec == nil {
		return nil, err
	}

	v := new(T)
	if err := P(v).Read(sec); err != nil {
		return nil, fmt.Errorf("section %q: %w", key, err)
	}

	if err := r.EndSection(sec); err != nil {
		return nil, err
	}

	return v, nil
}

// ReadItem reads the section under key into dst.
func ReadItem[T any, P ItemPtr[T]](r *Reader, key string, dst *T) error {
	v, err := readSection[T, P](r, key, false)
	if err != nil {
		return err
	}

	*dst = *v

	return nil
}

// ReadOptionalItem reads the section under key; a null section yields nil.
func ReadOptionalItem[T any, P ItemPtr[T]](r *Reader, key string, dst **T) error {
	v, err := readSection[T, P](r, key, true)
	if err != nil {
		return err
	}

	*dst = v

	return nil
}

// readItems returns present=false for a null sections array.
func readItems[T any, P ItemPtr[T]](r *Reader, key string, canBeNull bool) ([]T, []int32, bool, error) {
	arr, n, index, err := r.BeginSectionsArray(key, canBeNull)
	if err != nil || arr == nil {
		return nil, nil, false, err
	}

	items := make([]T, n)

	for i := range items {
		if err := r.BeginSectionInArray(arr, i); err != nil {
			return nil, nil, false, err
		}

		if err := P(&items[i]).Read(arr); err != nil {
			return nil, nil, false, fmt.Errorf("%s[%d]: %w", key, i, err)
		}

		if err := r.EndSectionInArray(arr, i); err != nil {
			return nil, nil, false, err
		}
	}

	if err := r.EndSectionsArray(arr); err != nil {
		return nil, nil, false, err
	}

	return items, index, true, nil
}

// ReadItemVector reads a sections array into dst.
func ReadItemVector[T any, P ItemPtr[T]](r *Reader, key string, dst *[]T) error {
	items, index, _, err := readItems[T, P](r, key, false)
	if err != nil {
		return err
	}

	if index != nil {
		return fmt.Errorf("%w: %q is an indexed vector", ErrTypeMismatch, key)
	}

	*dst = items

	return nil
}

// ReadOptionalItemVector reads an optional sections array into dst.
func ReadOptionalItemVector[T any, P ItemPtr[T]](r *Reader, key string, dst *OptionalVector[T]) error {
	items, index, ok, err := readItems[T, P](r, key, true)
	if err != nil {
		return err
	}

	if index != nil {
		return fmt.Errorf("%w: %q is an indexed vector", ErrTypeMismatch, key)
	}

	if ok {
		dst.Set(items...)
	} else {
		dst.Reset()
	}

	return nil
}

// ReadItemIdxVector reads an indexed vector of items into dst.
func ReadItemIdxVector[T any, P ItemPtr[T]](r *Reader, key string, dst *IdxVector[T]) error {
	items, index, _, err := readItems[T, P](r, key, false)
	if err != nil {
		return err
	}

	*dst = IdxVector[T]{Values: items, Index: indexOrIdentity(index, len(items))}

	return nil
}

// ReadOptionalItemIdxVector reads an optional indexed vector of items into dst.
func ReadOptionalItemIdxVector[T any, P ItemPtr[T]](r *Reader, key string, dst *OptionalIdxVector[T]) error {
	items, index, ok, err := readItems[T, P](r, key, true)
	if err != nil {
		return err
	}

	if !ok {
		dst.Reset()
		return nil
	}

	dst.Set(IdxVector[T]{Values: items, Index: indexOrIdentity(index, len(items))})

	return nil
}

// CloneItem returns a deep copy of v.
func CloneItem[T any, P ItemPtr[T]](v T) T {
	var out T

	P(&out).DeepCopy(&v)

	return out
}

// CloneOptionalItem returns a deep copy of v, nil for nil.
func CloneOptionalItem[T any, P ItemPtr[T]](v *T) *T {
	if v == nil {
		return nil
	}

	out := new(T)
	P(out).DeepCopy(v)

	return out
}

// EqualItem compares two items by value.
func EqualItem[T any, P ItemPtr[T]](a, b T) bool {
	return P(&a).Equals(&b)
}

// EqualOptionalItem compares two optional items; two nils are equal.
func EqualOptionalItem[T any, P ItemPtr[T]](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}

	return P(a).Equals(b)
}

// ValidateItems validates every item of items.
func ValidateItems[T any, P ItemPtr[T]](v *Validator, items []T) error {
	for i := range items {
		if err := P(&items[i]).Validate(v); err != nil {
			return err
		}
	}

	return nil
}

// ValidateOptionalItem validates item when present.
func ValidateOptionalItem[T any, P ItemPtr[T]](v *Validator, item *T) error {
	if item == nil {
		return nil
	}

	return P(item).Validate(v)
}
