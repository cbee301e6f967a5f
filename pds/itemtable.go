package pds

import (
	"fmt"
	"maps"
)

// ItemTable validation flags.
const (
	TableZeroKeys     uint = 0x1 // allow the zero value as a key
	TableNullEntities uint = 0x2 // allow keys mapped to no item
)

const (
	tableIDsKey      = "IDs"
	tableEntitiesKey = "Entities"
)

// ItemTable maps keys to owned items. A key may map to nil.
type ItemTable[K Value, V any, P ItemPtr[V]] struct {
	entries map[K]*V
}

// Len returns the number of keys.
func (x *ItemTable[K, V, P]) Len() int { return len(x.entries) }

// Insert returns the item under k, adding a zero item when k is absent or
// maps to nil.
func (x *ItemTable[K, V, P]) Insert(k K) *V {
	if v := x.entries[k]; v != nil {
		return v
	}

	v := new(V)
	x.Set(k, v)

	return v
}

// Set maps k to v, which may be nil. The table takes ownership of v.
func (x *ItemTable[K, V, P]) Set(k K, v *V) {
	if x.entries == nil {
		x.entries = make(map[K]*V)
	}

	x.entries[k] = v
}

// Get returns the item under k.
func (x *ItemTable[K, V, P]) Get(k K) (*V, bool) {
	v, ok := x.entries[k]
	return v, ok
}

// Contains reports whether k is in the table.
func (x *ItemTable[K, V, P]) Contains(k K) bool {
	_, ok := x.entries[k]
	return ok
}

// Delete removes k.
func (x *ItemTable[K, V, P]) Delete(k K) {
	delete(x.entries, k)
}

// Keys returns the keys in stream order.
func (x *ItemTable[K, V, P]) Keys() []K {
	return sortedValues(x.entries)
}

func (x *ItemTable[K, V, P]) Clear() {
	clear(x.entries)
}

func (x *ItemTable[K, V, P]) DeepCopy(src *ItemTable[K, V, P]) {
	x.entries = nil

	if src == nil {
		return
	}

	for k, v := range src.entries {
		x.Set(k, CloneOptionalItem[V, P](v))
	}
}

func (x *ItemTable[K, V, P]) Equals(o *ItemTable[K, V, P]) bool {
	if x == o {
		return true
	}

	if x == nil || o == nil {
		return false
	}

	return maps.EqualFunc(x.entries, o.entries, EqualOptionalItem[V, P])
}

func (x *ItemTable[K, V, P]) Write(w *Writer) error {
	keys := x.Keys()

	if err := WriteVector(w, tableIDsKey, keys); err != nil {
		return err
	}

	arr, err := w.BeginSectionsArray(tableEntitiesKey, len(keys), nil)
	if err != nil {
		return err
	}

	for i, k := range keys {
		if err := w.BeginSectionInArray(arr, i); err != nil {
			return err
		}

		// a nil item is an empty element
		if v := x.entries[k]; v != nil {
			if err := P(v).Write(arr); err != nil {
				return fmt.Errorf("%s[%v]: %w", tableEntitiesKey, k, err)
			}
		}

		if err := w.EndSectionInArray(arr, i); err != nil {
			return err
		}
	}

	return w.EndSectionsArray(arr)
}

func (x *ItemTable[K, V, P]) Read(r *Reader) error {
	x.entries = nil

	var keys []K

	if err := ReadVector(r, tableIDsKey, &keys); err != nil {
		return err
	}

	arr, n, _, err := r.BeginSectionsArray(tableEntitiesKey, false)
	if err != nil {
		return err
	}

	if n != len(keys) {
		return fmt.Errorf("%w: table has %d keys and %d entities", ErrCorrupt, len(keys), n)
	}

	for i, k := range keys {
		if x.Contains(k) {
			return fmt.Errorf("%w: %v in %s", ErrDuplicateKey, k, tableIDsKey)
		}

		if err := r.BeginSectionInArray(arr, i); err != nil {
			return err
		}

		var v *V

		if arr.Remaining() > 0 {
			v = new(V)
			if err := P(v).Read(arr); err != nil {
				return fmt.Errorf("%s[%v]: %w", tableEntitiesKey, k, err)
			}
		}

		x.Set(k, v)

		if err := r.EndSectionInArray(arr, i); err != nil {
			return err
		}
	}

	return r.EndSectionsArray(arr)
}

// Validate validates the table with no flags set.
func (x *ItemTable[K, V, P]) Validate(v *Validator) error {
	return x.ValidateFlags(v, 0)
}

// ValidateFlags reports zero keys and nil items the flags do not allow, and
// validates every item.
func (x *ItemTable[K, V, P]) ValidateFlags(v *Validator, flags uint) error {
	var zero K

	if flags&TableZeroKeys == 0 && x.Contains(zero) {
		v.ReportError(NullNotAllowed, "the table has a zero-value key, which is not allowed")
	}

	for _, k := range x.Keys() {
		item := x.entries[k]

		if item == nil {
			if flags&TableNullEntities == 0 {
				v.ReportError(NullNotAllowed, "the key %v maps to no item, which is not allowed", k)
			}

			continue
		}

		if err := P(item).Validate(v); err != nil {
			return err
		}
	}

	return nil
}
