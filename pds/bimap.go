package pds

import (
	"fmt"
	"maps"
)

const (
	bimapKeysKey   = "Keys"
	bimapValuesKey = "Values"
)

// BidirectionalMap is a one-to-one map that can be looked up both ways.
type BidirectionalMap[K, V Value] struct {
	fwd map[K]V
	rev map[V]K
}

// Insert maps k to v, dropping any pair that used k or v before.
func (x *BidirectionalMap[K, V]) Insert(k K, v V) {
	if x.fwd == nil {
		x.fwd = make(map[K]V)
		x.rev = make(map[V]K)
	}

	x.DeleteKey(k)
	x.DeleteValue(v)

	x.fwd[k] = v
	x.rev[v] = k
}

// Value returns the value mapped from k.
func (x *BidirectionalMap[K, V]) Value(k K) (V, bool) {
	v, ok := x.fwd[k]
	return v, ok
}

// Key returns the key mapped to v.
func (x *BidirectionalMap[K, V]) Key(v V) (K, bool) {
	k, ok := x.rev[v]
	return k, ok
}

// ContainsKey reports whether k is mapped.
func (x *BidirectionalMap[K, V]) ContainsKey(k K) bool {
	_, ok := x.fwd[k]
	return ok
}

// ContainsValue reports whether v is mapped to.
func (x *BidirectionalMap[K, V]) ContainsValue(v V) bool {
	_, ok := x.rev[v]
	return ok
}

// DeleteKey removes the pair with key k.
func (x *BidirectionalMap[K, V]) DeleteKey(k K) {
	if v, ok := x.fwd[k]; ok {
		delete(x.fwd, k)
		delete(x.rev, v)
	}
}

// DeleteValue removes the pair with value v.
func (x *BidirectionalMap[K, V]) DeleteValue(v V) {
	if k, ok := x.rev[v]; ok {
		delete(x.rev, v)
		delete(x.fwd, k)
	}
}

// Len returns the number of pairs.
func (x *BidirectionalMap[K, V]) Len() int { return len(x.fwd) }

// Keys returns the keys in stream order.
func (x *BidirectionalMap[K, V]) Keys() []K {
	return sortedValues(x.fwd)
}

func (x *BidirectionalMap[K, V]) Clear() {
	clear(x.fwd)
	clear(x.rev)
}

func (x *BidirectionalMap[K, V]) DeepCopy(src *BidirectionalMap[K, V]) {
	x.fwd, x.rev = nil, nil

	if src == nil {
		return
	}

	x.fwd = maps.Clone(src.fwd)
	x.rev = maps.Clone(src.rev)
}

func (x *BidirectionalMap[K, V]) Equals(o *BidirectionalMap[K, V]) bool {
	if x == o {
		return true
	}

	if x == nil || o == nil {
		return false
	}

	return maps.Equal(x.fwd, o.fwd)
}

func (x *BidirectionalMap[K, V]) Write(w *Writer) error {
	keys := x.Keys()
	values := make([]V, len(keys))

	for i, k := range keys {
		values[i] = x.fwd[k]
	}

	if err := WriteVector(w, bimapKeysKey, keys); err != nil {
		return err
	}

	return WriteVector(w, bimapValuesKey, values)
}

func (x *BidirectionalMap[K, V]) Read(r *Reader) error {
	x.fwd, x.rev = nil, nil

	var (
		keys   []K
		values []V
	)

	if err := ReadVector(r, bimapKeysKey, &keys); err != nil {
		return err
	}

	if err := ReadVector(r, bimapValuesKey, &values); err != nil {
		return err
	}

	if len(keys) != len(values) {
		return fmt.Errorf("%w: map has %d keys and %d values", ErrCorrupt, len(keys), len(values))
	}

	for i, k := range keys {
		if x.ContainsKey(k) || x.ContainsValue(values[i]) {
			return fmt.Errorf("%w: pair %v -> %v", ErrDuplicateKey, k, values[i])
		}

		x.Insert(k, values[i])
	}

	return nil
}

// Validate has nothing to check; Insert keeps the map one-to-one.
func (x *BidirectionalMap[K, V]) Validate(*Validator) error {
	return nil
}
