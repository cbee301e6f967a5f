package pds

import "slices"

// Optional is a value that may be absent.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// HasValue reports whether a value is set.
func (o Optional[T]) HasValue() bool { return o.set }

// Value returns the value, or the zero value when absent.
func (o Optional[T]) Value() T { return o.value }

// Get returns the value and whether it is set.
func (o Optional[T]) Get() (T, bool) { return o.value, o.set }

// Set stores v.
func (o *Optional[T]) Set(v T) {
	o.value = v
	o.set = true
}

// Reset makes the optional absent.
func (o *Optional[T]) Reset() {
	var zero T

	o.value = zero
	o.set = false
}

// OptionalVector is a vector that may be absent. An empty but set vector is
// distinct from an absent one.
type OptionalVector[T any] struct {
	values []T
	set    bool
}

// SomeVector returns a set OptionalVector holding values.
func SomeVector[T any](values ...T) OptionalVector[T] {
	if values == nil {
		values = []T{}
	}

	return OptionalVector[T]{values: values, set: true}
}

func (o OptionalVector[T]) HasValue() bool { return o.set }

// Values returns the values, nil when absent.
func (o OptionalVector[T]) Values() []T { return o.values }

// Set stores values and marks the vector present.
func (o *OptionalVector[T]) Set(values ...T) {
	if values == nil {
		values = []T{}
	}

	o.values = values
	o.set = true
}

// Append adds values, marking the vector present.
func (o *OptionalVector[T]) Append(values ...T) {
	o.Set(append(o.values, values...)...)
}

func (o *OptionalVector[T]) Reset() {
	o.values = nil
	o.set = false
}

// IdxVector is a vector of values plus an index list mapping logical
// positions to positions in Values.
type IdxVector[T any] struct {
	Values []T
	Index  []int32
}

// At returns the value at logical position i.
func (v IdxVector[T]) At(i int) (T, bool) {
	var zero T

	if i < 0 || i >= len(v.Index) {
		return zero, false
	}

	p := v.Index[i]
	if p < 0 || int(p) >= len(v.Values) {
		return zero, false
	}

	return v.Values[p], true
}

// Reset empties values and index.
func (v *IdxVector[T]) Reset() {
	v.Values = nil
	v.Index = nil
}

// OptionalIdxVector is an IdxVector that may be absent.
type OptionalIdxVector[T any] struct {
	vec IdxVector[T]
	set bool
}

// SomeIdxVector returns a set OptionalIdxVector holding v.
func SomeIdxVector[T any](v IdxVector[T]) OptionalIdxVector[T] {
	return OptionalIdxVector[T]{vec: v, set: true}
}

func (o OptionalIdxVector[T]) HasValue() bool { return o.set }

// Vector returns the wrapped vector; its slices are nil when absent.
func (o OptionalIdxVector[T]) Vector() IdxVector[T] { return o.vec }

// Set stores v and marks the vector present.
func (o *OptionalIdxVector[T]) Set(v IdxVector[T]) {
	o.vec = v
	o.set = true
}

func (o *OptionalIdxVector[T]) Reset() {
	o.vec.Reset()
	o.set = false
}

// EqualOptional compares two optionals with eq.
func EqualOptional[T any](a, b Optional[T], eq func(a, b T) bool) bool {
	if a.set != b.set {
		return false
	}

	return !a.set || eq(a.value, b.value)
}

// EqualOptionalVector compares two optional vectors with eq.
func EqualOptionalVector[T any](a, b OptionalVector[T], eq func(a, b T) bool) bool {
	if a.set != b.set {
		return false
	}

	return slices.EqualFunc(a.values, b.values, eq)
}

// EqualIdxVector compares values and index of two indexed vectors with eq.
func EqualIdxVector[T any](a, b IdxVector[T], eq func(a, b T) bool) bool {
	return slices.Equal(a.Index, b.Index) && slices.EqualFunc(a.Values, b.Values, eq)
}

// EqualOptionalIdxVector compares two optional indexed vectors with eq.
func EqualOptionalIdxVector[T any](a, b OptionalIdxVector[T], eq func(a, b T) bool) bool {
	if a.set != b.set {
		return false
	}

	return EqualIdxVector(a.vec, b.vec, eq)
}

// CloneOptionalVector deep copies o with clone.
func CloneOptionalVector[T any](o OptionalVector[T], clone func(T) T) OptionalVector[T] {
	if !o.set {
		return OptionalVector[T]{}
	}

	return OptionalVector[T]{values: cloneSlice(o.values, clone), set: true}
}

// CloneIdxVector deep copies v with clone.
func CloneIdxVector[T any](v IdxVector[T], clone func(T) T) IdxVector[T] {
	return IdxVector[T]{
		Values: cloneSlice(v.Values, clone),
		Index:  slices.Clone(v.Index),
	}
}

// CloneOptionalIdxVector deep copies o with clone.
func CloneOptionalIdxVector[T any](o OptionalIdxVector[T], clone func(T) T) OptionalIdxVector[T] {
	if !o.set {
		return OptionalIdxVector[T]{}
	}

	return OptionalIdxVector[T]{vec: CloneIdxVector(o.vec, clone), set: true}
}

// CloneSlice deep copies s with clone, keeping nil and empty apart.
func CloneSlice[T any](s []T, clone func(T) T) []T {
	return cloneSlice(s, clone)
}

func cloneSlice[T any](s []T, clone func(T) T) []T {
	if s == nil {
		return nil
	}

	out := make([]T, len(s))
	for i, v := range s {
		out[i] = clone(v)
	}

	return out
}

// MapOptional converts the value of o with f.
func MapOptional[S, D any](o Optional[S], f func(S) D) Optional[D] {
	if !o.set {
		return Optional[D]{}
	}

	return Some(f(o.value))
}

// MapSlice converts every element of s with f.
func MapSlice[S, D any](s []S, f func(S) D) []D {
	if s == nil {
		return nil
	}

	out := make([]D, len(s))
	for i, v := range s {
		out[i] = f(v)
	}

	return out
}

// MapOptionalVector converts every element of o with f.
func MapOptionalVector[S, D any](o OptionalVector[S], f func(S) D) OptionalVector[D] {
	if !o.set {
		return OptionalVector[D]{}
	}

	return OptionalVector[D]{values: MapSlice(o.values, f), set: true}
}

// MapIdxVector converts every value of v with f, keeping the index.
func MapIdxVector[S, D any](v IdxVector[S], f func(S) D) IdxVector[D] {
	return IdxVector[D]{Values: MapSlice(v.Values, f), Index: slices.Clone(v.Index)}
}

// MapOptionalIdxVector converts every value of o with f.
func MapOptionalIdxVector[S, D any](o OptionalIdxVector[S], f func(S) D) OptionalIdxVector[D] {
	if !o.set {
		return OptionalIdxVector[D]{}
	}

	return OptionalIdxVector[D]{vec: MapIdxVector(o.vec, f), set: true}
}

// Identity returns v. Clone functions of value types use it.
func Identity[T any](v T) T { return v }

// Equal compares two comparable values.
func Equal[T comparable](a, b T) bool { return a == b }
