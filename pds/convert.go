package pds

import "fmt"

// Convert functions migrate item containers between versions of an item type
// with a per-item conversion f, typically a FromPrevious or ToPrevious method
// expression.

// ConvertOptional converts a present item; nil converts to nil.
func ConvertOptional[S, D any](src *S, f func(dst *D, src *S) error) (*D, error) {
	if src == nil {
		return nil, nil
	}

	dst := new(D)
	if err := f(dst, src); err != nil {
		return nil, err
	}

	return dst, nil
}

// ConvertSlice converts every item of src.
func ConvertSlice[S, D any](src []S, f func(dst *D, src *S) error) ([]D, error) {
	if src == nil {
		return nil, nil
	}

	dst := make([]D, len(src))
	for i := range src {
		if err := f(&dst[i], &src[i]); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}

	return dst, nil
}

// ConvertOptionalVector converts a present vector; absent stays absent.
func ConvertOptionalVector[S, D any](src OptionalVector[S], f func(dst *D, src *S) error) (OptionalVector[D], error) {
	if !src.set {
		return OptionalVector[D]{}, nil
	}

	values, err := ConvertSlice(src.values, f)
	if err != nil {
		return OptionalVector[D]{}, err
	}

	return SomeVector(values...), nil
}

// ConvertIdxVector converts the values and copies the index.
func ConvertIdxVector[S, D any](src IdxVector[S], f func(dst *D, src *S) error) (IdxVector[D], error) {
	values, err := ConvertSlice(src.Values, f)
	if err != nil {
		return IdxVector[D]{}, err
	}

	return IdxVector[D]{Values: values, Index: CloneSlice(src.Index, Identity[int32])}, nil
}

// ConvertOptionalIdxVector converts a present indexed vector.
func ConvertOptionalIdxVector[S, D any](src OptionalIdxVector[S], f func(dst *D, src *S) error) (OptionalIdxVector[D], error) {
	if !src.set {
		return OptionalIdxVector[D]{}, nil
	}

	v, err := ConvertIdxVector(src.vec, f)
	if err != nil {
		return OptionalIdxVector[D]{}, err
	}

	return SomeIdxVector(v), nil
}
