package pds

import (
	"errors"
	"slices"

	"go.uber.org/zap"
)

// DataType is a base type variant id: the base type index plus one in the
// high bits, the variant index plus one in the low nibble.
type DataType uint16

// ContainerType is a container id.
type ContainerType uint8

// valueRecord handles one data type/container type pair. data arguments are
// pointers to the container value, as returned by New.
type valueRecord interface {
	DataType() DataType
	ContainerType() ContainerType
	New() any
	Clear(data any) error
	Write(w *Writer, key string, data any) error
	Read(r *Reader, key string, data any) error
	Copy(dst, src any) error
	Equals(a, b any) (bool, error)
	Keys(data any) ([]any, error)
	Index(data any) ([]int32, int, error)
}

type record[C any] struct {
	dt    DataType
	ct    ContainerType
	write func(w *Writer, key string, v C) error
	read  func(r *Reader, key string, v *C) error
	clone func(C) C
	equal func(a, b C) bool
	keys  func(C) []any          // nil for non-vector containers
	index func(C) ([]int32, int) // nil for non-indexed containers
}

func cast[C any](data any) (*C, error) {
	if data == nil {
		return nil, ErrNilData
	}

	p, ok := data.(*C)
	if !ok {
		return nil, ErrWrongData
	}

	if p == nil {
		return nil, ErrNilData
	}

	return p, nil
}

func (rec *record[C]) DataType() DataType           { return rec.dt }
func (rec *record[C]) ContainerType() ContainerType { return rec.ct }
func (rec *record[C]) New() any                     { return new(C) }

func (rec *record[C]) Clear(data any) error {
	p, err := cast[C](data)
	if err != nil {
		return err
	}

	var zero C
	*p = zero

	return nil
}

func (rec *record[C]) Write(w *Writer, key string, data any) error {
	p, err := cast[C](data)
	if err != nil {
		return err
	}

	return rec.write(w, key, *p)
}

func (rec *record[C]) Read(r *Reader, key string, data any) error {
	p, err := cast[C](data)
	if err != nil {
		return err
	}

	return rec.read(r, key, p)
}

func (rec *record[C]) Copy(dst, src any) error {
	d, err := cast[C](dst)
	if err != nil {
		return err
	}

	s, err := cast[C](src)
	if err != nil {
		return err
	}

	*d = rec.clone(*s)

	return nil
}

func (rec *record[C]) Equals(a, b any) (bool, error) {
	pa, err := cast[C](a)
	if err != nil {
		return false, err
	}

	pb, err := cast[C](b)
	if err != nil {
		return false, err
	}

	return rec.equal(*pa, *pb), nil
}

func (rec *record[C]) Keys(data any) ([]any, error) {
	p, err := cast[C](data)
	if err != nil {
		return nil, err
	}

	if rec.keys == nil {
		return nil, ErrNotVector
	}

	return rec.keys(*p), nil
}

func (rec *record[C]) Index(data any) ([]int32, int, error) {
	p, err := cast[C](data)
	if err != nil {
		return nil, 0, err
	}

	if rec.index == nil {
		return nil, 0, ErrNotIndexed
	}

	index, n := rec.index(*p)

	return index, n, nil
}

func boxAll[T any](values []T) []any {
	return MapSlice(values, func(v T) any { return v })
}

func valueRecordOf[T Value](dt DataType) *record[T] {
	return &record[T]{dt: dt, ct: CtNone, write: WriteValue[T], read: ReadValue[T], clone: Identity[T], equal: Equal[T]}
}

func optionalRecordOf[T Value](dt DataType) *record[Optional[T]] {
	return &record[Optional[T]]{
		dt: dt, ct: CtOptionalValue,
		write: WriteOptional[T], read: ReadOptional[T],
		clone: Identity[Optional[T]],
		equal: func(a, b Optional[T]) bool { return EqualOptional(a, b, Equal[T]) },
	}
}

func vectorRecordOf[T Value](dt DataType) *record[[]T] {
	return &record[[]T]{
		dt: dt, ct: CtVector,
		write: WriteVector[T], read: ReadVector[T],
		clone: slices.Clone[[]T],
		equal: slices.Equal[[]T],
		keys:  boxAll[T],
	}
}

func optionalVectorRecordOf[T Value](dt DataType) *record[OptionalVector[T]] {
	return &record[OptionalVector[T]]{
		dt: dt, ct: CtOptionalVector,
		write: WriteOptionalVector[T], read: ReadOptionalVector[T],
		clone: func(v OptionalVector[T]) OptionalVector[T] { return CloneOptionalVector(v, Identity[T]) },
		equal: func(a, b OptionalVector[T]) bool { return EqualOptionalVector(a, b, Equal[T]) },
		keys:  func(v OptionalVector[T]) []any { return boxAll(v.values) },
	}
}

func idxVectorRecordOf[T Value](dt DataType) *record[IdxVector[T]] {
	return &record[IdxVector[T]]{
		dt: dt, ct: CtIdxVector,
		write: WriteIdxVector[T], read: ReadIdxVector[T],
		clone: func(v IdxVector[T]) IdxVector[T] { return CloneIdxVector(v, Identity[T]) },
		equal: func(a, b IdxVector[T]) bool { return EqualIdxVector(a, b, Equal[T]) },
		keys:  func(v IdxVector[T]) []any { return boxAll(v.Values) },
		index: func(v IdxVector[T]) ([]int32, int) { return v.Index, len(v.Values) },
	}
}

func optionalIdxVectorRecordOf[T Value](dt DataType) *record[OptionalIdxVector[T]] {
	return &record[OptionalIdxVector[T]]{
		dt: dt, ct: CtOptionalIdxVector,
		write: WriteOptionalIdxVector[T], read: ReadOptionalIdxVector[T],
		clone: func(v OptionalIdxVector[T]) OptionalIdxVector[T] { return CloneOptionalIdxVector(v, Identity[T]) },
		equal: func(a, b OptionalIdxVector[T]) bool { return EqualOptionalIdxVector(a, b, Equal[T]) },
		keys:  func(v OptionalIdxVector[T]) []any { return boxAll(v.vec.Values) },
		index: func(v OptionalIdxVector[T]) ([]int32, int) { return v.vec.Index, len(v.vec.Values) },
	}
}

// overrideRecord serves an override variant through the record of its
// physical storage type.
type overrideRecord[C, P any] struct {
	dt       DataType
	physical *record[P]
	to       func(C) P
	from     func(P) C
}

func (o *overrideRecord[C, P]) DataType() DataType           { return o.dt }
func (o *overrideRecord[C, P]) ContainerType() ContainerType { return o.physical.ct }
func (o *overrideRecord[C, P]) New() any                     { return new(C) }

func (o *overrideRecord[C, P]) Clear(data any) error {
	p, err := cast[C](data)
	if err != nil {
		return err
	}

	var zero C
	*p = zero

	return nil
}

func (o *overrideRecord[C, P]) Write(w *Writer, key string, data any) error {
	p, err := cast[C](data)
	if err != nil {
		return err
	}

	v := o.to(*p)

	return o.physical.Write(w, key, &v)
}

func (o *overrideRecord[C, P]) Read(r *Reader, key string, data any) error {
	p, err := cast[C](data)
	if err != nil {
		return err
	}

	var v P
	if err := o.physical.Read(r, key, &v); err != nil {
		return err
	}

	*p = o.from(v)

	return nil
}

func (o *overrideRecord[C, P]) Copy(dst, src any) error {
	d, err := cast[C](dst)
	if err != nil {
		return err
	}

	s, err := cast[C](src)
	if err != nil {
		return err
	}

	var v P

	pv := o.to(*s)
	if err := o.physical.Copy(&v, &pv); err != nil {
		return err
	}

	*d = o.from(v)

	return nil
}

func (o *overrideRecord[C, P]) Equals(a, b any) (bool, error) {
	pa, err := cast[C](a)
	if err != nil {
		return false, err
	}

	pb, err := cast[C](b)
	if err != nil {
		return false, err
	}

	va, vb := o.to(*pa), o.to(*pb)

	return o.physical.Equals(&va, &vb)
}

func (o *overrideRecord[C, P]) Keys(data any) ([]any, error) {
	p, err := cast[C](data)
	if err != nil {
		return nil, err
	}

	v := o.to(*p)

	return o.physical.Keys(&v)
}

func (o *overrideRecord[C, P]) Index(data any) ([]int32, int, error) {
	p, err := cast[C](data)
	if err != nil {
		return nil, 0, err
	}

	v := o.to(*p)

	return o.physical.Index(&v)
}

func overrideRecordsOf[O, P Value](dt, physical DataType, to func(O) P, from func(P) O) [6]valueRecord {
	return [6]valueRecord{
		&overrideRecord[O, P]{dt: dt, physical: valueRecordOf[P](physical), to: to, from: from},
		&overrideRecord[Optional[O], Optional[P]]{
			dt: dt, physical: optionalRecordOf[P](physical),
			to:   func(v Optional[O]) Optional[P] { return MapOptional(v, to) },
			from: func(v Optional[P]) Optional[O] { return MapOptional(v, from) },
		},
		&overrideRecord[[]O, []P]{
			dt: dt, physical: vectorRecordOf[P](physical),
			to:   func(v []O) []P { return MapSlice(v, to) },
			from: func(v []P) []O { return MapSlice(v, from) },
		},
		&overrideRecord[OptionalVector[O], OptionalVector[P]]{
			dt: dt, physical: optionalVectorRecordOf[P](physical),
			to:   func(v OptionalVector[O]) OptionalVector[P] { return MapOptionalVector(v, to) },
			from: func(v OptionalVector[P]) OptionalVector[O] { return MapOptionalVector(v, from) },
		},
		&overrideRecord[IdxVector[O], IdxVector[P]]{
			dt: dt, physical: idxVectorRecordOf[P](physical),
			to:   func(v IdxVector[O]) IdxVector[P] { return MapIdxVector(v, to) },
			from: func(v IdxVector[P]) IdxVector[O] { return MapIdxVector(v, from) },
		},
		&overrideRecord[OptionalIdxVector[O], OptionalIdxVector[P]]{
			dt: dt, physical: optionalIdxVectorRecordOf[P](physical),
			to:   func(v OptionalIdxVector[O]) OptionalIdxVector[P] { return MapOptionalIdxVector(v, to) },
			from: func(v OptionalIdxVector[P]) OptionalIdxVector[O] { return MapOptionalIdxVector(v, from) },
		},
	}
}

func valueHash(dt DataType, ct ContainerType) int {
	return (int(dt)*dataTypeMult + int(ct)*containerMult) % valueTableSize
}

func findValueRecord(dt DataType, ct ContainerType) valueRecord {
	h := valueHash(dt, ct)

	for range valueTableSize {
		rec := valueTable[h]
		if rec == nil {
			return nil
		}

		if rec.DataType() == dt && rec.ContainerType() == ct {
			return rec
		}

		h = (h + 1) % valueTableSize
	}

	return nil
}

func lookupValue(op string, dt DataType, ct ContainerType) (valueRecord, error) {
	rec := findValueRecord(dt, ct)
	if rec == nil {
		Logger().Error("no dispatch record",
			zap.String("op", op),
			zap.Uint16("data_type", uint16(dt)),
			zap.Uint8("container_type", uint8(ct)))

		return nil, ErrUnknownType
	}

	return rec, nil
}

// IsKnownValue reports whether dt/ct names a value combination.
func IsKnownValue(dt DataType, ct ContainerType) bool {
	return findValueRecord(dt, ct) != nil
}

// NewValue allocates a zero value of the combination and returns a pointer
// to it.
func NewValue(dt DataType, ct ContainerType) (any, error) {
	rec, err := lookupValue("new", dt, ct)
	if err != nil {
		return nil, err
	}

	return rec.New(), nil
}

// DeleteValue releases the contents of data. The memory itself is reclaimed
// by the garbage collector once data is unreferenced.
func DeleteValue(dt DataType, ct ContainerType, data any) error {
	return ClearValue(dt, ct, data)
}

// ClearValue resets data to the zero value.
func ClearValue(dt DataType, ct ContainerType, data any) error {
	rec, err := lookupValue("clear", dt, ct)
	if err != nil {
		return err
	}

	return rec.Clear(data)
}

// WriteDynamicValue writes data under key.
func WriteDynamicValue(dt DataType, ct ContainerType, w *Writer, key string, data any) error {
	rec, err := lookupValue("write", dt, ct)
	if err != nil {
		return err
	}

	return rec.Write(w, key, data)
}

// ReadDynamicValue reads the value under key into data.
func ReadDynamicValue(dt DataType, ct ContainerType, r *Reader, key string, data any) error {
	rec, err := lookupValue("read", dt, ct)
	if err != nil {
		return err
	}

	return rec.Read(r, key, data)
}

// CopyValue deep copies src into dst.
func CopyValue(dt DataType, ct ContainerType, dst, src any) error {
	rec, err := lookupValue("copy", dt, ct)
	if err != nil {
		return err
	}

	return rec.Copy(dst, src)
}

// ValueKeys returns the elements of a vector container, boxed. Elements of
// override types are returned as their physical type.
func ValueKeys(dt DataType, ct ContainerType, data any) ([]any, error) {
	rec, err := lookupValue("keys", dt, ct)
	if err != nil {
		return nil, err
	}

	return rec.Keys(data)
}

// ValidateValue reports index entries of indexed containers that are out of
// range. Other containers have nothing to validate.
func ValidateValue(dt DataType, ct ContainerType, v *Validator, name string, data any) error {
	rec, err := lookupValue("validate", dt, ct)
	if err != nil {
		return err
	}

	index, n, err := rec.Index(data)

	switch {
	case errors.Is(err, ErrNotIndexed):
		return nil
	case err != nil:
		return err
	}

	ValidateIndex(v, name, index, n)

	return nil
}

// EqualsValue compares a and b by value.
func EqualsValue(dt DataType, ct ContainerType, a, b any) (bool, error) {
	rec, err := lookupValue("equals", dt, ct)
	if err != nil {
		return false, err
	}

	return rec.Equals(a, b)
}
