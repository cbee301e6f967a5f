package pds

import (
	"encoding/binary"
	"fmt"
)

// Reader reads entries written by a Writer in the order they were written.
// Every read names the key it expects.
type Reader struct {
	data   []byte
	pos    int
	end    int
	active *Reader

	array   bool
	count   int
	next    int
	elemEnd int // end of the open array element, -1 when none
}

// NewReader returns a reader over a root section.
func NewReader(data []byte) *Reader {
	return &Reader{data: data, end: len(data), elemEnd: -1}
}

// Remaining returns the number of unread bytes of the section.
func (r *Reader) Remaining() int {
	return r.limit() - r.pos
}

func (r *Reader) limit() int {
	if r.array {
		return r.elemEnd
	}

	return r.end
}

func (r *Reader) ready() error {
	if r.active != nil {
		return ErrSectionActive
	}

	if r.array && r.elemEnd < 0 {
		return fmt.Errorf("%w: no element of the sections array is open", ErrNotActive)
	}

	return nil
}

// readEntry consumes the next entry and returns the bounds of its body.
func (r *Reader) readEntry(vt byte, key string) (int, int, error) {
	if err := r.ready(); err != nil {
		return 0, 0, err
	}

	lim := r.limit()

	if r.pos+2 > lim {
		return 0, 0, fmt.Errorf("%w: reading %q past the end of the section", ErrCorrupt, key)
	}

	gotVT := r.data[r.pos]
	kl := int(r.data[r.pos+1])
	p := r.pos + 2

	if p+kl+8 > lim {
		return 0, 0, fmt.Errorf("%w: truncated entry header reading %q", ErrCorrupt, key)
	}

	gotKey := string(r.data[p : p+kl])
	p += kl

	size := binary.LittleEndian.Uint64(r.data[p:])
	p += 8

	if size > uint64(lim-p) {
		return 0, 0, fmt.Errorf("%w: entry %q exceeds its section", ErrCorrupt, gotKey)
	}

	if gotKey != key {
		return 0, 0, fmt.Errorf("%w: want %q, got %q", ErrKeyMismatch, key, gotKey)
	}

	if gotVT != vt {
		return 0, 0, fmt.Errorf("%w: entry %q has value type %#x, want %#x", ErrTypeMismatch, key, gotVT, vt)
	}

	end := p + int(size)
	r.pos = end

	return p, end, nil
}

// BeginSection opens the nested section under key. A null section yields a
// nil reader when canBeNull is set and ErrNullSection otherwise.
func (r *Reader) BeginSection(key string, canBeNull bool) (*Reader, error) {
	start, end, err := r.readEntry(vtSection, key)
	if err != nil {
		return nil, err
	}

	if start == end {
		return nil, fmt.Errorf("%w: empty section %q", ErrCorrupt, key)
	}

	if r.data[start] == 0 {
		if canBeNull {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: %q", ErrNullSection, key)
	}

	sec := &Reader{data: r.data, pos: start + 1, end: end, elemEnd: -1}
	r.active = sec

	return sec, nil
}

// EndSection closes sec. Unread entries of sec are skipped.
func (r *Reader) EndSection(sec *Reader) error {
	if sec == nil || r.active != sec || sec.array {
		return ErrNotActive
	}

	if sec.active != nil {
		return ErrSectionActive
	}

	r.active = nil

	return nil
}

// BeginSectionsArray opens the sections array under key and returns it with
// its length and index. A null array yields a nil reader when canBeNull is
// set and ErrNullSection otherwise.
func (r *Reader) BeginSectionsArray(key string, canBeNull bool) (*Reader, int, []int32, error) {
	start, end, err := r.readEntry(vtSectionsArray, key)
	if err != nil {
		return nil, 0, nil, err
	}

	if start == end {
		return nil, 0, nil, fmt.Errorf("%w: empty sections array %q", ErrCorrupt, key)
	}

	if r.data[start] == 0 {
		if canBeNull {
			return nil, 0, nil, nil
		}

		return nil, 0, nil, fmt.Errorf("%w: %q", ErrNullSection, key)
	}

	if end-start < 10 {
		return nil, 0, nil, fmt.Errorf("%w: truncated sections array %q", ErrCorrupt, key)
	}

	flags := r.data[start+1]
	count := binary.LittleEndian.Uint64(r.data[start+2:])
	p := start + 10
	elems := p

	if count > uint64(end-p)/8 {
		return nil, 0, nil, fmt.Errorf("%w: sections array %q count %d exceeds entry", ErrCorrupt, key, count)
	}

	for range count {
		if p+8 > end {
			return nil, 0, nil, fmt.Errorf("%w: truncated sections array %q", ErrCorrupt, key)
		}

		size := binary.LittleEndian.Uint64(r.data[p:])
		if size > uint64(end-p-8) {
			return nil, 0, nil, fmt.Errorf("%w: element of %q exceeds entry", ErrCorrupt, key)
		}

		p += 8 + int(size)
	}

	elemsEnd := p

	var index []int32

	if flags&flagHasIndex != 0 {
		if index, p, err = decodeIndex(r.data[:end], p); err != nil {
			return nil, 0, nil, fmt.Errorf("sections array %q: %w", key, err)
		}
	}

	if p != end {
		return nil, 0, nil, fmt.Errorf("%w: trailing bytes in sections array %q", ErrCorrupt, key)
	}

	arr := &Reader{data: r.data, pos: elems, end: elemsEnd, array: true, count: int(count), elemEnd: -1}
	r.active = arr

	return arr, int(count), index, nil
}

// BeginSectionInArray opens element i of arr.
func (r *Reader) BeginSectionInArray(arr *Reader, i int) error {
	if arr == nil || r.active != arr || !arr.array {
		return ErrNotActive
	}

	if arr.elemEnd >= 0 || i != arr.next || i >= arr.count {
		return fmt.Errorf("%w: cannot open element %d", ErrArrayIndex, i)
	}

	size := binary.LittleEndian.Uint64(arr.data[arr.pos:])
	arr.pos += 8
	arr.elemEnd = arr.pos + int(size)

	return nil
}

// EndSectionInArray closes element i of arr, skipping unread entries.
func (r *Reader) EndSectionInArray(arr *Reader, i int) error {
	if arr == nil || r.active != arr || !arr.array {
		return ErrNotActive
	}

	if arr.active != nil {
		return ErrSectionActive
	}

	if arr.elemEnd < 0 || i != arr.next {
		return fmt.Errorf("%w: cannot close element %d", ErrArrayIndex, i)
	}

	arr.pos = arr.elemEnd
	arr.elemEnd = -1
	arr.next++

	return nil
}

// EndSectionsArray closes arr once all its elements were read.
func (r *Reader) EndSectionsArray(arr *Reader) error {
	if arr == nil || r.active != arr || !arr.array {
		return ErrNotActive
	}

	if arr.elemEnd >= 0 || arr.next != arr.count {
		return fmt.Errorf("%w: %d of %d elements read", ErrArrayIncomplete, arr.next, arr.count)
	}

	r.active = nil

	return nil
}

func decodeIndex(b []byte, p int) ([]int32, int, error) {
	if p+8 > len(b) {
		return nil, 0, fmt.Errorf("%w: truncated index", ErrCorrupt)
	}

	n := binary.LittleEndian.Uint64(b[p:])
	p += 8

	if n > uint64(len(b)-p)/4 {
		return nil, 0, fmt.Errorf("%w: index of %d entries exceeds entry", ErrCorrupt, n)
	}

	index := make([]int32, n)
	for i := range index {
		index[i] = int32(binary.LittleEndian.Uint32(b[p:]))
		p += 4
	}

	return index, p, nil
}

func checkTag[T Value](b []byte, key string) error {
	want := tagOf[T]()
	if got := DataType(binary.LittleEndian.Uint16(b)); got != want {
		return fmt.Errorf("%w: %q holds data type %#x, want %#x", ErrTypeMismatch, key, uint16(got), uint16(want))
	}

	return nil
}

func readSingle[T Value](r *Reader, key string, dst *T) (bool, error) {
	start, end, err := r.readEntry(vtValue, key)
	if err != nil {
		return false, err
	}

	b := r.data[start:end]
	if len(b) < 3 {
		return false, fmt.Errorf("%w: truncated value %q", ErrCorrupt, key)
	}

	if err := checkTag[T](b, key); err != nil {
		return false, err
	}

	if b[2] == 0 {
		return false, nil
	}

	n, err := decodeValue(b[3:], dst)
	if err != nil {
		return false, fmt.Errorf("value %q: %w", key, err)
	}

	if 3+n != len(b) {
		return false, fmt.Errorf("%w: trailing bytes in value %q", ErrCorrupt, key)
	}

	return true, nil
}

type array[T Value] struct {
	values  []T
	present bool
	index   []int32
}

func readArray[T Value](r *Reader, key string) (array[T], error) {
	var out array[T]

	start, end, err := r.readEntry(vtArray, key)
	if err != nil {
		return out, err
	}

	b := r.data[start:end]
	if len(b) < 3 {
		return out, fmt.Errorf("%w: truncated array %q", ErrCorrupt, key)
	}

	if err := checkTag[T](b, key); err != nil {
		return out, err
	}

	if b[2] == 0 {
		return out, nil
	}

	if len(b) < 12 {
		return out, fmt.Errorf("%w: truncated array %q", ErrCorrupt, key)
	}

	flags := b[3]
	count := binary.LittleEndian.Uint64(b[4:])
	p := 12

	if count > uint64(len(b)-p) {
		return out, fmt.Errorf("%w: array %q count %d exceeds entry", ErrCorrupt, key, count)
	}

	out.present = true
	out.values = make([]T, count)

	for i := range out.values {
		n, err := decodeValue(b[p:], &out.values[i])
		if err != nil {
			return out, fmt.Errorf("array %q element %d: %w", key, i, err)
		}

		p += n
	}

	if flags&flagHasIndex != 0 {
		if out.index, p, err = decodeIndex(b, p); err != nil {
			return out, fmt.Errorf("array %q: %w", key, err)
		}
	}

	if p != len(b) {
		return out, fmt.Errorf("%w: trailing bytes in array %q", ErrCorrupt, key)
	}

	return out, nil
}

// ReadValue reads a single value into dst.
func ReadValue[T Value](r *Reader, key string, dst *T) error {
	ok, err := readSingle(r, key, dst)
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("%w: %q", ErrNullValue, key)
	}

	return nil
}

// ReadOptional reads an optional value into dst.
func ReadOptional[T Value](r *Reader, key string, dst *Optional[T]) error {
	var v T

	ok, err := readSingle(r, key, &v)
	if err != nil {
		return err
	}

	if ok {
		dst.Set(v)
	} else {
		dst.Reset()
	}

	return nil
}

// ReadVector reads a vector of values into dst.
func ReadVector[T Value](r *Reader, key string, dst *[]T) error {
	a, err := readArray[T](r, key)
	if err != nil {
		return err
	}

	if !a.present {
		return fmt.Errorf("%w: %q", ErrNullValue, key)
	}

	if a.index != nil {
		return fmt.Errorf("%w: %q is an indexed vector", ErrTypeMismatch, key)
	}

	*dst = a.values

	return nil
}

// ReadOptionalVector reads an optional vector of values into dst.
func ReadOptionalVector[T Value](r *Reader, key string, dst *OptionalVector[T]) error {
	a, err := readArray[T](r, key)
	if err != nil {
		return err
	}

	if a.index != nil {
		return fmt.Errorf("%w: %q is an indexed vector", ErrTypeMismatch, key)
	}

	if a.present {
		dst.Set(a.values...)
	} else {
		dst.Reset()
	}

	return nil
}

// ReadIdxVector reads an indexed vector into dst. A stream without an index
// yields the identity index.
func ReadIdxVector[T Value](r *Reader, key string, dst *IdxVector[T]) error {
	a, err := readArray[T](r, key)
	if err != nil {
		return err
	}

	if !a.present {
		return fmt.Errorf("%w: %q", ErrNullValue, key)
	}

	*dst = IdxVector[T]{Values: a.values, Index: indexOrIdentity(a.index, len(a.values))}

	return nil
}

// ReadOptionalIdxVector reads an optional indexed vector into dst.
func ReadOptionalIdxVector[T Value](r *Reader, key string, dst *OptionalIdxVector[T]) error {
	a, err := readArray[T](r, key)
	if err != nil {
		return err
	}

	if !a.present {
		dst.Reset()
		return nil
	}

	dst.Set(IdxVector[T]{Values: a.values, Index: indexOrIdentity(a.index, len(a.values))})

	return nil
}

func indexOrIdentity(index []int32, n int) []int32 {
	if index != nil {
		return index
	}

	index = make([]int32, n)
	for i := range index {
		index[i] = int32(i)
	}

	return index
}
