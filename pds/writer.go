package pds

import (
	"encoding/binary"
	"fmt"
)

// Writer appends keyed entries to a stream. Sections nest: while a section
// returned by BeginSection is open, only that section accepts entries and
// the parent must not be written until EndSection.
type Writer struct {
	buf    *[]byte
	parent *Writer
	active *Writer
	sizeAt int // offset of the size placeholder, -1 for the root

	array  bool
	count  int
	next   int
	elemAt int // size placeholder of the open array element, -1 when none
	index  []int32
}

// NewWriter returns a writer of a root section.
func NewWriter() *Writer {
	b := make([]byte, 0, 256)

	return &Writer{buf: &b, sizeAt: -1, elemAt: -1}
}

// Bytes returns the stream written so far.
func (w *Writer) Bytes() []byte {
	return *w.buf
}

func (w *Writer) ready() error {
	if w.active != nil {
		return ErrSectionActive
	}

	if w.array && w.elemAt < 0 {
		return fmt.Errorf("%w: no element of the sections array is open", ErrNotActive)
	}

	return nil
}

func (w *Writer) beginEntry(vt byte, key string) error {
	if err := w.ready(); err != nil {
		return err
	}

	if len(key) > MaxKeyLength {
		return fmt.Errorf("%w: %q", ErrKeyTooLong, key)
	}

	b := append(*w.buf, vt, byte(len(key)))
	*w.buf = append(b, key...)

	return nil
}

func (w *Writer) placeholder() int {
	at := len(*w.buf)
	*w.buf = binary.LittleEndian.AppendUint64(*w.buf, 0)

	return at
}

func (w *Writer) patch(at int) {
	binary.LittleEndian.PutUint64((*w.buf)[at:], uint64(len(*w.buf)-at-8))
}

func (w *Writer) writeEntry(vt byte, key string, body func(b []byte) ([]byte, error)) error {
	if err := w.beginEntry(vt, key); err != nil {
		return err
	}

	at := w.placeholder()

	b, err := body(*w.buf)
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}

	*w.buf = b
	w.patch(at)

	return nil
}

// BeginSection opens a nested section under key.
func (w *Writer) BeginSection(key string) (*Writer, error) {
	if err := w.beginEntry(vtSection, key); err != nil {
		return nil, err
	}

	at := w.placeholder()
	*w.buf = append(*w.buf, 1)

	sec := &Writer{buf: w.buf, parent: w, sizeAt: at, elemAt: -1}
	w.active = sec

	return sec, nil
}

// EndSection closes a section opened by BeginSection.
func (w *Writer) EndSection(sec *Writer) error {
	if sec == nil || w.active != sec || sec.array {
		return ErrNotActive
	}

	if sec.active != nil {
		return ErrSectionActive
	}

	w.patch(sec.sizeAt)
	w.active = nil

	return nil
}

// WriteNullSection writes a section marked absent.
func (w *Writer) WriteNullSection(key string) error {
	return w.writeEntry(vtSection, key, func(b []byte) ([]byte, error) {
		return append(b, 0), nil
	})
}

// BeginSectionsArray opens an array of n sections under key. A non-nil index
// is stored after the sections.
func (w *Writer) BeginSectionsArray(key string, n int, index []int32) (*Writer, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative sections array length %d", ErrArrayIndex, n)
	}

	if err := w.beginEntry(vtSectionsArray, key); err != nil {
		return nil, err
	}

	at := w.placeholder()

	var flags byte
	if index != nil {
		flags |= flagHasIndex
	}

	b := append(*w.buf, 1, flags)
	*w.buf = binary.LittleEndian.AppendUint64(b, uint64(n))

	arr := &Writer{buf: w.buf, parent: w, sizeAt: at, array: true, count: n, elemAt: -1, index: index}
	w.active = arr

	return arr, nil
}

// BeginSectionInArray opens element i of arr. Elements are written in order.
func (w *Writer) BeginSectionInArray(arr *Writer, i int) error {
	if arr == nil || w.active != arr || !arr.array {
		return ErrNotActive
	}

	if arr.elemAt >= 0 || i != arr.next || i >= arr.count {
		return fmt.Errorf("%w: cannot open element %d", ErrArrayIndex, i)
	}

	arr.elemAt = arr.placeholder()

	return nil
}

// EndSectionInArray closes element i of arr.
func (w *Writer) EndSectionInArray(arr *Writer, i int) error {
	if arr == nil || w.active != arr || !arr.array {
		return ErrNotActive
	}

	if arr.active != nil {
		return ErrSectionActive
	}

	if arr.elemAt < 0 || i != arr.next {
		return fmt.Errorf("%w: cannot close element %d", ErrArrayIndex, i)
	}

	arr.patch(arr.elemAt)
	arr.elemAt = -1
	arr.next++

	return nil
}

// EndSectionsArray closes arr once all its elements were written.
func (w *Writer) EndSectionsArray(arr *Writer) error {
	if arr == nil || w.active != arr || !arr.array {
		return ErrNotActive
	}

	if arr.elemAt >= 0 || arr.next != arr.count {
		return fmt.Errorf("%w: %d of %d elements written", ErrArrayIncomplete, arr.next, arr.count)
	}

	if arr.index != nil {
		b := binary.LittleEndian.AppendUint64(*w.buf, uint64(len(arr.index)))
		for _, i := range arr.index {
			b = binary.LittleEndian.AppendUint32(b, uint32(i))
		}

		*w.buf = b
	}

	w.patch(arr.sizeAt)
	w.active = nil

	return nil
}

// WriteNullSectionsArray writes a sections array marked absent.
func (w *Writer) WriteNullSectionsArray(key string) error {
	return w.writeEntry(vtSectionsArray, key, func(b []byte) ([]byte, error) {
		return append(b, 0), nil
	})
}

func writeSingle[T Value](w *Writer, key string, v *T) error {
	return w.writeEntry(vtValue, key, func(b []byte) ([]byte, error) {
		b = binary.LittleEndian.AppendUint16(b, uint16(tagOf[T]()))
		if v == nil {
			return append(b, 0), nil
		}

		return appendValue(append(b, 1), *v)
	})
}

func writeArray[T Value](w *Writer, key string, values []T, present bool, index []int32) error {
	return w.writeEntry(vtArray, key, func(b []byte) ([]byte, error) {
		b = binary.LittleEndian.AppendUint16(b, uint16(tagOf[T]()))
		if !present {
			return append(b, 0), nil
		}

		var flags byte
		if index != nil {
			flags |= flagHasIndex
		}

		b = append(b, 1, flags)
		b = binary.LittleEndian.AppendUint64(b, uint64(len(values)))

		var err error

		for _, v := range values {
			if b, err = appendValue(b, v); err != nil {
				return nil, err
			}
		}

		if index != nil {
			b = binary.LittleEndian.AppendUint64(b, uint64(len(index)))
			for _, i := range index {
				b = binary.LittleEndian.AppendUint32(b, uint32(i))
			}
		}

		return b, nil
	})
}

// WriteValue writes a single value.
func WriteValue[T Value](w *Writer, key string, v T) error {
	return writeSingle(w, key, &v)
}

// WriteOptional writes an optional value; an absent one is written as null.
func WriteOptional[T Value](w *Writer, key string, v Optional[T]) error {
	if !v.set {
		return writeSingle[T](w, key, nil)
	}

	return writeSingle(w, key, &v.value)
}

// WriteVector writes a vector of values.
func WriteVector[T Value](w *Writer, key string, v []T) error {
	return writeArray(w, key, v, true, nil)
}

// WriteOptionalVector writes an optional vector of values.
func WriteOptionalVector[T Value](w *Writer, key string, v OptionalVector[T]) error {
	return writeArray(w, key, v.values, v.set, nil)
}

// WriteIdxVector writes values and index of an indexed vector.
func WriteIdxVector[T Value](w *Writer, key string, v IdxVector[T]) error {
	return writeArray(w, key, v.Values, true, nonNil(v.Index))
}

// WriteOptionalIdxVector writes an optional indexed vector.
func WriteOptionalIdxVector[T Value](w *Writer, key string, v OptionalIdxVector[T]) error {
	return writeArray(w, key, v.vec.Values, v.set, nonNil(v.vec.Index))
}

func nonNil(index []int32) []int32 {
	if index == nil {
		return []int32{}
	}

	return index
}
