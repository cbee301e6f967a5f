package pds

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValues_RoundTrip(t *testing.T) {
	id := uuid.New()
	w := NewWriter()

	require.NoError(t, WriteValue(w, "b", true))
	require.NoError(t, WriteValue(w, "i", int64(-42)))
	require.NoError(t, WriteValue(w, "v", FVec3{1, 2, 3}))
	require.NoError(t, WriteValue(w, "m", DMat2{1, 0, 0, 1}))
	require.NoError(t, WriteValue(w, "s", "hello"))
	require.NoError(t, WriteValue(w, "id", id))
	require.NoError(t, WriteValue(w, "ref", ItemRef(id)))
	require.NoError(t, WriteOptional(w, "o1", Some(uint16(7))))
	require.NoError(t, WriteOptional(w, "o2", Optional[uint16]{}))

	r := NewReader(w.Bytes())

	var (
		b   bool
		i   int64
		v   FVec3
		m   DMat2
		s   string
		got uuid.UUID
		ref ItemRef
		o1  Optional[uint16]
		o2  = Some(uint16(9))
	)

	require.NoError(t, ReadValue(r, "b", &b))
	require.NoError(t, ReadValue(r, "i", &i))
	require.NoError(t, ReadValue(r, "v", &v))
	require.NoError(t, ReadValue(r, "m", &m))
	require.NoError(t, ReadValue(r, "s", &s))
	require.NoError(t, ReadValue(r, "id", &got))
	require.NoError(t, ReadValue(r, "ref", &ref))
	require.NoError(t, ReadOptional(r, "o1", &o1))
	require.NoError(t, ReadOptional(r, "o2", &o2))

	assert.True(t, b)
	assert.Equal(t, int64(-42), i)
	assert.Equal(t, FVec3{1, 2, 3}, v)
	assert.Equal(t, DMat2{1, 0, 0, 1}, m)
	assert.Equal(t, "hello", s)
	assert.Equal(t, id, got)
	assert.Equal(t, ItemRef(id), ref)
	assert.Equal(t, Some(uint16(7)), o1)
	assert.False(t, o2.HasValue())
	assert.Zero(t, r.Remaining())
}

func TestOverride_StoredAsPhysicalType(t *testing.T) {
	id := uuid.New()
	w := NewWriter()
	require.NoError(t, WriteValue(w, "ref", ItemRef(id)))

	var got uuid.UUID
	require.NoError(t, ReadValue(NewReader(w.Bytes()), "ref", &got))
	assert.Equal(t, id, got)
}

func TestVectors_RoundTrip(t *testing.T) {
	w := NewWriter()

	require.NoError(t, WriteVector(w, "v", []int32{1, 2, 3}))
	require.NoError(t, WriteVector(w, "empty", []string{}))
	require.NoError(t, WriteOptionalVector(w, "ov", SomeVector[string]()))
	require.NoError(t, WriteOptionalVector(w, "absent", OptionalVector[string]{}))
	require.NoError(t, WriteIdxVector(w, "idx", IdxVector[float32]{Values: []float32{1.5, 2.5}, Index: []int32{1, 0, 1}}))
	require.NoError(t, WriteOptionalIdxVector(w, "oidx", SomeIdxVector(IdxVector[Hash]{Values: []Hash{{1}}, Index: []int32{0}})))

	r := NewReader(w.Bytes())

	var (
		v      []int32
		empty  []string
		ov     OptionalVector[string]
		absent = SomeVector("x")
		idx    IdxVector[float32]
		oidx   OptionalIdxVector[Hash]
	)

	require.NoError(t, ReadVector(r, "v", &v))
	require.NoError(t, ReadVector(r, "empty", &empty))
	require.NoError(t, ReadOptionalVector(r, "ov", &ov))
	require.NoError(t, ReadOptionalVector(r, "absent", &absent))
	require.NoError(t, ReadIdxVector(r, "idx", &idx))
	require.NoError(t, ReadOptionalIdxVector(r, "oidx", &oidx))

	assert.Equal(t, []int32{1, 2, 3}, v)
	assert.Empty(t, empty)
	assert.True(t, ov.HasValue())
	assert.Empty(t, ov.Values())
	assert.False(t, absent.HasValue())
	assert.Equal(t, []int32{1, 0, 1}, idx.Index)
	got, ok := idx.At(0)
	require.True(t, ok)
	assert.InDelta(t, 2.5, got, 0)
	require.True(t, oidx.HasValue())
	assert.Equal(t, []Hash{{1}}, oidx.Vector().Values)
}

func TestIdxVector_MissingIndexIsIdentity(t *testing.T) {
	w := NewWriter()
	require.NoError(t, WriteVector(w, "v", []uint8{5, 6, 7}))

	var idx IdxVector[uint8]
	require.NoError(t, ReadIdxVector(NewReader(w.Bytes()), "v", &idx))
	assert.Equal(t, []int32{0, 1, 2}, idx.Index)
}

func TestSections(t *testing.T) {
	w := NewWriter()

	sec, err := w.BeginSection("outer")
	require.NoError(t, err)
	require.ErrorIs(t, WriteValue(w, "x", int8(1)), ErrSectionActive, "parent is locked while a section is open")
	require.NoError(t, WriteValue(sec, "x", int8(1)))

	inner, err := sec.BeginSection("inner")
	require.NoError(t, err)
	require.NoError(t, WriteValue(inner, "y", "deep"))
	require.ErrorIs(t, w.EndSection(sec), ErrSectionActive)
	require.NoError(t, sec.EndSection(inner))
	require.NoError(t, w.EndSection(sec))
	require.NoError(t, w.WriteNullSection("none"))
	require.NoError(t, WriteValue(w, "after", uint32(3)))

	r := NewReader(w.Bytes())

	rsec, err := r.BeginSection("outer", false)
	require.NoError(t, err)

	var x int8
	require.NoError(t, ReadValue(rsec, "x", &x))
	assert.Equal(t, int8(1), x)
	// the inner section is skipped by closing the outer one
	require.NoError(t, r.EndSection(rsec))

	null, err := r.BeginSection("none", true)
	require.NoError(t, err)
	assert.Nil(t, null)

	var after uint32
	require.NoError(t, ReadValue(r, "after", &after))
	assert.Equal(t, uint32(3), after)
}

func TestNullSection_NotAllowed(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteNullSection("s"))

	_, err := NewReader(w.Bytes()).BeginSection("s", false)
	require.ErrorIs(t, err, ErrNullSection)
}

func TestSectionsArray(t *testing.T) {
	w := NewWriter()

	arr, err := w.BeginSectionsArray("arr", 2, []int32{1, 0})
	require.NoError(t, err)
	require.ErrorIs(t, WriteValue(arr, "v", int16(0)), ErrNotActive, "no element is open")
	require.ErrorIs(t, w.BeginSectionInArray(arr, 1), ErrArrayIndex)

	for i := range 2 {
		require.NoError(t, w.BeginSectionInArray(arr, i))
		require.NoError(t, WriteValue(arr, "v", int16(i*10)))
		require.NoError(t, w.EndSectionInArray(arr, i))
	}

	require.NoError(t, w.EndSectionsArray(arr))
	require.NoError(t, w.WriteNullSectionsArray("none"))

	r := NewReader(w.Bytes())

	rarr, n, index, err := r.BeginSectionsArray("arr", false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int32{1, 0}, index)

	for i := range n {
		require.NoError(t, r.BeginSectionInArray(rarr, i))

		var v int16
		require.NoError(t, ReadValue(rarr, "v", &v))
		assert.Equal(t, int16(i*10), v)
		require.NoError(t, r.EndSectionInArray(rarr, i))
	}

	require.NoError(t, r.EndSectionsArray(rarr))

	null, n, _, err := r.BeginSectionsArray("none", true)
	require.NoError(t, err)
	assert.Nil(t, null)
	assert.Zero(t, n)
}

func TestSectionsArray_Incomplete(t *testing.T) {
	w := NewWriter()

	arr, err := w.BeginSectionsArray("arr", 2, nil)
	require.NoError(t, err)
	require.NoError(t, w.BeginSectionInArray(arr, 0))
	require.NoError(t, w.EndSectionInArray(arr, 0))
	require.ErrorIs(t, w.EndSectionsArray(arr), ErrArrayIncomplete)
}

func TestReader_Errors(t *testing.T) {
	w := NewWriter()
	require.NoError(t, WriteValue(w, "a", int32(1)))
	require.NoError(t, WriteOptional(w, "b", Optional[int32]{}))

	t.Run("key mismatch", func(t *testing.T) {
		var v int32
		require.ErrorIs(t, ReadValue(NewReader(w.Bytes()), "z", &v), ErrKeyMismatch)
	})

	t.Run("type mismatch", func(t *testing.T) {
		var v int64
		require.ErrorIs(t, ReadValue(NewReader(w.Bytes()), "a", &v), ErrTypeMismatch)
	})

	t.Run("value read as vector", func(t *testing.T) {
		var v []int32
		require.ErrorIs(t, ReadVector(NewReader(w.Bytes()), "a", &v), ErrTypeMismatch)
	})

	t.Run("null value", func(t *testing.T) {
		r := NewReader(w.Bytes())

		var v int32
		require.NoError(t, ReadValue(r, "a", &v))
		require.ErrorIs(t, ReadValue(r, "b", &v), ErrNullValue)
	})

	t.Run("truncated", func(t *testing.T) {
		data := w.Bytes()

		var v int32
		require.ErrorIs(t, ReadValue(NewReader(data[:len(data)/3]), "a", &v), ErrCorrupt)
	})

	t.Run("past the end", func(t *testing.T) {
		var v int32
		require.ErrorIs(t, ReadValue(NewReader(nil), "a", &v), ErrCorrupt)
	})
}

func TestWriter_KeyTooLong(t *testing.T) {
	w := NewWriter()
	require.ErrorIs(t, WriteValue(w, strings.Repeat("k", MaxKeyLength+1), true), ErrKeyTooLong)
	require.NoError(t, WriteValue(w, strings.Repeat("k", MaxKeyLength), true))
}
