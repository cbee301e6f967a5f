package pds

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueTable_AllRecordsReachable(t *testing.T) {
	count := 0

	for slot, rec := range valueTable {
		if rec == nil {
			continue
		}

		count++

		found := findValueRecord(rec.DataType(), rec.ContainerType())
		require.NotNil(t, found, "slot %d", slot)
		assert.Same(t, rec, found)
	}

	assert.Equal(t, 324, count)
}

func TestValueTable_Dispatch(t *testing.T) {
	for _, rec := range valueTable {
		if rec == nil {
			continue
		}

		dt, ct := rec.DataType(), rec.ContainerType()

		t.Run(fmt.Sprintf("%#x/%#x", uint16(dt), uint8(ct)), func(t *testing.T) {
			src, err := NewValue(dt, ct)
			require.NoError(t, err)

			w := NewWriter()
			require.NoError(t, WriteDynamicValue(dt, ct, w, "k", src))

			dst, err := NewValue(dt, ct)
			require.NoError(t, err)
			require.NoError(t, ReadDynamicValue(dt, ct, NewReader(w.Bytes()), "k", dst))

			eq, err := EqualsValue(dt, ct, src, dst)
			require.NoError(t, err)
			assert.True(t, eq)

			cp, err := NewValue(dt, ct)
			require.NoError(t, err)
			require.NoError(t, CopyValue(dt, ct, cp, src))
			require.NoError(t, ClearValue(dt, ct, cp))
			require.NoError(t, DeleteValue(dt, ct, cp))
		})
	}
}

func TestValueDispatch_Values(t *testing.T) {
	v, err := NewValue(DtString, CtVector)
	require.NoError(t, err)

	p, ok := v.(*[]string)
	require.True(t, ok)
	*p = []string{"a", "b"}

	cp, err := NewValue(DtString, CtVector)
	require.NoError(t, err)
	require.NoError(t, CopyValue(DtString, CtVector, cp, v))

	eq, err := EqualsValue(DtString, CtVector, v, cp)
	require.NoError(t, err)
	assert.True(t, eq)

	(*p)[0] = "z"
	eq, err = EqualsValue(DtString, CtVector, v, cp)
	require.NoError(t, err)
	assert.False(t, eq, "copy is deep")

	require.NoError(t, ClearValue(DtString, CtVector, v))
	assert.Nil(t, *p)
}

func TestValueDispatch_OverrideDelegatesToPhysical(t *testing.T) {
	id := uuid.New()
	refs := OptionalVector[ItemRef]{}
	refs.Set(ItemRef(id))

	w := NewWriter()
	require.NoError(t, WriteDynamicValue(DtItemRef, CtOptionalVector, w, "refs", &refs))

	var ids OptionalVector[uuid.UUID]
	require.NoError(t, ReadDynamicValue(DtUUID, CtOptionalVector, NewReader(w.Bytes()), "refs", &ids))
	assert.Equal(t, []uuid.UUID{id}, ids.Values())

	var back OptionalVector[ItemRef]
	require.NoError(t, CopyValue(DtItemRef, CtOptionalVector, &back, &refs))

	eq, err := EqualsValue(DtItemRef, CtOptionalVector, &back, &refs)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestValueDispatch_Errors(t *testing.T) {
	_, err := NewValue(0x7ff, CtNone)
	require.ErrorIs(t, err, ErrUnknownType)

	require.ErrorIs(t, ClearValue(DtBool, 0x33, new(bool)), ErrUnknownType)
	require.ErrorIs(t, ClearValue(DtBool, CtNone, nil), ErrNilData)
	require.ErrorIs(t, ClearValue(DtBool, CtNone, (*bool)(nil)), ErrNilData)
	require.ErrorIs(t, ClearValue(DtBool, CtNone, new(int8)), ErrWrongData)

	_, err = EqualsValue(DtI8, CtNone, new(int8), nil)
	require.ErrorIs(t, err, ErrNilData)

	assert.True(t, IsKnownValue(DtEntityRef, CtOptionalIdxVector))
	assert.False(t, IsKnownValue(DtNone, CtNone))
}

func TestValueDispatch_KeysAndIndex(t *testing.T) {
	vec := IdxVector[int32]{Values: []int32{4, 5}, Index: []int32{1, 2}}

	keys, err := ValueKeys(DtI32, CtIdxVector, &vec)
	require.NoError(t, err)
	assert.Equal(t, []any{int32(4), int32(5)}, keys)

	_, err = ValueKeys(DtI32, CtNone, new(int32))
	require.ErrorIs(t, err, ErrNotVector)

	v := NewValidator()
	require.NoError(t, ValidateValue(DtI32, CtIdxVector, v, "vec", &vec))
	assert.Equal(t, 1, v.ErrorCount())
	assert.Equal(t, InvalidValue, v.ErrorIDs())

	require.NoError(t, ValidateValue(DtI32, CtVector, v, "plain", &[]int32{1}))
	assert.Equal(t, 1, v.ErrorCount())
}
