package pds

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// MaxKeyLength is the longest key a Writer accepts.
const MaxKeyLength = 40

// Entry value types.
const (
	vtValue         byte = 0x01
	vtArray         byte = 0x02
	vtSection       byte = 0xd0
	vtSectionsArray byte = 0xd1
)

const flagHasIndex byte = 0x01

// tagOf returns the data type stored on the wire for T. Override types are
// stored as their physical type.
func tagOf[T Value]() DataType {
	var zero T

	switch any(zero).(type) {
	case bool:
		return DtBool
	case int8:
		return DtI8
	case int16:
		return DtI16
	case int32:
		return DtI32
	case int64:
		return DtI64
	case uint8:
		return DtU8
	case uint16:
		return DtU16
	case uint32:
		return DtU32
	case uint64:
		return DtU64
	case float32:
		return DtFloat
	case float64:
		return DtDouble
	case FVec2:
		return DtFVec2
	case DVec2:
		return DtDVec2
	case FVec3:
		return DtFVec3
	case DVec3:
		return DtDVec3
	case FVec4:
		return DtFVec4
	case DVec4:
		return DtDVec4
	case I8Vec2:
		return DtI8Vec2
	case I16Vec2:
		return DtI16Vec2
	case I32Vec2:
		return DtI32Vec2
	case I64Vec2:
		return DtI64Vec2
	case I8Vec3:
		return DtI8Vec3
	case I16Vec3:
		return DtI16Vec3
	case I32Vec3:
		return DtI32Vec3
	case I64Vec3:
		return DtI64Vec3
	case I8Vec4:
		return DtI8Vec4
	case I16Vec4:
		return DtI16Vec4
	case I32Vec4:
		return DtI32Vec4
	case I64Vec4:
		return DtI64Vec4
	case U8Vec2:
		return DtU8Vec2
	case U16Vec2:
		return DtU16Vec2
	case U32Vec2:
		return DtU32Vec2
	case U64Vec2:
		return DtU64Vec2
	case U8Vec3:
		return DtU8Vec3
	case U16Vec3:
		return DtU16Vec3
	case U32Vec3:
		return DtU32Vec3
	case U64Vec3:
		return DtU64Vec3
	case U8Vec4:
		return DtU8Vec4
	case U16Vec4:
		return DtU16Vec4
	case U32Vec4:
		return DtU32Vec4
	case U64Vec4:
		return DtU64Vec4
	case FMat2:
		return DtFMat2
	case DMat2:
		return DtDMat2
	case FMat3:
		return DtFMat3
	case DMat3:
		return DtDMat3
	case FMat4:
		return DtFMat4
	case DMat4:
		return DtDMat4
	case FQuat:
		return DtFQuat
	case DQuat:
		return DtDQuat
	case uuid.UUID, ItemRef:
		return DtUUID
	case Hash, EntityRef:
		return DtHash
	case string:
		return DtString
	default:
		return DtNone
	}
}

func appendValue[T Value](b []byte, v T) ([]byte, error) {
	switch x := any(v).(type) {
	case string:
		b = binary.LittleEndian.AppendUint64(b, uint64(len(x)))
		return append(b, x...), nil
	case ItemRef:
		return appendValue(b, uuid.UUID(x))
	case EntityRef:
		return appendValue(b, Hash(x))
	default:
		return binary.Append(b, binary.LittleEndian, v)
	}
}

func decodeValue[T Value](b []byte, v *T) (int, error) {
	switch p := any(v).(type) {
	case *string:
		if len(b) < 8 {
			return 0, fmt.Errorf("%w: short string length", ErrCorrupt)
		}

		n := binary.LittleEndian.Uint64(b)
		if n > uint64(len(b)-8) {
			return 0, fmt.Errorf("%w: string of %d bytes exceeds entry", ErrCorrupt, n)
		}

		*p = string(b[8 : 8+n])

		return 8 + int(n), nil
	case *ItemRef:
		var u uuid.UUID

		n, err := decodeValue(b, &u)
		*p = ItemRef(u)

		return n, err
	case *EntityRef:
		var h Hash

		n, err := decodeValue(b, &h)
		*p = EntityRef(h)

		return n, err
	default:
		n, err := binary.Decode(b, binary.LittleEndian, v)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}

		return n, nil
	}
}

// compareValues orders values by their stream encoding.
func compareValues[T Value](a, b T) int {
	// fixed-size values and strings always encode
	ea, _ := appendValue(nil, a)
	eb, _ := appendValue(nil, b)

	return bytes.Compare(ea, eb)
}

// sortedValues returns the keys of set in stream encoding order.
func sortedValues[T Value, V any](set map[T]V) []T {
	out := make([]T, 0, len(set))
	for k := range set {
		out = append(out, k)
	}

	slices.SortFunc(out, compareValues[T])

	return out
}
