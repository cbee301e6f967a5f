package pds

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// Vector, matrix and quaternion value types. Matrices are stored column-major.
type (
	FVec2 [2]float32
	FVec3 [3]float32
	FVec4 [4]float32
	DVec2 [2]float64
	DVec3 [3]float64
	DVec4 [4]float64

	I8Vec2  [2]int8
	I8Vec3  [3]int8
	I8Vec4  [4]int8
	I16Vec2 [2]int16
	I16Vec3 [3]int16
	I16Vec4 [4]int16
	I32Vec2 [2]int32
	I32Vec3 [3]int32
	I32Vec4 [4]int32
	I64Vec2 [2]int64
	I64Vec3 [3]int64
	I64Vec4 [4]int64

	U8Vec2  [2]uint8
	U8Vec3  [3]uint8
	U8Vec4  [4]uint8
	U16Vec2 [2]uint16
	U16Vec3 [3]uint16
	U16Vec4 [4]uint16
	U32Vec2 [2]uint32
	U32Vec3 [3]uint32
	U32Vec4 [4]uint32
	U64Vec2 [2]uint64
	U64Vec3 [3]uint64
	U64Vec4 [4]uint64

	FMat2 [4]float32
	FMat3 [9]float32
	FMat4 [16]float32
	DMat2 [4]float64
	DMat3 [9]float64
	DMat4 [16]float64

	FQuat [4]float32
	DQuat [4]float64
)

// Hash is a 256-bit content hash.
type Hash [32]byte

// ItemRef references an item by identity. It is stored as a uuid.UUID.
type ItemRef uuid.UUID

// EntityRef references an entity by content hash. It is stored as a Hash.
type EntityRef Hash

// Value is the set of types a base type field can hold.
type Value interface {
	bool |
		int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64 |
		FVec2 | FVec3 | FVec4 | DVec2 | DVec3 | DVec4 |
		I8Vec2 | I8Vec3 | I8Vec4 | I16Vec2 | I16Vec3 | I16Vec4 |
		I32Vec2 | I32Vec3 | I32Vec4 | I64Vec2 | I64Vec3 | I64Vec4 |
		U8Vec2 | U8Vec3 | U8Vec4 | U16Vec2 | U16Vec3 | U16Vec4 |
		U32Vec2 | U32Vec3 | U32Vec4 | U64Vec2 | U64Vec3 | U64Vec4 |
		FMat2 | FMat3 | FMat4 | DMat2 | DMat3 | DMat4 |
		FQuat | DQuat |
		uuid.UUID | ItemRef |
		Hash | EntityRef |
		string
}

// NilItemRef is the zero item reference.
var NilItemRef ItemRef

// String formats the reference like the uuid it is stored as.
func (r ItemRef) String() string {
	return uuid.UUID(r).String()
}

// IsNil reports whether the reference is unset.
func (r ItemRef) IsNil() bool {
	return r == NilItemRef
}

// IsZero reports whether the hash is all zero bytes.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// IsNil reports whether the reference is unset.
func (r EntityRef) IsNil() bool {
	return Hash(r).IsZero()
}

func itemRefToUUID(r ItemRef) uuid.UUID { return uuid.UUID(r) }
func uuidToItemRef(u uuid.UUID) ItemRef { return ItemRef(u) }
func entityRefToHash(r EntityRef) Hash { return Hash(r) }
func hashToEntityRef(h Hash) EntityRef { return EntityRef(h) }

// String returns the lowercase hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (r EntityRef) String() string {
	return Hash(r).String()
}
