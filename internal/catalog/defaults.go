package catalog

// DefaultBaseTypes returns the base types of the persistent data structure
// framework in their canonical declaration order. The order fixes the data
// type ids baked into generated dispatch tables; append, never reorder.
func DefaultBaseTypes() []BaseType {
	return []BaseType{
		{Name: "Bool", Variants: []Variant{
			{Name: "bool", ElemType: "bool", Count: 1, GoName: "Bool", GoType: "bool"},
		}},
		{Name: "Int", Variants: []Variant{
			{Name: "i8", ElemType: "i8", Count: 1, GoName: "I8", GoType: "int8"},
			{Name: "i16", ElemType: "i16", Count: 1, GoName: "I16", GoType: "int16"},
			{Name: "i32", ElemType: "i32", Count: 1, GoName: "I32", GoType: "int32"},
			{Name: "i64", ElemType: "i64", Count: 1, GoName: "I64", GoType: "int64"},
		}},
		{Name: "UInt", Variants: []Variant{
			{Name: "u8", ElemType: "u8", Count: 1, GoName: "U8", GoType: "uint8"},
			{Name: "u16", ElemType: "u16", Count: 1, GoName: "U16", GoType: "uint16"},
			{Name: "u32", ElemType: "u32", Count: 1, GoName: "U32", GoType: "uint32"},
			{Name: "u64", ElemType: "u64", Count: 1, GoName: "U64", GoType: "uint64"},
		}},
		{Name: "Float", Variants: []Variant{
			{Name: "float", ElemType: "float", Count: 1, GoName: "Float", GoType: "float32"},
			{Name: "double", ElemType: "double", Count: 1, GoName: "Double", GoType: "float64"},
		}},
		{Name: "Vec2", Variants: []Variant{
			{Name: "fvec2", ElemType: "float", Count: 2, GoName: "FVec2", GoType: "FVec2"},
			{Name: "dvec2", ElemType: "double", Count: 2, GoName: "DVec2", GoType: "DVec2"},
		}},
		{Name: "Vec3", Variants: []Variant{
			{Name: "fvec3", ElemType: "float", Count: 3, GoName: "FVec3", GoType: "FVec3"},
			{Name: "dvec3", ElemType: "double", Count: 3, GoName: "DVec3", GoType: "DVec3"},
		}},
		{Name: "Vec4", Variants: []Variant{
			{Name: "fvec4", ElemType: "float", Count: 4, GoName: "FVec4", GoType: "FVec4"},
			{Name: "dvec4", ElemType: "double", Count: 4, GoName: "DVec4", GoType: "DVec4"},
		}},
		{Name: "IVec2", Variants: []Variant{
			{Name: "i8vec2", ElemType: "i8", Count: 2, GoName: "I8Vec2", GoType: "I8Vec2"},
			{Name: "i16vec2", ElemType: "i16", Count: 2, GoName: "I16Vec2", GoType: "I16Vec2"},
			{Name: "i32vec2", ElemType: "i32", Count: 2, GoName: "I32Vec2", GoType: "I32Vec2"},
			{Name: "i64vec2", ElemType: "i64", Count: 2, GoName: "I64Vec2", GoType: "I64Vec2"},
		}},
		{Name: "IVec3", Variants: []Variant{
			{Name: "i8vec3", ElemType: "i8", Count: 3, GoName: "I8Vec3", GoType: "I8Vec3"},
			{Name: "i16vec3", ElemType: "i16", Count: 3, GoName: "I16Vec3", GoType: "I16Vec3"},
			{Name: "i32vec3", ElemType: "i32", Count: 3, GoName: "I32Vec3", GoType: "I32Vec3"},
			{Name: "i64vec3", ElemType: "i64", Count: 3, GoName: "I64Vec3", GoType: "I64Vec3"},
		}},
		{Name: "IVec4", Variants: []Variant{
			{Name: "i8vec4", ElemType: "i8", Count: 4, GoName: "I8Vec4", GoType: "I8Vec4"},
			{Name: "i16vec4", ElemType: "i16", Count: 4, GoName: "I16Vec4", GoType: "I16Vec4"},
			{Name: "i32vec4", ElemType: "i32", Count: 4, GoName: "I32Vec4", GoType: "I32Vec4"},
			{Name: "i64vec4", ElemType: "i64", Count: 4, GoName: "I64Vec4", GoType: "I64Vec4"},
		}},
		{Name: "UVec2", Variants: []Variant{
			{Name: "u8vec2", ElemType: "u8", Count: 2, GoName: "U8Vec2", GoType: "U8Vec2"},
			{Name: "u16vec2", ElemType: "u16", Count: 2, GoName: "U16Vec2", GoType: "U16Vec2"},
			{Name: "u32vec2", ElemType: "u32", Count: 2, GoName: "U32Vec2", GoType: "U32Vec2"},
			{Name: "u64vec2", ElemType: "u64", Count: 2, GoName: "U64Vec2", GoType: "U64Vec2"},
		}},
		{Name: "UVec3", Variants: []Variant{
			{Name: "u8vec3", ElemType: "u8", Count: 3, GoName: "U8Vec3", GoType: "U8Vec3"},
			{Name: "u16vec3", ElemType: "u16", Count: 3, GoName: "U16Vec3", GoType: "U16Vec3"},
			{Name: "u32vec3", ElemType: "u32", Count: 3, GoName: "U32Vec3", GoType: "U32Vec3"},
			{Name: "u64vec3", ElemType: "u64", Count: 3, GoName: "U64Vec3", GoType: "U64Vec3"},
		}},
		{Name: "UVec4", Variants: []Variant{
			{Name: "u8vec4", ElemType: "u8", Count: 4, GoName: "U8Vec4", GoType: "U8Vec4"},
			{Name: "u16vec4", ElemType: "u16", Count: 4, GoName: "U16Vec4", GoType: "U16Vec4"},
			{Name: "u32vec4", ElemType: "u32", Count: 4, GoName: "U32Vec4", GoType: "U32Vec4"},
			{Name: "u64vec4", ElemType: "u64", Count: 4, GoName: "U64Vec4", GoType: "U64Vec4"},
		}},
		{Name: "Mat2", Variants: []Variant{
			{Name: "fmat2", ElemType: "float", Count: 4, GoName: "FMat2", GoType: "FMat2"},
			{Name: "dmat2", ElemType: "double", Count: 4, GoName: "DMat2", GoType: "DMat2"},
		}},
		{Name: "Mat3", Variants: []Variant{
			{Name: "fmat3", ElemType: "float", Count: 9, GoName: "FMat3", GoType: "FMat3"},
			{Name: "dmat3", ElemType: "double", Count: 9, GoName: "DMat3", GoType: "DMat3"},
		}},
		{Name: "Mat4", Variants: []Variant{
			{Name: "fmat4", ElemType: "float", Count: 16, GoName: "FMat4", GoType: "FMat4"},
			{Name: "dmat4", ElemType: "double", Count: 16, GoName: "DMat4", GoType: "DMat4"},
		}},
		{Name: "Quat", Variants: []Variant{
			{Name: "fquat", ElemType: "float", Count: 4, GoName: "FQuat", GoType: "FQuat"},
			{Name: "dquat", ElemType: "double", Count: 4, GoName: "DQuat", GoType: "DQuat"},
		}},
		{Name: "Uuid", Variants: []Variant{
			{Name: "uuid", ElemType: "uuid", Count: 1, GoName: "UUID", GoType: "uuid.UUID"},
			{Name: "item_ref", ElemType: "uuid", Count: 1, Overrides: true, GoName: "ItemRef", GoType: "ItemRef"},
		}},
		{Name: "Hash", Variants: []Variant{
			{Name: "hash", ElemType: "hash", Count: 1, GoName: "Hash", GoType: "Hash"},
			{Name: "entity_ref", ElemType: "hash", Count: 1, Overrides: true, GoName: "EntityRef", GoType: "EntityRef"},
		}},
		{Name: "String", Variants: []Variant{
			{Name: "string", ElemType: "string", Count: 1, GoName: "String", GoType: "string"},
		}},
	}
}

// Default returns the catalog built from DefaultBaseTypes and all container kinds.
func Default() *Catalog {
	c, err := New(DefaultBaseTypes(), ContainerKinds)
	if err != nil {
		panic("catalog: invalid default catalog: " + err.Error())
	}

	return c
}
