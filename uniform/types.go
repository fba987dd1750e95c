package uniform

import "fmt"

// Type identifies the data type of a single uniform block field. The set is
// closed: these are the only types the layout planner and sync generator
// understand, and the byte sizes below follow the std140 packing table.
type Type int

const (
	TypeUndefined Type = iota
	TypeFloat
	TypeInt
	TypeUint
	TypeBool
	TypeVec2
	TypeVec3
	TypeVec4
	TypeIVec2
	TypeIVec3
	TypeIVec4
	TypeUVec2
	TypeUVec3
	TypeUVec4
	TypeBVec2
	TypeBVec3
	TypeBVec4
	TypeMat2
	TypeMat3
	TypeMat4
	TypeSampler2D
)

// typeSizes is the closed std140 type to natural-byte-size table. Scalars
// take 4 bytes, 2-vectors 8, 3- and 4-vectors a full 16-byte chunk, and
// square matrices n chunks. Samplers pack as a single 4-byte handle.
var typeSizes = map[Type]int{
	TypeFloat:     4,
	TypeInt:       4,
	TypeUint:      4,
	TypeBool:      4,
	TypeVec2:      8,
	TypeIVec2:     8,
	TypeUVec2:     8,
	TypeBVec2:     8,
	TypeVec3:      16,
	TypeIVec3:     16,
	TypeUVec3:     16,
	TypeBVec3:     16,
	TypeVec4:      16,
	TypeIVec4:     16,
	TypeUVec4:     16,
	TypeBVec4:     16,
	TypeMat2:      32,
	TypeMat3:      48,
	TypeMat4:      64,
	TypeSampler2D: 4,
}

// typeComponents maps each type to the number of 32-bit components a value
// of that type supplies. Matrix counts are n*n, not the padded slot size,
// and 3-vectors supply 3 components even though they occupy 16 bytes.
var typeComponents = map[Type]int{
	TypeFloat:     1,
	TypeInt:       1,
	TypeUint:      1,
	TypeBool:      1,
	TypeVec2:      2,
	TypeIVec2:     2,
	TypeUVec2:     2,
	TypeBVec2:     2,
	TypeVec3:      3,
	TypeIVec3:     3,
	TypeUVec3:     3,
	TypeBVec3:     3,
	TypeVec4:      4,
	TypeIVec4:     4,
	TypeUVec4:     4,
	TypeBVec4:     4,
	TypeMat2:      4,
	TypeMat3:      9,
	TypeMat4:      16,
	TypeSampler2D: 1,
}

var typeNames = map[Type]string{
	TypeUndefined: "undefined",
	TypeFloat:     "float",
	TypeInt:       "int",
	TypeUint:      "uint",
	TypeBool:      "bool",
	TypeVec2:      "vec2",
	TypeVec3:      "vec3",
	TypeVec4:      "vec4",
	TypeIVec2:     "ivec2",
	TypeIVec3:     "ivec3",
	TypeIVec4:     "ivec4",
	TypeUVec2:     "uvec2",
	TypeUVec3:     "uvec3",
	TypeUVec4:     "uvec4",
	TypeBVec2:     "bvec2",
	TypeBVec3:     "bvec3",
	TypeBVec4:     "bvec4",
	TypeMat2:      "mat2",
	TypeMat3:      "mat3",
	TypeMat4:      "mat4",
	TypeSampler2D: "sampler2D",
}

// String returns the GLSL-style spelling of the type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ByteSize returns the natural byte size of the type under std140 packing.
//
// Returns:
//   - int: the byte size, 0 if the type is not in the closed table
//   - bool: false if the type is not in the closed table
func (t Type) ByteSize() (int, bool) {
	size, ok := typeSizes[t]
	return size, ok
}

// Components returns how many 32-bit components a value of this type
// supplies to the packed buffer.
//
// Returns:
//   - int: the component count, 0 if the type is not in the closed table
//   - bool: false if the type is not in the closed table
func (t Type) Components() (int, bool) {
	n, ok := typeComponents[t]
	return n, ok
}

// IsVector reports whether the type is a 2-, 3- or 4-component vector.
func (t Type) IsVector() bool {
	switch t {
	case TypeVec2, TypeVec3, TypeVec4,
		TypeIVec2, TypeIVec3, TypeIVec4,
		TypeUVec2, TypeUVec3, TypeUVec4,
		TypeBVec2, TypeBVec3, TypeBVec4:
		return true
	}
	return false
}

// IsMatrix reports whether the type is a square float matrix.
func (t Type) IsMatrix() bool {
	switch t {
	case TypeMat2, TypeMat3, TypeMat4:
		return true
	}
	return false
}
