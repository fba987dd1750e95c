package uniform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeByteSizes(t *testing.T) {
	// The closed std140 table: scalars 4, 2-vectors 8, wider vectors a full
	// chunk, matrices n chunks, samplers a 4-byte handle.
	wantSizes := map[Type]int{
		TypeFloat: 4, TypeInt: 4, TypeUint: 4, TypeBool: 4,
		TypeVec2: 8, TypeIVec2: 8, TypeUVec2: 8, TypeBVec2: 8,
		TypeVec3: 16, TypeIVec3: 16, TypeUVec3: 16, TypeBVec3: 16,
		TypeVec4: 16, TypeIVec4: 16, TypeUVec4: 16, TypeBVec4: 16,
		TypeMat2: 32, TypeMat3: 48, TypeMat4: 64,
		TypeSampler2D: 4,
	}

	for typ, want := range wantSizes {
		got, ok := typ.ByteSize()
		assert.Truef(t, ok, "type %s missing from size table", typ)
		assert.Equalf(t, want, got, "type %s", typ)
	}

	_, ok := TypeUndefined.ByteSize()
	assert.False(t, ok)
	_, ok = Type(99).ByteSize()
	assert.False(t, ok)
}

func TestTypeComponents(t *testing.T) {
	tests := []struct {
		typ  Type
		want int
	}{
		{TypeFloat, 1},
		{TypeSampler2D, 1},
		{TypeVec2, 2},
		{TypeVec3, 3},
		{TypeBVec4, 4},
		{TypeMat2, 4},
		{TypeMat3, 9},
		{TypeMat4, 16},
	}

	for _, tt := range tests {
		got, ok := tt.typ.Components()
		assert.True(t, ok)
		assert.Equalf(t, tt.want, got, "type %s", tt.typ)
	}

	_, ok := Type(99).Components()
	assert.False(t, ok)
}

func TestTypeClassification(t *testing.T) {
	assert.True(t, TypeVec3.IsVector())
	assert.True(t, TypeBVec2.IsVector())
	assert.False(t, TypeFloat.IsVector())
	assert.False(t, TypeMat4.IsVector())

	assert.True(t, TypeMat2.IsMatrix())
	assert.True(t, TypeMat4.IsMatrix())
	assert.False(t, TypeVec4.IsMatrix())
	assert.False(t, TypeSampler2D.IsMatrix())
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "mat4", TypeMat4.String())
	assert.Equal(t, "sampler2D", TypeSampler2D.String())
	assert.Equal(t, "Type(99)", Type(99).String())
}
