package value_store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreTypedSetters(t *testing.T) {
	tests := []struct {
		name string
		set  func(s Store)
		key  string
		want []float32
	}{
		{
			name: "float",
			set:  func(s Store) { s.SetFloat("glow", 0.5) },
			key:  "glow",
			want: []float32{0.5},
		},
		{
			name: "int coerces to float32",
			set:  func(s Store) { s.SetInt("mode", -3) },
			key:  "mode",
			want: []float32{-3},
		},
		{
			name: "uint coerces to float32",
			set:  func(s Store) { s.SetUint("count", 12) },
			key:  "count",
			want: []float32{12},
		},
		{
			name: "bool true stores 1",
			set:  func(s Store) { s.SetBool("lit", true) },
			key:  "lit",
			want: []float32{1},
		},
		{
			name: "bool false stores 0",
			set:  func(s Store) { s.SetBool("lit", false) },
			key:  "lit",
			want: []float32{0},
		},
		{
			name: "sampler stores its unit",
			set:  func(s Store) { s.SetSampler("tex", 2) },
			key:  "tex",
			want: []float32{2},
		},
		{
			name: "vec2",
			set:  func(s Store) { s.SetVec2("uv", [2]float32{0.25, 0.75}) },
			key:  "uv",
			want: []float32{0.25, 0.75},
		},
		{
			name: "vec3",
			set:  func(s Store) { s.SetVec3("pos", [3]float32{1, 2, 3}) },
			key:  "pos",
			want: []float32{1, 2, 3},
		},
		{
			name: "vec4",
			set:  func(s Store) { s.SetVec4("tint", [4]float32{1, 0, 0, 1}) },
			key:  "tint",
			want: []float32{1, 0, 0, 1},
		},
		{
			name: "mat2 keeps element order",
			set:  func(s Store) { s.SetMat2("rot", [4]float32{1, 2, 3, 4}) },
			key:  "rot",
			want: []float32{1, 2, 3, 4},
		},
		{
			name: "mat3 keeps element order",
			set:  func(s Store) { s.SetMat3("nrm", [9]float32{1, 2, 3, 4, 5, 6, 7, 8, 9}) },
			key:  "nrm",
			want: []float32{1, 2, 3, 4, 5, 6, 7, 8, 9},
		},
		{
			name: "raw components",
			set:  func(s Store) { s.Set("counts", 4, 8, 15) },
			key:  "counts",
			want: []float32{4, 8, 15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			tt.set(s)

			got, ok := s.Lookup(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStoreSetMat4(t *testing.T) {
	s := NewStore()
	var m [16]float32
	for i := range m {
		m[i] = float32(i)
	}
	s.SetMat4("model", m)

	got, ok := s.Lookup("model")
	require.True(t, ok)
	require.Len(t, got, 16)
	assert.Equal(t, float32(15), got[15])
}

func TestStoreLookupMissing(t *testing.T) {
	s := NewStore()
	v, ok := s.Lookup("nope")
	assert.False(t, ok)
	assert.Nil(t, v)
}

// Overwriting a value must not disturb snapshots handed out earlier; a sync
// procedure may still be reading one on another goroutine.
func TestStoreOverwriteKeepsSnapshots(t *testing.T) {
	s := NewStore()
	s.SetVec2("uv", [2]float32{1, 2})

	snapshot, ok := s.Lookup("uv")
	require.True(t, ok)

	s.SetVec2("uv", [2]float32{9, 9})

	assert.Equal(t, []float32{1, 2}, snapshot)
	current, ok := s.Lookup("uv")
	require.True(t, ok)
	assert.Equal(t, []float32{9, 9}, current)
}

func TestStoreSetCopiesCallerSlice(t *testing.T) {
	s := NewStore()
	components := []float32{1, 2, 3}
	s.Set("pos", components...)

	components[0] = 99

	got, ok := s.Lookup("pos")
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3}, got)
}

func TestStoreDeleteAndNames(t *testing.T) {
	s := NewStore(WithCapacity(4))
	s.SetFloat("b", 1)
	s.SetFloat("a", 2)
	s.SetFloat("c", 3)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"a", "b", "c"}, s.Names())

	s.Delete("b")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a", "c"}, s.Names())

	_, ok := s.Lookup("b")
	assert.False(t, ok)
}

func TestStoreWithValues(t *testing.T) {
	seed := map[string][]float32{
		"tint": {1, 0, 0, 1},
		"glow": {0.5},
	}
	s := NewStore(WithValues(seed))

	seed["tint"][0] = 99

	got, ok := s.Lookup("tint")
	require.True(t, ok)
	assert.Equal(t, []float32{1, 0, 0, 1}, got)
	assert.Equal(t, 2, s.Len())
}
