package uniform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValues map[string][]float32

func (s stubValues) Lookup(name string) ([]float32, bool) {
	v, ok := s[name]
	return v, ok
}

type captureUploader struct {
	calls int
	data  []float32
}

func (u *captureUploader) Upload(data []float32) {
	u.calls++
	u.data = data
}

func mustPlan(t *testing.T, uniforms []Uniform) BlockLayout {
	t.Helper()
	layout, err := PlanLayout(uniforms)
	require.NoError(t, err)
	return layout
}

func TestBuildSyncProcEndToEnd(t *testing.T) {
	layout := mustPlan(t, []Uniform{
		{Name: "a", Type: TypeFloat, ArraySize: 1},
		{Name: "b", Type: TypeVec3, ArraySize: 1},
	})
	proc, err := BuildSyncProc(layout)
	require.NoError(t, err)

	values := stubValues{
		"a": {1.5},
		"b": {2, 3, 4},
	}
	buf := make([]float32, layout.Size/4)
	uploader := &captureUploader{}

	proc(values, nil, buf, uploader)

	// a lands at element 0, b at element 4; chunk padding stays zero.
	assert.Equal(t, []float32{1.5, 0, 0, 0, 2, 3, 4, 0}, buf)
	assert.Equal(t, 1, uploader.calls)
	assert.Equal(t, buf, uploader.data)
}

func TestSyncProcCopyRules(t *testing.T) {
	tests := []struct {
		name     string
		uniforms []Uniform
		values   stubValues
		want     []float32
	}{
		{
			name: "scalar writes one element",
			uniforms: []Uniform{
				{Name: "glow", Type: TypeFloat, ArraySize: 1},
			},
			values: stubValues{"glow": {0.25}},
			want:   []float32{0.25, 0, 0, 0},
		},
		{
			name: "sampler writes its unit as a scalar",
			uniforms: []Uniform{
				{Name: "tex", Type: TypeSampler2D, ArraySize: 1},
			},
			values: stubValues{"tex": {7}},
			want:   []float32{7, 0, 0, 0},
		},
		{
			name: "vec2 writes two contiguous elements",
			uniforms: []Uniform{
				{Name: "uv", Type: TypeVec2, ArraySize: 1},
			},
			values: stubValues{"uv": {0.5, 0.75}},
			want:   []float32{0.5, 0.75, 0, 0},
		},
		{
			name: "vec3 writes three elements and leaves its pad element",
			uniforms: []Uniform{
				{Name: "pos", Type: TypeVec3, ArraySize: 1},
			},
			values: stubValues{"pos": {1, 2, 3}},
			want:   []float32{1, 2, 3, 0},
		},
		{
			name: "mat2 writes four contiguous elements into its slot",
			uniforms: []Uniform{
				{Name: "rot", Type: TypeMat2, ArraySize: 1},
			},
			values: stubValues{"rot": {1, 2, 3, 4}},
			want:   []float32{1, 2, 3, 4, 0, 0, 0, 0},
		},
		{
			name: "mat4 writes sixteen elements in source order",
			uniforms: []Uniform{
				{Name: "model", Type: TypeMat4, ArraySize: 1},
			},
			values: stubValues{"model": {
				1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16,
			}},
			want: []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := mustPlan(t, tt.uniforms)
			proc, err := BuildSyncProc(layout)
			require.NoError(t, err)

			buf := make([]float32, layout.Size/4)
			uploader := &captureUploader{}
			proc(tt.values, nil, buf, uploader)

			assert.Equal(t, tt.want, buf)
			assert.Equal(t, 1, uploader.calls)
		})
	}
}

func TestSyncProcSkipsMissingValues(t *testing.T) {
	layout := mustPlan(t, []Uniform{
		{Name: "x", Type: TypeFloat, ArraySize: 1},
		{Name: "y", Type: TypeFloat, ArraySize: 1},
		{Name: "z", Type: TypeFloat, ArraySize: 1},
		{Name: "w", Type: TypeFloat, ArraySize: 1},
	})
	proc, err := BuildSyncProc(layout)
	require.NoError(t, err)

	buf := make([]float32, layout.Size/4)
	uploader := &captureUploader{}
	proc(stubValues{"x": {1}, "z": {3}}, nil, buf, uploader)

	assert.Equal(t, []float32{1, 0, 3, 0}, buf)
	assert.Equal(t, 1, uploader.calls)
}

func TestSyncProcUploadsOnceEvenWhenEmpty(t *testing.T) {
	layout := mustPlan(t, []Uniform{
		{Name: "tint", Type: TypeVec4, ArraySize: 1},
	})
	proc, err := BuildSyncProc(layout)
	require.NoError(t, err)

	buf := make([]float32, layout.Size/4)
	uploader := &captureUploader{}
	proc(stubValues{}, nil, buf, uploader)

	assert.Equal(t, []float32{0, 0, 0, 0}, buf)
	assert.Equal(t, 1, uploader.calls)
}

func TestSyncProcRewritesOnEachInvocation(t *testing.T) {
	layout := mustPlan(t, []Uniform{
		{Name: "a", Type: TypeFloat, ArraySize: 1},
		{Name: "b", Type: TypeVec2, ArraySize: 1},
	})
	proc, err := BuildSyncProc(layout)
	require.NoError(t, err)

	buf := make([]float32, layout.Size/4)
	uploader := &captureUploader{}

	proc(stubValues{"a": {1}, "b": {2, 3}}, nil, buf, uploader)
	proc(stubValues{"a": {9}, "b": {8, 7}}, nil, buf, uploader)

	// The vec2 fits the chunk right after the float, so it lands at
	// elements 1 and 2.
	assert.Equal(t, []float32{9, 8, 7, 0}, buf)
	assert.Equal(t, 2, uploader.calls)
}

// The same generated procedure serves any value source with the same block
// shape; it captures only offsets and names.
func TestSyncProcSharedBetweenValueSources(t *testing.T) {
	layout := mustPlan(t, []Uniform{
		{Name: "tint", Type: TypeVec4, ArraySize: 1},
	})
	proc, err := BuildSyncProc(layout)
	require.NoError(t, err)

	first := make([]float32, layout.Size/4)
	second := make([]float32, layout.Size/4)
	uploader := &captureUploader{}

	proc(stubValues{"tint": {1, 0, 0, 1}}, nil, first, uploader)
	proc(stubValues{"tint": {0, 1, 0, 1}}, nil, second, uploader)

	assert.Equal(t, []float32{1, 0, 0, 1}, first)
	assert.Equal(t, []float32{0, 1, 0, 1}, second)
	assert.Equal(t, 2, uploader.calls)
}

func TestBuildSyncProcRejectsArrays(t *testing.T) {
	layout := BlockLayout{
		Entries: []LayoutEntry{
			{Uniform: Uniform{Name: "bones", Type: TypeMat4, ArraySize: 4}, Offset: 0, DataLen: 64, ChunkLen: 64},
		},
		Size: 64,
	}

	proc, err := BuildSyncProc(layout)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArrayUniform)
	assert.Nil(t, proc)
}

func TestBuildSyncProcRejectsUnknownType(t *testing.T) {
	layout := BlockLayout{
		Entries: []LayoutEntry{
			{Uniform: Uniform{Name: "mystery", Type: Type(42), ArraySize: 1}, Offset: 0, DataLen: 4, ChunkLen: 16},
		},
		Size: 16,
	}

	proc, err := BuildSyncProc(layout)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Nil(t, proc)
}

func TestSyncProcShortScalarValueIsIgnored(t *testing.T) {
	layout := mustPlan(t, []Uniform{
		{Name: "a", Type: TypeFloat, ArraySize: 1},
	})
	proc, err := BuildSyncProc(layout)
	require.NoError(t, err)

	buf := make([]float32, layout.Size/4)
	uploader := &captureUploader{}
	proc(stubValues{"a": {}}, nil, buf, uploader)

	assert.Equal(t, []float32{0, 0, 0, 0}, buf)
	assert.Equal(t, 1, uploader.calls)
}
