// Package uniform computes std140 block layouts for sets of named, typed
// shader values and generates specialized procedures that copy current
// values into a packed buffer for GPU upload.
package uniform

import "errors"

var (
	// ErrArrayUniform is returned when a block declares an array field
	// (ArraySize > 1). Arrays inside uniform blocks are not supported and
	// are rejected before any layout or procedure is produced.
	ErrArrayUniform = errors.New("uniform: array uniforms are not supported")

	// ErrUnknownType is returned when a field's type is absent from the
	// closed std140 size table. This is a configuration defect, not a
	// recoverable condition.
	ErrUnknownType = errors.New("uniform: unknown uniform type")
)

// Uniform describes one named field of a uniform block, as reported by
// shader reflection. Uniform values are plain data and safe to copy.
type Uniform struct {
	Name        string // unique within a block
	Type        Type
	ArraySize   int // declared element count; only 1 is supported
	UpdateIndex int // ordering key used when selecting block membership
}

// ValueSource resolves a uniform name to its current value, expressed as
// flat 32-bit components in the value's own element order.
type ValueSource interface {
	// Lookup returns the current components for the named uniform.
	//
	// Parameters:
	//   - name: the uniform name to resolve
	//
	// Returns:
	//   - []float32: the value's components; callers must not modify
	//   - bool: false if no value is stored under the name
	Lookup(name string) ([]float32, bool)
}

// Uploader receives the packed block contents after a sync procedure has
// finished writing. A sync procedure calls Upload exactly once per
// invocation, always after the last field copy.
type Uploader interface {
	// Upload stages or performs the transfer of the packed buffer to its
	// GPU-visible destination. Failure handling is the uploader's concern.
	//
	// Parameters:
	//   - data: the packed buffer, one float32 per 4 bytes of block storage
	Upload(data []float32)
}
