package uniform

import "fmt"

// chunkSize is the std140 alignment unit in bytes. Fields are packed into
// successive 16-byte chunks, with padding inserted whenever a field cannot
// fit the space remaining in the current chunk.
const chunkSize = 16

// LayoutEntry is the computed placement of one uniform inside a block.
type LayoutEntry struct {
	Uniform Uniform

	Offset   int // byte offset of the field inside the block
	DataLen  int // natural byte size of the field's type
	ChunkLen int // chunk footprint in bytes; exceeds DataLen when the field absorbs trailing padding

	// Dirty is reserved for partial-update tracking. The current sync path
	// rewrites the whole block every pass and never reads it.
	Dirty bool
}

// BlockLayout is the computed layout of a whole uniform block: the ordered
// field placements plus the total size of the block's backing storage.
// A BlockLayout is immutable once returned and safe to share between
// goroutines.
type BlockLayout struct {
	Entries []LayoutEntry
	Size    int // total byte size including trailing padding
}

// PlanLayout computes std140 chunk placement for an ordered uniform set.
//
// Fields must already be in their intended block order (ascending
// UpdateIndex; see SelectUniforms). PlanLayout does not sort: presenting the
// same fields in a different order produces a different, incompatible
// layout.
//
// Packing walks the fields once, tracking the space remaining in the
// current 16-byte chunk. A field that no longer fits a partially used chunk
// starts a fresh chunk, and the skipped bytes are credited onto the
// previous field's ChunkLen so every padding byte is owned by exactly one
// entry. A field larger than a whole chunk spans as many chunks as its size
// requires. After the last field, any space left in an open chunk is
// credited onto the final entry so the block ends on a chunk boundary.
//
// Parameters:
//   - uniforms: the ordered fields of the block; every ArraySize must be 1
//
// Returns:
//   - BlockLayout: one entry per field plus the total block size in bytes
//   - error: ErrArrayUniform or ErrUnknownType; no partial layout is returned
func PlanLayout(uniforms []Uniform) (BlockLayout, error) {
	entries := make([]LayoutEntry, 0, len(uniforms))
	chunkRemaining := chunkSize
	offset := 0

	for _, u := range uniforms {
		if u.ArraySize > 1 {
			return BlockLayout{}, fmt.Errorf("uniform %q has arraySize %d: %w", u.Name, u.ArraySize, ErrArrayUniform)
		}
		size, ok := u.Type.ByteSize()
		if !ok {
			return BlockLayout{}, fmt.Errorf("uniform %q: %w (%s)", u.Name, ErrUnknownType, u.Type)
		}

		remaining := chunkRemaining - size
		if remaining < 0 && chunkRemaining < chunkSize {
			// The field cannot fit the partially used chunk. Start it on a
			// fresh boundary and fold the unused bytes into the previous
			// entry's footprint.
			offset += chunkRemaining
			entries[len(entries)-1].ChunkLen += chunkRemaining
			chunkRemaining = chunkSize
		} else if remaining == 0 {
			chunkRemaining = chunkSize
		} else if remaining > 0 {
			chunkRemaining = remaining
		}
		// remaining < 0 with a full chunk: the field spans whole chunks by
		// itself and chunkRemaining stays at 16.

		entries = append(entries, LayoutEntry{
			Uniform:  u,
			Offset:   offset,
			DataLen:  size,
			ChunkLen: size,
		})
		offset += size
	}

	if offset%chunkSize != 0 {
		entries[len(entries)-1].ChunkLen += chunkRemaining
		offset += chunkRemaining
	}

	return BlockLayout{Entries: entries, Size: offset}, nil
}
