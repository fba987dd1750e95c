package uniform

import (
	"strings"
	"sync"
)

// Cache stores one computed (BlockLayout, SyncProc) pair per unique block
// shape. Entries are computed lazily on first request and are immutable
// once published; concurrent readers never block each other.
type Cache interface {
	// Get returns the layout and sync procedure for the given ordered
	// uniform set, computing and caching them on first use. Two sets with
	// the same ordered (name, type) sequence share one entry regardless of
	// their UpdateIndex values.
	//
	// Parameters:
	//   - uniforms: the ordered fields of the block
	//
	// Returns:
	//   - BlockLayout: the planned layout for the shape
	//   - SyncProc: the shared sync procedure for the shape
	//   - error: ErrArrayUniform or ErrUnknownType; nothing is cached on error
	Get(uniforms []Uniform) (BlockLayout, SyncProc, error)

	// Len reports the number of distinct block shapes currently cached.
	Len() int
}

type cacheImpl struct {
	mu     *sync.RWMutex
	blocks map[string]*cachedBlock
}

type cachedBlock struct {
	layout BlockLayout
	proc   SyncProc
}

// Ensure cacheImpl implements Cache interface.
var _ Cache = &cacheImpl{}

// NewCache creates an empty block-shape cache.
//
// Returns:
//   - Cache: the newly created cache, safe for concurrent use
func NewCache() Cache {
	return &cacheImpl{
		mu:     &sync.RWMutex{},
		blocks: make(map[string]*cachedBlock),
	}
}

// ShapeKey returns the signature identifying a block shape: the ordered
// sequence of (name, type) pairs. Uniform sets with equal shape keys are
// layout-compatible and share a generated sync procedure.
//
// Parameters:
//   - uniforms: the ordered fields of the block
//
// Returns:
//   - string: the shape signature, e.g. "model:mat4;tint:vec4;"
func ShapeKey(uniforms []Uniform) string {
	var b strings.Builder
	for _, u := range uniforms {
		b.WriteString(u.Name)
		b.WriteByte(':')
		b.WriteString(u.Type.String())
		b.WriteByte(';')
	}
	return b.String()
}

func (c *cacheImpl) Get(uniforms []Uniform) (BlockLayout, SyncProc, error) {
	key := ShapeKey(uniforms)

	c.mu.RLock()
	blk, ok := c.blocks[key]
	c.mu.RUnlock()
	if ok {
		return blk.layout, blk.proc, nil
	}

	// Planning and generation are pure, so losing a publish race below just
	// means the winner's identical result is returned.
	layout, err := PlanLayout(uniforms)
	if err != nil {
		return BlockLayout{}, nil, err
	}
	proc, err := BuildSyncProc(layout)
	if err != nil {
		return BlockLayout{}, nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.blocks[key]; ok {
		return existing.layout, existing.proc, nil
	}
	c.blocks[key] = &cachedBlock{layout: layout, proc: proc}
	return layout, proc, nil
}

func (c *cacheImpl) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks)
}
