package shader

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/ubo-go/uniform"
)

// UniformBlock describes a single var<uniform> declaration reflected from
// WGSL source: where it binds and the uniforms its members declare.
type UniformBlock struct {
	// Group is the @group index the block binds to.
	Group int

	// Binding is the @binding index within the group.
	Binding int

	// Name is the declared variable name of the block.
	Name string

	// Struct is the struct type name backing the block, or empty when the
	// declaration uses a primitive type directly.
	Struct string

	// Uniforms lists the block members in declaration order.
	Uniforms []uniform.Uniform
}

// shader is the implementation of the Shader interface.
// It holds the raw source alongside the uniform block descriptors reflected
// from it at construction time.
type shader struct {
	key    string
	source string
	blocks []UniformBlock
}

// Shader defines the interface for a loaded WGSL shader. It exposes the
// shader's unique key, source code, and the uniform block descriptors
// reflected from the source, which drive buffer layout planning.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// UniformBlocks retrieves all uniform block descriptors reflected from
	// the source, sorted by group then binding.
	//
	// Returns:
	//   - []UniformBlock: the reflected uniform block descriptors
	UniformBlocks() []UniformBlock

	// Block retrieves the uniform block declared under the given variable name, if it exists.
	//
	// Parameters:
	//   - name: the declared variable name of the block
	//
	// Returns:
	//   - UniformBlock: the matching block, or an empty block if not found
	//   - bool: true if the block was found, false otherwise
	Block(name string) (UniformBlock, bool)
}

var _ Shader = &shader{}

// NewShader creates a new Shader from in-memory WGSL source. The source is
// reflected immediately so that malformed uniform declarations surface at
// construction time rather than at first sync.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - source: the WGSL source text
//
// Returns:
//   - Shader: a new Shader instance with its uniform blocks reflected
func NewShader(key, source string) Shader {
	blocks, err := ParseUniformBlocks(source)
	if err != nil {
		panic(fmt.Sprintf("shader: failed to reflect uniform blocks for %q: %v", key, err))
	}
	return &shader{
		key:    key,
		source: source,
		blocks: blocks,
	}
}

// NewShaderFromFile creates a new Shader by reading WGSL source from the
// given file path.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - path: the file path to read WGSL source from
//
// Returns:
//   - Shader: a new Shader instance with its uniform blocks reflected
func NewShaderFromFile(key, path string) Shader {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("shader: failed to read source file %q: %v", path, err))
	}
	return NewShader(key, string(data))
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) UniformBlocks() []UniformBlock {
	return s.blocks
}

func (s *shader) Block(name string) (UniformBlock, bool) {
	for _, block := range s.blocks {
		if block.Name == name {
			return block, true
		}
	}
	return UniformBlock{}, false
}
