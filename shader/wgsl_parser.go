package shader

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/ubo-go/uniform"
)

var (
	// structBlockRegex matches "struct Name { ... }" blocks in WGSL source.
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// bindingDeclRegex matches "@group(G) @binding(B) var<space> name : type;"
	// declarations. The address space capture distinguishes uniform buffers
	// from storage buffers and handle bindings such as textures and samplers.
	bindingDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)

	// fieldRegex matches a single struct member, tolerating leading member
	// attributes such as @align(16) or @size(12).
	fieldRegex = regexp.MustCompile(`(?:@\w+\([^)]*\)\s*)*(\w+)\s*:\s*(.+)`)
)

// wgslTypeMap maps WGSL type spellings onto the closed uniform type set.
// Both the template form (vec3<f32>) and the shorthand form (vec3f) are
// accepted. Spellings are looked up with whitespace removed.
var wgslTypeMap = map[string]uniform.Type{
	"f32":  uniform.TypeFloat,
	"i32":  uniform.TypeInt,
	"u32":  uniform.TypeUint,
	"bool": uniform.TypeBool,

	"vec2<f32>": uniform.TypeVec2,
	"vec2f":     uniform.TypeVec2,
	"vec3<f32>": uniform.TypeVec3,
	"vec3f":     uniform.TypeVec3,
	"vec4<f32>": uniform.TypeVec4,
	"vec4f":     uniform.TypeVec4,

	"vec2<i32>": uniform.TypeIVec2,
	"vec2i":     uniform.TypeIVec2,
	"vec3<i32>": uniform.TypeIVec3,
	"vec3i":     uniform.TypeIVec3,
	"vec4<i32>": uniform.TypeIVec4,
	"vec4i":     uniform.TypeIVec4,

	"vec2<u32>": uniform.TypeUVec2,
	"vec2u":     uniform.TypeUVec2,
	"vec3<u32>": uniform.TypeUVec3,
	"vec3u":     uniform.TypeUVec3,
	"vec4<u32>": uniform.TypeUVec4,
	"vec4u":     uniform.TypeUVec4,

	"vec2<bool>": uniform.TypeBVec2,
	"vec3<bool>": uniform.TypeBVec3,
	"vec4<bool>": uniform.TypeBVec4,

	"mat2x2<f32>": uniform.TypeMat2,
	"mat2x2f":     uniform.TypeMat2,
	"mat3x3<f32>": uniform.TypeMat3,
	"mat3x3f":     uniform.TypeMat3,
	"mat4x4<f32>": uniform.TypeMat4,
	"mat4x4f":     uniform.TypeMat4,
}

// parsedStruct is a struct block lifted out of the cleaned source, with its
// members kept in declaration order.
type parsedStruct struct {
	name   string
	fields []parsedField
}

// parsedField is a single struct member before type resolution.
type parsedField struct {
	name     string
	typeName string
}

// ParseUniformBlocks extracts every var<uniform> declaration from the given
// WGSL source and resolves it into a UniformBlock descriptor. Struct-typed
// declarations expand into one uniform per member, in declaration order, so
// the member order in the source is the member order in the buffer layout.
// Storage buffers, textures, and samplers are ignored. Blocks are returned
// sorted by group, then binding.
//
// Parameters:
//   - source: the WGSL source text to reflect over
//
// Returns:
//   - []UniformBlock: the uniform block descriptors found in the source
//   - error: an error if a declaration uses an unknown type or a runtime-sized array
func ParseUniformBlocks(source string) ([]UniformBlock, error) {
	cleaned := stripComments(source)

	structs := make(map[string][]parsedField)
	for _, block := range parseStructBlocks(cleaned) {
		structs[block.name] = block.fields
	}

	matches := bindingDeclRegex.FindAllStringSubmatch(cleaned, -1)
	blocks := make([]UniformBlock, 0, len(matches))
	for _, match := range matches {
		if strings.TrimSpace(match[3]) != "uniform" {
			continue
		}
		group, _ := strconv.Atoi(match[1])
		binding, _ := strconv.Atoi(match[2])
		varName := match[4]
		typeName := strings.TrimSpace(match[5])

		block := UniformBlock{Group: group, Binding: binding, Name: varName}
		if fields, ok := structs[typeName]; ok {
			block.Struct = typeName
			block.Uniforms = make([]uniform.Uniform, 0, len(fields))
			for i, field := range fields {
				typ, arraySize, err := resolveFieldType(field.typeName)
				if err != nil {
					return nil, fmt.Errorf("uniform block %q member %q: %w", varName, field.name, err)
				}
				block.Uniforms = append(block.Uniforms, uniform.Uniform{
					Name:        field.name,
					Type:        typ,
					ArraySize:   arraySize,
					UpdateIndex: i,
				})
			}
		} else {
			typ, arraySize, err := resolveFieldType(typeName)
			if err != nil {
				return nil, fmt.Errorf("uniform %q: %w", varName, err)
			}
			block.Uniforms = []uniform.Uniform{{Name: varName, Type: typ, ArraySize: arraySize}}
		}
		blocks = append(blocks, block)
	}

	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].Group != blocks[j].Group {
			return blocks[i].Group < blocks[j].Group
		}
		return blocks[i].Binding < blocks[j].Binding
	})
	return blocks, nil
}

// resolveFieldType maps a WGSL type spelling to a uniform type and an array
// size. Fixed-size arrays resolve to their element type with the declared
// count carried through, so the layout engine is the one that reports them
// as unsupported. Runtime-sized arrays are rejected outright because the
// uniform address space does not allow them.
func resolveFieldType(spelling string) (uniform.Type, int, error) {
	spelling = strings.ReplaceAll(strings.TrimSpace(spelling), " ", "")
	if typ, ok := wgslTypeMap[spelling]; ok {
		return typ, 1, nil
	}
	if inner, ok := strings.CutPrefix(spelling, "array<"); ok && strings.HasSuffix(inner, ">") {
		args := splitAtTopLevelCommas(strings.TrimSuffix(inner, ">"))
		elem := args[0]
		typ, known := wgslTypeMap[elem]
		if !known {
			return uniform.TypeUndefined, 0, fmt.Errorf("%w (array element %s)", uniform.ErrUnknownType, elem)
		}
		if len(args) < 2 {
			return uniform.TypeUndefined, 0, fmt.Errorf("runtime-sized array of %s: %w", elem, uniform.ErrArrayUniform)
		}
		count, err := strconv.Atoi(args[1])
		if err != nil || count < 1 {
			return uniform.TypeUndefined, 0, fmt.Errorf("array of %s with non-literal count %q: %w", elem, args[1], uniform.ErrArrayUniform)
		}
		return typ, count, nil
	}
	return uniform.TypeUndefined, 0, fmt.Errorf("%w (%s)", uniform.ErrUnknownType, spelling)
}

// parseStructBlocks lifts every struct declaration out of the cleaned
// source.
func parseStructBlocks(cleaned string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(cleaned, -1)
	structs := make([]parsedStruct, 0, len(matches))
	for _, match := range matches {
		structs = append(structs, parsedStruct{
			name:   match[1],
			fields: parseStructFields(match[2]),
		})
	}
	return structs
}

// parseStructFields splits a struct body into its members. WGSL separates
// members with commas, so the body is split at top-level commas to keep
// template arguments like vec3<f32> intact.
func parseStructFields(body string) []parsedField {
	fields := make([]parsedField, 0, 4)
	for _, entry := range splitAtTopLevelCommas(body) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		match := fieldRegex.FindStringSubmatch(entry)
		if match == nil {
			continue
		}
		fields = append(fields, parsedField{
			name:     match[1],
			typeName: strings.TrimSpace(match[2]),
		})
	}
	return fields
}

// splitAtTopLevelCommas splits s at commas that are not nested inside
// angle brackets, so "array<vec3<f32>, 4>" stays a single part while
// "a: f32, b: f32" splits in two.
func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// stripComments removes // line comments and /* */ block comments from the
// source so they cannot interfere with block and declaration matching.
// Block comments nest, matching WGSL comment rules.
func stripComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			switch source[i : i+2] {
			case "/*":
				depth++
				i++
				continue
			case "*/":
				if depth > 0 {
					depth--
					i++
					continue
				}
			case "//":
				if depth == 0 {
					for i < len(source) && source[i] != '\n' {
						i++
					}
					if i < len(source) {
						sb.WriteByte('\n')
					}
					continue
				}
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}
