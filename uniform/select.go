package uniform

import "sort"

// SelectUniforms filters a block's declared uniforms down to the fields
// that currently have a value, ordered by ascending UpdateIndex. The result
// is the field set handed to PlanLayout and Cache.Get.
//
// A declared field with no value is dropped silently rather than treated as
// an error; sparse usage is normal. Ties on UpdateIndex keep their declared
// order.
//
// Parameters:
//   - declared: the block's declared uniforms, in any order
//   - values: the value table consulted for presence
//
// Returns:
//   - []Uniform: the value-backed fields in block order
func SelectUniforms(declared []Uniform, values ValueSource) []Uniform {
	selected := make([]Uniform, 0, len(declared))
	for _, u := range declared {
		if _, ok := values.Lookup(u.Name); !ok {
			continue
		}
		selected = append(selected, u)
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].UpdateIndex < selected[j].UpdateIndex
	})
	return selected
}
