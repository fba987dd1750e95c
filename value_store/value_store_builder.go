package value_store

// StoreBuilderOption is a functional option for configuring a valueStore.
// Use the With* functions to create options.
type StoreBuilderOption func(s *valueStore)

// WithCapacity pre-sizes the store for an expected number of uniforms.
//
// Parameters:
//   - capacity: the expected uniform count
//
// Returns:
//   - StoreBuilderOption: option function to apply
func WithCapacity(capacity int) StoreBuilderOption {
	return func(s *valueStore) {
		if capacity < 0 {
			capacity = 0
		}
		s.values = make(map[string][]float32, capacity)
	}
}

// WithValues seeds the store with initial uniform values. The components
// are copied, so the caller's map and slices stay independent.
//
// Parameters:
//   - values: uniform name to flattened components
//
// Returns:
//   - StoreBuilderOption: option function to apply
func WithValues(values map[string][]float32) StoreBuilderOption {
	return func(s *valueStore) {
		for name, components := range values {
			fresh := make([]float32, len(components))
			copy(fresh, components)
			s.values[name] = fresh
		}
	}
}
