// Package value_store holds the current values for named shader uniforms,
// flattened to 32-bit components, ready for a sync procedure to copy into a
// packed block.
package value_store

import (
	"sort"
	"sync"

	"github.com/Carmen-Shannon/ubo-go/uniform"
)

// Store is a value table for uniform blocks. Typed setters perform the
// coercions a flat float buffer implies (ints and texture units become
// float32, bools become 0 or 1). Every set replaces the stored slice with a
// fresh allocation, so slices handed out by Lookup are stable snapshots.
type Store interface {
	// SetFloat stores a scalar float value.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the value
	SetFloat(name string, v float32)

	// SetInt stores a scalar int value, coerced to float32.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the value
	SetInt(name string, v int32)

	// SetUint stores a scalar uint value, coerced to float32.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the value
	SetUint(name string, v uint32)

	// SetBool stores a scalar bool value as 0 or 1.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the value
	SetBool(name string, v bool)

	// SetSampler stores a texture unit index for a sampler uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//   - unit: the texture unit index
	SetSampler(name string, unit int32)

	// SetVec2 stores a 2-component vector.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the components
	SetVec2(name string, v [2]float32)

	// SetVec3 stores a 3-component vector.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the components
	SetVec3(name string, v [3]float32)

	// SetVec4 stores a 4-component vector.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the components
	SetVec4(name string, v [4]float32)

	// SetMat2 stores a 2x2 matrix in its flat element order.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the 4 elements
	SetMat2(name string, v [4]float32)

	// SetMat3 stores a 3x3 matrix in its flat element order.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the 9 elements
	SetMat3(name string, v [9]float32)

	// SetMat4 stores a 4x4 matrix in its flat element order.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the 16 elements
	SetMat4(name string, v [16]float32)

	// Set stores raw components directly. This is the escape hatch for
	// integer and bool vector types: callers flatten the components
	// themselves.
	//
	// Parameters:
	//   - name: the uniform name
	//   - components: the flattened 32-bit components
	Set(name string, components ...float32)

	// Lookup returns the current components stored under name.
	//
	// Parameters:
	//   - name: the uniform name to resolve
	//
	// Returns:
	//   - []float32: a stable snapshot of the value; callers must not modify
	//   - bool: false if no value is stored under the name
	Lookup(name string) ([]float32, bool)

	// Delete removes the value stored under name, if any.
	//
	// Parameters:
	//   - name: the uniform name
	Delete(name string)

	// Names returns the stored uniform names in sorted order.
	//
	// Returns:
	//   - []string: the sorted names
	Names() []string

	// Len reports the number of stored values.
	Len() int
}

// valueStore is the implementation of the Store interface.
type valueStore struct {
	// mu guards values. Reads outnumber writes heavily in a frame loop.
	mu *sync.RWMutex

	// values maps uniform name to its current flattened components. Slices
	// are replaced wholesale on set, never mutated in place.
	values map[string][]float32
}

var _ Store = &valueStore{}

// The store is the value table consumed by generated sync procedures.
var _ uniform.ValueSource = Store(nil)

// NewStore creates a new Store with the specified options.
//
// Parameters:
//   - options: functional options to configure the store
//
// Returns:
//   - Store: the configured store, safe for concurrent use
func NewStore(options ...StoreBuilderOption) Store {
	s := &valueStore{
		mu:     &sync.RWMutex{},
		values: make(map[string][]float32),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *valueStore) SetFloat(name string, v float32) {
	s.put(name, []float32{v})
}

func (s *valueStore) SetInt(name string, v int32) {
	s.put(name, []float32{float32(v)})
}

func (s *valueStore) SetUint(name string, v uint32) {
	s.put(name, []float32{float32(v)})
}

func (s *valueStore) SetBool(name string, v bool) {
	b := float32(0)
	if v {
		b = 1
	}
	s.put(name, []float32{b})
}

func (s *valueStore) SetSampler(name string, unit int32) {
	s.put(name, []float32{float32(unit)})
}

func (s *valueStore) SetVec2(name string, v [2]float32) {
	s.put(name, v[:])
}

func (s *valueStore) SetVec3(name string, v [3]float32) {
	s.put(name, v[:])
}

func (s *valueStore) SetVec4(name string, v [4]float32) {
	s.put(name, v[:])
}

func (s *valueStore) SetMat2(name string, v [4]float32) {
	s.put(name, v[:])
}

func (s *valueStore) SetMat3(name string, v [9]float32) {
	s.put(name, v[:])
}

func (s *valueStore) SetMat4(name string, v [16]float32) {
	s.put(name, v[:])
}

func (s *valueStore) Set(name string, components ...float32) {
	s.put(name, components)
}

func (s *valueStore) Lookup(name string) ([]float32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

func (s *valueStore) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, name)
}

func (s *valueStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *valueStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// put stores a fresh copy of components so previously returned snapshots
// stay valid for readers that still hold them.
func (s *valueStore) put(name string, components []float32) {
	fresh := make([]float32, len(components))
	copy(fresh, components)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = fresh
}
