package collect

import "iter"

// A ListMultimap maps keys to ordered lists of values. Keys are reported in
// the order they were first inserted and values in the order they were put.
type ListMultimap[K comparable, V any] struct {
	keys   []K
	values map[K][]V
	size   int
}

// NewListMultimap returns an empty ListMultimap.
func NewListMultimap[K comparable, V any]() *ListMultimap[K, V] {
	return &ListMultimap[K, V]{values: make(map[K][]V)}
}

// Put appends v to the values of k.
func (m *ListMultimap[K, V]) Put(k K, v V) {
	if m.values == nil {
		m.values = make(map[K][]V)
	}
	vs, ok := m.values[k]
	if !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = append(vs, v)
	m.size++
}

// PutAll appends vs to the values of k. It is a no-op for an empty vs.
func (m *ListMultimap[K, V]) PutAll(k K, vs ...V) {
	for _, v := range vs {
		m.Put(k, v)
	}
}

// Get returns the values of k, nil if absent. The returned slice must not
// be modified.
func (m *ListMultimap[K, V]) Get(k K) []V { return m.values[k] }

// ContainsKey reports whether k has at least one value.
func (m *ListMultimap[K, V]) ContainsKey(k K) bool {
	_, ok := m.values[k]
	return ok
}

// Keys returns the distinct keys in first-insertion order.
func (m *ListMultimap[K, V]) Keys() []K {
	return append([]K(nil), m.keys...)
}

// Len returns the number of key-value pairs.
func (m *ListMultimap[K, V]) Len() int { return m.size }

// KeyLen returns the number of distinct keys.
func (m *ListMultimap[K, V]) KeyLen() int { return len(m.keys) }

// All yields each key with its values in first-insertion order.
func (m *ListMultimap[K, V]) All() iter.Seq2[K, []V] {
	return func(yield func(K, []V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// AsMap returns a copy of m as a map of key to values.
func (m *ListMultimap[K, V]) AsMap() map[K][]V {
	out := make(map[K][]V, len(m.keys))
	for _, k := range m.keys {
		out[k] = append([]V(nil), m.values[k]...)
	}
	return out
}

// TransformValues returns a new ListMultimap with fn applied to every value.
// Key and value order are preserved.
func TransformValues[K comparable, V, W any](m *ListMultimap[K, V], fn func(V) W) *ListMultimap[K, W] {
	out := NewListMultimap[K, W]()
	for k, vs := range m.All() {
		for _, v := range vs {
			out.Put(k, fn(v))
		}
	}
	return out
}

// TryTransformValues is like TransformValues for a fallible fn. It stops at
// and returns the first error.
func TryTransformValues[K comparable, V, W any](m *ListMultimap[K, V], fn func(V) (W, error)) (*ListMultimap[K, W], error) {
	out := NewListMultimap[K, W]()
	for k, vs := range m.All() {
		for _, v := range vs {
			w, err := fn(v)
			if err != nil {
				return nil, err
			}
			out.Put(k, w)
		}
	}
	return out, nil
}
