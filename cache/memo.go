package cache

// entry holds a memoized value with its lookup count.
type entry[V any] struct {
	value V
	hits  int
}

// Memo is a per-run table of built values keyed by identifier. It is not
// safe for concurrent use: each conversion allocates its own Memo so no
// state survives between runs.
type Memo[V any] struct {
	store map[string]*entry[V]
	order []string
}

// NewMemo creates an empty Memo.
func NewMemo[V any]() *Memo[V] {
	return &Memo[V]{store: make(map[string]*entry[V])}
}

// Get retrieves the value stored under key and counts the hit.
func (m *Memo[V]) Get(key string) (V, bool) {
	e, ok := m.store[key]
	if !ok {
		var zero V
		return zero, false
	}
	e.hits++
	return e.value, true
}

// Set stores v under key. The first Set of a key fixes its position in
// Keys; later Sets replace the value.
func (m *Memo[V]) Set(key string, v V) {
	if e, ok := m.store[key]; ok {
		e.value = v
		return
	}
	m.store[key] = &entry[V]{value: v}
	m.order = append(m.order, key)
}

// Hits returns how many times key was found by Get.
func (m *Memo[V]) Hits(key string) int {
	if e, ok := m.store[key]; ok {
		return e.hits
	}
	return 0
}

// Keys returns the stored keys in insertion order.
func (m *Memo[V]) Keys() []string {
	return append([]string(nil), m.order...)
}

// Len returns the number of stored keys.
func (m *Memo[V]) Len() int {
	return len(m.store)
}
