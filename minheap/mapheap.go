package minheap

import (
	"cmp"
	"fmt"
)

// MapHeap is the Map strategy: a key→value table plus a cached minimum key.
// Lookups, Add and Update are O(1); Pop and Delete of the current minimum
// rescan the table in O(N) to find the new minimum.
//
// MapHeap is a persistent value like the other strategies, but Go's built-in
// map cannot share structure between incarnations, so every mutation copies
// the backing table. Lookups stay O(1); mutators pay O(N) for the clone on
// top of the costs above. Use the Tree strategy when cheap persistent
// mutation matters.
//
// When the cached minimum is rescanned after a removal, ties between equal
// values are broken by smallest key, consistent with the entry total order.
type MapHeap[K cmp.Ordered] struct {
	vals map[K]Val
	min  K
	some bool // false ⇒ heap is empty, min is meaningless
}

var _ Heap[int] = MapHeap[int]{}

// Size returns the number of entries.
func (h MapHeap[K]) Size() int {
	return len(h.vals)
}

// HasKey reports whether key is present. O(1).
func (h MapHeap[K]) HasKey(key K) bool {
	_, ok := h.vals[key]
	return ok
}

// Get returns the value for key, or def if key is absent. O(1).
func (h MapHeap[K]) Get(key K, def Val) Val {
	if v, ok := h.vals[key]; ok {
		return v
	}
	return def
}

// Fetch returns the value for key, or an error wrapping ErrNoKey. O(1).
func (h MapHeap[K]) Fetch(key K) (Val, error) {
	v, ok := h.vals[key]
	if !ok {
		return Val{}, fmt.Errorf("%w: %v", ErrNoKey, key)
	}
	return v, nil
}

// Add inserts a new key in O(1) (plus the persistent table copy).
// Panics if key is already present.
func (h MapHeap[K]) Add(key K, val Val) Heap[K] {
	_, dup := h.vals[key]
	assertThat(!dup, "Add of existing key %v", key)
	vals := cloneWith(h.vals, key, val)
	e := Entry[K]{Key: key, Val: val}
	if !h.some || e.Less(Entry[K]{Key: h.min, Val: h.vals[h.min]}) {
		return MapHeap[K]{vals: vals, min: key, some: true}
	}
	return MapHeap[K]{vals: vals, min: h.min, some: true}
}

// Update changes the value of an existing key in O(1) (plus the table
// copy), except when key is the cached minimum and its value grew, which
// rescans in O(N). Panics if key is absent.
func (h MapHeap[K]) Update(key K, val Val) Heap[K] {
	_, ok := h.vals[key]
	assertThat(ok, "Update of missing key %v", key)
	vals := cloneWith(h.vals, key, val)
	if key == h.min {
		if val.Cmp(h.vals[h.min]) <= 0 { // minimum got smaller, stays cached
			return MapHeap[K]{vals: vals, min: key, some: true}
		}
		min, _ := scanMin(vals)
		return MapHeap[K]{vals: vals, min: min, some: true}
	}
	e := Entry[K]{Key: key, Val: val}
	if e.Less(Entry[K]{Key: h.min, Val: h.vals[h.min]}) {
		return MapHeap[K]{vals: vals, min: key, some: true}
	}
	return MapHeap[K]{vals: vals, min: h.min, some: true}
}

// Delete removes key if present: O(1) for a non-minimum key, O(N) for the
// cached minimum (rescan). Deleting an absent key returns h unchanged.
func (h MapHeap[K]) Delete(key K) Heap[K] {
	if _, ok := h.vals[key]; !ok {
		return h
	}
	vals := cloneWithout(h.vals, key)
	if len(vals) == 0 {
		return MapHeap[K]{}
	}
	if key != h.min {
		return MapHeap[K]{vals: vals, min: h.min, some: true}
	}
	min, _ := scanMin(vals)
	return MapHeap[K]{vals: vals, min: min, some: true}
}

// Peek returns the minimum entry in O(1).
func (h MapHeap[K]) Peek() (Entry[K], bool) {
	if !h.some {
		return Entry[K]{}, false
	}
	return Entry[K]{Key: h.min, Val: h.vals[h.min]}, true
}

// Pop removes and returns the minimum entry: O(N) for the rescan.
func (h MapHeap[K]) Pop() (Entry[K], Heap[K], bool) {
	if !h.some {
		return Entry[K]{}, h, false
	}
	popped := Entry[K]{Key: h.min, Val: h.vals[h.min]}
	vals := cloneWithout(h.vals, h.min)
	if len(vals) == 0 {
		return popped, MapHeap[K]{}, true
	}
	min, _ := scanMin(vals)
	return popped, MapHeap[K]{vals: vals, min: min, some: true}, true
}

// Keys returns all keys in map iteration order.
func (h MapHeap[K]) Keys() []K {
	keys := make([]K, 0, len(h.vals))
	for k := range h.vals {
		keys = append(keys, k)
	}
	return keys
}

// ToList returns all entries in map iteration order.
func (h MapHeap[K]) ToList() []Entry[K] {
	entries := make([]Entry[K], 0, len(h.vals))
	for k, v := range h.vals {
		entries = append(entries, Entry[K]{Key: k, Val: v})
	}
	return entries
}

// ToMap returns a copy of the key→value table.
func (h MapHeap[K]) ToMap() map[K]Val {
	m := make(map[K]Val, len(h.vals))
	for k, v := range h.vals {
		m[k] = v
	}
	return m
}

// scanMin finds the least entry under the total order by a full scan, so
// equal values resolve to the smallest key regardless of map iteration
// order.
func scanMin[K cmp.Ordered](vals map[K]Val) (K, Val) {
	var min Entry[K]
	first := true
	for k, v := range vals {
		e := Entry[K]{Key: k, Val: v}
		if first || e.Less(min) {
			min, first = e, false
		}
	}
	assertThat(!first, "minimum rescan over an empty table")
	return min.Key, min.Val
}

func cloneWith[K cmp.Ordered](vals map[K]Val, key K, val Val) map[K]Val {
	m := make(map[K]Val, len(vals)+1)
	for k, v := range vals {
		m[k] = v
	}
	m[key] = val
	return m
}

func cloneWithout[K cmp.Ordered](vals map[K]Val, key K) map[K]Val {
	m := make(map[K]Val, len(vals))
	for k, v := range vals {
		if k != key {
			m[k] = v
		}
	}
	return m
}
