package minheap

import (
	"cmp"
	"fmt"
	"sort"
)

// OrdHeap is the Ord strategy: a single slice of entries kept sorted
// ascending under the entry total order, so the head is always the minimum.
// Peek and Pop are O(1); Add, Update, Delete and lookups are O(N).
type OrdHeap[K cmp.Ordered] struct {
	entries []Entry[K] // ascending; never mutated in place
}

var _ Heap[int] = OrdHeap[int]{}

// Size returns the number of entries.
func (h OrdHeap[K]) Size() int {
	return len(h.entries)
}

// HasKey reports whether key is present. O(N).
func (h OrdHeap[K]) HasKey(key K) bool {
	return h.indexOf(key) >= 0
}

// Get returns the value for key, or def if key is absent. O(N).
func (h OrdHeap[K]) Get(key K, def Val) Val {
	if i := h.indexOf(key); i >= 0 {
		return h.entries[i].Val
	}
	return def
}

// Fetch returns the value for key, or an error wrapping ErrNoKey. O(N).
func (h OrdHeap[K]) Fetch(key K) (Val, error) {
	if i := h.indexOf(key); i >= 0 {
		return h.entries[i].Val, nil
	}
	return Val{}, fmt.Errorf("%w: %v", ErrNoKey, key)
}

// Add inserts a new key at its sorted position. O(N).
// Panics if key is already present (the insertion scan detects it anyway).
func (h OrdHeap[K]) Add(key K, val Val) Heap[K] {
	assertThat(h.indexOf(key) < 0, "Add of existing key %v", key)
	return h.inserted(Entry[K]{Key: key, Val: val})
}

// Update re-inserts an existing key at the sorted position of its new
// value. O(N). Panics if key is absent.
func (h OrdHeap[K]) Update(key K, val Val) Heap[K] {
	i := h.indexOf(key)
	assertThat(i >= 0, "Update of missing key %v", key)
	return h.without(i).inserted(Entry[K]{Key: key, Val: val})
}

// Delete removes key if present. O(N). Deleting an absent key returns h
// unchanged.
func (h OrdHeap[K]) Delete(key K) Heap[K] {
	i := h.indexOf(key)
	if i < 0 {
		return h
	}
	return h.without(i)
}

// Peek returns the minimum entry: the head of the slice, O(1).
func (h OrdHeap[K]) Peek() (Entry[K], bool) {
	if len(h.entries) == 0 {
		return Entry[K]{}, false
	}
	return h.entries[0], true
}

// Pop removes and returns the head. O(1): the remaining heap shares the
// slice tail, which stays valid because no operation writes in place.
func (h OrdHeap[K]) Pop() (Entry[K], Heap[K], bool) {
	if len(h.entries) == 0 {
		return Entry[K]{}, h, false
	}
	return h.entries[0], OrdHeap[K]{entries: h.entries[1:]}, true
}

// Keys returns all keys, ascending by the entry total order.
func (h OrdHeap[K]) Keys() []K {
	keys := make([]K, len(h.entries))
	for i, e := range h.entries {
		keys[i] = e.Key
	}
	return keys
}

// ToList returns all entries, ascending by the entry total order.
func (h OrdHeap[K]) ToList() []Entry[K] {
	entries := make([]Entry[K], len(h.entries))
	copy(entries, h.entries)
	return entries
}

// ToMap returns all entries as a key→value map.
func (h OrdHeap[K]) ToMap() map[K]Val {
	m := make(map[K]Val, len(h.entries))
	for _, e := range h.entries {
		m[e.Key] = e.Val
	}
	return m
}

func (h OrdHeap[K]) indexOf(key K) int {
	for i, e := range h.entries {
		if e.Key == key {
			return i
		}
	}
	return -1
}

// inserted returns a copy of h with e placed at its sorted position.
func (h OrdHeap[K]) inserted(e Entry[K]) OrdHeap[K] {
	at := sort.Search(len(h.entries), func(i int) bool {
		return e.Less(h.entries[i])
	})
	entries := make([]Entry[K], 0, len(h.entries)+1)
	entries = append(entries, h.entries[:at]...)
	entries = append(entries, e)
	entries = append(entries, h.entries[at:]...)
	return OrdHeap[K]{entries: entries}
}

// without returns a copy of h with the entry at index i removed.
func (h OrdHeap[K]) without(i int) OrdHeap[K] {
	entries := make([]Entry[K], 0, len(h.entries)-1)
	entries = append(entries, h.entries[:i]...)
	entries = append(entries, h.entries[i+1:]...)
	return OrdHeap[K]{entries: entries}
}
