package minheap

import (
	"cmp"
	"errors"
	"fmt"
)

// --- Values ----------------------------------------------------------------

// Val is a heap value: either a finite number or the infinite value.
// The infinite value sorts above every finite number. It is a tagged type of
// its own rather than an overloaded float, so that the total order does not
// depend on floating-point special cases.
//
// The zero Val is the finite number 0.
type Val struct {
	num float64
	inf bool
}

// Infinite is the distinguished value sorting above all finite numbers.
// It is the default value for entries added without one.
var Infinite = Val{inf: true}

// Num wraps a finite number as a heap value.
func Num(x float64) Val {
	return Val{num: x}
}

// IsInfinite reports whether v is the infinite value.
func (v Val) IsInfinite() bool {
	return v.inf
}

// Finite returns the numeric value of v, together with ok=false if v is
// the infinite value.
func (v Val) Finite() (float64, bool) {
	return v.num, !v.inf
}

// Cmp compares two values, infinite sorting above every finite number.
func (v Val) Cmp(w Val) int {
	switch {
	case v.inf && w.inf:
		return 0
	case v.inf:
		return +1
	case w.inf:
		return -1
	}
	return cmp.Compare(v.num, w.num)
}

func (v Val) String() string {
	if v.inf {
		return "∞"
	}
	return fmt.Sprintf("%g", v.num)
}

// --- Entries ---------------------------------------------------------------

// Entry is a (key, value) pair stored in a heap.
type Entry[K cmp.Ordered] struct {
	Key K
	Val Val
}

// Less is the total order over entries: by value first, ties broken by key
// ascending. This order is authoritative for all three strategies; the heap
// minimum is the least entry under it.
func (e Entry[K]) Less(other Entry[K]) bool {
	if c := e.Val.Cmp(other.Val); c != 0 {
		return c < 0
	}
	return e.Key < other.Key
}

func (e Entry[K]) String() string {
	return fmt.Sprintf("⟨%v:%s⟩", e.Key, e.Val)
}

// --- Contract --------------------------------------------------------------

// ErrNoKey is returned by Fetch for a key not present in the heap.
var ErrNoKey = errors.New("minheap: no such key")

// Heap is the contract shared by the three strategies. All mutating
// operations are persistent: they return a new heap value and leave the
// receiver unchanged.
//
// Add and Update are deliberately split instead of offering a unified
// upsert: the Tree strategy cannot test key existence in O(1), and a
// combined operation would force an O(N) check onto every mutation.
// The caller owns the precondition; a strategy checks it only where the
// check is O(1) or falls out of the operation anyway (see the individual
// strategies).
type Heap[K cmp.Ordered] interface {
	// Size returns the number of entries.
	Size() int

	// HasKey reports whether key is present.
	HasKey(key K) bool

	// Get returns the value for key, or def if key is absent.
	Get(key K, def Val) Val

	// Fetch returns the value for key, or an error wrapping ErrNoKey.
	Fetch(key K) (Val, error)

	// Add inserts a new key. The key must not already be present; a
	// strategy may panic on violation, but only the Map and Ord
	// strategies detect it (the Tree strategy would need a full
	// traversal and deliberately does not check).
	Add(key K, val Val) Heap[K]

	// Update changes the value of an existing key. The key must be
	// present; all strategies detect absence and panic.
	Update(key K, val Val) Heap[K]

	// Delete removes key if present; deleting an absent key is a no-op,
	// not an error.
	Delete(key K) Heap[K]

	// Peek returns the minimum entry without mutating, with ok=false for
	// an empty heap.
	Peek() (Entry[K], bool)

	// Pop removes and returns the minimum entry together with the
	// remaining heap, with ok=false for an empty heap.
	Pop() (Entry[K], Heap[K], bool)

	// Keys returns all keys, in no particular order.
	Keys() []K

	// ToList returns all entries, in no particular order.
	ToList() []Entry[K]

	// ToMap returns all entries as a key→value map.
	ToMap() map[K]Val
}

// --- Construction ----------------------------------------------------------

// NewMap returns an empty heap backed by the Map strategy.
func NewMap[K cmp.Ordered]() Heap[K] {
	return MapHeap[K]{}
}

// NewOrd returns an empty heap backed by the Ord strategy.
func NewOrd[K cmp.Ordered]() Heap[K] {
	return OrdHeap[K]{}
}

// NewTree returns an empty heap backed by the Tree strategy.
func NewTree[K cmp.Ordered]() Heap[K] {
	return TreeHeap[K]{}
}

// NewMapFrom bulk-loads a Map-backed heap by repeated Add: O(N).
func NewMapFrom[K cmp.Ordered](m map[K]Val) Heap[K] {
	return addAll(NewMap[K](), m)
}

// NewOrdFrom bulk-loads an Ord-backed heap by repeated Add: O(N²).
// For large inputs prefer the Map or Tree strategies.
func NewOrdFrom[K cmp.Ordered](m map[K]Val) Heap[K] {
	return addAll(NewOrd[K](), m)
}

// NewTreeFrom bulk-loads a Tree-backed heap by repeated Add: O(N log N).
func NewTreeFrom[K cmp.Ordered](m map[K]Val) Heap[K] {
	return addAll(NewTree[K](), m)
}

func addAll[K cmp.Ordered](h Heap[K], m map[K]Val) Heap[K] {
	for k, v := range m {
		h = h.Add(k, v)
	}
	return h
}

// --- Helpers ---------------------------------------------------------------

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("minheap: "+msg, msgargs...)
		panic(msg)
	}
}
