package minheap

import (
	"cmp"
	"fmt"

	"cloudeng.io/errors"
)

// TreeHeap is the Tree strategy: a persistent complete binary tree holding
// the min-heap property, navigated by address-calculated cursor zippers.
// Add, Pop and Peek are O(log N). Update, Delete and key lookups are O(N):
// the tree is purely positional and keeps no key index, which keeps
// structural sharing simple and mutation cheap.
//
// Every mutation rebuilds only the path from the root to the touched
// position; all other subtrees are shared with the previous incarnation.
type TreeHeap[K cmp.Ordered] struct {
	root *tnode[K]
	size int
}

// tnode is a tree node. A nil *tnode is the empty tree. A node with no
// children is a leaf. A branch always has a left child; its right child may
// be empty only at the boundary between the complete and incomplete layers.
type tnode[K cmp.Ordered] struct {
	entry       Entry[K]
	left, right *tnode[K]
}

var _ Heap[int] = TreeHeap[int]{}

// Size returns the number of entries.
func (h TreeHeap[K]) Size() int {
	return h.size
}

// HasKey reports whether key is present. O(N): full traversal.
func (h TreeHeap[K]) HasKey(key K) bool {
	return h.root.find(key) != nil
}

// Get returns the value for key, or def if key is absent. O(N).
func (h TreeHeap[K]) Get(key K, def Val) Val {
	if n := h.root.find(key); n != nil {
		return n.entry.Val
	}
	return def
}

// Fetch returns the value for key, or an error wrapping ErrNoKey. O(N).
func (h TreeHeap[K]) Fetch(key K) (Val, error) {
	if n := h.root.find(key); n != nil {
		return n.entry.Val, nil
	}
	return Val{}, fmt.Errorf("%w: %v", ErrNoKey, key)
}

// Add inserts a new key in O(log N): unzip to the address of position
// size+1, then zip the new leaf back up, bubbling it towards the root past
// every larger ancestor.
//
// Add does NOT check that key is absent — detection would cost a full O(N)
// traversal and defeat the point of this strategy. Adding a duplicate key
// silently corrupts the heap; the precondition is the caller's to keep.
func (h TreeHeap[K]) Add(key K, val Val) Heap[K] {
	e := Entry[K]{Key: key, Val: val}
	cur, _ := h.unzipTo(h.size + 1)
	tracer().Debugf("add %s: cursor = %s", e, cur)
	root := cur.foldR(bubble[K], &tnode[K]{entry: e})
	return TreeHeap[K]{root: root, size: h.size + 1}
}

// Update changes the value of an existing key. O(N): the key has to be
// located by a full unzip-by-key traversal, which also means absence is
// always detected — Update panics on a missing key.
func (h TreeHeap[K]) Update(key K, val Val) Heap[K] {
	cur, n, found := h.root.unzipKey(key, nil)
	assertThat(found, "Update of missing key %v", key)
	tracer().Debugf("update %v to %s: cursor = %s", key, val, cur)
	root := replaceAt(cur, n, Entry[K]{Key: key, Val: val})
	return TreeHeap[K]{root: root, size: h.size}
}

// Delete removes key if present, O(N). Deleting an absent key returns h
// unchanged. The last-position entry is extracted as in Pop and overwrites
// the target's node, re-heapifying up or down from there.
func (h TreeHeap[K]) Delete(key K) Heap[K] {
	if h.root.find(key) == nil {
		return h
	}
	if h.size == 1 {
		return TreeHeap[K]{}
	}
	last, root := h.detachLast()
	if last.Key == key { // target was the last position itself
		return TreeHeap[K]{root: root, size: h.size - 1}
	}
	// second traversal: the tree changed shape, the first cursor is stale
	cur, n, found := root.unzipKey(key, nil)
	assertThat(found, "key %v vanished during Delete", key)
	tracer().Debugf("delete %v, filling with %s: cursor = %s", key, last, cur)
	return TreeHeap[K]{root: replaceAt(cur, n, last), size: h.size - 1}
}

// Peek returns the root entry in O(1).
func (h TreeHeap[K]) Peek() (Entry[K], bool) {
	if h.root == nil {
		return Entry[K]{}, false
	}
	return h.root.entry, true
}

// Pop removes and returns the root entry in O(log N): detach the
// last-position leaf, move its entry to the root, and sift it down until
// the heap order holds again.
func (h TreeHeap[K]) Pop() (Entry[K], Heap[K], bool) {
	switch h.size {
	case 0:
		return Entry[K]{}, h, false
	case 1:
		return h.root.entry, TreeHeap[K]{}, true
	case 2:
		return h.root.entry, TreeHeap[K]{root: h.root.left, size: 1}, true
	}
	popped := h.root.entry
	last, root := h.detachLast()
	return popped, TreeHeap[K]{root: root.sift(last), size: h.size - 1}, true
}

// Keys returns all keys in preorder.
func (h TreeHeap[K]) Keys() []K {
	keys := make([]K, 0, h.size)
	h.root.walk(func(e Entry[K]) {
		keys = append(keys, e.Key)
	})
	return keys
}

// ToList returns all entries in preorder.
func (h TreeHeap[K]) ToList() []Entry[K] {
	entries := make([]Entry[K], 0, h.size)
	h.root.walk(func(e Entry[K]) {
		entries = append(entries, e)
	})
	return entries
}

// ToMap returns all entries as a key→value map.
func (h TreeHeap[K]) ToMap() map[K]Val {
	m := make(map[K]Val, h.size)
	h.root.walk(func(e Entry[K]) {
		m[e.Key] = e.Val
	})
	return m
}

// --- Unzip / zip internals -------------------------------------------------

// unzipTo walks the address of the 1-based position pos, opening a frame at
// every branch on the way, and returns the cursor together with the node at
// pos (nil when pos extends the tree by one).
func (h TreeHeap[K]) unzipTo(pos int) (cursor[K], *tnode[K]) {
	assertThat(pos <= h.size+1, "position %d beyond tree fringe (size %d)", pos, h.size)
	var cur cursor[K]
	n := h.root
	for i := 0; i < addrLen(pos); i++ {
		assertThat(n != nil, "address of position %d runs off the tree", pos)
		right := addrBit(pos, i)
		f := frame[K]{entry: n.entry, right: right}
		if right {
			f.other = n.left
			n = n.right
		} else {
			f.other = n.right
			n = n.left
		}
		cur = append(cur, f)
	}
	return cur, n
}

// unzipKey locates key by depth-first traversal, building the cursor to the
// node holding it.
func (n *tnode[K]) unzipKey(key K, cur cursor[K]) (cursor[K], *tnode[K], bool) {
	if n == nil {
		return cur, nil, false
	}
	if n.entry.Key == key {
		return cur, n, true
	}
	down, hit, found := n.left.unzipKey(key, append(cur, frame[K]{entry: n.entry, other: n.right}))
	if found {
		return down, hit, true
	}
	return n.right.unzipKey(key, append(cur, frame[K]{entry: n.entry, other: n.left, right: true}))
}

// detachLast removes the leaf at the last occupied position and zips the
// remaining path back together. Requires size ≥ 2.
func (h TreeHeap[K]) detachLast() (Entry[K], *tnode[K]) {
	cur, last := h.unzipTo(h.size)
	assertThat(last != nil && last.left == nil, "last position is not a leaf")
	return last.entry, cur.foldR(seam[K], nil)
}

// replaceAt overwrites the entry of node n (located by cur) with e and
// restores the heap order: a value that did not grow can only violate the
// order towards the root, so it bubbles up through the cursor; a larger
// value is sifted down inside n's subtree and the cursor zips back
// unchanged.
func replaceAt[K cmp.Ordered](cur cursor[K], n *tnode[K], e Entry[K]) *tnode[K] {
	if !n.entry.Less(e) { // e ≤ old entry
		return cur.foldR(bubble[K], &tnode[K]{entry: e, left: n.left, right: n.right})
	}
	return cur.foldR(seam[K], n.sift(e))
}

// sift places entry e at the position of n and pushes it down, swapping
// with the smaller child until the heap order holds. n's own entry is
// discarded; the caller has moved it elsewhere. Only the visited path is
// reallocated.
func (n *tnode[K]) sift(e Entry[K]) *tnode[K] {
	if n.left == nil {
		return &tnode[K]{entry: e}
	}
	small, right := n.left, false
	if n.right != nil && n.right.entry.Less(n.left.entry) {
		small, right = n.right, true
	}
	if !small.entry.Less(e) {
		return &tnode[K]{entry: e, left: n.left, right: n.right}
	}
	if right {
		return &tnode[K]{entry: small.entry, left: n.left, right: n.right.sift(e)}
	}
	return &tnode[K]{entry: small.entry, left: n.left.sift(e), right: n.right}
}

// find returns the node holding key, or nil. Full traversal; values give no
// guidance on where a key lives.
func (n *tnode[K]) find(key K) *tnode[K] {
	if n == nil {
		return nil
	}
	if n.entry.Key == key {
		return n
	}
	if hit := n.left.find(key); hit != nil {
		return hit
	}
	return n.right.find(key)
}

func (n *tnode[K]) walk(visit func(Entry[K])) {
	if n == nil {
		return
	}
	visit(n.entry)
	n.left.walk(visit)
	n.right.walk(visit)
}

// --- Consistency check -----------------------------------------------------

// Validate traverses the whole tree and reports every violation of the
// heap-order property, the complete layer-fill shape, the size counter, or
// key uniqueness. It is meant for tests and debugging, not for steady-state
// use; a non-nil result means a bug in this package, not caller error.
func (h TreeHeap[K]) Validate() error {
	errs := errors.M{}
	seen := map[K]int{}
	count := 0
	// layer-order sweep: once an empty slot shows up, every later slot
	// must be empty too, otherwise the tree is not left-packed
	queue := []*tnode[K]{h.root}
	gap := false
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n == nil {
			gap = true
			continue
		}
		if gap {
			errs.Append(fmt.Errorf("node %s sits after an empty slot in layer order", n.entry))
		}
		count++
		seen[n.entry.Key]++
		if n.left != nil && n.left.entry.Less(n.entry) {
			errs.Append(fmt.Errorf("heap order violated: %s above %s", n.entry, n.left.entry))
		}
		if n.right != nil && n.right.entry.Less(n.entry) {
			errs.Append(fmt.Errorf("heap order violated: %s above %s", n.entry, n.right.entry))
		}
		if n.left == nil && n.right != nil {
			errs.Append(fmt.Errorf("branch %s has a right child but no left child", n.entry))
		}
		queue = append(queue, n.left, n.right)
	}
	if count != h.size {
		errs.Append(fmt.Errorf("size counter is %d, tree holds %d entries", h.size, count))
	}
	for k, c := range seen {
		if c > 1 {
			errs.Append(fmt.Errorf("key %v appears %d times", k, c))
		}
	}
	return errs.Err()
}

func (n *tnode[K]) String() string {
	if n == nil {
		return "·"
	}
	if n.left == nil && n.right == nil {
		return n.entry.String()
	}
	return fmt.Sprintf("%s(%s %s)", n.entry, n.left, n.right)
}
