package minheap

import (
	"cmp"
	"fmt"
	"math/bits"
	"strings"
)

// The Tree strategy reaches a node by its 1-based position in layer order
// (the root is 1, its children 2 and 3, and so on, left to right). The
// left/right path from the root to position pos — its binary address — is
// computable from pos alone: drop the most significant bit of pos, and the
// remaining bits, highest first, spell the turns (0 = left, 1 = right).

// addrLen returns the number of turns from the root to position pos,
// i.e. the layer of pos.
func addrLen(pos int) int {
	assertThat(pos > 0, "positions are 1-based, got %d", pos)
	return bits.Len(uint(pos)) - 1
}

// addrBit reports whether the i-th turn (0 = first turn below the root) on
// the way to position pos goes right.
func addrBit(pos, i int) bool {
	return pos&(1<<(addrLen(pos)-1-i)) != 0
}

// --- Frame -----------------------------------------------------------------

// frame is one open branch on a cursor: the entry at that level, the child
// not on the path, and which child slot is open.
type frame[K cmp.Ordered] struct {
	entry Entry[K]
	other *tnode[K] // sibling subtree off the path; nil at the tree fringe
	right bool      // true ⇒ the right child slot is open
}

func (f frame[K]) String() string {
	if f.right {
		return fmt.Sprintf("%s↘", f.entry)
	}
	return fmt.Sprintf("%s↙", f.entry)
}

// close rebuilds the branch node for f with child in the open slot.
func (f frame[K]) close(child *tnode[K]) *tnode[K] {
	if f.right {
		return &tnode[K]{entry: f.entry, left: f.other, right: child}
	}
	return &tnode[K]{entry: f.entry, left: child, right: f.other}
}

// --- Cursor ----------------------------------------------------------------

// cursor is the path of open frames from the root down to a target node.
// It is transient: built by an unzip, consumed by a zip, never stored.
type cursor[K cmp.Ordered] []frame[K]

func (cur cursor[K]) String() string {
	var sb = strings.Builder{}
	sb.WriteRune('[')
	for _, f := range cur {
		sb.WriteString(fmt.Sprintf("⟨%s⟩", f))
	}
	sb.WriteRune(']')
	return sb.String()
}

// foldR applies f on pairs (frame, subtree) from the bottom of the cursor
// up to the root, threading the rebuilt subtree. zero is the subtree for
// the deepest open slot; the final result is the new root.
func (cur cursor[K]) foldR(f func(frame[K], *tnode[K]) *tnode[K], zero *tnode[K]) *tnode[K] {
	r := zero
	for i := len(cur) - 1; i >= 0; i-- {
		r = f(cur[i], r)
	}
	return r
}

// seam closes a frame around child without reordering, the plain zip step.
func seam[K cmp.Ordered](f frame[K], child *tnode[K]) *tnode[K] {
	return f.close(child)
}

// bubble is the insert-zip step: the smaller of the frame entry and the
// child's root entry stays on top, the larger sinks into the open slot.
// Sinking the frame entry onto the child's children is safe: both were its
// descendants before the unzip, so it is ≤ everything below them.
func bubble[K cmp.Ordered](f frame[K], child *tnode[K]) *tnode[K] {
	if child != nil && child.entry.Less(f.entry) {
		sunk := &tnode[K]{entry: f.entry, left: child.left, right: child.right}
		f.entry = child.entry
		return f.close(sunk)
	}
	return f.close(child)
}
