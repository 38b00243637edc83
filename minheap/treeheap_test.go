package minheap

import (
	"cmp"
	"fmt"
	"math/rand"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	tp "github.com/xlab/treeprint"
)

func TestTreeEmpty(t *testing.T) {
	h := TreeHeap[int]{}
	if h.Size() != 0 {
		t.Errorf("expected empty tree heap to have size 0, has %d", h.Size())
	}
	if _, ok := h.Peek(); ok {
		t.Error("expected Peek on empty tree heap to report empty, didn't")
	}
	if _, _, ok := h.Pop(); ok {
		t.Error("expected Pop on empty tree heap to report empty, didn't")
	}
}

func TestTreeAddSingle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "exa.minheap")
	defer teardown()
	//
	h := TreeHeap[int]{}.Add(7, Num(7)).(TreeHeap[int])
	if h.root == nil || h.root.left != nil {
		t.Fatalf("expected single add to produce a leaf root, got %s", h.root)
	}
	if e, ok := h.Peek(); !ok || e.Key != 7 {
		t.Errorf("expected Peek to return key 7, got %s", e)
	}
}

func TestTreeAddBubblesToRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "exa.minheap")
	defer teardown()
	//
	h := treeOf(t, 9, 8, 7, 6, 5, 4, 3, 2, 1)
	if e, _ := h.Peek(); e.Key != 1 {
		t.Logf("heap =%s", printHeap(h))
		t.Errorf("expected descending adds to bubble 1 to the root, root is %s", h.root.entry)
	}
	if err := h.Validate(); err != nil {
		t.Logf("heap =%s", printHeap(h))
		t.Errorf("tree heap inconsistent after adds: %v", err)
	}
}

func TestTreeShapeStaysComplete(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "exa.minheap")
	defer teardown()
	//
	var h TreeHeap[int]
	for i := 1; i <= 33; i++ {
		h = h.Add(i*13%97, Num(float64(i*13%97))).(TreeHeap[int])
		if err := h.Validate(); err != nil {
			t.Logf("heap =%s", printHeap(h))
			t.Fatalf("tree heap inconsistent after %d adds: %v", i, err)
		}
	}
	if h.Size() != 33 {
		t.Errorf("expected 33 entries, have %d", h.Size())
	}
}

func TestTreePopDrainsSorted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "exa.minheap")
	defer teardown()
	//
	rng := rand.New(rand.NewSource(42))
	var h Heap[int] = TreeHeap[int]{}
	for k := 1; k <= 50; k++ {
		v := float64(rng.Intn(20)) // collisions on purpose
		h = h.Add(k, Num(v))
	}
	var prev Entry[int]
	for i := 0; h.Size() > 0; i++ {
		e, rest, ok := h.Pop()
		if !ok {
			t.Fatal("expected Pop on non-empty heap to succeed, didn't")
		}
		if i > 0 && e.Less(prev) {
			t.Fatalf("pop %d out of order: %s after %s", i, e, prev)
		}
		if err := rest.(TreeHeap[int]).Validate(); err != nil {
			t.Fatalf("tree heap inconsistent after pop %d: %v", i, err)
		}
		prev, h = e, rest
	}
}

func TestTreeUpdateDecrease(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "exa.minheap")
	defer teardown()
	//
	h := treeOf(t, 10, 20, 30, 40, 50, 60, 70)
	g := h.Update(70, Num(5))
	if e, _ := g.Peek(); e.Key != 70 {
		t.Errorf("expected decreased key 70 to bubble to the root, root is %s", e)
	}
	if err := g.(TreeHeap[int]).Validate(); err != nil {
		t.Errorf("tree heap inconsistent after decrease: %v", err)
	}
	// the original incarnation is untouched
	if e, _ := h.Peek(); e.Key != 10 {
		t.Errorf("expected original heap root to stay key 10, is %s", e)
	}
}

func TestTreeUpdateIncrease(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "exa.minheap")
	defer teardown()
	//
	h := treeOf(t, 10, 20, 30, 40, 50, 60, 70)
	g := h.Update(10, Num(99))
	if e, _ := g.Peek(); e.Key != 20 {
		t.Errorf("expected key 20 at the root after increasing key 10, root is %s", e)
	}
	if v, err := g.Fetch(10); err != nil || v.Cmp(Num(99)) != 0 {
		t.Errorf("expected key 10 to hold 99 after update, holds %s (err %v)", v, err)
	}
	if err := g.(TreeHeap[int]).Validate(); err != nil {
		t.Errorf("tree heap inconsistent after increase: %v", err)
	}
}

func TestTreeUpdateMissingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Update of a missing key to panic, didn't")
		}
	}()
	treeOf(t, 1, 2, 3).Update(99, Num(0))
}

func TestTreeDelete(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "exa.minheap")
	defer teardown()
	//
	h := treeOf(t, 5, 3, 8, 1, 9, 7, 2)
	for _, k := range []int{8, 1, 9} {
		g := h.Delete(k).(TreeHeap[int])
		if g.HasKey(k) {
			t.Errorf("expected key %d to be gone after Delete, isn't", k)
		}
		if g.Size() != h.Size()-1 {
			t.Errorf("expected size %d after Delete, is %d", h.Size()-1, g.Size())
		}
		if err := g.Validate(); err != nil {
			t.Logf("heap =%s", printHeap(g))
			t.Errorf("tree heap inconsistent after Delete(%d): %v", k, err)
		}
		h = g
	}
}

func TestTreeDeleteAbsentIsNoop(t *testing.T) {
	h := treeOf(t, 1, 2, 3)
	g := h.Delete(99)
	if g.Size() != 3 {
		t.Errorf("expected Delete of absent key to keep size 3, is %d", g.Size())
	}
}

func TestTreeDeleteLastPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "exa.minheap")
	defer teardown()
	//
	h := treeOf(t, 1, 2, 3, 4, 5)
	// position 5 holds the entry that arrived last without displacing anyone
	_, last := h.unzipTo(5)
	g := h.Delete(last.entry.Key).(TreeHeap[int])
	if err := g.Validate(); err != nil {
		t.Errorf("tree heap inconsistent after deleting the last position: %v", err)
	}
	if g.Size() != 4 {
		t.Errorf("expected size 4, is %d", g.Size())
	}
}

func TestTreeGetFetchHasKey(t *testing.T) {
	h := treeOf(t, 4, 2, 6)
	if !h.HasKey(6) || h.HasKey(5) {
		t.Error("HasKey misreports membership")
	}
	if v := h.Get(5, Num(-1)); v.Cmp(Num(-1)) != 0 {
		t.Errorf("expected Get of absent key to return the default, got %s", v)
	}
	if _, err := h.Fetch(5); err == nil {
		t.Error("expected Fetch of absent key to fail, didn't")
	}
	if v, err := h.Fetch(2); err != nil || v.Cmp(Num(2)) != 0 {
		t.Errorf("expected Fetch(2) to return 2, got %s (err %v)", v, err)
	}
}

func TestTreeValidateDetectsOrderViolation(t *testing.T) {
	// hand-built broken tree: parent larger than child
	root := &tnode[int]{
		entry: Entry[int]{Key: 1, Val: Num(10)},
		left:  &tnode[int]{entry: Entry[int]{Key: 2, Val: Num(3)}},
	}
	h := TreeHeap[int]{root: root, size: 2}
	if err := h.Validate(); err == nil {
		t.Error("expected Validate to flag a heap-order violation, didn't")
	}
}

func TestTreeValidateDetectsGap(t *testing.T) {
	// right child without a left child breaks the layer-fill rule
	root := &tnode[int]{
		entry: Entry[int]{Key: 1, Val: Num(1)},
		right: &tnode[int]{entry: Entry[int]{Key: 2, Val: Num(2)}},
	}
	h := TreeHeap[int]{root: root, size: 2}
	if err := h.Validate(); err == nil {
		t.Error("expected Validate to flag the missing left child, didn't")
	}
}

func TestTreeValidateDetectsSizeDrift(t *testing.T) {
	h := treeOf(t, 1, 2, 3)
	h.size = 5
	if err := h.Validate(); err == nil {
		t.Error("expected Validate to flag the size counter, didn't")
	}
}

func TestTreeValidateDetectsDuplicateKey(t *testing.T) {
	// Add does not check for duplicates; Validate must see them
	h := treeOf(t, 1, 2).Add(1, Num(9)).(TreeHeap[int])
	if err := h.Validate(); err == nil {
		t.Error("expected Validate to flag the duplicate key, didn't")
	}
}

func TestTreeStructuralSharing(t *testing.T) {
	h := treeOf(t, 1, 2, 3, 4, 5, 6, 7)
	g := h.Add(8, Num(8)).(TreeHeap[int])
	// position 8 extends the leftmost path; the root's right subtree is
	// shared untouched between the two incarnations
	if g.root.right != h.root.right {
		t.Error("expected the right subtree to be shared after Add, isn't")
	}
}

// ---------------------------------------------------------------------------

// treeOf builds a Tree-backed heap where each key doubles as its own value.
func treeOf(t *testing.T, keys ...int) TreeHeap[int] {
	t.Helper()
	var h Heap[int] = TreeHeap[int]{}
	for _, k := range keys {
		h = h.Add(k, Num(float64(k)))
	}
	return h.(TreeHeap[int])
}

// ---------------------------------------------------------------------------

func printHeap[K cmp.Ordered](h TreeHeap[K]) string {
	header := fmt.Sprintf("\nTreeHeap(size=%d)\n", h.size)
	p := tp.New()
	ppn(p, h.root)
	return header + p.String() + "\n"
}

func ppn[K cmp.Ordered](p tp.Tree, n *tnode[K]) {
	if n == nil {
		return
	}
	if n.left == nil && n.right == nil {
		p.AddNode(n.entry.String())
		return
	}
	branch := p.AddBranch(n.entry.String())
	ppn(branch, n.left)
	ppn(branch, n.right)
}
