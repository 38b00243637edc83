package rle

import (
	"fmt"

	"cloudeng.io/errors"
)

const (
	// minWidth is the narrowest offset width, and also the size of the
	// run header, which stores width-minWidth.
	minWidth = 4
	// maxWidth is the widest offset width expressible in the header.
	maxWidth = 19
	// minRun is the shortest stretch worth packing into a run.
	minRun = 3
)

// Seq is an immutable sequence of integers, stored as a mix of raw values
// and delta-compressed runs. The zero Seq is the empty sequence.
type Seq struct {
	segs []segment
	size int
}

// segment is one element of a sequence body: a single raw value, or a
// packed run when run is non-nil.
type segment struct {
	raw int64
	run *run
}

// run is a packed stretch: the minimum of the stretch plus every value's
// offset from it, bit-packed at a fixed width. The width sits in a 4-bit
// header at the front of the buffer.
type run struct {
	min   int64
	count int
	buf   bitBuf
}

func (r *run) width() int {
	return int(r.buf.read(0, minWidth)) + minWidth
}

// at unpacks the i-th value of the run.
func (r *run) at(i int) int64 {
	assertThat(i >= 0 && i < r.count, "run index out of bounds: %d of %d", i, r.count)
	w := r.width()
	return r.min + int64(r.buf.read(minWidth+i*w, w))
}

// --- Construction ----------------------------------------------------------

// From encodes xs into a sequence. Encoding is greedy and deterministic:
// the first value stays raw; after that, consecutive values accumulate into
// a window as long as their span still fits a packable width, and a window
// of at least three values becomes a run when it closes.
func From(xs []int64) Seq {
	var b builder
	for _, x := range xs {
		b.push(x)
	}
	return b.seq()
}

// builder streams values into segments. From, Map and Zip all feed one;
// none of them ever hold more than the open window in memory.
type builder struct {
	segs    []segment
	size    int
	pending []int64
	lo, hi  int64
	started bool // the leading raw value has been emitted
}

func (b *builder) push(v int64) {
	b.size++
	if !b.started {
		b.started = true
		b.segs = append(b.segs, segment{raw: v})
		return
	}
	if len(b.pending) == 0 {
		b.pending = append(b.pending, v)
		b.lo, b.hi = v, v
		return
	}
	lo, hi := min(b.lo, v), max(b.hi, v)
	if widthOf(uint64(hi-lo)) <= maxWidth {
		b.pending = append(b.pending, v)
		b.lo, b.hi = lo, hi
		return
	}
	tracer().Debugf("value %d breaks the window [%d…%d], flushing %d pending", v, b.lo, b.hi, len(b.pending))
	b.flush()
	b.pending = append(b.pending, v)
	b.lo, b.hi = v, v
}

// flush closes the open window: a run if it is long enough, raw segments
// otherwise.
func (b *builder) flush() {
	if len(b.pending) < minRun {
		for _, v := range b.pending {
			b.segs = append(b.segs, segment{raw: v})
		}
		b.pending = b.pending[:0]
		return
	}
	width := widthOf(uint64(b.hi - b.lo))
	if width < minWidth {
		width = minWidth
	}
	var buf bitBuf
	buf.append(uint64(width-minWidth), minWidth)
	for _, v := range b.pending {
		buf.append(uint64(v-b.lo), width)
	}
	tracer().Debugf("sealed run of %d values, min %d, %d bits each", len(b.pending), b.lo, width)
	b.segs = append(b.segs, segment{run: &run{min: b.lo, count: len(b.pending), buf: buf}})
	b.pending = b.pending[:0]
}

func (b *builder) seq() Seq {
	b.flush()
	return Seq{segs: b.segs, size: b.size}
}

// --- API -------------------------------------------------------------------

// Size returns the number of values in the sequence.
func (s Seq) Size() int {
	return s.size
}

// Head returns the first value without unpacking anything; it is always
// stored raw. ok=false for the empty sequence.
func (s Seq) Head() (int64, bool) {
	if s.size == 0 {
		return 0, false
	}
	return s.segs[0].raw, true
}

// At returns the i-th value. Finding the segment is linear in the number
// of segments; access within a run is O(1).
func (s Seq) At(i int) int64 {
	assertThat(i >= 0 && i < s.size, "sequence index out of bounds: %d with size %d", i, s.size)
	for _, sg := range s.segs {
		if sg.run == nil {
			if i == 0 {
				return sg.raw
			}
			i--
			continue
		}
		if i < sg.run.count {
			return sg.run.at(i)
		}
		i -= sg.run.count
	}
	panic("rle: segment sizes do not add up to the sequence size")
}

// ToList unpacks the whole sequence into a slice.
func (s Seq) ToList() []int64 {
	out := make([]int64, 0, s.size)
	for it := s.Iter(); ; {
		v, next, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, v)
		it = next
	}
}

// Map returns a new sequence holding f of every value. The result is
// re-encoded on the fly, segment by segment; the input is never unpacked
// into a full slice.
func (s Seq) Map(f func(int64) int64) Seq {
	var b builder
	for it := s.Iter(); ; {
		v, next, ok := it.Next()
		if !ok {
			return b.seq()
		}
		b.push(f(v))
		it = next
	}
}

// Zip combines two sequences pointwise with f, stopping at the shorter
// one. Like Map it streams and re-encodes without materializing either
// input.
func (s Seq) Zip(other Seq, f func(x, y int64) int64) Seq {
	var b builder
	it, jt := s.Iter(), other.Iter()
	for {
		x, ni, ok := it.Next()
		if !ok {
			return b.seq()
		}
		y, nj, ok := jt.Next()
		if !ok {
			return b.seq()
		}
		b.push(f(x, y))
		it, jt = ni, nj
	}
}

// Reduce folds f over the values of s from the left.
func Reduce[A any](s Seq, zero A, f func(A, int64) A) A {
	acc := zero
	for it := s.Iter(); ; {
		v, next, ok := it.Next()
		if !ok {
			return acc
		}
		acc = f(acc, v)
		it = next
	}
}

// Validate checks the structural invariants of the sequence encoding and
// reports every violation. Meant for tests and debugging; a non-nil result
// means a bug in this package.
func (s Seq) Validate() error {
	errs := errors.M{}
	count := 0
	for i, sg := range s.segs {
		if sg.run == nil {
			count++
			continue
		}
		if i == 0 {
			errs.Append(fmt.Errorf("segment 0 is a run; the first value must be raw"))
		}
		r := sg.run
		if r.count < minRun {
			errs.Append(fmt.Errorf("segment %d is a run of only %d values", i, r.count))
		}
		w := r.width()
		if w < minWidth || w > maxWidth {
			errs.Append(fmt.Errorf("segment %d has offset width %d outside %d…%d", i, w, minWidth, maxWidth))
		}
		if want := minWidth + r.count*w; r.buf.len() != want {
			errs.Append(fmt.Errorf("segment %d buffer holds %d bits, want %d", i, r.buf.len(), want))
		}
		count += r.count
	}
	if count != s.size {
		errs.Append(fmt.Errorf("segments hold %d values, size says %d", count, s.size))
	}
	return errs.Err()
}

func (s Seq) String() string {
	out := "["
	for i, sg := range s.segs {
		if i > 0 {
			out += " "
		}
		if sg.run == nil {
			out += fmt.Sprintf("%d", sg.raw)
		} else {
			out += fmt.Sprintf("run(%d+%d×%db)", sg.run.min, sg.run.count, sg.run.width())
		}
	}
	return out + "]"
}
