package rle

// Iter is a position in a sequence. Like the sequences themselves it is a
// value: Next returns the advanced iterator rather than moving in place,
// so an iterator can be kept and resumed from any point.
type Iter struct {
	segs []segment
	seg  int // current segment
	off  int // next value within a run segment
}

// Iter returns an iterator at the head of the sequence.
func (s Seq) Iter() Iter {
	return Iter{segs: s.segs}
}

// Next returns the value under the iterator and the iterator advanced past
// it, with ok=false when the sequence is exhausted. Amortized O(1): raw
// segments are read directly and runs unpack one offset per call.
func (it Iter) Next() (int64, Iter, bool) {
	if it.seg >= len(it.segs) {
		return 0, it, false
	}
	sg := it.segs[it.seg]
	if sg.run == nil {
		return sg.raw, Iter{segs: it.segs, seg: it.seg + 1}, true
	}
	v := sg.run.at(it.off)
	if it.off+1 == sg.run.count {
		return v, Iter{segs: it.segs, seg: it.seg + 1}, true
	}
	return v, Iter{segs: it.segs, seg: it.seg, off: it.off + 1}, true
}
