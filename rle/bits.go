package rle

import (
	"fmt"
	"math/bits"
)

// bitBuf is a bit string backed by uint64 words. Bits are addressed from 0
// and packed least-significant-first within each word. A buffer is
// append-only while a run is encoded and read-only once the run is sealed
// into a sequence.
type bitBuf struct {
	words []uint64
	n     int // bits in use
}

// len returns the number of bits in the buffer.
func (b bitBuf) len() int {
	return b.n
}

// append writes the low width bits of v at the end of the buffer.
func (b *bitBuf) append(v uint64, width int) {
	assertThat(width > 0 && width <= 64, "bit width out of range: %d", width)
	v &= mask(width)
	word, off := b.n/64, b.n%64
	for len(b.words) <= (b.n+width-1)/64 {
		b.words = append(b.words, 0)
	}
	b.words[word] |= v << off
	if off+width > 64 {
		b.words[word+1] |= v >> (64 - off)
	}
	b.n += width
}

// read returns width bits starting at bit offset off.
func (b bitBuf) read(off, width int) uint64 {
	assertThat(off >= 0 && width > 0 && off+width <= b.n,
		"bit read out of range: %d+%d of %d", off, width, b.n)
	word, shift := off/64, off%64
	v := b.words[word] >> shift
	if shift+width > 64 {
		v |= b.words[word+1] << (64 - shift)
	}
	return v & mask(width)
}

func mask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return 1<<width - 1
}

// widthOf returns the number of bits needed for the unsigned value d.
func widthOf(d uint64) int {
	return bits.Len64(d)
}

// --- Helpers ---------------------------------------------------------------

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("rle: "+msg, msgargs...)
		panic(msg)
	}
}
