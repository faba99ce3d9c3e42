package arith

import (
	"math/bits"
	"sort"

	"github.com/liamwilbur/lmzip/internal/bitio"
)

// Decoder is the symmetric inverse of Encoder: it reads from a bit source
// and locates the symbol whose cumulative interval contains the current
// code value.
type Decoder struct {
	low, high, code uint64
	source          *bitio.Source
}

// NewDecoder initializes a Decoder over data, priming its code register by
// reading 64 bits MSB-first. Reads past the end of data are zero-padded.
func NewDecoder(data []byte) *Decoder {
	d := &Decoder{
		low:    0,
		high:   fullMask,
		source: bitio.NewSource(data),
	}
	for i := 0; i < stateBits; i++ {
		d.code = (d.code << 1) | uint64(d.source.ReadBit())
	}
	return d
}

// DecodeSymbol returns the symbol whose cumulative-frequency interval
// contains the decoder's current code value, and advances the interval and
// code register exactly as the matching Encoder.EncodeSymbol call did.
func (d *Decoder) DecodeSymbol(cumFreqs []uint64) int {
	total := cumFreqs[len(cumFreqs)-1]
	r := d.high - d.low + 1
	sym := locateSymbol(cumFreqs, d.code-d.low, total, r)

	lo, hi := cumBounds(cumFreqs, sym)
	d.low, d.high = narrow(d.low, d.high, lo, hi, total)

	for (d.low^d.high)&halfRange == 0 {
		d.code = ((d.code << 1) & fullMask) | uint64(d.source.ReadBit())
		d.low = (d.low << 1) & fullMask
		d.high = ((d.high << 1) & fullMask) | 1
	}

	for d.low&^d.high&quarterRange != 0 {
		// Preserve the top bit, fold out bit B-2, and shift in a new low
		// bit: the code-register analogue of the interval's E3 transform.
		d.code = (d.code & halfRange) | ((d.code << 1) & (fullMask >> 1)) | uint64(d.source.ReadBit())
		d.low = (d.low << 1) ^ halfRange
		d.high = ((d.high ^ halfRange) << 1) | halfRange | 1
	}

	return sym
}

// locateSymbol computes value = floor(((offset+1)*total - 1) / r), where
// offset = code - low, then finds the smallest symbol s with
// cumFreqs[s] > value via binary search. The (offset+1)*total product can
// need up to ~114 bits, so it is computed as a 128-bit widening multiply
// with the trailing -1 applied to the 128-bit result before dividing.
//
// r == 0 is the sentinel for the one range width that overflows a uint64:
// the full interval [0, fullMask], true width 2^64, which is the state before
// the first symbol of a stream and recurs whenever renormalization doubles
// an interval back out to the full range (see narrow in arith.go). offset
// there ranges over the full [0, fullMask], so offset+1 can itself overflow
// to 0 — handled directly below rather than through the generic r-divide
// path, since dividing by 2^64 is just taking the high word of the widening
// product and needs no division at all.
func locateSymbol(cumFreqs []uint64, offset, total, r uint64) int {
	var value uint64
	if r != 0 {
		hi, lo := bits.Mul64(offset+1, total)
		if lo == 0 {
			hi--
			lo = fullMask
		} else {
			lo--
		}
		value, _ = bits.Div64(hi, lo, r)
	} else if offset == fullMask {
		value = total - 1
	} else {
		hi, lo := bits.Mul64(offset+1, total)
		if lo == 0 {
			hi--
		}
		value = hi
	}
	return sort.Search(len(cumFreqs), func(i int) bool { return cumFreqs[i] > value })
}

// Low and High expose the current interval bounds, for tests that verify
// the interval-non-empty invariant independently of the source.
func (d *Decoder) Low() uint64  { return d.low }
func (d *Decoder) High() uint64 { return d.high }

// BytesConsumed returns how many bytes of the input payload have been read
// so far, for progress reporting.
func (d *Decoder) BytesConsumed() int { return d.source.BytesConsumed() }
