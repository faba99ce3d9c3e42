// Package arith implements the 64-bit integer arithmetic coder described by
// the lmzip wire format: an interval state machine with E1/E2 renormalization
// and E3 underflow handling, driving a streaming MSB-first bit sink or
// source.
//
// Finish policy: the encoder emits no explicit interval-flushing tail beyond
// the single terminator bit written by bitio.Sink.Finish. This relies on the
// end-of-stream symbol appearing in the token sequence before the decoder's
// renormalization exhausts informative bits; both Encoder and Decoder are
// built to this policy and must never diverge from it.
package arith

import "math/bits"

const (
	stateBits = 64

	// quarterRange, halfRange and fullMask correspond to the distilled
	// spec's QUARTER, HALF and MASK constants. FULL itself (2^64) does not
	// fit in a uint64 and is never needed directly.
	quarterRange = uint64(1) << (stateBits - 2)
	halfRange    = quarterRange << 1
	fullMask     = ^uint64(0)
)

// mulDivFloor computes floor(a*b/denom) using a 64x64->128 widening multiply
// and a 128/64 division, as required by the spec's note that the
// intermediate cum_c*R product (up to ~114 bits) must not be computed with a
// bignum type.
func mulDivFloor(a, b, denom uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	q, _ := bits.Div64(hi, lo, denom)
	return q
}

// narrow applies the shared interval-update formula from the distilled
// spec's §4.3 step 3 / §4.4 step 4: given the cumulative frequency bounds
// [lo, hi) of a symbol out of total, shrink [low, high] to the corresponding
// sub-interval.
//
// high-low+1 overflows a uint64 to exactly 0 in one case: the full interval
// [0, fullMask], whose true width is 2^64. It is the state of every stream
// before its first symbol is coded, and it recurs whenever renormalization
// doubles an interval back out to the full range. That case is
// handled separately below rather than falling through mulDivFloor with a
// zero range, which would silently collapse every first-symbol update to a
// no-op.
func narrow(low, high, lo, hi, total uint64) (newLow, newHigh uint64) {
	r := high - low + 1
	if r != 0 {
		newHigh = low + mulDivFloor(hi, r, total) - 1
		newLow = low + mulDivFloor(lo, r, total)
		return newLow, newHigh
	}

	// r == 0: the true range is 2^64, so scaling a cumulative bound a by r
	// is just a<<64, i.e. the widening product's high word is a and its low
	// word is 0 — no multiply needed, only the division by total. hi == total
	// is the one bound whose scaled quotient is exactly 2^64 itself, too wide
	// for bits.Div64's 64-bit quotient; it maps to the untouched top of the
	// range directly instead.
	newLow = low
	if lo != 0 {
		q, _ := bits.Div64(lo, 0, total)
		newLow = low + q
	}
	if hi == total {
		newHigh = high
	} else {
		q, _ := bits.Div64(hi, 0, total)
		newHigh = low + q - 1
	}
	return newLow, newHigh
}

// cumBounds returns the cumulative frequency bounds [lo, hi) of symbol sym
// given its CDF, per the distilled spec's convention that cum_freqs[i] is
// the cumulative count up to and including symbol i.
func cumBounds(cumFreqs []uint64, sym int) (lo, hi uint64) {
	if sym > 0 {
		lo = cumFreqs[sym-1]
	}
	hi = cumFreqs[sym]
	return lo, hi
}
