package arith

import "github.com/liamwilbur/lmzip/internal/bitio"

// Encoder is a 64-bit integer range coder. Each instance owns its interval
// and its output sink exclusively; it is not safe for concurrent use.
type Encoder struct {
	low, high uint64
	pending   int
	sink      *bitio.Sink
}

// NewEncoder returns an Encoder with a fresh [0, MASK] interval.
func NewEncoder() *Encoder {
	return &Encoder{
		low:  0,
		high: fullMask,
		sink: bitio.NewSink(),
	}
}

// EncodeSymbol encodes sym given its cumulative frequency table. cumFreqs
// must be strictly increasing, every entry >= 1, and cumFreqs[len-1] the
// total T.
func (e *Encoder) EncodeSymbol(cumFreqs []uint64, sym int) {
	total := cumFreqs[len(cumFreqs)-1]
	lo, hi := cumBounds(cumFreqs, sym)
	e.low, e.high = narrow(e.low, e.high, lo, hi, total)

	// E1/E2: the interval lies wholly in one half, shift the shared top bit
	// out and double what remains.
	for (e.low^e.high)&halfRange == 0 {
		e.shiftBit()
		e.low = (e.low << 1) & fullMask
		e.high = ((e.high << 1) & fullMask) | 1
	}

	// E3: the interval straddles the midpoint but is narrow enough to sit
	// entirely within the middle half. Defer the ambiguous top bit.
	for e.low&^e.high&quarterRange != 0 {
		e.pending++
		e.low = (e.low << 1) ^ halfRange
		e.high = ((e.high ^ halfRange) << 1) | halfRange | 1
	}
}

// shiftBit writes the current top bit of low, followed by any bits deferred
// by E3 underflow steps, which all resolve to the complement of that bit.
// WriteBit errors are ignored: the sink is always backed by an in-memory
// bytes.Buffer, which cannot fail a write.
func (e *Encoder) shiftBit() {
	b := uint8(e.low >> (stateBits - 1))
	e.sink.WriteBit(b)
	for i := 0; i < e.pending; i++ {
		e.sink.WriteBit(b ^ 1)
	}
	e.pending = 0
}

// Finish flushes the sink's terminator bit and returns the completed byte
// payload. The Encoder must not be used afterward.
func (e *Encoder) Finish() ([]byte, error) {
	return e.sink.Finish()
}

// Low and High expose the current interval bounds, for tests that verify
// the interval-non-empty invariant independently of the sink.
func (e *Encoder) Low() uint64  { return e.low }
func (e *Encoder) High() uint64 { return e.high }
