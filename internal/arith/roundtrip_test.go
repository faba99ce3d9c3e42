package arith

import (
	"math/rand"
	"testing"
)

// randomCDF builds a strictly increasing cumulative frequency table over n
// symbols, every symbol given frequency at least 1, mirroring the guarantee
// quantize.Quantize makes to its callers.
func randomCDF(r *rand.Rand, n int) []uint64 {
	cdf := make([]uint64, n)
	var running uint64
	for i := 0; i < n; i++ {
		running += uint64(r.Intn(50) + 1)
		cdf[i] = running
	}
	return cdf
}

func TestRoundTripManyRandomSymbolsAndCDFs(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	const steps = 10000

	cdfs := make([][]uint64, steps)
	symbols := make([]int, steps)

	enc := NewEncoder()
	for i := 0; i < steps; i++ {
		n := r.Intn(8) + 2
		cdf := randomCDF(r, n)
		sym := r.Intn(n)
		cdfs[i] = cdf
		symbols[i] = sym
		enc.EncodeSymbol(cdf, sym)
		if enc.Low() >= enc.High() {
			t.Fatalf("step %d: interval collapsed after encoding", i)
		}
	}

	data, err := enc.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	dec := NewDecoder(data)
	for i := 0; i < steps; i++ {
		got := dec.DecodeSymbol(cdfs[i])
		if got != symbols[i] {
			t.Fatalf("step %d: decoded %d, want %d", i, got, symbols[i])
		}
	}
}

func TestRoundTripSingleSymbolAlphabet(t *testing.T) {
	// A degenerate one-symbol alphabet is always symbol 0; the coder must
	// not divide by a zero-width interval.
	cdf := []uint64{1}
	enc := NewEncoder()
	for i := 0; i < 5; i++ {
		enc.EncodeSymbol(cdf, 0)
	}
	data, err := enc.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	dec := NewDecoder(data)
	for i := 0; i < 5; i++ {
		if got := dec.DecodeSymbol(cdf); got != 0 {
			t.Fatalf("step %d: got %d, want 0", i, got)
		}
	}
}

func TestRoundTripSkewedDistribution(t *testing.T) {
	// One overwhelmingly likely symbol and a long tail of minimum-frequency
	// symbols, the shape produced by a near-certain model under
	// quantize.Quantize's minimum-frequency clamp.
	cdf := make([]uint64, 64)
	cdf[0] = 1 << 30
	for i := 1; i < len(cdf); i++ {
		cdf[i] = cdf[i-1] + 1
	}

	r := rand.New(rand.NewSource(7))
	symbols := make([]int, 2000)
	enc := NewEncoder()
	for i := range symbols {
		sym := 0
		if r.Intn(20) == 0 {
			sym = r.Intn(len(cdf))
		}
		symbols[i] = sym
		enc.EncodeSymbol(cdf, sym)
	}
	data, err := enc.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	dec := NewDecoder(data)
	for i, want := range symbols {
		if got := dec.DecodeSymbol(cdf); got != want {
			t.Fatalf("step %d: got %d, want %d", i, got, want)
		}
	}
}
