// Package quantize converts a language model's logits into the probability
// vectors and cumulative-frequency tables the arithmetic coder consumes.
// Both conversions are pinned to double precision and a fixed summation
// order so that encoder and decoder, computing from identical logits,
// always arrive at bit-identical tables.
package quantize

import "math"

// scale is K in the distilled spec's f[i] = max(1, round(K*p[i])) rule.
const scale = uint64(1) << 32

// Softmax converts logits to a probability vector using the max-subtract
// trick for numerical stability, summing in ascending index order so the
// result is reproducible across identical inputs regardless of call site.
func Softmax(logits []float64) []float64 {
	if len(logits) == 0 {
		return nil
	}
	max := logits[0]
	for _, v := range logits[1:] {
		if v > max {
			max = v
		}
	}
	exps := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		e := math.Exp(v - max)
		exps[i] = e
		sum += e
	}
	probs := make([]float64, len(logits))
	for i, e := range exps {
		probs[i] = e / sum
	}
	return probs
}

// Quantize maps a probability vector to a monotonically non-decreasing
// cumulative-frequency table with a guaranteed minimum count of 1 per
// symbol, per the distilled spec's §4.5. Rounding uses math.Round
// (round-half-away-from-zero), pinned here so the encoder and decoder sides
// never diverge over a rounding-mode choice.
func Quantize(probs []float64) []uint64 {
	cumFreqs := make([]uint64, len(probs))
	var running uint64
	for i, p := range probs {
		freq := uint64(math.Round(float64(scale) * p))
		if freq < 1 {
			freq = 1
		}
		running += freq
		cumFreqs[i] = running
	}
	return cumFreqs
}
