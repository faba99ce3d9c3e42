package quantize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSoftmaxSumsToOne(t *testing.T) {
	logits := []float64{1, 2, 3, 4, -1, 0.5}
	probs := Softmax(logits)
	var sum float64
	for _, p := range probs {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestSoftmaxUniformOnFlatLogits(t *testing.T) {
	logits := make([]float64, 5)
	probs := Softmax(logits)
	for i, p := range probs {
		if math.Abs(p-0.2) > 1e-9 {
			t.Errorf("probs[%d] = %v, want 0.2", i, p)
		}
	}
}

func TestSoftmaxStableUnderLargeLogits(t *testing.T) {
	logits := []float64{1000, 1000.0001, 999.9999}
	probs := Softmax(logits)
	for _, p := range probs {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			t.Fatalf("softmax produced non-finite probability: %v", probs)
		}
	}
}

func TestSoftmaxEmpty(t *testing.T) {
	if probs := Softmax(nil); probs != nil {
		t.Errorf("Softmax(nil) = %v, want nil", probs)
	}
}

func TestQuantizeMonotonicallyIncreasing(t *testing.T) {
	probs := Softmax([]float64{3, 1, 0.1, -2, 5})
	cdf := Quantize(probs)
	prev := uint64(0)
	for i, c := range cdf {
		if c <= prev && i > 0 {
			t.Errorf("cumFreqs[%d] = %d not strictly greater than cumFreqs[%d] = %d", i, c, i-1, prev)
		}
		prev = c
	}
}

func TestQuantizeEveryFrequencyAtLeastOne(t *testing.T) {
	// A near-certain distribution still leaves every symbol a positive
	// frequency after quantization, since freq is clamped to a minimum of 1.
	logits := make([]float64, 100)
	logits[0] = 40
	probs := Softmax(logits)
	cdf := Quantize(probs)
	prev := uint64(0)
	for i, c := range cdf {
		freq := c - prev
		if freq < 1 {
			t.Errorf("symbol %d has frequency %d, want >= 1", i, freq)
		}
		prev = c
	}
}

func TestQuantizeDeterministic(t *testing.T) {
	logits := []float64{0.3, -1.2, 4.4, 2.2, 0}
	probs := Softmax(logits)
	a := Quantize(probs)
	b := Quantize(probs)
	assert.Equal(t, a, b)
}
