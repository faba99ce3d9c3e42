// Package lmmodel provides reference lmzip.Model implementations used by
// this module's own tests and by the cmd/lmzip demo binary: a uniform
// model, an oracle model, and a determinism-checking wrapper. None of these
// are meant to replace a real language model backend — model loading and
// inference are explicitly out of this module's scope — they exist so the
// coder can be exercised without one.
package lmmodel

import (
	"context"

	"github.com/liamwilbur/lmzip"
)

// Uniform is a deterministic Model that returns a flat distribution over
// the vocabulary at every step, regardless of context. It is the simplest
// Model in this package and the one used to test the coder's behavior
// independent of any real prediction quality.
type Uniform struct {
	Vocab int
	EOS   lmzip.Token
	Bos   lmzip.Token
	HasBos bool
}

// NewUniform returns a Uniform model over vocab symbols with the given EOS
// token and no BOS sentinel.
func NewUniform(vocab int, eos lmzip.Token) *Uniform {
	return &Uniform{Vocab: vocab, EOS: eos}
}

func (m *Uniform) NextLogits(_ context.Context, _ []lmzip.Token) ([]float64, error) {
	return make([]float64, m.Vocab), nil
}

func (m *Uniform) EOSToken() lmzip.Token          { return m.EOS }
func (m *Uniform) BOSToken() (lmzip.Token, bool)  { return m.Bos, m.HasBos }
func (m *Uniform) VocabSize() int                 { return m.Vocab }

// Oracle is a Model that already knows the exact token sequence it will be
// asked to encode or decode, and returns a near-certain distribution on the
// correct next token at every step. It exists to exercise the distilled
// spec's §8 scenario where a degenerate, near-certain model drives
// compressed size to O(1) regardless of input length — no real LM is ever
// exactly certain, so the quantizer's minimum-frequency clamp always leaves
// a sliver of probability on every other symbol.
type Oracle struct {
	Sequence []lmzip.Token
	Vocab    int
	EOS      lmzip.Token
	Bos      lmzip.Token
	HasBos   bool

	// Confidence is the logit assigned to the correct next token; every
	// other symbol gets logit 0. Larger values push the quantized
	// probability closer to 1 (but never reach it, since softmax of a
	// finite logit is always < 1).
	Confidence float64
}

// NewOracle returns an Oracle that expects to encode/decode sequence
// (without its trailing EOS) over a vocabulary of size vocab.
func NewOracle(sequence []lmzip.Token, vocab int, eos lmzip.Token) *Oracle {
	return &Oracle{Sequence: sequence, Vocab: vocab, EOS: eos, Confidence: 40}
}

func (m *Oracle) NextLogits(_ context.Context, context []lmzip.Token) ([]float64, error) {
	logits := make([]float64, m.Vocab)
	logits[m.predictedNext(len(context))] = m.Confidence
	return logits, nil
}

func (m *Oracle) predictedNext(step int) lmzip.Token {
	if step < len(m.Sequence) {
		return m.Sequence[step]
	}
	return m.EOS
}

func (m *Oracle) EOSToken() lmzip.Token         { return m.EOS }
func (m *Oracle) BOSToken() (lmzip.Token, bool) { return m.Bos, m.HasBos }
func (m *Oracle) VocabSize() int                { return m.Vocab }
