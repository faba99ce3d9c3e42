package lmzip

import "context"

// State identifies where a Compression or Decompression sits in its linear,
// non-branching, non-retrying state machine.
type State int

const (
	// StateIdle is the pre-run state; no token has been processed yet.
	StateIdle State = iota
	// StateRunning covers the per-token predict/quantize/code loop.
	StateRunning
	// StateFinalizing covers Compress's single trailing step of flushing
	// the coder's sink. Decompress has no analogous step: EOS alone ends
	// its loop.
	StateFinalizing
	// StateDone is terminal; the operation has completed successfully.
	StateDone
)

// nextLogits applies the distilled spec's initial-context policy: when the
// driver's context is empty, prime the model with its beginning-of-stream
// sentinel if it defines one, otherwise fall back to a uniform distribution
// over the vocabulary (all-zero logits soften to uniform under softmax).
// Both the encoding and decoding side of a stream call this helper, so they
// can never apply the rule differently.
func nextLogits(ctx context.Context, model Model, tokenContext []Token) ([]float64, error) {
	if len(tokenContext) > 0 {
		return model.NextLogits(ctx, tokenContext)
	}
	if bos, ok := model.BOSToken(); ok {
		return model.NextLogits(ctx, []Token{bos})
	}
	return make([]float64, model.VocabSize()), nil
}
