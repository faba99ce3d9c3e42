package lmzip

import "context"

// Model is the language-model collaborator contract. Implementations must
// be deterministic: the same context slice must always produce the same
// logits, on both the encoding and decoding side of a stream, or the stream
// will not round-trip. Reduced-precision inference with non-deterministic
// reduction order is a DeterminismMismatchError waiting to happen and is out
// of this package's control to detect.
//
// A Model's mutable inference caches (e.g. a transformer key/value cache)
// must be reset or isolated per stream; lmzip treats Model as a read-only
// collaborator and never mutates it directly.
type Model interface {
	// NextLogits returns the unnormalized log-probabilities over the
	// vocabulary for the token following context. context belongs to the
	// caller, which keeps appending to it after this call returns;
	// implementations must not retain or modify it.
	NextLogits(ctx context.Context, context []Token) ([]float64, error)

	// EOSToken is the distinguished end-of-stream symbol. Compress appends
	// it once to the token stream; Decompress stops upon decoding it.
	EOSToken() Token

	// BOSToken returns the beginning-of-stream sentinel used to prime
	// NextLogits when the token context is empty, and whether the model
	// defines one at all.
	BOSToken() (Token, bool)

	// VocabSize is V, the number of symbols a logits vector carries.
	VocabSize() int
}

// DeterminismReporter is an optional interface a Model may implement to
// self-report detected non-determinism, e.g. two calls to NextLogits with
// the same context returning different vectors. lmzip has no baseline of
// its own to compare against — it cannot detect this from the stream alone,
// per §7 — but if a Model reports a problem, Compress and Decompress
// surface it as a DeterminismMismatchError instead of silently producing a
// garbled stream.
type DeterminismReporter interface {
	ReportDeterminism() error
}
