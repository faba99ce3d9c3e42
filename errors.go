package lmzip

import (
	"fmt"

	"github.com/pkg/errors"
)

// TokenizerError wraps a failure from a Tokenizer collaborator. It is
// always fatal to the in-progress stream; nothing is retried internally.
type TokenizerError struct{ cause error }

func (e *TokenizerError) Error() string { return "lmzip: tokenizer error: " + e.cause.Error() }
func (e *TokenizerError) Unwrap() error { return e.cause }

func wrapTokenizerError(err error) error {
	return &TokenizerError{cause: errors.WithStack(err)}
}

// ModelError wraps a failure from a Model collaborator's NextLogits call.
type ModelError struct{ cause error }

func (e *ModelError) Error() string { return "lmzip: model error: " + e.cause.Error() }
func (e *ModelError) Unwrap() error { return e.cause }

func wrapModelError(err error) error {
	return &ModelError{cause: errors.WithStack(err)}
}

// PayloadTruncatedError reports that Decompress exceeded a caller-supplied
// max-token bound without observing EOS. The distilled spec's coder has no
// intrinsic way to detect a missing EOS — the byte stream is not
// self-delimiting — so this is a cooperative safety bound, not a property
// of the wire format.
type PayloadTruncatedError struct {
	MaxTokens int
}

func (e *PayloadTruncatedError) Error() string {
	return fmt.Sprintf("lmzip: decoded %d tokens without observing EOS", e.MaxTokens)
}

// InvalidBase64Error reports malformed base64 transport input to
// DecodeBase64.
type InvalidBase64Error struct{ cause error }

func (e *InvalidBase64Error) Error() string { return "lmzip: invalid base64 payload: " + e.cause.Error() }
func (e *InvalidBase64Error) Unwrap() error { return e.cause }

// DeterminismMismatchError is not detectable from the stream alone — a
// non-deterministic Model manifests as garbled decoded output, not a
// returned error. It exists here only for Model implementations that
// self-report non-determinism through a debug hook (see ReportDeterminism
// in the lmmodel package's test doubles); lmzip's own coder never
// constructs one on its own.
type DeterminismMismatchError struct {
	cause error
}

func (e *DeterminismMismatchError) Error() string {
	return "lmzip: model reported non-deterministic inference: " + e.cause.Error()
}
func (e *DeterminismMismatchError) Unwrap() error { return e.cause }
