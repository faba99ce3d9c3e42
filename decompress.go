package lmzip

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/liamwilbur/lmzip/internal/arith"
	"github.com/liamwilbur/lmzip/internal/quantize"
)

// DecompressOptions configures a Decompress call. Its zero value is a valid,
// unbounded decode: EOS alone stops the loop, exactly as the distilled spec
// requires.
type DecompressOptions struct {
	// MaxTokens bounds the number of tokens decoded before EOS must appear.
	// Zero means unbounded. A corrupted payload or a non-deterministic
	// Model can otherwise decode forever, since the byte stream is not
	// self-delimiting; this is a cooperative safety bound layered on top
	// of the coder, not a property of the wire format.
	MaxTokens int
}

// Decompression drives a single decompress operation: for each step
// {predict, quantize, decode}, stopping when the decoded symbol is EOS, then
// detokenize. Mirrors Compression; see its doc comment for why this is a
// goroutine-fed channel rather than an in-process iterator.
type Decompression struct {
	state    State
	progress chan Progress
	done     chan struct{}
	result   string
	err      error
}

// Decompress starts decompressing payload against model and tok.
func Decompress(ctx context.Context, model Model, tok Tokenizer, payload []byte, opts DecompressOptions) *Decompression {
	d := &Decompression{
		state:    StateIdle,
		progress: make(chan Progress),
		done:     make(chan struct{}),
	}
	go d.run(ctx, model, tok, payload, opts)
	return d
}

// Progress returns the channel of progress records. It is closed when the
// operation completes, successfully or not.
func (d *Decompression) Progress() <-chan Progress { return d.progress }

// Wait blocks until the operation finishes and returns its outcome.
func (d *Decompression) Wait() (string, error) {
	<-d.done
	return d.result, d.err
}

func (d *Decompression) run(ctx context.Context, model Model, tok Tokenizer, payload []byte, opts DecompressOptions) {
	defer close(d.progress)
	defer close(d.done)

	d.state = StateRunning
	dec := arith.NewDecoder(payload)
	totalBytes := len(payload)
	tokenContext := make([]Token, 0, 64)
	out := make([]Token, 0, 64)

	log := logrus.WithField("component", "lmzip.Decompress")

	for {
		logits, err := nextLogits(ctx, model, tokenContext)
		if err != nil {
			d.err = wrapModelError(err)
			return
		}
		if dr, ok := model.(DeterminismReporter); ok {
			if derr := dr.ReportDeterminism(); derr != nil {
				d.err = &DeterminismMismatchError{cause: derr}
				return
			}
		}
		cdf := quantize.Quantize(quantize.Softmax(logits))
		sym := dec.DecodeSymbol(cdf)
		t := Token(sym)

		if t == model.EOSToken() {
			break
		}
		if opts.MaxTokens > 0 && len(out) >= opts.MaxTokens {
			d.err = &PayloadTruncatedError{MaxTokens: opts.MaxTokens}
			return
		}

		out = append(out, t)
		tokenContext = append(tokenContext, t)

		chunk, err := tok.Detokenize([]Token{t})
		if err != nil {
			d.err = wrapTokenizerError(err)
			return
		}

		frac := 0.5
		if totalBytes > 0 {
			frac = float64(dec.BytesConsumed()) / float64(totalBytes)
			if frac > 0.99 {
				frac = 0.99
			}
		}
		if !d.emit(ctx, Progress{Fraction: frac, Chunk: chunk}) {
			d.err = ctx.Err()
			return
		}
	}

	text, err := tok.Detokenize(out)
	if err != nil {
		d.err = wrapTokenizerError(err)
		return
	}
	d.result = text
	log.WithField("tokens", len(out)).Debug("finished decompression")

	d.emit(ctx, Progress{Fraction: 1, Final: true, Result: text})
	d.state = StateDone
}

func (d *Decompression) emit(ctx context.Context, p Progress) bool {
	select {
	case d.progress <- p:
		return true
	case <-ctx.Done():
		return false
	}
}
