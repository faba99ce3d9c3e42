package lmzip

import (
	"context"

	"github.com/mewkiz/pkg/errutil"
	"github.com/sirupsen/logrus"

	"github.com/liamwilbur/lmzip/internal/arith"
	"github.com/liamwilbur/lmzip/internal/quantize"
)

// Compression drives a single compress operation: tokenize, then for each
// token {predict, quantize, encode}, then finish. It is the producer side
// of the lazy progress sequence described in §9 of the distilled spec —
// re-expressed here as a goroutine feeding a channel rather than an
// in-process iterator, since the suspension point between tokens is also
// where a slow remote Model call and context cancellation need to happen.
type Compression struct {
	state    State
	progress chan Progress
	done     chan struct{}
	result   []byte
	err      error
}

// Compress starts compressing text against model and tok. The returned
// Compression must be drained via Progress (to completion or until the
// channel closes) and its final outcome collected via Wait.
func Compress(ctx context.Context, model Model, tok Tokenizer, text string) *Compression {
	c := &Compression{
		state:    StateIdle,
		progress: make(chan Progress),
		done:     make(chan struct{}),
	}
	go c.run(ctx, model, tok, text)
	return c
}

// Progress returns the channel of progress records. It is closed when the
// operation completes, successfully or not.
func (c *Compression) Progress() <-chan Progress { return c.progress }

// Wait blocks until the operation finishes and returns its outcome. It is
// safe to call concurrently with draining Progress, and safe to call
// multiple times.
func (c *Compression) Wait() ([]byte, error) {
	<-c.done
	return c.result, c.err
}

func (c *Compression) run(ctx context.Context, model Model, tok Tokenizer, text string) {
	defer close(c.progress)
	defer close(c.done)

	tokens, err := tok.Tokenize(text)
	if err != nil {
		c.err = wrapTokenizerError(err)
		return
	}
	tokens = append(tokens, model.EOSToken())
	total := len(tokens)

	c.state = StateRunning
	enc := arith.NewEncoder()
	tokenContext := make([]Token, 0, total)

	log := logrus.WithField("component", "lmzip.Compress")
	log.WithField("tokens", total).Debug("starting compression")

	for i, t := range tokens {
		logits, err := nextLogits(ctx, model, tokenContext)
		if err != nil {
			c.err = wrapModelError(err)
			return
		}
		if dr, ok := model.(DeterminismReporter); ok {
			if derr := dr.ReportDeterminism(); derr != nil {
				c.err = &DeterminismMismatchError{cause: derr}
				return
			}
		}
		cdf := quantize.Quantize(quantize.Softmax(logits))
		enc.EncodeSymbol(cdf, int(t))
		tokenContext = append(tokenContext, t)

		if !c.emit(ctx, Progress{Fraction: float64(i+1) / float64(total)}) {
			c.err = ctx.Err()
			return
		}
	}

	c.state = StateFinalizing
	payload, err := enc.Finish()
	if err != nil {
		c.err = errutil.Err(err)
		return
	}
	c.result = payload
	log.WithField("bytes", len(payload)).Debug("finished compression")

	c.emit(ctx, Progress{Fraction: 1, Final: true, Result: EncodeBase64(payload)})
	c.state = StateDone
}

// emit delivers p on the progress channel, returning false if ctx was
// canceled first.
func (c *Compression) emit(ctx context.Context, p Progress) bool {
	select {
	case c.progress <- p:
		return true
	case <-ctx.Done():
		return false
	}
}
