package lmzip_test

import (
	"context"
	"errors"
	"testing"

	"github.com/liamwilbur/lmzip"
	"github.com/liamwilbur/lmzip/lmmodel"
	"github.com/liamwilbur/lmzip/lmtoken"
)

func roundTrip(t *testing.T, model lmzip.Model, tok lmzip.Tokenizer, text string) string {
	t.Helper()
	c := lmzip.Compress(context.Background(), model, tok, text)
	for range c.Progress() {
	}
	payload, err := c.Wait()
	if err != nil {
		t.Fatalf("Compress.Wait: %v", err)
	}

	d := lmzip.Decompress(context.Background(), model, tok, payload, lmzip.DecompressOptions{})
	for range d.Progress() {
	}
	got, err := d.Wait()
	if err != nil {
		t.Fatalf("Decompress.Wait: %v", err)
	}
	return got
}

func TestRoundTripHelloWorld(t *testing.T) {
	model := lmmodel.NewUniform(lmtoken.VocabSize, lmtoken.EOS)
	got := roundTrip(t, model, lmtoken.ByteLevel{}, "hello world")
	if got != "hello world" {
		t.Errorf("got %q, want %q", got, "hello world")
	}
}

func TestRoundTripEmptyString(t *testing.T) {
	model := lmmodel.NewUniform(lmtoken.VocabSize, lmtoken.EOS)
	got := roundTrip(t, model, lmtoken.ByteLevel{}, "")
	if got != "" {
		t.Errorf("got %q, want empty string", got)
	}
}

func TestRoundTripMultiByteUTF8(t *testing.T) {
	model := lmmodel.NewUniform(lmtoken.VocabSize, lmtoken.EOS)
	text := "héllo 世界"
	got := roundTrip(t, model, lmtoken.ByteLevel{}, text)
	if got != text {
		t.Errorf("got %q, want %q", got, text)
	}
}

func TestRoundTripOracleModel(t *testing.T) {
	text := "a sentence an oracle model already knows in full"
	tok := lmtoken.ByteLevel{}
	tokens, err := tok.Tokenize(text)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	oracle := lmmodel.NewOracle(tokens, lmtoken.VocabSize, lmtoken.EOS)
	got := roundTrip(t, oracle, tok, text)
	if got != text {
		t.Errorf("got %q, want %q", got, text)
	}
}

func TestDecompressSyntheticVocab(t *testing.T) {
	const vocab, eos = 4, lmzip.Token(3)
	model := lmmodel.NewUniform(vocab, eos)

	// Build a tiny manual tokenizer over symbols {0,1,2} plus EOS=3, bypassing
	// lmtoken entirely, to exercise the driver against a minimal vocabulary
	// distinct from the byte-level reference tokenizer.
	tok := symbolTokenizer{}
	text := "012101"

	got := roundTrip(t, model, tok, text)
	if got != text {
		t.Errorf("got %q, want %q", got, text)
	}
}

type symbolTokenizer struct{}

func (symbolTokenizer) Tokenize(text string) ([]lmzip.Token, error) {
	tokens := make([]lmzip.Token, len(text))
	for i, r := range text {
		tokens[i] = lmzip.Token(r - '0')
	}
	return tokens, nil
}

func (symbolTokenizer) Detokenize(tokens []lmzip.Token) (string, error) {
	b := make([]byte, len(tokens))
	for i, t := range tokens {
		b[i] = byte(t) + '0'
	}
	return string(b), nil
}

func TestDecompressMaxTokensTruncation(t *testing.T) {
	model := lmmodel.NewUniform(lmtoken.VocabSize, lmtoken.EOS)
	tok := lmtoken.ByteLevel{}

	c := lmzip.Compress(context.Background(), model, tok, "a reasonably long piece of text")
	for range c.Progress() {
	}
	payload, err := c.Wait()
	if err != nil {
		t.Fatalf("Compress.Wait: %v", err)
	}

	d := lmzip.Decompress(context.Background(), model, tok, payload, lmzip.DecompressOptions{MaxTokens: 3})
	for range d.Progress() {
	}
	_, err = d.Wait()
	if err == nil {
		t.Fatal("expected a PayloadTruncatedError")
	}
	var truncated *lmzip.PayloadTruncatedError
	if !errors.As(err, &truncated) {
		t.Fatalf("got error %v, want *PayloadTruncatedError", err)
	}
}

func TestDecompressDeterminismMismatchPropagates(t *testing.T) {
	// A determinism mismatch on the compress side never makes it into a
	// decodable payload (the run aborts before Finish), so this exercises
	// the decompress-side wiring of the same check directly: a model that
	// reports a mismatch must abort the decode loop with
	// DeterminismMismatchError rather than let the decoder run to garbled
	// completion.
	model := reportingModel{err: errors.New("mismatch")}
	tok := lmtoken.ByteLevel{}

	uniform := lmmodel.NewUniform(lmtoken.VocabSize, lmtoken.EOS)
	c := lmzip.Compress(context.Background(), uniform, tok, "trigger")
	for range c.Progress() {
	}
	payload, err := c.Wait()
	if err != nil {
		t.Fatalf("Compress.Wait: %v", err)
	}

	d := lmzip.Decompress(context.Background(), model, tok, payload, lmzip.DecompressOptions{})
	for range d.Progress() {
	}
	_, err = d.Wait()
	if err == nil {
		t.Fatal("expected a DeterminismMismatchError")
	}
	var mismatch *lmzip.DeterminismMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("got error %v, want *DeterminismMismatchError", err)
	}
}

// reportingModel always reports the given non-determinism error through
// ReportDeterminism, regardless of what NextLogits returns.
type reportingModel struct {
	err error
}

func (m reportingModel) NextLogits(_ context.Context, _ []lmzip.Token) ([]float64, error) {
	return make([]float64, lmtoken.VocabSize), nil
}

func (m reportingModel) EOSToken() lmzip.Token         { return lmtoken.EOS }
func (m reportingModel) BOSToken() (lmzip.Token, bool) { return 0, false }
func (m reportingModel) VocabSize() int                { return lmtoken.VocabSize }
func (m reportingModel) ReportDeterminism() error      { return m.err }
