// Package lmtoken provides a reference Tokenizer: a byte-level codec that
// treats every UTF-8 byte of the input as its own token. Real subword
// tokenizers (BPE, SentencePiece) are out of this module's scope per §1;
// this one exists so lmzip's driver and CLI can be exercised end-to-end
// without one. Because Tokenize NFC-normalizes its input, it round-trips
// exactly any valid UTF-8 string already in NFC form, including multi-byte
// characters; other input comes back in its NFC form.
package lmtoken

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/liamwilbur/lmzip"
)

// VocabSize is 256 byte values plus two reserved control symbols.
const VocabSize = 258

// EOS and BOS are placed above the 256 byte values so they never collide
// with an input byte.
const (
	EOS lmzip.Token = 256
	BOS lmzip.Token = 257
)

// ByteLevel tokenizes text as its NFC-normalized UTF-8 bytes. Normalizing
// before splitting means two input strings that are canonically equivalent
// but differently encoded (e.g. a precomposed accented letter vs. a base
// letter plus combining mark) always tokenize identically — a real
// determinism concern for any tokenizer sitting in front of this coder.
type ByteLevel struct{}

// Tokenize implements lmzip.Tokenizer.
func (ByteLevel) Tokenize(text string) ([]lmzip.Token, error) {
	normalized := norm.NFC.String(text)
	raw := []byte(normalized)
	tokens := make([]lmzip.Token, len(raw))
	for i, b := range raw {
		tokens[i] = lmzip.Token(b)
	}
	return tokens, nil
}

// Detokenize implements lmzip.Tokenizer.
func (ByteLevel) Detokenize(tokens []lmzip.Token) (string, error) {
	raw := make([]byte, len(tokens))
	for i, t := range tokens {
		if t > 255 {
			return "", fmt.Errorf("lmtoken: token %d is not a byte-level symbol", t)
		}
		raw[i] = byte(t)
	}
	return string(raw), nil
}
