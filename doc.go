// Package lmzip performs lossless text compression by coupling a language
// model's next-token probability distribution with an integer arithmetic
// coder. The model supplies a predictive distribution over the vocabulary at
// each step; the arithmetic coder encodes the actual next token using a
// number of bits close to its information content under that distribution.
// Because the encoder and decoder run identical deterministic models and
// identical quantization, the decoder reconstructs the exact token stream
// and therefore the exact original text.
//
// A compressed payload is tied to the specific Model and Tokenizer that
// produced it: there is no header, version tag, or vocabulary hash, and no
// cross-model portability. Callers needing those must wrap the payload
// externally.
package lmzip
