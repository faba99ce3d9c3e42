package lmzip

// Token is a vocabulary index produced by a Tokenizer and consumed by a
// Model. It is immutable once produced.
type Token uint32
