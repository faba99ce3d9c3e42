package lmzip

// Progress is a single record in the lazy progress sequence a Compression or
// Decompression emits. Field names mirror the JSON shape a caller-written
// HTTP layer would stream as server-sent events: {progress, chunk?, result?,
// final?}.
type Progress struct {
	// Fraction is the operation's completion estimate in [0, 1].
	Fraction float64 `json:"progress"`
	// Chunk is incremental decoded text for this step. Only Decompress
	// populates it, and only for non-final records.
	Chunk string `json:"chunk,omitempty"`
	// Result is the final payload: base64 ciphertext for Compress, decoded
	// text for Decompress. Only set when Final is true.
	Result string `json:"result,omitempty"`
	// Final marks the last record of the sequence.
	Final bool `json:"final,omitempty"`
}
