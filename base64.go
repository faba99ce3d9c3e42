package lmzip

import "encoding/base64"

// EncodeBase64 is a convenience wrapper for text transport of a compressed
// payload. It is not part of the coder's contract (§1: base64 transport
// encoding is an external concern), but is provided because every caller
// needs it.
func EncodeBase64(payload []byte) string {
	return base64.StdEncoding.EncodeToString(payload)
}

// DecodeBase64 reverses EncodeBase64, reporting malformed input as an
// InvalidBase64Error.
func DecodeBase64(s string) ([]byte, error) {
	payload, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &InvalidBase64Error{cause: err}
	}
	return payload, nil
}
