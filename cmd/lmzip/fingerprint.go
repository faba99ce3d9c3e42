package main

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// contentFingerprint returns a short hex digest of payload, printed by the
// -fingerprint debug flag so two compress runs can be compared for byte
// identity without diffing the base64 files directly.
func contentFingerprint(payload []byte) string {
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:8])
}
