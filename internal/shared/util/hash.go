package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const fingerprintLen = 12

// Fingerprint returns a short stable identifier for free text so it can be
// correlated in logs without being written out. Case and surrounding
// whitespace are ignored.
func Fingerprint(s string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(s))))
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}
