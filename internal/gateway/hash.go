package gateway

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// HashPrefix returns the uppercase SHA-1 hex digest of password split into
// the 5-character prefix sent upstream and the 35-character suffix matched
// locally.
func HashPrefix(password string) (prefix, suffix string) {
	sum := sha1.Sum([]byte(password))
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	return digest[:5], digest[5:]
}
