package canon

import (
	"crypto/sha256"
	"encoding/hex"
)

// Domain prefixes for state digests. The version suffix enables future
// algorithm migration without ambiguity between old and new digests.
const (
	DomainVote  = "scrutin/vote/v1"
	DomainState = "scrutin/state/v1"
)

// Digest computes SHA-256 with domain separation and returns it hex-encoded.
// Format: SHA256(domain + 0x00 + data). The null byte separator prevents
// domain/data boundary ambiguity.
func Digest(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
