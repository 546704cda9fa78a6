package packagehub

import (
	"crypto/sha256"
	"encoding/hex"
)

// checksumOf returns a hex-encoded SHA-256 digest of data. Release-asset
// installs record it in the registry; git installs record an empty
// checksum, and nothing here compares checksums between installs.
func checksumOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
