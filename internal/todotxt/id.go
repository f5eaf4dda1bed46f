package todotxt

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
	"golang.org/x/text/unicode/norm"
)

// idLength is the number of digest bytes kept in an ID.
const idLength = 16

// ID is a stable content identifier: the hex encoding of a truncated BLAKE3
// digest of the NFC-normalized source text.
type ID string

// NewID computes the ID of s. Equal strings after NFC normalization always
// produce equal IDs.
func NewID(s string) ID {
	sum := blake3.Sum256(norm.NFC.Bytes([]byte(s)))
	return ID(hex.EncodeToString(sum[:idLength]))
}

// String returns the ID as a hex string.
func (id ID) String() string {
	return string(id)
}

// Short returns the first 8 hex characters, for display.
func (id ID) Short() string {
	if len(id) < 8 {
		return string(id)
	}
	return string(id[:8])
}
