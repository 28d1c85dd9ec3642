package hexutil

import (
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Mixed-case checksummed hex, the encoding used by casper formatted strings.
// The case of every letter nibble carries one bit of the blake2b-256 hash of
// the decoded bytes. Inputs longer than SmallBytesCount are never checksummed.

const SmallBytesCount = 75

var ErrInvalidChecksum = errors.New("invalid hex checksum")

const (
	lowerHexChars = "0123456789abcdef"
	upperHexChars = "0123456789ABCDEF"
)

// EncodeChecksummed encodes b as mixed-case checksummed hex.
func EncodeChecksummed(b []byte) string {
	if len(b) > SmallBytesCount {
		return EncodeNo0x(b)
	}

	hash := blake2b.Sum256(b)
	bit := 0
	nextBit := func() bool {
		byteIdx := (bit / 8) % len(hash)
		set := (hash[byteIdx]>>(bit%8))&0x01 == 0x01
		bit++
		return set
	}

	out := make([]byte, 0, len(b)*2)
	for _, v := range b {
		for _, nibble := range [2]byte{v >> 4, v & 0x0f} {
			if nibble >= 10 && nextBit() {
				out = append(out, upperHexChars[nibble])
			} else {
				out = append(out, lowerHexChars[nibble])
			}
		}
	}
	return string(out)
}

// DecodeChecksummed accepts all-lowercase, all-uppercase or correctly
// checksummed mixed-case hex. The checksum is verified for mixed-case input only.
func DecodeChecksummed(s string) ([]byte, error) {
	if Has0xPrefix(s) {
		return nil, fmt.Errorf("unexpected 0x prefix in %q", s)
	}
	if len(s)%2 == 1 {
		return nil, fmt.Errorf("odd length hex string %q", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) > SmallBytesCount || !IsMixedCase(s) {
		return b, nil
	}
	if EncodeChecksummed(b) != s {
		return nil, fmt.Errorf("%w: %s", ErrInvalidChecksum, s)
	}
	return b, nil
}

// IsMixedCase reports whether s contains both lower- and upper-case letters.
func IsMixedCase(s string) bool {
	var lower, upper bool
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		}
	}
	return lower && upper
}
