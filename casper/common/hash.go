package common

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/casper-ecosystem/casper-client-go/casper/common/hexutil"
	"golang.org/x/crypto/blake2b"
)

const HashSize = blake2b.Size256

type Hash [HashSize]byte

var EmptyHash = Hash{}

// Blake2bHash returns the 32-byte blake2b digest of b.
func Blake2bHash(b []byte) Hash {
	return blake2b.Sum256(b)
}

// BytesToHash sets b to hash.
// If b is larger than len(h), b will be cropped from the left.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > len(h) {
		b = b[len(b)-HashSize:]
	}
	copy(h[HashSize-len(b):], b)
	return h
}

// HexToHash parses 64 hex characters into a hash, accepting checksummed input.
func HexToHash(s string) (Hash, error) {
	b, err := hexutil.DecodeChecksummed(s)
	if err != nil {
		return EmptyHash, err
	}
	if len(b) != HashSize {
		return EmptyHash, fmt.Errorf("hash must be %d bytes long, got %d", HashSize, len(b))
	}
	return Hash(b), nil
}

func (h Hash) Empty() bool {
	return h == EmptyHash
}

// Bytes gets the byte representation of the underlying hash.
func (h Hash) Bytes() []byte { return h[:] }

func (h Hash) Hex() string {
	return hexutil.EncodeNo0x(h[:])
}

// String implements the stringer interface and is used also by the logger.
func (h Hash) String() string {
	return h.Hex()
}

// Format implements fmt.Formatter.
// Hash supports the %v, %s, %x, %X and %q format verbs.
func (h Hash) Format(s fmt.State, c rune) {
	hexb := []byte(h.Hex())

	switch c {
	case 'X':
		hexb = bytes.ToUpper(hexb)
		fallthrough
	case 'x', 'v', 's':
		_, _ = s.Write(hexb)
	case 'q':
		fmt.Fprintf(s, "%q", hexb)
	default:
		fmt.Fprintf(s, "%%!%c(hash=%s)", c, hexb)
	}
}

func (h *Hash) UnmarshalText(input []byte) error {
	parsed, err := HexToHash(string(input))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// MarshalText returns the hex representation of h.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

func (h *Hash) Set(val string) error {
	return h.UnmarshalText([]byte(val))
}

func (h *Hash) Type() string {
	return "Hash"
}

// Sha256 is used for secp256k1 message digests.
func Sha256(b []byte) Hash {
	return sha256.Sum256(b)
}
