package types

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/holiman/uint256"
)

// Casper big unsigned integers are serialized as one length byte followed by
// the little-endian value with trailing zero bytes stripped. Zero is [0x00].

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func encodeBigEndian(be []byte) []byte {
	out := make([]byte, 1, len(be)+1)
	out[0] = byte(len(be))
	le := slices.Clone(be)
	slices.Reverse(le)
	return append(out, le...)
}

// decodeLittleEndian reads a length-prefixed value and returns its big-endian bytes
// and the remainder.
func decodeLittleEndian(data []byte, maxBytes int) ([]byte, []byte, error) {
	if len(data) < 1 {
		return nil, nil, ErrTruncated
	}
	n := int(data[0])
	if n > maxBytes {
		return nil, nil, fmt.Errorf("%w: %d bytes for a %d-bit value", ErrNumberOutOfRange, n, maxBytes*8)
	}
	if len(data) < n+1 {
		return nil, nil, ErrTruncated
	}
	be := slices.Clone(data[1 : n+1])
	slices.Reverse(be)
	return be, data[n+1:], nil
}

type fixedUint struct {
	v uint256.Int
}

func parseFixedUint(s string, bits int) (fixedUint, error) {
	var u fixedUint
	if !isDecimal(s) {
		return u, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidNumber, s)
	}
	if err := u.v.SetFromDecimal(s); err != nil {
		return u, fmt.Errorf("%w: %s does not fit into %d bits", ErrNumberOutOfRange, s, bits)
	}
	if u.v.BitLen() > bits {
		return u, fmt.Errorf("%w: %s does not fit into %d bits", ErrNumberOutOfRange, s, bits)
	}
	return u, nil
}

func decodeFixedUint(data []byte, bits int) (fixedUint, []byte, error) {
	var u fixedUint
	be, rest, err := decodeLittleEndian(data, bits/8)
	if err != nil {
		return u, nil, err
	}
	u.v.SetBytes(be)
	return u, rest, nil
}

func (u fixedUint) bytes() []byte {
	if u.v.IsZero() {
		return []byte{0}
	}
	return encodeBigEndian(u.v.Bytes())
}

// U128 is an unsigned integer below 2^128.
type U128 struct{ fixedUint }

// U256 is an unsigned integer below 2^256.
type U256 struct{ fixedUint }

func ParseU128(s string) (U128, error) {
	u, err := parseFixedUint(s, 128)
	return U128{u}, err
}

func ParseU256(s string) (U256, error) {
	u, err := parseFixedUint(s, 256)
	return U256{u}, err
}

func NewU128(v uint64) U128 {
	var u U128
	u.v.SetUint64(v)
	return u
}

func NewU256(v uint64) U256 {
	var u U256
	u.v.SetUint64(v)
	return u
}

// DecodeU128 reads a serialized U128 and returns it with the remaining bytes.
func DecodeU128(data []byte) (U128, []byte, error) {
	u, rest, err := decodeFixedUint(data, 128)
	return U128{u}, rest, err
}

func DecodeU256(data []byte) (U256, []byte, error) {
	u, rest, err := decodeFixedUint(data, 256)
	return U256{u}, rest, err
}

func (u U128) Bytes() []byte  { return u.bytes() }
func (u U128) String() string { return u.v.Dec() }
func (u U128) Big() *big.Int  { return u.v.ToBig() }

func (u U256) Bytes() []byte  { return u.bytes() }
func (u U256) String() string { return u.v.Dec() }
func (u U256) Big() *big.Int  { return u.v.ToBig() }

func (u U128) MarshalText() ([]byte, error) { return []byte(u.String()), nil }
func (u U256) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

// U512 is an unsigned integer below 2^512. uint256 stops at 256 bits, so the
// value is kept in a big.Int.
type U512 struct {
	v *big.Int
}

var maxU512 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 512), big.NewInt(1))

func NewU512(v uint64) U512 {
	return U512{v: new(big.Int).SetUint64(v)}
}

func ParseU512(s string) (U512, error) {
	if !isDecimal(s) {
		return U512{}, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidNumber, s)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return U512{}, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidNumber, s)
	}
	if v.Cmp(maxU512) > 0 {
		return U512{}, fmt.Errorf("%w: %s does not fit into 512 bits", ErrNumberOutOfRange, s)
	}
	return U512{v: v}, nil
}

func DecodeU512(data []byte) (U512, []byte, error) {
	be, rest, err := decodeLittleEndian(data, 64)
	if err != nil {
		return U512{}, nil, err
	}
	return U512{v: new(big.Int).SetBytes(be)}, rest, nil
}

func (u U512) big() *big.Int {
	if u.v == nil {
		return new(big.Int)
	}
	return u.v
}

// Big returns a copy of the value.
func (u U512) Big() *big.Int { return new(big.Int).Set(u.big()) }

func (u U512) IsZero() bool { return u.big().Sign() == 0 }

func (u U512) Cmp(other U512) int { return u.big().Cmp(other.big()) }

func (u U512) Bytes() []byte {
	if u.IsZero() {
		return []byte{0}
	}
	return encodeBigEndian(u.big().Bytes())
}

func (u U512) String() string { return u.big().String() }

func (u U512) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *U512) UnmarshalText(input []byte) error {
	parsed, err := ParseU512(string(input))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Set implements pflag.Value.
func (u *U512) Set(value string) error {
	return u.UnmarshalText([]byte(value))
}

func (u *U512) Type() string {
	return "U512"
}
