package types

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/casper-ecosystem/casper-client-go/casper/common"
	"github.com/casper-ecosystem/casper-client-go/casper/common/hexutil"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

type Algorithm byte

const (
	AlgorithmSystem    Algorithm = 0
	AlgorithmEd25519   Algorithm = 1
	AlgorithmSecp256k1 Algorithm = 2
)

const (
	Ed25519PublicKeySize   = ed25519.PublicKeySize
	Secp256k1PublicKeySize = 33
	SignatureSize          = 64
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmSystem:
		return "system"
	case AlgorithmEd25519:
		return "ed25519"
	case AlgorithmSecp256k1:
		return "secp256k1"
	}
	return fmt.Sprintf("algorithm(%d)", byte(a))
}

func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "ed25519", "Ed25519":
		return AlgorithmEd25519, nil
	case "secp256k1", "Secp256k1":
		return AlgorithmSecp256k1, nil
	}
	return 0, fmt.Errorf("unsupported algorithm %q", s)
}

func (a Algorithm) publicKeySize() (int, error) {
	switch a {
	case AlgorithmSystem:
		return 0, nil
	case AlgorithmEd25519:
		return Ed25519PublicKeySize, nil
	case AlgorithmSecp256k1:
		return Secp256k1PublicKeySize, nil
	}
	return 0, fmt.Errorf("%w: unknown public key tag %d", ErrInvalidKey, byte(a))
}

// PublicKey is an account public key. Its formatted string is the tag byte
// followed by the raw key, in checksummed hex.
type PublicKey struct {
	Algorithm Algorithm
	Raw       []byte
}

func NewPublicKey(algorithm Algorithm, raw []byte) (PublicKey, error) {
	size, err := algorithm.publicKeySize()
	if err != nil {
		return PublicKey{}, err
	}
	if len(raw) != size {
		return PublicKey{}, fmt.Errorf("%w: %s public key must be %d bytes, got %d",
			ErrInvalidLength, algorithm, size, len(raw))
	}
	switch algorithm {
	case AlgorithmEd25519:
		if _, err := new(edwards25519.Point).SetBytes(raw); err != nil {
			return PublicKey{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
	case AlgorithmSecp256k1:
		if _, err := gethcrypto.DecompressPubkey(raw); err != nil {
			return PublicKey{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
	}
	return PublicKey{Algorithm: algorithm, Raw: bytes.Clone(raw)}, nil
}

func ParsePublicKey(s string) (PublicKey, error) {
	b, err := hexutil.DecodeChecksummed(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %w", ErrInvalidHex, err)
	}
	return DecodePublicKeyBytes(b)
}

// DecodePublicKeyBytes parses exactly one tagged public key.
func DecodePublicKeyBytes(b []byte) (PublicKey, error) {
	pk, rest, err := DecodePublicKey(b)
	if err != nil {
		return PublicKey{}, err
	}
	if len(rest) != 0 {
		return PublicKey{}, fmt.Errorf("%w: %d trailing bytes after public key", ErrInvalidLength, len(rest))
	}
	return pk, nil
}

func DecodePublicKey(data []byte) (PublicKey, []byte, error) {
	if len(data) < 1 {
		return PublicKey{}, nil, ErrTruncated
	}
	algorithm := Algorithm(data[0])
	size, err := algorithm.publicKeySize()
	if err != nil {
		return PublicKey{}, nil, err
	}
	if len(data) < 1+size {
		return PublicKey{}, nil, fmt.Errorf("%w: %s public key must be %d bytes", ErrInvalidLength, algorithm, size)
	}
	pk, err := NewPublicKey(algorithm, data[1:1+size])
	if err != nil {
		return PublicKey{}, nil, err
	}
	return pk, data[1+size:], nil
}

func (k PublicKey) Bytes() []byte {
	return append([]byte{byte(k.Algorithm)}, k.Raw...)
}

func (k PublicKey) Equal(other PublicKey) bool {
	return k.Algorithm == other.Algorithm && bytes.Equal(k.Raw, other.Raw)
}

// AccountHash is blake2b(lowercase algorithm name || 0x00 || raw key).
func (k PublicKey) AccountHash() AccountHash {
	preimage := append([]byte(k.Algorithm.String()), 0)
	preimage = append(preimage, k.Raw...)
	return AccountHash(common.Blake2bHash(preimage))
}

func (k PublicKey) String() string {
	return hexutil.EncodeChecksummed(k.Bytes())
}

func (k PublicKey) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *PublicKey) UnmarshalText(input []byte) error {
	parsed, err := ParsePublicKey(string(input))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Verify checks a tagged signature over msg.
func (k PublicKey) Verify(msg []byte, sig Signature) error {
	if sig.Algorithm != k.Algorithm {
		return fmt.Errorf("signature algorithm %s does not match key algorithm %s", sig.Algorithm, k.Algorithm)
	}
	switch k.Algorithm {
	case AlgorithmEd25519:
		if !ed25519.Verify(ed25519.PublicKey(k.Raw), msg, sig.Raw) {
			return ErrInvalidSignature
		}
		return nil
	case AlgorithmSecp256k1:
		digest := common.Sha256(msg)
		if !gethcrypto.VerifySignature(k.Raw, digest[:], sig.Raw) {
			return ErrInvalidSignature
		}
		return nil
	}
	return fmt.Errorf("%w: cannot verify with %s key", ErrInvalidSignature, k.Algorithm)
}

// Signature is a tagged signature as it appears in deploy approvals.
type Signature struct {
	Algorithm Algorithm
	Raw       []byte
}

func ParseSignature(s string) (Signature, error) {
	b, err := hexutil.DecodeChecksummed(s)
	if err != nil {
		return Signature{}, fmt.Errorf("%w: %w", ErrInvalidHex, err)
	}
	if len(b) != 1+SignatureSize {
		return Signature{}, fmt.Errorf("%w: signature must be %d bytes, got %d", ErrInvalidLength, 1+SignatureSize, len(b))
	}
	algorithm := Algorithm(b[0])
	if algorithm != AlgorithmEd25519 && algorithm != AlgorithmSecp256k1 {
		return Signature{}, fmt.Errorf("%w: unknown signature tag %d", ErrInvalidSignature, b[0])
	}
	return Signature{Algorithm: algorithm, Raw: b[1:]}, nil
}

func (s Signature) Bytes() []byte {
	return append([]byte{byte(s.Algorithm)}, s.Raw...)
}

func (s Signature) String() string {
	return hexutil.EncodeChecksummed(s.Bytes())
}

func (s Signature) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Signature) UnmarshalText(input []byte) error {
	parsed, err := ParseSignature(string(input))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
