package crypto

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/asn1"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/casper-ecosystem/casper-client-go/casper/common"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

const (
	pemPrivateKey   = "PRIVATE KEY"
	pemECPrivateKey = "EC PRIVATE KEY"
	pemPublicKey    = "PUBLIC KEY"
)

var (
	ErrInvalidPEM         = errors.New("invalid PEM")
	ErrUnsupportedKeyType = errors.New("unsupported key type")

	oidECPublicKey = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidSecp256k1   = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
)

// SecretKey is an ed25519 or secp256k1 private key. It implements deploy.Signer.
type SecretKey struct {
	algorithm types.Algorithm
	ed25519   ed25519.PrivateKey
	secp256k1 *ecdsa.PrivateKey
}

// GenerateKey creates a fresh key of the given algorithm.
func GenerateKey(algorithm types.Algorithm) (*SecretKey, error) {
	switch algorithm {
	case types.AlgorithmEd25519:
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, err
		}
		return &SecretKey{algorithm: algorithm, ed25519: priv}, nil
	case types.AlgorithmSecp256k1:
		priv, err := gethcrypto.GenerateKey()
		if err != nil {
			return nil, err
		}
		return &SecretKey{algorithm: algorithm, secp256k1: priv}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedKeyType, algorithm)
}

// NewEd25519Key wraps a 32-byte ed25519 seed.
func NewEd25519Key(seed []byte) (*SecretKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: ed25519 seed must be %d bytes", types.ErrInvalidLength, ed25519.SeedSize)
	}
	return &SecretKey{algorithm: types.AlgorithmEd25519, ed25519: ed25519.NewKeyFromSeed(seed)}, nil
}

// NewSecp256k1Key wraps a 32-byte secp256k1 scalar.
func NewSecp256k1Key(d []byte) (*SecretKey, error) {
	priv, err := gethcrypto.ToECDSA(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInvalidKey, err)
	}
	return &SecretKey{algorithm: types.AlgorithmSecp256k1, secp256k1: priv}, nil
}

func (k *SecretKey) Algorithm() types.Algorithm {
	return k.algorithm
}

func (k *SecretKey) PublicKey() types.PublicKey {
	if k.algorithm == types.AlgorithmEd25519 {
		pub, _ := k.ed25519.Public().(ed25519.PublicKey)
		return types.PublicKey{Algorithm: k.algorithm, Raw: []byte(pub)}
	}
	return types.PublicKey{Algorithm: k.algorithm, Raw: gethcrypto.CompressPubkey(&k.secp256k1.PublicKey)}
}

// Sign signs msg. secp256k1 keys sign the SHA-256 digest of msg and drop the
// recovery id, leaving 64 bytes r||s.
func (k *SecretKey) Sign(msg []byte) (types.Signature, error) {
	if k.algorithm == types.AlgorithmEd25519 {
		return types.Signature{Algorithm: k.algorithm, Raw: ed25519.Sign(k.ed25519, msg)}, nil
	}
	digest := common.Sha256(msg)
	sig, err := gethcrypto.Sign(digest[:], k.secp256k1)
	if err != nil {
		return types.Signature{}, err
	}
	return types.Signature{Algorithm: k.algorithm, Raw: sig[:types.SignatureSize]}, nil
}

// ecPrivateKey is the SEC 1 structure, RFC 5915.
type ecPrivateKey struct {
	Version       int
	PrivateKey    []byte
	NamedCurveOID asn1.ObjectIdentifier `asn1:"optional,explicit,tag:0"`
	PublicKey     asn1.BitString        `asn1:"optional,explicit,tag:1"`
}

type algorithmIdentifier struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.ObjectIdentifier
}

type subjectPublicKeyInfo struct {
	Algorithm algorithmIdentifier
	PublicKey asn1.BitString
}

// ParseSecretKeyPEM reads an ed25519 PKCS#8 key or a secp256k1 SEC 1 key.
func ParseSecretKeyPEM(data []byte) (*SecretKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidPEM)
	}

	switch block.Type {
	case pemPrivateKey:
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPEM, err)
		}
		priv, ok := key.(ed25519.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrUnsupportedKeyType, key)
		}
		return &SecretKey{algorithm: types.AlgorithmEd25519, ed25519: priv}, nil
	case pemECPrivateKey:
		var key ecPrivateKey
		if _, err := asn1.Unmarshal(block.Bytes, &key); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPEM, err)
		}
		if len(key.NamedCurveOID) > 0 && !key.NamedCurveOID.Equal(oidSecp256k1) {
			return nil, fmt.Errorf("%w: curve %s", ErrUnsupportedKeyType, key.NamedCurveOID)
		}
		return NewSecp256k1Key(key.PrivateKey)
	}
	return nil, fmt.Errorf("%w: unexpected block %q", ErrInvalidPEM, block.Type)
}

// LoadSecretKey reads a PEM secret key file.
func LoadSecretKey(path string) (*SecretKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret key: %w", err)
	}
	key, err := ParseSecretKeyPEM(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return key, nil
}

func (k *SecretKey) MarshalPEM() ([]byte, error) {
	if k.algorithm == types.AlgorithmEd25519 {
		der, err := x509.MarshalPKCS8PrivateKey(k.ed25519)
		if err != nil {
			return nil, err
		}
		return pem.EncodeToMemory(&pem.Block{Type: pemPrivateKey, Bytes: der}), nil
	}

	der, err := asn1.Marshal(ecPrivateKey{
		Version:       1,
		PrivateKey:    gethcrypto.FromECDSA(k.secp256k1),
		NamedCurveOID: oidSecp256k1,
		PublicKey:     bitString(gethcrypto.FromECDSAPub(&k.secp256k1.PublicKey)),
	})
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemECPrivateKey, Bytes: der}), nil
}

// MarshalPublicKeyPEM writes the public key as a SubjectPublicKeyInfo block.
func (k *SecretKey) MarshalPublicKeyPEM() ([]byte, error) {
	var der []byte
	var err error
	if k.algorithm == types.AlgorithmEd25519 {
		der, err = x509.MarshalPKIXPublicKey(k.ed25519.Public())
	} else {
		der, err = asn1.Marshal(subjectPublicKeyInfo{
			Algorithm: algorithmIdentifier{Algorithm: oidECPublicKey, Parameters: oidSecp256k1},
			PublicKey: bitString(gethcrypto.FromECDSAPub(&k.secp256k1.PublicKey)),
		})
	}
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemPublicKey, Bytes: der}), nil
}

func bitString(b []byte) asn1.BitString {
	return asn1.BitString{Bytes: b, BitLength: 8 * len(b)}
}
