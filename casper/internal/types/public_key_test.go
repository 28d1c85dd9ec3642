package types

import (
	"crypto/ed25519"
	"strings"
	"testing"

	"github.com/casper-ecosystem/casper-client-go/casper/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ed25519KeyHex   = "0119bf44096984cdfe8541bac167dc3b96c85086aa30b6b6cb0c5c38ad703166e1"
	secp256k1KeyHex = "020279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
)

func TestParsePublicKey(t *testing.T) {
	t.Parallel()

	t.Run("Ed25519", func(t *testing.T) {
		t.Parallel()

		pk, err := ParsePublicKey(ed25519KeyHex)
		require.NoError(t, err)
		assert.Equal(t, AlgorithmEd25519, pk.Algorithm)
		assert.Len(t, pk.Raw, Ed25519PublicKeySize)
		assert.Equal(t, ed25519KeyHex, strings.ToLower(pk.String()))

		again, err := ParsePublicKey(pk.String())
		require.NoError(t, err)
		assert.True(t, pk.Equal(again))
	})

	t.Run("Secp256k1", func(t *testing.T) {
		t.Parallel()

		pk, err := ParsePublicKey(secp256k1KeyHex)
		require.NoError(t, err)
		assert.Equal(t, AlgorithmSecp256k1, pk.Algorithm)
		assert.Equal(t, secp256k1KeyHex, strings.ToLower(pk.String()))
	})

	t.Run("Invalid", func(t *testing.T) {
		t.Parallel()

		for _, input := range []string{
			"",
			"01abcd",
			"03" + strings.Repeat("00", 32),
			"02" + "05" + strings.Repeat("11", 32),
			"0102" + strings.Repeat("00", 31),
			ed25519KeyHex + "00",
			"zz",
		} {
			_, err := ParsePublicKey(input)
			require.Error(t, err, input)
		}
	})
}

func TestAccountHashFromPublicKey(t *testing.T) {
	t.Parallel()

	pk, err := ParsePublicKey(ed25519KeyHex)
	require.NoError(t, err)

	preimage := append([]byte("ed25519\x00"), pk.Raw...)
	assert.Equal(t, AccountHash(common.Blake2bHash(preimage)), pk.AccountHash())

	parsed, err := ParseAccountHash(pk.AccountHash().String())
	require.NoError(t, err)
	assert.Equal(t, pk.AccountHash(), parsed)
}

func TestVerifyEd25519(t *testing.T) {
	t.Parallel()

	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	pk, err := NewPublicKey(AlgorithmEd25519, pub)
	require.NoError(t, err)

	msg := []byte("deploy hash")
	sig := Signature{Algorithm: AlgorithmEd25519, Raw: ed25519.Sign(priv, msg)}
	require.NoError(t, pk.Verify(msg, sig))
	require.ErrorIs(t, pk.Verify([]byte("other"), sig), ErrInvalidSignature)

	parsed, err := ParseSignature(sig.String())
	require.NoError(t, err)
	assert.Equal(t, sig, parsed)
}

func TestNewPublicKeyOffCurve(t *testing.T) {
	t.Parallel()

	raw := make([]byte, ed25519.PublicKeySize)
	raw[0] = 2
	_, err := NewPublicKey(AlgorithmEd25519, raw)
	require.ErrorIs(t, err, ErrInvalidKey)

	raw[0] = 0
	_, err = NewPublicKey(AlgorithmEd25519, raw)
	require.NoError(t, err)
}
