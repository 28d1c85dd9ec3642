package hexutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input []byte
		want  string
	}{
		{[]byte{}, "0x"},
		{[]byte{0}, "0x00"},
		{[]byte{0, 0, 1, 2}, "0x00000102"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, Encode(test.input))
		assert.Equal(t, test.want[2:], EncodeNo0x(test.input))
	}
}

func TestDecodeHex(t *testing.T) {
	t.Parallel()

	b, err := DecodeHex("0x102")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02}, b)

	_, err = DecodeHex("zz")
	require.Error(t, err)

	require.Panics(t, func() { MustDecodeHex("0xgg") })
}

func TestChecksummed(t *testing.T) {
	t.Parallel()

	input := make([]byte, 33)
	for i := range input {
		input[i] = byte(0xa0 + i)
	}

	encoded := EncodeChecksummed(input)
	require.Equal(t, strings.ToLower(encoded), EncodeNo0x(input))

	decoded, err := DecodeChecksummed(encoded)
	require.NoError(t, err)
	require.Equal(t, input, decoded)

	t.Run("SingleCase", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{strings.ToLower(encoded), strings.ToUpper(encoded)} {
			decoded, err := DecodeChecksummed(s)
			require.NoError(t, err)
			require.Equal(t, input, decoded)
		}
	})

	t.Run("BrokenChecksum", func(t *testing.T) {
		t.Parallel()

		idx := strings.IndexFunc(encoded, func(r rune) bool {
			return (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
		})
		require.GreaterOrEqual(t, idx, 0)

		flipped := []byte(encoded)
		if flipped[idx] >= 'a' {
			flipped[idx] -= 'a' - 'A'
		} else {
			flipped[idx] += 'a' - 'A'
		}
		if IsMixedCase(string(flipped)) {
			_, err := DecodeChecksummed(string(flipped))
			require.ErrorIs(t, err, ErrInvalidChecksum)
		}
	})

	t.Run("LongInputIsLowerCase", func(t *testing.T) {
		t.Parallel()

		long := make([]byte, SmallBytesCount+1)
		for i := range long {
			long[i] = 0xab
		}
		require.Equal(t, EncodeNo0x(long), EncodeChecksummed(long))
	})

	t.Run("Invalid", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"0xab", "abc", "zz"} {
			_, err := DecodeChecksummed(s)
			require.Error(t, err, s)
		}
	})
}

func TestIsMixedCase(t *testing.T) {
	t.Parallel()

	assert.False(t, IsMixedCase("abc123"))
	assert.False(t, IsMixedCase("ABC123"))
	assert.False(t, IsMixedCase("0123"))
	assert.True(t, IsMixedCase("aBc"))
}
