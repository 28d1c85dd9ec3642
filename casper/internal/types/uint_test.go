package types

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseBigUints(t *testing.T) {
	t.Parallel()

	const (
		maxU128 = "340282366920938463463374607431768211455"
		maxU256 = "115792089237316195423570985008687907853269984665640564039457584007913129639935"
	)

	tests := []struct {
		name    string
		parse   func(string) (string, error)
		input   string
		wantErr error
	}{
		{"U128Max", stringify(ParseU128), maxU128, nil},
		{"U128Overflow", stringify(ParseU128), "340282366920938463463374607431768211456", ErrNumberOutOfRange},
		{"U256Max", stringify(ParseU256), maxU256, nil},
		{"U256Overflow", stringify(ParseU256), "115792089237316195423570985008687907853269984665640564039457584007913129639936", ErrNumberOutOfRange},
		{"U512Overflow", stringify(ParseU512), new(big.Int).Lsh(big.NewInt(1), 512).String(), ErrNumberOutOfRange},
		{"U512Large", stringify(ParseU512), maxU256 + "0", nil},
		{"Negative", stringify(ParseU128), "-1", ErrInvalidNumber},
		{"Hex", stringify(ParseU256), "0x10", ErrInvalidNumber},
		{"Empty", stringify(ParseU512), "", ErrInvalidNumber},
		{"Plus", stringify(ParseU512), "+1", ErrInvalidNumber},
		{"Spaces", stringify(ParseU128), " 1", ErrInvalidNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.parse(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got)
		})
	}
}

func stringify[T interface{ String() string }](parse func(string) (T, error)) func(string) (string, error) {
	return func(s string) (string, error) {
		v, err := parse(s)
		if err != nil {
			return "", err
		}
		return v.String(), nil
	}
}

func TestBigUintBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{0x04, 0x00, 0xca, 0x9a, 0x3b}, NewU512(1_000_000_000).Bytes())
	assert.Equal(t, []byte{0x00}, NewU512(0).Bytes())
	assert.Equal(t, []byte{0x00}, U512{}.Bytes())
	assert.Equal(t, []byte{0x01, 0x06}, NewU128(6).Bytes())
	assert.Equal(t, []byte{0x02, 0x00, 0x01}, NewU256(256).Bytes())

	u, rest, err := DecodeU512([]byte{0x04, 0x00, 0xca, 0x9a, 0x3b, 0xff})
	require.NoError(t, err)
	assert.Equal(t, "1000000000", u.String())
	assert.Equal(t, []byte{0xff}, rest)

	_, _, err = DecodeU128([]byte{17})
	require.ErrorIs(t, err, ErrNumberOutOfRange)

	_, _, err = DecodeU256([]byte{2, 1})
	require.ErrorIs(t, err, ErrTruncated)
}

func TestBigUintRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "raw")
		want := new(big.Int).SetBytes(raw)

		u, err := ParseU512(want.String())
		require.NoError(t, err)
		decoded, rest, err := DecodeU512(u.Bytes())
		require.NoError(t, err)
		require.Empty(t, rest)
		require.Equal(t, 0, want.Cmp(decoded.Big()))

		if want.BitLen() <= 256 {
			v, err := ParseU256(want.String())
			require.NoError(t, err)
			decoded, _, err := DecodeU256(v.Bytes())
			require.NoError(t, err)
			require.Equal(t, v, decoded)
		}
	})
}

func TestU512Flag(t *testing.T) {
	t.Parallel()

	var u U512
	require.NoError(t, u.Set("2500000000"))
	assert.Equal(t, "2500000000", u.String())
	assert.Equal(t, "U512", u.Type())
	require.Error(t, u.Set("2.5"))
}
