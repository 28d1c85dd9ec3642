package clvalue

import (
	"encoding/json"
	"testing"

	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLTypeBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		t    CLType
		want []byte
	}{
		{Bool, []byte{0}},
		{U512, []byte{8}},
		{PublicKey, []byte{22}},
		{Option(U64), []byte{13, 5}},
		{ByteArray(32), []byte{15, 32, 0, 0, 0}},
		{Map(String, List(U8)), []byte{17, 10, 14, 3}},
		{Tuple(Bool, Key), []byte{19, 0, 11}},
		{Result(Unit, String), []byte{16, 9, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.t.String(), func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, tt.t.Bytes())

			r := NewReader(tt.want)
			decoded, err := ReadCLType(r)
			require.NoError(t, err)
			require.NoError(t, r.Finish())
			require.True(t, tt.t.Equal(decoded))

			data, err := json.Marshal(tt.t)
			require.NoError(t, err)
			var fromJSON CLType
			require.NoError(t, json.Unmarshal(data, &fromJSON))
			require.True(t, tt.t.Equal(fromJSON), string(data))
		})
	}
}

func TestCLTypeJSON(t *testing.T) {
	t.Parallel()

	for typ, want := range map[string]string{
		"u512":   `"U512"`,
		"option": `{"Option":"U64"}`,
		"bytes":  `{"ByteArray":32}`,
		"map":    `{"Map":{"key":"String","value":"Key"}}`,
	} {
		var parsed CLType
		require.NoError(t, json.Unmarshal([]byte(want), &parsed), typ)
		data, err := json.Marshal(parsed)
		require.NoError(t, err)
		assert.JSONEq(t, want, string(data))
	}

	var bad CLType
	require.ErrorIs(t, json.Unmarshal([]byte(`"U1024"`), &bad), ErrUnknownCLType)
	require.ErrorIs(t, json.Unmarshal([]byte(`{"Tuple2":["U8"]}`), &bad), ErrUnknownCLType)
}

func TestReadCLTypeUnknownTag(t *testing.T) {
	t.Parallel()

	_, err := ReadCLType(NewReader([]byte{99}))
	require.ErrorIs(t, err, ErrUnknownCLType)
	require.ErrorIs(t, err, ErrSerialization)
}

func TestCLValueWire(t *testing.T) {
	t.Parallel()

	amount := New(U512, types.NewU512(1_000_000_000).Bytes())
	assert.Equal(t, []byte{5, 0, 0, 0, 4, 0, 0xca, 0x9a, 0x3b, 8}, amount.ToBytes())

	decoded, err := ReadCLValue(NewReader(amount.ToBytes()))
	require.NoError(t, err)
	require.True(t, amount.Equal(decoded))
}

func TestCLValueJSON(t *testing.T) {
	t.Parallel()

	amount := New(U512, types.NewU512(1_000_000_000).Bytes())
	data, err := json.Marshal(amount)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cl_type":"U512","bytes":"0400ca9a3b","parsed":"1000000000"}`, string(data))

	var decoded CLValue
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.True(t, amount.Equal(decoded))

	none := New(Option(String), []byte{0})
	data, err = json.Marshal(none)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cl_type":{"Option":"String"},"bytes":"00","parsed":null}`, string(data))

	opaque := New(Any, []byte{1, 2})
	data, err = json.Marshal(opaque)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cl_type":"Any","bytes":"0102"}`, string(data))
}

func TestDecodeCompound(t *testing.T) {
	t.Parallel()

	w := NewWriter().U32(2).Str("a").U8(1).Str("b").U8(2)
	v, err := New(Map(String, U8), w.Bytes()).Parsed()
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{
		{"key": "a", "value": uint8(1)},
		{"key": "b", "value": uint8(2)},
	}, v)

	w = NewWriter().Bool(true).U64(7)
	v, err = New(Result(U64, String), w.Bytes()).Parsed()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Ok": uint64(7)}, v)

	_, err = New(U32, []byte{1, 2}).Parsed()
	require.ErrorIs(t, err, ErrSerialization)

	_, err = New(Bool, []byte{1, 0}).Parsed()
	require.ErrorIs(t, err, ErrLeftOverBytes)

	_, err = New(Bool, []byte{2}).Parsed()
	require.ErrorIs(t, err, ErrSerialization)
}

func TestDecodeCollectionCount(t *testing.T) {
	t.Parallel()

	huge := NewWriter().U32(0xffffffff).Bytes()

	_, err := New(List(Unit), huge).Parsed()
	require.ErrorIs(t, err, ErrSerialization)

	_, err = New(Map(Unit, Unit), huge).Parsed()
	require.ErrorIs(t, err, ErrSerialization)

	_, err = New(List(U64), NewWriter().U32(3).U64(1).Bytes()).Parsed()
	require.ErrorIs(t, err, ErrSerialization)

	v, err := New(List(Unit), NewWriter().U32(2).Bytes()).Parsed()
	require.NoError(t, err)
	assert.Len(t, v, 2)

	data, err := json.Marshal(New(List(Unit), huge))
	require.NoError(t, err)
	assert.JSONEq(t, `{"cl_type":{"List":"Unit"},"bytes":"ffffffff"}`, string(data))
}
