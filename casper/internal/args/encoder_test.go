package args

import (
	"crypto/ed25519"
	"math"
	"math/big"
	"strconv"
	"strings"
	"testing"

	"github.com/casper-ecosystem/casper-client-go/casper/common/hexutil"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/clvalue"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const (
	testAddrHex = "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"
	testKeyHex  = "19bf44096984cdfe8541bac167dc3b96c85086aa30b6b6cb0c5c38ad703166e1"
)

func TestParseTypeTag(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		tag, err := ParseTypeTag(kind.String())
		require.NoError(t, err)
		require.Equal(t, TypeTag{Kind: kind}, tag)

		tag, err = ParseTypeTag("opt_" + kind.String())
		require.NoError(t, err)
		require.Equal(t, TypeTag{Kind: kind, Optional: true}, tag)
		require.Equal(t, clvalue.TagOption, tag.CLType().Tag)
	}

	for _, name := range []string{"U64", "uint", "opt_", "opt_opt_u8", "", "list"} {
		_, err := ParseTypeTag(name)
		require.ErrorIs(t, err, ErrUnknownType, name)
	}

	require.Equal(t,
		"bool, i32, i64, u8, u32, u64, u128, u256, u512, unit, string, key, account_hash, uref, public_key",
		SupportedTypeList())
}

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    []byte
		cltype  clvalue.CLType
		wantErr error
	}{
		{name: "BoolTrue", raw: "a:bool='true'", want: []byte{1}, cltype: clvalue.Bool},
		{name: "BoolInvalid", raw: "flag:bool='maybe'", wantErr: ErrInvalidValue},
		{name: "BoolCase", raw: "flag:bool='True'", wantErr: ErrInvalidValue},
		{name: "I32", raw: "a:i32='-1'", want: []byte{0xff, 0xff, 0xff, 0xff}, cltype: clvalue.I32},
		{name: "I32Overflow", raw: "a:i32='2147483648'", wantErr: ErrInvalidNumber},
		{name: "I64", raw: "a:i64='-2'", want: []byte{0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, cltype: clvalue.I64},
		{name: "U8Max", raw: "a:u8='255'", want: []byte{0xff}, cltype: clvalue.U8},
		{name: "U8Overflow", raw: "a:u8='256'", wantErr: ErrInvalidNumber},
		{name: "U8Negative", raw: "a:u8='-1'", wantErr: ErrInvalidNumber},
		{name: "U32", raw: "a:u32='4'", want: []byte{4, 0, 0, 0}, cltype: clvalue.U32},
		{name: "U64", raw: "amount:u64='1000000'", want: []byte{0x40, 0x42, 0x0f, 0, 0, 0, 0, 0}, cltype: clvalue.U64},
		{name: "U64NotNumber", raw: "a:u64='ten'", wantErr: ErrInvalidNumber},
		{name: "U64Empty", raw: "a:u64=''", wantErr: ErrInvalidNumber},
		{name: "U128Max", raw: "a:u128='340282366920938463463374607431768211455'", want: append([]byte{16}, bytesOf(0xff, 16)...), cltype: clvalue.U128},
		{name: "U128Overflow", raw: "a:u128='340282366920938463463374607431768211456'", wantErr: ErrInvalidNumber},
		{name: "U256", raw: "a:u256='7'", want: []byte{1, 7}, cltype: clvalue.U256},
		{name: "U512", raw: "a:u512='1000000000'", want: []byte{4, 0x00, 0xca, 0x9a, 0x3b}, cltype: clvalue.U512},
		{name: "U512Zero", raw: "a:u512='0'", want: []byte{0}, cltype: clvalue.U512},
		{name: "U512Decimal", raw: "a:u512='1.5'", wantErr: ErrInvalidNumber},
		{name: "Unit", raw: "a:unit=''", want: []byte{}, cltype: clvalue.Unit},
		{name: "UnitWithValue", raw: "a:unit='x'", wantErr: ErrInvalidValue},
		{name: "String", raw: "a:string='a value'", want: append([]byte{7, 0, 0, 0}, "a value"...), cltype: clvalue.String},
		{name: "KeyAccount", raw: "k:key='account-hash-" + testAddrHex + "'", want: append([]byte{0}, addrBytes()...), cltype: clvalue.Key},
		{name: "KeyHash", raw: "k:key='hash-" + testAddrHex + "'", want: append([]byte{1}, addrBytes()...), cltype: clvalue.Key},
		{name: "KeyURef", raw: "k:key='uref-" + testAddrHex + "-007'", want: append(append([]byte{2}, addrBytes()...), 7), cltype: clvalue.Key},
		{name: "KeyBadPrefix", raw: "k:key='contract-" + testAddrHex + "'", wantErr: ErrInvalidFormattedString},
		{name: "AccountHash", raw: "a:account_hash='account-hash-" + testAddrHex + "'", want: addrBytes(), cltype: clvalue.ByteArray(32)},
		{name: "AccountHashAsHash", raw: "a:account_hash='hash-" + testAddrHex + "'", wantErr: ErrInvalidFormattedString},
		{name: "URef", raw: "u:uref='uref-" + testAddrHex + "-001'", want: append(addrBytes(), 1), cltype: clvalue.URef},
		{name: "URefNoRights", raw: "u:uref='uref-" + testAddrHex + "'", wantErr: ErrInvalidFormattedString},
		{name: "PublicKey", raw: "p:public_key='01" + testKeyHex + "'", want: append([]byte{1}, hexutil.MustDecodeHex(testKeyHex)...), cltype: clvalue.PublicKey},
		{name: "PublicKeyOffCurve", raw: "p:public_key='01" + testAddrHex + "'", wantErr: ErrInvalidFormattedString},
		{name: "PublicKeyTruncated", raw: "p:public_key='01" + testAddrHex[:10] + "'", wantErr: ErrInvalidFormattedString},
		{name: "OptSome", raw: "o:opt_u64='5'", want: []byte{1, 5, 0, 0, 0, 0, 0, 0, 0}, cltype: clvalue.Option(clvalue.U64)},
		{name: "OptNone", raw: "o:opt_u64=null", want: []byte{0}, cltype: clvalue.Option(clvalue.U64)},
		{name: "OptNoneIgnoresInner", raw: "o:opt_public_key=null", want: []byte{0}, cltype: clvalue.Option(clvalue.PublicKey)},
		{name: "OptStringNullLiteral", raw: "o:opt_string='null'", want: []byte{1, 4, 0, 0, 0, 'n', 'u', 'l', 'l'}, cltype: clvalue.Option(clvalue.String)},
		{name: "OptInvalidInner", raw: "o:opt_u8='256'", wantErr: ErrInvalidNumber},
		{name: "NullForRequired", raw: "o:u64=null", wantErr: ErrInvalidValue},
		{name: "UnknownType", raw: "o:u1024='1'", wantErr: ErrUnknownType},
		{name: "Malformed", raw: "o:u64", wantErr: ErrMalformedArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTypedArg(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got.Value.Bytes)
			require.True(t, tt.cltype.Equal(got.Value.Type), got.Value.Type.String())

			again, err := ParseTypedArg(tt.raw)
			require.NoError(t, err)
			require.Equal(t, got, again)
		})
	}
}

func bytesOf(b byte, n int) []byte {
	return []byte(strings.Repeat(string([]byte{b}), n))
}

func addrBytes() []byte {
	out := make([]byte, types.AddrSize)
	for i := range out {
		out[i] = byte(i + 1)
	}
	return out
}

func TestEncodeScenarios(t *testing.T) {
	t.Parallel()

	t.Run("Amount", func(t *testing.T) {
		t.Parallel()

		arg, err := ParseTypedArg("amount:u64='1000000'")
		require.NoError(t, err)
		require.Equal(t, "amount", arg.Name)
		require.Equal(t, TypeTag{Kind: KindU64}, arg.Tag)

		v, err := DecodeValue(arg.Tag, arg.Value)
		require.NoError(t, err)
		require.Equal(t, uint64(1000000), v)
	})

	t.Run("AccountKey", func(t *testing.T) {
		t.Parallel()

		arg, err := ParseTypedArg("key_name:key='account-hash-" + testAddrHex + "'")
		require.NoError(t, err)

		v, err := DecodeValue(arg.Tag, arg.Value)
		require.NoError(t, err)
		key, ok := v.(types.Key)
		require.True(t, ok)
		require.Equal(t, types.KeyTagAccount, key.Tag)
		require.Equal(t, addrBytes(), key.Account[:])
	})

	t.Run("ErrorContext", func(t *testing.T) {
		t.Parallel()

		_, err := ParseTypedArg("flag:bool='maybe'")
		var argErr *ArgError
		require.ErrorAs(t, err, &argErr)
		require.Equal(t, "flag", argErr.Arg)
		require.Equal(t, "bool", argErr.Context)
		require.Equal(t, "maybe", argErr.Input)
		require.Equal(t, `invalid value for arg "flag" (bool): "maybe": expected 'true' or 'false'`, err.Error())

		_, err = ParseTypedArg("k:opt_key='hash-00'")
		require.ErrorAs(t, err, &argErr)
		require.Equal(t, "opt_key", argErr.Context)
		require.ErrorIs(t, err, types.ErrInvalidLength)
	})
}

func TestDecodeValueTypeMismatch(t *testing.T) {
	t.Parallel()

	arg, err := ParseTypedArg("a:u32='1'")
	require.NoError(t, err)
	_, err = DecodeValue(TypeTag{Kind: KindU64}, arg.Value)
	require.ErrorIs(t, err, clvalue.ErrSerialization)
}

// roundTrip encodes value under tag and returns what decoding produces.
func roundTrip(t require.TestingT, tag TypeTag, value string) any {
	arg, err := Encode(Token{Name: "x", Type: tag.String(), Value: value})
	require.NoError(t, err)
	decoded, err := DecodeValue(tag, arg.Value)
	require.NoError(t, err)
	return decoded
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		optional := rapid.Bool().Draw(t, "optional")
		kind := rapid.SampledFrom(Kinds()).Draw(t, "kind")
		tag := TypeTag{Kind: kind, Optional: optional}

		switch kind {
		case KindBool:
			v := rapid.Bool().Draw(t, "v")
			require.Equal(t, v, roundTrip(t, tag, strconv.FormatBool(v)))
		case KindI32:
			v := rapid.Int32().Draw(t, "v")
			require.Equal(t, v, roundTrip(t, tag, strconv.FormatInt(int64(v), 10)))
		case KindI64:
			v := rapid.Int64().Draw(t, "v")
			require.Equal(t, v, roundTrip(t, tag, strconv.FormatInt(v, 10)))
		case KindU8:
			v := rapid.Uint8().Draw(t, "v")
			require.Equal(t, v, roundTrip(t, tag, strconv.FormatUint(uint64(v), 10)))
		case KindU32:
			v := rapid.Uint32().Draw(t, "v")
			require.Equal(t, v, roundTrip(t, tag, strconv.FormatUint(uint64(v), 10)))
		case KindU64:
			v := rapid.Uint64().Draw(t, "v")
			require.Equal(t, v, roundTrip(t, tag, strconv.FormatUint(v, 10)))
		case KindU128, KindU256, KindU512:
			width := map[Kind]int{KindU128: 16, KindU256: 32, KindU512: 64}[kind]
			raw := rapid.SliceOfN(rapid.Byte(), 0, width).Draw(t, "v")
			want := new(big.Int).SetBytes(raw).String()
			decoded := roundTrip(t, tag, want)
			require.Equal(t, want, decoded.(interface{ String() string }).String())
		case KindUnit:
			require.Equal(t, clvalue.UnitValue{}, roundTrip(t, tag, ""))
		case KindString:
			v := rapid.String().Draw(t, "v")
			require.Equal(t, v, roundTrip(t, tag, v))
		case KindKey, KindAccountHash, KindURef:
			var addr [types.AddrSize]byte
			copy(addr[:], rapid.SliceOfN(rapid.Byte(), types.AddrSize, types.AddrSize).Draw(t, "addr"))
			rights := types.AccessRights(rapid.IntRange(0, 7).Draw(t, "rights"))
			uref := types.URef{Addr: addr, Rights: rights}
			switch kind {
			case KindKey:
				key := rapid.SampledFrom([]types.Key{
					types.NewAccountKey(types.AccountHash(addr)),
					types.NewHashKey(addr),
					types.NewURefKey(uref),
				}).Draw(t, "key")
				require.Equal(t, key, roundTrip(t, tag, key.String()))
			case KindAccountHash:
				require.Equal(t, types.AccountHash(addr), roundTrip(t, tag, types.AccountHash(addr).String()))
			default:
				require.Equal(t, uref, roundTrip(t, tag, uref.String()))
			}
		case KindPublicKey:
			seed := rapid.SliceOfN(rapid.Byte(), ed25519.SeedSize, ed25519.SeedSize).Draw(t, "seed")
			raw := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
			pk, err := types.NewPublicKey(types.AlgorithmEd25519, raw)
			require.NoError(t, err)
			decoded, ok := roundTrip(t, tag, pk.String()).(types.PublicKey)
			require.True(t, ok)
			require.True(t, pk.Equal(decoded))
		}
	})
}

func TestRoundTripNone(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		tag := TypeTag{Kind: kind, Optional: true}
		arg, err := Encode(Token{Name: "x", Type: tag.String(), Null: true})
		require.NoError(t, err)
		v, err := DecodeValue(tag, arg.Value)
		require.NoError(t, err)
		assert.Nil(t, v, tag.String())
	}
}

func TestIntegerBoundaries(t *testing.T) {
	t.Parallel()

	ok := []string{
		"a:i32='" + strconv.Itoa(math.MinInt32) + "'",
		"a:i64='" + strconv.FormatInt(math.MinInt64, 10) + "'",
		"a:u32='" + strconv.FormatUint(math.MaxUint32, 10) + "'",
		"a:u64='" + strconv.FormatUint(math.MaxUint64, 10) + "'",
	}
	for _, raw := range ok {
		_, err := ParseTypedArg(raw)
		require.NoError(t, err, raw)
	}

	overflow := []string{
		"a:i32='-2147483649'",
		"a:i64='9223372036854775808'",
		"a:u32='4294967296'",
		"a:u64='18446744073709551616'",
	}
	for _, raw := range overflow {
		_, err := ParseTypedArg(raw)
		require.ErrorIs(t, err, ErrInvalidNumber, raw)
	}
}
