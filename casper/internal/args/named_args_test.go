package args

import (
	"encoding/json"
	"testing"

	"github.com/casper-ecosystem/casper-client-go/casper/internal/clvalue"
	"github.com/stretchr/testify/require"
)

func mustNamedArgs(t *testing.T, raw ...string) NamedArgs {
	t.Helper()

	out := make(NamedArgs, 0, len(raw))
	for _, r := range raw {
		arg, err := ParseTypedArg(r)
		require.NoError(t, err)
		out = append(out, arg.NamedArg())
	}
	return out
}

func TestNamedArgsOrder(t *testing.T) {
	t.Parallel()

	args := mustNamedArgs(t, "zeta:u8='1'", "alpha:string='x'", "mid:opt_u64=null")
	require.Equal(t, []string{"zeta", "alpha", "mid"}, args.Names())

	v, ok := args.Get("alpha")
	require.True(t, ok)
	require.Equal(t, []byte{1, 0, 0, 0, 'x'}, v.Bytes)

	_, ok = args.Get("missing")
	require.False(t, ok)
}

func TestNamedArgsBytes(t *testing.T) {
	t.Parallel()

	args := mustNamedArgs(t, "a:u8='7'")
	require.Equal(t, []byte{
		1, 0, 0, 0, // count
		1, 0, 0, 0, 'a', // name
		1, 0, 0, 0, 7, // value
		byte(clvalue.TagU8),
	}, args.ToBytes())

	require.Equal(t, []byte{0, 0, 0, 0}, NamedArgs{}.ToBytes())
}

func TestReadComplexArgs(t *testing.T) {
	t.Parallel()

	args := mustNamedArgs(t,
		"amount:u512='2500000000'",
		"target:account_hash='account-hash-"+testAddrHex+"'",
		"id:opt_u64='9'",
		"memo:opt_string=null",
	)
	data := args.ToBytes()

	got, err := ReadComplexArgs(data)
	require.NoError(t, err)
	require.Equal(t, args.Names(), got.Names())
	for i := range args {
		require.True(t, args[i].Value.Equal(got[i].Value), args[i].Name)
	}

	_, err = ReadComplexArgs(append(data, 0))
	require.ErrorIs(t, err, clvalue.ErrLeftOverBytes)

	_, err = ReadComplexArgs(data[:len(data)-1])
	require.Error(t, err)
}

func TestNamedArgsJSON(t *testing.T) {
	t.Parallel()

	args := mustNamedArgs(t, "a:u64='5'", "b:opt_bool=null")
	data, err := json.Marshal(args)
	require.NoError(t, err)
	require.JSONEq(t, `[
		["a", {"cl_type": "U64", "bytes": "0500000000000000", "parsed": 5}],
		["b", {"cl_type": {"Option": "Bool"}, "bytes": "00", "parsed": null}]
	]`, string(data))

	var decoded NamedArgs
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	for i := range args {
		require.Equal(t, args[i].Name, decoded[i].Name)
		require.True(t, args[i].Value.Equal(decoded[i].Value))
	}
}

func TestComplexArgsOversizedList(t *testing.T) {
	t.Parallel()

	args := NamedArgs{{Name: "units", Value: clvalue.New(clvalue.List(clvalue.Unit), []byte{0xff, 0xff, 0xff, 0xff})}}
	got, err := ReadComplexArgs(args.ToBytes())
	require.NoError(t, err)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	require.JSONEq(t, `[["units",{"cl_type":{"List":"Unit"},"bytes":"ffffffff"}]]`, string(data))
}
