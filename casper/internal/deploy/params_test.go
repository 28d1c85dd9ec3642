package deploy

import (
	"testing"

	"github.com/casper-ecosystem/casper-client-go/casper/internal/args"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
	"github.com/stretchr/testify/require"
)

func testMetadata(t *testing.T) Metadata {
	t.Helper()

	account, err := types.NewPublicKey(types.AlgorithmEd25519, make([]byte, 32))
	require.NoError(t, err)
	ttl, err := types.ParseTimeDiff(DefaultTTL)
	require.NoError(t, err)
	ts, err := types.ParseTimestamp("2024-05-01T12:00:00Z")
	require.NoError(t, err)

	return Metadata{
		Account:   account,
		Timestamp: ts,
		TTL:       ttl,
		ChainName: "casper-test",
	}
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	meta := testMetadata(t)
	params, err := Assemble(
		InlineCode{Path: "code.wasm"},
		[]string{"z:u8='1'", "a:string='x'", "m:opt_u64=null"},
		StandardPayment{Amount: types.NewU512(2_500_000_000)},
		[]string{"note:string='hi'"},
		meta,
	)
	require.NoError(t, err)

	require.Equal(t, []string{"z", "a", "m"}, params.SessionArgs.Names())
	require.Equal(t, []string{AmountArg, "note"}, params.PaymentArgs.Names())
	amount, ok := params.PaymentArgs.Get(AmountArg)
	require.True(t, ok)
	require.Equal(t, types.NewU512(2_500_000_000).Bytes(), amount.Bytes)

	require.Equal(t, uint64(DefaultGasPrice), params.GasPrice)
	require.NotNil(t, params.Dependencies)
	require.Equal(t, "casper-test", params.ChainName)
	require.Equal(t, InlineCode{Path: "code.wasm"}, params.Session)
}

func TestAssembleAccumulatesErrors(t *testing.T) {
	t.Parallel()

	meta := testMetadata(t)
	meta.ChainName = ""

	_, err := Assemble(
		Transfer{},
		[]string{"amount:u8='256'", "ok:u8='1'", "flag:bool='maybe'"},
		StandardPayment{Amount: types.NewU512(1)},
		[]string{"x:u99='1'", "broken"},
		meta,
	)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMissingRequiredField)
	require.ErrorIs(t, err, args.ErrInvalidNumber)
	require.ErrorIs(t, err, args.ErrInvalidValue)
	require.ErrorIs(t, err, args.ErrUnknownType)
	require.ErrorIs(t, err, args.ErrMalformedArgument)

	msg := err.Error()
	require.Contains(t, msg, "session arg #1")
	require.Contains(t, msg, "session arg #3")
	require.NotContains(t, msg, "session arg #2")
	require.Contains(t, msg, "payment arg #1")
	require.Contains(t, msg, "payment arg #2")
}

func TestAssembleAmountConflict(t *testing.T) {
	t.Parallel()

	_, err := Assemble(
		Transfer{},
		nil,
		StandardPayment{Amount: types.NewU512(1)},
		[]string{"amount:u512='5'"},
		testMetadata(t),
	)
	require.ErrorIs(t, err, ErrConflictingArguments)

	params, err := Assemble(
		Transfer{},
		nil,
		InlineCode{Path: "payment.wasm"},
		[]string{"amount:u512='5'"},
		testMetadata(t),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"amount"}, params.PaymentArgs.Names())
}

func TestAssembleComplexArgs(t *testing.T) {
	t.Parallel()

	arg, err := args.ParseTypedArg("target:u64='9'")
	require.NoError(t, err)
	complexArgs := args.NamedArgs{arg.NamedArg()}

	params, err := Assemble(
		Transfer{},
		nil,
		StandardPayment{Amount: types.NewU512(1)},
		nil,
		testMetadata(t),
		WithSessionComplexArgs(complexArgs),
	)
	require.NoError(t, err)
	require.Equal(t, complexArgs, params.SessionArgs)

	_, err = Assemble(
		Transfer{},
		[]string{"a:u8='1'"},
		StandardPayment{Amount: types.NewU512(1)},
		nil,
		testMetadata(t),
		WithSessionComplexArgs(complexArgs),
	)
	require.ErrorIs(t, err, ErrConflictingArguments)
}

func TestAssembleMissingTargets(t *testing.T) {
	t.Parallel()

	meta := testMetadata(t)
	meta.Account = types.PublicKey{}

	_, err := Assemble(nil, nil, nil, nil, meta)
	require.ErrorIs(t, err, ErrMissingRequiredField)
	require.ErrorContains(t, err, "session account")
	require.ErrorContains(t, err, "payment")
}
