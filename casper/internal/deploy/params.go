package deploy

import (
	"errors"
	"fmt"

	"github.com/casper-ecosystem/casper-client-go/casper/common"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/args"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/clvalue"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
)

const (
	DefaultGasPrice = 1
	DefaultTTL      = "30min"

	// AmountArg is the payment arg read by the standard payment code.
	AmountArg = "amount"
)

// Metadata is the part of a deploy header that does not depend on the body.
type Metadata struct {
	Account      types.PublicKey
	Timestamp    types.Timestamp
	TTL          types.TimeDiff
	GasPrice     uint64
	ChainName    string
	Dependencies []common.Hash
}

// CreationParams is everything needed to build an unsigned deploy.
type CreationParams struct {
	Metadata

	Session     SessionTarget
	SessionArgs args.NamedArgs
	Payment     PaymentTarget
	PaymentArgs args.NamedArgs
}

type assembleOptions struct {
	sessionComplex args.NamedArgs
	paymentComplex args.NamedArgs
}

type AssembleOption func(*assembleOptions)

// WithSessionComplexArgs supplies session args decoded from a complex args file.
func WithSessionComplexArgs(a args.NamedArgs) AssembleOption {
	return func(o *assembleOptions) { o.sessionComplex = a }
}

// WithPaymentComplexArgs supplies payment args decoded from a complex args file.
func WithPaymentComplexArgs(a args.NamedArgs) AssembleOption {
	return func(o *assembleOptions) { o.paymentComplex = a }
}

// Assemble encodes the raw session and payment args and combines them with the
// targets and metadata. It does not stop at the first bad argument: every
// failure is reported in one joined error. Argument order is preserved.
func Assemble(
	session SessionTarget,
	sessionArgs []string,
	payment PaymentTarget,
	paymentArgs []string,
	meta Metadata,
	opts ...AssembleOption,
) (*CreationParams, error) {
	var o assembleOptions
	for _, opt := range opts {
		opt(&o)
	}

	var errs []error
	if meta.ChainName == "" {
		errs = append(errs, fmt.Errorf("%w: chain name", ErrMissingRequiredField))
	}
	if len(meta.Account.Raw) == 0 {
		errs = append(errs, fmt.Errorf("%w: session account", ErrMissingRequiredField))
	}
	if session == nil {
		errs = append(errs, fmt.Errorf("%w: session", ErrMissingRequiredField))
	}
	if payment == nil {
		errs = append(errs, fmt.Errorf("%w: payment", ErrMissingRequiredField))
	}
	if meta.GasPrice == 0 {
		meta.GasPrice = DefaultGasPrice
	}
	if meta.Dependencies == nil {
		meta.Dependencies = []common.Hash{}
	}

	sessionNamed, sessionErrs := encodeArgs(SessionPrefix, sessionArgs, o.sessionComplex)
	paymentNamed, paymentErrs := encodeArgs(PaymentPrefix, paymentArgs, o.paymentComplex)
	errs = append(errs, sessionErrs...)
	errs = append(errs, paymentErrs...)

	if std, ok := payment.(StandardPayment); ok {
		if _, exists := paymentNamed.Get(AmountArg); exists {
			errs = append(errs, &ConflictingArgumentsError{
				Context: PaymentPrefix,
				Args:    []string{PaymentAmountFlag, FlagName(PaymentPrefix, ArgSuffix) + " " + AmountArg},
			})
		}
		amount := args.NamedArg{Name: AmountArg, Value: clvalue.New(clvalue.U512, std.Amount.Bytes())}
		paymentNamed = append(args.NamedArgs{amount}, paymentNamed...)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &CreationParams{
		Metadata:    meta,
		Session:     session,
		SessionArgs: sessionNamed,
		Payment:     payment,
		PaymentArgs: paymentNamed,
	}, nil
}

func encodeArgs(prefix string, raw []string, complexArgs args.NamedArgs) (args.NamedArgs, []error) {
	if len(raw) > 0 && complexArgs != nil {
		return nil, []error{&ConflictingArgumentsError{
			Context: prefix,
			Args:    []string{FlagName(prefix, ArgSuffix), FlagName(prefix, ArgsComplexSuffix)},
		}}
	}
	if complexArgs != nil {
		return complexArgs, nil
	}

	var errs []error
	out := make(args.NamedArgs, 0, len(raw))
	for i, r := range raw {
		arg, err := args.ParseTypedArg(r)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s arg #%d: %w", prefix, i+1, err))
			continue
		}
		out = append(out, arg.NamedArg())
	}
	return out, errs
}
