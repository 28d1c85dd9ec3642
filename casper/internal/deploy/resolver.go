package deploy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/casper-ecosystem/casper-client-go/casper/internal/args"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
	"github.com/samber/lo"
)

var (
	ErrConflictingArguments = errors.New("conflicting arguments")
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrNoSource is returned when none of the source flags was given.
	ErrNoSource = errors.New("no code source given")
)

// ConflictingArgumentsError lists flags that cannot be used together.
type ConflictingArgumentsError struct {
	Context string
	Args    []string
}

func (e *ConflictingArgumentsError) Error() string {
	quoted := lo.Map(e.Args, func(a string, _ int) string { return "--" + a })
	return fmt.Sprintf("%s for %s: %s", ErrConflictingArguments, e.Context, strings.Join(quoted, ", "))
}

func (e *ConflictingArgumentsError) Is(target error) bool {
	return target == ErrConflictingArguments
}

type source struct {
	flag    string
	present bool
	build   func() (ExecutionTarget, error)
}

// ResolveSession picks the session target. Exactly one source must be set.
// Sources are considered in the order transfer, path, hash, name,
// package hash, package name.
func ResolveSession(opts SessionOptions) (SessionTarget, error) {
	sources := append([]source{{
		flag:    TransferFlag,
		present: opts.Transfer,
		build: func() (ExecutionTarget, error) {
			if err := rejectEntryPoint(SessionPrefix, TransferFlag, opts.EntryPoint); err != nil {
				return nil, err
			}
			return Transfer{}, nil
		},
	}}, codeSources(SessionPrefix, opts.SourceOptions)...)

	target, err := resolve(SessionPrefix, opts.SourceOptions, sources)
	if err != nil {
		return nil, err
	}
	// Every source above builds a session variant.
	return target.(SessionTarget), nil
}

// ResolvePayment picks the payment target. The standard payment amount is
// considered first, then the same sources as for the session.
func ResolvePayment(opts PaymentOptions) (PaymentTarget, error) {
	sources := append([]source{{
		flag:    PaymentAmountFlag,
		present: opts.StandardAmount != nil,
		build: func() (ExecutionTarget, error) {
			if err := rejectEntryPoint(PaymentPrefix, PaymentAmountFlag, opts.EntryPoint); err != nil {
				return nil, err
			}
			amount, err := types.ParseU512(*opts.StandardAmount)
			if err != nil {
				return nil, &args.ArgError{
					Kind:  args.ErrInvalidNumber,
					Arg:   PaymentAmountFlag,
					Input: *opts.StandardAmount,
					Err:   err,
				}
			}
			return StandardPayment{Amount: amount}, nil
		},
	}}, codeSources(PaymentPrefix, opts.SourceOptions)...)

	target, err := resolve(PaymentPrefix, opts.SourceOptions, sources)
	if err != nil {
		return nil, err
	}
	return target.(PaymentTarget), nil
}

func resolve(prefix string, opts SourceOptions, sources []source) (ExecutionTarget, error) {
	if len(opts.Args) > 0 && opts.ArgsComplex != nil {
		return nil, &ConflictingArgumentsError{
			Context: prefix,
			Args:    []string{FlagName(prefix, ArgSuffix), FlagName(prefix, ArgsComplexSuffix)},
		}
	}

	present := lo.Filter(sources, func(s source, _ int) bool { return s.present })
	flags := func(ss []source) []string {
		return lo.Map(ss, func(s source, _ int) string { return s.flag })
	}
	switch len(present) {
	case 0:
		return nil, fmt.Errorf("%w for %s: one of --%s is required",
			ErrNoSource, prefix, strings.Join(flags(sources), ", --"))
	case 1:
		return present[0].build()
	}
	return nil, &ConflictingArgumentsError{Context: prefix, Args: flags(present)}
}

// codeSources lists the sources shared by session and payment in priority order.
func codeSources(prefix string, opts SourceOptions) []source {
	entryPointFlag := FlagName(prefix, EntryPointSuffix)

	stored := func(flag string) (string, error) {
		if opts.EntryPoint == "" {
			return "", fmt.Errorf("%w: --%s is required with --%s", ErrMissingRequiredField, entryPointFlag, flag)
		}
		return opts.EntryPoint, nil
	}
	hash := func(flag, value string) (ExecutionTarget, error) {
		entryPoint, err := stored(flag)
		if err != nil {
			return nil, err
		}
		h, err := types.ParseHashAddr(value)
		if err != nil {
			return nil, &args.ArgError{
				Kind:    args.ErrInvalidFormattedString,
				Arg:     flag,
				Context: HashSuffix,
				Input:   value,
				Err:     err,
			}
		}
		if flag == FlagName(prefix, HashSuffix) {
			return StoredContractByHash{Hash: h, EntryPoint: entryPoint}, nil
		}
		version, err := parseVersion(prefix, opts.Version)
		if err != nil {
			return nil, err
		}
		return StoredPackageByHash{Hash: h, Version: version, EntryPoint: entryPoint}, nil
	}
	name := func(flag, value string) (ExecutionTarget, error) {
		entryPoint, err := stored(flag)
		if err != nil {
			return nil, err
		}
		if flag == FlagName(prefix, NameSuffix) {
			return StoredContractByName{Name: value, EntryPoint: entryPoint}, nil
		}
		version, err := parseVersion(prefix, opts.Version)
		if err != nil {
			return nil, err
		}
		return StoredPackageByName{Name: value, Version: version, EntryPoint: entryPoint}, nil
	}

	field := func(suffix string, value *string, build func(flag, value string) (ExecutionTarget, error)) source {
		flag := FlagName(prefix, suffix)
		return source{
			flag:    flag,
			present: value != nil,
			build:   func() (ExecutionTarget, error) { return build(flag, *value) },
		}
	}

	return []source{
		field(PathSuffix, opts.Path, func(flag, value string) (ExecutionTarget, error) {
			if err := rejectEntryPoint(prefix, flag, opts.EntryPoint); err != nil {
				return nil, err
			}
			return InlineCode{Path: value}, nil
		}),
		field(HashSuffix, opts.Hash, hash),
		field(NameSuffix, opts.Name, name),
		field(PackageHashSuffix, opts.PackageHash, hash),
		field(PackageNameSuffix, opts.PackageName, name),
	}
}

// rejectEntryPoint fails if an entry point was given for a source that has none.
func rejectEntryPoint(prefix, flag, entryPoint string) error {
	if entryPoint == "" {
		return nil
	}
	return &ConflictingArgumentsError{Context: prefix, Args: []string{flag, FlagName(prefix, EntryPointSuffix)}}
}

// parseVersion reads the optional package version. It is only consulted for
// package sources and ignored otherwise.
func parseVersion(prefix string, value *string) (*uint32, error) {
	if value == nil {
		return nil, nil
	}
	v, err := strconv.ParseUint(*value, 10, 32)
	if err != nil {
		return nil, &args.ArgError{
			Kind:  args.ErrInvalidNumber,
			Arg:   FlagName(prefix, VersionSuffix),
			Input: *value,
			Err:   err,
		}
	}
	version := uint32(v)
	return &version, nil
}
