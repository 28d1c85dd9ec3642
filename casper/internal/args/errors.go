package args

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedArgument      = errors.New("malformed argument")
	ErrUnknownType            = errors.New("unknown type")
	ErrInvalidNumber          = errors.New("invalid number")
	ErrInvalidFormattedString = errors.New("invalid formatted string")
	ErrInvalidValue           = errors.New("invalid value")
)

// ArgError describes why one argument could not be parsed. Kind is one of
// the Err* sentinels above, so errors.Is(err, ErrInvalidNumber) works on it.
type ArgError struct {
	Kind    error
	Arg     string
	Context string
	Input   string
	Err     error
}

func (e *ArgError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	if e.Arg != "" {
		fmt.Fprintf(&sb, " for arg %q", e.Arg)
	}
	if e.Context != "" {
		fmt.Fprintf(&sb, " (%s)", e.Context)
	}
	fmt.Fprintf(&sb, ": %q", e.Input)
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

func (e *ArgError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func malformed(input, reason string) error {
	return &ArgError{Kind: ErrMalformedArgument, Input: input, Err: errors.New(reason)}
}
