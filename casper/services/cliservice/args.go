package cliservice

import (
	"errors"
	"fmt"

	"github.com/casper-ecosystem/casper-client-go/casper/common/logging"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/args"
)

// EncodeArgs encodes "NAME:TYPE='VALUE'" strings into runtime args. All bad
// arguments are reported together.
func (s *Service) EncodeArgs(raw []string) (args.NamedArgs, error) {
	out := make(args.NamedArgs, 0, len(raw))
	var errs []error
	for i, r := range raw {
		arg, err := args.ParseTypedArg(r)
		if err != nil {
			errs = append(errs, fmt.Errorf("arg #%d: %w", i+1, err))
			continue
		}
		s.logger.Trace().
			Str(logging.FieldArgName, arg.Name).
			Stringer(logging.FieldArgType, arg.Tag).
			Msg("Encoded argument")
		out = append(out, arg.NamedArg())
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}
