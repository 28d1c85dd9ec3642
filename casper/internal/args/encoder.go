package args

import (
	"fmt"

	"github.com/casper-ecosystem/casper-client-go/casper/internal/clvalue"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
)

// TypedArg is a simple argument after encoding.
type TypedArg struct {
	Name  string
	Tag   TypeTag
	Value clvalue.CLValue
}

func (a TypedArg) NamedArg() NamedArg {
	return NamedArg{Name: a.Name, Value: a.Value}
}

// ParseTypedArg tokenizes and encodes one "NAME:TYPE='VALUE'" string.
func ParseTypedArg(raw string) (TypedArg, error) {
	tok, err := Tokenize(raw)
	if err != nil {
		return TypedArg{}, err
	}
	return Encode(tok)
}

// Encode turns a token into a typed value. The null token is only accepted
// for opt_ types and always means None.
func Encode(tok Token) (TypedArg, error) {
	tag, err := ParseTypeTag(tok.Type)
	if err != nil {
		return TypedArg{}, &ArgError{Kind: ErrUnknownType, Arg: tok.Name, Input: tok.Type}
	}

	w := clvalue.NewWriter()
	switch {
	case tok.Null && !tag.Optional:
		return TypedArg{}, &ArgError{
			Kind:    ErrInvalidValue,
			Arg:     tok.Name,
			Context: tag.String(),
			Input:   nullToken,
			Err:     fmt.Errorf("null is only allowed for %s types", optionalPrefix),
		}
	case tok.Null:
		w.U8(0)
	default:
		if tag.Optional {
			w.U8(1)
		}
		rule := kindRules[tag.Kind]
		if err := rule.encode(w, tok.Value); err != nil {
			return TypedArg{}, &ArgError{
				Kind:    rule.errKind,
				Arg:     tok.Name,
				Context: tag.String(),
				Input:   tok.Value,
				Err:     err,
			}
		}
	}

	return TypedArg{
		Name:  tok.Name,
		Tag:   tag,
		Value: clvalue.New(tag.CLType(), w.Bytes()),
	}, nil
}

// DecodeValue is the inverse of Encode: it returns the Go value held by an
// encoded argument. Optional values decode to nil for None and to the inner
// value for Some.
func DecodeValue(tag TypeTag, v clvalue.CLValue) (any, error) {
	if !v.Type.Equal(tag.CLType()) {
		return nil, fmt.Errorf("%w: value of type %s is not %s", clvalue.ErrSerialization, v.Type, tag)
	}

	r := clvalue.NewReader(v.Bytes)
	decoded, err := clvalue.Decode(v.Type, r)
	if err != nil {
		return nil, err
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}

	if opt, ok := decoded.(clvalue.OptionValue); ok {
		if !opt.Some {
			return nil, nil
		}
		decoded = opt.Value
	}
	if tag.Kind == KindAccountHash {
		return types.AccountHash(decoded.([]byte)), nil
	}
	return decoded, nil
}
