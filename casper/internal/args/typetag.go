package args

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/casper-ecosystem/casper-client-go/casper/common/check"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/clvalue"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
)

// Kind is the base type of a simple argument.
type Kind uint8

const (
	KindBool Kind = iota
	KindI32
	KindI64
	KindU8
	KindU32
	KindU64
	KindU128
	KindU256
	KindU512
	KindUnit
	KindString
	KindKey
	KindAccountHash
	KindURef
	KindPublicKey

	kindCount
)

const optionalPrefix = "opt_"

// TypeTag is the type written after the colon, e.g. "u64" or "opt_key".
type TypeTag struct {
	Kind     Kind
	Optional bool
}

type encodeFunc func(w *clvalue.Writer, value string) error

type kindRule struct {
	name   string
	clType clvalue.CLType
	// errKind classifies parse failures of the value.
	errKind error
	encode  encodeFunc
}

var kindRules = [kindCount]kindRule{
	KindBool:        {"bool", clvalue.Bool, ErrInvalidValue, encodeBool},
	KindI32:         {"i32", clvalue.I32, ErrInvalidNumber, encodeInt(32, func(w *clvalue.Writer, v int64) { w.I32(int32(v)) })},
	KindI64:         {"i64", clvalue.I64, ErrInvalidNumber, encodeInt(64, func(w *clvalue.Writer, v int64) { w.I64(v) })},
	KindU8:          {"u8", clvalue.U8, ErrInvalidNumber, encodeUint(8, func(w *clvalue.Writer, v uint64) { w.U8(uint8(v)) })},
	KindU32:         {"u32", clvalue.U32, ErrInvalidNumber, encodeUint(32, func(w *clvalue.Writer, v uint64) { w.U32(uint32(v)) })},
	KindU64:         {"u64", clvalue.U64, ErrInvalidNumber, encodeUint(64, func(w *clvalue.Writer, v uint64) { w.U64(v) })},
	KindU128:        {"u128", clvalue.U128, ErrInvalidNumber, encodeParsed(types.ParseU128)},
	KindU256:        {"u256", clvalue.U256, ErrInvalidNumber, encodeParsed(types.ParseU256)},
	KindU512:        {"u512", clvalue.U512, ErrInvalidNumber, encodeParsed(types.ParseU512)},
	KindUnit:        {"unit", clvalue.Unit, ErrInvalidValue, encodeUnit},
	KindString:      {"string", clvalue.String, ErrInvalidValue, encodeString},
	KindKey:         {"key", clvalue.Key, ErrInvalidFormattedString, encodeParsed(types.ParseKey)},
	KindAccountHash: {"account_hash", clvalue.ByteArray(types.AddrSize), ErrInvalidFormattedString, encodeAccountHash},
	KindURef:        {"uref", clvalue.URef, ErrInvalidFormattedString, encodeParsed(types.ParseURef)},
	KindPublicKey:   {"public_key", clvalue.PublicKey, ErrInvalidFormattedString, encodeParsed(types.ParsePublicKey)},
}

func init() {
	for kind, rule := range kindRules {
		check.PanicIfNotf(rule.name != "" && rule.encode != nil, "no rule for kind %d", kind)
	}
}

func (k Kind) String() string {
	if k < kindCount {
		return kindRules[k].name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Kinds lists every base kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// ParseTypeTag resolves a type name. Matching is exact and case-sensitive.
func ParseTypeTag(s string) (TypeTag, error) {
	name, optional := strings.CutPrefix(s, optionalPrefix)
	for kind, rule := range kindRules {
		if rule.name == name {
			return TypeTag{Kind: Kind(kind), Optional: optional}, nil
		}
	}
	return TypeTag{}, &ArgError{Kind: ErrUnknownType, Input: s}
}

func (t TypeTag) String() string {
	if t.Optional {
		return optionalPrefix + t.Kind.String()
	}
	return t.Kind.String()
}

func (t TypeTag) CLType() clvalue.CLType {
	inner := kindRules[t.Kind].clType
	if t.Optional {
		return clvalue.Option(inner)
	}
	return inner
}

// SupportedTypeList is the comma-separated list of base type names.
func SupportedTypeList() string {
	names := make([]string, 0, kindCount)
	for _, rule := range kindRules {
		names = append(names, rule.name)
	}
	return strings.Join(names, ", ")
}

func encodeBool(w *clvalue.Writer, value string) error {
	switch value {
	case "true":
		w.Bool(true)
	case "false":
		w.Bool(false)
	default:
		return fmt.Errorf("expected 'true' or 'false'")
	}
	return nil
}

func encodeInt(bits int, write func(*clvalue.Writer, int64)) encodeFunc {
	return func(w *clvalue.Writer, value string) error {
		v, err := strconv.ParseInt(value, 10, bits)
		if err != nil {
			return err
		}
		write(w, v)
		return nil
	}
}

func encodeUint(bits int, write func(*clvalue.Writer, uint64)) encodeFunc {
	return func(w *clvalue.Writer, value string) error {
		v, err := strconv.ParseUint(value, 10, bits)
		if err != nil {
			return err
		}
		write(w, v)
		return nil
	}
}

func encodeParsed[T interface{ Bytes() []byte }](parse func(string) (T, error)) encodeFunc {
	return func(w *clvalue.Writer, value string) error {
		v, err := parse(value)
		if err != nil {
			return err
		}
		w.Raw(v.Bytes())
		return nil
	}
}

func encodeUnit(_ *clvalue.Writer, value string) error {
	if value != "" {
		return fmt.Errorf("unit value must be empty")
	}
	return nil
}

func encodeString(w *clvalue.Writer, value string) error {
	w.Str(value)
	return nil
}

func encodeAccountHash(w *clvalue.Writer, value string) error {
	h, err := types.ParseAccountHash(value)
	if err != nil {
		return err
	}
	w.Raw(h[:])
	return nil
}
