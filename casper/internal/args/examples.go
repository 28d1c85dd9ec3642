package args

import (
	"fmt"
	"strings"

	"github.com/casper-ecosystem/casper-client-go/casper/common/hexutil"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
)

const ExamplesHeader = "Examples for passing values via --session-arg or --payment-arg:"

// Example is one sample argument. A nil Value stands for the null token.
type Example struct {
	Name    string
	Tag     TypeTag
	Value   *string
	Comment string
}

func (e Example) String() string {
	if e.Value == nil {
		return fmt.Sprintf("%s:%s=%s", e.Name, e.Tag, nullToken)
	}
	return fmt.Sprintf("%s:%s='%s'", e.Name, e.Tag, *e.Value)
}

func some(s string) *string { return &s }

func exampleAddr() [types.AddrSize]byte {
	var addr [types.AddrSize]byte
	for i := range addr {
		addr[i] = byte(i + 1)
	}
	return addr
}

// kindExamples returns the sample values of one kind.
func kindExamples(kind Kind) []Example {
	tag := TypeTag{Kind: kind}
	addr := exampleAddr()
	uref := types.URef{Addr: addr, Rights: types.AccessReadAddWrite}

	switch kind {
	case KindBool:
		return []Example{{Tag: tag, Value: some("false")}}
	case KindI32:
		return []Example{{Tag: tag, Value: some("-1")}}
	case KindI64:
		return []Example{{Tag: tag, Value: some("-2")}}
	case KindUnit:
		return []Example{{Tag: tag, Value: some("")}}
	case KindString:
		return []Example{{Tag: tag, Value: some("a value")}}
	case KindKey:
		return []Example{
			{Name: "key_account_name", Tag: tag, Value: some(types.NewAccountKey(types.AccountHash(addr)).String())},
			{Name: "key_hash_name", Tag: tag, Value: some(types.NewHashKey(addr).String())},
			{Name: "key_uref_name", Tag: tag, Value: some(types.NewURefKey(uref).String())},
		}
	case KindAccountHash:
		return []Example{{Name: "account_hash_name", Tag: tag, Value: some(types.AccountHash(addr).String())}}
	case KindURef:
		return []Example{{Name: "uref_name", Tag: tag, Value: some(uref.String())}}
	case KindPublicKey:
		pk := append([]byte{byte(types.AlgorithmEd25519)}, examplePublicKey...)
		return []Example{{Name: "public_key_name", Tag: tag, Value: some(hexutil.EncodeNo0x(pk))}}
	}
	// unsigned integers use their ordinal as the sample value
	return []Example{{Tag: tag, Value: some(fmt.Sprint(int(kind)))}}
}

var examplePublicKey = hexutil.MustDecodeHex("19bf44096984cdfe8541bac167dc3b96c85086aa30b6b6cb0c5c38ad703166e1")

// SupportedTypeExamples returns one example per kind, then a few optional ones.
// Anonymous examples are numbered in order.
func SupportedTypeExamples() (simple []Example, optional []Example) {
	for _, kind := range Kinds() {
		for _, ex := range kindExamples(kind) {
			if ex.Name == "" {
				ex.Name = fmt.Sprintf("name_%02d", len(simple)+1)
			}
			simple = append(simple, ex)
		}
	}

	opt := func(kind Kind, value *string, comment string) {
		optional = append(optional, Example{
			Name:    fmt.Sprintf("name_%02d", len(optional)+1),
			Tag:     TypeTag{Kind: kind, Optional: true},
			Value:   value,
			Comment: comment,
		})
	}
	opt(KindBool, some("true"), "Some(true)")
	opt(KindBool, some("false"), "Some(false)")
	opt(KindBool, nil, "None")
	opt(KindI32, some("-1"), "Some(-1)")
	opt(KindI32, nil, "None")
	opt(KindUnit, some(""), "Some(())")
	opt(KindUnit, nil, "None")
	opt(KindString, some("a value"), `Some("a value")`)
	opt(KindString, some(nullToken), `Some("null")`)
	opt(KindString, nil, "None")
	return simple, optional
}

// SupportedTypeExamplesText renders the listing printed by --show-arg-examples.
func SupportedTypeExamplesText() string {
	simple, optional := SupportedTypeExamples()

	var sb strings.Builder
	for _, ex := range simple {
		sb.WriteString(ex.String())
		sb.WriteByte('\n')
	}

	sb.WriteString("\nOptional values of all of these types can also be specified.\n")
	fmt.Fprintf(&sb, "Prefix the type with %q and use the term %q without quotes to specify a None value:\n",
		optionalPrefix, nullToken)

	width := 0
	for _, ex := range optional {
		width = max(width, len(ex.String()))
	}
	for _, ex := range optional {
		fmt.Fprintf(&sb, "%-*s  # %s\n", width, ex.String(), ex.Comment)
	}
	return sb.String()
}
