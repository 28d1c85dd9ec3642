package clvalue

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/casper-ecosystem/casper-client-go/casper/common/check"
)

type Tag byte

const (
	TagBool      Tag = 0
	TagI32       Tag = 1
	TagI64       Tag = 2
	TagU8        Tag = 3
	TagU32       Tag = 4
	TagU64       Tag = 5
	TagU128      Tag = 6
	TagU256      Tag = 7
	TagU512      Tag = 8
	TagUnit      Tag = 9
	TagString    Tag = 10
	TagKey       Tag = 11
	TagURef      Tag = 12
	TagOption    Tag = 13
	TagList      Tag = 14
	TagByteArray Tag = 15
	TagResult    Tag = 16
	TagMap       Tag = 17
	TagTuple1    Tag = 18
	TagTuple2    Tag = 19
	TagTuple3    Tag = 20
	TagAny       Tag = 21
	TagPublicKey Tag = 22
)

var tagNames = map[Tag]string{
	TagBool:      "Bool",
	TagI32:       "I32",
	TagI64:       "I64",
	TagU8:        "U8",
	TagU32:       "U32",
	TagU64:       "U64",
	TagU128:      "U128",
	TagU256:      "U256",
	TagU512:      "U512",
	TagUnit:      "Unit",
	TagString:    "String",
	TagKey:       "Key",
	TagURef:      "URef",
	TagOption:    "Option",
	TagList:      "List",
	TagByteArray: "ByteArray",
	TagResult:    "Result",
	TagMap:       "Map",
	TagTuple1:    "Tuple1",
	TagTuple2:    "Tuple2",
	TagTuple3:    "Tuple3",
	TagAny:       "Any",
	TagPublicKey: "PublicKey",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tag(%d)", byte(t))
}

// CLType describes the type of a CLValue. Inner holds the parameters of
// compound types: one for Option and List, ok/err for Result, key/value for
// Map and the elements of tuples.
type CLType struct {
	Tag   Tag
	Inner []CLType
	Size  uint32
}

func Simple(tag Tag) CLType { return CLType{Tag: tag} }

func Option(inner CLType) CLType { return CLType{Tag: TagOption, Inner: []CLType{inner}} }

func List(inner CLType) CLType { return CLType{Tag: TagList, Inner: []CLType{inner}} }

func ByteArray(size uint32) CLType { return CLType{Tag: TagByteArray, Size: size} }

func Result(ok, err CLType) CLType { return CLType{Tag: TagResult, Inner: []CLType{ok, err}} }

func Map(key, value CLType) CLType { return CLType{Tag: TagMap, Inner: []CLType{key, value}} }

func Tuple(elems ...CLType) CLType {
	check.PanicIfNotf(len(elems) >= 1 && len(elems) <= 3, "tuple of %d elements", len(elems))
	return CLType{Tag: TagTuple1 + Tag(len(elems)-1), Inner: elems}
}

var (
	Bool      = Simple(TagBool)
	I32       = Simple(TagI32)
	I64       = Simple(TagI64)
	U8        = Simple(TagU8)
	U32       = Simple(TagU32)
	U64       = Simple(TagU64)
	U128      = Simple(TagU128)
	U256      = Simple(TagU256)
	U512      = Simple(TagU512)
	Unit      = Simple(TagUnit)
	String    = Simple(TagString)
	Key       = Simple(TagKey)
	URef      = Simple(TagURef)
	Any       = Simple(TagAny)
	PublicKey = Simple(TagPublicKey)
)

func innerCount(tag Tag) int {
	switch tag {
	case TagOption, TagList, TagTuple1:
		return 1
	case TagResult, TagMap, TagTuple2:
		return 2
	case TagTuple3:
		return 3
	}
	return 0
}

func (t CLType) Equal(other CLType) bool {
	if t.Tag != other.Tag || t.Size != other.Size || len(t.Inner) != len(other.Inner) {
		return false
	}
	for i := range t.Inner {
		if !t.Inner[i].Equal(other.Inner[i]) {
			return false
		}
	}
	return true
}

// Bytes returns the tag-prefixed binary form of the type.
func (t CLType) Bytes() []byte {
	w := NewWriter()
	t.write(w)
	return w.Bytes()
}

func (t CLType) write(w *Writer) {
	w.U8(byte(t.Tag))
	if t.Tag == TagByteArray {
		w.U32(t.Size)
		return
	}
	for _, inner := range t.Inner {
		inner.write(w)
	}
}

func ReadCLType(r *Reader) (CLType, error) {
	b, err := r.U8()
	if err != nil {
		return CLType{}, err
	}
	tag := Tag(b)
	if _, ok := tagNames[tag]; !ok {
		return CLType{}, fmt.Errorf("%w: %w: tag %d", ErrSerialization, ErrUnknownCLType, b)
	}
	t := CLType{Tag: tag}
	if tag == TagByteArray {
		t.Size, err = r.U32()
		return t, err
	}
	for range innerCount(tag) {
		inner, err := ReadCLType(r)
		if err != nil {
			return CLType{}, err
		}
		t.Inner = append(t.Inner, inner)
	}
	return t, nil
}

func (t CLType) String() string {
	switch {
	case t.Tag == TagByteArray:
		return fmt.Sprintf("ByteArray(%d)", t.Size)
	case len(t.Inner) == 0:
		return t.Tag.String()
	}
	inner := make([]string, len(t.Inner))
	for i, in := range t.Inner {
		inner[i] = in.String()
	}
	return fmt.Sprintf("%s<%s>", t.Tag, strings.Join(inner, ", "))
}

// MarshalJSON writes the node's representation, e.g. "U512", {"Option":"U64"} or {"ByteArray":32}.
func (t CLType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.jsonValue())
}

func (t CLType) jsonValue() any {
	name := t.Tag.String()
	switch t.Tag {
	case TagByteArray:
		return map[string]uint32{name: t.Size}
	case TagOption, TagList:
		return map[string]any{name: t.Inner[0].jsonValue()}
	case TagResult:
		return map[string]any{name: map[string]any{"ok": t.Inner[0].jsonValue(), "err": t.Inner[1].jsonValue()}}
	case TagMap:
		return map[string]any{name: map[string]any{"key": t.Inner[0].jsonValue(), "value": t.Inner[1].jsonValue()}}
	case TagTuple1, TagTuple2, TagTuple3:
		elems := make([]any, len(t.Inner))
		for i, in := range t.Inner {
			elems[i] = in.jsonValue()
		}
		return map[string]any{name: elems}
	}
	return name
}

func (t *CLType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		for tag, tagName := range tagNames {
			if tagName == name && innerCount(tag) == 0 && tag != TagByteArray {
				*t = Simple(tag)
				return nil
			}
		}
		return fmt.Errorf("%w: %q", ErrUnknownCLType, name)
	}

	var compound map[string]json.RawMessage
	if err := json.Unmarshal(data, &compound); err != nil {
		return err
	}
	if len(compound) != 1 {
		return fmt.Errorf("%w: %s", ErrUnknownCLType, data)
	}
	for name, raw := range compound {
		return t.unmarshalCompound(name, raw)
	}
	return nil
}

func (t *CLType) unmarshalCompound(name string, raw json.RawMessage) error {
	switch name {
	case "ByteArray":
		var size uint32
		if err := json.Unmarshal(raw, &size); err != nil {
			return err
		}
		*t = ByteArray(size)
	case "Option", "List":
		var inner CLType
		if err := json.Unmarshal(raw, &inner); err != nil {
			return err
		}
		if name == "Option" {
			*t = Option(inner)
		} else {
			*t = List(inner)
		}
	case "Result":
		var v struct {
			Ok  CLType `json:"ok"`
			Err CLType `json:"err"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*t = Result(v.Ok, v.Err)
	case "Map":
		var v struct {
			Key   CLType `json:"key"`
			Value CLType `json:"value"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*t = Map(v.Key, v.Value)
	case "Tuple1", "Tuple2", "Tuple3":
		var elems []CLType
		if err := json.Unmarshal(raw, &elems); err != nil {
			return err
		}
		if len(elems) != int(name[5]-'0') {
			return fmt.Errorf("%w: %s with %d elements", ErrUnknownCLType, name, len(elems))
		}
		*t = Tuple(elems...)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCLType, name)
	}
	return nil
}
