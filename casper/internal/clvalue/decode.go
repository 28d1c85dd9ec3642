package clvalue

import (
	"fmt"

	"github.com/casper-ecosystem/casper-client-go/casper/common/hexutil"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
)

// Decoded forms of compound values.
type (
	UnitValue struct{}

	OptionValue struct {
		Some  bool
		Value any
	}

	ResultValue struct {
		Ok    bool
		Value any
	}

	MapEntry struct {
		Key   any
		Value any
	}
)

// Decode reads one value of type t. Scalars decode to Go builtins or types
// package values, ByteArray to []byte.
func Decode(t CLType, r *Reader) (any, error) {
	switch t.Tag {
	case TagBool:
		return r.Bool()
	case TagI32:
		return r.I32()
	case TagI64:
		return r.I64()
	case TagU8:
		return r.U8()
	case TagU32:
		return r.U32()
	case TagU64:
		return r.U64()
	case TagU128:
		return decodeWith(r, types.DecodeU128)
	case TagU256:
		return decodeWith(r, types.DecodeU256)
	case TagU512:
		return decodeWith(r, types.DecodeU512)
	case TagUnit:
		return UnitValue{}, nil
	case TagString:
		return r.Str()
	case TagKey:
		return decodeWith(r, types.DecodeKey)
	case TagURef:
		return decodeWith(r, types.DecodeURef)
	case TagPublicKey:
		return decodeWith(r, types.DecodePublicKey)
	case TagByteArray:
		b, err := r.Raw(int(t.Size))
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), b...), nil
	case TagOption:
		some, err := r.U8()
		if err != nil {
			return nil, err
		}
		switch some {
		case 0:
			return OptionValue{}, nil
		case 1:
			inner, err := Decode(t.Inner[0], r)
			if err != nil {
				return nil, err
			}
			return OptionValue{Some: true, Value: inner}, nil
		}
		return nil, fmt.Errorf("%w: invalid option tag %d", ErrSerialization, some)
	case TagResult:
		ok, err := r.Bool()
		if err != nil {
			return nil, err
		}
		inner := t.Inner[1]
		if ok {
			inner = t.Inner[0]
		}
		v, err := Decode(inner, r)
		if err != nil {
			return nil, err
		}
		return ResultValue{Ok: ok, Value: v}, nil
	case TagList:
		n, err := r.U32()
		if err != nil {
			return nil, err
		}
		if err := checkCount(n, minEncodedSize(t.Inner[0]), r); err != nil {
			return nil, err
		}
		items := make([]any, 0, min(int(n), len(r.Remaining())))
		for range n {
			item, err := Decode(t.Inner[0], r)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case TagMap:
		n, err := r.U32()
		if err != nil {
			return nil, err
		}
		if err := checkCount(n, minEncodedSize(t.Inner[0])+minEncodedSize(t.Inner[1]), r); err != nil {
			return nil, err
		}
		entries := make([]MapEntry, 0, min(int(n), len(r.Remaining())))
		for range n {
			k, err := Decode(t.Inner[0], r)
			if err != nil {
				return nil, err
			}
			v, err := Decode(t.Inner[1], r)
			if err != nil {
				return nil, err
			}
			entries = append(entries, MapEntry{Key: k, Value: v})
		}
		return entries, nil
	case TagTuple1, TagTuple2, TagTuple3:
		elems := make([]any, len(t.Inner))
		for i, inner := range t.Inner {
			v, err := Decode(inner, r)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return elems, nil
	}
	return nil, fmt.Errorf("%w: cannot decode %s", ErrSerialization, t)
}

func decodeWith[T any](r *Reader, decode func([]byte) (T, []byte, error)) (any, error) {
	var out T
	err := r.Sub(func(data []byte) ([]byte, error) {
		v, rest, err := decode(data)
		out = v
		return rest, err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toParsed(v any) any {
	switch v := v.(type) {
	case UnitValue:
		return nil
	case []byte:
		return hexutil.EncodeNo0x(v)
	case OptionValue:
		if !v.Some {
			return nil
		}
		return toParsed(v.Value)
	case ResultValue:
		if v.Ok {
			return map[string]any{"Ok": toParsed(v.Value)}
		}
		return map[string]any{"Err": toParsed(v.Value)}
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = toParsed(item)
		}
		return out
	case []MapEntry:
		out := make([]map[string]any, len(v))
		for i, e := range v {
			out[i] = map[string]any{"key": toParsed(e.Key), "value": toParsed(e.Value)}
		}
		return out
	}
	return v
}

// maxZeroWidthItems bounds collections of values that encode to no bytes.
const maxZeroWidthItems = 1 << 16

// minEncodedSize is a lower bound of the encoded size of a value of type t.
func minEncodedSize(t CLType) int {
	switch t.Tag {
	case TagUnit, TagAny:
		return 0
	case TagByteArray:
		return int(t.Size)
	case TagTuple1, TagTuple2, TagTuple3:
		size := 0
		for _, inner := range t.Inner {
			size += minEncodedSize(inner)
		}
		return size
	}
	return 1
}

// checkCount rejects element counts the remaining input cannot hold.
func checkCount(n uint32, width int, r *Reader) error {
	if width == 0 {
		if n > maxZeroWidthItems {
			return fmt.Errorf("%w: %d zero-sized elements exceed the limit of %d", ErrSerialization, n, maxZeroWidthItems)
		}
		return nil
	}
	if uint64(n)*uint64(width) > uint64(len(r.Remaining())) {
		return fmt.Errorf("%w: %d elements do not fit into %d bytes", ErrSerialization, n, len(r.Remaining()))
	}
	return nil
}
