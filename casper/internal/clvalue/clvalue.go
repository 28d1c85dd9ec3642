package clvalue

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/casper-ecosystem/casper-client-go/casper/common/hexutil"
)

// CLValue is a serialized value together with its type.
type CLValue struct {
	Type  CLType
	Bytes []byte
}

func New(t CLType, data []byte) CLValue {
	return CLValue{Type: t, Bytes: data}
}

func (v CLValue) Equal(other CLValue) bool {
	return v.Type.Equal(other.Type) && bytes.Equal(v.Bytes, other.Bytes)
}

// Write appends the wire form: length-prefixed bytes followed by the type.
func (v CLValue) Write(w *Writer) {
	w.LenBytes(v.Bytes)
	v.Type.write(w)
}

func (v CLValue) ToBytes() []byte {
	w := NewWriter()
	v.Write(w)
	return w.Bytes()
}

func ReadCLValue(r *Reader) (CLValue, error) {
	data, err := r.LenBytes()
	if err != nil {
		return CLValue{}, err
	}
	t, err := ReadCLType(r)
	if err != nil {
		return CLValue{}, err
	}
	return CLValue{Type: t, Bytes: bytes.Clone(data)}, nil
}

// Parsed decodes the bytes into a JSON-friendly value.
func (v CLValue) Parsed() (any, error) {
	r := NewReader(v.Bytes)
	decoded, err := Decode(v.Type, r)
	if err != nil {
		return nil, err
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}
	return toParsed(decoded), nil
}

type clValueJSON struct {
	CLType CLType          `json:"cl_type"`
	Bytes  string          `json:"bytes"`
	Parsed json.RawMessage `json:"parsed,omitempty"`
}

func (v CLValue) MarshalJSON() ([]byte, error) {
	out := clValueJSON{
		CLType: v.Type,
		Bytes:  hexutil.EncodeNo0x(v.Bytes),
	}
	// Values that cannot be decoded (e.g. Any) are emitted without "parsed".
	if parsed, err := v.Parsed(); err == nil {
		raw, err := json.Marshal(parsed)
		if err != nil {
			return nil, err
		}
		out.Parsed = raw
	}
	return json.Marshal(out)
}

func (v *CLValue) UnmarshalJSON(data []byte) error {
	var in clValueJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	b, err := hex.DecodeString(in.Bytes)
	if err != nil {
		return fmt.Errorf("%w: invalid bytes %q: %w", ErrSerialization, in.Bytes, err)
	}
	*v = CLValue{Type: in.CLType, Bytes: b}
	return nil
}
