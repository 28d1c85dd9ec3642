package clvalue

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Writer accumulates the little-endian binary representation used on the wire.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) Raw(b []byte) *Writer {
	w.buf = append(w.buf, b...)
	return w
}

func (w *Writer) Bool(v bool) *Writer {
	if v {
		return w.U8(1)
	}
	return w.U8(0)
}

func (w *Writer) U8(v uint8) *Writer {
	w.buf = append(w.buf, v)
	return w
}

func (w *Writer) U32(v uint32) *Writer {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
	return w
}

func (w *Writer) I32(v int32) *Writer { return w.U32(uint32(v)) }

func (w *Writer) U64(v uint64) *Writer {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
	return w
}

func (w *Writer) I64(v int64) *Writer { return w.U64(uint64(v)) }

// Len writes a collection length prefix.
func (w *Writer) Len(n int) *Writer {
	if n > math.MaxUint32 {
		panic(fmt.Sprintf("length %d does not fit into u32", n))
	}
	return w.U32(uint32(n))
}

// LenBytes writes a length-prefixed byte slice.
func (w *Writer) LenBytes(b []byte) *Writer {
	return w.Len(len(b)).Raw(b)
}

func (w *Writer) Str(s string) *Writer {
	return w.LenBytes([]byte(s))
}

// Reader consumes the binary representation produced by Writer.
type Reader struct {
	data []byte
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) Remaining() []byte { return r.data }

func (r *Reader) Empty() bool { return len(r.data) == 0 }

// Finish fails if unread bytes remain.
func (r *Reader) Finish() error {
	if len(r.data) != 0 {
		return fmt.Errorf("%w: %w: %d bytes", ErrSerialization, ErrLeftOverBytes, len(r.data))
	}
	return nil
}

func (r *Reader) Raw(n int) ([]byte, error) {
	if n < 0 || len(r.data) < n {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrSerialization, n, len(r.data))
	}
	out := r.data[:n]
	r.data = r.data[n:]
	return out, nil
}

func (r *Reader) U8() (uint8, error) {
	b, err := r.Raw(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) Bool() (bool, error) {
	b, err := r.U8()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, fmt.Errorf("%w: invalid bool byte %d", ErrSerialization, b)
}

func (r *Reader) U32() (uint32, error) {
	b, err := r.Raw(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

func (r *Reader) U64() (uint64, error) {
	b, err := r.Raw(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) I64() (int64, error) {
	v, err := r.U64()
	return int64(v), err
}

func (r *Reader) LenBytes() ([]byte, error) {
	n, err := r.U32()
	if err != nil {
		return nil, err
	}
	return r.Raw(int(n))
}

func (r *Reader) Str() (string, error) {
	b, err := r.LenBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Sub runs a decoder from the types package against the remaining input.
func (r *Reader) Sub(decode func([]byte) ([]byte, error)) error {
	rest, err := decode(r.data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	r.data = rest
	return nil
}
