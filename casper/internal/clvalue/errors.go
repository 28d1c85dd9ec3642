package clvalue

import "errors"

var (
	// ErrSerialization is returned for malformed or unsupported binary input.
	ErrSerialization = errors.New("serialization error")
	ErrUnknownCLType = errors.New("unknown CLType")
	ErrLeftOverBytes = errors.New("left over bytes")
)
