package types

import "errors"

var (
	ErrInvalidNumber    = errors.New("invalid number")
	ErrNumberOutOfRange = errors.New("number out of range")
	ErrInvalidPrefix    = errors.New("invalid prefix")
	ErrInvalidLength    = errors.New("invalid length")
	ErrInvalidHex       = errors.New("invalid hex")
	ErrInvalidKey       = errors.New("invalid key")
	ErrInvalidRights    = errors.New("invalid access rights")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidDuration  = errors.New("invalid duration")
	ErrTruncated        = errors.New("not enough bytes")
	ErrInvalidSignature = errors.New("invalid signature")
)
