package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/casper-ecosystem/casper-client-go/casper/common/hexutil"
)

type KeyTag byte

const (
	KeyTagAccount KeyTag = 0
	KeyTagHash    KeyTag = 1
	KeyTagURef    KeyTag = 2
)

func (t KeyTag) String() string {
	switch t {
	case KeyTagAccount:
		return "Account"
	case KeyTagHash:
		return "Hash"
	case KeyTagURef:
		return "URef"
	}
	return fmt.Sprintf("KeyTag(%d)", byte(t))
}

// Key is a global state key. Exactly one of Account, Hash or URef is
// meaningful, selected by Tag.
type Key struct {
	Tag     KeyTag
	Account AccountHash
	Hash    [AddrSize]byte
	URef    URef
}

func NewAccountKey(h AccountHash) Key { return Key{Tag: KeyTagAccount, Account: h} }

func NewHashKey(h [AddrSize]byte) Key { return Key{Tag: KeyTagHash, Hash: h} }

func NewURefKey(u URef) Key { return Key{Tag: KeyTagURef, URef: u} }

// ParseKey parses the formatted string of any supported key variant.
func ParseKey(s string) (Key, error) {
	switch {
	case strings.HasPrefix(s, AccountHashPrefix):
		h, err := ParseAccountHash(s)
		if err != nil {
			return Key{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
		return NewAccountKey(h), nil
	case strings.HasPrefix(s, HashPrefix):
		addr, err := parseAddr(strings.TrimPrefix(s, HashPrefix))
		if err != nil {
			return Key{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
		return NewHashKey(addr), nil
	case strings.HasPrefix(s, URefPrefix):
		u, err := ParseURef(s)
		if err != nil {
			return Key{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
		return NewURefKey(u), nil
	}
	return Key{}, fmt.Errorf("%w: %w: expected one of %q, %q or %q",
		ErrInvalidKey, ErrInvalidPrefix, AccountHashPrefix, HashPrefix, URefPrefix)
}

func (k Key) Bytes() []byte {
	out := []byte{byte(k.Tag)}
	switch k.Tag {
	case KeyTagAccount:
		out = append(out, k.Account[:]...)
	case KeyTagHash:
		out = append(out, k.Hash[:]...)
	case KeyTagURef:
		out = append(out, k.URef.Bytes()...)
	}
	return out
}

func DecodeKey(data []byte) (Key, []byte, error) {
	if len(data) < 1+AddrSize {
		return Key{}, nil, ErrTruncated
	}
	body := data[1:]
	switch KeyTag(data[0]) {
	case KeyTagAccount:
		return NewAccountKey(AccountHash(body[:AddrSize])), body[AddrSize:], nil
	case KeyTagHash:
		return NewHashKey([AddrSize]byte(body[:AddrSize])), body[AddrSize:], nil
	case KeyTagURef:
		u, rest, err := DecodeURef(body)
		if err != nil {
			return Key{}, nil, err
		}
		return NewURefKey(u), rest, nil
	}
	return Key{}, nil, fmt.Errorf("%w: unsupported key tag %d", ErrInvalidKey, data[0])
}

func (k Key) String() string {
	switch k.Tag {
	case KeyTagAccount:
		return k.Account.String()
	case KeyTagHash:
		return HashPrefix + hexutil.EncodeNo0x(k.Hash[:])
	case KeyTagURef:
		return k.URef.String()
	}
	return k.Tag.String()
}

// MarshalJSON writes the node's representation, e.g. {"Account":"account-hash-..."}.
func (k Key) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{k.Tag.String(): k.String()})
}
