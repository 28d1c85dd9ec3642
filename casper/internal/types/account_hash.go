package types

import (
	"fmt"
	"strings"

	"github.com/casper-ecosystem/casper-client-go/casper/common"
	"github.com/casper-ecosystem/casper-client-go/casper/common/hexutil"
)

const (
	AccountHashPrefix = "account-hash-"
	HashPrefix        = "hash-"

	AddrSize = 32
)

// AccountHash identifies an account: the blake2b hash of its public key.
type AccountHash [AddrSize]byte

// ParseAccountHash parses "account-hash-<64 hex>".
func ParseAccountHash(s string) (AccountHash, error) {
	body, ok := strings.CutPrefix(s, AccountHashPrefix)
	if !ok {
		return AccountHash{}, fmt.Errorf("%w: expected %q", ErrInvalidPrefix, AccountHashPrefix)
	}
	addr, err := parseAddr(body)
	return AccountHash(addr), err
}

func (h AccountHash) String() string {
	return AccountHashPrefix + hexutil.EncodeNo0x(h[:])
}

func (h AccountHash) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

func (h *AccountHash) UnmarshalText(input []byte) error {
	parsed, err := ParseAccountHash(string(input))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// parseAddr decodes a 32-byte address written as 64 (possibly checksummed) hex characters.
func parseAddr(s string) ([AddrSize]byte, error) {
	var addr [AddrSize]byte
	if len(s) != 2*AddrSize {
		return addr, fmt.Errorf("%w: expected %d hex characters, got %d", ErrInvalidLength, 2*AddrSize, len(s))
	}
	b, err := hexutil.DecodeChecksummed(s)
	if err != nil {
		return addr, fmt.Errorf("%w: %w", ErrInvalidHex, err)
	}
	copy(addr[:], b)
	return addr, nil
}

// ParseHashAddr parses a contract or package hash given either as plain hex
// or with the "hash-" prefix.
func ParseHashAddr(s string) (common.Hash, error) {
	addr, err := parseAddr(strings.TrimPrefix(s, HashPrefix))
	return common.Hash(addr), err
}
