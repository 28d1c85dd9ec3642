package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/casper-ecosystem/casper-client-go/casper/common/hexutil"
)

const URefPrefix = "uref-"

type AccessRights byte

const (
	AccessNone AccessRights = 0
	AccessRead AccessRights = 1 << (iota - 1)
	AccessWrite
	AccessAdd

	AccessReadAddWrite = AccessRead | AccessWrite | AccessAdd
)

func (r AccessRights) IsValid() bool {
	return r&^AccessReadAddWrite == 0
}

// URef is an unforgeable reference: an address plus the rights granted over it.
type URef struct {
	Addr   [AddrSize]byte
	Rights AccessRights
}

const URefSize = AddrSize + 1

// ParseURef parses "uref-<64 hex>-<3 octal digits>".
func ParseURef(s string) (URef, error) {
	body, ok := strings.CutPrefix(s, URefPrefix)
	if !ok {
		return URef{}, fmt.Errorf("%w: expected %q", ErrInvalidPrefix, URefPrefix)
	}
	addrHex, rightsStr, ok := strings.Cut(body, "-")
	if !ok {
		return URef{}, fmt.Errorf("%w: missing access rights suffix", ErrInvalidRights)
	}
	addr, err := parseAddr(addrHex)
	if err != nil {
		return URef{}, err
	}
	if len(rightsStr) != 3 {
		return URef{}, fmt.Errorf("%w: expected 3 octal digits, got %q", ErrInvalidRights, rightsStr)
	}
	rights, err := strconv.ParseUint(rightsStr, 8, 8)
	if err != nil || !AccessRights(rights).IsValid() {
		return URef{}, fmt.Errorf("%w: %q", ErrInvalidRights, rightsStr)
	}
	return URef{Addr: addr, Rights: AccessRights(rights)}, nil
}

func (u URef) Bytes() []byte {
	return append(u.Addr[:], byte(u.Rights))
}

func DecodeURef(data []byte) (URef, []byte, error) {
	if len(data) < URefSize {
		return URef{}, nil, ErrTruncated
	}
	rights := AccessRights(data[AddrSize])
	if !rights.IsValid() {
		return URef{}, nil, fmt.Errorf("%w: %d", ErrInvalidRights, rights)
	}
	var u URef
	copy(u.Addr[:], data[:AddrSize])
	u.Rights = rights
	return u, data[URefSize:], nil
}

func (u URef) String() string {
	return fmt.Sprintf("%s%s-%03o", URefPrefix, hexutil.EncodeNo0x(u.Addr[:]), byte(u.Rights))
}

func (u URef) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *URef) UnmarshalText(input []byte) error {
	parsed, err := ParseURef(string(input))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
