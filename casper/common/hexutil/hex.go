package hexutil

import (
	"encoding/hex"

	"github.com/casper-ecosystem/casper-client-go/casper/common/check"
)

func MustDecodeHex(in string) []byte {
	payload, err := DecodeHex(in)
	check.PanicIfErr(err)
	return payload
}

// DecodeHex decodes a hex string, with or without the 0x prefix.
func DecodeHex(in string) ([]byte, error) {
	in = strip0x(in)
	if len(in)%2 == 1 {
		in = "0" + in
	}
	return hex.DecodeString(in)
}

func strip0x(str string) string {
	if Has0xPrefix(str) {
		return str[2:]
	}
	return str
}

// Encode encodes b as a hex string with 0x prefix.
func Encode(b []byte) string {
	enc := make([]byte, len(b)*2+2)
	copy(enc, "0x")
	hex.Encode(enc[2:], b)
	return string(enc)
}

// EncodeNo0x encodes b as a lower-case hex string without 0x prefix.
func EncodeNo0x(b []byte) string {
	return hex.EncodeToString(b)
}

// Has0xPrefix validates str begins with '0x' or '0X'.
func Has0xPrefix(str string) bool {
	return len(str) >= 2 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X')
}
