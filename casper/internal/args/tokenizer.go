package args

import "strings"

const (
	nullToken = "null"
	quote     = '\''
)

// Token is one raw argument split into its parts.
type Token struct {
	Name  string
	Type  string
	Value string
	// Null is set for the unquoted null token; Value is empty then.
	Null bool
}

// Tokenize splits "NAME:TYPE='VALUE'" or "NAME:TYPE=null". The split happens
// on the first ':' and the first '=' after it, so quoted values may contain both.
func Tokenize(raw string) (Token, error) {
	name, rest, ok := strings.Cut(raw, ":")
	if !ok {
		return Token{}, malformed(raw, "missing ':' between name and type")
	}
	typ, value, ok := strings.Cut(rest, "=")
	if !ok {
		return Token{}, malformed(raw, "missing '=' between type and value")
	}

	switch {
	case name == "":
		return Token{}, malformed(raw, "empty name")
	case strings.ContainsRune(name, '='):
		return Token{}, malformed(raw, "name must not contain '='")
	case typ == "":
		return Token{}, malformed(raw, "empty type")
	case strings.ContainsRune(typ, ':'):
		return Token{}, malformed(raw, "type must not contain ':'")
	}

	if value == nullToken {
		return Token{Name: name, Type: typ, Null: true}, nil
	}
	if len(value) < 2 || value[0] != quote || value[len(value)-1] != quote {
		return Token{}, malformed(raw, "value must be enclosed in single quotes or be null")
	}
	return Token{Name: name, Type: typ, Value: value[1 : len(value)-1]}, nil
}
