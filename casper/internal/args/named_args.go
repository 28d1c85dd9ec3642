package args

import (
	"encoding/json"
	"fmt"

	"github.com/casper-ecosystem/casper-client-go/casper/internal/clvalue"
)

type NamedArg struct {
	Name  string
	Value clvalue.CLValue
}

// NamedArgs keeps arguments in insertion order, which is also their order on
// the wire and therefore part of the deploy hash.
type NamedArgs []NamedArg

// Get returns the first argument with the given name.
func (a NamedArgs) Get(name string) (clvalue.CLValue, bool) {
	for _, arg := range a {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return clvalue.CLValue{}, false
}

func (a NamedArgs) Names() []string {
	names := make([]string, len(a))
	for i, arg := range a {
		names[i] = arg.Name
	}
	return names
}

func (a NamedArgs) Write(w *clvalue.Writer) {
	w.Len(len(a))
	for _, arg := range a {
		w.Str(arg.Name)
		arg.Value.Write(w)
	}
}

func (a NamedArgs) ToBytes() []byte {
	w := clvalue.NewWriter()
	a.Write(w)
	return w.Bytes()
}

func ReadNamedArgs(r *clvalue.Reader) (NamedArgs, error) {
	n, err := r.U32()
	if err != nil {
		return nil, err
	}
	args := make(NamedArgs, 0, min(int(n), len(r.Remaining())))
	for range n {
		name, err := r.Str()
		if err != nil {
			return nil, err
		}
		value, err := clvalue.ReadCLValue(r)
		if err != nil {
			return nil, fmt.Errorf("arg %q: %w", name, err)
		}
		args = append(args, NamedArg{Name: name, Value: value})
	}
	return args, nil
}

// ReadComplexArgs decodes a file holding serialized runtime args, as accepted
// by --session-args-complex and --payment-args-complex.
func ReadComplexArgs(data []byte) (NamedArgs, error) {
	r := clvalue.NewReader(data)
	args, err := ReadNamedArgs(r)
	if err != nil {
		return nil, err
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}
	return args, nil
}

// MarshalJSON writes [["name", {cl_value}], ...].
func (a NamedArgs) MarshalJSON() ([]byte, error) {
	pairs := make([][2]any, len(a))
	for i, arg := range a {
		pairs[i] = [2]any{arg.Name, arg.Value}
	}
	return json.Marshal(pairs)
}

func (a *NamedArgs) UnmarshalJSON(data []byte) error {
	var pairs [][2]json.RawMessage
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	out := make(NamedArgs, len(pairs))
	for i, pair := range pairs {
		if err := json.Unmarshal(pair[0], &out[i].Name); err != nil {
			return err
		}
		if err := json.Unmarshal(pair[1], &out[i].Value); err != nil {
			return fmt.Errorf("arg %q: %w", out[i].Name, err)
		}
	}
	*a = out
	return nil
}
