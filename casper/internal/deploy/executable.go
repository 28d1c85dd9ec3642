package deploy

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/casper-ecosystem/casper-client-go/casper/common"
	"github.com/casper-ecosystem/casper-client-go/casper/common/hexutil"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/args"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/clvalue"
)

// ItemKind is the wire tag of an executable deploy item.
type ItemKind uint8

const (
	ItemModuleBytes ItemKind = iota
	ItemStoredContractByHash
	ItemStoredContractByName
	ItemStoredVersionedContractByHash
	ItemStoredVersionedContractByName
	ItemTransfer
)

var itemKindNames = [...]string{
	ItemModuleBytes:                   "ModuleBytes",
	ItemStoredContractByHash:          "StoredContractByHash",
	ItemStoredContractByName:          "StoredContractByName",
	ItemStoredVersionedContractByHash: "StoredVersionedContractByHash",
	ItemStoredVersionedContractByName: "StoredVersionedContractByName",
	ItemTransfer:                      "Transfer",
}

var ErrUnknownItemKind = errors.New("unknown executable deploy item")

func (k ItemKind) String() string {
	if int(k) < len(itemKindNames) {
		return itemKindNames[k]
	}
	return fmt.Sprintf("ItemKind(%d)", uint8(k))
}

// ExecutableDeployItem is the session or payment part of a deploy. Which
// fields are meaningful depends on Kind.
type ExecutableDeployItem struct {
	Kind       ItemKind
	Module     []byte
	Hash       common.Hash
	Name       string
	Version    *uint32
	EntryPoint string
	Args       args.NamedArgs
}

func (i ExecutableDeployItem) Write(w *clvalue.Writer) {
	w.U8(uint8(i.Kind))
	switch i.Kind {
	case ItemModuleBytes:
		w.LenBytes(i.Module)
	case ItemStoredContractByHash:
		w.Raw(i.Hash[:]).Str(i.EntryPoint)
	case ItemStoredContractByName:
		w.Str(i.Name).Str(i.EntryPoint)
	case ItemStoredVersionedContractByHash:
		w.Raw(i.Hash[:])
		writeVersion(w, i.Version)
		w.Str(i.EntryPoint)
	case ItemStoredVersionedContractByName:
		w.Str(i.Name)
		writeVersion(w, i.Version)
		w.Str(i.EntryPoint)
	case ItemTransfer:
	}
	i.Args.Write(w)
}

func writeVersion(w *clvalue.Writer, version *uint32) {
	if version == nil {
		w.U8(0)
		return
	}
	w.U8(1).U32(*version)
}

func (i ExecutableDeployItem) Bytes() []byte {
	w := clvalue.NewWriter()
	i.Write(w)
	return w.Bytes()
}

func ReadExecutableDeployItem(r *clvalue.Reader) (ExecutableDeployItem, error) {
	tag, err := r.U8()
	if err != nil {
		return ExecutableDeployItem{}, err
	}
	item := ExecutableDeployItem{Kind: ItemKind(tag)}

	readHash := func() error {
		b, err := r.Raw(common.HashSize)
		if err == nil {
			item.Hash = common.Hash(b)
		}
		return err
	}
	readVersion := func() error {
		some, err := r.U8()
		if err != nil || some == 0 {
			return err
		}
		v, err := r.U32()
		item.Version = &v
		return err
	}
	readEntryPoint := func() (err error) {
		item.EntryPoint, err = r.Str()
		return err
	}
	readName := func() (err error) {
		item.Name, err = r.Str()
		return err
	}
	readModule := func() error {
		b, err := r.LenBytes()
		item.Module = append([]byte{}, b...)
		return err
	}

	var steps []func() error
	switch item.Kind {
	case ItemModuleBytes:
		steps = []func() error{readModule}
	case ItemStoredContractByHash:
		steps = []func() error{readHash, readEntryPoint}
	case ItemStoredContractByName:
		steps = []func() error{readName, readEntryPoint}
	case ItemStoredVersionedContractByHash:
		steps = []func() error{readHash, readVersion, readEntryPoint}
	case ItemStoredVersionedContractByName:
		steps = []func() error{readName, readVersion, readEntryPoint}
	case ItemTransfer:
	default:
		return ExecutableDeployItem{}, fmt.Errorf("%w: tag %d", ErrUnknownItemKind, tag)
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return ExecutableDeployItem{}, err
		}
	}

	item.Args, err = args.ReadNamedArgs(r)
	if err != nil {
		return ExecutableDeployItem{}, err
	}
	return item, nil
}

// IsStandardPayment reports whether the item is module bytes with an empty module.
func (i ExecutableDeployItem) IsStandardPayment() bool {
	return i.Kind == ItemModuleBytes && len(i.Module) == 0
}

type itemJSON struct {
	ModuleBytes *string        `json:"module_bytes"`
	Hash        *common.Hash   `json:"hash"`
	Name        *string        `json:"name"`
	Version     *uint32        `json:"version"`
	EntryPoint  *string        `json:"entry_point"`
	Args        args.NamedArgs `json:"args"`
}

// MarshalJSON writes the node's format, e.g. {"StoredContractByName":{"name":...}}.
func (i ExecutableDeployItem) MarshalJSON() ([]byte, error) {
	body := map[string]any{"args": i.Args}
	if i.Args == nil {
		body["args"] = args.NamedArgs{}
	}
	switch i.Kind {
	case ItemModuleBytes:
		body["module_bytes"] = hexutil.EncodeNo0x(i.Module)
	case ItemStoredContractByHash:
		body["hash"] = i.Hash
		body["entry_point"] = i.EntryPoint
	case ItemStoredContractByName:
		body["name"] = i.Name
		body["entry_point"] = i.EntryPoint
	case ItemStoredVersionedContractByHash:
		body["hash"] = i.Hash
		body["version"] = i.Version
		body["entry_point"] = i.EntryPoint
	case ItemStoredVersionedContractByName:
		body["name"] = i.Name
		body["version"] = i.Version
		body["entry_point"] = i.EntryPoint
	case ItemTransfer:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownItemKind, i.Kind)
	}
	return json.Marshal(map[string]any{i.Kind.String(): body})
}

func (i *ExecutableDeployItem) UnmarshalJSON(data []byte) error {
	var wrapper map[string]itemJSON
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	if len(wrapper) != 1 {
		return fmt.Errorf("%w: expected exactly one variant, got %d", ErrUnknownItemKind, len(wrapper))
	}

	for name, body := range wrapper {
		kind := -1
		for k, n := range itemKindNames {
			if n == name {
				kind = k
			}
		}
		if kind < 0 {
			return fmt.Errorf("%w: %q", ErrUnknownItemKind, name)
		}

		out := ExecutableDeployItem{Kind: ItemKind(kind), Version: body.Version, Args: body.Args}
		if body.ModuleBytes != nil {
			module, err := hexutil.DecodeHex(*body.ModuleBytes)
			if err != nil {
				return fmt.Errorf("module_bytes: %w", err)
			}
			out.Module = module
		}
		if body.Hash != nil {
			out.Hash = *body.Hash
		}
		if body.Name != nil {
			out.Name = *body.Name
		}
		if body.EntryPoint != nil {
			out.EntryPoint = *body.EntryPoint
		}
		*i = out
	}
	return nil
}
