package deploy

import (
	"github.com/casper-ecosystem/casper-client-go/casper/common"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/args"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
)

// ExecutionTarget is the resolved code source of a session or payment.
// The set of variants is closed.
type ExecutionTarget interface {
	// item builds the executable item. module is only read by InlineCode.
	item(module []byte, a args.NamedArgs) ExecutableDeployItem
}

// SessionTarget is implemented by every variant except StandardPayment.
type SessionTarget interface {
	ExecutionTarget
	sessionTarget()
}

// PaymentTarget is implemented by every variant except Transfer.
type PaymentTarget interface {
	ExecutionTarget
	paymentTarget()
}

type (
	// InlineCode runs the Wasm module read from Path.
	InlineCode struct {
		Path string
	}

	StoredContractByHash struct {
		Hash       common.Hash
		EntryPoint string
	}

	StoredContractByName struct {
		Name       string
		EntryPoint string
	}

	// StoredPackageByHash calls a contract package; a nil Version selects the latest one.
	StoredPackageByHash struct {
		Hash       common.Hash
		Version    *uint32
		EntryPoint string
	}

	StoredPackageByName struct {
		Name       string
		Version    *uint32
		EntryPoint string
	}

	// Transfer is a native transfer, only valid as a session.
	Transfer struct{}

	// StandardPayment pays with the system payment code, only valid as a payment.
	StandardPayment struct {
		Amount types.U512
	}
)

var (
	_ SessionTarget = InlineCode{}
	_ SessionTarget = StoredContractByHash{}
	_ SessionTarget = StoredContractByName{}
	_ SessionTarget = StoredPackageByHash{}
	_ SessionTarget = StoredPackageByName{}
	_ SessionTarget = Transfer{}

	_ PaymentTarget = InlineCode{}
	_ PaymentTarget = StoredContractByHash{}
	_ PaymentTarget = StoredContractByName{}
	_ PaymentTarget = StoredPackageByHash{}
	_ PaymentTarget = StoredPackageByName{}
	_ PaymentTarget = StandardPayment{}
)

func (InlineCode) sessionTarget()           {}
func (StoredContractByHash) sessionTarget() {}
func (StoredContractByName) sessionTarget() {}
func (StoredPackageByHash) sessionTarget()  {}
func (StoredPackageByName) sessionTarget()  {}
func (Transfer) sessionTarget()             {}

func (InlineCode) paymentTarget()           {}
func (StoredContractByHash) paymentTarget() {}
func (StoredContractByName) paymentTarget() {}
func (StoredPackageByHash) paymentTarget()  {}
func (StoredPackageByName) paymentTarget()  {}
func (StandardPayment) paymentTarget()      {}

func (t InlineCode) item(module []byte, a args.NamedArgs) ExecutableDeployItem {
	return ExecutableDeployItem{Kind: ItemModuleBytes, Module: module, Args: a}
}

func (t StoredContractByHash) item(_ []byte, a args.NamedArgs) ExecutableDeployItem {
	return ExecutableDeployItem{Kind: ItemStoredContractByHash, Hash: t.Hash, EntryPoint: t.EntryPoint, Args: a}
}

func (t StoredContractByName) item(_ []byte, a args.NamedArgs) ExecutableDeployItem {
	return ExecutableDeployItem{Kind: ItemStoredContractByName, Name: t.Name, EntryPoint: t.EntryPoint, Args: a}
}

func (t StoredPackageByHash) item(_ []byte, a args.NamedArgs) ExecutableDeployItem {
	return ExecutableDeployItem{
		Kind:       ItemStoredVersionedContractByHash,
		Hash:       t.Hash,
		Version:    t.Version,
		EntryPoint: t.EntryPoint,
		Args:       a,
	}
}

func (t StoredPackageByName) item(_ []byte, a args.NamedArgs) ExecutableDeployItem {
	return ExecutableDeployItem{
		Kind:       ItemStoredVersionedContractByName,
		Name:       t.Name,
		Version:    t.Version,
		EntryPoint: t.EntryPoint,
		Args:       a,
	}
}

func (Transfer) item(_ []byte, a args.NamedArgs) ExecutableDeployItem {
	return ExecutableDeployItem{Kind: ItemTransfer, Args: a}
}

// The amount arg is already part of a, see Assemble.
func (StandardPayment) item(_ []byte, a args.NamedArgs) ExecutableDeployItem {
	return ExecutableDeployItem{Kind: ItemModuleBytes, Module: []byte{}, Args: a}
}
