package deploy

import (
	"context"
	"fmt"

	"github.com/casper-ecosystem/casper-client-go/casper/internal/args"
)

// ModuleLoader reads the Wasm module of an InlineCode target.
type ModuleLoader interface {
	LoadModule(ctx context.Context, path string) ([]byte, error)
}

type Builder struct {
	loader ModuleLoader
}

func NewBuilder(loader ModuleLoader) *Builder {
	return &Builder{loader: loader}
}

// Build turns assembled parameters into an unsigned deploy.
func (b *Builder) Build(ctx context.Context, params *CreationParams) (*Deploy, error) {
	payment, err := b.item(ctx, params.Payment, params.PaymentArgs)
	if err != nil {
		return nil, fmt.Errorf("payment: %w", err)
	}
	session, err := b.item(ctx, params.Session, params.SessionArgs)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return New(params.Metadata, payment, session), nil
}

func (b *Builder) item(ctx context.Context, target ExecutionTarget, a args.NamedArgs) (ExecutableDeployItem, error) {
	var module []byte
	if inline, ok := target.(InlineCode); ok {
		var err error
		module, err = b.loader.LoadModule(ctx, inline.Path)
		if err != nil {
			return ExecutableDeployItem{}, err
		}
	}
	if a == nil {
		a = args.NamedArgs{}
	}
	return target.item(module, a), nil
}
