// Package wasm reads session and payment modules from disk and checks that
// they compile before they are put into a deploy.
package wasm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/casper-ecosystem/casper-client-go/casper/common/logging"
	"github.com/tetratelabs/wazero"
)

var (
	ErrEmptyModule   = errors.New("empty wasm module")
	ErrInvalidModule = errors.New("invalid wasm module")
)

// Loader implements deploy.ModuleLoader.
type Loader struct {
	logger logging.Logger
}

func NewLoader(logger logging.Logger) *Loader {
	return &Loader{logger: logger}
}

func (l *Loader) LoadModule(ctx context.Context, path string) ([]byte, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wasm module: %w", err)
	}
	if err := Validate(ctx, code); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.logger.Debug().
		Str(logging.FieldPath, path).
		Int("size", len(code)).
		Msg("Loaded wasm module")
	return code, nil
}

// Validate compiles code without instantiating it.
func Validate(ctx context.Context, code []byte) error {
	if len(code) == 0 {
		return ErrEmptyModule
	}

	runtime := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	defer runtime.Close(ctx)

	compiled, err := runtime.CompileModule(ctx, code)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidModule, err)
	}
	return compiled.Close(ctx)
}
