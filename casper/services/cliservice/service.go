package cliservice

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/casper-ecosystem/casper-client-go/casper/client"
	"github.com/casper-ecosystem/casper-client-go/casper/common/logging"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/deploy"
	"github.com/jonboulle/clockwork"
)

var (
	ErrFileExists = errors.New("file already exists")
	ErrNoClient   = errors.New("no node address configured")
)

type Service struct {
	// ctx is common for all application so we don't need to pass it to each function separately
	ctx    context.Context
	client client.Client
	clock  clockwork.Clock
	loader deploy.ModuleLoader
	logger logging.Logger
}

// NewService initializes a new Service. c may be nil for commands that do
// not talk to a node.
func NewService(ctx context.Context, c client.Client, clock clockwork.Clock, loader deploy.ModuleLoader) *Service {
	return &Service{
		ctx:    ctx,
		client: c,
		clock:  clock,
		loader: loader,
		logger: logging.NewLogger("cliservice"),
	}
}

func (s *Service) Client() client.Client {
	return s.client
}

func (s *Service) nodeClient() (client.Client, error) {
	if s.client == nil {
		return nil, ErrNoClient
	}
	return s.client, nil
}

// writeOutput writes data to path, refusing to replace an existing file
// unless force is set.
func writeOutput(path string, data []byte, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrFileExists, path)
	}
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
