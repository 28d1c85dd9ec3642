package cliservice

import (
	"fmt"
	"strings"

	"github.com/casper-ecosystem/casper-client-go/casper/client"
	"github.com/casper-ecosystem/casper-client-go/casper/common"
	"github.com/casper-ecosystem/casper-client-go/casper/common/logging"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/crypto"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
)

// GetBlock fetches the block selected by blockID: a block hash, a height or
// an empty string for the latest block.
func (s *Service) GetBlock(blockID string) (*client.GetBlockResult, error) {
	id, err := client.ParseBlockIdentifier(blockID)
	if err != nil {
		return nil, err
	}
	c, err := s.nodeClient()
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Stringer(logging.FieldBlock, id).Msg("Fetching block")
	return c.GetBlock(s.ctx, id)
}

func (s *Service) GetChainspec() (*client.GetChainspecResult, error) {
	c, err := s.nodeClient()
	if err != nil {
		return nil, err
	}
	return c.GetChainspec(s.ctx)
}

func (s *Service) GetAuctionInfo(blockID string) (*client.GetAuctionInfoResult, error) {
	id, err := client.ParseBlockIdentifier(blockID)
	if err != nil {
		return nil, err
	}
	c, err := s.nodeClient()
	if err != nil {
		return nil, err
	}
	return c.GetAuctionInfo(s.ctx, id)
}

// QueryInput selects a value of the global state. Exactly one of BlockHash
// and StateRootHash is set.
type QueryInput struct {
	BlockHash     string
	StateRootHash string
	// Key is a formatted key, a public key or the path of a public key file.
	// A public key selects the key of its account.
	Key string
	// Path holds the names to follow from Key, separated by '/'.
	Path string
}

func (s *Service) QueryGlobalState(in QueryInput) (*client.QueryGlobalStateResult, error) {
	state, err := stateIdentifier(in.BlockHash, in.StateRootHash)
	if err != nil {
		return nil, err
	}
	key, err := ResolveKey(in.Key)
	if err != nil {
		return nil, err
	}
	c, err := s.nodeClient()
	if err != nil {
		return nil, err
	}
	path := SplitQueryPath(in.Path)
	s.logger.Debug().Stringer(logging.FieldKey, key).Strs(logging.FieldPath, path).Msg("Querying global state")
	return c.QueryGlobalState(s.ctx, state, key, path)
}

func stateIdentifier(blockHash, stateRootHash string) (client.GlobalStateIdentifier, error) {
	switch {
	case blockHash != "" && stateRootHash != "":
		return client.GlobalStateIdentifier{}, fmt.Errorf("%w: both a block hash and a state root hash given", client.ErrInvalidIdentifier)
	case blockHash != "":
		hash, err := common.HexToHash(blockHash)
		if err != nil {
			return client.GlobalStateIdentifier{}, fmt.Errorf("%w: block hash %q: %w", client.ErrInvalidIdentifier, blockHash, err)
		}
		return client.StateAtBlock(hash), nil
	case stateRootHash != "":
		hash, err := common.HexToHash(stateRootHash)
		if err != nil {
			return client.GlobalStateIdentifier{}, fmt.Errorf("%w: state root hash %q: %w", client.ErrInvalidIdentifier, stateRootHash, err)
		}
		return client.StateAtRoot(hash), nil
	}
	return client.GlobalStateIdentifier{}, fmt.Errorf("%w: a block hash or a state root hash is required", client.ErrInvalidIdentifier)
}

// ResolveKey parses a formatted key. Otherwise value must be a public key or
// a file holding one, and the key of its account is returned.
func ResolveKey(value string) (types.Key, error) {
	value = strings.TrimSpace(value)
	key, err := types.ParseKey(value)
	if err == nil {
		return key, nil
	}
	pk, pkErr := crypto.LoadPublicKey(value)
	if pkErr != nil {
		return types.Key{}, fmt.Errorf("%w: %w", err, pkErr)
	}
	return types.NewAccountKey(pk.AccountHash()), nil
}

// SplitQueryPath splits a '/' separated path, dropping empty segments.
func SplitQueryPath(path string) []string {
	res := []string{}
	for segment := range strings.SplitSeq(path, "/") {
		if segment = strings.TrimSpace(segment); segment != "" {
			res = append(res, segment)
		}
	}
	return res
}
