package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/casper-ecosystem/casper-client-go/casper/common"
)

var ErrInvalidIdentifier = errors.New("invalid identifier")

// BlockIdentifier selects a block by hash or by height. The zero value
// selects the latest block known to the node.
type BlockIdentifier struct {
	Hash   *common.Hash
	Height *uint64
}

func BlockByHash(hash common.Hash) BlockIdentifier {
	return BlockIdentifier{Hash: &hash}
}

func BlockByHeight(height uint64) BlockIdentifier {
	return BlockIdentifier{Height: &height}
}

// ParseBlockIdentifier accepts a hex-encoded block hash, a decimal height or
// an empty string for the latest block.
func ParseBlockIdentifier(s string) (BlockIdentifier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BlockIdentifier{}, nil
	}
	if len(s) == 2*common.HashSize {
		hash, err := common.HexToHash(s)
		if err != nil {
			return BlockIdentifier{}, fmt.Errorf("%w: block hash %q: %w", ErrInvalidIdentifier, s, err)
		}
		return BlockByHash(hash), nil
	}
	height, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return BlockIdentifier{}, fmt.Errorf("%w: %q is neither a block hash nor a block height", ErrInvalidIdentifier, s)
	}
	return BlockByHeight(height), nil
}

func (id BlockIdentifier) Latest() bool {
	return id.Hash == nil && id.Height == nil
}

func (id BlockIdentifier) String() string {
	switch {
	case id.Hash != nil:
		return id.Hash.Hex()
	case id.Height != nil:
		return strconv.FormatUint(*id.Height, 10)
	}
	return "latest"
}

func (id BlockIdentifier) MarshalJSON() ([]byte, error) {
	switch {
	case id.Hash != nil:
		return json.Marshal(map[string]common.Hash{"Hash": *id.Hash})
	case id.Height != nil:
		return json.Marshal(map[string]uint64{"Height": *id.Height})
	}
	return []byte("null"), nil
}

// Params returns the block_identifier params of a request. The latest block
// is requested without params, so the result is then a nil interface.
func (id BlockIdentifier) Params() any {
	if id.Latest() {
		return nil
	}
	return map[string]any{"block_identifier": id}
}

// GlobalStateIdentifier selects the global state by the hash of a block or by
// a state root hash. Exactly one of the fields is set.
type GlobalStateIdentifier struct {
	BlockHash     *common.Hash `json:"BlockHash,omitempty"`
	StateRootHash *common.Hash `json:"StateRootHash,omitempty"`
}

func StateAtBlock(hash common.Hash) GlobalStateIdentifier {
	return GlobalStateIdentifier{BlockHash: &hash}
}

func StateAtRoot(hash common.Hash) GlobalStateIdentifier {
	return GlobalStateIdentifier{StateRootHash: &hash}
}

func (id GlobalStateIdentifier) Validate() error {
	if (id.BlockHash == nil) == (id.StateRootHash == nil) {
		return fmt.Errorf("%w: exactly one of a block hash and a state root hash is required", ErrInvalidIdentifier)
	}
	return nil
}
