package client

import (
	"encoding/json"

	"github.com/casper-ecosystem/casper-client-go/casper/common"
	"github.com/casper-ecosystem/casper-client-go/casper/common/hexutil"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/deploy"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
)

type PutDeployResult struct {
	APIVersion string      `json:"api_version"`
	DeployHash common.Hash `json:"deploy_hash"`
}

type GetDeployResult struct {
	APIVersion       string            `json:"api_version"`
	Deploy           *deploy.Deploy    `json:"deploy"`
	ExecutionResults []ExecutionResult `json:"execution_results"`
}

// ExecutionResult is the outcome of a deploy in one block. Exactly one of
// Success and Failure is set.
type ExecutionResult struct {
	BlockHash common.Hash `json:"block_hash"`
	Result    struct {
		Success *ExecutionOutcome `json:"Success,omitempty"`
		Failure *ExecutionOutcome `json:"Failure,omitempty"`
	} `json:"result"`
}

type ExecutionOutcome struct {
	Cost         types.U512 `json:"cost"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

func (r *ExecutionResult) Outcome() (*ExecutionOutcome, bool) {
	if r.Result.Success != nil {
		return r.Result.Success, true
	}
	return r.Result.Failure, false
}

type BlockInfo struct {
	Hash      common.Hash     `json:"hash"`
	Timestamp types.Timestamp `json:"timestamp"`
	EraID     uint64          `json:"era_id"`
	Height    uint64          `json:"height"`
}

type NodeStatus struct {
	APIVersion      string           `json:"api_version"`
	ChainspecName   string           `json:"chainspec_name"`
	BuildVersion    string           `json:"build_version"`
	Uptime          string           `json:"uptime"`
	LastAddedBlock  *BlockInfo       `json:"last_added_block_info"`
	OurPublicSigner *types.PublicKey `json:"our_public_signing_key"`
	Peers           json.RawMessage  `json:"peers,omitempty"`
}

type BlockHeader struct {
	ParentHash      common.Hash     `json:"parent_hash"`
	StateRootHash   common.Hash     `json:"state_root_hash"`
	BodyHash        common.Hash     `json:"body_hash"`
	RandomBit       bool            `json:"random_bit"`
	AccumulatedSeed common.Hash     `json:"accumulated_seed"`
	EraEnd          json.RawMessage `json:"era_end"`
	Timestamp       types.Timestamp `json:"timestamp"`
	EraID           uint64          `json:"era_id"`
	Height          uint64          `json:"height"`
	ProtocolVersion string          `json:"protocol_version"`
}

// Block keeps the body and the proofs undecoded.
type Block struct {
	Hash   common.Hash     `json:"hash"`
	Header BlockHeader     `json:"header"`
	Body   json.RawMessage `json:"body"`
	Proofs json.RawMessage `json:"proofs"`
}

type GetBlockResult struct {
	APIVersion string `json:"api_version"`
	Block      *Block `json:"block"`
}

type ChainspecRawBytes struct {
	ChainspecBytes            string  `json:"chainspec_bytes"`
	MaybeGenesisAccountsBytes *string `json:"maybe_genesis_accounts_bytes"`
	MaybeGlobalStateBytes     *string `json:"maybe_global_state_bytes"`
}

type GetChainspecResult struct {
	APIVersion     string            `json:"api_version"`
	ChainspecBytes ChainspecRawBytes `json:"chainspec_bytes"`
}

// Chainspec decodes the chainspec.toml the node runs with.
func (r *GetChainspecResult) Chainspec() ([]byte, error) {
	return hexutil.DecodeHex(r.ChainspecBytes.ChainspecBytes)
}

// QueryGlobalStateResult carries the header of the block when the state was
// selected by a block hash.
type QueryGlobalStateResult struct {
	APIVersion  string          `json:"api_version"`
	BlockHeader *BlockHeader    `json:"block_header,omitempty"`
	StoredValue json.RawMessage `json:"stored_value"`
	MerkleProof string          `json:"merkle_proof"`
}

type AuctionState struct {
	StateRootHash common.Hash     `json:"state_root_hash"`
	BlockHeight   uint64          `json:"block_height"`
	EraValidators json.RawMessage `json:"era_validators"`
	Bids          json.RawMessage `json:"bids"`
}

type GetAuctionInfoResult struct {
	APIVersion   string       `json:"api_version"`
	AuctionState AuctionState `json:"auction_state"`
}
