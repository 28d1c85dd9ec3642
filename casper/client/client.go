package client

import (
	"context"
	"encoding/json"

	"github.com/casper-ecosystem/casper-client-go/casper/common"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/deploy"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
)

// Client is the node API used by the CLI. It is implemented by rpc.Client
// over JSON-RPC 2.0.
type Client interface {
	RawCall(ctx context.Context, method string, params any) (json.RawMessage, error)

	PutDeploy(ctx context.Context, d *deploy.Deploy) (*PutDeployResult, error)
	GetDeploy(ctx context.Context, hash common.Hash, finalizedApprovals bool) (*GetDeployResult, error)
	GetStatus(ctx context.Context) (*NodeStatus, error)

	GetBlock(ctx context.Context, id BlockIdentifier) (*GetBlockResult, error)
	GetChainspec(ctx context.Context) (*GetChainspecResult, error)
	QueryGlobalState(ctx context.Context, state GlobalStateIdentifier, key types.Key, path []string) (*QueryGlobalStateResult, error)
	GetAuctionInfo(ctx context.Context, id BlockIdentifier) (*GetAuctionInfoResult, error)
}
