package common

import (
	"github.com/casper-ecosystem/casper-client-go/casper/client/rpc"
	"github.com/casper-ecosystem/casper-client-go/casper/common/check"
	"github.com/casper-ecosystem/casper-client-go/casper/common/logging"
	"github.com/casper-ecosystem/casper-client-go/casper/common/version"
)

const clientTitle = "casper-client"

var client *rpc.Client

// InitRpcClient connects to cfg.NodeAddress. A non-empty id fixes the
// JSON-RPC id of every request.
func InitRpcClient(cfg *Config, id string, logger logging.Logger) {
	opts := []rpc.Option{rpc.RPCRetryConfig(rpc.DefaultRetryConfig())}
	if id != "" {
		opts = append(opts, rpc.WithRequestID(id))
	}
	if cfg.RPCTimeout.Millis() > 0 {
		opts = append(opts, rpc.WithTimeout(cfg.RPCTimeout.Duration()))
	}

	nodeAddress := cfg.NodeAddress
	if nodeAddress == "" {
		nodeAddress = DefaultNodeAddress
	}
	client = rpc.NewClientWithDefaultHeaders(
		nodeAddress,
		logger,
		map[string]string{
			"User-Agent": version.BuildClientVersion(clientTitle),
		},
		opts...,
	)
	logger.Debug().Str("endpoint", client.Endpoint()).Msg("RPC client initialized")
}

func GetRpcClient() *rpc.Client {
	check.PanicIfNot(client != nil)
	return client
}
