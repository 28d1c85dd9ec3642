package common

import "github.com/casper-ecosystem/casper-client-go/casper/internal/types"

type Config struct {
	NodeAddress string         `mapstructure:"node_address"`
	ChainName   string         `mapstructure:"chain_name"`
	SecretKey   string         `mapstructure:"secret_key"`
	RPCTimeout  types.TimeDiff `mapstructure:"rpc_timeout"`
}
