package globalstate

import (
	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/common"
	"github.com/casper-ecosystem/casper-client-go/casper/common/logging"
	"github.com/casper-ecosystem/casper-client-go/casper/services/cliservice"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

var logger = logging.NewLogger("globalStateCommand")

func GetCommand(cfg *common.Config) *cobra.Command {
	var (
		nodeAddress string
		id          string
		in          cliservice.QueryInput
	)

	cmd := &cobra.Command{
		Use:   "query-global-state",
		Short: "Retrieve a stored value from the network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nodeCfg := *cfg
			if cmd.Flags().Changed("node-address") || nodeCfg.NodeAddress == "" {
				nodeCfg.NodeAddress = nodeAddress
			}
			common.InitRpcClient(&nodeCfg, id, logger)

			service := cliservice.NewService(cmd.Context(), common.GetRpcClient(), clockwork.NewRealClock(), nil)
			res, err := service.QueryGlobalState(in)
			if err != nil {
				return err
			}
			return common.PrintJSON(cmd.OutOrStdout(), res)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&nodeAddress, "node-address", "n", common.DefaultNodeAddress, "Address of the node's RPC server")
	cmd.Flags().StringVar(&id, "id", "", "JSON-RPC identifier of the request. A random one is used if absent")
	cmd.Flags().StringVarP(&in.BlockHash, "block-hash", "b", "", "Hex-encoded hash of the block whose global state is queried")
	cmd.Flags().StringVarP(&in.StateRootHash, "state-root-hash", "s", "", "Hex-encoded hash of the state root")
	cmd.Flags().StringVarP(&in.Key, "key", "k", "",
		"Formatted key to query, e.g. hash-..., uref-... or account-hash-..., or a public key (hex or file) whose account is queried")
	cmd.Flags().StringVarP(&in.Path, "query-path", "q", "", "Path from the key to the value, with components separated by '/'")
	cmd.MarkFlagsOneRequired("block-hash", "state-root-hash")
	cmd.MarkFlagsMutuallyExclusive("block-hash", "state-root-hash")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}
