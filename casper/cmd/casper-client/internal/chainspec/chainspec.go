package chainspec

import (
	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/common"
	"github.com/casper-ecosystem/casper-client-go/casper/common/logging"
	"github.com/casper-ecosystem/casper-client-go/casper/services/cliservice"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

var logger = logging.NewLogger("chainspecCommand")

func GetCommand(cfg *common.Config) *cobra.Command {
	var (
		nodeAddress string
		id          string
		toml        bool
	)

	cmd := &cobra.Command{
		Use:   "get-chainspec",
		Short: "Retrieve the chainspec of the network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nodeCfg := *cfg
			if cmd.Flags().Changed("node-address") || nodeCfg.NodeAddress == "" {
				nodeCfg.NodeAddress = nodeAddress
			}
			common.InitRpcClient(&nodeCfg, id, logger)

			service := cliservice.NewService(cmd.Context(), common.GetRpcClient(), clockwork.NewRealClock(), nil)
			res, err := service.GetChainspec()
			if err != nil {
				return err
			}
			if !toml {
				return common.PrintJSON(cmd.OutOrStdout(), res)
			}
			chainspec, err := res.Chainspec()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(chainspec)
			return err
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&nodeAddress, "node-address", "n", common.DefaultNodeAddress, "Address of the node's RPC server")
	cmd.Flags().StringVar(&id, "id", "", "JSON-RPC identifier of the request. A random one is used if absent")
	cmd.Flags().BoolVar(&toml, "toml", false, "Print the decoded chainspec.toml instead of the response")
	return cmd
}
