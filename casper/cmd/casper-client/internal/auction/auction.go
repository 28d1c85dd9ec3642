package auction

import (
	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/common"
	"github.com/casper-ecosystem/casper-client-go/casper/common/logging"
	"github.com/casper-ecosystem/casper-client-go/casper/services/cliservice"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

var logger = logging.NewLogger("auctionCommand")

func GetCommand(cfg *common.Config) *cobra.Command {
	var (
		nodeAddress string
		id          string
		blockID     string
	)

	cmd := &cobra.Command{
		Use:   "get-auction-info",
		Short: "Retrieve the bids and the validators of the auction contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nodeCfg := *cfg
			if cmd.Flags().Changed("node-address") || nodeCfg.NodeAddress == "" {
				nodeCfg.NodeAddress = nodeAddress
			}
			common.InitRpcClient(&nodeCfg, id, logger)

			service := cliservice.NewService(cmd.Context(), common.GetRpcClient(), clockwork.NewRealClock(), nil)
			res, err := service.GetAuctionInfo(blockID)
			if err != nil {
				return err
			}
			return common.PrintJSON(cmd.OutOrStdout(), res)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&nodeAddress, "node-address", "n", common.DefaultNodeAddress, "Address of the node's RPC server")
	cmd.Flags().StringVar(&id, "id", "", "JSON-RPC identifier of the request. A random one is used if absent")
	cmd.Flags().StringVarP(&blockID, "block-identifier", "b", "",
		"Hex-encoded block hash or height of the block. The latest block known to the node is used if absent")
	return cmd
}
