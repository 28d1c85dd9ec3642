package status

import (
	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/common"
	"github.com/casper-ecosystem/casper-client-go/casper/common/logging"
	"github.com/casper-ecosystem/casper-client-go/casper/services/cliservice"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

var logger = logging.NewLogger("statusCommand")

func GetCommand(cfg *common.Config) *cobra.Command {
	var (
		nodeAddress string
		id          string
	)

	cmd := &cobra.Command{
		Use:   "get-node-status",
		Short: "Retrieve the status of the node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nodeCfg := *cfg
			if cmd.Flags().Changed("node-address") || nodeCfg.NodeAddress == "" {
				nodeCfg.NodeAddress = nodeAddress
			}
			common.InitRpcClient(&nodeCfg, id, logger)

			service := cliservice.NewService(cmd.Context(), common.GetRpcClient(), clockwork.NewRealClock(), nil)
			status, err := service.GetStatus()
			if err != nil {
				return err
			}
			return common.PrintJSON(cmd.OutOrStdout(), status)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&nodeAddress, "node-address", "n", common.DefaultNodeAddress, "Address of the node's RPC server")
	cmd.Flags().StringVar(&id, "id", "", "JSON-RPC identifier of the request. A random one is used if absent")
	return cmd
}
