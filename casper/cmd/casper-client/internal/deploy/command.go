package deploy

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/casper-ecosystem/casper-client-go/casper/client"
	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/common"
	libcommon "github.com/casper-ecosystem/casper-client-go/casper/common"
	"github.com/casper-ecosystem/casper-client-go/casper/common/logging"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/args"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/wasm"
	"github.com/casper-ecosystem/casper-client-go/casper/services/cliservice"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

var logger = logging.NewLogger("deployCommand")

// GetCommands returns put-deploy, make-deploy, sign-deploy, send-deploy and get-deploy.
func GetCommands(cfg *common.Config) []*cobra.Command {
	return []*cobra.Command{
		PutCommand(cfg),
		MakeCommand(cfg),
		SignCommand(),
		SendCommand(cfg),
		GetCommand(cfg),
	}
}

func newService(cmd *cobra.Command, c client.Client) *cliservice.Service {
	return cliservice.NewService(cmd.Context(), c, clockwork.NewRealClock(), wasm.NewLoader(logger))
}

func nodeService(cmd *cobra.Command, nf *nodeFlags, cfg *common.Config) *cliservice.Service {
	common.InitRpcClient(nf.config(cmd.Flags(), cfg), nf.id, logger)
	return newService(cmd, common.GetRpcClient())
}

func printArgExamples(w io.Writer) {
	fmt.Fprintln(w, args.ExamplesHeader)
	fmt.Fprint(w, args.SupportedTypeExamplesText())
}

func printDeployHash(w io.Writer, res *client.PutDeployResult) {
	if !common.Quiet {
		fmt.Fprint(w, "Deploy hash: ")
	}
	fmt.Fprintln(w, res.DeployHash)
}

func PutCommand(cfg *common.Config) *cobra.Command {
	var (
		cf *creationFlags
		nf *nodeFlags
	)
	cmd := &cobra.Command{
		Use:   "put-deploy",
		Short: "Create a deploy and send it to the network for execution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cf.showArgExamples {
				printArgExamples(cmd.OutOrStdout())
				return nil
			}
			service := nodeService(cmd, nf, cfg)
			res, err := service.PutDeploy(cf.input(cmd.Flags(), cfg))
			if err != nil {
				return err
			}
			printDeployHash(cmd.OutOrStdout(), res)
			return nil
		},
		SilenceUsage: true,
	}
	cf = registerCreationFlags(cmd)
	nf = registerNodeFlags(cmd)
	return cmd
}

func MakeCommand(cfg *common.Config) *cobra.Command {
	var (
		cf     *creationFlags
		output string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "make-deploy",
		Short: "Create a deploy and write it to a file or stdout for later signing and sending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cf.showArgExamples {
				printArgExamples(cmd.OutOrStdout())
				return nil
			}
			data, err := newService(cmd, nil).MakeDeploy(cf.input(cmd.Flags(), cfg), output, force)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
		SilenceUsage: true,
	}
	cf = registerCreationFlags(cmd)
	cmd.Flags().StringVarP(&output, outputFlag, "o", "", "Path of the output file. The deploy is printed to stdout if absent")
	cmd.Flags().BoolVarP(&force, forceFlag, "f", false, "Overwrite the output file if it exists")
	return cmd
}

func SignCommand() *cobra.Command {
	var (
		input     string
		secretKey string
		output    string
		force     bool
	)
	cmd := &cobra.Command{
		Use:   "sign-deploy",
		Short: "Add a signature to a deploy read from a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := newService(cmd, nil).SignDeploy(input, secretKey, output, force)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&input, inputFlag, "i", "", "Path of the deploy file to sign")
	cmd.Flags().StringVarP(&secretKey, secretKeyFlag, "k", "", "Path to the PEM secret key")
	cmd.Flags().StringVarP(&output, outputFlag, "o", "", "Path of the output file. The deploy is printed to stdout if absent")
	cmd.Flags().BoolVarP(&force, forceFlag, "f", false, "Overwrite the output file if it exists")
	_ = cmd.MarkFlagRequired(inputFlag)
	_ = cmd.MarkFlagRequired(secretKeyFlag)
	return cmd
}

func SendCommand(cfg *common.Config) *cobra.Command {
	var (
		nf    *nodeFlags
		input string
	)
	cmd := &cobra.Command{
		Use:   "send-deploy",
		Short: "Send a deploy read from a file to the network for execution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := nodeService(cmd, nf, cfg).SendDeploy(input)
			if err != nil {
				return err
			}
			printDeployHash(cmd.OutOrStdout(), res)
			return nil
		},
		SilenceUsage: true,
	}
	nf = registerNodeFlags(cmd)
	cmd.Flags().StringVarP(&input, inputFlag, "i", "", "Path of the deploy file to send")
	_ = cmd.MarkFlagRequired(inputFlag)
	return cmd
}

func GetCommand(cfg *common.Config) *cobra.Command {
	var (
		nf                 *nodeFlags
		finalizedApprovals bool
	)
	cmd := &cobra.Command{
		Use:   "get-deploy [hash...]",
		Short: "Retrieve deploys and their execution results from the network",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashes := make([]libcommon.Hash, len(args))
			for i, arg := range args {
				if err := hashes[i].Set(arg); err != nil {
					return fmt.Errorf("invalid deploy hash %q: %w", arg, err)
				}
			}

			results, err := nodeService(cmd, nf, cfg).GetDeploys(hashes, finalizedApprovals)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, res := range results {
				data, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				if !common.Quiet {
					fmt.Fprintln(out, cliservice.FormatExecution(res))
				}
			}
			return nil
		},
		SilenceUsage: true,
	}
	nf = registerNodeFlags(cmd)
	cmd.Flags().BoolVar(&finalizedApprovals, finalizedApprovalsFlag, false,
		"Return the approvals the deploy was finalized with instead of the ones it was received with")
	return cmd
}
