package args

import (
	"encoding/json"
	"fmt"

	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/common"
	"github.com/casper-ecosystem/casper-client-go/casper/common/hexutil"
	libargs "github.com/casper-ecosystem/casper-client-go/casper/internal/args"
	"github.com/casper-ecosystem/casper-client-go/casper/services/cliservice"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

func GetCommand() *cobra.Command {
	var (
		showExamples bool
		asJson       bool
	)

	cmd := &cobra.Command{
		Use:   "encode-args [NAME:TYPE='VALUE'...]",
		Short: "Encode named and typed arguments into bytesrepr runtime args",
		Long: "Encode named and typed arguments into bytesrepr runtime args.\n" +
			"The output can be passed to --session-args-complex or --payment-args-complex.\n" +
			"Supported types: " + libargs.SupportedTypeList(),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if showExamples {
				fmt.Fprintln(out, libargs.ExamplesHeader)
				fmt.Fprint(out, libargs.SupportedTypeExamplesText())
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("requires at least 1 arg(s), only received 0")
			}

			service := cliservice.NewService(cmd.Context(), nil, clockwork.NewRealClock(), nil)
			encoded, err := service.EncodeArgs(args)
			if err != nil {
				return err
			}

			if asJson {
				data, err := json.MarshalIndent(encoded, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			if !common.Quiet {
				fmt.Fprint(out, "Runtime args: ")
			}
			fmt.Fprintln(out, hexutil.EncodeNo0x(encoded.ToBytes()))
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVarP(&showExamples, "show-arg-examples", "e", false, "Print examples of argument values and exit")
	cmd.Flags().BoolVar(&asJson, "json", false, "Print the args as JSON instead of hex")
	return cmd
}
