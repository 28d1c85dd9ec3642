package main

import (
	"os"

	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/common"
	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/internal/args"
	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/internal/auction"
	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/internal/block"
	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/internal/chainspec"
	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/internal/config"
	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/internal/deploy"
	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/internal/globalstate"
	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/internal/keygen"
	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/internal/status"
	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/internal/version"
	"github.com/casper-ecosystem/casper-client-go/casper/common/logging"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type RootCommand struct {
	baseCmd  *cobra.Command
	config   common.Config
	cfgFile  string
	logLevel string
	verbose  bool
}

var logger = logging.NewLogger("root")

var noConfigCmd = map[string]struct{}{
	"config":           {},
	"encode-args":      {},
	"help":             {},
	"keygen":           {},
	"completion":       {},
	"__complete":       {},
	"__completeNoDesc": {},
	"version":          {},
}

func main() {
	var rootCmd *RootCommand

	rootCmd = &RootCommand{
		baseCmd: &cobra.Command{
			Use:   "casper-client",
			Short: "The CLI tool for creating, signing and sending deploys to a Casper network",
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
				if !rootCmd.verbose {
					zerolog.SetGlobalLevel(zerolog.Disabled)
				} else {
					if err := logging.TrySetupGlobalLevel(rootCmd.logLevel); err != nil {
						return err
					}
					logging.ApplyComponentsFilterEnv()
				}

				// keygen --save-to-config writes to the config file without loading it.
				config.SetConfigFile(rootCmd.cfgFile)

				// Traverse up to find the top-level command
				for cmd.HasParent() && cmd.Parent() != rootCmd.baseCmd {
					cmd = cmd.Parent()
				}

				if _, withoutConfig := noConfigCmd[cmd.Name()]; withoutConfig {
					return nil
				}

				cfg, err := config.LoadConfig(rootCmd.cfgFile, logger)
				if err != nil {
					return err
				}
				rootCmd.config = *cfg
				return nil
			},
			SilenceUsage:  true,
			SilenceErrors: true,
		},
	}

	rootCmd.baseCmd.PersistentFlags().StringVarP(&rootCmd.cfgFile, "config", "c", config.DefaultConfigPath, "The path to the config file")
	rootCmd.baseCmd.PersistentFlags().StringVarP(&rootCmd.logLevel, "log-level", "l", "info", "Log level: trace|debug|info|warn|error|fatal|panic")
	rootCmd.baseCmd.PersistentFlags().BoolVarP(
		&common.Quiet,
		"quiet",
		"q",
		false,
		"Quiet mode (print only the result and exit)",
	)
	rootCmd.baseCmd.PersistentFlags().BoolVarP(
		&rootCmd.verbose,
		"verbose",
		"v",
		false,
		"Verbose mode (print logs)",
	)

	rootCmd.registerSubCommands()
	rootCmd.Execute()
}

// registerSubCommands adds all subcommands to the root command
func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(deploy.GetCommands(&rc.config)...)
	rc.baseCmd.AddCommand(
		args.GetCommand(),
		config.GetCommand(&rc.cfgFile),
		keygen.GetCommand(),
		status.GetCommand(&rc.config),
		block.GetCommand(&rc.config),
		chainspec.GetCommand(&rc.config),
		globalstate.GetCommand(&rc.config),
		auction.GetCommand(&rc.config),
		version.GetCommand(),
	)
}

// Execute runs the root command and handles any errors
func (rc *RootCommand) Execute() {
	if err := rc.baseCmd.Execute(); err != nil {
		_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)

		os.Exit(1)
	}
}
