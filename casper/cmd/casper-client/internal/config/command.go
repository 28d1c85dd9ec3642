package config

import (
	"fmt"
	"slices"
	"sort"

	"github.com/casper-ecosystem/casper-client-go/casper/common/logging"
	"github.com/spf13/cobra"
)

var logger = logging.NewLogger("configCommand")

var noConfigCmd = map[string]struct{}{
	"help": {},
	"init": {},
	"set":  {},
}

func GetCommand(configPath *string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:          "config",
		Short:        "Manage the casper-client config",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			SetConfigFile(*configPath)

			if _, withoutConfig := noConfigCmd[cmd.Name()]; withoutConfig {
				return nil
			}

			if err := ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read the config file: %w", err)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Initialize the config file",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := InitDefaultConfig(*configPath)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to create the config file")
				return err
			}

			logger.Info().Msgf("The config file has been initialized successfully: %s", path)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:          "show",
		Short:        "Show the contents of the config file",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			const printFormat = "%-18s: %v\n"
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, printFormat, "The config file", ConfigFileUsed())
			section := Settings()
			keys := make([]string, 0, len(section))
			for key := range section {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(out, printFormat, key, section[key])
			}
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:          "get [key]",
		Short:        "Get the value of a key from the config file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := Get(key)
			if value == nil {
				logger.Warn().Msgf("Key %q is not found in the config file", key)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", key, value)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:          "set [key] [value]",
		Short:        "Set the value of a key in the config file",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(Fields(), args[0]) {
				return fmt.Errorf("key %q is not known, expected one of %v", args[0], Fields())
			}

			if err := PatchConfig(map[string]any{
				args[0]: args[1],
			}); err != nil {
				logger.Error().Err(err).Msg("Failed to set the config value")
				return err
			}
			logger.Info().Msgf("Set %q to %q", args[0], args[1])
			return nil
		},
	}

	configCmd.AddCommand(initCmd, showCmd, getCmd, setCmd)

	return configCmd
}
