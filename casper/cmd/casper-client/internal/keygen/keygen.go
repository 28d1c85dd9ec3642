package keygen

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/common"
	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/internal/config"
	"github.com/casper-ecosystem/casper-client-go/casper/common/logging"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/crypto"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
	"github.com/casper-ecosystem/casper-client-go/casper/services/cliservice"
	"github.com/fatih/color"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

var logger = logging.NewLogger("keygenCommand")

type params struct {
	algorithm    string
	force        bool
	saveToConfig bool
}

func GetCommand() *cobra.Command {
	p := &params{}

	keygenCmd := &cobra.Command{
		Use:   "keygen [dir]",
		Short: "Generate a new key pair and write it into a directory",
		Long: fmt.Sprintf("Generate a new key pair and write %s, %s and %s into the directory, "+
			"which is created if missing.", crypto.SecretKeyFile, crypto.PublicKeyFile, crypto.PublicKeyHexFile),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeygen(cmd, args[0], p)
		},
		SilenceUsage: true,
	}

	keygenCmd.Flags().StringVar(&p.algorithm, "algorithm", types.AlgorithmEd25519.String(), "Key algorithm: ed25519|secp256k1")
	keygenCmd.Flags().BoolVarP(&p.force, "force", "f", false, "Overwrite existing key files")
	keygenCmd.Flags().BoolVar(&p.saveToConfig, "save-to-config", false, "Use the new secret key as "+config.SecretKeyField+" in the config file")
	return keygenCmd
}

func runKeygen(cmd *cobra.Command, dir string, p *params) error {
	algorithm, err := types.ParseAlgorithm(p.algorithm)
	if err != nil {
		return err
	}

	service := cliservice.NewService(cmd.Context(), nil, clockwork.NewRealClock(), nil)
	files, publicKey, err := service.GenerateKeys(dir, algorithm, p.force)
	if err != nil {
		return err
	}

	if p.saveToConfig {
		abs, err := filepath.Abs(files.SecretKey)
		if err != nil {
			return err
		}
		if err := config.PatchConfig(map[string]any{config.SecretKeyField: abs}); err != nil {
			logger.Error().Err(err).Msg("failed to update the secret key in the config file")
			return err
		}
	}

	printSummary(cmd.OutOrStdout(), files, publicKey)
	return nil
}

func printSummary(w io.Writer, files crypto.KeyFiles, publicKey types.PublicKey) {
	if common.Quiet {
		fmt.Fprintln(w, publicKey)
		return
	}
	label := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", label("Public key:"), publicKey)
	fmt.Fprintf(w, "%s %s\n", label("Account hash:"), publicKey.AccountHash())
	fmt.Fprintf(w, "%s %s\n", label("Secret key:"), files.SecretKey)
	fmt.Fprintf(w, "%s %s\n", label("Public key file:"), files.PublicKey)
	fmt.Fprintf(w, "%s %s\n", label("Public key hex file:"), files.PublicKeyHex)
}
