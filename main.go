package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/0xliangjiang/irys-nft-mint/packages/config"
)

const (
	FlagConfigFile = "config-file"
	FlagKeysFile   = "keys-file"
	FlagVerbosity  = "verbosity"
	FlagDryRun     = "dry-run"
	FlagLimit      = "limit"
)

var (
	configPath   string
	keysFilePath string
	verbosity    int
	dryRun       bool
	historyLimit int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "irys-nft-mint",
		Short: "Batch NFT mint tool for the Irys testnet",
		Long: `A command-line tool that mints one NFT from every funded wallet in a
private key file, pacing the transactions to look like independent users.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(verbosity)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, FlagConfigFile, "f", "", "Path to the configuration file")
	rootCmd.PersistentFlags().IntVar(&verbosity, FlagVerbosity, 3, "Log verbosity (0=crit, 3=info, 5=trace)")

	rootCmd.AddCommand(
		runCmd(),
		checkCmd(),
		historyCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func setupLogger(verbosity int) {
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	handler := log.NewTerminalHandlerWithLevel(os.Stderr, log.FromLegacyLevel(verbosity), useColor)
	log.SetDefault(log.NewLogger(handler))
}

// loadConfig reads and validates the configuration, applying command-line
// overrides. Exits the process on any problem, matching the subcommand style.
func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err == nil {
		if keysFilePath != "" {
			cfg.KeysFile = keysFilePath
		}
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
