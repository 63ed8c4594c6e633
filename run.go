package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"

	"github.com/0xliangjiang/irys-nft-mint/packages/chain"
	"github.com/0xliangjiang/irys-nft-mint/packages/config"
	"github.com/0xliangjiang/irys-nft-mint/packages/history"
	"github.com/0xliangjiang/irys-nft-mint/packages/keys"
	"github.com/0xliangjiang/irys-nft-mint/packages/mint"
	"github.com/0xliangjiang/irys-nft-mint/packages/report"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Mint one NFT from every funded wallet in the keys file",
		Long: `Load private keys, check each wallet's balance, and send one mint
transaction per funded wallet with a randomized pause between wallets.
A JSON report is written when at least one key was loaded.

Example:
  irys-nft-mint run -f ./irys-nft-mint.yaml --keys-file ./private_keys.txt`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			if err := cfg.ValidateMint(); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}

			if err := runBatch(cfg); err != nil {
				fmt.Printf("Batch mint failed: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&keysFilePath, FlagKeysFile, "", "Path to the private keys file, one 64-hex key per line")
	cmd.Flags().BoolVar(&dryRun, FlagDryRun, false, "Check balances and build transactions but send nothing")

	return cmd
}

func runBatch(cfg *config.Config) error {
	logger := log.New("cmd", "run")

	hexKeys := keys.Load(cfg.KeysFile)
	if len(hexKeys) == 0 {
		return fmt.Errorf("no valid private keys found in %s (one 64-hex key per line, # for comments)", cfg.KeysFile)
	}

	ctx := context.Background()
	client, err := chain.Dial(ctx, cfg.RPC)
	if err != nil {
		return err
	}
	defer client.Close()

	logger.Info("starting batch mint",
		"wallets", len(hexKeys), "contract", cfg.Mint.Contract, "dryRun", dryRun)

	exec, err := mint.NewExecutor(client, cfg, dryRun, logger)
	if err != nil {
		return err
	}
	results := mint.NewRunner(exec, cfg, logger).Run(ctx, hexKeys)

	rep := report.Build(cfg.RPC.URL, cfg.RPC.ChainID, cfg.Mint.Contract, results)
	path, err := rep.Write(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger.Info("batch mint finished",
		"total", rep.TotalCount, "success", rep.SuccessCount, "failed", rep.FailureCount,
		"successRate", rep.SuccessRate, "report", path)

	recordHistory(cfg, rep, path, logger)
	uploadReport(cfg, path, logger)

	return nil
}

// recordHistory and uploadReport are best-effort: the report on disk is the
// source of truth, so failures here only warn.
func recordHistory(cfg *config.Config, rep *report.BatchReport, path string, logger log.Logger) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		logger.Warn("failed to open history store", "path", cfg.History.Path, "err", err)
		return
	}
	defer store.Close()

	if err := store.RecordRun(rep, path); err != nil {
		logger.Warn("failed to record run history", "err", err)
	}
}

func uploadReport(cfg *config.Config, path string, logger log.Logger) {
	if !cfg.Upload.Enabled {
		return
	}
	up, err := report.NewUploader(cfg.Upload, logger)
	if err != nil {
		logger.Warn("failed to create report uploader", "err", err)
		return
	}
	if err := up.Upload(context.Background(), path); err != nil {
		logger.Warn("failed to upload report", "err", err)
	}
}
