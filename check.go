package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"

	"github.com/0xliangjiang/irys-nft-mint/packages/chain"
	"github.com/0xliangjiang/irys-nft-mint/packages/config"
	"github.com/0xliangjiang/irys-nft-mint/packages/keys"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check wallet balances against the mint minimum without sending anything",
		Long: `Load private keys and query each wallet's native balance, reporting
which wallets would be skipped by a mint run.

Example:
  irys-nft-mint check --keys-file ./private_keys.txt`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			if err := runCheck(cfg); err != nil {
				fmt.Printf("Balance check failed: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&keysFilePath, FlagKeysFile, "", "Path to the private keys file, one 64-hex key per line")

	return cmd
}

func runCheck(cfg *config.Config) error {
	logger := log.New("cmd", "check")

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

	minBalance := chain.EtherToWei(cfg.Mint.MinBalance)
	eligible := 0
	for i, hexKey := range hexKeys {
		w, err := keys.NewWallet(i+1, hexKey)
		if err != nil {
			logger.Error("skipping wallet with bad key", "index", i+1, "err", err)
			continue
		}

		balance, err := client.Balance(ctx, w.Address)
		if err != nil {
			logger.Warn("balance query failed", "wallet", w.Index, "address", w.Address, "err", err)
			continue
		}

		funded := balance.Cmp(minBalance) >= 0
		if funded {
			eligible++
		}
		logger.Info("wallet balance",
			"wallet", w.Index, "address", w.Address,
			"balance", chain.FormatEther(balance), "eligible", funded)
	}

	logger.Info("balance check finished",
		"wallets", len(hexKeys), "eligible", eligible, "minimum", chain.FormatEther(minBalance))
	return nil
}
