package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/0xliangjiang/irys-nft-mint/packages/config"
	"github.com/0xliangjiang/irys-nft-mint/packages/history"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent mint runs recorded in the local history database",
		Long: `List past batch runs from the SQLite history database, newest first.

Example:
  irys-nft-mint history -n 5`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			if err := showHistory(cfg); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().IntVarP(&historyLimit, FlagLimit, "n", 10, "Maximum number of runs to show")

	return cmd
}

func showHistory(cfg *config.Config) error {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs. Enable history in the config and run a batch first.")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  %s  total=%d success=%d failed=%d rate=%s  %s\n",
			r.Timestamp, r.RunID, r.Total, r.Success, r.Failure, r.SuccessRate, r.ReportPath)
	}
	return nil
}
