package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/0xliangjiang/irys-nft-mint/packages/config"
)

func TestRunBatchNoValidKeys(t *testing.T) {
	dir := t.TempDir()
	keysPath := filepath.Join(dir, "private_keys.txt")
	require.NoError(t, os.WriteFile(keysPath, []byte("# no keys yet\n\nnot-a-key\n"), 0600))

	cfg := &config.Config{
		KeysFile:       keysPath,
		OutputDir:      dir,
		DelayMinMs:     2000,
		DelayMaxMs:     5000,
		ReceiptTimeout: time.Minute,
	}

	err := runBatch(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no valid private keys")

	// The batch aborts before any network activity and writes no report.
	matches, err := filepath.Glob(filepath.Join(dir, "mint_results_*.json"))
	require.NoError(t, err)
	require.Empty(t, matches)
}
