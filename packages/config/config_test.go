package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "private_keys.txt", cfg.KeysFile)
	require.Equal(t, ".", cfg.OutputDir)
	require.Equal(t, 2000, cfg.DelayMinMs)
	require.Equal(t, 5000, cfg.DelayMaxMs)
	require.Equal(t, 2*time.Minute, cfg.ReceiptTimeout)

	require.Equal(t, DefaultRPCURL, cfg.RPC.URL)
	require.Equal(t, uint64(DefaultChainID), cfg.RPC.ChainID)
	require.Equal(t, 10*time.Second, cfg.RPC.Timeout)
	require.Equal(t, 10.0, cfg.RPC.RateLimit)

	require.Empty(t, cfg.Mint.Contract)
	require.Equal(t, DefaultMintCalldata, cfg.Mint.Calldata)
	require.Equal(t, uint64(300000), cfg.Mint.GasLimit)
	require.Equal(t, 0.0, cfg.Mint.GasPriceGwei)
	require.Equal(t, 0.001, cfg.Mint.MinBalance)

	require.False(t, cfg.History.Enabled)
	require.False(t, cfg.Upload.Enabled)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	content := `
keysFile: wallets.txt
delayMinMs: 100
delayMaxMs: 200
receiptTimeout: 30s
rpc:
  url: http://localhost:8545
  chainId: 1337
mint:
  contract: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
  gasLimit: 200000
  gasPriceGwei: 2.5
`
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "wallets.txt", cfg.KeysFile)
	require.Equal(t, 100, cfg.DelayMinMs)
	require.Equal(t, 200, cfg.DelayMaxMs)
	require.Equal(t, 30*time.Second, cfg.ReceiptTimeout)
	require.Equal(t, "http://localhost:8545", cfg.RPC.URL)
	require.Equal(t, uint64(1337), cfg.RPC.ChainID)
	require.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", cfg.Mint.Contract)
	require.Equal(t, uint64(200000), cfg.Mint.GasLimit)
	require.Equal(t, 2.5, cfg.Mint.GasPriceGwei)

	// Untouched keys keep their defaults.
	require.Equal(t, DefaultMintCalldata, cfg.Mint.Calldata)
	require.Equal(t, 0.001, cfg.Mint.MinBalance)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidateRejectsBadDelayRange(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.DelayMinMs = 5000
	cfg.DelayMaxMs = 2000
	require.Error(t, cfg.Validate())

	cfg.DelayMinMs = -1
	cfg.DelayMaxMs = 100
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsBadContract(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Mint.Contract = "not-an-address"
	require.Error(t, cfg.Validate())

	cfg.Mint.Contract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadCalldata(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Mint.Calldata = "1249c58b" // missing 0x prefix
	require.Error(t, cfg.Validate())

	cfg.Mint.Calldata = "0xzz"
	require.Error(t, cfg.Validate())
}

func TestValidateMintRequiresContract(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Error(t, cfg.ValidateMint())

	cfg.Mint.Contract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	require.NoError(t, cfg.ValidateMint())
}

func TestValidateUploadNeedsEndpoint(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Upload.Enabled = true
	require.Error(t, cfg.Validate())

	cfg.Upload.Endpoint = "object-store.local:9000"
	require.NoError(t, cfg.Validate())
}
