package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/viper"
)

// Irys testnet defaults. Every value here can be overridden by the config
// file or an IRYS_MINT_* environment variable.
const (
	DefaultRPCURL  = "https://testnet-rpc.irys.xyz/v1/execution-rpc"
	DefaultChainID = 1270

	// DefaultMintCalldata is the 4-byte selector of mint(), sent unchanged
	// for every wallet.
	DefaultMintCalldata = "0x1249c58b"
)

const envPrefix = "IRYS_MINT"

// RPCConfig describes the JSON-RPC endpoint.
type RPCConfig struct {
	URL     string        `mapstructure:"url"`
	ChainID uint64        `mapstructure:"chainId"`
	Timeout time.Duration `mapstructure:"timeout"`
	// RateLimit caps outgoing RPC requests per second.
	RateLimit float64 `mapstructure:"rateLimit"`
}

// MintConfig describes the transaction sent for each wallet. The payload is
// identical across the whole batch.
type MintConfig struct {
	Contract string `mapstructure:"contract"`
	Calldata string `mapstructure:"calldata"`
	GasLimit uint64 `mapstructure:"gasLimit"`
	// GasPriceGwei of 0 delegates the price to the node.
	GasPriceGwei float64 `mapstructure:"gasPriceGwei"`
	// ValueEth is the mint price attached to the transaction, usually 0.
	ValueEth float64 `mapstructure:"valueEth"`
	// MinBalance is the native balance, in whole tokens, a wallet needs to
	// be included in the batch.
	MinBalance float64 `mapstructure:"minBalance"`
}

// HistoryConfig enables the local run-history database.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// UploadConfig enables shipping reports to an S3 compatible bucket.
type UploadConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"accessKey"`
	SecretKey string `mapstructure:"secretKey"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"useSSL"`
}

type Config struct {
	KeysFile  string `mapstructure:"keysFile"`
	OutputDir string `mapstructure:"outputDir"`

	// Pause between consecutive wallets is drawn uniformly from
	// [DelayMinMs, DelayMaxMs) milliseconds.
	DelayMinMs int `mapstructure:"delayMinMs"`
	DelayMaxMs int `mapstructure:"delayMaxMs"`

	ReceiptTimeout time.Duration `mapstructure:"receiptTimeout"`

	RPC     RPCConfig     `mapstructure:"rpc"`
	Mint    MintConfig    `mapstructure:"mint"`
	History HistoryConfig `mapstructure:"history"`
	Upload  UploadConfig  `mapstructure:"upload"`
}

// Load reads the configuration from path. With an empty path it falls back
// to irys-nft-mint.{yaml,json,toml} in the working directory and, when no
// file is found, runs on defaults alone.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("irys-nft-mint")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("keysFile", "private_keys.txt")
	v.SetDefault("outputDir", ".")
	v.SetDefault("delayMinMs", 2000)
	v.SetDefault("delayMaxMs", 5000)
	v.SetDefault("receiptTimeout", 2*time.Minute)

	v.SetDefault("rpc.url", DefaultRPCURL)
	v.SetDefault("rpc.chainId", DefaultChainID)
	v.SetDefault("rpc.timeout", 10*time.Second)
	v.SetDefault("rpc.rateLimit", 10.0)

	v.SetDefault("mint.contract", "")
	v.SetDefault("mint.calldata", DefaultMintCalldata)
	v.SetDefault("mint.gasLimit", 300000)
	v.SetDefault("mint.gasPriceGwei", 0.0)
	v.SetDefault("mint.valueEth", 0.0)
	v.SetDefault("mint.minBalance", 0.001)

	v.SetDefault("history.enabled", false)
	v.SetDefault("history.path", "mint_history.db")

	v.SetDefault("upload.enabled", false)
	v.SetDefault("upload.endpoint", "")
	v.SetDefault("upload.accessKey", "")
	v.SetDefault("upload.secretKey", "")
	v.SetDefault("upload.bucket", "mint-reports")
	v.SetDefault("upload.useSSL", true)
}

// Validate rejects configurations the tool cannot run with. The mint
// contract is allowed to be empty here; commands that submit transactions
// check it separately.
func (c *Config) Validate() error {
	if c.RPC.URL == "" {
		return errors.New("rpc.url must not be empty")
	}
	if c.KeysFile == "" {
		return errors.New("keysFile must not be empty")
	}
	if c.DelayMinMs < 0 || c.DelayMaxMs < c.DelayMinMs {
		return fmt.Errorf("invalid delay range [%d, %d)", c.DelayMinMs, c.DelayMaxMs)
	}
	if c.ReceiptTimeout <= 0 {
		return errors.New("receiptTimeout must be positive")
	}
	if c.Mint.GasLimit == 0 {
		return errors.New("mint.gasLimit must be positive")
	}
	if c.Mint.GasPriceGwei < 0 {
		return errors.New("mint.gasPriceGwei must not be negative")
	}
	if c.Mint.ValueEth < 0 {
		return errors.New("mint.valueEth must not be negative")
	}
	if c.Mint.MinBalance < 0 {
		return errors.New("mint.minBalance must not be negative")
	}
	if c.Mint.Contract != "" && !ethcmn.IsHexAddress(c.Mint.Contract) {
		return fmt.Errorf("mint.contract is not a valid address: %s", c.Mint.Contract)
	}
	if c.Mint.Calldata != "" && c.Mint.Calldata != "0x" {
		if _, err := hexutil.Decode(c.Mint.Calldata); err != nil {
			return fmt.Errorf("mint.calldata is not valid 0x hex: %w", err)
		}
	}
	if c.Upload.Enabled && c.Upload.Endpoint == "" {
		return errors.New("upload.endpoint must be set when upload is enabled")
	}
	return nil
}

// ValidateMint additionally requires the mint target contract, needed by
// commands that actually send transactions.
func (c *Config) ValidateMint() error {
	if c.Mint.Contract == "" {
		return errors.New("mint.contract must be set")
	}
	if !ethcmn.IsHexAddress(c.Mint.Contract) {
		return fmt.Errorf("mint.contract is not a valid address: %s", c.Mint.Contract)
	}
	return nil
}
