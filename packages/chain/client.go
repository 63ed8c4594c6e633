package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum"
	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/time/rate"

	"github.com/0xliangjiang/irys-nft-mint/packages/config"
)

var _ Client = (*EthClient)(nil)

// Client defines the chain operations used by the mint pipeline.
type Client interface {
	Balance(ctx context.Context, addr ethcmn.Address) (*big.Int, error)
	SendMint(ctx context.Context, key *ecdsa.PrivateKey, to ethcmn.Address, value *big.Int, gasLimit uint64, gasPrice *big.Int, data []byte) (ethcmn.Hash, error)
	WaitReceipt(ctx context.Context, txHash ethcmn.Hash, timeout time.Duration) (*types.Receipt, error)
	RevertReason(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) (string, error)
	Close()
}

// EthClient wraps the ethereum client with signing and client-side rate
// limiting. One instance is shared by the whole batch.
type EthClient struct {
	*ethclient.Client
	signer  types.Signer
	limiter *rate.Limiter
}

const defaultRateLimit = 10.0

// newPooledHTTPClient returns an HTTP client tuned for a long-lived RPC
// session with connection reuse.
func newPooledHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	transport := &http.Transport{
		MaxIdleConns:        16,
		MaxIdleConnsPerHost: 16,
		IdleConnTimeout:     90 * time.Second,
		DisableKeepAlives:   false,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// Dial connects to the configured RPC endpoint and verifies that the node
// serves the expected chain. A ChainID of 0 in the config skips the check.
func Dial(ctx context.Context, cfg config.RPCConfig) (*EthClient, error) {
	rpcClient, err := rpc.DialOptions(ctx, cfg.URL, rpc.WithHTTPClient(newPooledHTTPClient(cfg.Timeout)))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rpc client: %w", err)
	}
	cli := ethclient.NewClient(rpcClient)

	chainID, err := cli.ChainID(ctx)
	if err != nil {
		cli.Close()
		return nil, fmt.Errorf("failed to query chain id: %w", err)
	}
	if cfg.ChainID != 0 && chainID.Uint64() != cfg.ChainID {
		cli.Close()
		return nil, fmt.Errorf("chain id mismatch: node reports %s, config expects %d", chainID, cfg.ChainID)
	}
	log.Info("connected to rpc endpoint", "url", cfg.URL, "chainId", chainID)

	rps := cfg.RateLimit
	if rps <= 0 {
		rps = defaultRateLimit
	}

	return &EthClient{
		Client:  cli,
		signer:  types.NewLondonSigner(chainID),
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

// Balance returns the native balance of addr at the latest block.
func (e *EthClient) Balance(ctx context.Context, addr ethcmn.Address) (*big.Int, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return e.BalanceAt(ctx, addr, nil)
}

// SendMint signs and broadcasts one mint transaction for the given key.
// The nonce is always taken from the node; with a nil gasPrice the price is
// taken from the node as well.
func (e *EthClient) SendMint(ctx context.Context, key *ecdsa.PrivateKey, to ethcmn.Address, value *big.Int, gasLimit uint64, gasPrice *big.Int, data []byte) (ethcmn.Hash, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return ethcmn.Hash{}, err
	}

	from := crypto.PubkeyToAddress(key.PublicKey)
	nonce, err := e.PendingNonceAt(ctx, from)
	if err != nil {
		return ethcmn.Hash{}, fmt.Errorf("failed to query nonce: %w", err)
	}

	if gasPrice == nil {
		gasPrice, err = e.SuggestGasPrice(ctx)
		if err != nil {
			return ethcmn.Hash{}, fmt.Errorf("failed to query gas price: %w", err)
		}
	}

	unsignedTx := types.NewTransaction(nonce, to, value, gasLimit, gasPrice, data)
	signedTx, err := types.SignTx(unsignedTx, e.signer, key)
	if err != nil {
		return ethcmn.Hash{}, fmt.Errorf("failed to sign tx: %w", err)
	}

	if err := e.SendTransaction(ctx, signedTx); err != nil {
		return ethcmn.Hash{}, err
	}
	return signedTx.Hash(), nil
}
