package mint

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"

	"github.com/0xliangjiang/irys-nft-mint/packages/chain"
	"github.com/0xliangjiang/irys-nft-mint/packages/config"
	"github.com/0xliangjiang/irys-nft-mint/packages/keys"
	"github.com/0xliangjiang/irys-nft-mint/packages/report"
)

// Result messages for the terminal outcomes of a wallet.
const (
	msgInsufficientBalance = "insufficient balance"
	msgMintSucceeded       = "mint succeeded"
	msgTxFailed            = "transaction failed"
	msgDryRun              = "dry run"
)

// Executor submits one mint transaction per wallet. Every outcome, including
// a panic below this boundary, becomes a MintResult; errors never propagate
// to the batch loop.
type Executor struct {
	client chain.Client
	log    log.Logger

	contract       ethcmn.Address
	calldata       []byte
	value          *big.Int
	gasLimit       uint64
	gasPrice       *big.Int // nil asks the node per transaction
	minBalance     *big.Int
	receiptTimeout time.Duration
	dryRun         bool
}

// NewExecutor validates the mint parameters and builds an executor. With
// dryRun set it stops each wallet after the balance check and sends nothing.
func NewExecutor(client chain.Client, cfg *config.Config, dryRun bool, logger log.Logger) (*Executor, error) {
	if !ethcmn.IsHexAddress(cfg.Mint.Contract) {
		return nil, fmt.Errorf("invalid mint contract address: %q", cfg.Mint.Contract)
	}

	var calldata []byte
	if cfg.Mint.Calldata != "" && cfg.Mint.Calldata != "0x" {
		var err error
		calldata, err = hexutil.Decode(cfg.Mint.Calldata)
		if err != nil {
			return nil, fmt.Errorf("invalid mint calldata: %w", err)
		}
	}

	var gasPrice *big.Int
	if cfg.Mint.GasPriceGwei > 0 {
		gasPrice = chain.ParseGwei(cfg.Mint.GasPriceGwei)
	}

	return &Executor{
		client:         client,
		log:            logger,
		contract:       ethcmn.HexToAddress(cfg.Mint.Contract),
		calldata:       calldata,
		value:          chain.EtherToWei(cfg.Mint.ValueEth),
		gasLimit:       cfg.Mint.GasLimit,
		gasPrice:       gasPrice,
		minBalance:     chain.EtherToWei(cfg.Mint.MinBalance),
		receiptTimeout: cfg.ReceiptTimeout,
		dryRun:         dryRun,
	}, nil
}

// MintOne runs the full sequence for a single wallet: balance check, send,
// receipt wait, classification.
func (e *Executor) MintOne(ctx context.Context, w keys.Wallet) (res report.MintResult) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("mint aborted by panic", "wallet", w.Index, "err", r)
			res = report.MintResult{
				WalletIndex: w.Index,
				Address:     w.Address.Hex(),
				Message:     fmt.Sprintf("internal error: %v", r),
			}
		}
	}()

	start := time.Now()

	balance := e.balanceOf(ctx, w)
	res = report.MintResult{
		WalletIndex: w.Index,
		Address:     w.Address.Hex(),
		Balance:     chain.FormatEther(balance),
	}

	if balance.Cmp(e.minBalance) < 0 {
		e.log.Warn("skipping wallet, balance below minimum",
			"wallet", w.Index, "address", w.Address,
			"balance", res.Balance, "minimum", chain.FormatEther(e.minBalance))
		res.Message = msgInsufficientBalance
		return res
	}

	if e.dryRun {
		e.log.Info("dry run, not sending", "wallet", w.Index, "address", w.Address, "balance", res.Balance)
		res.Message = msgDryRun
		return res
	}

	hash, err := e.client.SendMint(ctx, w.Key, e.contract, e.value, e.gasLimit, e.gasPrice, e.calldata)
	if err != nil {
		e.log.Error("mint send failed", "wallet", w.Index, "address", w.Address, "err", err)
		res.Message = fmt.Sprintf("send failed: %v", err)
		return res
	}
	res.TxHash = hash.Hex()
	e.log.Info("mint transaction sent", "wallet", w.Index, "hash", hash)

	receipt, err := e.client.WaitReceipt(ctx, hash, e.receiptTimeout)
	if err != nil {
		e.log.Error("mint confirmation failed", "wallet", w.Index, "hash", hash, "err", err)
		res.Message = fmt.Sprintf("confirmation failed: %v", err)
		return res
	}
	res.ElapsedMs = time.Since(start).Milliseconds()

	if receipt.Status == types.ReceiptStatusSuccessful {
		res.Success = true
		res.Message = msgMintSucceeded
		e.log.Info("mint confirmed",
			"wallet", w.Index, "hash", hash,
			"block", receipt.BlockNumber, "gasUsed", receipt.GasUsed,
			"elapsed", time.Since(start).Round(time.Millisecond))
		return res
	}

	res.Message = msgTxFailed
	e.logRevertReason(ctx, w, receipt)
	return res
}

// balanceOf queries the wallet balance, treating query failures as a zero
// balance so the wallet is skipped rather than minted blind.
func (e *Executor) balanceOf(ctx context.Context, w keys.Wallet) *big.Int {
	balance, err := e.client.Balance(ctx, w.Address)
	if err != nil {
		e.log.Warn("balance query failed, treating as zero", "wallet", w.Index, "address", w.Address, "err", err)
		return new(big.Int)
	}
	return balance
}

// logRevertReason replays the failed mint for diagnostics. The result
// message stays untouched.
func (e *Executor) logRevertReason(ctx context.Context, w keys.Wallet, receipt *types.Receipt) {
	msg := ethereum.CallMsg{
		From:  w.Address,
		To:    &e.contract,
		Gas:   e.gasLimit,
		Value: e.value,
		Data:  e.calldata,
	}
	reason, err := e.client.RevertReason(ctx, msg, receipt.BlockNumber)
	if err != nil || reason == "" {
		e.log.Warn("mint reverted on chain", "wallet", w.Index, "hash", receipt.TxHash)
		return
	}
	e.log.Warn("mint reverted on chain", "wallet", w.Index, "hash", receipt.TxHash, "reason", reason)
}
