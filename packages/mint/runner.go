package mint

import (
	"context"
	"fmt"
	mathrand "math/rand"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/0xliangjiang/irys-nft-mint/packages/config"
	"github.com/0xliangjiang/irys-nft-mint/packages/keys"
	"github.com/0xliangjiang/irys-nft-mint/packages/report"
)

// Minter mints for a single wallet. *Executor is the production
// implementation.
type Minter interface {
	MintOne(ctx context.Context, w keys.Wallet) report.MintResult
}

// Runner drives the batch: strictly sequential, one wallet at a time, with a
// randomized pause between consecutive wallets.
type Runner struct {
	minter Minter
	log    log.Logger

	delayMin time.Duration
	delayMax time.Duration

	sleep func(time.Duration) // swapped out in tests
}

// NewRunner builds the sequential batch driver.
func NewRunner(m Minter, cfg *config.Config, logger log.Logger) *Runner {
	return &Runner{
		minter:   m,
		log:      logger,
		delayMin: time.Duration(cfg.DelayMinMs) * time.Millisecond,
		delayMax: time.Duration(cfg.DelayMaxMs) * time.Millisecond,
		sleep:    time.Sleep,
	}
}

// Run mints once per key in file order and returns exactly one result per
// key. A key that fails to parse yields a failed result; the batch always
// continues with the next wallet.
func (r *Runner) Run(ctx context.Context, hexKeys []string) []report.MintResult {
	results := make([]report.MintResult, 0, len(hexKeys))

	for i, hexKey := range hexKeys {
		if i > 0 {
			delay := r.pacingDelay()
			r.log.Info("pausing before next wallet", "delay", delay.Round(time.Millisecond))
			r.sleep(delay)
		}

		index := i + 1
		w, err := keys.NewWallet(index, hexKey)
		if err != nil {
			r.log.Error("skipping wallet with bad key", "wallet", index, "err", err)
			results = append(results, report.MintResult{
				WalletIndex: index,
				Message:     fmt.Sprintf("invalid private key: %v", err),
			})
			continue
		}

		r.log.Info("processing wallet", "wallet", index, "of", len(hexKeys), "address", w.Address)
		results = append(results, r.minter.MintOne(ctx, w))
	}

	return results
}

// pacingDelay draws a uniform delay from [delayMin, delayMax).
func (r *Runner) pacingDelay() time.Duration {
	span := r.delayMax - r.delayMin
	if span <= 0 {
		return r.delayMin
	}
	return r.delayMin + time.Duration(mathrand.Int63n(int64(span)))
}
