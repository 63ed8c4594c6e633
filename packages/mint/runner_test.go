package mint

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/require"

	"github.com/0xliangjiang/irys-nft-mint/packages/keys"
	"github.com/0xliangjiang/irys-nft-mint/packages/report"
)

// Hardhat development accounts #0 through #3.
var devKeys = []string{
	"ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
	"59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d",
	"5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a",
	"7c852118294e51e653712a81e05800f419141751be58f605c371e15141b007a6",
}

type stubMinter struct {
	seen []keys.Wallet
}

func (s *stubMinter) MintOne(ctx context.Context, w keys.Wallet) report.MintResult {
	s.seen = append(s.seen, w)
	return report.MintResult{
		WalletIndex: w.Index,
		Address:     w.Address.Hex(),
		Success:     true,
		Message:     "mint succeeded",
	}
}

func newTestRunner(m Minter) *Runner {
	return NewRunner(m, testConfig(), log.NewLogger(log.DiscardHandler()))
}

func TestRunnerPacesBetweenWallets(t *testing.T) {
	stub := &stubMinter{}
	r := newTestRunner(stub)

	var delays []time.Duration
	r.sleep = func(d time.Duration) { delays = append(delays, d) }

	results := r.Run(context.Background(), devKeys)

	require.Len(t, results, 4)
	require.Len(t, stub.seen, 4)

	// One pause between each pair of wallets, none before the first.
	require.Len(t, delays, 3)
	for _, d := range delays {
		require.GreaterOrEqual(t, d, 2000*time.Millisecond)
		require.Less(t, d, 5000*time.Millisecond)
	}

	for i, res := range results {
		require.Equal(t, i+1, res.WalletIndex)
		require.True(t, res.Success)
	}
}

func TestRunnerSingleWalletNoDelay(t *testing.T) {
	stub := &stubMinter{}
	r := newTestRunner(stub)

	var delays []time.Duration
	r.sleep = func(d time.Duration) { delays = append(delays, d) }

	results := r.Run(context.Background(), devKeys[:1])

	require.Len(t, results, 1)
	require.Empty(t, delays)
}

func TestRunnerBadKeyStillCounts(t *testing.T) {
	stub := &stubMinter{}
	r := newTestRunner(stub)
	r.sleep = func(time.Duration) {}

	bad := strings.Repeat("f", 64) // 64 hex chars but not a valid secp256k1 scalar
	results := r.Run(context.Background(), []string{bad, devKeys[0]})

	require.Len(t, results, 2)
	require.False(t, results[0].Success)
	require.True(t, strings.HasPrefix(results[0].Message, "invalid private key"))
	require.Equal(t, 1, results[0].WalletIndex)
	require.True(t, results[1].Success)
	require.Equal(t, 2, results[1].WalletIndex)
	require.Len(t, stub.seen, 1)
}

func TestRunnerResultsFeedReport(t *testing.T) {
	stub := &stubMinter{}
	r := newTestRunner(stub)
	r.sleep = func(time.Duration) {}

	results := r.Run(context.Background(), devKeys[:3])
	rep := report.Build("https://testnet-rpc.irys.xyz/v1/execution-rpc", 1270, testConfig().Mint.Contract, results)

	require.Equal(t, 3, rep.TotalCount)
	require.Equal(t, 3, rep.SuccessCount)
	require.Equal(t, 0, rep.FailureCount)
	require.Equal(t, "100.0", rep.SuccessRate)
}

func TestPacingDelayRange(t *testing.T) {
	r := &Runner{delayMin: 2 * time.Second, delayMax: 5 * time.Second}
	for i := 0; i < 200; i++ {
		d := r.pacingDelay()
		require.GreaterOrEqual(t, d, 2*time.Second)
		require.Less(t, d, 5*time.Second)
	}

	fixed := &Runner{delayMin: time.Second, delayMax: time.Second}
	require.Equal(t, time.Second, fixed.pacingDelay())
}
