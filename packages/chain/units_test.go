package chain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGwei(t *testing.T) {
	require.Equal(t, big.NewInt(1000000000), ParseGwei(1))
	require.Equal(t, big.NewInt(2500000000), ParseGwei(2.5))
	require.Equal(t, big.NewInt(0), ParseGwei(0))
}

func TestEtherToWei(t *testing.T) {
	require.Equal(t, big.NewInt(1000000000000000000), EtherToWei(1))
	require.Equal(t, big.NewInt(1000000000000000), EtherToWei(0.001))
	require.Equal(t, big.NewInt(0), EtherToWei(0))
}

func TestFormatEther(t *testing.T) {
	require.Equal(t, "1.000000", FormatEther(big.NewInt(1000000000000000000)))
	require.Equal(t, "0.001000", FormatEther(big.NewInt(1000000000000000)))
	require.Equal(t, "0.000000", FormatEther(big.NewInt(0)))
	require.Equal(t, "0", FormatEther(nil))
}

func TestThresholdComparison(t *testing.T) {
	// The executor compares balances in wei against the configured minimum.
	minBalance := EtherToWei(0.001)
	require.Negative(t, EtherToWei(0.0009).Cmp(minBalance))
	require.Zero(t, EtherToWei(0.001).Cmp(minBalance))
	require.Positive(t, EtherToWei(1).Cmp(minBalance))
}
