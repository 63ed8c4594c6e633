package chain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/params"
)

// ParseGwei converts a gas price in gwei to wei. Fractional gwei values are
// kept to full wei precision.
func ParseGwei(gwei float64) *big.Int {
	wei, _ := new(big.Float).Mul(big.NewFloat(gwei), big.NewFloat(params.GWei)).Int(nil)
	return wei
}

// EtherToWei converts an amount of whole native tokens to wei.
func EtherToWei(amount float64) *big.Int {
	wei, _ := new(big.Float).Mul(big.NewFloat(amount), big.NewFloat(params.Ether)).Int(nil)
	return wei
}

// FormatEther renders a wei amount as a decimal string of whole native
// tokens, for logs and reports.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	f := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(params.Ether))
	return f.Text('f', 6)
}
