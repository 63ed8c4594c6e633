package chain

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	// DefaultReceiptTimeout bounds how long a mint waits for its receipt.
	DefaultReceiptTimeout = 2 * time.Minute

	receiptPollInterval = 1 * time.Second
)

// ErrTimeoutReached is returned when a poll deadline expires before the
// condition is met.
var ErrTimeoutReached = errors.New("timeout has been reached")

// ConditionFunc is a generic polling condition.
type ConditionFunc func() (done bool, err error)

// Poll retries the given condition with the given interval until it succeeds
// or the given deadline expires.
func Poll(interval, deadline time.Duration, condition ConditionFunc) error {
	timeout := time.After(deadline)
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		select {
		case <-timeout:
			return ErrTimeoutReached
		case <-tick.C:
			ok, err := condition()
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
		}
	}
}

// WaitReceipt polls for the receipt of txHash until it lands or timeout
// expires. A receipt that is not yet available keeps the poll alive; any
// other error aborts it.
func (e *EthClient) WaitReceipt(ctx context.Context, txHash ethcmn.Hash, timeout time.Duration) (*types.Receipt, error) {
	if timeout <= 0 {
		timeout = DefaultReceiptTimeout
	}

	var receipt *types.Receipt
	pollErr := Poll(receiptPollInterval, timeout, func() (bool, error) {
		if err := e.limiter.Wait(ctx); err != nil {
			return false, err
		}
		var err error
		receipt, err = e.TransactionReceipt(ctx, txHash)
		if err != nil {
			if errors.Is(err, ethereum.NotFound) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	})
	if pollErr != nil {
		return nil, pollErr
	}
	return receipt, nil
}

// RevertReason replays the failed call against the block it was mined in and
// unpacks the revert message, if the node exposes one.
func (e *EthClient) RevertReason(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) (string, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return "", err
	}
	ret, err := e.CallContract(ctx, msg, blockNumber)
	if err != nil {
		return "", err
	}
	reason, err := abi.UnpackRevert(ret)
	if err != nil {
		return "", errors.New("execution reverted")
	}
	return reason, nil
}
