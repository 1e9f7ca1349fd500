package chain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Outcome reports one submitted transaction. Success iff the receipt status
// indicates inclusion without revert.
type Outcome struct {
	Success bool
	TxHash  common.Hash
	Status  uint64
}

// SendOpts carries the per-call pricing decisions made by the step.
type SendOpts struct {
	GasPrice *big.Int
	// GasLimit is used when on-chain estimation fails.
	GasLimit uint64
	Value    *big.Int
}

// Send builds a legacy transaction, signs it, submits it and waits for the
// receipt. Calldata is self-contained: nothing here depends on a previous
// attempt's result, so a retried Send re-derives nonce and gas from scratch.
func Send(ctx context.Context, w *Wallet, to common.Address, data []byte, opts SendOpts) (Outcome, error) {
	value := opts.Value
	if value == nil {
		value = new(big.Int)
	}

	nonce, err := w.Client.PendingNonceAt(ctx, w.Address)
	if err != nil {
		return Outcome{}, fmt.Errorf("nonce: %w", err)
	}

	gas, err := w.Client.EstimateGas(ctx, ethereum.CallMsg{
		From:  w.Address,
		To:    &to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		if opts.GasLimit == 0 {
			return Outcome{}, fmt.Errorf("estimate gas: %w", err)
		}
		gas = opts.GasLimit
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: new(big.Int).Set(opts.GasPrice),
		Gas:      gas,
		To:       &to,
		Value:    value,
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(w.ChainID), w.Key)
	if err != nil {
		return Outcome{}, fmt.Errorf("sign: %w", err)
	}
	if err := w.Client.SendTransaction(ctx, signed); err != nil {
		return Outcome{}, fmt.Errorf("send: %w", err)
	}

	receipt, err := waitMined(ctx, w.Client, signed.Hash())
	if err != nil {
		return Outcome{TxHash: signed.Hash()}, fmt.Errorf("wait receipt: %w", err)
	}
	return Outcome{
		Success: receipt.Status == types.ReceiptStatusSuccessful,
		TxHash:  signed.Hash(),
		Status:  receipt.Status,
	}, nil
}

// waitMined polls for the receipt until it lands or ctx is done. There is no
// extra timeout layer here: an unresponsive endpoint holds the pipeline until
// the caller's context fires.
func waitMined(ctx context.Context, b Backend, hash common.Hash) (*types.Receipt, error) {
	t := time.NewTicker(2 * time.Second)
	defer t.Stop()
	for {
		r, err := b.TransactionReceipt(ctx, hash)
		if err == nil && r != nil {
			return r, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
}
