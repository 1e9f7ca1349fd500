package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// fakeBackend scripts the narrow RPC surface the bot uses.
type fakeBackend struct {
	gasPrice    *big.Int
	gasErr      error
	callRet     []byte
	callErr     error
	estimate    uint64
	estimateErr error
	sendErr     error
	status      uint64

	calls int
	sent  []*types.Transaction
}

func (f *fakeBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	if f.gasErr != nil {
		return nil, f.gasErr
	}
	return new(big.Int).Set(f.gasPrice), nil
}

func (f *fakeBackend) CallContract(ctx context.Context, msg ethereum.CallMsg, block *big.Int) ([]byte, error) {
	f.calls++
	if f.callErr != nil {
		return nil, f.callErr
	}
	return f.callRet, nil
}

func (f *fakeBackend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	if f.estimateErr != nil {
		return 0, f.estimateErr
	}
	if f.estimate == 0 {
		return 21000, nil
	}
	return f.estimate, nil
}

func (f *fakeBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return uint64(len(f.sent)), nil
}

func (f *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return &types.Receipt{Status: f.status, TxHash: txHash}, nil
}
