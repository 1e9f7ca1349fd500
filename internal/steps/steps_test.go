package steps

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"

	"github.com/drexlabs/autofarm/internal/chain"
	"github.com/drexlabs/autofarm/internal/config"
)

const testKeyHex = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"

// fakeBackend scripts the chain for step tests.
type fakeBackend struct {
	balance *big.Int // returned for every balanceOf call
	callErr error
	sendErr error
	sendOK  int // sends that succeed before sendErr kicks in
	status  uint64

	balanceReads int
	sendAttempts int
	sent         []*types.Transaction
}

func (f *fakeBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeBackend) CallContract(ctx context.Context, msg ethereum.CallMsg, block *big.Int) ([]byte, error) {
	f.balanceReads++
	if f.callErr != nil {
		return nil, f.callErr
	}
	bal := f.balance
	if bal == nil {
		bal = new(big.Int)
	}
	return common.LeftPadBytes(bal.Bytes(), 32), nil
}

func (f *fakeBackend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return 50_000, nil
}

func (f *fakeBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return uint64(len(f.sent)), nil
}

func (f *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	f.sendAttempts++
	if f.sendErr != nil && f.sendAttempts > f.sendOK {
		return f.sendErr
	}
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return &types.Receipt{Status: f.status, TxHash: txHash}, nil
}

func testEnv(t *testing.T, fb *fakeBackend, cfg *config.Config) *Env {
	t.Helper()
	w, err := chain.NewWallet(testKeyHex, big.NewInt(1), fb, "")
	if err != nil {
		t.Fatal(err)
	}
	return &Env{
		Wallet: w,
		Gas:    chain.NewAdvisor(fb, zerolog.Nop()),
		Cfg:    cfg,
		Log:    zerolog.Nop(),
	}
}

func baseConfig() *config.Config {
	return &config.Config{
		Network: config.Network{RPCURL: "http://unused", ChainID: 1},
		Faucet: config.Faucet{
			Enabled: true,
			Retry:   config.Retry{MaxRetries: 3},
			Tokens: []config.Token{
				{Symbol: "USDC", Address: "0x72df0bcd7276f2dFbAc900D1CE63c272C4BCcCED", Decimals: 6, Amount: 1000},
			},
		},
	}
}
