package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
)

// Throwaway key, never funded.
const testKeyHex = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"

func testWallet(t *testing.T, fb *fakeBackend) *Wallet {
	t.Helper()
	w, err := NewWallet(testKeyHex, big.NewInt(1), fb, "")
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestSendSuccessOnStatusOne(t *testing.T) {
	fb := &fakeBackend{status: types.ReceiptStatusSuccessful}
	w := testWallet(t, fb)
	out, err := Send(context.Background(), w, beneficiary, nil, SendOpts{
		GasPrice: big.NewInt(1_000_000_000),
		GasLimit: 21000,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Success || out.Status != types.ReceiptStatusSuccessful {
		t.Fatalf("outcome %+v", out)
	}
	if len(fb.sent) != 1 {
		t.Fatalf("sent %d txs", len(fb.sent))
	}
}

func TestSendRevertedStatusIsFailure(t *testing.T) {
	fb := &fakeBackend{status: types.ReceiptStatusFailed}
	w := testWallet(t, fb)
	out, err := Send(context.Background(), w, beneficiary, nil, SendOpts{
		GasPrice: big.NewInt(1_000_000_000),
		GasLimit: 21000,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Success {
		t.Fatal("status 0 must not be success")
	}
}

func TestSendFallsBackToFixedGasLimit(t *testing.T) {
	fb := &fakeBackend{status: types.ReceiptStatusSuccessful, estimateErr: errors.New("execution reverted")}
	w := testWallet(t, fb)
	out, err := Send(context.Background(), w, beneficiary, []byte{0x01}, SendOpts{
		GasPrice: big.NewInt(1_000_000_000),
		GasLimit: 123_456,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Success {
		t.Fatalf("outcome %+v", out)
	}
	if fb.sent[0].Gas() != 123_456 {
		t.Fatalf("gas limit %d, want fallback", fb.sent[0].Gas())
	}
}

func TestSendPropagatesSubmitError(t *testing.T) {
	fb := &fakeBackend{sendErr: errors.New("nonce too low")}
	w := testWallet(t, fb)
	if _, err := Send(context.Background(), w, beneficiary, nil, SendOpts{
		GasPrice: big.NewInt(1),
		GasLimit: 21000,
	}); err == nil {
		t.Fatal("want error")
	}
}
