// Package chain holds the transaction-construction substrate: RPC dialing,
// wallet identities, gas pricing, calldata encoding and receipt waiting.
package chain

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Backend is the slice of the RPC surface the bot actually uses.
// *ethclient.Client satisfies it; tests substitute fakes.
type Backend interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Dial connects to the chain RPC, optionally tunneling through an outbound
// proxy. The proxy string is passed through to the transport unparsed beyond
// URL syntax.
func Dial(ctx context.Context, rpcURL, proxyURL string) (*ethclient.Client, error) {
	if proxyURL == "" {
		ec, err := ethclient.DialContext(ctx, rpcURL)
		if err != nil {
			return nil, fmt.Errorf("dial rpc: %w", err)
		}
		return ec, nil
	}
	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("proxy url: %w", err)
	}
	hc := &http.Client{
		Transport: &http.Transport{Proxy: http.ProxyURL(u)},
		Timeout:   30 * time.Second,
	}
	rc, err := rpc.DialOptions(ctx, rpcURL, rpc.WithHTTPClient(hc))
	if err != nil {
		return nil, fmt.Errorf("dial rpc via proxy: %w", err)
	}
	return ethclient.NewClient(rc), nil
}
