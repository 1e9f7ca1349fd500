package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3"
)

// Typed encoders for the calls whose interface is published.
var (
	funcBalanceOf = w3.MustNewFunc("balanceOf(address)", "uint256")
	funcApprove   = w3.MustNewFunc("approve(address,uint256)", "bool")
	funcMint      = w3.MustNewFunc("mint(address,uint256)", "")
	funcDeposit   = w3.MustNewFunc("deposit(uint256,address)", "uint256")
)

// BalanceOf reads a token balance for holder. The result is tagged: a failed
// read returns (0, false) and the caller decides whether zero is acceptable.
func BalanceOf(ctx context.Context, b Backend, token, holder common.Address) (*big.Int, bool) {
	data, err := funcBalanceOf.EncodeArgs(holder)
	if err != nil {
		return new(big.Int), false
	}
	ret, err := b.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil || len(ret) == 0 {
		return new(big.Int), false
	}
	bal := new(big.Int)
	if err := funcBalanceOf.DecodeReturns(ret, bal); err != nil {
		return new(big.Int), false
	}
	return bal, true
}

// EncodeApprove builds approve(spender, amount) calldata.
func EncodeApprove(spender common.Address, amount *big.Int) ([]byte, error) {
	return funcApprove.EncodeArgs(spender, amount)
}

// EncodeMint builds mint(to, amount) calldata for faucet claims.
func EncodeMint(to common.Address, amount *big.Int) ([]byte, error) {
	return funcMint.EncodeArgs(to, amount)
}

// EncodeVaultDeposit builds deposit(assets, receiver) calldata (ERC-4626).
func EncodeVaultDeposit(assets *big.Int, receiver common.Address) ([]byte, error) {
	return funcDeposit.EncodeArgs(assets, receiver)
}
