package chain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Several target contracts expose functions whose interface could not be
// resolved from any published description, only from observed call traces.
// Each such call lives in this closed table as a literal 4-byte selector plus
// its argument tuple; Encode performs no validation of argument ranges.

// RawCall is one traced contract function: a hand-derived selector and the
// ABI argument tuple observed for it.
type RawCall struct {
	Name     string
	Selector [4]byte
	Args     abi.Arguments
}

// Encode produces selector || ABI-encoded(args). Deterministic for equal
// inputs; argument range and unit correctness is the caller's business.
func (c RawCall) Encode(args ...interface{}) ([]byte, error) {
	packed, err := c.Args.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", c.Name, err)
	}
	return append(c.Selector[:], packed...), nil
}

func mustType(t string, components []abi.ArgumentMarshaling) abi.Type {
	ty, err := abi.NewType(t, "", components)
	if err != nil {
		panic(err)
	}
	return ty
}

var (
	typeUint256    = mustType("uint256", nil)
	typeAddress    = mustType("address", nil)
	typeAddressArr = mustType("address[]", nil)

	// Tuple taken by the liquidity-enable call, in trace order.
	typePoolSeed = mustType("tuple", []abi.ArgumentMarshaling{
		{Name: "token0", Type: "address"},
		{Name: "token1", Type: "address"},
		{Name: "amount0", Type: "uint256"},
		{Name: "amount1", Type: "uint256"},
		{Name: "amount0Min", Type: "uint256"},
		{Name: "amount1Min", Type: "uint256"},
		{Name: "priceLow", Type: "uint256"},
		{Name: "priceHigh", Type: "uint256"},
	})
)

// PoolSeed mirrors typePoolSeed for packing.
type PoolSeed struct {
	Token0     common.Address
	Token1     common.Address
	Amount0    *big.Int
	Amount1    *big.Int
	Amount0Min *big.Int
	Amount1Min *big.Int
	PriceLow   *big.Int
	PriceHigh  *big.Int
}

var (
	// CallStakeDeposit: stake into a pool.
	// Args: pool id, amount in base units, beneficiary address.
	CallStakeDeposit = RawCall{
		Name:     "stakeDeposit",
		Selector: [4]byte{0x98, 0x2f, 0xf0, 0xd5},
		Args: abi.Arguments{
			{Name: "poolId", Type: typeUint256},
			{Name: "amount", Type: typeUint256},
			{Name: "beneficiary", Type: typeAddress},
		},
	}

	// CallUnstake: withdraw a staked amount.
	// Args: amount in base units.
	CallUnstake = RawCall{
		Name:     "unstake",
		Selector: [4]byte{0x2e, 0x1a, 0x7d, 0x4d},
		Args: abi.Arguments{
			{Name: "amount", Type: typeUint256},
		},
	}

	// CallMarketBuy: buy leg on the router.
	// Args: token bought, spend amount in base units, minimum acceptable out.
	CallMarketBuy = RawCall{
		Name:     "marketBuy",
		Selector: [4]byte{0x7d, 0xeb, 0x60, 0x25},
		Args: abi.Arguments{
			{Name: "token", Type: typeAddress},
			{Name: "amountIn", Type: typeUint256},
			{Name: "minOut", Type: typeUint256},
		},
	}

	// CallMarketSell: sell leg on the router. Same tuple as the buy leg.
	CallMarketSell = RawCall{
		Name:     "marketSell",
		Selector: [4]byte{0x09, 0xc2, 0x8b, 0xc3},
		Args: abi.Arguments{
			{Name: "token", Type: typeAddress},
			{Name: "amountIn", Type: typeUint256},
			{Name: "minOut", Type: typeUint256},
		},
	}

	// CallEnableLiquidity: single-sided liquidity enable.
	// Args: pool seed tuple (amounts, slippage minimums, price band) and the
	// token pair as an address array.
	CallEnableLiquidity = RawCall{
		Name:     "enableLiquidity",
		Selector: [4]byte{0x4f, 0x8b, 0x2a, 0x7e},
		Args: abi.Arguments{
			{Name: "seed", Type: typePoolSeed},
			{Name: "pair", Type: typeAddressArr},
		},
	}
)
