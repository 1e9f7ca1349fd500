package steps

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/drexlabs/autofarm/internal/chain"
	"github.com/drexlabs/autofarm/internal/config"
	"github.com/drexlabs/autofarm/internal/metrics"
	"github.com/drexlabs/autofarm/internal/retry"
)

// Liquidity enables a position per configured pair with slippage-adjusted
// minimum amounts and a price band. Unlike faucet and deposit there is no
// pre-check of an existing position and no read-back of the result.
func (e *Env) Liquidity(ctx context.Context) bool {
	policy := retry.Policy{
		MaxRetries: e.Cfg.Liquidity.MaxRetries,
		DelayMin:   e.Cfg.Liquidity.DelayMin,
		DelayMax:   e.Cfg.Liquidity.DelayMax,
	}
	contract := common.HexToAddress(e.Cfg.Liquidity.Contract)

	overall := true
	for _, pair := range e.Cfg.Liquidity.Pairs {
		pair := pair
		ok := retry.Do(ctx, e.Log, "liquidity:"+pair.TokenA+"/"+pair.TokenB, policy, func(ctx context.Context) bool {
			return e.enableOnce(ctx, contract, pair)
		})
		metrics.Step("liquidity", ok)
		overall = overall && ok
	}
	return overall
}

func (e *Env) enableOnce(ctx context.Context, contract common.Address, pair config.LiquidityPair) bool {
	tokA, okA := e.Cfg.TokenBySymbol(pair.TokenA)
	tokB, okB := e.Cfg.TokenBySymbol(pair.TokenB)
	if !okA || !okB {
		e.Log.Error().Str("token_a", pair.TokenA).Str("token_b", pair.TokenB).Msg("liquidity pair token not in faucet list")
		return false
	}

	amountA := chain.ToBase(pair.AmountA, tokA.Decimals)
	amountB := chain.ToBase(pair.AmountB, tokB.Decimals)
	seed := chain.PoolSeed{
		Token0:     common.HexToAddress(tokA.Address),
		Token1:     common.HexToAddress(tokB.Address),
		Amount0:    amountA,
		Amount1:    amountB,
		Amount0Min: chain.ToBase(pair.AmountA*(1-pair.SlippageA/100), tokA.Decimals),
		Amount1Min: chain.ToBase(pair.AmountB*(1-pair.SlippageB/100), tokB.Decimals),
		PriceLow:   chain.ToBase(pair.PriceLow, 18),
		PriceHigh:  chain.ToBase(pair.PriceHigh, 18),
	}
	data, err := chain.CallEnableLiquidity.Encode(seed, []common.Address{seed.Token0, seed.Token1})
	if err != nil {
		e.Log.Error().Err(err).Msg("encode liquidity enable")
		return false
	}
	out, err := chain.Send(ctx, e.Wallet, contract, data, chain.SendOpts{
		GasPrice: e.Gas.Price(ctx, 1.3),
		GasLimit: 600_000,
	})
	if err != nil {
		e.Log.Error().Err(err).Msg("liquidity enable failed")
		return false
	}
	e.Log.Info().Str("pair", pair.TokenA+"/"+pair.TokenB).Str("tx", out.TxHash.Hex()).Bool("ok", out.Success).Msg("liquidity enable")
	return out.Success
}
