package steps

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/drexlabs/autofarm/internal/chain"
	"github.com/drexlabs/autofarm/internal/config"
	"github.com/drexlabs/autofarm/internal/metrics"
	"github.com/drexlabs/autofarm/internal/retry"
)

// Trade executes one buy then one sell per configured pair. Amounts are
// drawn uniformly from each leg's configured range. The legs retry
// independently; a failed buy does not prevent the sell attempt.
func (e *Env) Trade(ctx context.Context) bool {
	policy := retry.Policy{
		MaxRetries: e.Cfg.Trade.MaxRetries,
		DelayMin:   e.Cfg.Trade.DelayMin,
		DelayMax:   e.Cfg.Trade.DelayMax,
	}
	router := common.HexToAddress(e.Cfg.Trade.Router)

	overall := true
	for _, pair := range e.Cfg.Trade.Pairs {
		pair := pair
		tok, found := e.Cfg.TokenBySymbol(pair.Symbol)
		if !found {
			e.Log.Error().Str("symbol", pair.Symbol).Msg("trade pair token not in faucet list")
			metrics.Step("trade", false)
			overall = false
			continue
		}

		bought := retry.Do(ctx, e.Log, "buy:"+pair.Symbol, policy, func(ctx context.Context) bool {
			amount := chain.ToBase(randomAmount(pair.MinBuy, pair.MaxBuy), tok.Decimals)
			return e.swapOnce(ctx, chain.CallMarketBuy, router, tok, amount)
		})
		metrics.Step("trade", bought)

		sold := retry.Do(ctx, e.Log, "sell:"+pair.Symbol, policy, func(ctx context.Context) bool {
			amount := chain.ToBase(randomAmount(pair.MinSell, pair.MaxSell), tok.Decimals)
			return e.swapOnce(ctx, chain.CallMarketSell, router, tok, amount)
		})
		metrics.Step("trade", sold)

		overall = overall && bought && sold
	}
	return overall
}

func (e *Env) swapOnce(ctx context.Context, call chain.RawCall, router common.Address, tok config.Token, amount *big.Int) bool {
	data, err := call.Encode(common.HexToAddress(tok.Address), amount, new(big.Int))
	if err != nil {
		e.Log.Error().Err(err).Str("leg", call.Name).Msg("encode swap")
		return false
	}
	out, err := chain.Send(ctx, e.Wallet, router, data, chain.SendOpts{
		GasPrice: e.Gas.Price(ctx, 1.5),
		GasLimit: 400_000,
	})
	if err != nil {
		e.Log.Error().Err(err).Str("leg", call.Name).Str("token", tok.Symbol).Msg("swap failed")
		return false
	}
	e.Log.Info().Str("leg", call.Name).Str("token", tok.Symbol).Str("tx", out.TxHash.Hex()).Bool("ok", out.Success).Msg("swap")
	return out.Success
}
