package steps

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/drexlabs/autofarm/internal/chain"
	"github.com/drexlabs/autofarm/internal/config"
	"github.com/drexlabs/autofarm/internal/metrics"
	"github.com/drexlabs/autofarm/internal/retry"
)

// Faucet claims the configured amount of every faucet token. A non-zero
// pre-existing balance makes that token's claim a no-op success: the faucets
// are single-claim-lifetime. The balance probe is best effort, not a
// guarantee against a concurrent credit.
func (e *Env) Faucet(ctx context.Context) bool {
	policy := retry.Policy{
		MaxRetries: e.Cfg.Faucet.MaxRetries,
		DelayMin:   e.Cfg.Faucet.DelayMin,
		DelayMax:   e.Cfg.Faucet.DelayMax,
	}
	overall := true
	for _, tok := range e.Cfg.Faucet.Tokens {
		tok := tok
		ok := retry.Do(ctx, e.Log, "faucet:"+tok.Symbol, policy, func(ctx context.Context) bool {
			return e.claimOnce(ctx, tok)
		})
		metrics.Step("faucet", ok)
		if !ok {
			e.Log.Error().Str("token", tok.Symbol).Msg("faucet claim exhausted retries")
			overall = false
		}
	}
	return overall
}

func (e *Env) claimOnce(ctx context.Context, tok config.Token) bool {
	token := common.HexToAddress(tok.Address)

	bal, ok := chain.BalanceOf(ctx, e.Wallet.Client, token, e.Wallet.Address)
	if !ok {
		e.Log.Warn().Str("token", tok.Symbol).Msg("balance read unavailable, treating as zero")
	}
	if bal.Sign() > 0 {
		e.Log.Info().Str("token", tok.Symbol).Bool("ok", true).Msg("balance present, skipping claim")
		return true
	}

	amount := chain.ToBase(tok.Amount, tok.Decimals)
	data, err := chain.EncodeMint(e.Wallet.Address, amount)
	if err != nil {
		e.Log.Error().Err(err).Str("token", tok.Symbol).Msg("encode mint")
		return false
	}
	out, err := chain.Send(ctx, e.Wallet, token, data, chain.SendOpts{
		GasPrice: e.Gas.Price(ctx, chain.DefaultGasMultiplier),
		GasLimit: 200_000,
	})
	if err != nil {
		e.Log.Error().Err(err).Str("token", tok.Symbol).Msg("faucet claim failed")
		return false
	}
	e.Log.Info().Str("token", tok.Symbol).Str("tx", out.TxHash.Hex()).Bool("ok", out.Success).Msg("faucet claim")
	return out.Success
}
