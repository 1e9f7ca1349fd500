package steps

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/drexlabs/autofarm/internal/chain"
	"github.com/drexlabs/autofarm/internal/config"
	"github.com/drexlabs/autofarm/internal/metrics"
	"github.com/drexlabs/autofarm/internal/retry"
)

// Deposit runs approve then deposit for every configured vault, each
// sub-step independently retried. A failed approval skips that vault's
// deposit and marks it failed; remaining vaults still run.
func (e *Env) Deposit(ctx context.Context) bool {
	policy := retry.Policy{
		MaxRetries: e.Cfg.Deposit.MaxRetries,
		DelayMin:   e.Cfg.Deposit.DelayMin,
		DelayMax:   e.Cfg.Deposit.DelayMax,
	}
	overall := true
	for _, v := range e.Cfg.Deposit.Vaults {
		if !e.depositVault(ctx, v, policy) {
			overall = false
		}
	}
	return overall
}

func (e *Env) depositVault(ctx context.Context, v config.Vault, policy retry.Policy) bool {
	log := e.Log.With().Str("vault", v.Name).Logger()

	tok, found := e.Cfg.TokenBySymbol(v.Token)
	if !found {
		log.Error().Str("symbol", v.Token).Msg("vault token not in faucet list")
		metrics.Step("deposit", false)
		return false
	}
	token := common.HexToAddress(tok.Address)
	vault := common.HexToAddress(v.Address)

	bal, ok := chain.BalanceOf(ctx, e.Wallet.Client, token, e.Wallet.Address)
	if !ok || bal.Sign() == 0 {
		log.Warn().Msg("nothing to deposit")
		metrics.Step("deposit", false)
		return false
	}
	amount := chain.PercentOf(bal, v.Percentage)
	if amount.Sign() == 0 {
		log.Warn().Msg("computed deposit amount is zero")
		metrics.Step("deposit", false)
		return false
	}

	approved := retry.Do(ctx, log, "approve:"+v.Name, policy, func(ctx context.Context) bool {
		return e.approveOnce(ctx, log, token, vault, amount)
	})
	if !approved {
		log.Error().Msg("approval exhausted retries, skipping deposit")
		metrics.Step("deposit", false)
		return false
	}

	deposited := retry.Do(ctx, log, "deposit:"+v.Name, policy, func(ctx context.Context) bool {
		return e.depositOnce(ctx, log, vault, amount)
	})
	metrics.Step("deposit", deposited)
	if !deposited {
		log.Error().Msg("deposit exhausted retries")
	}
	return deposited
}

func (e *Env) approveOnce(ctx context.Context, log zerolog.Logger, token, spender common.Address, amount *big.Int) bool {
	data, err := chain.EncodeApprove(spender, amount)
	if err != nil {
		log.Error().Err(err).Msg("encode approve")
		return false
	}
	out, err := chain.Send(ctx, e.Wallet, token, data, chain.SendOpts{
		GasPrice: e.Gas.Price(ctx, chain.DefaultGasMultiplier),
		GasLimit: 100_000,
	})
	if err != nil {
		log.Error().Err(err).Msg("approve failed")
		return false
	}
	log.Info().Str("tx", out.TxHash.Hex()).Bool("ok", out.Success).Msg("approve")
	return out.Success
}

func (e *Env) depositOnce(ctx context.Context, log zerolog.Logger, vault common.Address, amount *big.Int) bool {
	data, err := chain.EncodeVaultDeposit(amount, e.Wallet.Address)
	if err != nil {
		log.Error().Err(err).Msg("encode deposit")
		return false
	}
	out, err := chain.Send(ctx, e.Wallet, vault, data, chain.SendOpts{
		GasPrice: e.Gas.Price(ctx, 1.3),
		GasLimit: 300_000,
	})
	if err != nil {
		log.Error().Err(err).Msg("deposit failed")
		return false
	}
	log.Info().Str("tx", out.TxHash.Hex()).Str("amount", amount.String()).Bool("ok", out.Success).Msg("deposit")
	return out.Success
}
