package steps

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/drexlabs/autofarm/internal/chain"
	"github.com/drexlabs/autofarm/internal/metrics"
	"github.com/drexlabs/autofarm/internal/retry"
	"github.com/drexlabs/autofarm/internal/wait"
)

// Fixed amounts observed to pass on the staking contract. The percentage
// fields in config.Stake are parsed but not applied here.
// TODO: switch to percentage-of-balance once the intended policy is confirmed.
var (
	stakeAmount   = big.NewInt(10_000_000_000_000_000) // 0.01 @ 18 decimals
	unstakeAmount = big.NewInt(5_000_000_000_000_000)  // 0.005 @ 18 decimals
)

// Stake performs the stake and unstake sub-actions, separated by a jittered
// delay, each independently retried.
func (e *Env) Stake(ctx context.Context) bool {
	policy := retry.Policy{
		MaxRetries: e.Cfg.Stake.MaxRetries,
		DelayMin:   e.Cfg.Stake.DelayMin,
		DelayMax:   e.Cfg.Stake.DelayMax,
	}
	contract := common.HexToAddress(e.Cfg.Stake.Contract)

	staked := retry.Do(ctx, e.Log, "stake", policy, func(ctx context.Context) bool {
		return e.stakeOnce(ctx, contract)
	})
	metrics.Step("stake", staked)

	_ = wait.Sleep(ctx, wait.JitterSeconds(e.Cfg.Stake.DelayMin, e.Cfg.Stake.DelayMax))

	unstaked := retry.Do(ctx, e.Log, "unstake", policy, func(ctx context.Context) bool {
		return e.unstakeOnce(ctx, contract)
	})
	metrics.Step("unstake", unstaked)

	return staked && unstaked
}

func (e *Env) stakeOnce(ctx context.Context, contract common.Address) bool {
	data, err := chain.CallStakeDeposit.Encode(
		big.NewInt(e.Cfg.Stake.PoolID),
		stakeAmount,
		e.Wallet.Address,
	)
	if err != nil {
		e.Log.Error().Err(err).Msg("encode stake")
		return false
	}
	out, err := chain.Send(ctx, e.Wallet, contract, data, chain.SendOpts{
		GasPrice: e.Gas.Price(ctx, 1.3),
		GasLimit: 350_000,
	})
	if err != nil {
		e.Log.Error().Err(err).Msg("stake failed")
		return false
	}
	e.Log.Info().Str("tx", out.TxHash.Hex()).Bool("ok", out.Success).Msg("stake")
	return out.Success
}

func (e *Env) unstakeOnce(ctx context.Context, contract common.Address) bool {
	data, err := chain.CallUnstake.Encode(unstakeAmount)
	if err != nil {
		e.Log.Error().Err(err).Msg("encode unstake")
		return false
	}
	out, err := chain.Send(ctx, e.Wallet, contract, data, chain.SendOpts{
		GasPrice: e.Gas.Price(ctx, 1.3),
		GasLimit: 250_000,
	})
	if err != nil {
		// A revert or balance complaint usually means there is nothing
		// staked to withdraw yet.
		s := err.Error()
		if strings.Contains(s, "reverted") || strings.Contains(s, "balance") {
			e.Log.Warn().Err(err).Msg("unstake rejected, likely nothing to unstake")
		} else {
			e.Log.Error().Err(err).Msg("unstake failed")
		}
		return false
	}
	e.Log.Info().Str("tx", out.TxHash.Hex()).Bool("ok", out.Success).Msg("unstake")
	return out.Success
}
