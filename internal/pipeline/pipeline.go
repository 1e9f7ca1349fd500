// Package pipeline sequences the enabled step categories for one wallet.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/drexlabs/autofarm/internal/metrics"
	"github.com/drexlabs/autofarm/internal/steps"
	"github.com/drexlabs/autofarm/internal/wait"
)

// Run executes the fixed stage order for one wallet:
// Register -> Faucet -> Deposit -> Stake/Unstake -> Trade -> Liquidity.
// Per-category results are aggregated for logging only; a failed category
// never halts progression. A panic anywhere ends this wallet's run and is
// reported as the returned error.
func Run(ctx context.Context, env *steps.Env) (err error) {
	log := env.Log.With().Str("run", uuid.NewString()).Logger()
	env.Log = log

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("wallet pipeline panic: %v", r)
			log.Error().Interface("panic", r).Msg("pipeline aborted")
		}
	}()

	cfg := env.Cfg
	pause := func() {
		_ = wait.Sleep(ctx, wait.JitterSeconds(cfg.Bot.DelayMin, cfg.Bot.DelayMax))
	}

	if cfg.Network.RegisterAPI != "" {
		ok := env.Register(ctx)
		log.Info().Bool("ok", ok).Msg("register stage done")
		pause()
	}

	if cfg.Faucet.Enabled {
		ok := env.Faucet(ctx)
		log.Info().Bool("ok", ok).Msg("faucet stage done")
		pause()
	}

	if cfg.Deposit.Enabled {
		ok := true
		for i := 0; i < cfg.Deposit.Iterations; i++ {
			ok = env.Deposit(ctx) && ok
			pause()
		}
		log.Info().Bool("ok", ok).Msg("deposit stage done")
	}

	if cfg.Stake.Enabled {
		ok := true
		for i := 0; i < cfg.Stake.Iterations; i++ {
			ok = env.Stake(ctx) && ok
			pause()
		}
		log.Info().Bool("ok", ok).Msg("stake stage done")
	}

	if cfg.Trade.Enabled {
		ok := true
		for i := 0; i < cfg.Trade.Iterations; i++ {
			ok = env.Trade(ctx) && ok
			pause()
		}
		log.Info().Bool("ok", ok).Msg("trade stage done")
	}

	if cfg.Liquidity.Enabled {
		ok := true
		for i := 0; i < cfg.Liquidity.Iterations; i++ {
			ok = env.Liquidity(ctx) && ok
			pause()
		}
		log.Info().Bool("ok", ok).Msg("liquidity stage done")
	}

	log.Info().Msg("wallet pipeline done")
	return nil
}

// RunBatch drives wallets strictly one after another. A wallet whose
// pipeline dies does not stop the rest of the batch.
func RunBatch(ctx context.Context, envs []*steps.Env) {
	for _, env := range envs {
		if ctx.Err() != nil {
			return
		}
		if err := Run(ctx, env); err != nil {
			env.Log.Error().Err(err).Msg("wallet run ended early")
			metrics.WalletsTotal.WithLabelValues("fail").Inc()
			continue
		}
		metrics.WalletsTotal.WithLabelValues("ok").Inc()
	}
}
