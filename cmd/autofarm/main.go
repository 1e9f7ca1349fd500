package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/drexlabs/autofarm/internal/chain"
	"github.com/drexlabs/autofarm/internal/config"
	"github.com/drexlabs/autofarm/internal/logging"
	"github.com/drexlabs/autofarm/internal/metrics"
	"github.com/drexlabs/autofarm/internal/pipeline"
	"github.com/drexlabs/autofarm/internal/steps"
)

func main() {
	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printBanner()

	cfgPath := getenv("CONFIG_PATH", "config.yaml")
	cfg, err := config.Load(cfgPath)
	must(err, "load config")
	if v := getenv("RPC_URL", ""); v != "" {
		cfg.Network.RPCURL = v
	}
	if v := getenv("METRICS_ADDR", ""); v != "" {
		cfg.Bot.MetricsAddr = v
	}

	log := logging.New(cfg.Bot.LogLevel)

	keys, err := readLines(getenv("KEYS_FILE", "keys.txt"))
	must(err, "read keys")
	if len(keys) == 0 {
		die("no private keys found")
	}
	proxies, err := readLines(getenv("PROXIES_FILE", "proxies.txt"))
	if err != nil {
		proxies = nil // proxies are optional
	}

	if cfg.Bot.MetricsAddr != "" {
		metrics.Serve(cfg.Bot.MetricsAddr)
		log.Info().Str("addr", cfg.Bot.MetricsAddr).Msg("metrics endpoint up")
	}

	chainID := big.NewInt(cfg.Network.ChainID)
	log.Info().Int("wallets", len(keys)).Int64("chain", cfg.Network.ChainID).Msg("starting")

	for cycle := 1; ; cycle++ {
		log.Info().Int("cycle", cycle).Msg("cycle start")

		envs := make([]*steps.Env, 0, len(keys))
		for i, pk := range keys {
			proxy := ""
			if i < len(proxies) {
				proxy = proxies[i]
			}
			ec, err := chain.Dial(ctx, cfg.Network.RPCURL, proxy)
			if err != nil {
				log.Error().Err(err).Int("wallet", i+1).Msg("dial failed, skipping wallet")
				continue
			}
			w, err := chain.NewWallet(pk, chainID, ec, proxy)
			if err != nil {
				log.Error().Err(err).Int("wallet", i+1).Msg("bad private key, skipping wallet")
				continue
			}
			wlog := log.With().Str("wallet", logging.ShortAddr(w.Address.Hex())).Logger()
			envs = append(envs, &steps.Env{
				Wallet: w,
				Gas:    chain.NewAdvisor(ec, wlog),
				Cfg:    cfg,
				Log:    wlog,
			})
		}

		pipeline.RunBatch(ctx, envs)
		if ctx.Err() != nil {
			log.Info().Msg("interrupted, shutting down")
			return
		}

		sleep := time.Duration(cfg.Bot.CycleHours) * time.Hour
		log.Info().Int("cycle", cycle).Dur("sleep", sleep).Msg("cycle done")
		select {
		case <-ctx.Done():
			log.Info().Msg("interrupted, shutting down")
			return
		case <-time.After(sleep):
		}
	}
}

func must(err error, msg string) {
	if err != nil {
		die(msg + ": " + err.Error())
	}
}

func die(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
