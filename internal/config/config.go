// Package config exposes the typed configuration tree loaded once at startup
// and treated as read-only afterwards.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Retry bounds one step category; every category carries its own copy.
type Retry struct {
	MaxRetries int     `yaml:"max_retries"`
	DelayMin   float64 `yaml:"delay_min"`
	DelayMax   float64 `yaml:"delay_max"`
}

// Bot holds process-wide knobs.
type Bot struct {
	ReferralCode string  `yaml:"referral_code"`
	CycleHours   int     `yaml:"cycle_hours"`
	DelayMin     float64 `yaml:"delay_min"` // between pipeline stages
	DelayMax     float64 `yaml:"delay_max"`
	LogLevel     string  `yaml:"log_level"`
	MetricsAddr  string  `yaml:"metrics_addr"`
}

type Network struct {
	RPCURL      string `yaml:"rpc_url"`
	ChainID     int64  `yaml:"chain_id"`
	RegisterAPI string `yaml:"register_api"`
}

// Token describes one faucet token; deposit, trade and liquidity configs
// reference tokens by this symbol.
type Token struct {
	Symbol   string  `yaml:"symbol"`
	Address  string  `yaml:"address"`
	Decimals uint8   `yaml:"decimals"`
	Amount   float64 `yaml:"amount"` // faucet claim amount, human units
}

type Faucet struct {
	Enabled bool `yaml:"enabled"`
	Retry   `yaml:",inline"`
	Tokens  []Token `yaml:"tokens"`
}

type Vault struct {
	Name       string `yaml:"name"`
	Token      string `yaml:"token"` // symbol, resolved against faucet tokens
	Address    string `yaml:"address"`
	Percentage int64  `yaml:"percentage"` // of current balance
}

type Deposit struct {
	Enabled    bool `yaml:"enabled"`
	Retry      `yaml:",inline"`
	Iterations int     `yaml:"iterations"`
	Vaults     []Vault `yaml:"vaults"`
}

type Stake struct {
	Enabled    bool `yaml:"enabled"`
	Retry      `yaml:",inline"`
	Iterations int    `yaml:"iterations"`
	Contract   string `yaml:"contract"`
	Token      string `yaml:"token"`
	PoolID     int64  `yaml:"pool_id"`
	// Percentage fields are parsed but the step currently uses fixed
	// amounts; see internal/steps/stake.go.
	StakePercent   int64 `yaml:"stake_percent"`
	UnstakePercent int64 `yaml:"unstake_percent"`
}

type Pair struct {
	Symbol  string  `yaml:"symbol"`
	MinBuy  float64 `yaml:"min_buy"`
	MaxBuy  float64 `yaml:"max_buy"`
	MinSell float64 `yaml:"min_sell"`
	MaxSell float64 `yaml:"max_sell"`
}

type Trade struct {
	Enabled    bool `yaml:"enabled"`
	Retry      `yaml:",inline"`
	Iterations int    `yaml:"iterations"`
	Router     string `yaml:"router"`
	Pairs      []Pair `yaml:"pairs"`
}

type LiquidityPair struct {
	TokenA    string  `yaml:"token_a"` // symbols
	TokenB    string  `yaml:"token_b"`
	AmountA   float64 `yaml:"amount_a"`
	AmountB   float64 `yaml:"amount_b"`
	SlippageA float64 `yaml:"slippage_a"` // percent, per side
	SlippageB float64 `yaml:"slippage_b"`
	PriceLow  float64 `yaml:"price_low"`
	PriceHigh float64 `yaml:"price_high"`
}

type Liquidity struct {
	Enabled    bool `yaml:"enabled"`
	Retry      `yaml:",inline"`
	Iterations int             `yaml:"iterations"`
	Contract   string          `yaml:"contract"`
	Pairs      []LiquidityPair `yaml:"pairs"`
}

type Config struct {
	Bot       Bot       `yaml:"bot"`
	Network   Network   `yaml:"network"`
	Faucet    Faucet    `yaml:"faucet"`
	Deposit   Deposit   `yaml:"deposit"`
	Stake     Stake     `yaml:"stake"`
	Trade     Trade     `yaml:"trade"`
	Liquidity Liquidity `yaml:"liquidity"`
}

// Load reads and validates the YAML configuration file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Network.RPCURL == "" {
		return fmt.Errorf("network.rpc_url is required")
	}
	if c.Network.ChainID == 0 {
		return fmt.Errorf("network.chain_id is required")
	}
	for _, t := range c.Faucet.Tokens {
		if t.Symbol == "" || t.Address == "" {
			return fmt.Errorf("faucet token needs symbol and address")
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Bot.CycleHours <= 0 {
		c.Bot.CycleHours = 25
	}
	if c.Bot.DelayMax < c.Bot.DelayMin {
		c.Bot.DelayMax = c.Bot.DelayMin
	}
	for _, r := range []*Retry{
		&c.Faucet.Retry, &c.Deposit.Retry, &c.Stake.Retry, &c.Trade.Retry, &c.Liquidity.Retry,
	} {
		if r.MaxRetries <= 0 {
			r.MaxRetries = 3
		}
	}
	for _, it := range []*int{
		&c.Deposit.Iterations, &c.Stake.Iterations, &c.Trade.Iterations, &c.Liquidity.Iterations,
	} {
		if *it <= 0 {
			*it = 1
		}
	}
}

// TokenBySymbol resolves a token against the faucet token list. Steps fail
// locally when the lookup misses; the pipeline keeps going.
func (c *Config) TokenBySymbol(symbol string) (Token, bool) {
	for _, t := range c.Faucet.Tokens {
		if t.Symbol == symbol {
			return t, true
		}
	}
	return Token{}, false
}
