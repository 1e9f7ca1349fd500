package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
bot:
  referral_code: "REF123"
  cycle_hours: 25
  delay_min: 5
  delay_max: 15
  log_level: debug
network:
  rpc_url: "https://rpc.example.org"
  chain_id: 688688
  register_api: "https://api.example.org"
faucet:
  enabled: true
  max_retries: 3
  delay_min: 10
  delay_max: 30
  tokens:
    - symbol: USDC
      address: "0x72df0bcd7276f2dFbAc900D1CE63c272C4BCcCED"
      decimals: 6
      amount: 1000
    - symbol: WBTC
      address: "0x8275c526d1bCEc59a31d673929d3cE8d108fF5c7"
      decimals: 8
      amount: 0.1
deposit:
  enabled: true
  iterations: 2
  max_retries: 3
  delay_min: 5
  delay_max: 10
  vaults:
    - name: usdc-vault
      token: USDC
      address: "0x0000000000000000000000000000000000000aaa"
      percentage: 40
stake:
  enabled: false
trade:
  enabled: true
  pairs:
    - symbol: WBTC
      min_buy: 0.1
      max_buy: 0.2
      min_sell: 0.05
      max_sell: 0.1
liquidity:
  enabled: false
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeTemp(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Network.ChainID != 688688 {
		t.Fatalf("chain id = %d", cfg.Network.ChainID)
	}
	if len(cfg.Faucet.Tokens) != 2 || cfg.Faucet.Tokens[1].Decimals != 8 {
		t.Fatalf("faucet tokens parsed wrong: %+v", cfg.Faucet.Tokens)
	}
	if cfg.Deposit.Vaults[0].Percentage != 40 {
		t.Fatalf("vault percentage = %d", cfg.Deposit.Vaults[0].Percentage)
	}
	if cfg.Trade.Pairs[0].MaxBuy != 0.2 {
		t.Fatalf("pair max_buy = %v", cfg.Trade.Pairs[0].MaxBuy)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, `
network:
  rpc_url: "https://rpc.example.org"
  chain_id: 1
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bot.CycleHours != 25 {
		t.Fatalf("default cycle hours = %d", cfg.Bot.CycleHours)
	}
	if cfg.Faucet.MaxRetries != 3 || cfg.Trade.MaxRetries != 3 {
		t.Fatal("default max_retries not applied")
	}
	if cfg.Deposit.Iterations != 1 {
		t.Fatalf("default iterations = %d", cfg.Deposit.Iterations)
	}
}

func TestLoadRejectsMissingRPC(t *testing.T) {
	if _, err := Load(writeTemp(t, `network: {chain_id: 1}`)); err == nil {
		t.Fatal("expected error for missing rpc_url")
	}
}

func TestTokenBySymbol(t *testing.T) {
	cfg, err := Load(writeTemp(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	tok, ok := cfg.TokenBySymbol("WBTC")
	if !ok || tok.Decimals != 8 {
		t.Fatalf("lookup WBTC: ok=%v tok=%+v", ok, tok)
	}
	if _, ok := cfg.TokenBySymbol("NOPE"); ok {
		t.Fatal("unknown symbol should miss")
	}
}
