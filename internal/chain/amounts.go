package chain

import "math/big"

// ToBase converts a human-readable token amount to integer base units given
// the token's decimal precision.
func ToBase(amount float64, decimals uint8) *big.Int {
	f := new(big.Float).SetFloat64(amount)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	f.Mul(f, new(big.Float).SetInt(scale))
	out, _ := f.Int(nil)
	if out.Sign() < 0 {
		return new(big.Int)
	}
	return out
}

// PercentOf returns floor(balance * pct / 100).
func PercentOf(balance *big.Int, pct int64) *big.Int {
	if balance == nil || pct <= 0 {
		return new(big.Int)
	}
	out := new(big.Int).Mul(balance, big.NewInt(pct))
	return out.Div(out, big.NewInt(100))
}
