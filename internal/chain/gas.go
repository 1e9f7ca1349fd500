package chain

import (
	"context"
	"math"
	"math/big"

	"github.com/rs/zerolog"
)

// FallbackGasPrice is used when the chain's suggested price is unavailable:
// 1.5 gwei.
var FallbackGasPrice = big.NewInt(1_500_000_000)

// DefaultGasMultiplier is applied when a step has no priority requirement.
const DefaultGasMultiplier = 1.1

// Quote is a tagged gas-price read: callers decide what Unavailable means.
type Quote struct {
	Price     *big.Int
	Available bool
}

// Advisor scales the chain's suggested gas price. It never blocks the
// pipeline: an unreachable RPC degrades to a fixed fallback.
type Advisor struct {
	src interface {
		SuggestGasPrice(ctx context.Context) (*big.Int, error)
	}
	log zerolog.Logger
}

func NewAdvisor(src Backend, log zerolog.Logger) *Advisor {
	return &Advisor{src: src, log: log}
}

// Suggest reads the chain's current gas price.
func (a *Advisor) Suggest(ctx context.Context) Quote {
	p, err := a.src.SuggestGasPrice(ctx)
	if err != nil || p == nil {
		a.log.Warn().Err(err).Msg("gas price read failed")
		return Quote{Available: false}
	}
	return Quote{Price: p, Available: true}
}

// Price returns suggested * floor(multiplier*100) / 100 in integer
// arithmetic, or the fallback when the suggestion is unavailable.
func (a *Advisor) Price(ctx context.Context, multiplier float64) *big.Int {
	q := a.Suggest(ctx)
	if !q.Available {
		return new(big.Int).Set(FallbackGasPrice)
	}
	pct := int64(math.Floor(multiplier * 100))
	if pct < 1 {
		pct = 100
	}
	out := new(big.Int).Mul(q.Price, big.NewInt(pct))
	return out.Div(out, big.NewInt(100))
}
