// Package steps implements the per-category financial operations. Each step
// builds one transaction (or HTTP call), submits it, waits for finality and
// reports boolean success; failures never escalate past the step boundary.
package steps

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/drexlabs/autofarm/internal/chain"
	"github.com/drexlabs/autofarm/internal/config"
)

// Env carries everything a step needs, passed explicitly at construction
// time: no step reaches into ambient globals.
type Env struct {
	Wallet *chain.Wallet
	Gas    *chain.Advisor
	Cfg    *config.Config
	Log    zerolog.Logger
}

// randomAmount draws a trade amount uniformly from [min, max], in human
// units before base-unit conversion.
func randomAmount(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rand.Float64()*(max-min)
}
