// Package market implements a single mean-reverting commodity price track
// with stochastic shocks.
package market

import (
	"log/slog"
	"math"
	"math/rand"
)

// Commodity is a single mean-reverting price process shared by every
// country's resource exports.
type Commodity struct {
	price        float64
	basePrice    float64
	volatility   float64
	shockChance  float64
}

// New returns a Commodity with the given parameters, each floored/clamped
// per the commodity market's data model.
func New(basePrice, volatility, shockChance float64) *Commodity {
	base := max(basePrice, 1.0)
	return &Commodity{
		price:       base,
		basePrice:   base,
		volatility:  max(volatility, 0.1),
		shockChance: clamp(shockChance, 0, 1),
	}
}

// Price returns the current price.
func (c *Commodity) Price() float64 { return c.price }

// Update advances the price one tick: mean-reversion drift toward
// basePrice, Gaussian-like uniform noise scaled by sqrt(scale), and a
// stochastic shock (50/50 between a 1.35x spike and a 0.7x crash). Returns a
// non-empty message when a shock fired. The result is always clamped to
// [0.4*base, 1.9*base].
func (c *Commodity) Update(rng *rand.Rand, scale float64) string {
	adjustedScale := max(scale, 0.25)
	drift := (c.basePrice - c.price) * 0.02 * adjustedScale
	randomStep := uniform(rng, -c.volatility, c.volatility) * math.Sqrt(adjustedScale)
	newPrice := c.price + drift + randomStep

	message := ""
	shockMultiplier := 1.0
	shockProbability := clamp(c.shockChance*adjustedScale, 0, 1)
	if rng.Float64() < shockProbability {
		shockMultiplier = 0.7
		if rng.Float64() < 0.5 {
			shockMultiplier = 1.35
		}
		newPrice *= shockMultiplier
		if shockMultiplier > 1.0 {
			message = "commodity market price spike shock"
		} else {
			message = "commodity market price crash event"
		}
	}

	c.price = clamp(newPrice, c.basePrice*0.4, c.basePrice*1.9)
	if message != "" {
		slog.Info("commodity market shock", "price", c.price, "multiplier", shockMultiplier, "event", message)
	} else {
		slog.Debug("commodity market update", "price", c.price, "drift", drift)
	}
	return message
}

// RevenueFor returns export revenue for a country holding resourceIndex
// units of the resource metric this tick.
func (c *Commodity) RevenueFor(resourceIndex int, scale float64) float64 {
	resources := float64(max(resourceIndex, 0))
	exportVolume := resources * 0.45
	return max(c.price*exportVolume*scale, 0)
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
