package systems

import (
	"fmt"
	"math/rand"

	"github.com/talgya/geopolitics-core/internal/country"
)

// ProcessEventTrigger checks every country for low-stability unrest or
// low-approval protests and applies the corresponding metric penalty.
func ProcessEventTrigger(countries []*country.State) []string {
	var reports []string
	for _, c := range countries {
		switch {
		case c.Stability < 35:
			c.ApplyApprovalDelta(-2)
			reports = append(reports, fmt.Sprintf("%s faces rising unrest, eroding public approval", c.Name))
		case c.Approval < 30:
			c.ApplyStabilityDelta(-1)
			reports = append(reports, fmt.Sprintf("%s sees protests break out, slightly destabilising the country", c.Name))
		}
	}
	return reports
}

// TriggerRandomEvent rolls for one of three random events for the country
// at idx, scaled by the tick's time multiplier.
func TriggerRandomEvent(countries []*country.State, rng *rand.Rand, idx int, scale float64) (string, bool) {
	probability := clampF(0.25*scale, 0, 1)
	if rng.Float64() >= probability {
		return "", false
	}

	c := countries[idx]
	switch rng.Intn(3) {
	case 0:
		c.ApplyGDPDelta(60.0 * scale)
		c.ApplyApprovalDelta(2.0 * scale)
		return fmt.Sprintf("%s experiences an innovation wave, accelerating growth", c.Name), true
	case 1:
		c.ApplyStabilityDelta(-5.0 * scale)
		c.ApplyApprovalDelta(-4.0 * scale)
		return fmt.Sprintf("%s sees widespread protests eroding stability", c.Name), true
	case 2:
		c.ApplyResourcesDelta(-6.0 * scale)
		c.ApplyMilitaryDelta(3.0 * scale)
		return fmt.Sprintf("%s responds to border tension with a military buildup", c.Name), true
	default:
		return "", false
	}
}

// ApplyEconomicDrift nudges GDP toward or away from baseline depending on
// how far from neutral (50) the country's stability sits.
func ApplyEconomicDrift(countries []*country.State, idx int, scale float64) (string, bool) {
	c := countries[idx]
	drift := float64(c.Stability-50) * 0.4 * scale
	if abs(drift) <= 0.5 {
		return "", false
	}
	c.ApplyGDPDelta(drift)
	if drift > 0 {
		return fmt.Sprintf("%s sees GDP grow by %.1f thanks to stable governance", c.Name, drift), true
	}
	return fmt.Sprintf("%s sees GDP shrink by %.1f amid instability", c.Name, abs(drift)), true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
