package industry

import (
	"fmt"
	"math"
	"strings"

	"github.com/talgya/geopolitics-core/internal/domain"
)

// dependencyImpact is the aggregate effect of a sector's dependency list on
// its own production for the current tick.
type dependencyImpact struct {
	inputAvailability float64
	costMultiplier    float64
	demandMultiplier  float64
}

// evaluateDependencyImpacts folds def's dependencies against this tick's
// already-computed metrics.
func evaluateDependencyImpacts(category Category, def SectorDefinition, metrics map[SectorID]SectorMetrics) dependencyImpact {
	inputFactor := 1.0
	costFactor := 1.0
	demandSignal := 0.0

	for _, dep := range def.Dependencies {
		depID := dep.ResolveSector(category)
		supplyRatio := 0.0
		if m, ok := metrics[depID]; ok {
			requirement := dep.requirement()
			supplyRatio = clamp(m.Output/(def.baseOutput()*requirement), 0, 2)
		}
		switch dep.Dependency {
		case Input:
			shortage := max(0.8-supplyRatio, 0)
			surplus := max(supplyRatio-1.2, 0)
			inputFactor *= clamp(1-shortage, 0, 1)
			if surplus > 0 {
				inputFactor *= 1 + min(surplus, 0.5)*0.05
			}
		case Cost:
			adjustment := 1 - dep.Elasticity*(supplyRatio-1)
			costFactor *= clamp(adjustment, 0.5, 1.5)
		case Demand:
			demandSignal += dep.Elasticity * (supplyRatio - 1)
		}
	}

	return dependencyImpact{
		inputAvailability: max(inputFactor, 0),
		costMultiplier:    max(costFactor, 0.1),
		demandMultiplier:  max(1+demandSignal, 0),
	}
}

// priceResponse is the logistic curve that maps the supply/demand gap to a
// price multiplier: centered_logistic(3*signal) scaled by sensitivity,
// clamped to [0.2, 2.5]. The demand signal from Demand dependencies does not
// pass through it; that signal is applied linearly.
func priceResponse(signal, sensitivity float64) float64 {
	logistic := 1.0 / (1.0 + math.Exp(-3.0*signal))
	centered := (logistic - 0.5) * 2.0
	return clamp(1+sensitivity*centered, 0.2, 2.5)
}

// updateEnergyCostIndex recomputes the cross-category cost multiplier after
// the Energy pass.
func updateEnergyCostIndex(baselineOutput, energyOutputTotal float64) float64 {
	if energyOutputTotal <= 1e-9 {
		return 1.5
	}
	return clamp(baselineOutput/energyOutputTotal, 0.5, 1.6)
}

// resolveSectorToken implements the "category:key" / "category/key" /
// unique-bare-key syntax. This is the single consolidated
// implementation covering what the original split across two duplicated
// resolvers.
func resolveSectorToken(catalog *Catalog, token string) (SectorID, error) {
	raw := strings.TrimSpace(token)
	if raw == "" {
		return SectorID{}, fmt.Errorf("%w: empty sector token", domain.ErrUnknownSectorToken)
	}

	if idx := strings.IndexAny(raw, ":/"); idx >= 0 {
		first := raw[:idx]
		second := strings.TrimSpace(raw[idx+1:])
		if second == "" {
			return SectorID{}, fmt.Errorf("%w: missing sector key in %q", domain.ErrUnknownSectorToken, raw)
		}
		category, err := ParseCategory(first)
		if err != nil {
			return SectorID{}, err
		}
		id := NewSectorID(category, second)
		if _, ok := catalog.Get(id); !ok {
			return SectorID{}, fmt.Errorf("%w: %s", domain.ErrUnknownSectorToken, raw)
		}
		return id, nil
	}

	var matches []SectorID
	for _, id := range catalog.Sectors() {
		if strings.EqualFold(id.Key, raw) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return SectorID{}, fmt.Errorf("%w: %s", domain.ErrUnknownSectorToken, raw)
	case 1:
		return matches[0], nil
	default:
		return SectorID{}, fmt.Errorf("%w: %s", domain.ErrAmbiguousSectorToken, raw)
	}
}

// applySubsidy implements GameState.ApplyIndustrySubsidy's effect on the
// runtime's modifier and live state maps.
func applySubsidy(catalog *Catalog, modifiers map[SectorID]*SectorModifier, states map[SectorID]*SectorState, id SectorID, percent float64) error {
	if _, ok := catalog.Get(id); !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownSectorToken, id)
	}
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPercentage, percent)
	}
	if percent < 0 {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPercentage, percent)
	}

	ratio := clamp(percent/100.0, 0, 0.9)
	modifier, ok := modifiers[id]
	if !ok {
		modifier = &SectorModifier{}
		modifiers[id] = modifier
	}
	modifier.SubsidyBonus = ratio
	modifier.RemainingMinutes = math.MaxFloat64

	if state, ok := states[id]; ok {
		state.SubsidyRate = ratio
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

func errUnknownSector(id SectorID) error {
	return fmt.Errorf("%w: %s", domain.ErrUnknownSectorToken, id)
}
