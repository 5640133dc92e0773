// Package systems is the per-tick orchestration facade: it sequences
// fiscal preparation, per-country budget effects, random events, economic
// drift, policy resolution, and diplomatic pulses.
package systems

import (
	"math/rand"

	"github.com/talgya/geopolitics-core/internal/country"
	"github.com/talgya/geopolitics-core/internal/diplomacy"
	"github.com/talgya/geopolitics-core/internal/market"
	"github.com/talgya/geopolitics-core/internal/policy"
)

// Facade sequences the per-tick systems passes and tracks whether the
// current tick's fiscal ledgers have already been prepared, so repeated
// calls within one tick don't double-clear flows or double-accrue interest.
type Facade struct {
	fiscalPrepared bool
}

// New returns a Facade with no fiscal preparation pending.
func New() *Facade {
	return &Facade{}
}

// EnsureFiscalPrepared runs PrepareAllFiscalFlows exactly once per tick,
// returning true the first time it actually runs.
func (f *Facade) EnsureFiscalPrepared(countries []*country.State, scale float64) bool {
	if f.fiscalPrepared {
		return false
	}
	PrepareAllFiscalFlows(countries, scale)
	f.fiscalPrepared = true
	return true
}

// FinishFiscalCycle clears the prepared flag so the next tick re-prepares.
func (f *Facade) FinishFiscalCycle() {
	f.fiscalPrepared = false
}

// ApplyCountrySystems runs budget effects, a random event roll, and
// economic drift for one country, returning every report produced.
func (f *Facade) ApplyCountrySystems(countries []*country.State, commodityMarket *market.Commodity, rng *rand.Rand, idx int, scale float64) []string {
	reports := ApplyBudgetEffects(countries, commodityMarket, idx, scale)
	if report, ok := TriggerRandomEvent(countries, rng, idx, scale); ok {
		reports = append(reports, report)
	}
	if report, ok := ApplyEconomicDrift(countries, idx, scale); ok {
		reports = append(reports, report)
	}
	return reports
}

// ProcessEventTrigger checks every country for unrest/protest triggers.
func (f *Facade) ProcessEventTrigger(countries []*country.State) []string {
	return ProcessEventTrigger(countries)
}

// ProcessPolicyResolution runs the daily policy pass over every country.
func (f *Facade) ProcessPolicyResolution(countries []*country.State) []string {
	return policy.Resolve(countries)
}

// ProcessDiplomaticPulse nudges every bilateral relation toward neutral.
func (f *Facade) ProcessDiplomaticPulse(countries []*country.State) []string {
	return diplomacy.Pulse(countries)
}

// ProcessEconomicTick runs ApplyCountrySystems for every country, preparing
// fiscal flows first if they weren't already prepared this tick, and
// restoring that state afterward so a caller-driven EnsureFiscalPrepared
// elsewhere in the same tick is unaffected.
func (f *Facade) ProcessEconomicTick(countries []*country.State, commodityMarket *market.Commodity, rng *rand.Rand, scale float64) []string {
	alreadyPrepared := f.fiscalPrepared
	if !alreadyPrepared {
		PrepareAllFiscalFlows(countries, scale)
		f.fiscalPrepared = true
	}

	var reports []string
	for idx := range countries {
		reports = append(reports, f.ApplyCountrySystems(countries, commodityMarket, rng, idx, scale)...)
	}

	if !alreadyPrepared {
		f.fiscalPrepared = false
	}
	return reports
}
