// Package game wires together the simulation clock, scheduler, country
// roster, commodity market, industry network, scripted-event engine, and
// systems facade into the simulation's single tick-driven public entry
// point.
package game

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/talgya/geopolitics-core/internal/clock"
	"github.com/talgya/geopolitics-core/internal/country"
	"github.com/talgya/geopolitics-core/internal/domain"
	"github.com/talgya/geopolitics-core/internal/economy"
	"github.com/talgya/geopolitics-core/internal/events"
	"github.com/talgya/geopolitics-core/internal/industry"
	"github.com/talgya/geopolitics-core/internal/market"
	"github.com/talgya/geopolitics-core/internal/scheduler"
	"github.com/talgya/geopolitics-core/internal/systems"
)

// State is the public facade over one running simulation. It owns every
// other piece of mutable state; nothing outside this package holds a
// reference back into it, so there is no cyclic ownership to reason about.
type State struct {
	instanceID      uuid.UUID
	simClock        simulationClock
	rng             *rand.Rand
	countries       []*country.State
	commodityMarket *market.Commodity
	eventEngine     *events.ScriptedEventEngine
	industryRuntime *industry.Runtime
	systemsFacade   *systems.Facade
}

// TimeStatus is a read-only snapshot of the simulation clock, surfaced by
// State.TimeStatus.
type TimeStatus struct {
	SimulationMinutes  float64
	Calendar           clock.Date
	NextEventInMinutes *uint64
	TimeMultiplier     float64
}

type stateBootstrap struct {
	rng             *rand.Rand
	scheduler       *scheduler.Scheduler
	countries       []*country.State
	commodityMarket *market.Commodity
	eventEngine     *events.ScriptedEventEngine
	industryRuntime *industry.Runtime
}

func newState(b stateBootstrap) *State {
	s := &State{
		instanceID:      uuid.New(),
		simClock:        newSimulationClock(b.scheduler),
		rng:             b.rng,
		countries:       b.countries,
		commodityMarket: b.commodityMarket,
		eventEngine:     b.eventEngine,
		industryRuntime: b.industryRuntime,
		systemsFacade:   systems.New(),
	}
	s.captureFiscalHistory()
	return s
}

// FromDefinitions bootstraps a State from caller-supplied country
// definitions, seeding its PRNG from the current wall-clock time.
func FromDefinitions(defs []country.Definition) (*State, error) {
	return newBuilder(defs).build()
}

// FromDefinitionsWithRNG bootstraps a State using a caller-supplied PRNG,
// for deterministic, reproducible simulation runs.
func FromDefinitionsWithRNG(defs []country.Definition, rng *rand.Rand) (*State, error) {
	return newBuilder(defs).withRNG(rng).build()
}

// FromDefinitionsWithSeed is a convenience wrapper over
// FromDefinitionsWithRNG, seeding math/rand's PRNG directly; it exists for
// tests that need deterministic, easily reproduced scenarios.
func FromDefinitionsWithSeed(defs []country.Definition, seed int64) (*State, error) {
	return FromDefinitionsWithRNG(defs, rand.New(rand.NewSource(seed)))
}

// InstanceID returns the opaque correlation id stamped on this simulation
// run, intended for log fields rather than gameplay logic.
func (s *State) InstanceID() uuid.UUID { return s.instanceID }

func (s *State) SimulationMinutes() float64 { return s.simClock.SimulationMinutes() }

func (s *State) CalendarDate() clock.Date { return s.simClock.CalendarDate() }

func (s *State) CommodityPrice() float64 { return s.commodityMarket.Price() }

func (s *State) TimeMultiplier() float64 { return s.simClock.TimeMultiplier() }

func (s *State) IndustryOverview() []industry.SectorOverview { return s.industryRuntime.Overview() }

// ApplyIndustrySubsidy resolves sector syntax ("category:key", bare key,
// ...) against the industry catalog and sets a permanent subsidy bonus.
func (s *State) ApplyIndustrySubsidy(token string, percent float64) (industry.SectorOverview, error) {
	id, err := s.industryRuntime.ResolveSectorToken(token)
	if err != nil {
		return industry.SectorOverview{}, err
	}
	return s.industryRuntime.ApplySubsidy(id, percent)
}

// SetTimeMultiplier adjusts how many effective minutes each TickMinutes
// call represents.
func (s *State) SetTimeMultiplier(multiplier float64) error {
	return s.simClock.SetTimeMultiplier(multiplier)
}

// NextEventMinutes reports how many minutes remain until the scheduler's
// earliest pending task.
func (s *State) NextEventMinutes() (uint64, bool) {
	return s.simClock.NextEventInMinutes()
}

// TimeStatus bundles the clock's full read-only state in one call.
func (s *State) TimeStatus() TimeStatus {
	status := TimeStatus{
		SimulationMinutes: s.simClock.SimulationMinutes(),
		Calendar:          s.simClock.CalendarDate(),
		TimeMultiplier:    s.simClock.TimeMultiplier(),
	}
	if next, ok := s.simClock.NextEventInMinutes(); ok {
		status.NextEventInMinutes = &next
	}
	return status
}

// Countries returns the live country roster. Callers that need to mutate a
// country directly (rather than through State's methods) may do so through
// the returned pointers; this mirrors a countries_mut
// escape hatch, just without a test-only gate.
func (s *State) Countries() []*country.State { return s.countries }

// FiscalSnapshots returns every country's current fiscal snapshot, in
// roster order.
func (s *State) FiscalSnapshots() []economy.FiscalSnapshot {
	out := make([]economy.FiscalSnapshot, len(s.countries))
	for i, c := range s.countries {
		out[i] = c.Fiscal.Snapshot()
	}
	return out
}

// FiscalSnapshotOf returns the fiscal snapshot for the country at idx.
func (s *State) FiscalSnapshotOf(idx int) (economy.FiscalSnapshot, error) {
	c, err := s.countryAt(idx)
	if err != nil {
		return economy.FiscalSnapshot{}, err
	}
	return c.Fiscal.Snapshot(), nil
}

// FiscalHistoryOf returns the retained fiscal history samples for the
// country at idx, oldest first.
func (s *State) FiscalHistoryOf(idx int) ([]country.FiscalHistorySample, error) {
	c, err := s.countryAt(idx)
	if err != nil {
		return nil, err
	}
	return c.FiscalHistory(), nil
}

// ScriptedEventIndex looks up a scripted-event template by case-insensitive
// id or name.
func (s *State) ScriptedEventIndex(id string) (int, bool) {
	return s.eventEngine.FindIndex(id)
}

// ScriptedEventDescription returns the description of the scripted-event
// template matching id.
func (s *State) ScriptedEventDescription(id string) (string, bool) {
	return s.eventEngine.DescriptionOf(id)
}

// FindCountryIndex resolves either a 1-based numeric index or a
// case-insensitive country name into its roster index.
func (s *State) FindCountryIndex(nameOr1Based string) (int, bool) {
	if parsed, err := strconv.Atoi(nameOr1Based); err == nil {
		if parsed > 0 && parsed <= len(s.countries) {
			return parsed - 1, true
		}
	}

	needle := strings.ToLower(nameOr1Based)
	for i, c := range s.countries {
		if strings.ToLower(c.Name) == needle {
			return i, true
		}
	}
	return 0, false
}

// AllocationsOf returns the budget allocation currently set for the
// country at idx.
func (s *State) AllocationsOf(idx int) (country.Allocation, error) {
	c, err := s.countryAt(idx)
	if err != nil {
		return country.Allocation{}, err
	}
	return c.Allocations(), nil
}

// UpdateAllocations replaces the budget allocation for the country at idx.
func (s *State) UpdateAllocations(idx int, allocation country.Allocation) error {
	c, err := s.countryAt(idx)
	if err != nil {
		return err
	}
	c.SetAllocations(allocation)
	return nil
}

func (s *State) countryAt(idx int) (*country.State, error) {
	if idx < 0 || idx >= len(s.countries) {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownCountryIndex, idx)
	}
	return s.countries[idx], nil
}

// TickMinutes is the master per-tick orchestration entry point: it advances
// the clock, updates the commodity market, executes every scheduler task
// now due, runs every country's per-tick systems pass, ticks the industry
// network, and captures fiscal history, returning every human-readable
// report line produced along the way.
func (s *State) TickMinutes(minutes float64) ([]string, error) {
	tick, err := s.simClock.Advance(minutes)
	if err != nil {
		return nil, err
	}
	scale := tick.Scale
	var reports []string

	s.systemsFacade.EnsureFiscalPrepared(s.countries, scale)

	if marketReport := s.commodityMarket.Update(s.rng, scale); marketReport != "" {
		reports = append(reports, marketReport)
	}

	if len(tick.ReadyTasks) == 0 {
		reports = append(reports, fmt.Sprintf("%.1f minutes elapsed with no scheduled work due", tick.EffectiveMinutes))
	} else {
		for _, task := range tick.ReadyTasks {
			reports = append(reports, executeTask(task, s, scale)...)
		}
	}

	for idx := range s.countries {
		reports = append(reports, s.systemsFacade.ApplyCountrySystems(s.countries, s.commodityMarket, s.rng, idx, scale)...)
	}

	reports = append(reports, s.processIndustryTick(tick.EffectiveMinutes, scale)...)

	s.captureFiscalHistory()
	s.systemsFacade.FinishFiscalCycle()
	return reports, nil
}

func (s *State) processEconomicTick(scale float64) []string {
	reports := s.systemsFacade.ProcessEconomicTick(s.countries, s.commodityMarket, s.rng, scale)
	s.captureFiscalHistory()
	return reports
}

func (s *State) processEventTrigger() []string {
	return s.systemsFacade.ProcessEventTrigger(s.countries)
}

func (s *State) processPolicyResolution() []string {
	return s.systemsFacade.ProcessPolicyResolution(s.countries)
}

func (s *State) processDiplomaticPulse() []string {
	return s.systemsFacade.ProcessDiplomaticPulse(s.countries)
}

func (s *State) processIndustryTick(minutes, scale float64) []string {
	if scale <= 0 {
		return nil
	}
	outcome := s.industryRuntime.SimulateTick(minutes, scale)
	distributeIndustryOutcome(outcome, s.countries)
	return outcome.Reports
}

func (s *State) processScriptedEvent(templateIdx int) []string {
	minutes := s.simClock.SimulationMinutes()
	return s.eventEngine.Execute(templateIdx, s.countries, minutes)
}

func (s *State) captureFiscalHistory() {
	minutes := uint64(s.SimulationMinutes())
	for _, c := range s.countries {
		c.PushFiscalHistory(minutes)
	}
}
