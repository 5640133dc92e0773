package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/talgya/geopolitics-core/internal/clock"
	"github.com/talgya/geopolitics-core/internal/country"
	"github.com/talgya/geopolitics-core/internal/diplomacy"
	"github.com/talgya/geopolitics-core/internal/domain"
	"github.com/talgya/geopolitics-core/internal/economy"
	"github.com/talgya/geopolitics-core/internal/events"
	"github.com/talgya/geopolitics-core/internal/industry"
	"github.com/talgya/geopolitics-core/internal/market"
	"github.com/talgya/geopolitics-core/internal/scheduler"
)

// builder assembles a State from a slice of country definitions, following
// the bootstrap sequencing: validate,
// construct countries, initialise diplomacy, register core and scripted
// tasks, then the commodity market and industry runtime.
type builder struct {
	definitions []country.Definition
	rng         *rand.Rand
}

func newBuilder(definitions []country.Definition) builder {
	return builder{
		definitions: definitions,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (b builder) withRNG(rng *rand.Rand) builder {
	b.rng = rng
	return b
}

func (b builder) build() (*State, error) {
	if len(b.definitions) == 0 {
		return nil, domain.ErrEmptyDefinitions
	}

	countries := initialiseCountries(b.definitions)
	diplomacy.InitialiseRelations(countries)

	sched := scheduler.New()
	registerCoreTasks(sched)
	eventEngine, err := registerScriptedEvents(sched, len(countries))
	if err != nil {
		return nil, fmt.Errorf("game: registering scripted events: %w", err)
	}

	commodityMarket := market.New(120.0, 7.5, 0.04)

	catalog, err := industry.FromEmbedded()
	if err != nil {
		catalog = industry.NewCatalog()
	}
	industryRuntime := industry.FromCatalog(catalog)

	return newState(stateBootstrap{
		rng:              b.rng,
		scheduler:        sched,
		countries:        countries,
		commodityMarket:  commodityMarket,
		eventEngine:      eventEngine,
		industryRuntime:  industryRuntime,
	}), nil
}

func initialiseCountries(definitions []country.Definition) []*country.State {
	defaultAllocation := country.DefaultAllocation()
	countries := make([]*country.State, 0, len(definitions))

	for _, def := range definitions {
		initialCash := max(def.Budget, 0)

		var rating economy.CreditRating
		switch {
		case def.Approval >= 65:
			rating = economy.A
		case def.Stability >= 60:
			rating = economy.BBB
		default:
			rating = economy.BB
		}

		var taxPolicy *economy.TaxPolicy
		if def.TaxPolicyConfig != nil {
			taxPolicy = economy.NewTaxPolicy(*def.TaxPolicyConfig)
		} else {
			taxPolicy = economy.DefaultTaxPolicy()
		}

		c := country.New(
			def.Name,
			def.Government,
			def.PopulationMillions,
			def.GDP,
			clampInt(def.Stability, country.MinMetric, country.MaxMetric),
			clampInt(def.Military, country.MinMetric, country.MaxMetric),
			clampInt(def.Approval, country.MinMetric, country.MaxMetric),
			clampInt(def.Resources, country.MinResources, country.MaxResources),
			economy.NewFiscalAccount(initialCash, rating),
			taxPolicy,
			defaultAllocation,
		)
		countries = append(countries, c)
	}
	return countries
}

func registerCoreTasks(sched *scheduler.Scheduler) {
	sched.Schedule(scheduler.NewTask(scheduler.EconomicTick, uint64(clock.BaseTickMinutes)).
		WithSpec(scheduler.EveryMinutesSpec(uint64(clock.BaseTickMinutes))))
	sched.Schedule(scheduler.NewTask(scheduler.EventTrigger, uint64(clock.BaseTickMinutes*4)).
		WithSpec(scheduler.EveryMinutesSpec(uint64(clock.BaseTickMinutes * 4))))
	sched.Schedule(scheduler.NewTask(scheduler.PolicyResolution, clock.MinutesPerDay).
		WithSpec(scheduler.DailySpec()))
	sched.Schedule(scheduler.NewTask(scheduler.DiplomaticPulse, uint64(clock.BaseTickMinutes*6)).
		WithSpec(scheduler.EveryMinutesSpec(uint64(clock.BaseTickMinutes * 6))))
}

func registerScriptedEvents(sched *scheduler.Scheduler, countryCount int) (*events.ScriptedEventEngine, error) {
	engine, err := events.FromBuiltin(countryCount)
	if err != nil {
		return nil, err
	}
	for idx := 0; idx < engine.Len(); idx++ {
		task := scheduler.NewTask(scheduler.ScriptedEvent, engine.InitialDelayMinutes(idx))
		task.TemplateIndex = idx
		task = task.WithSpec(scheduler.EveryMinutesSpec(engine.CheckMinutes(idx)))
		sched.Schedule(task)
	}
	return engine, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
