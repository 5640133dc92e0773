package industry

// Runtime owns the live sector states and transient modifiers layered on top
// of a Catalog, and drives the per-tick production simulation.
type Runtime struct {
	catalog              *Catalog
	states               map[SectorID]*SectorState
	modifiers            map[SectorID]*SectorModifier
	metrics              *metricsStore
	energyBaselineOutput float64
	energyCostIndex      float64
}

// FromCatalog seeds a Runtime from catalog: every sector starts at its
// definition's base output, and the Energy baseline used by the cross-
// category cost index is the sum of every Energy sector's base output.
func FromCatalog(catalog *Catalog) *Runtime {
	states := make(map[SectorID]*SectorState)
	var energyBaseline float64
	for _, id := range catalog.Sectors() {
		def, _ := catalog.Get(id)
		if id.Category == Energy {
			energyBaseline += def.baseOutput()
		}
		state := NewSectorState(def, id.Category)
		states[id] = &state
	}
	return &Runtime{
		catalog:              catalog,
		states:               states,
		modifiers:            make(map[SectorID]*SectorModifier),
		metrics:              newMetricsStore(),
		energyBaselineOutput: max(energyBaseline, 1.0),
		energyCostIndex:      1.0,
	}
}

// SimulateTick runs one pass of the production network across every sector
// in fixed Energy→Primary→Secondary→Tertiary order.
// scale <= 0 is a no-op tick (e.g. a zero-minute advance) and returns a zero
// outcome.
func (r *Runtime) SimulateTick(minutes, scale float64) TickOutcome {
	if scale <= 0 {
		return TickOutcome{SectorMetrics: map[SectorID]SectorMetrics{}}
	}

	r.metrics.beginTick()
	rep := &reporter{}

	var energyOutputTotal float64
	for _, category := range SimulationOrder() {
		for _, sectorID := range r.catalog.SectorsByCategory(category) {
			def, ok := r.catalog.Get(sectorID)
			if !ok {
				continue
			}

			impact := evaluateDependencyImpacts(category, def, r.metrics.metrics())

			state, ok := r.states[sectorID]
			if !ok {
				seeded := NewSectorState(def, category)
				state = &seeded
				r.states[sectorID] = state
			}
			modifier, ok := r.modifiers[sectorID]
			if !ok {
				modifier = &SectorModifier{}
				r.modifiers[sectorID] = modifier
			}

			subsidy := clamp(modifier.SubsidyBonus, 0, 0.9)
			state.SubsidyRate = subsidy

			baseDemand := max(def.baseOutput()*scale, 0)
			adjustedDemand := max(baseDemand*impact.demandMultiplier, 0)
			adjustmentRate := clamp(0.35+subsidy*0.5, 0.2, 0.95)
			smoothedDemand := state.PotentialDemand*(1-adjustmentRate) + adjustedDemand*adjustmentRate
			demandWithBacklog := smoothedDemand + state.UnmetDemand

			baseCapacity := max(state.SupplyCapacity, def.baseOutput()*0.1)
			efficiencyFactor := clamp(state.Efficiency*(1+modifier.EfficiencyBonus), 0.1, 3.0)
			subsidyBoost := 1 + subsidy*0.6
			inputLimit := clamp(impact.inputAvailability, 0, 1.5)
			costFactor := impact.costMultiplier
			if category != Energy {
				costFactor *= r.energyCostIndex
			}

			capacityLimit := max(baseCapacity*efficiencyFactor*subsidyBoost*inputLimit, 0) * scale
			targetOutput := state.LastOutput*(1-adjustmentRate) + smoothedDemand*adjustmentRate
			inertiaFloor := 0.0
			if state.LastOutput > 0 {
				inertiaFloor = state.LastOutput * (0.4 + subsidy*0.3)
			}
			production := max(min(capacityLimit, max(targetOutput, inertiaFloor)), 0)

			availableSupply := production + state.Inventory
			sales := min(availableSupply, demandWithBacklog)
			newInventory := max(availableSupply-sales, 0)
			newUnmet := max(demandWithBacklog-sales, 0)

			var gapRatio float64
			if demandWithBacklog <= 1e-9 {
				gapRatio = -1.0
			} else {
				gapRatio = clamp((demandWithBacklog-sales)/demandWithBacklog, -1.5, 1.5)
			}
			priceMultiplier := priceResponse(gapRatio, def.priceSensitivity())
			price := max(def.baseCost()*priceMultiplier, 0.05)
			unitCost := clamp(def.baseCost()*costFactor*max(1-subsidy, 0.1), 0.05, 5000.0)
			cost := production * unitCost
			revenue := sales * price

			state.Inventory = newInventory
			state.UnmetDemand = newUnmet
			state.PotentialDemand = max(smoothedDemand, 0)
			state.LastOutput = production

			baseCapacityUpdate := max(capacityLimit/scale, def.baseOutput()*0.1)
			state.SupplyCapacity = state.SupplyCapacity*0.9 + baseCapacityUpdate*0.1

			var utilisation float64
			if capacityLimit > 1e-9 {
				utilisation = clamp(production/capacityLimit, 0, 1.2)
			}
			targetEfficiency := (1 + modifier.EfficiencyBonus*0.5) * (0.9 + utilisation*0.2)
			state.Efficiency = clamp(state.Efficiency*0.85+targetEfficiency*0.15, 0.2, 3.0)
			modifier.Decay(minutes)

			if category == Energy {
				energyOutputTotal += production
			}

			metrics := SectorMetrics{
				Output:      production,
				Revenue:     revenue,
				Cost:        cost,
				Sales:       sales,
				Demand:      demandWithBacklog,
				Inventory:   newInventory,
				UnmetDemand: newUnmet,
			}
			r.metrics.record(sectorID, metrics)
			rep.recordSectorActivity(def.Name, production, demandWithBacklog, newInventory, newUnmet, sales)
		}

		if category == Energy {
			r.energyCostIndex = updateEnergyCostIndex(r.energyBaselineOutput, energyOutputTotal)
		}
	}

	return TickOutcome{
		TotalRevenue:  r.metrics.totals.revenue,
		TotalCost:     r.metrics.totals.cost,
		TotalGDP:      r.metrics.totals.gdp,
		SectorMetrics: r.metrics.snapshot(),
		Reports:       rep.reports(),
	}
}

// ResolveSectorToken resolves the "category:key"/"category/key"/bare-key
// syntax against this runtime's catalog.
func (r *Runtime) ResolveSectorToken(token string) (SectorID, error) {
	return resolveSectorToken(r.catalog, token)
}

// ApplySubsidy sets a permanent (remaining_minutes = math.MaxFloat64) subsidy bonus on
// id and returns its refreshed overview.
func (r *Runtime) ApplySubsidy(id SectorID, percent float64) (SectorOverview, error) {
	if err := applySubsidy(r.catalog, r.modifiers, r.states, id, percent); err != nil {
		return SectorOverview{}, err
	}
	return r.overviewFor(id)
}

// Overview returns a sorted snapshot of every sector's current standing.
func (r *Runtime) Overview() []SectorOverview {
	entries := make([]SectorOverview, 0, len(r.catalog.Sectors()))
	for _, id := range r.catalog.Sectors() {
		overview, err := r.overviewFor(id)
		if err != nil {
			continue
		}
		entries = append(entries, overview)
	}
	sortOverviews(entries)
	return entries
}

func (r *Runtime) overviewFor(id SectorID) (SectorOverview, error) {
	def, ok := r.catalog.Get(id)
	if !ok {
		return SectorOverview{}, errUnknownSector(id)
	}
	var subsidyPercent, lastOutput, lastRevenue, lastCost float64
	if state, ok := r.states[id]; ok {
		subsidyPercent = state.SubsidyRate * 100.0
	}
	if m, ok := r.metrics.get(id); ok {
		lastOutput = m.Output
		lastRevenue = m.Revenue
		lastCost = m.Cost
	}
	return SectorOverview{
		ID:             id,
		Name:           def.Name,
		Category:       id.Category,
		SubsidyPercent: subsidyPercent,
		LastOutput:     lastOutput,
		LastRevenue:    lastRevenue,
		LastCost:       lastCost,
	}, nil
}

// Metrics returns the most recently recorded per-sector metrics map.
func (r *Runtime) Metrics() map[SectorID]SectorMetrics {
	return r.metrics.snapshot()
}

// EnergyCostIndex returns the current cross-category energy cost
// multiplier.
func (r *Runtime) EnergyCostIndex() float64 {
	return r.energyCostIndex
}

// SetModifierForTest seeds a sector's modifier directly; exported only for
// use by this package's tests, mirroring a test-only
// accessor pattern.
func (r *Runtime) SetModifierForTest(id SectorID, subsidyBonus, efficiencyBonus, durationMinutes float64) {
	modifier, ok := r.modifiers[id]
	if !ok {
		modifier = &SectorModifier{}
		r.modifiers[id] = modifier
	}
	modifier.SubsidyBonus = subsidyBonus
	modifier.EfficiencyBonus = efficiencyBonus
	modifier.RemainingMinutes = max(durationMinutes, 0)
}

// StateForTest exposes a sector's live state for direct mutation in tests
// that need to seed non-default starting conditions.
func (r *Runtime) StateForTest(id SectorID) *SectorState {
	return r.states[id]
}
