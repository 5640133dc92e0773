package industry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/geopolitics-core/internal/domain"
)

func TestEnergySupplyReducesCostIndex(t *testing.T) {
	catalog, err := FromEmbedded()
	require.NoError(t, err)
	runtime := FromCatalog(catalog)
	outcome := runtime.SimulateTick(60, 1.0)
	require.Greater(t, outcome.TotalRevenue, 0.0)
	require.GreaterOrEqual(t, runtime.EnergyCostIndex(), 0.5)
	require.Less(t, runtime.EnergyCostIndex(), 1.5)
}

func TestDependencyShortageReducesOutput(t *testing.T) {
	catalog := NewCatalog()
	require.NoError(t, catalog.InsertDefinition(Energy, SectorDefinition{
		Key: "electricity", Name: "Electricity",
		BaseOutput: 200, BaseCost: 80, PriceSensitivity: 0.3, Employment: 90,
	}))
	require.NoError(t, catalog.InsertDefinition(Secondary, SectorDefinition{
		Key: "automotive", Name: "Automotive",
		BaseOutput: 150, BaseCost: 120, PriceSensitivity: 0.4, Employment: 110,
		Dependencies: []SectorDependency{
			{Sector: "electricity", Category: categoryPtr(Energy), Requirement: 1.5, Dependency: Input},
		},
	}))

	automotiveID := NewSectorID(Secondary, "automotive")

	baselineRuntime := FromCatalog(catalog)
	baselineOutcome := baselineRuntime.SimulateTick(60, 1.0)
	baselineOutput := baselineOutcome.SectorMetrics[automotiveID].Output

	shortageRuntime := FromCatalog(catalog)
	shortageRuntime.SetModifierForTest(NewSectorID(Energy, "electricity"), 0.0, -0.9, 120)
	shortageOutcome := shortageRuntime.SimulateTick(60, 1.0)
	shortageOutput := shortageOutcome.SectorMetrics[automotiveID].Output

	require.Less(t, shortageOutput, baselineOutput*0.35)
}

func TestDemandSignalAdjustsPrice(t *testing.T) {
	catalog := NewCatalog()
	require.NoError(t, catalog.InsertDefinition(Primary, SectorDefinition{
		Key: "grain", Name: "Grain",
		BaseOutput: 120, BaseCost: 50, PriceSensitivity: 0.6, Employment: 80,
	}))
	sectorID := NewSectorID(Primary, "grain")

	baselineRuntime := FromCatalog(catalog)
	baselineRuntime.SimulateTick(60, 1.0)
	baselineOutcome := baselineRuntime.SimulateTick(60, 1.0)
	baselineMetrics := baselineOutcome.SectorMetrics[sectorID]
	baselinePrice := baselineMetrics.Revenue / max(baselineMetrics.Sales, 1e-6)

	shortageRuntime := FromCatalog(catalog)
	shortageRuntime.SimulateTick(60, 1.0)
	shortageRuntime.SetModifierForTest(sectorID, 0.0, -0.6, 180)
	shortageOutcome := shortageRuntime.SimulateTick(60, 1.6)
	shortageMetrics := shortageOutcome.SectorMetrics[sectorID]
	require.Greater(t, shortageMetrics.UnmetDemand, 0.0)
	shortagePrice := shortageMetrics.Revenue / max(shortageMetrics.Sales, 1e-6)
	require.Greater(t, shortagePrice, baselinePrice*1.05)
}

func TestInventoryAccumulatesWhenDemandDrops(t *testing.T) {
	catalog := NewCatalog()
	require.NoError(t, catalog.InsertDefinition(Secondary, SectorDefinition{
		Key: "automotive", Name: "Automotive",
		BaseOutput: 180, BaseCost: 130, PriceSensitivity: 0.4, Employment: 120,
	}))
	require.NoError(t, catalog.InsertDefinition(Tertiary, SectorDefinition{
		Key: "logistics", Name: "Logistics",
		BaseOutput: 160, BaseCost: 90, PriceSensitivity: 0.5, Employment: 90,
		Dependencies: []SectorDependency{
			{Sector: "automotive", Category: categoryPtr(Secondary), Requirement: 1.0, Elasticity: -2.5, Dependency: Demand},
		},
	}))
	autoID := NewSectorID(Secondary, "automotive")
	logisticsID := NewSectorID(Tertiary, "logistics")

	runtime := FromCatalog(catalog)
	runtime.SimulateTick(60, 1.0)

	if state := runtime.StateForTest(logisticsID); state != nil {
		state.LastOutput = 400
		state.PotentialDemand = 400
		state.SupplyCapacity = 400
		state.Inventory = 0
		state.UnmetDemand = 0
	}
	if state := runtime.StateForTest(autoID); state != nil {
		state.LastOutput = 800
		state.PotentialDemand = 800
		state.SupplyCapacity = 800
	}
	runtime.SetModifierForTest(autoID, 0.0, 1.2, 180)

	var outcome TickOutcome
	for i := 0; i < 3; i++ {
		outcome = runtime.SimulateTick(60, 1.0)
	}
	metrics := outcome.SectorMetrics[logisticsID]
	require.Greater(t, metrics.Inventory, 0.0)
	require.Less(t, metrics.UnmetDemand, 1e-6)
}

func TestUnmetDemandAccumulatesWhenCapacityConstrained(t *testing.T) {
	catalog := NewCatalog()
	require.NoError(t, catalog.InsertDefinition(Secondary, SectorDefinition{
		Key: "automotive", Name: "Automotive",
		BaseOutput: 160, BaseCost: 130, PriceSensitivity: 0.5, Employment: 120,
	}))
	sectorID := NewSectorID(Secondary, "automotive")
	runtime := FromCatalog(catalog)
	runtime.SimulateTick(60, 1.0)
	runtime.SetModifierForTest(sectorID, 0.0, -0.8, 300)
	outcome := runtime.SimulateTick(60, 2.0)
	metrics := outcome.SectorMetrics[sectorID]
	require.Greater(t, metrics.UnmetDemand, 0.0)
	require.Less(t, metrics.Inventory, 5.0)
}

func TestLongRunSimulationRemainsStable(t *testing.T) {
	catalog, err := FromEmbedded()
	require.NoError(t, err)
	runtime := FromCatalog(catalog)
	for step := 0; step < 120; step++ {
		outcome := runtime.SimulateTick(60, 1.0)
		for id, metrics := range outcome.SectorMetrics {
			require.True(t, isFinite(metrics.Output), "output must remain finite for %v", id)
			require.True(t, isFinite(metrics.Inventory), "inventory must remain finite for %v", id)
			require.True(t, isFinite(metrics.UnmetDemand), "unmet demand must remain finite for %v", id)
			require.GreaterOrEqual(t, metrics.Output, 0.0)
			require.GreaterOrEqual(t, metrics.Inventory, 0.0)
			require.GreaterOrEqual(t, metrics.UnmetDemand, 0.0)
		}
		require.True(t, isFinite(runtime.EnergyCostIndex()))
		require.Greater(t, runtime.EnergyCostIndex(), 0.0)
		require.Less(t, runtime.EnergyCostIndex(), 2.5)
		if step > 0 {
			require.True(t, isFinite(outcome.TotalRevenue))
		}
	}
}

func TestResolveSectorTokenRequiresCategoryWhenAmbiguous(t *testing.T) {
	catalog := NewCatalog()
	require.NoError(t, catalog.InsertDefinition(Secondary, SectorDefinition{Key: "automotive", Name: "Automotive", BaseOutput: 100, BaseCost: 50}))
	require.NoError(t, catalog.InsertDefinition(Tertiary, SectorDefinition{Key: "automotive", Name: "Auto Services", BaseOutput: 90, BaseCost: 40}))

	runtime := FromCatalog(catalog)
	_, err := runtime.ResolveSectorToken("automotive")
	require.ErrorContains(t, err, "ambiguous")

	id, err := runtime.ResolveSectorToken("secondary:automotive")
	require.NoError(t, err)
	require.Equal(t, Secondary, id.Category)
}

func TestApplySubsidyClampsAndRejectsUnknownSector(t *testing.T) {
	catalog := NewCatalog()
	require.NoError(t, catalog.InsertDefinition(Primary, SectorDefinition{Key: "grain", Name: "Grain", BaseOutput: 100, BaseCost: 40}))
	runtime := FromCatalog(catalog)

	overview, err := runtime.ApplySubsidy(NewSectorID(Primary, "grain"), 150)
	require.NoError(t, err)
	require.InDelta(t, 90.0, overview.SubsidyPercent, 1e-9)

	_, err = runtime.ApplySubsidy(NewSectorID(Primary, "unknown"), 10)
	require.Error(t, err)

	_, err = runtime.ApplySubsidy(NewSectorID(Primary, "grain"), -5)
	require.Error(t, err)
}

func TestInsertDefinitionRejectsDuplicateKey(t *testing.T) {
	catalog := NewCatalog()
	require.NoError(t, catalog.InsertDefinition(Primary, SectorDefinition{Key: "grain", Name: "Grain", BaseOutput: 100, BaseCost: 40}))

	err := catalog.InsertDefinition(Primary, SectorDefinition{Key: "grain", Name: "Grain Again", BaseOutput: 80, BaseCost: 30})
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrDuplicateSector))

	require.Len(t, catalog.Sectors(), 1)
}

func categoryPtr(c Category) *Category {
	return &c
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
