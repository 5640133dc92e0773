package systems

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/geopolitics-core/internal/country"
	"github.com/talgya/geopolitics-core/internal/economy"
	"github.com/talgya/geopolitics-core/internal/market"
)

func sampleCountry(name string) *country.State {
	fiscal := economy.NewFiscalAccount(300, economy.BBB)
	taxPolicy := economy.NewTaxPolicy(economy.TaxPolicyConfig{})
	return country.New(name, "Republic", 30, 1500, 60, 55, 50, 70, fiscal, taxPolicy, country.DefaultAllocation())
}

func TestEnsureFiscalPreparedTracksState(t *testing.T) {
	facade := New()
	countries := []*country.State{sampleCountry("Asteria")}

	require.True(t, facade.EnsureFiscalPrepared(countries, 1.0))
	require.False(t, facade.EnsureFiscalPrepared(countries, 1.0))

	facade.FinishFiscalCycle()
	require.True(t, facade.EnsureFiscalPrepared(countries, 1.0))
}

func TestProcessEconomicTickResetsPreparationWhenNotPrepared(t *testing.T) {
	facade := New()
	countries := []*country.State{sampleCountry("Asteria"), sampleCountry("Borealis")}
	m := market.New(120.0, 7.5, 0.04)
	rng := rand.New(rand.NewSource(7))

	reports := facade.ProcessEconomicTick(countries, m, rng, 1.0)
	require.True(t, facade.EnsureFiscalPrepared(countries, 1.0))
	require.GreaterOrEqual(t, len(reports), len(countries))
}

func TestProcessEconomicTickPreservesPreparedStateWhenAlreadyPrepared(t *testing.T) {
	facade := New()
	countries := []*country.State{sampleCountry("Asteria"), sampleCountry("Borealis")}
	m := market.New(120.0, 7.5, 0.04)
	rng := rand.New(rand.NewSource(11))

	require.True(t, facade.EnsureFiscalPrepared(countries, 1.0))
	facade.ProcessEconomicTick(countries, m, rng, 1.0)
	require.False(t, facade.EnsureFiscalPrepared(countries, 1.0))
}

func TestApplyBudgetEffectsAppliesTaxAndInfrastructure(t *testing.T) {
	countries := []*country.State{sampleCountry("Asteria")}
	m := market.New(120.0, 7.5, 0.04)
	PrepareAllFiscalFlows(countries, 1.0)
	reports := ApplyBudgetEffects(countries, m, 0, 1.0)
	require.NotEmpty(t, reports)
	joined := strings.Join(reports, "\n")
	require.Contains(t, joined, "in immediate tax revenue")
	require.Contains(t, joined, "is investing in infrastructure")
}
