package country

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/geopolitics-core/internal/economy"
)

func sampleState() *State {
	fiscal := economy.NewFiscalAccount(500, economy.A)
	taxPolicy := economy.NewTaxPolicy(economy.TaxPolicyConfig{})
	return New("Veridia", "Republic", 40, 1800, 60, 50, 55, 100, fiscal, taxPolicy, DefaultAllocation())
}

func TestAllocationRejectsNegativeValues(t *testing.T) {
	_, err := NewAllocation(-1, 5, 5, 5, 5, 5, 5, true)
	require.Error(t, err)
}

func TestAllocationTotalPercentageAndAmount(t *testing.T) {
	alloc := DefaultAllocation()
	require.InDelta(t, 39.0, alloc.TotalPercentage(), 1e-9)
	require.InDelta(t, 390.0, alloc.TotalRequestedAmount(1000), 1e-9)
}

func TestMetricDeltasClampToDomain(t *testing.T) {
	s := sampleState()
	s.ApplyStabilityDelta(1000)
	require.Equal(t, MaxMetric, s.Stability)

	s.ApplyStabilityDelta(-1000)
	require.Equal(t, MinMetric, s.Stability)

	s.ApplyResourcesDelta(1000)
	require.Equal(t, MaxResources, s.Resources)

	s.ApplyResourcesDelta(-1000)
	require.Equal(t, MinResources, s.Resources)
}

func TestApplyGDPDeltaNeverNegative(t *testing.T) {
	s := sampleState()
	s.ApplyGDPDelta(-100000)
	require.Equal(t, 0.0, s.GDP)
}

func TestApplyDebtAndCashReserveDeltas(t *testing.T) {
	s := sampleState()
	s.ApplyDebtDelta(250)
	require.InDelta(t, 250.0, s.Fiscal.Debt, 1e-9)

	before := s.CashReserve()
	s.ApplyCashReserveDelta(-25)
	require.InDelta(t, before-25, s.CashReserve(), 1e-9)
}

func TestMetricValuesReflectsDerivedFields(t *testing.T) {
	s := sampleState()
	s.Fiscal.AddDebt(900)
	values := s.MetricValues()
	require.InDelta(t, 50.0, values.DebtRatio, 1e-6)
	require.InDelta(t, float64(s.Stability), values.Stability, 1e-9)
	require.Equal(t, float64(economy.A.Tier()), values.CreditRatingTier)
}

func TestMetricValuesDebtRatioZeroGdpNoDebt(t *testing.T) {
	fiscal := economy.NewFiscalAccount(100, economy.A)
	taxPolicy := economy.NewTaxPolicy(economy.TaxPolicyConfig{})
	s := New("Empty", "Republic", 1, 0, 50, 50, 50, 50, fiscal, taxPolicy, DefaultAllocation())
	values := s.MetricValues()
	require.Equal(t, 0.0, values.DebtRatio)
}

func TestFiscalHistoryCapsAtMaximumSamples(t *testing.T) {
	s := sampleState()
	for i := 0; i < maxFiscalHistory+10; i++ {
		s.PushFiscalHistory(uint64(i))
	}
	history := s.FiscalHistory()
	require.Len(t, history, maxFiscalHistory)
	require.Equal(t, uint64(10), history[0].Minutes)
	require.Equal(t, uint64(maxFiscalHistory+9), history[len(history)-1].Minutes)
}

func TestAllocationsGetterSetterRoundTrips(t *testing.T) {
	s := sampleState()
	newAlloc, err := NewAllocation(10, 10, 10, 10, 10, 10, 10, false)
	require.NoError(t, err)
	s.SetAllocations(newAlloc)
	require.Equal(t, newAlloc, s.Allocations())
}
