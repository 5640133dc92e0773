package economy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreditRatingDowngradeIsAbsorbingAtD(t *testing.T) {
	require.Equal(t, AA, AAA.Downgrade())
	require.Equal(t, D, C.Downgrade())
	require.Equal(t, D, D.Downgrade())
}

func TestFiscalAccountClearFlowsResetsLedger(t *testing.T) {
	acc := NewFiscalAccount(100, BBB)
	acc.RecordRevenue(Taxation, 50)
	acc.RecordExpense(Military, 20)
	require.Equal(t, float64(130), acc.CashReserve())
	require.Equal(t, float64(30), acc.NetCashFlow())

	acc.ClearFlows()
	require.Zero(t, acc.TotalRevenue())
	require.Zero(t, acc.TotalExpense())
}

func TestFiscalAccountRecordExpenseClampsCashToZero(t *testing.T) {
	acc := NewFiscalAccount(10, BBB)
	acc.RecordExpense(Military, 50)
	require.Zero(t, acc.CashReserve())
}

func TestUpdateFiscalCyclePaysInterestAndReducesDebt(t *testing.T) {
	acc := NewFiscalAccount(300, BBB)
	acc.Debt = 1200
	outcome := acc.UpdateFiscalCycle(1800)
	require.Greater(t, outcome.InterestDue, 0.0)
	require.Greater(t, outcome.InterestPaid, 0.0)
	require.GreaterOrEqual(t, outcome.PrincipalRepaid, 0.0)
	require.GreaterOrEqual(t, acc.Debt, 0.0)
	require.Less(t, acc.Debt, 1200.0)
}

func TestUpdateFiscalCycleTriggersCrisisOnExcessDebt(t *testing.T) {
	acc := NewFiscalAccount(50, BBB)
	acc.Debt = 2500
	outcome := acc.UpdateFiscalCycle(1500)
	require.NotEmpty(t, outcome.CrisisMessage)
	require.True(t, outcome.Downgraded)
	require.GreaterOrEqual(t, acc.InterestRate, acc.CreditRating.BaseInterestRate())
}

func TestUpdateFiscalCyclePanicsOnInvalidGDP(t *testing.T) {
	acc := NewFiscalAccount(50, BBB)
	require.Panics(t, func() {
		acc.UpdateFiscalCycle(-1)
	})
}

func TestTaxPolicyCollectRoundTrip(t *testing.T) {
	tp := DefaultTaxPolicy()
	const gdp, employment, scale = 1500.0, 0.9, 1.0

	var runningImmediate float64
	var adjusted float64
	for i := 0; i < 5; i++ {
		before := tp.PendingRevenue()
		out := tp.Collect(gdp, employment, scale)
		runningImmediate += out.Immediate
		adjusted = out.Immediate - before + out.Deferred
	}
	require.Greater(t, runningImmediate, 0.0)
	require.InDelta(t, 5*adjusted, runningImmediate+tp.PendingRevenue(), 1e-6)
}
