package economy

import (
	"fmt"
	"log/slog"
	"math"
)

const (
	hoursPerYear     = 24.0 * 365.0
	debtCyclePerYear = 12.0
)

// RevenueKind classifies a tick's revenue line items.
type RevenueKind int

const (
	Taxation RevenueKind = iota
	ResourceExport
	Trade
	Aid
	OtherRevenue
)

// ExpenseKind classifies a tick's expense line items. IndustrySupport is
// carried over from the industry runtime's per-country cost distribution
// and funds industry subsidies paid out of general revenue.
type ExpenseKind int

const (
	Infrastructure ExpenseKind = iota
	Military
	Welfare
	Diplomacy
	DebtService
	Administration
	Research
	IndustrySupport
	OtherExpense
)

// RevenueItem is one revenue line recorded during the current tick.
type RevenueItem struct {
	Kind   RevenueKind
	Amount float64
}

// ExpenseItem is one expense line recorded during the current tick.
type ExpenseItem struct {
	Kind   ExpenseKind
	Amount float64
}

// DebtCycleOutcome summarizes the result of UpdateFiscalCycle for the
// caller's report lines.
type DebtCycleOutcome struct {
	InterestDue     float64
	InterestPaid    float64
	PrincipalRepaid float64
	NewIssuance     float64
	Downgraded      bool
	NewRating       CreditRating
	CrisisMessage   string
}

// FiscalSnapshot is a read-only view of a country's fiscal state, used by
// GameState.FiscalSnapshotOf and fiscal history samples.
type FiscalSnapshot struct {
	CashReserve   float64
	Debt          float64
	InterestRate  float64
	CreditRating  CreditRating
	TotalRevenue  float64
	TotalExpense  float64
	NetCashFlow   float64
}

// FiscalAccount tracks one country's cash, debt, credit rating, and the
// current tick's revenue/expense ledger.
type FiscalAccount struct {
	cashReserve  float64
	Revenues     []RevenueItem
	Expenses     []ExpenseItem
	Debt         float64
	InterestRate float64
	CreditRating CreditRating
}

// NewFiscalAccount returns an account seeded with initialCash and the base
// interest rate implied by rating.
func NewFiscalAccount(initialCash float64, rating CreditRating) *FiscalAccount {
	return &FiscalAccount{
		cashReserve:  max(initialCash, 0),
		InterestRate: rating.BaseInterestRate(),
		CreditRating: rating,
	}
}

// CashReserve returns the current cash balance.
func (f *FiscalAccount) CashReserve() float64 { return f.cashReserve }

// SetCashReserve clamps amount to ≥0 and stores it. Used by the scripted
// event engine's cash_reserve effect.
func (f *FiscalAccount) SetCashReserve(amount float64) {
	f.cashReserve = max(amount, 0)
}

func (f *FiscalAccount) setCreditRating(rating CreditRating) {
	f.CreditRating = rating
	f.InterestRate = rating.BaseInterestRate()
}

// DowngradeRating drops the credit rating one notch, used outside the
// regular fiscal cycle when a budget shortfall itself triggers a downgrade.
func (f *FiscalAccount) DowngradeRating() {
	f.setCreditRating(f.CreditRating.Downgrade())
}

// RecordRevenue appends a revenue line and credits cash. Non-positive
// amounts are ignored.
func (f *FiscalAccount) RecordRevenue(kind RevenueKind, amount float64) {
	if amount <= 0 {
		return
	}
	f.Revenues = append(f.Revenues, RevenueItem{Kind: kind, Amount: amount})
	f.cashReserve += amount
}

// RecordExpense appends an expense line and debits cash, clamped to ≥0.
// Non-positive amounts are ignored.
func (f *FiscalAccount) RecordExpense(kind ExpenseKind, amount float64) {
	if amount <= 0 {
		return
	}
	f.Expenses = append(f.Expenses, ExpenseItem{Kind: kind, Amount: amount})
	f.cashReserve = max(f.cashReserve-amount, 0)
}

// ClearFlows empties the revenue/expense ledgers for the next tick.
func (f *FiscalAccount) ClearFlows() {
	f.Revenues = f.Revenues[:0]
	f.Expenses = f.Expenses[:0]
}

// TotalRevenue sums the current tick's revenue items.
func (f *FiscalAccount) TotalRevenue() float64 {
	var total float64
	for _, r := range f.Revenues {
		total += r.Amount
	}
	return total
}

// TotalExpense sums the current tick's expense items.
func (f *FiscalAccount) TotalExpense() float64 {
	var total float64
	for _, e := range f.Expenses {
		total += e.Amount
	}
	return total
}

// NetCashFlow is TotalRevenue - TotalExpense for the current tick.
func (f *FiscalAccount) NetCashFlow() float64 {
	return f.TotalRevenue() - f.TotalExpense()
}

// AccrueInterestHours records DebtService = debt * rate * hours/(24*365).
func (f *FiscalAccount) AccrueInterestHours(hours float64) float64 {
	if f.Debt <= 0 || hours <= 0 {
		return 0
	}
	interest := f.Debt * f.InterestRate * (hours / hoursPerYear)
	if interest > 0 {
		f.RecordExpense(DebtService, interest)
	}
	return interest
}

// AddDebt adjusts debt by delta, clamped to ≥0.
func (f *FiscalAccount) AddDebt(delta float64) {
	f.Debt = max(f.Debt+delta, 0)
}

// UpdateFiscalCycle runs the daily debt-cycle algorithm: interest accrual,
// amortization, safety-reserve new issuance, and rating downgrade on
// distress. gdp must be finite and non-negative; violating that is a
// structural invariant breach (the policy resolver is the only caller and
// always clamps gdp beforehand).
func (f *FiscalAccount) UpdateFiscalCycle(gdp float64) DebtCycleOutcome {
	if math.IsNaN(gdp) || math.IsInf(gdp, 0) || gdp < 0 {
		panic("economy: UpdateFiscalCycle called with an invalid gdp")
	}

	debtRatio := f.debtRatio(gdp)
	riskSurcharge := max(debtRatio-0.6, 0) * 0.03
	f.InterestRate = min(f.CreditRating.BaseInterestRate()+riskSurcharge, 0.30)

	interestDue := f.Debt * f.InterestRate / debtCyclePerYear
	var interestPaid, unpaidInterest float64
	if interestDue > 0 {
		payable := min(f.cashReserve, interestDue)
		if payable > 0 {
			f.RecordExpense(DebtService, payable)
			interestPaid = payable
		}
		unpaidInterest = interestDue - payable
		if unpaidInterest > 0 {
			f.Debt += unpaidInterest
		}
	}

	var principalRepaid float64
	if f.Debt > 0 {
		amortTarget := min(f.Debt*0.01, f.cashReserve*0.5)
		if amortTarget > 0 {
			f.RecordExpense(DebtService, amortTarget)
			f.Debt = max(f.Debt-amortTarget, 0)
			principalRepaid = amortTarget
		}
	}

	safetyReserve := max(gdp*0.04, 25)
	var newIssuance float64
	if f.cashReserve < safetyReserve {
		needed := safetyReserve - f.cashReserve
		if needed > 0 {
			f.AddDebt(needed)
			f.RecordRevenue(OtherRevenue, needed)
			newIssuance = needed
		}
	}

	debtRatio = f.debtRatio(gdp)

	outcome := DebtCycleOutcome{
		InterestDue:     interestDue,
		InterestPaid:    interestPaid,
		PrincipalRepaid: principalRepaid,
		NewIssuance:     newIssuance,
	}

	slog.Debug("fiscal debt cycle",
		"debt", f.Debt,
		"debt_ratio", debtRatio,
		"interest_paid", interestPaid,
		"principal_repaid", principalRepaid,
		"new_issuance", newIssuance,
	)

	if debtRatio > 1.1 || unpaidInterest > interestDue*0.25 {
		previous := f.CreditRating
		newRating := previous.Downgrade()
		if newRating != previous {
			f.setCreditRating(newRating)
			outcome.Downgraded = true
			outcome.NewRating = newRating
			outcome.CrisisMessage = ratingCrisisMessage(debtRatio, previous, newRating)
			slog.Info("credit rating downgraded", "from", previous, "to", newRating, "debt_ratio", debtRatio)
		} else {
			outcome.CrisisMessage = ratingCrisisMessageAbsorbed(debtRatio)
		}
	}

	return outcome
}

func (f *FiscalAccount) debtRatio(gdp float64) float64 {
	switch {
	case gdp > 0:
		return max(f.Debt/gdp, 0)
	case f.Debt > 0:
		return 5.0
	default:
		return 0.0
	}
}

// Snapshot returns a read-only copy of the account's current state.
func (f *FiscalAccount) Snapshot() FiscalSnapshot {
	return FiscalSnapshot{
		CashReserve:  f.cashReserve,
		Debt:         f.Debt,
		InterestRate: f.InterestRate,
		CreditRating: f.CreditRating,
		TotalRevenue: f.TotalRevenue(),
		TotalExpense: f.TotalExpense(),
		NetCashFlow:  f.NetCashFlow(),
	}
}

func ratingCrisisMessage(debtRatio float64, previous, next CreditRating) string {
	return fmt.Sprintf("debt ratio reached %.0f%%, credit rating downgraded from %s to %s",
		math.Round(debtRatio*100), previous, next)
}

func ratingCrisisMessageAbsorbed(debtRatio float64) string {
	return fmt.Sprintf("debt ratio reached %.0f%%, the country is in fiscal crisis", math.Round(debtRatio*100))
}
