// Package country models a country's static definition, mutable per-tick
// state, budget allocation, and fiscal history.
package country

import (
	"fmt"
	"math"

	"github.com/talgya/geopolitics-core/internal/economy"
	"github.com/talgya/geopolitics-core/internal/eventdsl"
)

const (
	MinMetric    = 0
	MaxMetric    = 100
	MinResources = 0
	MaxResources = 200
	MinRelation  = -100
	MaxRelation  = 100

	// maxFiscalHistory caps the per-country fiscal history ring buffer
	// (bounded rather than unbounded, to keep memory use predictable).
	maxFiscalHistory = 512
)

// Definition is the caller-supplied, already-parsed description of one
// country used to seed a CountryState.
type Definition struct {
	Name                string
	Government          string
	PopulationMillions  float64
	GDP                 float64
	Stability           int
	Military            int
	Approval            int
	Budget              float64
	Resources           int
	TaxPolicyConfig     *economy.TaxPolicyConfig
}

// Allocation is a country's current percentage-of-GDP budget split.
type Allocation struct {
	Infrastructure     float64
	Military           float64
	Welfare            float64
	Diplomacy          float64
	DebtService        float64
	Administration     float64
	Research           float64
	EnsureCoreMinimum  bool
}

// NewAllocation validates that every percentage is finite and non-negative.
func NewAllocation(infrastructure, military, welfare, diplomacy, debtService, administration, research float64, ensureCoreMinimum bool) (Allocation, error) {
	for _, v := range []float64{infrastructure, military, welfare, diplomacy, debtService, administration, research} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Allocation{}, fmt.Errorf("budget allocation percentage must be finite")
		}
		if v < 0 {
			return Allocation{}, fmt.Errorf("budget allocation percentage must be >= 0")
		}
	}
	return Allocation{
		Infrastructure:    infrastructure,
		Military:          military,
		Welfare:           welfare,
		Diplomacy:         diplomacy,
		DebtService:       debtService,
		Administration:    administration,
		Research:          research,
		EnsureCoreMinimum: ensureCoreMinimum,
	}, nil
}

// DefaultAllocation is a balanced starting split, with
// core-minimum enforcement on by default.
func DefaultAllocation() Allocation {
	alloc, err := NewAllocation(8.0, 6.0, 7.0, 5.0, 5.0, 3.5, 4.5, true)
	if err != nil {
		panic("country: default allocation must be valid")
	}
	return alloc
}

// TotalPercentage sums every allocation bucket's percentage.
func (a Allocation) TotalPercentage() float64 {
	return a.Infrastructure + a.Military + a.Welfare + a.Diplomacy + a.DebtService + a.Administration + a.Research
}

// TotalRequestedAmount converts the percentage split into an absolute
// amount given gdp.
func (a Allocation) TotalRequestedAmount(gdp float64) float64 {
	factor := max(gdp, 0) / 100.0
	return factor * a.TotalPercentage()
}

// FiscalHistorySample is one tick's fiscal snapshot, retained for trend
// reporting via GameState.FiscalHistoryOf.
type FiscalHistorySample struct {
	Minutes  uint64
	Snapshot economy.FiscalSnapshot
}

// State is one country's full mutable per-tick state.
type State struct {
	Name               string
	Government         string
	PopulationMillions float64
	GDP                float64
	Stability          int
	Military           int
	Approval           int
	Resources          int
	Relations          map[string]int
	Fiscal             *economy.FiscalAccount
	TaxPolicy          *economy.TaxPolicy

	allocation    Allocation
	fiscalHistory []FiscalHistorySample
}

// New constructs a State; relations start empty and are populated by the
// diplomacy package's InitialiseRelations.
func New(name, government string, populationMillions, gdp float64, stability, military, approval, resources int, fiscal *economy.FiscalAccount, taxPolicy *economy.TaxPolicy, allocation Allocation) *State {
	return &State{
		Name:               name,
		Government:         government,
		PopulationMillions: populationMillions,
		GDP:                gdp,
		Stability:          stability,
		Military:           military,
		Approval:           approval,
		Resources:          resources,
		Relations:          make(map[string]int),
		Fiscal:             fiscal,
		TaxPolicy:          taxPolicy,
		allocation:         allocation,
	}
}

// Allocations returns the current budget split.
func (s *State) Allocations() Allocation { return s.allocation }

// SetAllocations replaces the current budget split.
func (s *State) SetAllocations(allocation Allocation) { s.allocation = allocation }

// FiscalMut exposes the fiscal account for direct mutation. In the
// original, this accessor was test-only; here the policy, systems and game
// packages need it outside of tests too, so it is always available.
func (s *State) FiscalMut() *economy.FiscalAccount { return s.Fiscal }

func (s *State) CashReserve() float64  { return s.Fiscal.CashReserve() }
func (s *State) TotalRevenue() float64 { return s.Fiscal.TotalRevenue() }
func (s *State) TotalExpense() float64 { return s.Fiscal.TotalExpense() }
func (s *State) NetCashFlow() float64  { return s.Fiscal.NetCashFlow() }

// ApplyStabilityDelta/Approval/Military/Resources apply a delta and clamp to the
// field's valid domain, rounding to the nearest integer per the
// scripted-event effect semantics.
func (s *State) ApplyStabilityDelta(delta float64) {
	s.Stability = clampMetricDelta(s.Stability, delta)
}
func (s *State) ApplyApprovalDelta(delta float64) {
	s.Approval = clampMetricDelta(s.Approval, delta)
}
func (s *State) ApplyMilitaryDelta(delta float64) {
	s.Military = clampMetricDelta(s.Military, delta)
}
func (s *State) ApplyResourcesDelta(delta float64) {
	s.Resources = clampResourceDelta(s.Resources, delta)
}
func (s *State) ApplyGDPDelta(delta float64) {
	s.GDP = max(s.GDP+delta, 0)
}
func (s *State) ApplyDebtDelta(delta float64) {
	s.Fiscal.AddDebt(delta)
}
func (s *State) ApplyCashReserveDelta(delta float64) {
	s.Fiscal.SetCashReserve(s.Fiscal.CashReserve() + delta)
}

func clampMetricDelta(base int, delta float64) int {
	candidate := int(math.Round(float64(base) + delta))
	return clampInt(candidate, MinMetric, MaxMetric)
}

func clampResourceDelta(base int, delta float64) int {
	candidate := int(math.Round(float64(base) + delta))
	return clampInt(candidate, MinResources, MaxResources)
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

// MetricValues snapshots this state's fields for condition DSL evaluation.
func (s *State) MetricValues() eventdsl.MetricValues {
	return eventdsl.MetricValues{
		Stability:        float64(s.Stability),
		Approval:         float64(s.Approval),
		Military:         float64(s.Military),
		Resources:        float64(s.Resources),
		GDP:              max(s.GDP, 0),
		Debt:             max(s.Fiscal.Debt, 0),
		CashReserve:      max(s.Fiscal.CashReserve(), 0),
		DebtRatio:        debtRatioPercent(s.Fiscal.Debt, s.GDP),
		InterestRate:     max(s.Fiscal.InterestRate, 0),
		CreditRatingTier: float64(s.Fiscal.CreditRating.Tier()),
	}
}

func debtRatioPercent(debt, gdp float64) float64 {
	debt = max(debt, 0)
	gdp = max(gdp, 0)
	if gdp <= 1e-9 {
		if debt <= 1e-9 {
			return 0
		}
		return math.Inf(1)
	}
	return (debt / gdp) * 100.0
}

// PushFiscalHistory appends a snapshot sample, discarding the oldest once
// the ring buffer reaches its cap.
func (s *State) PushFiscalHistory(minutes uint64) {
	s.fiscalHistory = append(s.fiscalHistory, FiscalHistorySample{
		Minutes:  minutes,
		Snapshot: s.Fiscal.Snapshot(),
	})
	if len(s.fiscalHistory) > maxFiscalHistory {
		s.fiscalHistory = s.fiscalHistory[len(s.fiscalHistory)-maxFiscalHistory:]
	}
}

// FiscalHistory returns every retained sample, oldest first.
func (s *State) FiscalHistory() []FiscalHistorySample {
	out := make([]FiscalHistorySample, len(s.fiscalHistory))
	copy(out, s.fiscalHistory)
	return out
}
