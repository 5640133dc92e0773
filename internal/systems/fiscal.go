package systems

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/talgya/geopolitics-core/internal/country"
	"github.com/talgya/geopolitics-core/internal/diplomacy"
	"github.com/talgya/geopolitics-core/internal/economy"
	"github.com/talgya/geopolitics-core/internal/market"
)

// PrepareAllFiscalFlows clears each country's per-tick ledger and accrues
// this tick's interest. No-op if scale <= 0.
func PrepareAllFiscalFlows(countries []*country.State, scale float64) {
	if scale <= 0 {
		return
	}
	for _, c := range countries {
		c.FiscalMut().ClearFlows()
		c.FiscalMut().AccrueInterestHours(scale)
	}
}

// ApplyBudgetEffects runs one country's tax collection and every budget
// bucket's spending effects for this tick, returning report lines.
func ApplyBudgetEffects(countries []*country.State, commodityMarket *market.Commodity, idx int, scale float64) []string {
	var reports []string
	if idx < 0 || idx >= len(countries) || scale <= 0 {
		return reports
	}

	c := countries[idx]
	employmentRatio := estimateEmploymentRatio(countries, idx)
	gdp, resources := c.GDP, c.Resources

	outcome := c.TaxPolicy.Collect(gdp, employmentRatio, scale)
	if outcome.Immediate > 0 {
		c.FiscalMut().RecordRevenue(economy.Taxation, outcome.Immediate)
		slog.Debug("tax collected", "country", c.Name, "kind", "immediate", "amount", outcome.Immediate)
		reports = append(reports, fmt.Sprintf("%s collected %s in immediate tax revenue", c.Name, humanize.Commaf(outcome.Immediate)))
	}
	if outcome.Deferred > 0 {
		slog.Debug("tax deferred", "country", c.Name, "kind", "deferred", "amount", outcome.Deferred)
		reports = append(reports, fmt.Sprintf("%s carries forward %s in deferred tax revenue", c.Name, humanize.Commaf(outcome.Deferred)))
	}

	allocation := c.Allocations()
	gdpAmount := max(gdp, 0)
	percentToAmount := func(percent float64) float64 {
		if percent <= 0 || gdpAmount <= 0 {
			return 0
		}
		return gdpAmount * (percent / 100.0)
	}

	resourceRevenue := commodityMarket.RevenueFor(resources, scale)
	if resourceRevenue > 0 {
		priceSnapshot := commodityMarket.Price()
		c.FiscalMut().RecordRevenue(economy.ResourceExport, resourceRevenue)
		slog.Debug("resource export revenue", "country", c.Name, "amount", resourceRevenue, "unit_price", priceSnapshot)
		reports = append(reports, fmt.Sprintf("%s earned %s in resource export revenue (unit price %s)", c.Name, humanize.Commaf(resourceRevenue), humanize.Commaf(priceSnapshot)))
	}

	debtBase := percentToAmount(allocation.DebtService)
	debtRequest := debtBase
	if allocation.EnsureCoreMinimum {
		debtRequest = max(debtBase, essentialDebtTarget(countries, idx))
	}
	debtDesired := debtRequest * scale
	if debtDesired > 0 {
		available := c.CashReserve()
		actual := min(debtDesired, available)
		if actual > 0 {
			c.FiscalMut().RecordExpense(economy.DebtService, actual)
			reduction := min(actual, c.Fiscal.Debt)
			if reduction > 0 {
				c.FiscalMut().AddDebt(-reduction)
			}
			slog.Debug("budget effect applied", "country", c.Name, "kind", "debt_service", "amount", actual)
			reports = append(reports, fmt.Sprintf("%s allocated %s to debt service", c.Name, humanize.Commaf(actual)))
		} else if allocation.EnsureCoreMinimum {
			c.FiscalMut().AddDebt(debtDesired * 0.25)
			slog.Debug("debt service deferred for lack of funds", "country", c.Name)
			reports = append(reports, fmt.Sprintf("%s deferred debt repayment for lack of funds", c.Name))
		}
	}

	administrationBase := percentToAmount(allocation.Administration)
	administrationRequest := administrationBase
	if allocation.EnsureCoreMinimum {
		administrationRequest = max(administrationBase, essentialAdministrationTarget(countries, idx))
	}
	administrationDesired := administrationRequest * scale
	if administrationDesired > 0 {
		available := c.CashReserve()
		actual := min(administrationDesired, available)
		if actual > 0 {
			c.FiscalMut().RecordExpense(economy.Administration, actual)
			c.ApplyStabilityDelta(round(actual / 120.0))
			slog.Debug("budget effect applied", "country", c.Name, "kind", "administration", "amount", actual)
			reports = append(reports, fmt.Sprintf("%s is investing %s in administration", c.Name, humanize.Commaf(actual)))
		} else if allocation.EnsureCoreMinimum {
			c.ApplyStabilityDelta(-3)
			slog.Debug("administration underfunded", "country", c.Name)
			reports = append(reports, fmt.Sprintf("%s is suffering administrative decline from funding shortfalls", c.Name))
		}
	}

	infraDesired := percentToAmount(allocation.Infrastructure) * scale
	if infraDesired > 0 {
		available := c.CashReserve()
		actual := min(infraDesired, available)
		if actual > 0 {
			c.FiscalMut().RecordExpense(economy.Infrastructure, actual)
			c.ApplyGDPDelta(actual * 0.9)
			intensity := round(actual / 80.0)
			c.ApplyStabilityDelta(intensity)
			c.ApplyApprovalDelta(intensity / 2)
			c.ApplyResourcesDelta(-(actual / 25.0))
			slog.Debug("budget effect applied", "country", c.Name, "kind", "infrastructure", "amount", actual)
			reports = append(reports, fmt.Sprintf("%s is investing in infrastructure (spend %s)", c.Name, humanize.Commaf(actual)))
		}
	}

	welfareDesired := percentToAmount(allocation.Welfare) * scale
	if welfareDesired > 0 {
		available := c.CashReserve()
		actual := min(welfareDesired, available)
		if actual > 0 {
			c.FiscalMut().RecordExpense(economy.Welfare, actual)
			intensity := round(actual / 70.0)
			c.ApplyApprovalDelta(intensity)
			c.ApplyStabilityDelta(intensity / 2)
			c.ApplyGDPDelta(-actual * 0.25)
			slog.Debug("budget effect applied", "country", c.Name, "kind", "welfare", "amount", actual)
			reports = append(reports, fmt.Sprintf("%s expanded social welfare programs (spend %s)", c.Name, humanize.Commaf(actual)))
		}
	}

	researchDesired := percentToAmount(allocation.Research) * scale
	if researchDesired > 0 {
		available := c.CashReserve()
		actual := min(researchDesired, available)
		if actual > 0 {
			c.FiscalMut().RecordExpense(economy.Research, actual)
			c.ApplyGDPDelta(actual * 0.6)
			innovation := round(actual / 90.0)
			c.ApplyResourcesDelta(innovation)
			slog.Debug("budget effect applied", "country", c.Name, "kind", "research", "amount", actual)
			reports = append(reports, fmt.Sprintf("%s invested %s in research and development", c.Name, humanize.Commaf(actual)))
		}
	}

	diplomacyDesired := percentToAmount(allocation.Diplomacy) * scale
	if diplomacyDesired > 0 {
		available := c.CashReserve()
		actual := min(diplomacyDesired, available)
		if actual > 0 {
			c.FiscalMut().RecordExpense(economy.Diplomacy, actual)
			relationScale := max(actual/120.0, scale)
			diplomacy.ImproveRelations(countries, idx, relationScale)
			slog.Debug("budget effect applied", "country", c.Name, "kind", "diplomacy", "amount", actual)
			reports = append(reports, fmt.Sprintf("%s is investing in diplomatic outreach (spend %s)", c.Name, humanize.Commaf(actual)))
		}
	}

	militaryDesired := percentToAmount(allocation.Military) * scale
	if militaryDesired > 0 {
		available := c.CashReserve()
		actual := min(militaryDesired, available)
		if actual > 0 {
			c.FiscalMut().RecordExpense(economy.Military, actual)
			intensity := round(actual / 80.0)
			c.ApplyMilitaryDelta(intensity)
			c.ApplyStabilityDelta(intensity / 2)
			c.ApplyApprovalDelta(-intensity / 2)
			c.ApplyResourcesDelta(-(actual / 40.0))
			relationPenalty := -round(2.0 * max(scale, 1.0))
			diplomacy.PenaliseAfterMilitary(countries, idx, int(relationPenalty))
			slog.Debug("budget effect applied", "country", c.Name, "kind", "military", "amount", actual)
			reports = append(reports, fmt.Sprintf("%s allocated budget to military expansion (spend %s)", c.Name, humanize.Commaf(actual)))
		}
	}

	return reports
}

func estimateEmploymentRatio(countries []*country.State, idx int) float64 {
	if idx < 0 || idx >= len(countries) {
		return 0.9
	}
	c := countries[idx]
	stabilityFactor := float64(c.Stability) / float64(country.MaxMetric)
	approvalFactor := float64(c.Approval) / float64(country.MaxMetric)
	ratio := stabilityFactor*0.6 + approvalFactor*0.4
	return clampF(ratio, 0.4, 1.2)
}

func essentialDebtTarget(countries []*country.State, idx int) float64 {
	c := countries[idx]
	return clampF(c.Fiscal.Debt*c.Fiscal.InterestRate/24.0, 50.0, 300.0)
}

func essentialAdministrationTarget(countries []*country.State, idx int) float64 {
	c := countries[idx]
	return max(c.PopulationMillions*2.0, 35.0)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round(v float64) float64 {
	if v >= 0 {
		return float64(int(v + 0.5))
	}
	return -float64(int(-v + 0.5))
}
