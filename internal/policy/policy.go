// Package policy implements the daily per-country fiscal policy
// resolution: core-minimum enforcement, reserve bonuses, resource-shortage
// stalls, and the fiscal debt cycle.
package policy

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/talgya/geopolitics-core/internal/country"
	"github.com/talgya/geopolitics-core/internal/economy"
)

const (
	minDebtServiceFloor       = 40.0
	minAdministrationFloor    = 35.0
	administrationPerCapita   = 2.0
	debtServiceDailyFraction  = 1.0 / 360.0
	resourceShortageThreshold = 25
	resourceShortageGDPHit    = 20.0
	epsilon                   = 1e-9
)

// Resolve runs the daily policy pass over every country, returning report
// messages for whatever actually happened.
func Resolve(countries []*country.State) []string {
	var reports []string
	for _, c := range countries {
		reports = append(reports, resolveOne(c)...)
	}
	slog.Debug("policy resolution complete", "countries", len(countries), "reports", len(reports))
	return reports
}

func resolveOne(c *country.State) []string {
	var reports []string
	allocation := c.Allocations()
	gdp := max(c.GDP, 0)

	if allocation.EnsureCoreMinimum {
		minDebt := max(c.Fiscal.Debt*c.Fiscal.InterestRate*debtServiceDailyFraction, minDebtServiceFloor)
		allocatedDebt := max(gdp*(allocation.DebtService/100.0), 0)
		if allocatedDebt+epsilon < minDebt {
			c.Fiscal.AddDebt(minDebt * 0.2)
			c.Fiscal.DowngradeRating()
			slog.Info("debt service underfunded", "country", c.Name, "min_debt", minDebt, "allocated", allocatedDebt)
			reports = append(reports, fmt.Sprintf("%s has underfunded debt service, credit rating downgraded", c.Name))
		}

		adminTarget := essentialAdministrationTarget(c)
		allocatedAdmin := max(gdp*(allocation.Administration/100.0), 0)
		if allocatedAdmin+epsilon < adminTarget {
			c.ApplyStabilityDelta(-2)
			slog.Info("administration underfunded", "country", c.Name, "target", adminTarget, "allocated", allocatedAdmin)
			reports = append(reports, fmt.Sprintf("%s has underfunded administration, stability is eroding", c.Name))
		}
	}

	requested := allocation.TotalRequestedAmount(gdp)
	reserveBonus := min(requested*0.05, c.CashReserve()*0.02)
	if reserveBonus > 0 {
		c.Fiscal.RecordRevenue(economy.OtherRevenue, reserveBonus)
		slog.Debug("reserve bonus accrued", "country", c.Name, "amount", reserveBonus)
		reports = append(reports, fmt.Sprintf("%s has built up a reserve bonus of %s", c.Name, humanize.Commaf(reserveBonus)))
	}

	if c.Resources < resourceShortageThreshold {
		c.ApplyGDPDelta(-resourceShortageGDPHit)
		slog.Debug("production stalled on resource shortage", "country", c.Name, "resources", c.Resources)
		reports = append(reports, fmt.Sprintf("%s is suffering stalled production due to resource shortages", c.Name))
	}

	outcome := c.FiscalMut().UpdateFiscalCycle(gdp)
	if outcome.InterestPaid > 0 {
		slog.Debug("interest paid", "country", c.Name, "amount", outcome.InterestPaid)
		reports = append(reports, fmt.Sprintf("%s paid %s in interest", c.Name, humanize.Commaf(outcome.InterestPaid)))
	}
	if outcome.PrincipalRepaid > 0 {
		slog.Debug("principal repaid", "country", c.Name, "amount", outcome.PrincipalRepaid)
		reports = append(reports, fmt.Sprintf("%s repaid %s of principal", c.Name, humanize.Commaf(outcome.PrincipalRepaid)))
	}
	if outcome.NewIssuance > 0 {
		slog.Debug("new debt issued", "country", c.Name, "amount", outcome.NewIssuance)
		reports = append(reports, fmt.Sprintf("%s issued %s in new debt to cover liquidity needs", c.Name, humanize.Commaf(outcome.NewIssuance)))
	}
	if outcome.Downgraded {
		slog.Info("credit rating downgraded", "country", c.Name, "rating", outcome.NewRating)
		reports = append(reports, fmt.Sprintf("%s's credit rating was downgraded to %s", c.Name, outcome.NewRating))
	}
	if outcome.CrisisMessage != "" {
		reports = append(reports, outcome.CrisisMessage)
	}

	return reports
}

func essentialAdministrationTarget(c *country.State) float64 {
	return max(c.PopulationMillions*administrationPerCapita, minAdministrationFloor)
}
