package game

import (
	"math"

	"github.com/talgya/geopolitics-core/internal/country"
	"github.com/talgya/geopolitics-core/internal/economy"
	"github.com/talgya/geopolitics-core/internal/industry"
)

// distributeIndustryOutcome splits one tick's aggregate industry revenue,
// cost, and GDP contribution evenly across every country, per
// the single-source-of-truth rule: the production
// network itself has no notion of which country it belongs to, so the
// split happens once, here, rather than duplicated per caller.
func distributeIndustryOutcome(outcome industry.TickOutcome, countries []*country.State) {
	count := len(countries)
	if count == 0 {
		return
	}
	perCountry := float64(count)
	revenueShare := outcome.TotalRevenue / perCountry
	costShare := outcome.TotalCost / perCountry
	gdpShare := outcome.TotalGDP / perCountry

	for _, c := range countries {
		if revenueShare > 0 {
			c.FiscalMut().RecordRevenue(economy.Trade, revenueShare)
		}
		if costShare > 0 {
			c.FiscalMut().RecordExpense(economy.IndustrySupport, costShare)
		}
		if math.Abs(gdpShare) > 1e-9 {
			c.GDP = max(c.GDP+gdpShare, 0)
		}
	}
}
