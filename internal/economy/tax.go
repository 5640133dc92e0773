package economy

const (
	minTaxRate = 0.0
	maxTaxRate = 0.6
)

// TaxPolicyConfig is the externally-supplied (already-parsed) configuration
// for a country's TaxPolicy. Zero-value fields fall back to the documented
// defaults via NewTaxPolicy.
type TaxPolicyConfig struct {
	IncomeRate             *float64
	CorporateRate          *float64
	ConsumptionRate        *float64
	Deductions             float64
	GDPSensitivity         *float64
	EmploymentSensitivity  *float64
}

// TaxOutcome is the result of one TaxPolicy.Collect call.
type TaxOutcome struct {
	Immediate float64
	Deferred  float64
}

// TaxPolicy models a country's tax rates and the one-tick-lagged portion of
// collected revenue that is recognized the following tick.
type TaxPolicy struct {
	IncomeRate            float64
	CorporateRate         float64
	ConsumptionRate       float64
	Deductions            float64
	GDPSensitivity        float64
	EmploymentSensitivity float64
	laggedRevenue         float64
}

// DefaultTaxPolicyConfig returns the documented default rates.
func DefaultTaxPolicyConfig() TaxPolicyConfig {
	income, corporate, consumption := 0.18, 0.22, 0.08
	gdpSens, empSens := 0.25, 0.20
	return TaxPolicyConfig{
		IncomeRate:            &income,
		CorporateRate:         &corporate,
		ConsumptionRate:       &consumption,
		GDPSensitivity:        &gdpSens,
		EmploymentSensitivity: &empSens,
	}
}

// NewTaxPolicy builds a TaxPolicy from config, clamping every rate into its
// declared domain and filling unset fields with defaults.
func NewTaxPolicy(config TaxPolicyConfig) *TaxPolicy {
	defaults := DefaultTaxPolicyConfig()
	pick := func(v *float64, d *float64) float64 {
		if v != nil {
			return *v
		}
		return *d
	}
	return &TaxPolicy{
		IncomeRate:            clamp(pick(config.IncomeRate, defaults.IncomeRate), minTaxRate, maxTaxRate),
		CorporateRate:         clamp(pick(config.CorporateRate, defaults.CorporateRate), minTaxRate, maxTaxRate),
		ConsumptionRate:       clamp(pick(config.ConsumptionRate, defaults.ConsumptionRate), minTaxRate, maxTaxRate),
		Deductions:            max(config.Deductions, 0),
		GDPSensitivity:        clamp(pick(config.GDPSensitivity, defaults.GDPSensitivity), -1, 1),
		EmploymentSensitivity: clamp(pick(config.EmploymentSensitivity, defaults.EmploymentSensitivity), -1, 1),
	}
}

// DefaultTaxPolicy returns a TaxPolicy with every rate at its default.
func DefaultTaxPolicy() *TaxPolicy {
	return NewTaxPolicy(DefaultTaxPolicyConfig())
}

// PendingRevenue returns the deferred amount carried into the next Collect
// call.
func (t *TaxPolicy) PendingRevenue() float64 {
	return t.laggedRevenue
}

// Collect computes this tick's tax revenue split into an immediately
// recognized portion (0.7 of the adjusted gross, plus last tick's deferred
// carry-over) and a deferred portion (0.3, recognized next tick).
func (t *TaxPolicy) Collect(gdp, employmentRatio, scale float64) TaxOutcome {
	gdpScaled := max(gdp, 0)
	incomeBase := gdpScaled * 0.45 * t.IncomeRate
	corporateBase := gdpScaled * 0.35 * t.CorporateRate
	consumptionBase := gdpScaled * 0.20 * t.ConsumptionRate
	gross := incomeBase + corporateBase + consumptionBase

	deduction := min(t.Deductions, gross*0.4)
	structural := max(gross-deduction, 0)

	gdpFactor := 1 + t.GDPSensitivity*((gdpScaled/1500.0)-1)
	employmentFactor := 1 + t.EmploymentSensitivity*(employmentRatio-0.9)
	adjusted := max(structural*gdpFactor*employmentFactor, 0) * scale

	immediate := adjusted*0.7 + t.laggedRevenue
	deferred := adjusted * 0.3
	t.laggedRevenue = deferred

	return TaxOutcome{Immediate: immediate, Deferred: deferred}
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
