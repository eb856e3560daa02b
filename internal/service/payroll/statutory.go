package payroll

import "github.com/shopspring/decimal"

// pfContribution computes the provident-fund contribution against the
// prorated basic salary, rounded to the nearest whole unit. A zero or unset
// company percentage falls back to the policy default.
func (p Policy) pfContribution(proratedBasic, companyPFPercent decimal.Decimal) decimal.Decimal {
	pct := companyPFPercent
	if pct.IsZero() {
		pct = p.DefaultPFPercent
	}
	return proratedBasic.Mul(pct).Div(hundred).Round(0)
}

// esiContribution computes the health-insurance contribution against gross
// earnings. It applies only when gross does not exceed the wage ceiling;
// above the ceiling the contribution is zero.
func (p Policy) esiContribution(grossEarnings, companyESIPercent decimal.Decimal) decimal.Decimal {
	if grossEarnings.GreaterThan(p.ESIWageCeiling) {
		return decimal.Zero
	}
	pct := companyESIPercent
	if pct.IsZero() {
		pct = p.DefaultESIPercent
	}
	return grossEarnings.Mul(pct).Div(hundred).Round(0)
}
