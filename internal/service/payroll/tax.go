package payroll

import "github.com/shopspring/decimal"

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// MonthlyTax estimates the monthly withholding for a gross monthly income by
// annualizing it, filling the progressive brackets, and dividing back by 12.
// The result is rounded to the nearest whole unit. taxYear is accepted for
// forward extensibility; the bracket table is currently year-invariant.
func MonthlyTax(brackets []TaxBracket, grossMonthly decimal.Decimal, taxYear int) decimal.Decimal {
	_ = taxYear

	annual := grossMonthly.Mul(twelve)
	if !annual.IsPositive() {
		return decimal.Zero
	}

	tax := decimal.Zero
	lower := decimal.Zero
	for _, b := range brackets {
		if annual.LessThanOrEqual(lower) {
			break
		}
		slab := annual.Sub(lower)
		if !b.UpTo.IsZero() && annual.GreaterThan(b.UpTo) {
			slab = b.UpTo.Sub(lower)
		}
		tax = tax.Add(slab.Mul(b.Rate).Div(hundred))
		if b.UpTo.IsZero() {
			break
		}
		lower = b.UpTo
	}

	return tax.Div(twelve).Round(0)
}
