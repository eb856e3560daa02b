package payroll

import "github.com/shopspring/decimal"

// TaxBracket is one slab of the progressive table. UpTo is the upper bound of
// annual income covered by the slab; zero means unbounded (top slab). Rate is
// in percentage points.
type TaxBracket struct {
	UpTo decimal.Decimal
	Rate decimal.Decimal
}

// Policy carries every calculation default that would otherwise be a
// hard-coded constant: proration divisor, fallback figures, statutory
// percentages, and the tax bracket table. A Policy is built once at startup
// and injected into the service, so jurisdiction or company conventions can
// be swapped without code changes.
type Policy struct {
	// DefaultBasicSalary is used when an employee has no base salary
	// configured. Placeholder figure, not a derived value.
	DefaultBasicSalary decimal.Decimal

	// StandardWorkingDays is the fixed per-month divisor for proration.
	StandardWorkingDays decimal.Decimal

	// DefaultPFPercent applies when the company has no provident-fund
	// percentage configured.
	DefaultPFPercent decimal.Decimal

	// DefaultESIPercent applies when the company has no health-insurance
	// percentage configured.
	DefaultESIPercent decimal.Decimal

	// ESIWageCeiling - the contribution applies only when gross earnings do
	// not exceed this figure.
	ESIWageCeiling decimal.Decimal

	// TaxBrackets must be ordered by ascending UpTo, the last slab unbounded.
	TaxBrackets []TaxBracket

	// SynthesizeMissingAttendance enables the placeholder attendance summary
	// for employees with no approved records in the period. Off by default;
	// meant for demo environments only. When off, a missing period resolves
	// to a deterministic zero-attendance summary.
	SynthesizeMissingAttendance bool

	// BatchWorkers bounds the number of concurrent per-employee computations
	// in a company-wide run.
	BatchWorkers int
}

// DefaultPolicy returns the stock policy: /26 proration, 30,000 fallback
// basic, PF 12%, ESI 0.75% under a 21,000 ceiling, and a six-slab tax table.
func DefaultPolicy() Policy {
	return Policy{
		DefaultBasicSalary:  decimal.NewFromInt(30000),
		StandardWorkingDays: decimal.NewFromInt(26),
		DefaultPFPercent:    decimal.NewFromInt(12),
		DefaultESIPercent:   decimal.NewFromFloat(0.75),
		ESIWageCeiling:      decimal.NewFromInt(21000),
		TaxBrackets: []TaxBracket{
			{UpTo: decimal.NewFromInt(300000), Rate: decimal.Zero},
			{UpTo: decimal.NewFromInt(600000), Rate: decimal.NewFromInt(5)},
			{UpTo: decimal.NewFromInt(900000), Rate: decimal.NewFromInt(10)},
			{UpTo: decimal.NewFromInt(1200000), Rate: decimal.NewFromInt(15)},
			{UpTo: decimal.NewFromInt(1500000), Rate: decimal.NewFromInt(20)},
			{Rate: decimal.NewFromInt(30)},
		},
		SynthesizeMissingAttendance: false,
		BatchWorkers:                4,
	}
}
