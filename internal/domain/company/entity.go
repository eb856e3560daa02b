package company

import (
	"time"

	"github.com/shopspring/decimal"
)

type Company struct {
	ID        string
	Name      string
	Username  string
	Settings  Settings
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Settings - Per-company payroll configuration. Treated as immutable for the
// duration of a single calculation run.
type Settings struct {
	OvertimeRatePerHour    decimal.Decimal
	PFDeductionPercentage  decimal.Decimal
	ESIDeductionPercentage decimal.Decimal
	CurrencySymbol         string
}
