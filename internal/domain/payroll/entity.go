package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentType enum
type ComponentType string

const (
	ComponentTypeEarning   ComponentType = "earning"
	ComponentTypeDeduction ComponentType = "deduction"
)

// CalculationType enum. The formula variants are selected explicitly at
// rule-authoring time rather than inferred from the component name.
type CalculationType string

const (
	CalcTypeFixed           CalculationType = "fixed"
	CalcTypePercentage      CalculationType = "percentage"
	CalcTypeOvertimeFormula CalculationType = "overtime_formula"
	CalcTypeAttendanceRate  CalculationType = "attendance_rate"
)

// PercentageBase enum, only meaningful for CalcTypePercentage.
type PercentageBase string

const (
	PercentageOfBasic PercentageBase = "basic"
	PercentageOfGross PercentageBase = "gross"
)

// CategoryBasic marks the base-salary component; it is prorated separately
// and never re-evaluated as a rule.
const CategoryBasic = "basic"

// SalaryComponent - A configurable earning or deduction rule. EmployeeID nil
// means the rule is company-wide and applies to every employee that has no
// employee-scoped rules of the same type.
type SalaryComponent struct {
	ID              string
	CompanyID       string
	EmployeeID      *string
	Name            string
	Category        string
	Type            ComponentType
	CalculationType CalculationType
	Value           decimal.Decimal
	PercentageOf    PercentageBase
	IsTaxable       bool
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AttendanceSummary - Aggregate over one pay period. Present and leave days
// carry half-day granularity. Synthesized is set when no approved records
// existed and the summary was derived instead of aggregated.
type AttendanceSummary struct {
	TotalWorkingDays int
	PresentDays      decimal.Decimal
	AbsentDays       int
	LeaveDays        decimal.Decimal
	OvertimeHours    decimal.Decimal
	Synthesized      bool
}

// ComponentAmount - One evaluated earning or deduction line.
type ComponentAmount struct {
	Component string          `json:"component"`
	Amount    decimal.Decimal `json:"amount"`
	IsTaxable bool            `json:"is_taxable"`
}

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusCalculated PayrollStatus = "calculated"
	PayrollStatusPaid       PayrollStatus = "paid"
)

// PayrollRecord - Persisted result of one employee computation.
type PayrollRecord struct {
	ID               string
	EmployeeID       string
	CompanyID        string
	PeriodMonth      int
	PeriodYear       int
	BasicSalary      decimal.Decimal
	Earnings         []ComponentAmount
	Deductions       []ComponentAmount
	GrossEarnings    decimal.Decimal
	TotalDeductions  decimal.Decimal
	NetSalary        decimal.Decimal
	TaxDeducted      decimal.Decimal
	PFContribution   decimal.Decimal
	ESIContribution  decimal.Decimal
	TotalWorkingDays int
	PresentDays      decimal.Decimal
	AbsentDays       int
	LeaveDays        decimal.Decimal
	OvertimeHours    decimal.Decimal
	Status           PayrollStatus
	PaidAt           *time.Time
	PaidBy           *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}
