package payroll

import (
	"github.com/hrpulse/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CALCULATION DTOs ==========

type CalculatePayrollRequest struct {
	EmployeeID string  `json:"employee_id"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
	PeriodFrom *string `json:"period_from,omitempty"` // "2006-01-02", defaults to first of month
	PeriodTo   *string `json:"period_to,omitempty"`   // "2006-01-02", defaults to last of month
}

func (r *CalculatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	errs = append(errs, validatePeriod(r.Month, r.Year)...)
	if r.PeriodFrom != nil {
		if _, ok := validator.IsValidDate(*r.PeriodFrom); !ok {
			errs = append(errs, validator.ValidationError{Field: "period_from", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.PeriodTo != nil {
		if _, ok := validator.IsValidDate(*r.PeriodTo); !ok {
			errs = append(errs, validator.ValidationError{Field: "period_to", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.PeriodFrom != nil && r.PeriodTo != nil {
		from, okFrom := validator.IsValidDate(*r.PeriodFrom)
		to, okTo := validator.IsValidDate(*r.PeriodTo)
		if okFrom && okTo && to.Before(from) {
			errs = append(errs, validator.ValidationError{Field: "period_to", Message: "must not be before period_from"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunPayrollRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *RunPayrollRequest) Validate() error {
	errs := validatePeriod(r.Month, r.Year)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePeriod(month, year int) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if year < 2020 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2020 or later"})
	}
	return errs
}

// ========== RESULT DTOs ==========

// PayrollResult - The engine's primary output for one employee. Monetary
// totals are rounded to 2 decimal places; tax, PF and ESI are whole units.
type PayrollResult struct {
	EmployeeID       string            `json:"employee_id"`
	EmployeeName     string            `json:"employee_name"`
	EmployeeCode     string            `json:"employee_code"`
	BasicSalary      decimal.Decimal   `json:"basic_salary"` // prorated
	Earnings         []ComponentAmount `json:"earnings"`
	Deductions       []ComponentAmount `json:"deductions"` // statutory lines appended
	GrossEarnings    decimal.Decimal   `json:"gross_earnings"`
	TotalDeductions  decimal.Decimal   `json:"total_deductions"`
	NetSalary        decimal.Decimal   `json:"net_salary"`
	TaxDeducted      decimal.Decimal   `json:"tax_deducted"`
	PFContribution   decimal.Decimal   `json:"pf_contribution"`
	ESIContribution  decimal.Decimal   `json:"esi_contribution"`
	TotalWorkingDays int               `json:"total_working_days"`
	PresentDays      decimal.Decimal   `json:"present_days"`
	AbsentDays       int               `json:"absent_days"`
	LeaveDays        decimal.Decimal   `json:"leave_days"`
	OvertimeHours    decimal.Decimal   `json:"overtime_hours"`
	Month            string            `json:"month"` // month name
	Year             int               `json:"year"`
	Currency         string            `json:"currency"`
}

// BatchEntrySummary - Compact per-employee figures attached to successful
// batch entries.
type BatchEntrySummary struct {
	PresentDays decimal.Decimal `json:"present_days"`
	BasicSalary decimal.Decimal `json:"basic_salary"`
	NetSalary   decimal.Decimal `json:"net_salary"`
}

type BatchEntry struct {
	EmployeeID      string             `json:"employee_id"`
	EmployeeName    string             `json:"employee_name"`
	Success         bool               `json:"success"`
	PayrollRecordID string             `json:"payroll_record_id,omitempty"`
	Error           string             `json:"error,omitempty"`
	Summary         *BatchEntrySummary `json:"summary,omitempty"`
}

type BatchRunResult struct {
	RunID              string          `json:"run_id"`
	Month              string          `json:"month"` // month name
	Year               int             `json:"year"`
	TotalEmployees     int             `json:"total_employees"`
	SuccessCount       int             `json:"success_count"`
	FailedCount        int             `json:"failed_count"`
	TotalPayrollAmount decimal.Decimal `json:"total_payroll_amount"` // successful entries only
	Entries            []BatchEntry    `json:"entries"`
}

// PayrollRecordResponse - Persisted record as returned by the API.
type PayrollRecordResponse struct {
	ID               string            `json:"id"`
	EmployeeID       string            `json:"employee_id"`
	EmployeeName     string            `json:"employee_name"`
	EmployeeCode     string            `json:"employee_code"`
	PeriodMonth      int               `json:"period_month"`
	PeriodYear       int               `json:"period_year"`
	BasicSalary      decimal.Decimal   `json:"basic_salary"`
	Earnings         []ComponentAmount `json:"earnings"`
	Deductions       []ComponentAmount `json:"deductions"`
	GrossEarnings    decimal.Decimal   `json:"gross_earnings"`
	TotalDeductions  decimal.Decimal   `json:"total_deductions"`
	NetSalary        decimal.Decimal   `json:"net_salary"`
	TaxDeducted      decimal.Decimal   `json:"tax_deducted"`
	PFContribution   decimal.Decimal   `json:"pf_contribution"`
	ESIContribution  decimal.Decimal   `json:"esi_contribution"`
	TotalWorkingDays int               `json:"total_working_days"`
	PresentDays      decimal.Decimal   `json:"present_days"`
	AbsentDays       int               `json:"absent_days"`
	LeaveDays        decimal.Decimal   `json:"leave_days"`
	OvertimeHours    decimal.Decimal   `json:"overtime_hours"`
	Status           string            `json:"status"`
	PaidAt           *string           `json:"paid_at,omitempty"`
}
