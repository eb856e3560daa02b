package payroll

import "context"

// PayrollRepository defines data access methods for payroll.
// All methods include companyID parameter to prevent cross-company data access.
type PayrollRepository interface {
	// Components. Both methods return active rules only; employee-scoped and
	// company-wide rules are separate queries because the evaluator applies
	// fallback precedence between them.
	GetEmployeeComponents(ctx context.Context, companyID, employeeID string) ([]SalaryComponent, error)
	GetCompanyComponents(ctx context.Context, companyID string) ([]SalaryComponent, error)
	// HasActiveComponents reports whether any active rule (employee-scoped or
	// company-wide) applies to the employee.
	HasActiveComponents(ctx context.Context, companyID, employeeID string) (bool, error)

	// Payroll Records
	CreatePayrollRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetPayrollRecordByID(ctx context.Context, id, companyID string) (PayrollRecord, error)
	GetPayrollRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (PayrollRecord, error)
}
