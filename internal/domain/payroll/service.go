package payroll

import "context"

type PayrollService interface {
	// CalculatePayroll computes one employee's payroll for a period without
	// persisting anything. Fails hard on unknown, inactive, or cross-company
	// employees.
	CalculatePayroll(ctx context.Context, companyID string, req CalculatePayrollRequest) (PayrollResult, error)

	// GeneratePayrollForAll runs the engine across every active employee of
	// the company and persists each successful result. Individual employee
	// failures are recorded in the returned report, never propagated.
	GeneratePayrollForAll(ctx context.Context, companyID string, req RunPayrollRequest) (BatchRunResult, error)

	GetRecord(ctx context.Context, companyID, id string) (PayrollRecordResponse, error)
}
