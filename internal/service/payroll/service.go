package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hrpulse/payroll-backend-go/internal/domain/attendance"
	"github.com/hrpulse/payroll-backend-go/internal/domain/company"
	"github.com/hrpulse/payroll-backend-go/internal/domain/employee"
	"github.com/hrpulse/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	companyRepo    company.CompanyRepository
	attendanceRepo attendance.AttendanceRepository
	policy         Policy
	logger         *slog.Logger
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	attendanceRepo attendance.AttendanceRepository,
	policy Policy,
	logger *slog.Logger,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		companyRepo:    companyRepo,
		attendanceRepo: attendanceRepo,
		policy:         policy,
		logger:         logger,
	}
}

// ========== SINGLE EMPLOYEE ==========

func (s *PayrollServiceImpl) CalculatePayroll(ctx context.Context, companyID string, req payroll.CalculatePayrollRequest) (payroll.PayrollResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResult{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayrollResult{}, err
	}
	if emp.CompanyID != companyID {
		return payroll.PayrollResult{}, employee.ErrEmployeeNotFound
	}
	if emp.EmploymentStatus != employee.EmploymentStatusActive {
		return payroll.PayrollResult{}, employee.ErrEmployeeInactive
	}

	comp, err := s.companyRepo.GetByID(ctx, emp.CompanyID)
	if err != nil {
		return payroll.PayrollResult{}, err
	}

	from, to, err := periodBounds(req.Month, req.Year, req.PeriodFrom, req.PeriodTo)
	if err != nil {
		return payroll.PayrollResult{}, err
	}

	return s.computeEmployee(ctx, comp, emp, req.Month, req.Year, from, to), nil
}

// computeEmployee runs the full calculation for one already-resolved
// employee. Attendance and rule evaluation never fail, so neither does this;
// hard errors (unknown/inactive employee, unknown company) are the caller's
// responsibility.
func (s *PayrollServiceImpl) computeEmployee(
	ctx context.Context,
	comp company.Company,
	emp employee.Employee,
	month, year int,
	from, to time.Time,
) payroll.PayrollResult {
	summary := s.resolveAttendance(ctx, emp.ID, from, to)

	basic := s.policy.DefaultBasicSalary
	if emp.HasBaseSalary() {
		basic = *emp.BaseSalary
	}

	dailyBasic := basic.Div(s.policy.StandardWorkingDays)
	proratedBasic := dailyBasic.Mul(summary.PresentDays).Round(2)

	earnings := s.evaluateEarnings(ctx, comp.ID, emp.ID, proratedBasic, summary, comp.Settings)

	grossEarnings := proratedBasic
	for _, e := range earnings {
		grossEarnings = grossEarnings.Add(e.Amount)
	}
	grossEarnings = grossEarnings.Round(2)

	deductions := s.evaluateDeductions(ctx, comp.ID, emp.ID, proratedBasic, grossEarnings)

	ruleDeductions := decimal.Zero
	for _, d := range deductions {
		ruleDeductions = ruleDeductions.Add(d.Amount)
	}
	ruleDeductions = ruleDeductions.Round(2)

	tax := MonthlyTax(s.policy.TaxBrackets, grossEarnings, year)
	pf := s.policy.pfContribution(proratedBasic, comp.Settings.PFDeductionPercentage)
	esi := s.policy.esiContribution(grossEarnings, comp.Settings.ESIDeductionPercentage)

	totalDeductions := ruleDeductions.Add(pf).Add(esi).Round(2)
	netSalary := grossEarnings.Sub(totalDeductions).Sub(tax).Round(2)

	// Statutory contributions and tax surface as synthetic deduction lines
	// alongside the rule-evaluated ones.
	for _, line := range []payroll.ComponentAmount{
		{Component: "Provident Fund", Amount: pf},
		{Component: "ESI", Amount: esi},
		{Component: "Income Tax", Amount: tax},
	} {
		if line.Amount.IsPositive() {
			deductions = append(deductions, line)
		}
	}

	return payroll.PayrollResult{
		EmployeeID:       emp.ID,
		EmployeeName:     emp.FullName,
		EmployeeCode:     emp.EmployeeCode,
		BasicSalary:      proratedBasic,
		Earnings:         earnings,
		Deductions:       deductions,
		GrossEarnings:    grossEarnings,
		TotalDeductions:  totalDeductions,
		NetSalary:        netSalary,
		TaxDeducted:      tax,
		PFContribution:   pf,
		ESIContribution:  esi,
		TotalWorkingDays: summary.TotalWorkingDays,
		PresentDays:      summary.PresentDays,
		AbsentDays:       summary.AbsentDays,
		LeaveDays:        summary.LeaveDays,
		OvertimeHours:    summary.OvertimeHours,
		Month:            time.Month(month).String(),
		Year:             year,
		Currency:         comp.Settings.CurrencySymbol,
	}
}

// periodBounds resolves the pay period, defaulting to the calendar month.
func periodBounds(month, year int, periodFrom, periodTo *string) (time.Time, time.Time, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	if periodFrom != nil {
		parsed, err := time.Parse("2006-01-02", *periodFrom)
		if err != nil {
			return time.Time{}, time.Time{}, payroll.ErrInvalidPeriod
		}
		from = parsed
	}
	if periodTo != nil {
		parsed, err := time.Parse("2006-01-02", *periodTo)
		if err != nil {
			return time.Time{}, time.Time{}, payroll.ErrInvalidPeriod
		}
		to = parsed
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, payroll.ErrInvalidPeriod
	}
	return from, to, nil
}

// ========== BATCH ==========

func (s *PayrollServiceImpl) GeneratePayrollForAll(ctx context.Context, companyID string, req payroll.RunPayrollRequest) (payroll.BatchRunResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchRunResult{}, err
	}

	comp, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return payroll.BatchRunResult{}, err
	}

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return payroll.BatchRunResult{}, fmt.Errorf("failed to get employees: %w", err)
	}

	from, to, err := periodBounds(req.Month, req.Year, nil, nil)
	if err != nil {
		return payroll.BatchRunResult{}, err
	}

	// Per-employee computations are independent; run them on a bounded pool
	// and write each outcome into its input slot so the report order is
	// deterministic. A cancelled context stops new launches, in-flight
	// computations finish on their own.
	entries := make([]payroll.BatchEntry, len(employees))
	g := new(errgroup.Group)
	g.SetLimit(s.policy.BatchWorkers)
	for i, emp := range employees {
		if ctx.Err() != nil {
			entries[i] = payroll.BatchEntry{
				EmployeeID:   emp.ID,
				EmployeeName: emp.FullName,
				Error:        "run cancelled before computation started",
			}
			continue
		}
		i, emp := i, emp
		g.Go(func() error {
			entries[i] = s.runForEmployee(ctx, comp, emp, req.Month, req.Year, from, to)
			return nil
		})
	}
	_ = g.Wait()

	result := payroll.BatchRunResult{
		RunID:              uuid.NewString(),
		Month:              time.Month(req.Month).String(),
		Year:               req.Year,
		TotalEmployees:     len(employees),
		TotalPayrollAmount: decimal.Zero,
		Entries:            entries,
	}
	for _, entry := range entries {
		if entry.Success {
			result.SuccessCount++
			result.TotalPayrollAmount = result.TotalPayrollAmount.Add(entry.Summary.NetSalary)
		} else {
			result.FailedCount++
		}
	}

	s.logger.Info("payroll batch run finished",
		"company_id", companyID,
		"month", result.Month, "year", result.Year,
		"success", result.SuccessCount, "failed", result.FailedCount)

	return result, nil
}

// runForEmployee computes and persists payroll for one employee of a batch.
// Every failure is folded into the returned entry; a batch run never aborts
// because of a single employee.
func (s *PayrollServiceImpl) runForEmployee(
	ctx context.Context,
	comp company.Company,
	emp employee.Employee,
	month, year int,
	from, to time.Time,
) payroll.BatchEntry {
	entry := payroll.BatchEntry{EmployeeID: emp.ID, EmployeeName: emp.FullName}

	if !emp.HasBaseSalary() {
		hasComponents, err := s.payrollRepo.HasActiveComponents(ctx, comp.ID, emp.ID)
		if err != nil {
			entry.Error = fmt.Sprintf("failed to check salary structure: %v", err)
			return entry
		}
		if !hasComponents {
			entry.Error = payroll.ErrNoSalaryStructure.Error()
			return entry
		}
	}

	if _, err := s.payrollRepo.GetPayrollRecordByEmployeePeriod(ctx, emp.ID, month, year, comp.ID); err == nil {
		entry.Error = payroll.ErrPayrollRecordAlreadyExists.Error()
		return entry
	} else if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
		entry.Error = fmt.Sprintf("failed to check existing payroll record: %v", err)
		return entry
	}

	result := s.computeEmployee(ctx, comp, emp, month, year, from, to)

	created, err := s.payrollRepo.CreatePayrollRecord(ctx, payroll.PayrollRecord{
		EmployeeID:       emp.ID,
		CompanyID:        comp.ID,
		PeriodMonth:      month,
		PeriodYear:       year,
		BasicSalary:      result.BasicSalary,
		Earnings:         result.Earnings,
		Deductions:       result.Deductions,
		GrossEarnings:    result.GrossEarnings,
		TotalDeductions:  result.TotalDeductions,
		NetSalary:        result.NetSalary,
		TaxDeducted:      result.TaxDeducted,
		PFContribution:   result.PFContribution,
		ESIContribution:  result.ESIContribution,
		TotalWorkingDays: result.TotalWorkingDays,
		PresentDays:      result.PresentDays,
		AbsentDays:       result.AbsentDays,
		LeaveDays:        result.LeaveDays,
		OvertimeHours:    result.OvertimeHours,
		Status:           payroll.PayrollStatusCalculated,
	})
	if err != nil {
		entry.Error = fmt.Sprintf("failed to persist payroll record: %v", err)
		return entry
	}

	entry.Success = true
	entry.PayrollRecordID = created.ID
	entry.Summary = &payroll.BatchEntrySummary{
		PresentDays: result.PresentDays,
		BasicSalary: result.BasicSalary,
		NetSalary:   result.NetSalary,
	}
	return entry
}

// ========== RECORDS ==========

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, companyID, id string) (payroll.PayrollRecordResponse, error) {
	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return mapToRecordResponse(record), nil
}

func mapToRecordResponse(r payroll.PayrollRecord) payroll.PayrollRecordResponse {
	var paidAtStr *string
	if r.PaidAt != nil {
		str := r.PaidAt.Format(time.RFC3339)
		paidAtStr = &str
	}

	employeeName := ""
	employeeCode := ""
	if r.EmployeeName != nil {
		employeeName = *r.EmployeeName
	}
	if r.EmployeeCode != nil {
		employeeCode = *r.EmployeeCode
	}

	return payroll.PayrollRecordResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     employeeName,
		EmployeeCode:     employeeCode,
		PeriodMonth:      r.PeriodMonth,
		PeriodYear:       r.PeriodYear,
		BasicSalary:      r.BasicSalary,
		Earnings:         r.Earnings,
		Deductions:       r.Deductions,
		GrossEarnings:    r.GrossEarnings,
		TotalDeductions:  r.TotalDeductions,
		NetSalary:        r.NetSalary,
		TaxDeducted:      r.TaxDeducted,
		PFContribution:   r.PFContribution,
		ESIContribution:  r.ESIContribution,
		TotalWorkingDays: r.TotalWorkingDays,
		PresentDays:      r.PresentDays,
		AbsentDays:       r.AbsentDays,
		LeaveDays:        r.LeaveDays,
		OvertimeHours:    r.OvertimeHours,
		Status:           string(r.Status),
		PaidAt:           paidAtStr,
	}
}
