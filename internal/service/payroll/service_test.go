package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/hrpulse/payroll-backend-go/internal/domain/attendance"
	"github.com/hrpulse/payroll-backend-go/internal/domain/company"
	"github.com/hrpulse/payroll-backend-go/internal/domain/employee"
	"github.com/hrpulse/payroll-backend-go/internal/domain/payroll"
	"github.com/hrpulse/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullMonthAttendance(employeeIDs ...string) *stubAttendanceRepo {
	records := map[string][]attendance.Attendance{}
	for _, id := range employeeIDs {
		records[id] = presentRecords(id, junFrom, 26, decimal.Zero)
	}
	return &stubAttendanceRepo{records: records}
}

func TestCalculatePayrollFullMonth(t *testing.T) {
	// 26,000 basic over 26 working days, all present, no rule components:
	// prorated basic stays 26,000, PF 12% = 3,120, ESI skipped above the
	// 21,000 ceiling, tax on annualized 312,000 = 50/month.
	svc := newTestService(
		&stubPayrollRepo{},
		&stubEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": testEmployee("emp-1", "0001", salaryPtr(26000)),
		}},
		&stubCompanyRepo{companies: map[string]company.Company{"comp-1": testCompany(12, 0.75, 150)}},
		fullMonthAttendance("emp-1"),
		DefaultPolicy(),
	)

	result, err := svc.CalculatePayroll(context.Background(), "comp-1", payroll.CalculatePayrollRequest{
		EmployeeID: "emp-1", Month: 6, Year: 2025,
	})
	require.NoError(t, err)

	assert.True(t, result.BasicSalary.Equal(decimal.NewFromInt(26000)), "prorated basic %s", result.BasicSalary)
	assert.True(t, result.GrossEarnings.Equal(decimal.NewFromInt(26000)))
	assert.True(t, result.PFContribution.Equal(decimal.NewFromInt(3120)), "pf %s", result.PFContribution)
	assert.True(t, result.ESIContribution.IsZero(), "esi %s", result.ESIContribution)
	assert.True(t, result.TaxDeducted.Equal(decimal.NewFromInt(50)), "tax %s", result.TaxDeducted)
	assert.True(t, result.TotalDeductions.Equal(decimal.NewFromInt(3120)))
	assert.True(t, result.NetSalary.Equal(decimal.NewFromInt(22830)), "net %s", result.NetSalary)
	assert.Equal(t, "June", result.Month)
	assert.Equal(t, 2025, result.Year)
	assert.Equal(t, 26, result.TotalWorkingDays)
	assert.Empty(t, result.Earnings)

	// PF and tax surface as deduction lines; the zero ESI line is dropped.
	require.Len(t, result.Deductions, 2)
	assert.Equal(t, "Provident Fund", result.Deductions[0].Component)
	assert.Equal(t, "Income Tax", result.Deductions[1].Component)
	assert.False(t, result.Deductions[0].IsTaxable)
}

func TestCalculatePayrollESIApplies(t *testing.T) {
	svc := newTestService(
		&stubPayrollRepo{},
		&stubEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": testEmployee("emp-1", "0001", salaryPtr(20800)),
		}},
		&stubCompanyRepo{companies: map[string]company.Company{"comp-1": testCompany(12, 0.75, 150)}},
		fullMonthAttendance("emp-1"),
		DefaultPolicy(),
	)

	result, err := svc.CalculatePayroll(context.Background(), "comp-1", payroll.CalculatePayrollRequest{
		EmployeeID: "emp-1", Month: 6, Year: 2025,
	})
	require.NoError(t, err)

	assert.True(t, result.GrossEarnings.Equal(decimal.NewFromInt(20800)))
	assert.True(t, result.PFContribution.Equal(decimal.NewFromInt(2496)))
	assert.True(t, result.ESIContribution.Equal(decimal.NewFromInt(156)), "esi %s", result.ESIContribution)
	assert.True(t, result.TaxDeducted.IsZero())
	assert.True(t, result.NetSalary.Equal(decimal.NewFromInt(18148)), "net %s", result.NetSalary)
}

func TestCalculatePayrollNetIdentity(t *testing.T) {
	grossPct := employeeScoped("Welfare Fund", payroll.CalcTypePercentage, 5, payroll.ComponentTypeDeduction)
	grossPct.PercentageOf = payroll.PercentageOfGross

	attendanceRepo := &stubAttendanceRepo{records: map[string][]attendance.Attendance{
		"emp-1": presentRecords("emp-1", junFrom, 24, decimal.Zero),
	}}
	svc := newTestService(
		&stubPayrollRepo{components: []payroll.SalaryComponent{
			employeeScoped("Shift Allowance", payroll.CalcTypeFixed, 2000, payroll.ComponentTypeEarning),
			grossPct,
		}},
		&stubEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": testEmployee("emp-1", "0001", salaryPtr(26000)),
		}},
		&stubCompanyRepo{companies: map[string]company.Company{"comp-1": testCompany(12, 0.75, 150)}},
		attendanceRepo,
		DefaultPolicy(),
	)

	result, err := svc.CalculatePayroll(context.Background(), "comp-1", payroll.CalculatePayrollRequest{
		EmployeeID: "emp-1", Month: 6, Year: 2025,
	})
	require.NoError(t, err)

	// 24/26 of 26,000 = 24,000 prorated; +2,000 earning = 26,000 gross.
	assert.True(t, result.BasicSalary.Equal(decimal.NewFromInt(24000)))
	assert.True(t, result.GrossEarnings.Equal(decimal.NewFromInt(26000)))

	ruleDeductions := decimal.NewFromInt(1300) // 5% of gross
	expectedTotal := ruleDeductions.Add(result.PFContribution).Add(result.ESIContribution)
	assert.True(t, result.TotalDeductions.Equal(expectedTotal),
		"total %s, expected %s", result.TotalDeductions, expectedTotal)

	identity := result.GrossEarnings.Sub(result.TotalDeductions).Sub(result.TaxDeducted).Round(2)
	assert.True(t, result.NetSalary.Equal(identity),
		"net %s must equal gross-total-tax %s", result.NetSalary, identity)

	// Rounding an already-rounded total is a no-op.
	assert.True(t, result.NetSalary.Equal(result.NetSalary.Round(2)))
}

func TestCalculatePayrollBasicSalaryFallback(t *testing.T) {
	svc := newTestService(
		&stubPayrollRepo{},
		&stubEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": testEmployee("emp-1", "0001", nil),
		}},
		&stubCompanyRepo{companies: map[string]company.Company{"comp-1": testCompany(12, 0.75, 150)}},
		fullMonthAttendance("emp-1"),
		DefaultPolicy(),
	)

	result, err := svc.CalculatePayroll(context.Background(), "comp-1", payroll.CalculatePayrollRequest{
		EmployeeID: "emp-1", Month: 6, Year: 2025,
	})
	require.NoError(t, err)

	// No configured base salary: the policy placeholder applies.
	assert.True(t, result.BasicSalary.Equal(decimal.NewFromInt(30000)), "prorated basic %s", result.BasicSalary)
}

func TestCalculatePayrollHardErrors(t *testing.T) {
	inactiveEmp := testEmployee("emp-2", "0002", salaryPtr(26000))
	inactiveEmp.EmploymentStatus = employee.EmploymentStatusResigned
	foreignEmp := testEmployee("emp-3", "0003", salaryPtr(26000))
	foreignEmp.CompanyID = "comp-other"
	orphanEmp := testEmployee("emp-4", "0004", salaryPtr(26000))
	orphanEmp.CompanyID = "comp-gone"

	svc := newTestService(
		&stubPayrollRepo{},
		&stubEmployeeRepo{employees: map[string]employee.Employee{
			"emp-2": inactiveEmp,
			"emp-3": foreignEmp,
			"emp-4": orphanEmp,
		}},
		&stubCompanyRepo{companies: map[string]company.Company{"comp-1": testCompany(12, 0.75, 150)}},
		&stubAttendanceRepo{},
		DefaultPolicy(),
	)

	req := func(id string) payroll.CalculatePayrollRequest {
		return payroll.CalculatePayrollRequest{EmployeeID: id, Month: 6, Year: 2025}
	}

	_, err := svc.CalculatePayroll(context.Background(), "comp-1", req("emp-unknown"))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.CalculatePayroll(context.Background(), "comp-1", req("emp-2"))
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)

	// Cross-company lookups must not leak the employee's existence.
	_, err = svc.CalculatePayroll(context.Background(), "comp-1", req("emp-3"))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.CalculatePayroll(context.Background(), "comp-gone", req("emp-4"))
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestCalculatePayrollValidation(t *testing.T) {
	svc := newTestService(&stubPayrollRepo{}, &stubEmployeeRepo{}, &stubCompanyRepo{}, &stubAttendanceRepo{}, DefaultPolicy())

	_, err := svc.CalculatePayroll(context.Background(), "comp-1", payroll.CalculatePayrollRequest{
		EmployeeID: "", Month: 13, Year: 2019,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	details := verrs.ToMap()
	assert.Contains(t, details, "employee_id")
	assert.Contains(t, details, "month")
	assert.Contains(t, details, "year")
}

func TestGeneratePayrollForAll(t *testing.T) {
	e4ID := "emp-4"
	payrollRepo := &stubPayrollRepo{components: []payroll.SalaryComponent{
		{
			CompanyID: "comp-1", EmployeeID: &e4ID, Name: "Retainer",
			Type: payroll.ComponentTypeEarning, CalculationType: payroll.CalcTypeFixed,
			Value: decimal.NewFromInt(1000), IsActive: true,
		},
	}}
	svc := newTestService(
		payrollRepo,
		&stubEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": testEmployee("emp-1", "0001", salaryPtr(26000)),
			"emp-2": testEmployee("emp-2", "0002", nil), // no salary, no rules
			"emp-3": testEmployee("emp-3", "0003", salaryPtr(20800)),
			"emp-4": testEmployee("emp-4", "0004", nil), // no salary, has a rule
		}},
		&stubCompanyRepo{companies: map[string]company.Company{"comp-1": testCompany(12, 0.75, 150)}},
		fullMonthAttendance("emp-1", "emp-3"),
		DefaultPolicy(),
	)

	result, err := svc.GeneratePayrollForAll(context.Background(), "comp-1", payroll.RunPayrollRequest{Month: 6, Year: 2025})
	require.NoError(t, err, "a batch run must not fail for individual employees")

	assert.Equal(t, 4, result.TotalEmployees)
	assert.Equal(t, 3, result.SuccessCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Equal(t, "June", result.Month)
	assert.NotEmpty(t, result.RunID)

	// Entries preserve the input employee order.
	require.Len(t, result.Entries, 4)
	assert.Equal(t, "emp-1", result.Entries[0].EmployeeID)
	assert.Equal(t, "emp-2", result.Entries[1].EmployeeID)
	assert.Equal(t, "emp-3", result.Entries[2].EmployeeID)
	assert.Equal(t, "emp-4", result.Entries[3].EmployeeID)

	failed := result.Entries[1]
	assert.False(t, failed.Success)
	assert.Contains(t, failed.Error, "no salary structure configured")
	assert.Nil(t, failed.Summary)

	first := result.Entries[0]
	require.True(t, first.Success)
	assert.NotEmpty(t, first.PayrollRecordID)
	require.NotNil(t, first.Summary)
	assert.True(t, first.Summary.NetSalary.Equal(decimal.NewFromInt(22830)))
	assert.True(t, first.Summary.BasicSalary.Equal(decimal.NewFromInt(26000)))
	assert.True(t, first.Summary.PresentDays.Equal(decimal.NewFromInt(26)))

	// emp-4 has no base salary but does have a rule: the placeholder basic
	// never applies to gross here because zero attendance prorates it away;
	// the fixed earning alone funds the slip. 1,000 gross − 8 ESI = 992.
	fourth := result.Entries[3]
	require.True(t, fourth.Success)
	assert.True(t, fourth.Summary.NetSalary.Equal(decimal.NewFromInt(992)), "net %s", fourth.Summary.NetSalary)

	// Total is the sum over successful entries only.
	expectedTotal := decimal.NewFromInt(22830 + 18148 + 992)
	assert.True(t, result.TotalPayrollAmount.Equal(expectedTotal), "total %s", result.TotalPayrollAmount)

	// Each success was persisted with status calculated.
	assert.Len(t, payrollRepo.records, 3)
	for _, rec := range payrollRepo.records {
		assert.Equal(t, payroll.PayrollStatusCalculated, rec.Status)
	}
}

func TestGeneratePayrollForAllCompanyNotFound(t *testing.T) {
	svc := newTestService(&stubPayrollRepo{}, &stubEmployeeRepo{}, &stubCompanyRepo{companies: map[string]company.Company{}}, &stubAttendanceRepo{}, DefaultPolicy())

	_, err := svc.GeneratePayrollForAll(context.Background(), "comp-missing", payroll.RunPayrollRequest{Month: 6, Year: 2025})
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestGeneratePayrollForAllDuplicatePeriod(t *testing.T) {
	payrollRepo := &stubPayrollRepo{}
	svc := newTestService(
		payrollRepo,
		&stubEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": testEmployee("emp-1", "0001", salaryPtr(26000)),
		}},
		&stubCompanyRepo{companies: map[string]company.Company{"comp-1": testCompany(12, 0.75, 150)}},
		fullMonthAttendance("emp-1"),
		DefaultPolicy(),
	)

	first, err := svc.GeneratePayrollForAll(context.Background(), "comp-1", payroll.RunPayrollRequest{Month: 6, Year: 2025})
	require.NoError(t, err)
	require.Equal(t, 1, first.SuccessCount)

	second, err := svc.GeneratePayrollForAll(context.Background(), "comp-1", payroll.RunPayrollRequest{Month: 6, Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, 0, second.SuccessCount)
	assert.Equal(t, 1, second.FailedCount)
	assert.Contains(t, second.Entries[0].Error, "already exists")
	assert.Len(t, payrollRepo.records, 1)
}

func TestGeneratePayrollForAllCancelled(t *testing.T) {
	svc := newTestService(
		&stubPayrollRepo{},
		&stubEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": testEmployee("emp-1", "0001", salaryPtr(26000)),
			"emp-2": testEmployee("emp-2", "0002", salaryPtr(26000)),
		}},
		&stubCompanyRepo{companies: map[string]company.Company{"comp-1": testCompany(12, 0.75, 150)}},
		fullMonthAttendance("emp-1", "emp-2"),
		DefaultPolicy(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := svc.GeneratePayrollForAll(ctx, "comp-1", payroll.RunPayrollRequest{Month: 6, Year: 2025})
	require.NoError(t, err)

	// No new computations start after cancellation; outcomes are still reported.
	assert.Equal(t, 0, result.SuccessCount)
	assert.Equal(t, 2, result.FailedCount)
	for _, entry := range result.Entries {
		assert.Contains(t, entry.Error, "cancelled")
	}
}

func TestGetRecord(t *testing.T) {
	payrollRepo := &stubPayrollRepo{}
	svc := newTestService(
		payrollRepo,
		&stubEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": testEmployee("emp-1", "0001", salaryPtr(26000)),
		}},
		&stubCompanyRepo{companies: map[string]company.Company{"comp-1": testCompany(12, 0.75, 150)}},
		fullMonthAttendance("emp-1"),
		DefaultPolicy(),
	)

	run, err := svc.GeneratePayrollForAll(context.Background(), "comp-1", payroll.RunPayrollRequest{Month: 6, Year: 2025})
	require.NoError(t, err)
	recordID := run.Entries[0].PayrollRecordID

	record, err := svc.GetRecord(context.Background(), "comp-1", recordID)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", record.EmployeeID)
	assert.Equal(t, 6, record.PeriodMonth)
	assert.Equal(t, 2025, record.PeriodYear)
	assert.Equal(t, string(payroll.PayrollStatusCalculated), record.Status)
	assert.True(t, record.NetSalary.Equal(decimal.NewFromInt(22830)))

	_, err = svc.GetRecord(context.Background(), "comp-1", "missing-id")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)

	// Records are invisible outside their company.
	_, err = svc.GetRecord(context.Background(), "comp-other", recordID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestPeriodBounds(t *testing.T) {
	from, to, err := periodBounds(6, 2025, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC), to)

	// February of a leap year.
	_, to, err = periodBounds(2, 2024, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 29, to.Day())

	customFrom, customTo := "2025-06-10", "2025-06-20"
	from, to, err = periodBounds(6, 2025, &customFrom, &customTo)
	require.NoError(t, err)
	assert.Equal(t, 10, from.Day())
	assert.Equal(t, 20, to.Day())

	inverted := "2025-06-01"
	_, _, err = periodBounds(6, 2025, &customTo, &inverted)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}
