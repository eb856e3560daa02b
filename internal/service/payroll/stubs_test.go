package payroll

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hrpulse/payroll-backend-go/internal/domain/attendance"
	"github.com/hrpulse/payroll-backend-go/internal/domain/company"
	"github.com/hrpulse/payroll-backend-go/internal/domain/employee"
	"github.com/hrpulse/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// In-memory repository stubs. The batch runner computes employees
// concurrently, so every mutating stub is mutex-guarded.

type stubEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (s *stubEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *stubEmployeeRepo) GetActiveByCompanyID(_ context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range s.employees {
		if emp.CompanyID == companyID && emp.EmploymentStatus == employee.EmploymentStatusActive {
			out = append(out, emp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	return out, nil
}

type stubCompanyRepo struct {
	companies map[string]company.Company
}

func (s *stubCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	comp, ok := s.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return comp, nil
}

type stubAttendanceRepo struct {
	records map[string][]attendance.Attendance
	err     error
}

func (s *stubAttendanceRepo) GetApprovedByEmployeeRange(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []attendance.Attendance
	for _, rec := range s.records[employeeID] {
		if rec.IsApproved && !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type stubPayrollRepo struct {
	mu         sync.Mutex
	components []payroll.SalaryComponent
	records    []payroll.PayrollRecord
	createErr  error
}

func (s *stubPayrollRepo) GetEmployeeComponents(_ context.Context, companyID, employeeID string) ([]payroll.SalaryComponent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []payroll.SalaryComponent
	for _, c := range s.components {
		if c.CompanyID == companyID && c.EmployeeID != nil && *c.EmployeeID == employeeID && c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubPayrollRepo) GetCompanyComponents(_ context.Context, companyID string) ([]payroll.SalaryComponent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []payroll.SalaryComponent
	for _, c := range s.components {
		if c.CompanyID == companyID && c.EmployeeID == nil && c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubPayrollRepo) HasActiveComponents(_ context.Context, companyID, employeeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.components {
		if c.CompanyID != companyID || !c.IsActive {
			continue
		}
		if c.EmployeeID == nil || *c.EmployeeID == employeeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubPayrollRepo) CreatePayrollRecord(_ context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return payroll.PayrollRecord{}, s.createErr
	}
	record.ID = uuid.NewString()
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	s.records = append(s.records, record)
	return record, nil
}

func (s *stubPayrollRepo) GetPayrollRecordByID(_ context.Context, id, companyID string) (payroll.PayrollRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.ID == id && rec.CompanyID == companyID {
			return rec, nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (s *stubPayrollRepo) GetPayrollRecordByEmployeePeriod(_ context.Context, employeeID string, month, year int, companyID string) (payroll.PayrollRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.EmployeeID == employeeID && rec.PeriodMonth == month && rec.PeriodYear == year && rec.CompanyID == companyID {
			return rec, nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

// ========== FIXTURES ==========

func newTestService(
	payrollRepo *stubPayrollRepo,
	employeeRepo *stubEmployeeRepo,
	companyRepo *stubCompanyRepo,
	attendanceRepo *stubAttendanceRepo,
	policy Policy,
) *PayrollServiceImpl {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewPayrollService(payrollRepo, employeeRepo, companyRepo, attendanceRepo, policy, logger)
	return svc.(*PayrollServiceImpl)
}

func testCompany(pfPercent, esiPercent, overtimeRate float64) company.Company {
	return company.Company{
		ID:   "comp-1",
		Name: "Acme Industries",
		Settings: company.Settings{
			OvertimeRatePerHour:    decimal.NewFromFloat(overtimeRate),
			PFDeductionPercentage:  decimal.NewFromFloat(pfPercent),
			ESIDeductionPercentage: decimal.NewFromFloat(esiPercent),
			CurrencySymbol:         "₹",
		},
	}
}

func testEmployee(id, code string, baseSalary *decimal.Decimal) employee.Employee {
	return employee.Employee{
		ID:               id,
		CompanyID:        "comp-1",
		EmployeeCode:     code,
		FullName:         "Employee " + code,
		EmploymentStatus: employee.EmploymentStatusActive,
		BaseSalary:       baseSalary,
	}
}

func salaryPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// presentRecords builds n approved present-day records starting at the given
// date, one per calendar day.
func presentRecords(employeeID string, start time.Time, n int, overtimePerDay decimal.Decimal) []attendance.Attendance {
	records := make([]attendance.Attendance, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, attendance.Attendance{
			ID:            uuid.NewString(),
			EmployeeID:    employeeID,
			CompanyID:     "comp-1",
			Date:          start.AddDate(0, 0, i),
			Status:        attendance.StatusPresent,
			OvertimeHours: overtimePerDay,
			IsApproved:    true,
		})
	}
	return records
}
