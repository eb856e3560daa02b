package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hrpulse/payroll-backend-go/internal/domain/payroll"
	"github.com/hrpulse/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== COMPONENTS ==========

const componentColumns = `
	id, company_id, employee_id, name, category, type, calculation_type,
	value, COALESCE(percentage_of, ''), is_taxable, is_active, created_at, updated_at
`

func scanComponent(row pgx.Row) (payroll.SalaryComponent, error) {
	var c payroll.SalaryComponent
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.EmployeeID, &c.Name, &c.Category, &c.Type,
		&c.CalculationType, &c.Value, &c.PercentageOf, &c.IsTaxable, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *payrollRepository) queryComponents(ctx context.Context, query string, args ...interface{}) ([]payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary components: %w", err)
	}
	defer rows.Close()

	var components []payroll.SalaryComponent
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary component: %w", err)
		}
		components = append(components, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return components, nil
}

// GetEmployeeComponents implements payroll.PayrollRepository.
func (r *payrollRepository) GetEmployeeComponents(ctx context.Context, companyID, employeeID string) ([]payroll.SalaryComponent, error) {
	query := `
		SELECT ` + componentColumns + `
		FROM salary_components
		WHERE company_id = $1 AND employee_id = $2 AND is_active = TRUE
		ORDER BY created_at
	`
	return r.queryComponents(ctx, query, companyID, employeeID)
}

// GetCompanyComponents implements payroll.PayrollRepository.
func (r *payrollRepository) GetCompanyComponents(ctx context.Context, companyID string) ([]payroll.SalaryComponent, error) {
	query := `
		SELECT ` + componentColumns + `
		FROM salary_components
		WHERE company_id = $1 AND employee_id IS NULL AND is_active = TRUE
		ORDER BY created_at
	`
	return r.queryComponents(ctx, query, companyID)
}

// HasActiveComponents implements payroll.PayrollRepository.
func (r *payrollRepository) HasActiveComponents(ctx context.Context, companyID, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM salary_components
			WHERE company_id = $1
			  AND (employee_id = $2 OR employee_id IS NULL)
			  AND is_active = TRUE
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, employeeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check salary components: %w", err)
	}
	return exists, nil
}

// ========== PAYROLL RECORDS ==========

const recordColumns = `
	pr.id, pr.employee_id, pr.company_id, pr.period_month, pr.period_year,
	pr.basic_salary, pr.earnings, pr.deductions, pr.gross_earnings,
	pr.total_deductions, pr.net_salary, pr.tax_deducted, pr.pf_contribution,
	pr.esi_contribution, pr.total_working_days, pr.present_days, pr.absent_days,
	pr.leave_days, pr.overtime_hours, pr.status, pr.paid_at, pr.paid_by,
	pr.created_at, pr.updated_at, e.full_name, e.employee_code
`

func scanRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	var earningsJSON, deductionsJSON []byte
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.PeriodMonth, &rec.PeriodYear,
		&rec.BasicSalary, &earningsJSON, &deductionsJSON, &rec.GrossEarnings,
		&rec.TotalDeductions, &rec.NetSalary, &rec.TaxDeducted, &rec.PFContribution,
		&rec.ESIContribution, &rec.TotalWorkingDays, &rec.PresentDays, &rec.AbsentDays,
		&rec.LeaveDays, &rec.OvertimeHours, &rec.Status, &rec.PaidAt, &rec.PaidBy,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.EmployeeName, &rec.EmployeeCode,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	if err := json.Unmarshal(earningsJSON, &rec.Earnings); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to decode earnings detail: %w", err)
	}
	if err := json.Unmarshal(deductionsJSON, &rec.Deductions); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to decode deductions detail: %w", err)
	}
	return rec, nil
}

// CreatePayrollRecord implements payroll.PayrollRepository.
func (r *payrollRepository) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	earningsJSON, err := json.Marshal(record.Earnings)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to encode earnings detail: %w", err)
	}
	deductionsJSON, err := json.Marshal(record.Deductions)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to encode deductions detail: %w", err)
	}

	query := `
		INSERT INTO payroll_records (
			employee_id, company_id, period_month, period_year, basic_salary,
			earnings, deductions, gross_earnings, total_deductions, net_salary,
			tax_deducted, pf_contribution, esi_contribution, total_working_days,
			present_days, absent_days, leave_days, overtime_hours, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at, updated_at
	`

	created := record
	err = q.QueryRow(ctx, query,
		record.EmployeeID, record.CompanyID, record.PeriodMonth, record.PeriodYear,
		record.BasicSalary, earningsJSON, deductionsJSON, record.GrossEarnings,
		record.TotalDeductions, record.NetSalary, record.TaxDeducted,
		record.PFContribution, record.ESIContribution, record.TotalWorkingDays,
		record.PresentDays, record.AbsentDays, record.LeaveDays,
		record.OvertimeHours, record.Status,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_record_period") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return created, nil
}

// GetPayrollRecordByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetPayrollRecordByID(ctx context.Context, id, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
		WHERE pr.id = $1 AND pr.company_id = $2
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

// GetPayrollRecordByEmployeePeriod implements payroll.PayrollRepository.
func (r *payrollRepository) GetPayrollRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
		WHERE pr.employee_id = $1 AND pr.period_month = $2 AND pr.period_year = $3 AND pr.company_id = $4
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, month, year, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}
