package payroll

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrpulse/payroll-backend-go/internal/domain/company"
	"github.com/hrpulse/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// applicableComponents resolves the rule set for one employee and component
// type: employee-scoped active rules win; only when none exist does the
// company-wide set apply. Lookup faults degrade to an empty set.
func (s *PayrollServiceImpl) applicableComponents(ctx context.Context, companyID, employeeID string, componentType payroll.ComponentType) []payroll.SalaryComponent {
	scoped, err := s.payrollRepo.GetEmployeeComponents(ctx, companyID, employeeID)
	if err != nil {
		s.logger.Warn("employee component lookup failed",
			"employee_id", employeeID, "error", err)
		scoped = nil
	}
	components := filterByType(scoped, componentType)
	if len(components) > 0 {
		return components
	}

	companyWide, err := s.payrollRepo.GetCompanyComponents(ctx, companyID)
	if err != nil {
		s.logger.Warn("company component lookup failed",
			"company_id", companyID, "error", err)
		return nil
	}
	return filterByType(companyWide, componentType)
}

func filterByType(components []payroll.SalaryComponent, componentType payroll.ComponentType) []payroll.SalaryComponent {
	var out []payroll.SalaryComponent
	for _, c := range components {
		if c.Type == componentType && c.IsActive {
			out = append(out, c)
		}
	}
	return out
}

// evaluateEarnings turns every applicable earning rule into a line amount.
// The basic category is excluded (prorated separately), zero and negative
// amounts are dropped, and a rule that cannot be evaluated is logged and
// skipped rather than failing the computation.
func (s *PayrollServiceImpl) evaluateEarnings(
	ctx context.Context,
	companyID, employeeID string,
	proratedBasic decimal.Decimal,
	summary payroll.AttendanceSummary,
	settings company.Settings,
) []payroll.ComponentAmount {
	components := s.applicableComponents(ctx, companyID, employeeID, payroll.ComponentTypeEarning)

	earnings := make([]payroll.ComponentAmount, 0, len(components))
	for _, c := range components {
		if strings.EqualFold(c.Category, payroll.CategoryBasic) {
			continue
		}
		amount, err := earningAmount(c, proratedBasic, summary, settings)
		if err != nil {
			s.logger.Warn("skipping earning component",
				"component", c.Name, "employee_id", employeeID, "error", err)
			continue
		}
		if !amount.IsPositive() {
			continue
		}
		earnings = append(earnings, payroll.ComponentAmount{
			Component: c.Name,
			Amount:    amount.Round(2),
			IsTaxable: c.IsTaxable,
		})
	}
	return earnings
}

func earningAmount(c payroll.SalaryComponent, proratedBasic decimal.Decimal, summary payroll.AttendanceSummary, settings company.Settings) (decimal.Decimal, error) {
	switch c.CalculationType {
	case payroll.CalcTypeFixed:
		return c.Value, nil
	case payroll.CalcTypePercentage:
		// Gross is not known while earnings are being evaluated, so a
		// percentage-of-gross earning is accepted as configuration but
		// contributes nothing.
		if c.PercentageOf == payroll.PercentageOfGross {
			return decimal.Zero, nil
		}
		return proratedBasic.Mul(c.Value).Div(hundred), nil
	case payroll.CalcTypeOvertimeFormula:
		return summary.OvertimeHours.Mul(settings.OvertimeRatePerHour), nil
	case payroll.CalcTypeAttendanceRate:
		return summary.PresentDays.Mul(c.Value), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown calculation type %q", c.CalculationType)
	}
}

// evaluateDeductions mirrors evaluateEarnings for deduction rules. Gross is
// known at this stage, so percentage-of-gross deductions are evaluated. The
// formula calculation types are not supported for deductions and yield zero.
func (s *PayrollServiceImpl) evaluateDeductions(
	ctx context.Context,
	companyID, employeeID string,
	proratedBasic, grossEarnings decimal.Decimal,
) []payroll.ComponentAmount {
	components := s.applicableComponents(ctx, companyID, employeeID, payroll.ComponentTypeDeduction)

	deductions := make([]payroll.ComponentAmount, 0, len(components))
	for _, c := range components {
		amount, err := deductionAmount(c, proratedBasic, grossEarnings)
		if err != nil {
			s.logger.Warn("skipping deduction component",
				"component", c.Name, "employee_id", employeeID, "error", err)
			continue
		}
		if !amount.IsPositive() {
			continue
		}
		deductions = append(deductions, payroll.ComponentAmount{
			Component: c.Name,
			Amount:    amount.Round(2),
			IsTaxable: c.IsTaxable,
		})
	}
	return deductions
}

func deductionAmount(c payroll.SalaryComponent, proratedBasic, grossEarnings decimal.Decimal) (decimal.Decimal, error) {
	switch c.CalculationType {
	case payroll.CalcTypeFixed:
		return c.Value, nil
	case payroll.CalcTypePercentage:
		base := proratedBasic
		if c.PercentageOf == payroll.PercentageOfGross {
			base = grossEarnings
		}
		return base.Mul(c.Value).Div(hundred), nil
	case payroll.CalcTypeOvertimeFormula, payroll.CalcTypeAttendanceRate:
		return decimal.Zero, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown calculation type %q", c.CalculationType)
	}
}
