package postgresql

import (
	"context"
	"fmt"

	"github.com/hrpulse/payroll-backend-go/internal/domain/company"
	"github.com/hrpulse/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, username,
			COALESCE(overtime_rate_per_hour, 0),
			COALESCE(pf_deduction_percentage, 0),
			COALESCE(esi_deduction_percentage, 0),
			COALESCE(currency_symbol, ''),
			created_at, updated_at, deleted_at
		FROM companies
		WHERE id = $1 AND deleted_at IS NULL
	`

	var comp company.Company
	err := q.QueryRow(ctx, query, id).Scan(
		&comp.ID, &comp.Name, &comp.Username,
		&comp.Settings.OvertimeRatePerHour,
		&comp.Settings.PFDeductionPercentage,
		&comp.Settings.ESIDeductionPercentage,
		&comp.Settings.CurrencySymbol,
		&comp.CreatedAt, &comp.UpdatedAt, &comp.DeletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}

	return comp, nil
}
