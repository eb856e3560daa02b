package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/hrpulse/payroll-backend-go/internal/domain/attendance"
	"github.com/hrpulse/payroll-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// GetApprovedByEmployeeRange implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetApprovedByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, company_id, date, status,
			COALESCE(overtime_hours, 0), is_approved, approved_by, approved_at,
			created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3 AND is_approved = TRUE
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var rec attendance.Attendance
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.Date, &rec.Status,
			&rec.OvertimeHours, &rec.IsApproved, &rec.ApprovedBy, &rec.ApprovedAt,
			&rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
