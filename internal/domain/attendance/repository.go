package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// GetApprovedByEmployeeRange returns approved records for the employee
	// with dates inside [from, to], ordered by date.
	GetApprovedByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
}
