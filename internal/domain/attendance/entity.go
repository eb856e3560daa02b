package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Attendance struct {
	ID            string
	EmployeeID    string
	CompanyID     string
	Date          time.Time
	Status        Status
	OvertimeHours decimal.Decimal
	IsApproved    bool
	ApprovedBy    *string
	ApprovedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
	StatusHalfDay Status = "half-day"
)
