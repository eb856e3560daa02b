package payroll

import "errors"

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrNoSalaryStructure          = errors.New("no salary structure configured")
	ErrInvalidPeriod              = errors.New("invalid payroll period")
)
