package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/hrpulse/payroll-backend-go/internal/config"
	appHTTP "github.com/hrpulse/payroll-backend-go/internal/handler/http"
	"github.com/hrpulse/payroll-backend-go/internal/pkg/database"
	"github.com/hrpulse/payroll-backend-go/internal/repository/postgresql"
	payrollService "github.com/hrpulse/payroll-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrpulse-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	policy := payrollService.DefaultPolicy()
	if cfg.Payroll.DefaultBasicSalary.IsPositive() {
		policy.DefaultBasicSalary = cfg.Payroll.DefaultBasicSalary
	}
	if cfg.Payroll.StandardWorkingDays > 0 {
		policy.StandardWorkingDays = decimal.NewFromInt(int64(cfg.Payroll.StandardWorkingDays))
	}
	if cfg.Payroll.DefaultPFPercent.IsPositive() {
		policy.DefaultPFPercent = cfg.Payroll.DefaultPFPercent
	}
	if cfg.Payroll.DefaultESIPercent.IsPositive() {
		policy.DefaultESIPercent = cfg.Payroll.DefaultESIPercent
	}
	if cfg.Payroll.ESIWageCeiling.IsPositive() {
		policy.ESIWageCeiling = cfg.Payroll.ESIWageCeiling
	}
	if cfg.Payroll.BatchWorkers > 0 {
		policy.BatchWorkers = cfg.Payroll.BatchWorkers
	}
	policy.SynthesizeMissingAttendance = cfg.Payroll.SynthesizeMissing

	payrollSvc := payrollService.NewPayrollService(
		payrollRepo,
		employeeRepo,
		companyRepo,
		attendanceRepo,
		policy,
		logger,
	)

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	router := appHTTP.NewRouter(logger, tokenAuth, payrollHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
