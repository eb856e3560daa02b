package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/hrpulse/payroll-backend-go/internal/domain/payroll"
	"github.com/hrpulse/payroll-backend-go/internal/handler/http/response"
)

type PayrollHandler struct {
	service payroll.PayrollService
}

func NewPayrollHandler(service payroll.PayrollService) PayrollHandler {
	return PayrollHandler{service: service}
}

// Helper to get company_id from JWT context
func companyIDFromContext(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

// Calculate computes payroll for a single employee without persisting it.
func (h PayrollHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.CalculatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.CalculatePayroll(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Run generates payroll for every active employee of the caller's company.
func (h PayrollHandler) Run(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.RunPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.GeneratePayrollForAll(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll run completed", result)
}

// GetRecord fetches one persisted payroll record.
func (h PayrollHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	record, err := h.service.GetRecord(r.Context(), companyID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}
