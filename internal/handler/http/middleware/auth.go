package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hrpulse/payroll-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests whose token failed verification or carries no
// company binding. Token issuance lives outside this service; only the claims
// are trusted here.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.Unauthorized(w, "Invalid or missing token")
			return
		}

		companyID, ok := claims["company_id"].(string)
		if !ok || companyID == "" {
			response.Unauthorized(w, "Token has no company binding")
			return
		}

		next.ServeHTTP(w, r)
	})
}
