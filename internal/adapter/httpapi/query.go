package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/stephdawes/moneymash-backend/internal/domain"
	"github.com/stephdawes/moneymash-backend/internal/usecase/chart"
)

// parsePolicy reads the inclusion toggles from the query string. Both
// toggles default to true so the unqualified endpoints report full net worth.
func parsePolicy(r *http.Request) domain.InclusionPolicy {
	policy := domain.FullPolicy()
	if v := r.URL.Query().Get("include_pensions"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			policy.IncludePensions = parsed
		}
	}
	if v := r.URL.Query().Get("include_mortgage"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			policy.IncludeMortgage = parsed
		}
	}
	return policy
}

// parseAsOf reads an optional as_of day (2006-01-02). Nil means "now".
func parseAsOf(r *http.Request) (*domain.Day, error) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		return nil, nil
	}
	day, err := domain.ParseDay(raw)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// parsePeriod reads the chart window, defaulting to the full history.
func parsePeriod(r *http.Request) (chart.Period, error) {
	raw := r.URL.Query().Get("period")
	if raw == "" {
		return chart.PeriodMax, nil
	}
	return chart.ParsePeriod(raw)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
