package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stephdawes/moneymash-backend/internal/domain"
	"github.com/stephdawes/moneymash-backend/internal/usecase/chart"
	"github.com/stephdawes/moneymash-backend/internal/usecase/deletion"
	"github.com/stephdawes/moneymash-backend/internal/usecase/ledger"
	"github.com/stephdawes/moneymash-backend/internal/usecase/valuation"
)

// Server exposes the valuation engine over HTTP.
type Server struct {
	ledger    *ledger.Service
	valuation *valuation.Service
	deletion  *deletion.Coordinator
	charts    *chart.Builder
	clock     domain.Clock
	logger    *zap.Logger
}

func NewServer(
	ledgerSvc *ledger.Service,
	valuationSvc *valuation.Service,
	deletionCoord *deletion.Coordinator,
	charts *chart.Builder,
	clock domain.Clock,
	logger *zap.Logger,
) *Server {
	return &Server{
		ledger:    ledgerSvc,
		valuation: valuationSvc,
		deletion:  deletionCoord,
		charts:    charts,
		clock:     clock,
		logger:    logger,
	}
}

// Router builds the chi router with all API routes mounted under /api/v1.
// When token is non-empty every route requires bearer authentication.
func (s *Server) Router(token string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		if token != "" {
			r.Use(BearerAuth(token))
		}

		r.Get("/summary", s.handleSummary)
		r.Get("/history", s.handleHistory)
		r.Get("/snapshots", s.handleSnapshots)

		r.Get("/accounts", s.handleListAccounts)
		r.Post("/accounts", s.handleCreateAccount)
		r.Delete("/accounts/{accountID}", s.handleDeleteAccount)

		r.Post("/accounts/{accountID}/observations", s.handleRecordObservation)
		r.Delete("/accounts/{accountID}/observations/{observationID}", s.handleDeleteObservation)
	})

	return r
}

type summaryResponse struct {
	NetWorth          string `json:"net_worth"`
	TotalAssets       string `json:"total_assets"`
	TotalDebt         string `json:"total_debt"`
	IntegrityWarnings int    `json:"integrity_warnings"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	policy := parsePolicy(r)

	asOf, err := parseAsOf(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := s.valuation.NetWorthSummary(r.Context(), policy, asOf)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		NetWorth:          summary.NetWorth.String(),
		TotalAssets:       summary.TotalAssets.String(),
		TotalDebt:         summary.TotalDebt.String(),
		IntegrityWarnings: summary.IntegrityWarnings,
	})
}

type pointResponse struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type seriesResponse struct {
	Points []pointResponse `json:"points"`
	// AxisDates is a thinned subset of the point dates, bounded for use as
	// x-axis labels.
	AxisDates []string `json:"axis_dates"`
}

func toSeriesResponse(points []chart.Point) seriesResponse {
	resp := seriesResponse{Points: make([]pointResponse, 0, len(points))}

	dates := make([]time.Time, 0, len(points))
	for _, p := range points {
		resp.Points = append(resp.Points, pointResponse{
			Date:  p.Date.UTC().Format(time.RFC3339),
			Value: p.Value.String(),
		})
		dates = append(dates, p.Date)
	}

	resp.AxisDates = make([]string, 0)
	for _, d := range chart.Thin(dates) {
		resp.AxisDates = append(resp.AxisDates, d.UTC().Format("2006-01-02"))
	}
	return resp
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	policy := parsePolicy(r)

	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	points, err := s.charts.Series(r.Context(), policy)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	windowed := chart.Windowed(points, period, s.clock.Now())
	writeJSON(w, http.StatusOK, toSeriesResponse(windowed))
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	points, err := s.charts.SnapshotSeries(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	windowed := chart.Windowed(points, period, s.clock.Now())
	writeJSON(w, http.StatusOK, toSeriesResponse(windowed))
}

type accountResponse struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	Provider      string  `json:"provider"`
	CurrentValue  string  `json:"current_value"`
	Change        string  `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	HasPrior      bool    `json:"has_prior"`
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.ledger.ListAccounts(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	out := make([]accountResponse, 0, len(accounts))
	for _, account := range accounts {
		trend, err := s.ledger.AccountTrend(r.Context(), account.ID)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}

		out = append(out, accountResponse{
			ID:            account.ID.String(),
			Type:          string(account.Type),
			Provider:      account.Provider,
			CurrentValue:  trend.Current.String(),
			Change:        trend.Change.String(),
			ChangePercent: trend.ChangePercent,
			HasPrior:      trend.HasPrior,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

type createAccountRequest struct {
	Type          string `json:"type"`
	Provider      string `json:"provider"`
	InitialAmount string `json:"initial_amount"`
	ObservedAt    string `json:"observed_at,omitempty"`
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := decimal.NewFromString(req.InitialAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid initial_amount")
		return
	}

	observedAt := s.clock.Now()
	if req.ObservedAt != "" {
		observedAt, err = time.Parse(time.RFC3339, req.ObservedAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid observed_at")
			return
		}
	}

	account, err := s.ledger.CreateAccount(r.Context(), domain.AccountType(req.Type), req.Provider, amount, observedAt)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, accountResponse{
		ID:           account.ID.String(),
		Type:         string(account.Type),
		Provider:     account.Provider,
		CurrentValue: amount.String(),
		Change:       "0",
	})
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	if err := s.ledger.DeleteAccount(r.Context(), accountID); err != nil {
		s.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type recordObservationRequest struct {
	Amount     string `json:"amount"`
	ObservedAt string `json:"observed_at,omitempty"`
}

type observationResponse struct {
	ID         string `json:"id"`
	AccountID  string `json:"account_id"`
	Amount     string `json:"amount"`
	ObservedAt string `json:"observed_at"`
}

func (s *Server) handleRecordObservation(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	var req recordObservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	observedAt := s.clock.Now()
	if req.ObservedAt != "" {
		observedAt, err = time.Parse(time.RFC3339, req.ObservedAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid observed_at")
			return
		}
	}

	obs, err := s.ledger.RecordObservation(r.Context(), accountID, amount, observedAt)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, observationResponse{
		ID:         obs.ID.String(),
		AccountID:  obs.AccountID.String(),
		Amount:     obs.Amount.String(),
		ObservedAt: obs.ObservedAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleDeleteObservation(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	observationID, err := uuid.Parse(chi.URLParam(r, "observationID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid observation id")
		return
	}

	if err := s.deletion.DeleteObservation(r.Context(), accountID, observationID, domain.FullPolicy()); err != nil {
		s.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "account not found")
	case errors.Is(err, domain.ErrObservationNotFound):
		writeError(w, http.StatusNotFound, "observation not found")
	case errors.Is(err, domain.ErrLastObservation):
		writeError(w, http.StatusConflict, "cannot delete the only observation for an account")
	case errors.Is(err, domain.ErrInvalidAccountType):
		writeError(w, http.StatusBadRequest, "invalid account type")
	default:
		s.logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
