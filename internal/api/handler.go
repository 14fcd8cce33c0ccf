package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/koinval/koinval/internal/rate"
	"github.com/koinval/koinval/internal/valuation"
)

// Handler provides the HTTP endpoints the valuation form talks to.
type Handler struct {
	rates *rate.Service
	now   func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(rates *rate.Service) *Handler {
	return &Handler{rates: rates, now: time.Now}
}

// valuationRequest carries the form's raw fields exactly as the user
// typed them; all normalization happens server-side.
type valuationRequest struct {
	Price        string `json:"price"`
	Holding      string `json:"holding"`
	DailyAccrual string `json:"dailyAccrual"`
	Rate         string `json:"rate"`
	TargetDate   string `json:"targetDate"`
}

// ComputeValuation handles POST /api/v1/valuations.
func (h *Handler) ComputeValuation(w http.ResponseWriter, r *http.Request) {
	var body valuationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// An empty rate field means "use the seeded rate", mirroring the
	// form field the provider fills at start-up.
	rateRaw := body.Rate
	if strings.TrimSpace(rateRaw) == "" {
		current, _ := h.rates.State().Snapshot()
		rateRaw = current.Rate.String()
	}

	req := valuation.Request{
		Price:        valuation.ParseAmount(body.Price),
		Holding:      valuation.ParseAmount(body.Holding),
		DailyAccrual: valuation.ParseAmount(body.DailyAccrual),
		Rate:         valuation.ParseAmount(rateRaw),
		TargetDate:   body.TargetDate,
	}

	result, err := valuation.Compute(req, h.now())
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": err.Error(),
			"field": errorField(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type rateStateResponse struct {
	Rate      string `json:"rate"`
	Source    string `json:"source"`
	Advisory  string `json:"advisory,omitempty"`
	FetchedAt string `json:"fetchedAt,omitempty"`
	Loading   bool   `json:"loading"`
}

// GetRate handles GET /api/v1/rate.
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	quote, loading := h.rates.State().Snapshot()

	resp := rateStateResponse{
		Rate:     quote.Rate.String(),
		Source:   string(quote.Source),
		Advisory: quote.Advisory,
		Loading:  loading,
	}
	if !quote.FetchedAt.IsZero() {
		resp.FetchedAt = quote.FetchedAt.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

// RefreshRate handles POST /api/v1/rate/refresh. The loading flag gates
// overlapping refreshes: a second trigger while one is in flight gets
// 409 and must wait.
func (h *Handler) RefreshRate(w http.ResponseWriter, r *http.Request) {
	state := h.rates.State()
	if !state.TryBeginRefresh() {
		writeError(w, http.StatusConflict, "rate refresh already in progress")
		return
	}
	defer state.EndRefresh()

	quote := h.rates.Fetch(r.Context())
	writeJSON(w, http.StatusOK, quote)
}

type fieldMapping struct {
	target error
	name   string
}

var fieldMappings = []fieldMapping{
	{valuation.ErrInvalidPrice, "price"},
	{valuation.ErrInvalidHolding, "holding"},
	{valuation.ErrInvalidAccrual, "dailyAccrual"},
	{valuation.ErrInvalidRate, "rate"},
}

// errorField maps a validation error to the form field it names.
func errorField(err error) string {
	match, found := lo.Find(fieldMappings, func(f fieldMapping) bool {
		return errors.Is(err, f.target)
	})
	if !found {
		return ""
	}
	return match.name
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
