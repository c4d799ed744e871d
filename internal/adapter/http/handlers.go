package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/atlasrisk/varscope-backend/internal/domain"
	"github.com/atlasrisk/varscope-backend/internal/usecase/dashboard"
)

const (
	dateLayout = "2006-01-02"

	defaultTimeSeriesDays = 30
	minTimeSeriesDays     = 5
	maxTimeSeriesDays     = 90

	defaultNewsLimit = 5
	minNewsLimit     = 1
	maxNewsLimit     = 20
)

type handler struct {
	svc    *dashboard.Service
	logger zerolog.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

type marketSignalResponse struct {
	AsOf      string  `json:"as_of"`
	Score     float64 `json:"score"`
	Label     string  `json:"label"`
	Narrative string  `json:"narrative"`
}

type driverCommentaryResponse struct {
	AsOf             string                 `json:"as_of"`
	TechnicalSummary string                 `json:"technical_summary"`
	NewsSummary      string                 `json:"news_summary"`
	DriverTotals     domain.DriverBreakdown `json:"driver_totals"`
}

type summaryResponse struct {
	AsOf             string                   `json:"as_of"`
	Portfolio        domain.PortfolioVaR      `json:"portfolio"`
	Assets           []domain.AssetVaR        `json:"assets"`
	MarketSignal     marketSignalResponse     `json:"market_signal"`
	DriverCommentary driverCommentaryResponse `json:"driver_commentary"`
}

type timeSeriesPointResponse struct {
	Date   string   `json:"date"`
	Value  float64  `json:"value"`
	Change *float64 `json:"change"`
}

type timeSeriesResponse struct {
	RIC    string                    `json:"ric"`
	Points []timeSeriesPointResponse `json:"points"`
}

type scenarioDistributionResponse struct {
	RIC    string    `json:"ric"`
	Values []float64 `json:"values"`
}

type newsItemResponse struct {
	ID          string `json:"id"`
	Headline    string `json:"headline"`
	PublishedAt string `json:"published_at"`
	Source      string `json:"source"`
	Summary     string `json:"summary"`
}

type datesResponse struct {
	Dates []string `json:"dates"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) varSummary(w http.ResponseWriter, r *http.Request) {
	var asOf *time.Time
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "as_of must be formatted as YYYY-MM-DD")
			return
		}
		asOf = &parsed
	}

	summary, err := h.svc.Summary(r.Context(), asOf)
	if err != nil {
		h.writeServiceError(w, err, "no snapshot found for the requested date")
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		AsOf:      summary.AsOf.Format(dateLayout),
		Portfolio: summary.Portfolio,
		Assets:    summary.Assets,
		MarketSignal: marketSignalResponse{
			AsOf:      summary.Signal.AsOf.Format(dateLayout),
			Score:     summary.Signal.Score,
			Label:     summary.Signal.Label,
			Narrative: summary.Signal.Narrative,
		},
		DriverCommentary: driverCommentaryResponse{
			AsOf:             summary.Commentary.AsOf.Format(dateLayout),
			TechnicalSummary: summary.Commentary.TechnicalSummary,
			NewsSummary:      summary.Commentary.NewsSummary,
			DriverTotals:     summary.Commentary.DriverTotals,
		},
	})
}

func (h *handler) varTimeSeries(w http.ResponseWriter, r *http.Request) {
	ric := r.URL.Query().Get("ric")
	if ric == "" {
		ric = domain.AggregateRIC
	}

	days, err := boundedIntParam(r, "days", defaultTimeSeriesDays, minTimeSeriesDays, maxTimeSeriesDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	window, err := h.svc.TimeSeries(r.Context(), ric, days)
	if err != nil {
		h.writeServiceError(w, err, "no time series found for ric "+ric)
		return
	}

	points := make([]timeSeriesPointResponse, 0, len(window.Points))
	for _, p := range window.Points {
		points = append(points, timeSeriesPointResponse{
			Date:   p.Date.Format(dateLayout),
			Value:  p.Value,
			Change: p.Change,
		})
	}
	writeJSON(w, http.StatusOK, timeSeriesResponse{RIC: window.RIC, Points: points})
}

func (h *handler) scenarioDistribution(w http.ResponseWriter, r *http.Request) {
	ric := r.URL.Query().Get("ric")
	if ric == "" {
		ric = domain.AggregateRIC
	}

	dist, err := h.svc.ScenarioDistribution(r.Context(), ric)
	if err != nil {
		h.writeServiceError(w, err, "no scenario distribution found for ric "+ric)
		return
	}

	writeJSON(w, http.StatusOK, scenarioDistributionResponse{RIC: dist.RIC, Values: dist.Values})
}

func (h *handler) news(w http.ResponseWriter, r *http.Request) {
	limit, err := boundedIntParam(r, "limit", defaultNewsLimit, minNewsLimit, maxNewsLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.svc.News(r.Context(), limit)
	if err != nil {
		h.writeServiceError(w, err, "no news available")
		return
	}

	resp := make([]newsItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, newsItemResponse{
			ID:          item.ID.String(),
			Headline:    item.Headline,
			PublishedAt: item.PublishedAt.UTC().Format(time.RFC3339),
			Source:      item.Source,
			Summary:     item.Summary,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) varDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.svc.Dates(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "no valuation dates available")
		return
	}

	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, d.Format(dateLayout))
	}
	writeJSON(w, http.StatusOK, datesResponse{Dates: formatted})
}

func (h *handler) writeServiceError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	h.logger.Error().Err(err).Msg("request failed")
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func boundedIntParam(r *http.Request, name string, def, min, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if value < min || value > max {
		return 0, fmt.Errorf("%s must be between %d and %d", name, min, max)
	}
	return value, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
