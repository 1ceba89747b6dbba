package handler

import (
	"log/slog"
	"net/http"

	"github.com/alanyoungcy/databond/internal/report"
)

// PortfolioHandler serves portfolio dashboard and reporting endpoints.
type PortfolioHandler struct {
	dashboard *report.Dashboard
	logger    *slog.Logger
}

// NewPortfolioHandler creates a PortfolioHandler over the dashboard.
func NewPortfolioHandler(dashboard *report.Dashboard, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{dashboard: dashboard, logger: logHandler(logger, "portfolio")}
}

// GetSummary returns the headline asset and bond totals.
// GET /api/portfolio
func (h *PortfolioHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Summary(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "portfolio summary failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to compute portfolio summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GetMetrics returns the full portfolio metrics breakdown.
// GET /api/portfolio/metrics
func (h *PortfolioHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.dashboard.Metrics(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "portfolio metrics failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to compute portfolio metrics")
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

// GetTopBonds returns the top performing bonds by ROI.
// GET /api/portfolio/top?limit=5
func (h *PortfolioHandler) GetTopBonds(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", report.DefaultTopLimit)

	top, err := h.dashboard.TopPerformingBonds(r.Context(), limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "top bonds failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to rank bonds")
		return
	}
	if top == nil {
		top = []report.BondPerformance{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"bonds": top,
		"count": len(top),
	})
}

// GetSchedule returns the bond maturity schedule bucketed by horizon.
// GET /api/portfolio/schedule
func (h *PortfolioHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.dashboard.Schedule(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "maturity schedule failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to build maturity schedule")
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

// GetReport renders the full text report.
// GET /api/portfolio/report
func (h *PortfolioHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	text, err := h.dashboard.GenerateReport(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "report generation failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to generate report")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}
