package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/tournament-results/middleware"
	"github.com/Dosada05/tournament-results/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
	reportService    services.ReportService
}

func NewStandingsHandler(ss services.StandingsService, rs services.ReportService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss, reportService: rs}
}

// GetStandings godoc
// @Summary Текущая таблица
// @Tags standings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /standings [get]
func (h *StandingsHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.standingsService.Current(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RebuildStandings godoc
// @Summary Пересчитать очки, сохранить и опубликовать отчёт
// @Tags standings
// @Produce json
// @Success 200 {object} services.RebuildResult
// @Failure 422 {object} map[string]string "Ничья или противоречивая сетка"
// @Security BearerAuth
// @Router /standings/rebuild [post]
func (h *StandingsHandler) RebuildStandings(w http.ResponseWriter, r *http.Request) {
	if username, err := middleware.GetUsernameFromContext(r.Context()); err == nil {
		slog.InfoContext(r.Context(), "standings rebuild requested", slog.String("admin", username))
	}
	result, err := h.standingsService.Rebuild(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetReport godoc
// @Summary Отчёт в Markdown
// @Tags standings
// @Produce plain
// @Success 200 {string} string
// @Router /report [get]
func (h *StandingsHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.Build(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(report))
}
