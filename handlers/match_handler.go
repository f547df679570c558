package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dosada05/tournament-results/models"
	"github.com/Dosada05/tournament-results/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

// ListMatches godoc
// @Summary Список матчей
// @Tags matches
// @Produce json
// @Param sport query string false "Вид спорта"
// @Param stage query string false "semifinal | final | third_place | none"
// @Param status query string false "scheduled | ongoing | finished"
// @Param unfinished query bool false "Только незавершённые"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /matches [get]
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		matches []models.Match
		err     error
	)
	if unfinished, _ := strconv.ParseBool(q.Get("unfinished")); unfinished {
		matches, err = h.matchService.ListUnfinished(r.Context())
	} else {
		matches, err = h.matchService.ListMatches(r.Context(), services.ListMatchesInput{
			Sport:  q.Get("sport"),
			Stage:  q.Get("stage"),
			Status: q.Get("status"),
		})
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateMatch godoc
// @Summary Добавить матч
// @Tags matches
// @Accept json
// @Produce json
// @Param input body services.CreateMatchInput true "Матч"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /matches [post]
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateScore godoc
// @Summary Записать счёт и завершить матч
// @Tags matches
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param input body services.UpdateScoreInput true "Счёт"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /matches/{matchID}/score [patch]
func (h *MatchHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.UpdateScore(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateStatus godoc
// @Summary Изменить статус матча
// @Tags matches
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param input body object true "{\"status\": \"ongoing\"}"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /matches/{matchID}/status [patch]
func (h *MatchHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Status == "" {
		badRequestResponse(w, r, errors.New("status is required"))
		return
	}

	match, err := h.matchService.UpdateStatus(r.Context(), matchID, input.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
