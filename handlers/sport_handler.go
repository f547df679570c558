package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-results/services"
)

type SportHandler struct {
	sportService   services.SportService
	bracketService services.BracketService
}

func NewSportHandler(ss services.SportService, bs services.BracketService) *SportHandler {
	return &SportHandler{sportService: ss, bracketService: bs}
}

func sportFromURL(r *http.Request) string {
	return unescapedURLParam(r, "sport")
}

// ListSports godoc
// @Summary Виды спорта и состояние сеток
// @Tags sports
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /sports [get]
func (h *SportHandler) ListSports(w http.ResponseWriter, r *http.Request) {
	sports, err := h.sportService.ListSports(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"sports": sports}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SeedBracket godoc
// @Summary Посеять четырёх участников в полуфиналы
// @Tags sports
// @Accept json
// @Produce json
// @Param sport path string true "Вид спорта"
// @Param input body object true "{\"seeds\": [\"A\", \"B\", \"C\", \"D\"]}"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "Сетка уже есть"
// @Security BearerAuth
// @Router /sports/{sport}/bracket [post]
func (h *SportHandler) SeedBracket(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Seeds []string `json:"seeds"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	semis, err := h.bracketService.SeedBracket(r.Context(), sportFromURL(r), input.Seeds)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": semis}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AdvanceBracket godoc
// @Summary Создать финал и матч за третье место
// @Tags sports
// @Produce json
// @Param sport path string true "Вид спорта"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string "Полуфиналы не завершены или ничья"
// @Security BearerAuth
// @Router /sports/{sport}/bracket/advance [post]
func (h *SportHandler) AdvanceBracket(w http.ResponseWriter, r *http.Request) {
	matches, err := h.bracketService.AdvanceBracket(r.Context(), sportFromURL(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPlacement godoc
// @Summary Итоговые места вида спорта
// @Tags sports
// @Produce json
// @Param sport path string true "Вид спорта"
// @Success 200 {object} services.PlacementResult
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string "Ничья в матче сетки"
// @Router /sports/{sport}/placement [get]
func (h *SportHandler) GetPlacement(w http.ResponseWriter, r *http.Request) {
	result, err := h.bracketService.GetPlacement(r.Context(), sportFromURL(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
