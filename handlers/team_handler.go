package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-results/services"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(ts services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: ts}
}

// ListTeams godoc
// @Summary Список команд по очкам
// @Tags teams
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /teams [get]
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListTeams(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetTeam godoc
// @Summary Команда по имени
// @Tags teams
// @Produce json
// @Param name path string true "Имя команды"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /teams/{name} [get]
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamService.GetTeam(r.Context(), unescapedURLParam(r, "name"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateTeam godoc
// @Summary Добавить команду
// @Tags teams
// @Accept json
// @Produce json
// @Param input body services.CreateTeamInput true "Команда"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "Имя занято"
// @Security BearerAuth
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
