package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-results/services"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(ss services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: ss}
}

// GenerateSchedule godoc
// @Summary Сгенерировать расписание
// @Description Каждый участник получает ровно games_per_participant разных соперников.
// @Description С import=true пары сохраняются как запланированные матчи вида спорта sport.
// @Tags schedules
// @Accept json
// @Produce json
// @Param input body services.GenerateScheduleInput true "Параметры"
// @Success 200 {object} services.ScheduleResult "Только пары"
// @Success 201 {object} services.ScheduleResult "Пары импортированы"
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string "Расписание невозможно"
// @Security BearerAuth
// @Router /schedules [post]
func (h *ScheduleHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var input services.GenerateScheduleInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.scheduleService.GenerateSchedule(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	status := http.StatusOK
	if input.Import {
		status = http.StatusCreated
	}
	if err := writeJSON(w, status, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
