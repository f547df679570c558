package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/tournament-results/models"
	"github.com/Dosada05/tournament-results/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// @Summary Вход администратора
// @Tags auth
// @Accept json
// @Produce json
// @Param input body models.Credentials true "Имя и пароль"
// @Success 200 {object} map[string]string "JWT токен"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input models.Credentials
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Username == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("username and password are required"))
		return
	}

	token, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"token": token}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
