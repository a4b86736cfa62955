package handlers

import (
	"net/http"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/middleware"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/services"
)

// UserHandler отдает профили пользователей.
type UserHandler struct {
	service services.UserService
}

// NewUserHandler создает новый экземпляр UserHandler.
func NewUserHandler(s services.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// Me возвращает профиль текущего пользователя.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Me(r.Context(), middleware.GetPrincipalFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// GetProfile возвращает профиль пользователя по ID.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
