package handlers

import (
	"net/http"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/middleware"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/services"
)

const msgUnfollowed = "Вы отписались от пользователя"

// FollowHandler обрабатывает подписки.
type FollowHandler struct {
	service services.FollowService
}

// NewFollowHandler создает новый экземпляр FollowHandler.
func NewFollowHandler(s services.FollowService) *FollowHandler {
	return &FollowHandler{service: s}
}

// Follow подписывает текущего пользователя на userId.
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	follow, err := h.service.Follow(r.Context(), middleware.GetPrincipalFromContext(r.Context()), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, follow)
}

// Unfollow отменяет подписку на userId.
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	if err = h.service.Unfollow(r.Context(), middleware.GetPrincipalFromContext(r.Context()), userID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, msgUnfollowed)
}

// Followers возвращает подписчиков userId.
func (h *FollowHandler) Followers(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	users, err := h.service.Followers(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Following возвращает пользователей, на которых подписан userId.
func (h *FollowHandler) Following(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	users, err := h.service.Following(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
