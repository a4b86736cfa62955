package handlers

import (
	"net/http"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/middleware"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/services"
)

const msgPostUnliked = "Лайк снят"

// LikeHandler обрабатывает лайки постов.
type LikeHandler struct {
	service services.LikeService
}

// NewLikeHandler создает новый экземпляр LikeHandler.
func NewLikeHandler(s services.LikeService) *LikeHandler {
	return &LikeHandler{service: s}
}

// Like ставит лайк посту postId.
func (h *LikeHandler) Like(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		writeError(w, err)
		return
	}

	like, err := h.service.Like(r.Context(), middleware.GetPrincipalFromContext(r.Context()), postID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, like)
}

// Unlike снимает лайк с поста postId.
func (h *LikeHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		writeError(w, err)
		return
	}

	if err = h.service.Unlike(r.Context(), middleware.GetPrincipalFromContext(r.Context()), postID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, msgPostUnliked)
}
