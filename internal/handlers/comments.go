package handlers

import (
	"net/http"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/middleware"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/services"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
)

const msgCommentDeleted = "Комментарий удален"

// CommentHandler обрабатывает комментарии.
type CommentHandler struct {
	service services.CommentService
}

// NewCommentHandler создает новый экземпляр CommentHandler.
func NewCommentHandler(s services.CommentService) *CommentHandler {
	return &CommentHandler{service: s}
}

// ListByPost возвращает комментарии поста, новые первыми.
func (h *CommentHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		writeError(w, err)
		return
	}

	comments, err := h.service.ListByPost(r.Context(), postID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// Get возвращает комментарий по ID.
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	comment, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// Create добавляет комментарий к посту postId.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.CommentRequest
	if err = decodeJSON(w, r, &req); err != nil {
		writeBadRequestBody(w)
		return
	}

	comment, err := h.service.Create(r.Context(), middleware.GetPrincipalFromContext(r.Context()), postID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// Update изменяет текст комментария.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.CommentRequest
	if err = decodeJSON(w, r, &req); err != nil {
		writeBadRequestBody(w)
		return
	}

	comment, err := h.service.Update(r.Context(), middleware.GetPrincipalFromContext(r.Context()), id, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// Delete удаляет комментарий.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err = h.service.Delete(r.Context(), middleware.GetPrincipalFromContext(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, msgCommentDeleted)
}
