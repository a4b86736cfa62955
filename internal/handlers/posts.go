package handlers

import (
	"errors"
	"log"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/middleware"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/services"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
)

const (
	// maxPostBodySize - изображение плюс запас на текст и служебные части multipart.
	maxPostBodySize  = services.MaxImageSize + 1<<20
	multipartMemory  = 1 << 20
	imageFormField   = "image"
	contentFormField = "content"

	msgPostDeleted = "Пост удален"
)

// PostHandler обрабатывает запросы к постам.
type PostHandler struct {
	service services.PostService
}

// NewPostHandler создает новый экземпляр PostHandler.
func NewPostHandler(s services.PostService) *PostHandler {
	return &PostHandler{service: s}
}

// List возвращает ленту постов.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Get возвращает пост по ID.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	post, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Create создает пост из multipart-формы (content, image) или JSON {"content"}.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipalFromContext(r.Context())

	content, image, cleanup, err := readPostForm(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cleanup()

	post, err := h.service.Create(r.Context(), principal, content, image)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Printf("[PostHandler:Create] Пользователь %d создал пост %d", principal.ID, post.ID)
	writeJSON(w, http.StatusCreated, post)
}

// Update изменяет текст и/или изображение поста.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	content, image, cleanup, err := readPostForm(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cleanup()

	post, err := h.service.Update(r.Context(), middleware.GetPrincipalFromContext(r.Context()), id, content, image)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Delete удаляет пост.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err = h.service.Delete(r.Context(), middleware.GetPrincipalFromContext(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, msgPostDeleted)
}

// readPostForm извлекает текст поста и необязательное изображение.
// cleanup закрывает файл и удаляет временные файлы multipart.
func readPostForm(w http.ResponseWriter, r *http.Request) (string, *models.Upload, func(), error) {
	noop := func() {}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req struct {
			Content string `json:"content"`
		}
		if err := decodeJSON(w, r, &req); err != nil {
			return "", nil, noop, errBadRequestBody
		}
		return req.Content, nil, noop, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPostBodySize)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", nil, noop, services.ErrImageTooLarge
		}
		log.Printf("[PostHandler] Ошибка разбора multipart-формы: %v", err)
		return "", nil, noop, errBadRequestBody
	}
	removeForm := func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}

	content := r.FormValue(contentFormField)
	file, header, err := r.FormFile(imageFormField)
	if errors.Is(err, http.ErrMissingFile) {
		return content, nil, removeForm, nil
	}
	if err != nil {
		removeForm()
		log.Printf("[PostHandler] Ошибка чтения файла изображения: %v", err)
		return "", nil, noop, services.ErrInvalidImage
	}

	return content, uploadFromHeader(file, header), func() {
		_ = file.Close()
		removeForm()
	}, nil
}

func uploadFromHeader(file multipart.File, header *multipart.FileHeader) *models.Upload {
	return &models.Upload{
		Reader:      file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	}
}
