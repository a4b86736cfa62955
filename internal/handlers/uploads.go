package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/services"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/storage"
)

// UploadHandler отдает изображения постов из объектного хранилища.
type UploadHandler struct {
	files storage.FileStorage
}

// NewUploadHandler создает новый экземпляр UploadHandler.
func NewUploadHandler(files storage.FileStorage) *UploadHandler {
	return &UploadHandler{files: files}
}

// Serve передает объект клиенту потоком, не загружая его в память целиком.
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	key, err := storage.KeyFromPublicPath(r.URL.Path)
	if err != nil {
		writeError(w, services.ErrInvalidID)
		return
	}

	object, err := h.files.DownloadFile(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			writeError(w, errFileNotFound)
			return
		}
		log.Printf("[UploadHandler] Ошибка получения файла '%s': %v", key, err)
		writeError(w, err)
		return
	}
	defer func() {
		if closeErr := object.Close(); closeErr != nil {
			log.Printf("[UploadHandler] Ошибка закрытия объекта '%s': %v", key, closeErr)
		}
	}()

	contentType := object.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if object.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(object.Size, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")

	if _, err = io.Copy(w, object); err != nil {
		log.Printf("[UploadHandler] Ошибка отправки файла '%s': %v", key, err)
	}
}
