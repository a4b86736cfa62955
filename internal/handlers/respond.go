package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/services"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
	"github.com/go-chi/chi/v5"
)

// maxJSONBodySize ограничивает размер JSON-тела запроса.
const maxJSONBodySize = 1 << 20

var (
	errBadRequestBody = &services.Error{Code: services.CodeBadUserInput, Message: "Неверный формат запроса"}
	errFileNotFound   = &services.Error{Code: services.CodeNotFound, Message: "Файл не найден"}
)

// StatusForCode сопоставляет код ошибки сервисного слоя HTTP-статусу.
func StatusForCode(code services.Code) int {
	switch code {
	case services.CodeUnauthenticated:
		return http.StatusUnauthorized
	case services.CodeForbidden:
		return http.StatusForbidden
	case services.CodeBadUserInput:
		return http.StatusBadRequest
	case services.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Статус уже отправлен клиенту, остается только залогировать
		log.Printf("[Handlers] Ошибка кодирования ответа: %v", err)
	}
}

// writeError отвечает {"error", "code"} со статусом, соответствующим коду ошибки.
func writeError(w http.ResponseWriter, err error) {
	code := services.CodeOf(err)
	writeJSON(w, StatusForCode(code), models.ErrorResponse{
		Error: services.MessageOf(err),
		Code:  string(code),
	})
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errBadRequestBody
	}
	return nil
}

// writeBadRequestBody отвечает 400 на тело, которое не удалось разобрать.
func writeBadRequestBody(w http.ResponseWriter) {
	writeError(w, errBadRequestBody)
}

// pathID разбирает числовой параметр маршрута.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.ErrInvalidID
	}
	return id, nil
}
