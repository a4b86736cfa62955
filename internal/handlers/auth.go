package handlers

import (
	"log"
	"net/http"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/services"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
)

const (
	msgLoggedOut        = "Вы вышли из системы"
	msgResetRequested   = "Если email зарегистрирован, на него придет ссылка для сброса пароля"
	msgPasswordResetted = "Пароль успешно изменен"
)

// AuthHandler обрабатывает HTTP-запросы, связанные с аутентификацией.
type AuthHandler struct {
	service services.AuthService
}

// NewAuthHandler создает новый экземпляр AuthHandler.
func NewAuthHandler(s services.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Printf("[AuthHandler] Ошибка декодирования запроса регистрации: %v", err)
		writeBadRequestBody(w)
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Login обрабатывает запрос на вход пользователя.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Printf("[AuthHandler] Ошибка декодирования запроса входа: %v", err)
		writeBadRequestBody(w)
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Logout ничего не хранит на сервере: токен просто забывается клиентом.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, msgLoggedOut)
}

// ForgotPassword отвечает одинаково для известного и неизвестного email.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequestBody(w)
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, msgResetRequested)
}

// ResetPassword устанавливает новый пароль по токену из письма.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequestBody(w)
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, msgPasswordResetted)
}
