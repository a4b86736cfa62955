package models

import "time"

// User представляет пользователя системы.
// Тэги `db` используются для маппинга с полями БД с помощью sqlx.
// Тэги `json` используются для (де)сериализации JSON.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"` // Не отправляем хеш пароля в JSON
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// UserProfile - пользователь вместе с его постами и подписками.
type UserProfile struct {
	User
	Posts     []Post `json:"posts"`
	Followers []User `json:"followers"`
	Following []User `json:"following"`
}

// Principal - аутентифицированный отправитель запроса (данные из JWT).
type Principal struct {
	ID    int64
	Email string
}

// RegisterRequest представляет тело запроса на регистрацию.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest представляет тело запроса на вход.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse представляет тело ответа при успешной регистрации или входе.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// ForgotPasswordRequest - запрос на отправку ссылки для сброса пароля.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest - запрос на установку нового пароля по токену сброса.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// MessageResponse - ответ, содержащий только текстовое сообщение.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
