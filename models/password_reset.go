package models

import "time"

// PasswordReset - запись о выданном токене сброса пароля.
// Хранится только SHA-256 хеш токена; на пользователя не более одной записи.
type PasswordReset struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	TokenHash string    `db:"token_hash" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
