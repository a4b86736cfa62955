package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dennysis/Social-Media-Feed-Backend/models"
	"github.com/jmoiron/sqlx"
)

// PasswordResetRepository определяет методы для работы с токенами сброса пароля.
type PasswordResetRepository interface {
	UpsertPasswordReset(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error
	FindValidPasswordReset(ctx context.Context, tokenHash string, now time.Time) (*models.PasswordReset, error)
	DeletePasswordReset(ctx context.Context, id int64) error
	// ConsumePasswordReset в одной транзакции находит действующую запись,
	// меняет хеш пароля ее владельца и удаляет запись. Возвращает ID пользователя.
	ConsumePasswordReset(ctx context.Context, tokenHash, passwordHash string, now time.Time) (int64, error)
}

type postgresPasswordResetRepository struct {
	db *sqlx.DB
}

// NewPostgresPasswordResetRepository создает новый экземпляр репозитория сбросов пароля.
func NewPostgresPasswordResetRepository(db *sqlx.DB) PasswordResetRepository {
	return &postgresPasswordResetRepository{db: db}
}

// UpsertPasswordReset сохраняет хеш токена для пользователя, заменяя предыдущий.
func (r *postgresPasswordResetRepository) UpsertPasswordReset(
	ctx context.Context,
	userID int64,
	tokenHash string,
	expiresAt time.Time,
) error {
	query := `INSERT INTO password_resets (user_id, token_hash, expires_at) VALUES ($1, $2, $3)
	          ON CONFLICT (user_id) DO UPDATE
	          SET token_hash = EXCLUDED.token_hash, expires_at = EXCLUDED.expires_at, created_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, userID, tokenHash, expiresAt); err != nil {
		log.Printf("[ResetRepo] Ошибка сохранения токена сброса для пользователя %d: %v", userID, err)
		return fmt.Errorf("ошибка выполнения запроса на сохранение токена сброса: %w", err)
	}

	log.Printf("[ResetRepo] Токен сброса для пользователя %d сохранен (действует до %s)",
		userID, expiresAt.Format(time.RFC3339))
	return nil
}

// FindValidPasswordReset находит неистекшую запись по хешу токена.
func (r *postgresPasswordResetRepository) FindValidPasswordReset(
	ctx context.Context,
	tokenHash string,
	now time.Time,
) (*models.PasswordReset, error) {
	return findValidPasswordReset(ctx, r.db, tokenHash, now, false)
}

// DeletePasswordReset удаляет запись по ID.
func (r *postgresPasswordResetRepository) DeletePasswordReset(ctx context.Context, id int64) error {
	return deletePasswordReset(ctx, r.db, id)
}

// ConsumePasswordReset атомарно погашает токен сброса.
func (r *postgresPasswordResetRepository) ConsumePasswordReset(
	ctx context.Context,
	tokenHash, passwordHash string,
	now time.Time,
) (int64, error) {
	var userID int64

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		// FOR UPDATE: параллельное погашение того же токена ждет и затем не находит запись
		reset, err := findValidPasswordReset(ctx, tx, tokenHash, now, true)
		if err != nil {
			return err
		}
		if err = updateUserPassword(ctx, tx, reset.UserID, passwordHash); err != nil {
			return err
		}
		if err = deletePasswordReset(ctx, tx, reset.ID); err != nil {
			return err
		}
		userID = reset.UserID
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Printf("[ResetRepo] Токен сброса погашен, пароль пользователя %d изменен", userID)
	return userID, nil
}

func findValidPasswordReset(
	ctx context.Context,
	q sqlx.QueryerContext,
	tokenHash string,
	now time.Time,
	forUpdate bool,
) (*models.PasswordReset, error) {
	query := `SELECT id, user_id, token_hash, expires_at, created_at FROM password_resets
	          WHERE token_hash=$1 AND expires_at > $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var reset models.PasswordReset
	if err := sqlx.GetContext(ctx, q, &reset, query, tokenHash, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPasswordResetNotFound
		}
		log.Printf("[ResetRepo] Ошибка поиска токена сброса: %v", err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение токена сброса: %w", err)
	}

	return &reset, nil
}

func deletePasswordReset(ctx context.Context, ex sqlx.ExecerContext, id int64) error {
	res, err := ex.ExecContext(ctx, `DELETE FROM password_resets WHERE id=$1`, id)
	if err != nil {
		log.Printf("[ResetRepo] Ошибка удаления токена сброса ID %d: %v", id, err)
		return fmt.Errorf("ошибка выполнения запроса на удаление токена сброса: %w", err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrPasswordResetNotFound
	}
	return nil
}

// Кастомные ошибки репозитория сбросов пароля.
var (
	ErrPasswordResetNotFound = errors.New("действующий токен сброса не найден")
)
