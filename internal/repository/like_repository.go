package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/dennysis/Social-Media-Feed-Backend/models"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// LikeRepository определяет методы для работы с лайками.
type LikeRepository interface {
	CreateLike(ctx context.Context, userID, postID int64) (*models.Like, error)
	GetLike(ctx context.Context, userID, postID int64) (*models.Like, error)
	DeleteLike(ctx context.Context, id int64) error
	ListLikesByPostIDs(ctx context.Context, postIDs []int64) ([]models.Like, error)
}

type postgresLikeRepository struct {
	db *sqlx.DB
}

// NewPostgresLikeRepository создает новый экземпляр репозитория лайков.
func NewPostgresLikeRepository(db *sqlx.DB) LikeRepository {
	return &postgresLikeRepository{db: db}
}

// CreateLike сохраняет лайк. Повторный лайк той же пары отсекается уникальным индексом.
func (r *postgresLikeRepository) CreateLike(ctx context.Context, userID, postID int64) (*models.Like, error) {
	query := `INSERT INTO likes (user_id, post_id) VALUES ($1, $2) RETURNING id, user_id, post_id, created_at`
	var like models.Like

	err := r.db.GetContext(ctx, &like, query, userID, postID)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			log.Printf("[LikeRepo] Пользователь %d уже лайкнул пост %d", userID, postID)
			return nil, ErrLikeExists
		}
		log.Printf("[LikeRepo] Ошибка при создании лайка (%d, %d): %v", userID, postID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на создание лайка: %w", err)
	}

	return &like, nil
}

// GetLike находит лайк пользователя на посте.
func (r *postgresLikeRepository) GetLike(ctx context.Context, userID, postID int64) (*models.Like, error) {
	query := `SELECT id, user_id, post_id, created_at FROM likes WHERE user_id=$1 AND post_id=$2`
	var like models.Like

	err := r.db.GetContext(ctx, &like, query, userID, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLikeNotFound
		}
		log.Printf("[LikeRepo] Ошибка при поиске лайка (%d, %d): %v", userID, postID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение лайка: %w", err)
	}

	return &like, nil
}

// DeleteLike удаляет лайк по ID.
func (r *postgresLikeRepository) DeleteLike(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE id=$1`, id)
	if err != nil {
		log.Printf("[LikeRepo] Ошибка при удалении лайка ID %d: %v", id, err)
		return fmt.Errorf("ошибка выполнения запроса на удаление лайка: %w", err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

// ListLikesByPostIDs возвращает лайки указанных постов.
func (r *postgresLikeRepository) ListLikesByPostIDs(ctx context.Context, postIDs []int64) ([]models.Like, error) {
	likes := make([]models.Like, 0)
	if len(postIDs) == 0 {
		return likes, nil
	}

	query, args, err := sqlx.In(
		`SELECT id, user_id, post_id, created_at FROM likes WHERE post_id IN (?) ORDER BY created_at`, postIDs)
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса на получение лайков: %w", err)
	}

	if err = r.db.SelectContext(ctx, &likes, r.db.Rebind(query), args...); err != nil {
		log.Printf("[LikeRepo] Ошибка при получении лайков постов %v: %v", postIDs, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение лайков: %w", err)
	}

	return likes, nil
}

// Кастомные ошибки репозитория лайков.
var (
	ErrLikeNotFound = errors.New("лайк не найден")
	ErrLikeExists   = errors.New("лайк уже существует")
)
