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

// FollowRepository определяет методы для работы с подписками.
type FollowRepository interface {
	CreateFollow(ctx context.Context, followerID, followingID int64) (*models.Follow, error)
	GetFollow(ctx context.Context, followerID, followingID int64) (*models.Follow, error)
	DeleteFollow(ctx context.Context, id int64) error
	ListFollowers(ctx context.Context, userID int64) ([]models.User, error)
	ListFollowing(ctx context.Context, userID int64) ([]models.User, error)
}

type postgresFollowRepository struct {
	db *sqlx.DB
}

// NewPostgresFollowRepository создает новый экземпляр репозитория подписок.
func NewPostgresFollowRepository(db *sqlx.DB) FollowRepository {
	return &postgresFollowRepository{db: db}
}

// CreateFollow сохраняет подписку. Дубликаты отсекаются уникальным индексом,
// подписка на себя - CHECK-ограничением.
func (r *postgresFollowRepository) CreateFollow(ctx context.Context, followerID, followingID int64) (*models.Follow, error) {
	query := `INSERT INTO follows (follower_id, following_id) VALUES ($1, $2)
	          RETURNING id, follower_id, following_id, created_at`
	var follow models.Follow

	err := r.db.GetContext(ctx, &follow, query, followerID, followingID)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolationCode:
				log.Printf("[FollowRepo] Пользователь %d уже подписан на %d", followerID, followingID)
				return nil, ErrFollowExists
			case pgCheckViolationCode:
				return nil, ErrSelfFollow
			}
		}
		log.Printf("[FollowRepo] Ошибка при создании подписки (%d -> %d): %v", followerID, followingID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на создание подписки: %w", err)
	}

	return &follow, nil
}

// GetFollow находит подписку follower -> following.
func (r *postgresFollowRepository) GetFollow(ctx context.Context, followerID, followingID int64) (*models.Follow, error) {
	query := `SELECT id, follower_id, following_id, created_at FROM follows WHERE follower_id=$1 AND following_id=$2`
	var follow models.Follow

	err := r.db.GetContext(ctx, &follow, query, followerID, followingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFollowNotFound
		}
		log.Printf("[FollowRepo] Ошибка при поиске подписки (%d -> %d): %v", followerID, followingID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение подписки: %w", err)
	}

	return &follow, nil
}

// DeleteFollow удаляет подписку по ID.
func (r *postgresFollowRepository) DeleteFollow(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM follows WHERE id=$1`, id)
	if err != nil {
		log.Printf("[FollowRepo] Ошибка при удалении подписки ID %d: %v", id, err)
		return fmt.Errorf("ошибка выполнения запроса на удаление подписки: %w", err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

// ListFollowers возвращает подписчиков пользователя.
func (r *postgresFollowRepository) ListFollowers(ctx context.Context, userID int64) ([]models.User, error) {
	query := `SELECT u.id, u.username, u.email, u.password_hash, u.created_at, u.updated_at
	          FROM follows f JOIN users u ON u.id = f.follower_id
	          WHERE f.following_id=$1
	          ORDER BY f.created_at DESC`

	users := make([]models.User, 0)
	if err := r.db.SelectContext(ctx, &users, query, userID); err != nil {
		log.Printf("[FollowRepo] Ошибка при получении подписчиков пользователя %d: %v", userID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение подписчиков: %w", err)
	}

	return users, nil
}

// ListFollowing возвращает пользователей, на которых подписан userID.
func (r *postgresFollowRepository) ListFollowing(ctx context.Context, userID int64) ([]models.User, error) {
	query := `SELECT u.id, u.username, u.email, u.password_hash, u.created_at, u.updated_at
	          FROM follows f JOIN users u ON u.id = f.following_id
	          WHERE f.follower_id=$1
	          ORDER BY f.created_at DESC`

	users := make([]models.User, 0)
	if err := r.db.SelectContext(ctx, &users, query, userID); err != nil {
		log.Printf("[FollowRepo] Ошибка при получении подписок пользователя %d: %v", userID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение подписок: %w", err)
	}

	return users, nil
}

// Кастомные ошибки репозитория подписок.
var (
	ErrFollowNotFound = errors.New("подписка не найдена")
	ErrFollowExists   = errors.New("подписка уже существует")
	ErrSelfFollow     = errors.New("нельзя подписаться на себя")
)
