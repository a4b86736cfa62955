package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/dennysis/Social-Media-Feed-Backend/models"
	"github.com/jmoiron/sqlx"
)

const postColumns = `id, author_id, content, image_key, created_at, updated_at`

// PostRepository определяет методы для работы с постами.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) (int64, error)
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID int64) ([]models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id int64) error
}

// postgresPostRepository реализует PostRepository для PostgreSQL.
type postgresPostRepository struct {
	db *sqlx.DB
}

// NewPostgresPostRepository создает новый экземпляр репозитория постов.
func NewPostgresPostRepository(db *sqlx.DB) PostRepository {
	return &postgresPostRepository{db: db}
}

// CreatePost создает пост и заполняет его ID и временные метки.
func (r *postgresPostRepository) CreatePost(ctx context.Context, post *models.Post) (int64, error) {
	query := `INSERT INTO posts (author_id, content, image_key) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query, post.AuthorID, post.Content, post.ImageKey).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		log.Printf("[PostRepo] Ошибка при создании поста пользователя %d: %v", post.AuthorID, err)
		return 0, fmt.Errorf("ошибка выполнения запроса на создание поста: %w", err)
	}

	log.Printf("[PostRepo] Пост (ID: %d) создан пользователем %d", post.ID, post.AuthorID)
	return post.ID, nil
}

// GetPostByID находит пост по ID.
func (r *postgresPostRepository) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id=$1`
	var post models.Post

	err := r.db.GetContext(ctx, &post, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("[PostRepo] Пост с ID %d не найден", id)
			return nil, ErrPostNotFound
		}
		log.Printf("[PostRepo] Ошибка при поиске поста ID %d: %v", id, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение поста: %w", err)
	}

	return &post, nil
}

// ListPosts возвращает все посты, новые первыми.
func (r *postgresPostRepository) ListPosts(ctx context.Context) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`

	posts := make([]models.Post, 0)
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		log.Printf("[PostRepo] Ошибка при получении списка постов: %v", err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение списка постов: %w", err)
	}

	return posts, nil
}

// ListPostsByAuthor возвращает посты пользователя, новые первыми.
func (r *postgresPostRepository) ListPostsByAuthor(ctx context.Context, authorID int64) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE author_id=$1 ORDER BY created_at DESC`

	posts := make([]models.Post, 0)
	if err := r.db.SelectContext(ctx, &posts, query, authorID); err != nil {
		log.Printf("[PostRepo] Ошибка при получении постов пользователя %d: %v", authorID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение постов пользователя: %w", err)
	}

	return posts, nil
}

// UpdatePost сохраняет содержимое и изображение поста.
func (r *postgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	query := `UPDATE posts SET content=$1, image_key=$2, updated_at=NOW() WHERE id=$3 RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query, post.Content, post.ImageKey, post.ID).Scan(&post.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPostNotFound
		}
		log.Printf("[PostRepo] Ошибка при обновлении поста ID %d: %v", post.ID, err)
		return fmt.Errorf("ошибка выполнения запроса на обновление поста: %w", err)
	}

	log.Printf("[PostRepo] Пост ID %d обновлен", post.ID)
	return nil
}

// DeletePost удаляет пост (лайки и комментарии удаляются каскадно).
func (r *postgresPostRepository) DeletePost(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		log.Printf("[PostRepo] Ошибка при удалении поста ID %d: %v", id, err)
		return fmt.Errorf("ошибка выполнения запроса на удаление поста: %w", err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrPostNotFound
	}

	log.Printf("[PostRepo] Пост ID %d удален", id)
	return nil
}

// Кастомные ошибки репозитория постов.
var (
	ErrPostNotFound = errors.New("пост не найден")
)
