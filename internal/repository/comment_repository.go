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

const commentColumns = `id, post_id, author_id, content, created_at, updated_at`

// CommentRepository определяет методы для работы с комментариями.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) (int64, error)
	GetCommentByID(ctx context.Context, id int64) (*models.Comment, error)
	ListCommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id int64) error
}

type postgresCommentRepository struct {
	db *sqlx.DB
}

// NewPostgresCommentRepository создает новый экземпляр репозитория комментариев.
func NewPostgresCommentRepository(db *sqlx.DB) CommentRepository {
	return &postgresCommentRepository{db: db}
}

// CreateComment создает комментарий и заполняет его ID и временные метки.
func (r *postgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) (int64, error) {
	query := `INSERT INTO comments (post_id, author_id, content) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query, comment.PostID, comment.AuthorID, comment.Content).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		log.Printf("[CommentRepo] Ошибка при создании комментария к посту %d: %v", comment.PostID, err)
		return 0, fmt.Errorf("ошибка выполнения запроса на создание комментария: %w", err)
	}

	return comment.ID, nil
}

// GetCommentByID находит комментарий по ID.
func (r *postgresCommentRepository) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id=$1`
	var comment models.Comment

	err := r.db.GetContext(ctx, &comment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		log.Printf("[CommentRepo] Ошибка при поиске комментария ID %d: %v", id, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение комментария: %w", err)
	}

	return &comment, nil
}

// ListCommentsByPost возвращает комментарии поста, новые первыми.
func (r *postgresCommentRepository) ListCommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE post_id=$1 ORDER BY created_at DESC`

	comments := make([]models.Comment, 0)
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		log.Printf("[CommentRepo] Ошибка при получении комментариев поста %d: %v", postID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение комментариев: %w", err)
	}

	return comments, nil
}

// UpdateComment сохраняет новый текст комментария.
func (r *postgresCommentRepository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	query := `UPDATE comments SET content=$1, updated_at=NOW() WHERE id=$2 RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query, comment.Content, comment.ID).Scan(&comment.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCommentNotFound
		}
		log.Printf("[CommentRepo] Ошибка при обновлении комментария ID %d: %v", comment.ID, err)
		return fmt.Errorf("ошибка выполнения запроса на обновление комментария: %w", err)
	}

	return nil
}

// DeleteComment удаляет комментарий по ID.
func (r *postgresCommentRepository) DeleteComment(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id=$1`, id)
	if err != nil {
		log.Printf("[CommentRepo] Ошибка при удалении комментария ID %d: %v", id, err)
		return fmt.Errorf("ошибка выполнения запроса на удаление комментария: %w", err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// Кастомные ошибки репозитория комментариев.
var (
	ErrCommentNotFound = errors.New("комментарий не найден")
)
