package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/repository"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
)

// CommentService управляет комментариями к постам.
type CommentService interface {
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	Get(ctx context.Context, id int64) (*models.Comment, error)
	Create(ctx context.Context, p *models.Principal, postID int64, content string) (*models.Comment, error)
	Update(ctx context.Context, p *models.Principal, id int64, content string) (*models.Comment, error)
	// Delete разрешено автору комментария и автору поста.
	Delete(ctx context.Context, p *models.Principal, id int64) error
}

var _ CommentService = (*commentService)(nil)

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

// NewCommentService создает сервис комментариев.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) CommentService {
	return &commentService{commentRepo: commentRepo, postRepo: postRepo, userRepo: userRepo}
}

func (s *commentService) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	if _, err := s.getPost(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListCommentsByPost(ctx, postID)
	if err != nil {
		log.Printf("[CommentService] Ошибка получения комментариев поста %d: %v", postID, err)
		return nil, ErrInternal
	}
	if err = s.attachAuthors(ctx, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *commentService) Get(ctx context.Context, id int64) (*models.Comment, error) {
	comment, err := s.getComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = s.attachAuthor(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Create(
	ctx context.Context,
	p *models.Principal,
	postID int64,
	content string,
) (*models.Comment, error) {
	if err := RequireAuthenticated(p); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}
	if _, err := s.getPost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: postID, AuthorID: p.ID, Content: content}
	if _, err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		log.Printf("[CommentService] Ошибка создания комментария к посту %d: %v", postID, err)
		return nil, ErrInternal
	}

	if err := s.attachAuthor(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Update(
	ctx context.Context,
	p *models.Principal,
	id int64,
	content string,
) (*models.Comment, error) {
	if err := RequireAuthenticated(p); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}

	comment, err := s.getComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = RequireOwner(comment.AuthorID, p); err != nil {
		log.Printf("[CommentService] Пользователь %d пытался изменить чужой комментарий %d", p.ID, id)
		return nil, err
	}

	comment.Content = content
	if err = s.commentRepo.UpdateComment(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		log.Printf("[CommentService] Ошибка обновления комментария %d: %v", id, err)
		return nil, ErrInternal
	}

	if err = s.attachAuthor(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, p *models.Principal, id int64) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}

	comment, err := s.getComment(ctx, id)
	if err != nil {
		return err
	}

	// Сначала проверяется автор комментария, затем автор поста.
	if comment.AuthorID != p.ID {
		post, postErr := s.getPost(ctx, comment.PostID)
		if postErr != nil && !errors.Is(postErr, ErrPostNotFound) {
			return postErr
		}
		if post == nil || post.AuthorID != p.ID {
			log.Printf("[CommentService] Пользователь %d пытался удалить чужой комментарий %d", p.ID, id)
			return ErrForbidden
		}
	}

	if err = s.commentRepo.DeleteComment(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		log.Printf("[CommentService] Ошибка удаления комментария %d: %v", id, err)
		return ErrInternal
	}
	return nil
}

func (s *commentService) getComment(ctx context.Context, id int64) (*models.Comment, error) {
	comment, err := s.commentRepo.GetCommentByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		log.Printf("[CommentService] Ошибка получения комментария %d: %v", id, err)
		return nil, ErrInternal
	}
	return comment, nil
}

func (s *commentService) getPost(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		log.Printf("[CommentService] Ошибка получения поста %d: %v", id, err)
		return nil, ErrInternal
	}
	return post, nil
}

func (s *commentService) attachAuthor(ctx context.Context, comment *models.Comment) error {
	comments := []models.Comment{*comment}
	if err := s.attachAuthors(ctx, comments); err != nil {
		return err
	}
	comment.Author = comments[0].Author
	return nil
}

func (s *commentService) attachAuthors(ctx context.Context, comments []models.Comment) error {
	if len(comments) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(comments))
	for i := range comments {
		ids = append(ids, comments[i].AuthorID)
	}

	authors, err := loadUsers(ctx, s.userRepo, ids)
	if err != nil {
		return err
	}
	for i := range comments {
		comments[i].Author = authors[comments[i].AuthorID]
	}
	return nil
}
