package services

import (
	"context"
	"errors"
	"log"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/repository"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
)

// LikeService ставит и снимает лайки.
type LikeService interface {
	Like(ctx context.Context, p *models.Principal, postID int64) (*models.Like, error)
	Unlike(ctx context.Context, p *models.Principal, postID int64) error
	ListByPost(ctx context.Context, postID int64) ([]models.Like, error)
}

var _ LikeService = (*likeService)(nil)

type likeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
}

// NewLikeService создает сервис лайков.
func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository) LikeService {
	return &likeService{likeRepo: likeRepo, postRepo: postRepo}
}

// Like ставит лайк. Повторный лайк того же поста отклоняется.
func (s *likeService) Like(ctx context.Context, p *models.Principal, postID int64) (*models.Like, error) {
	if err := RequireAuthenticated(p); err != nil {
		return nil, err
	}

	if _, err := s.postRepo.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		log.Printf("[LikeService] Ошибка получения поста %d: %v", postID, err)
		return nil, ErrInternal
	}

	_, err := s.likeRepo.GetLike(ctx, p.ID, postID)
	switch {
	case err == nil:
		return nil, ErrAlreadyLiked
	case !errors.Is(err, repository.ErrLikeNotFound):
		log.Printf("[LikeService] Ошибка проверки лайка %d/%d: %v", p.ID, postID, err)
		return nil, ErrInternal
	}

	like, err := s.likeRepo.CreateLike(ctx, p.ID, postID)
	if err != nil {
		if errors.Is(err, repository.ErrLikeExists) {
			return nil, ErrAlreadyLiked
		}
		log.Printf("[LikeService] Ошибка создания лайка %d/%d: %v", p.ID, postID, err)
		return nil, ErrInternal
	}
	return like, nil
}

func (s *likeService) Unlike(ctx context.Context, p *models.Principal, postID int64) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}

	like, err := s.likeRepo.GetLike(ctx, p.ID, postID)
	if err != nil {
		if errors.Is(err, repository.ErrLikeNotFound) {
			return ErrLikeNotFound
		}
		log.Printf("[LikeService] Ошибка получения лайка %d/%d: %v", p.ID, postID, err)
		return ErrInternal
	}

	if err = s.likeRepo.DeleteLike(ctx, like.ID); err != nil {
		if errors.Is(err, repository.ErrLikeNotFound) {
			return ErrLikeNotFound
		}
		log.Printf("[LikeService] Ошибка удаления лайка %d: %v", like.ID, err)
		return ErrInternal
	}
	return nil
}

func (s *likeService) ListByPost(ctx context.Context, postID int64) ([]models.Like, error) {
	likes, err := s.likeRepo.ListLikesByPostIDs(ctx, []int64{postID})
	if err != nil {
		log.Printf("[LikeService] Ошибка получения лайков поста %d: %v", postID, err)
		return nil, ErrInternal
	}
	return likes, nil
}
