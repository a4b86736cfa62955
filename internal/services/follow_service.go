package services

import (
	"context"
	"errors"
	"log"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/repository"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
)

// FollowService управляет подписками между пользователями.
type FollowService interface {
	Follow(ctx context.Context, p *models.Principal, userID int64) (*models.Follow, error)
	Unfollow(ctx context.Context, p *models.Principal, userID int64) error
	Followers(ctx context.Context, userID int64) ([]models.User, error)
	Following(ctx context.Context, userID int64) ([]models.User, error)
}

var _ FollowService = (*followService)(nil)

type followService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService создает сервис подписок.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) FollowService {
	return &followService{followRepo: followRepo, userRepo: userRepo}
}

// Follow подписывает p на userID. Подписка на себя отклоняется до обращения к БД.
func (s *followService) Follow(ctx context.Context, p *models.Principal, userID int64) (*models.Follow, error) {
	if err := RequireAuthenticated(p); err != nil {
		return nil, err
	}
	if p.ID == userID {
		return nil, ErrSelfFollow
	}

	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		log.Printf("[FollowService] Ошибка получения пользователя %d: %v", userID, err)
		return nil, ErrInternal
	}

	_, err := s.followRepo.GetFollow(ctx, p.ID, userID)
	switch {
	case err == nil:
		return nil, ErrAlreadyFollowing
	case !errors.Is(err, repository.ErrFollowNotFound):
		log.Printf("[FollowService] Ошибка проверки подписки %d->%d: %v", p.ID, userID, err)
		return nil, ErrInternal
	}

	follow, err := s.followRepo.CreateFollow(ctx, p.ID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrFollowExists):
			return nil, ErrAlreadyFollowing
		case errors.Is(err, repository.ErrSelfFollow):
			return nil, ErrSelfFollow
		}
		log.Printf("[FollowService] Ошибка создания подписки %d->%d: %v", p.ID, userID, err)
		return nil, ErrInternal
	}
	return follow, nil
}

func (s *followService) Unfollow(ctx context.Context, p *models.Principal, userID int64) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}

	follow, err := s.followRepo.GetFollow(ctx, p.ID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrFollowNotFound) {
			return ErrNotFollowing
		}
		log.Printf("[FollowService] Ошибка получения подписки %d->%d: %v", p.ID, userID, err)
		return ErrInternal
	}

	if err = s.followRepo.DeleteFollow(ctx, follow.ID); err != nil {
		if errors.Is(err, repository.ErrFollowNotFound) {
			return ErrNotFollowing
		}
		log.Printf("[FollowService] Ошибка удаления подписки %d: %v", follow.ID, err)
		return ErrInternal
	}
	return nil
}

func (s *followService) Followers(ctx context.Context, userID int64) ([]models.User, error) {
	users, err := s.followRepo.ListFollowers(ctx, userID)
	if err != nil {
		log.Printf("[FollowService] Ошибка получения подписчиков %d: %v", userID, err)
		return nil, ErrInternal
	}
	return users, nil
}

func (s *followService) Following(ctx context.Context, userID int64) ([]models.User, error) {
	users, err := s.followRepo.ListFollowing(ctx, userID)
	if err != nil {
		log.Printf("[FollowService] Ошибка получения подписок %d: %v", userID, err)
		return nil, ErrInternal
	}
	return users, nil
}
