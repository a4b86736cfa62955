package services

import (
	"context"
	"errors"
	"log"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/repository"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
)

// UserService отдает пользователей и их профили.
type UserService interface {
	// Me возвращает профиль автора запроса.
	Me(ctx context.Context, p *models.Principal) (*models.UserProfile, error)
	GetProfile(ctx context.Context, id int64) (*models.UserProfile, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

var _ UserService = (*userService)(nil)

type userService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	posts      PostService
}

// NewUserService создает сервис пользователей.
func NewUserService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	posts PostService,
) UserService {
	return &userService{userRepo: userRepo, followRepo: followRepo, posts: posts}
}

func (s *userService) Me(ctx context.Context, p *models.Principal) (*models.UserProfile, error) {
	if err := RequireAuthenticated(p); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, p.ID)
}

// GetProfile собирает пользователя, его посты, подписчиков и подписки.
func (s *userService) GetProfile(ctx context.Context, id int64) (*models.UserProfile, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ListByAuthor(ctx, id)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.ListFollowers(ctx, id)
	if err != nil {
		log.Printf("[UserService] Ошибка получения подписчиков пользователя %d: %v", id, err)
		return nil, ErrInternal
	}

	following, err := s.followRepo.ListFollowing(ctx, id)
	if err != nil {
		log.Printf("[UserService] Ошибка получения подписок пользователя %d: %v", id, err)
		return nil, ErrInternal
	}

	return &models.UserProfile{
		User:      *user,
		Posts:     posts,
		Followers: followers,
		Following: following,
	}, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		log.Printf("[UserService] Ошибка получения пользователя %d: %v", id, err)
		return nil, ErrInternal
	}
	return user, nil
}

// loadUsers загружает пользователей одним запросом. Отсутствующие ID пропускаются.
func loadUsers(ctx context.Context, repo repository.UserRepository, ids []int64) (map[int64]*models.User, error) {
	byID := make(map[int64]*models.User, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	users, err := repo.GetUsersByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		log.Printf("[UserService] Ошибка пакетной загрузки пользователей: %v", err)
		return nil, ErrInternal
	}
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	return byID, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
