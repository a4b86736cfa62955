// Package mocks содержит testify-моки репозиториев, сервисов и внешних клиентов.
package mocks

import (
	"context"
	"time"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/repository"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
	"github.com/stretchr/testify/mock"
)

var (
	_ repository.UserRepository          = (*UserRepository)(nil)
	_ repository.PostRepository          = (*PostRepository)(nil)
	_ repository.LikeRepository          = (*LikeRepository)(nil)
	_ repository.FollowRepository        = (*FollowRepository)(nil)
	_ repository.CommentRepository       = (*CommentRepository)(nil)
	_ repository.PasswordResetRepository = (*PasswordResetRepository)(nil)
)

// UserRepository - мок repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) GetUsersByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *UserRepository) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

// PostRepository - мок repository.PostRepository.
type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) CreatePost(ctx context.Context, post *models.Post) (int64, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PostRepository) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *PostRepository) ListPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

func (m *PostRepository) ListPostsByAuthor(ctx context.Context, authorID int64) ([]models.Post, error) {
	args := m.Called(ctx, authorID)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

func (m *PostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *PostRepository) DeletePost(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// LikeRepository - мок repository.LikeRepository.
type LikeRepository struct {
	mock.Mock
}

func (m *LikeRepository) CreateLike(ctx context.Context, userID, postID int64) (*models.Like, error) {
	args := m.Called(ctx, userID, postID)
	like, _ := args.Get(0).(*models.Like)
	return like, args.Error(1)
}

func (m *LikeRepository) GetLike(ctx context.Context, userID, postID int64) (*models.Like, error) {
	args := m.Called(ctx, userID, postID)
	like, _ := args.Get(0).(*models.Like)
	return like, args.Error(1)
}

func (m *LikeRepository) DeleteLike(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *LikeRepository) ListLikesByPostIDs(ctx context.Context, postIDs []int64) ([]models.Like, error) {
	args := m.Called(ctx, postIDs)
	likes, _ := args.Get(0).([]models.Like)
	return likes, args.Error(1)
}

// FollowRepository - мок repository.FollowRepository.
type FollowRepository struct {
	mock.Mock
}

func (m *FollowRepository) CreateFollow(ctx context.Context, followerID, followingID int64) (*models.Follow, error) {
	args := m.Called(ctx, followerID, followingID)
	follow, _ := args.Get(0).(*models.Follow)
	return follow, args.Error(1)
}

func (m *FollowRepository) GetFollow(ctx context.Context, followerID, followingID int64) (*models.Follow, error) {
	args := m.Called(ctx, followerID, followingID)
	follow, _ := args.Get(0).(*models.Follow)
	return follow, args.Error(1)
}

func (m *FollowRepository) DeleteFollow(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *FollowRepository) ListFollowers(ctx context.Context, userID int64) ([]models.User, error) {
	args := m.Called(ctx, userID)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *FollowRepository) ListFollowing(ctx context.Context, userID int64) ([]models.User, error) {
	args := m.Called(ctx, userID)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

// CommentRepository - мок repository.CommentRepository.
type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) CreateComment(ctx context.Context, comment *models.Comment) (int64, error) {
	args := m.Called(ctx, comment)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommentRepository) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	args := m.Called(ctx, id)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *CommentRepository) ListCommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	comments, _ := args.Get(0).([]models.Comment)
	return comments, args.Error(1)
}

func (m *CommentRepository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *CommentRepository) DeleteComment(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// PasswordResetRepository - мок repository.PasswordResetRepository.
type PasswordResetRepository struct {
	mock.Mock
}

func (m *PasswordResetRepository) UpsertPasswordReset(
	ctx context.Context, userID int64, tokenHash string, expiresAt time.Time,
) error {
	return m.Called(ctx, userID, tokenHash, expiresAt).Error(0)
}

func (m *PasswordResetRepository) FindValidPasswordReset(
	ctx context.Context, tokenHash string, now time.Time,
) (*models.PasswordReset, error) {
	args := m.Called(ctx, tokenHash, now)
	reset, _ := args.Get(0).(*models.PasswordReset)
	return reset, args.Error(1)
}

func (m *PasswordResetRepository) DeletePasswordReset(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *PasswordResetRepository) ConsumePasswordReset(
	ctx context.Context, tokenHash, passwordHash string, now time.Time,
) (int64, error) {
	args := m.Called(ctx, tokenHash, passwordHash, now)
	return args.Get(0).(int64), args.Error(1)
}
