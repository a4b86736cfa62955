package mocks

import (
	"context"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/services"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
	"github.com/stretchr/testify/mock"
)

var (
	_ services.AuthService    = (*AuthService)(nil)
	_ services.TokenService   = (*TokenService)(nil)
	_ services.UserService    = (*UserService)(nil)
	_ services.PostService    = (*PostService)(nil)
	_ services.LikeService    = (*LikeService)(nil)
	_ services.FollowService  = (*FollowService)(nil)
	_ services.CommentService = (*CommentService)(nil)
)

// AuthService - мок services.AuthService.
type AuthService struct {
	mock.Mock
}

func (m *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.AuthResponse)
	return resp, args.Error(1)
}

func (m *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.AuthResponse)
	return resp, args.Error(1)
}

func (m *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}

// TokenService - мок services.TokenService.
type TokenService struct {
	mock.Mock
}

func (m *TokenService) IssueSessionToken(userID int64, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}

func (m *TokenService) VerifySessionToken(token string) (*models.Principal, error) {
	args := m.Called(token)
	p, _ := args.Get(0).(*models.Principal)
	return p, args.Error(1)
}

func (m *TokenService) IssuePasswordResetToken(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *TokenService) ConsumePasswordResetToken(ctx context.Context, token, newPasswordHash string) error {
	return m.Called(ctx, token, newPasswordHash).Error(0)
}

// UserService - мок services.UserService.
type UserService struct {
	mock.Mock
}

func (m *UserService) Me(ctx context.Context, p *models.Principal) (*models.UserProfile, error) {
	args := m.Called(ctx, p)
	profile, _ := args.Get(0).(*models.UserProfile)
	return profile, args.Error(1)
}

func (m *UserService) GetProfile(ctx context.Context, id int64) (*models.UserProfile, error) {
	args := m.Called(ctx, id)
	profile, _ := args.Get(0).(*models.UserProfile)
	return profile, args.Error(1)
}

func (m *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

// PostService - мок services.PostService.
type PostService struct {
	mock.Mock
}

func (m *PostService) List(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

func (m *PostService) ListByAuthor(ctx context.Context, authorID int64) ([]models.Post, error) {
	args := m.Called(ctx, authorID)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

func (m *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *PostService) Create(
	ctx context.Context, p *models.Principal, content string, image *models.Upload,
) (*models.Post, error) {
	args := m.Called(ctx, p, content, image)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *PostService) Update(
	ctx context.Context, p *models.Principal, id int64, content string, image *models.Upload,
) (*models.Post, error) {
	args := m.Called(ctx, p, id, content, image)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *PostService) Delete(ctx context.Context, p *models.Principal, id int64) error {
	return m.Called(ctx, p, id).Error(0)
}

// LikeService - мок services.LikeService.
type LikeService struct {
	mock.Mock
}

func (m *LikeService) Like(ctx context.Context, p *models.Principal, postID int64) (*models.Like, error) {
	args := m.Called(ctx, p, postID)
	like, _ := args.Get(0).(*models.Like)
	return like, args.Error(1)
}

func (m *LikeService) Unlike(ctx context.Context, p *models.Principal, postID int64) error {
	return m.Called(ctx, p, postID).Error(0)
}

func (m *LikeService) ListByPost(ctx context.Context, postID int64) ([]models.Like, error) {
	args := m.Called(ctx, postID)
	likes, _ := args.Get(0).([]models.Like)
	return likes, args.Error(1)
}

// FollowService - мок services.FollowService.
type FollowService struct {
	mock.Mock
}

func (m *FollowService) Follow(ctx context.Context, p *models.Principal, userID int64) (*models.Follow, error) {
	args := m.Called(ctx, p, userID)
	follow, _ := args.Get(0).(*models.Follow)
	return follow, args.Error(1)
}

func (m *FollowService) Unfollow(ctx context.Context, p *models.Principal, userID int64) error {
	return m.Called(ctx, p, userID).Error(0)
}

func (m *FollowService) Followers(ctx context.Context, userID int64) ([]models.User, error) {
	args := m.Called(ctx, userID)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *FollowService) Following(ctx context.Context, userID int64) ([]models.User, error) {
	args := m.Called(ctx, userID)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

// CommentService - мок services.CommentService.
type CommentService struct {
	mock.Mock
}

func (m *CommentService) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	comments, _ := args.Get(0).([]models.Comment)
	return comments, args.Error(1)
}

func (m *CommentService) Get(ctx context.Context, id int64) (*models.Comment, error) {
	args := m.Called(ctx, id)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *CommentService) Create(
	ctx context.Context, p *models.Principal, postID int64, content string,
) (*models.Comment, error) {
	args := m.Called(ctx, p, postID, content)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *CommentService) Update(
	ctx context.Context, p *models.Principal, id int64, content string,
) (*models.Comment, error) {
	args := m.Called(ctx, p, id, content)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *CommentService) Delete(ctx context.Context, p *models.Principal, id int64) error {
	return m.Called(ctx, p, id).Error(0)
}
