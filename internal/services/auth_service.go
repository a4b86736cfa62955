package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/mailer"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/repository"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
	"golang.org/x/crypto/bcrypt"
)

// TaskRunner запускает задачи, не блокирующие ответ на запрос.
type TaskRunner interface {
	Go(ctx context.Context, name string, fn func(ctx context.Context) error)
}

// AuthService определяет интерфейс для сервиса аутентификации.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	// RequestPasswordReset всегда завершается успешно для неизвестного email,
	// чтобы не раскрывать наличие учетной записи.
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// Убедимся, что authService удовлетворяет интерфейсу AuthService.
var _ AuthService = (*authService)(nil)

type authService struct {
	userRepo    repository.UserRepository
	tokens      TokenService
	mailer      mailer.Mailer
	tasks       TaskRunner
	frontendURL string
}

// NewAuthService создает новый экземпляр сервиса аутентификации.
func NewAuthService(
	userRepo repository.UserRepository,
	tokens TokenService,
	m mailer.Mailer,
	tasks TaskRunner,
	frontendURL string,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		tokens:      tokens,
		mailer:      m,
		tasks:       tasks,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// Register создает пользователя, выдает сессионный токен и отправляет приветственное письмо.
func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	_, err := s.userRepo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		log.Printf("[AuthService] Попытка регистрации с занятым email: %s", email)
		return nil, ErrEmailTaken
	case !errors.Is(err, repository.ErrUserNotFound):
		log.Printf("[AuthService] Ошибка проверки email '%s': %v", email, err)
		return nil, ErrInternal
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[AuthService] Ошибка хеширования пароля для '%s': %v", username, err)
		return nil, ErrInternal
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if _, err = s.userRepo.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			return nil, ErrUsernameTaken
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, ErrEmailTaken
		}
		log.Printf("[AuthService] Ошибка репозитория при регистрации '%s': %v", username, err)
		return nil, ErrInternal
	}

	token, err := s.tokens.IssueSessionToken(user.ID, user.Email)
	if err != nil {
		log.Printf("[AuthService] Ошибка выпуска токена для пользователя %d: %v", user.ID, err)
		return nil, ErrInternal
	}

	s.tasks.Go(ctx, "welcome-email", func(taskCtx context.Context) error {
		return s.mailer.SendWelcomeEmail(taskCtx, user.Email, user.Username)
	})

	log.Printf("[AuthService] Пользователь '%s' (ID: %d) зарегистрирован", username, user.ID)
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login проверяет email и пароль и возвращает новый сессионный токен.
func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Printf("[AuthService] Попытка входа для несуществующего email: %s", email)
			return nil, ErrInvalidCredentials
		}
		log.Printf("[AuthService] Ошибка репозитория при входе '%s': %v", email, err)
		return nil, ErrInternal
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Printf("[AuthService] Неверный пароль для пользователя %d", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueSessionToken(user.ID, user.Email)
	if err != nil {
		log.Printf("[AuthService] Ошибка выпуска токена для пользователя %d: %v", user.ID, err)
		return nil, ErrInternal
	}

	log.Printf("[AuthService] Пользователь %d вошел в систему", user.ID)
	return &models.AuthResponse{Token: token, User: user}, nil
}

// RequestPasswordReset выпускает токен сброса и отправляет письмо со ссылкой.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrMissingFields
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Printf("[AuthService] Запрос сброса пароля для неизвестного email")
			return nil
		}
		log.Printf("[AuthService] Ошибка поиска пользователя для сброса пароля: %v", err)
		return ErrInternal
	}

	token, err := s.tokens.IssuePasswordResetToken(ctx, user.ID)
	if err != nil {
		return err
	}

	resetURL := s.frontendURL + "/reset-password/" + token
	s.tasks.Go(ctx, "password-reset-email", func(taskCtx context.Context) error {
		return s.mailer.SendPasswordResetEmail(taskCtx, user.Email, user.Username, resetURL)
	})

	log.Printf("[AuthService] Выпущен токен сброса пароля для пользователя %d", user.ID)
	return nil
}

// ResetPassword устанавливает новый пароль по одноразовому токену.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return ErrMissingFields
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[AuthService] Ошибка хеширования нового пароля: %v", err)
		return ErrInternal
	}

	return s.tokens.ConsumePasswordResetToken(ctx, token, string(hashedPassword))
}
