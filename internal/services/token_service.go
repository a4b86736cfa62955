package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/repository"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
	"github.com/golang-jwt/jwt/v5"
)

// Константы токенов.
const (
	SessionTokenTTL       = 7 * 24 * time.Hour // Время жизни сессионного JWT - 7 дней
	PasswordResetTokenTTL = time.Hour          // Время жизни токена сброса пароля
	resetTokenBytes       = 32
	tokenIssuer           = "social-media-feed"
)

// TokenService выпускает и проверяет сессионные токены и токены сброса пароля.
type TokenService interface {
	IssueSessionToken(userID int64, email string) (string, error)
	VerifySessionToken(token string) (*models.Principal, error)
	IssuePasswordResetToken(ctx context.Context, userID int64) (string, error)
	ConsumePasswordResetToken(ctx context.Context, token, newPasswordHash string) error
}

// sessionClaims - пользовательские данные в JWT.
type sessionClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

var _ TokenService = (*tokenService)(nil)

type tokenService struct {
	secret    []byte
	resetRepo repository.PasswordResetRepository
	now       func() time.Time
}

// TokenOption настраивает tokenService.
type TokenOption func(*tokenService)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) TokenOption {
	return func(s *tokenService) {
		s.now = now
	}
}

// NewTokenService создает сервис токенов с HMAC-секретом для JWT.
func NewTokenService(secret string, resetRepo repository.PasswordResetRepository, opts ...TokenOption) TokenService {
	s := &tokenService{
		secret:    []byte(secret),
		resetRepo: resetRepo,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IssueSessionToken подписывает JWT с id и email пользователя.
func (s *tokenService) IssueSessionToken(userID int64, email string) (string, error) {
	now := s.now()
	claims := sessionClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи JWT: %w", err)
	}
	return signed, nil
}

// VerifySessionToken проверяет подпись, формат и срок действия токена.
func (s *tokenService) VerifySessionToken(tokenString string) (*models.Principal, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Убеждаемся, что метод подписи - HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		log.Printf("[TokenService] Ошибка парсинга/валидации токена: %v", err)
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}

	return &models.Principal{ID: claims.UserID, Email: claims.Email}, nil
}

// IssuePasswordResetToken генерирует случайный токен, сохраняет только его хеш
// и возвращает открытый токен. Предыдущий токен пользователя перестает действовать.
func (s *tokenService) IssuePasswordResetToken(ctx context.Context, userID int64) (string, error) {
	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("ошибка генерации токена сброса: %w", err)
	}
	token := hex.EncodeToString(raw)

	expiresAt := s.now().Add(PasswordResetTokenTTL)
	if err := s.resetRepo.UpsertPasswordReset(ctx, userID, hashResetToken(token), expiresAt); err != nil {
		log.Printf("[TokenService] Ошибка сохранения токена сброса для пользователя %d: %v", userID, err)
		return "", ErrInternal
	}

	return token, nil
}

// ConsumePasswordResetToken устанавливает новый хеш пароля и гасит токен.
// Причина отказа (не найден, истек) клиенту не раскрывается.
func (s *tokenService) ConsumePasswordResetToken(ctx context.Context, token, newPasswordHash string) error {
	if token == "" {
		return ErrInvalidResetToken
	}

	userID, err := s.resetRepo.ConsumePasswordReset(ctx, hashResetToken(token), newPasswordHash, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrPasswordResetNotFound) || errors.Is(err, repository.ErrUserNotFound) {
			log.Printf("[TokenService] Попытка сброса пароля с недействительным токеном")
			return ErrInvalidResetToken
		}
		log.Printf("[TokenService] Ошибка погашения токена сброса: %v", err)
		return ErrInternal
	}

	log.Printf("[TokenService] Пароль пользователя %d сброшен", userID)
	return nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
