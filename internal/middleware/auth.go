package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/services"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
)

// Тип для ключа контекста.
type contextKey string

// PrincipalKey - ключ, под которым в контексте хранится аутентифицированный пользователь.
const PrincipalKey contextKey = "principal"

var (
	errMissingHeader = errors.New("заголовок Authorization отсутствует")
	errBadHeader     = errors.New("неверный формат заголовка Authorization")
)

// TokenVerifier проверяет сессионный токен.
type TokenVerifier interface {
	VerifySessionToken(token string) (*models.Principal, error)
}

// Authenticator требует валидный Bearer-токен, иначе отвечает 401.
func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := authenticate(r, verifier)
			if err != nil {
				log.Printf("[AuthMiddleware] %s %s: %v", r.Method, r.URL.Path, err)
				writeUnauthenticated(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// OptionalAuthenticator добавляет пользователя в контекст, если токен валиден.
// Без токена или с невалидным токеном запрос продолжается анонимно.
func OptionalAuthenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := authenticate(r, verifier)
			if err != nil {
				if !errors.Is(err, errMissingHeader) {
					log.Printf("[AuthMiddleware] Токен отклонен, запрос обрабатывается анонимно: %v", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

func authenticate(r *http.Request, verifier TokenVerifier) (*models.Principal, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errMissingHeader
	}

	// Проверяем формат "Bearer token"
	headerParts := strings.Fields(authHeader)
	if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "bearer") {
		return nil, errBadHeader
	}

	return verifier.VerifySessionToken(headerParts[1])
}

func writeUnauthenticated(w http.ResponseWriter, err error) {
	message := services.ErrUnauthenticated.Message
	if errors.Is(err, services.ErrInvalidToken) || errors.Is(err, errBadHeader) {
		message = services.ErrInvalidToken.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{
		Error: message,
		Code:  string(services.CodeUnauthenticated),
	})
}

// WithPrincipal возвращает копию ctx с аутентифицированным пользователем.
func WithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

// GetPrincipalFromContext извлекает пользователя из контекста запроса.
// Для анонимного запроса возвращает nil.
func GetPrincipalFromContext(ctx context.Context) *models.Principal {
	if ctx == nil {
		return nil
	}
	p, _ := ctx.Value(PrincipalKey).(*models.Principal)
	return p
}
