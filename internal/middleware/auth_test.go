package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/middleware"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/mocks"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/services"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPrincipalFromContext(t *testing.T) {
	p := &models.Principal{ID: 123, Email: "a@b.c"}

	tests := []struct {
		name     string
		ctx      context.Context
		expected *models.Principal
	}{
		{
			name:     "Контекст с пользователем",
			ctx:      middleware.WithPrincipal(context.Background(), p),
			expected: p,
		},
		{
			name: "Пустой контекст",
			ctx:  context.Background(),
		},
		{
			name: "Значение неверного типа",
			ctx:  context.WithValue(context.Background(), middleware.PrincipalKey, int64(123)),
		},
		{
			name: "Nil контекст",
			ctx:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, middleware.GetPrincipalFromContext(tt.ctx))
		})
	}
}

// principalEcho отвечает ID пользователя из контекста или 0 для анонима.
func principalEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id int64
		if p := middleware.GetPrincipalFromContext(r.Context()); p != nil {
			id = p.ID
		}
		_ = json.NewEncoder(w).Encode(map[string]int64{"id": id})
	})
}

func TestAuthenticator(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		mockSetup      func(v *mocks.TokenService)
		expectedStatus int
		expectedID     int64
		expectedError  string
	}{
		{
			name:   "Валидный токен",
			header: "Bearer good",
			mockSetup: func(v *mocks.TokenService) {
				v.On("VerifySessionToken", "good").Return(&models.Principal{ID: 7}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedID:     7,
		},
		{
			name:           "Нет заголовка",
			mockSetup:      func(_ *mocks.TokenService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  services.ErrUnauthenticated.Message,
		},
		{
			name:           "Неверная схема",
			header:         "Basic dXNlcjpwYXNz",
			mockSetup:      func(_ *mocks.TokenService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  services.ErrInvalidToken.Message,
		},
		{
			name:   "Невалидный токен",
			header: "bearer bad",
			mockSetup: func(v *mocks.TokenService) {
				v.On("VerifySessionToken", "bad").Return(nil, services.ErrInvalidToken).Once()
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  services.ErrInvalidToken.Message,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := new(mocks.TokenService)
			tt.mockSetup(verifier)
			h := middleware.Authenticator(verifier)(principalEcho())

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			require.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedError != "" {
				var body models.ErrorResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedError, body.Error)
				assert.Equal(t, "UNAUTHENTICATED", body.Code)
			} else {
				var body map[string]int64
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedID, body["id"])
			}
			verifier.AssertExpectations(t)
		})
	}
}

func TestOptionalAuthenticator(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		mockSetup  func(v *mocks.TokenService)
		expectedID int64
	}{
		{
			name:   "Валидный токен",
			header: "Bearer good",
			mockSetup: func(v *mocks.TokenService) {
				v.On("VerifySessionToken", "good").Return(&models.Principal{ID: 7}, nil).Once()
			},
			expectedID: 7,
		},
		{
			name:      "Без токена запрос анонимный",
			mockSetup: func(_ *mocks.TokenService) {},
		},
		{
			name:   "Невалидный токен не блокирует запрос",
			header: "Bearer bad",
			mockSetup: func(v *mocks.TokenService) {
				v.On("VerifySessionToken", "bad").Return(nil, services.ErrInvalidToken).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := new(mocks.TokenService)
			tt.mockSetup(verifier)
			h := middleware.OptionalAuthenticator(verifier)(principalEcho())

			req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			var body map[string]int64
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedID, body["id"])
		})
	}
}
