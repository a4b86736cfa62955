package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/mocks"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/repository"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/services"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authDeps struct {
	users  *mocks.UserRepository
	tokens *mocks.TokenService
	mailer *mocks.Mailer
	tasks  *mocks.TaskRunner
}

func newAuthService() (services.AuthService, *authDeps) {
	d := &authDeps{
		users:  new(mocks.UserRepository),
		tokens: new(mocks.TokenService),
		mailer: new(mocks.Mailer),
		tasks:  &mocks.TaskRunner{},
	}
	return services.NewAuthService(d.users, d.tokens, d.mailer, d.tasks, "http://frontend.test/"), d
}

func (d *authDeps) assertExpectations(t *testing.T) {
	d.users.AssertExpectations(t)
	d.tokens.AssertExpectations(t)
	d.mailer.AssertExpectations(t)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	req := models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123"}

	tests := []struct {
		name          string
		req           models.RegisterRequest
		mockSetup     func(d *authDeps)
		expectedError error
	}{
		{
			name: "Успешная регистрация",
			req:  req,
			mockSetup: func(d *authDeps) {
				d.users.On("GetUserByEmail", ctx, req.Email).Return(nil, repository.ErrUserNotFound).Once()
				d.users.On("CreateUser", ctx, mock.MatchedBy(func(u *models.User) bool {
					return u.Username == req.Username && u.Email == req.Email &&
						bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) == nil
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*models.User).ID = 1
				}).Return(int64(1), nil).Once()
				d.tokens.On("IssueSessionToken", int64(1), req.Email).Return("jwt-token", nil).Once()
				d.mailer.On("SendWelcomeEmail", mock.Anything, req.Email, req.Username).Return(nil).Once()
			},
		},
		{
			name:          "Пустые поля",
			req:           models.RegisterRequest{Username: " ", Email: "alice@example.com", Password: "x"},
			mockSetup:     func(_ *authDeps) {},
			expectedError: services.ErrMissingFields,
		},
		{
			name: "Email уже занят",
			req:  req,
			mockSetup: func(d *authDeps) {
				d.users.On("GetUserByEmail", ctx, req.Email).Return(&models.User{ID: 5}, nil).Once()
			},
			expectedError: services.ErrEmailTaken,
		},
		{
			name: "Имя пользователя занято",
			req:  req,
			mockSetup: func(d *authDeps) {
				d.users.On("GetUserByEmail", ctx, req.Email).Return(nil, repository.ErrUserNotFound).Once()
				d.users.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).
					Return(int64(0), repository.ErrUsernameTaken).Once()
			},
			expectedError: services.ErrUsernameTaken,
		},
		{
			name: "Ошибка репозитория при создании",
			req:  req,
			mockSetup: func(d *authDeps) {
				d.users.On("GetUserByEmail", ctx, req.Email).Return(nil, repository.ErrUserNotFound).Once()
				d.users.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).
					Return(int64(0), errors.New("some db error")).Once()
			},
			expectedError: services.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newAuthService()
			tt.mockSetup(d)

			resp, err := svc.Register(ctx, tt.req)

			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, resp)
				assert.Empty(t, d.tasks.Names)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "jwt-token", resp.Token)
				assert.Equal(t, int64(1), resp.User.ID)
				assert.Equal(t, []string{"welcome-email"}, d.tasks.Names)
			}
			d.assertExpectations(t)
		})
	}
}

func TestAuthService_Register_MailFailureDoesNotFail(t *testing.T) {
	ctx := context.Background()
	svc, d := newAuthService()
	req := models.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "secret"}

	d.users.On("GetUserByEmail", ctx, req.Email).Return(nil, repository.ErrUserNotFound).Once()
	d.users.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).Return(int64(2), nil).Once()
	d.tokens.On("IssueSessionToken", mock.Anything, req.Email).Return("jwt", nil).Once()
	d.mailer.On("SendWelcomeEmail", mock.Anything, req.Email, req.Username).Return(errors.New("smtp down")).Once()

	resp, err := svc.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.Token)
	assert.Len(t, d.tasks.Errors, 1)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: 3, Username: "alice", Email: "alice@example.com", PasswordHash: string(hash)}

	tests := []struct {
		name          string
		req           models.LoginRequest
		mockSetup     func(d *authDeps)
		expectedError error
	}{
		{
			name: "Успешный вход",
			req:  models.LoginRequest{Email: user.Email, Password: "password123"},
			mockSetup: func(d *authDeps) {
				d.users.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()
				d.tokens.On("IssueSessionToken", user.ID, user.Email).Return("jwt-token", nil).Once()
			},
		},
		{
			name: "Неверный пароль",
			req:  models.LoginRequest{Email: user.Email, Password: "wrong"},
			mockSetup: func(d *authDeps) {
				d.users.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()
			},
			expectedError: services.ErrInvalidCredentials,
		},
		{
			name: "Пользователь не найден",
			req:  models.LoginRequest{Email: "ghost@example.com", Password: "password123"},
			mockSetup: func(d *authDeps) {
				d.users.On("GetUserByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound).Once()
			},
			expectedError: services.ErrInvalidCredentials,
		},
		{
			name:          "Пустой пароль",
			req:           models.LoginRequest{Email: user.Email},
			mockSetup:     func(_ *authDeps) {},
			expectedError: services.ErrMissingFields,
		},
		{
			name: "Ошибка репозитория",
			req:  models.LoginRequest{Email: user.Email, Password: "password123"},
			mockSetup: func(d *authDeps) {
				d.users.On("GetUserByEmail", ctx, user.Email).Return(nil, errors.New("db down")).Once()
			},
			expectedError: services.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newAuthService()
			tt.mockSetup(d)

			resp, err := svc.Login(ctx, tt.req)

			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "jwt-token", resp.Token)
				assert.Equal(t, user, resp.User)
			}
			d.assertExpectations(t)
		})
	}
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: 9, Username: "carol", Email: "carol@example.com"}

	t.Run("Неизвестный email не раскрывается", func(t *testing.T) {
		svc, d := newAuthService()
		d.users.On("GetUserByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrUserNotFound).Once()

		err := svc.RequestPasswordReset(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Empty(t, d.tasks.Names)
		d.assertExpectations(t)
	})

	t.Run("Письмо со ссылкой на фронтенд", func(t *testing.T) {
		svc, d := newAuthService()
		d.users.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()
		d.tokens.On("IssuePasswordResetToken", ctx, user.ID).Return("raw-token", nil).Once()
		d.mailer.On("SendPasswordResetEmail", mock.Anything, user.Email, user.Username,
			"http://frontend.test/reset-password/raw-token").Return(nil).Once()

		require.NoError(t, svc.RequestPasswordReset(ctx, user.Email))
		assert.Equal(t, []string{"password-reset-email"}, d.tasks.Names)
		d.assertExpectations(t)
	})

	t.Run("Ошибка отправки письма не влияет на ответ", func(t *testing.T) {
		svc, d := newAuthService()
		d.users.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()
		d.tokens.On("IssuePasswordResetToken", ctx, user.ID).Return("raw-token", nil).Once()
		d.mailer.On("SendPasswordResetEmail", mock.Anything, user.Email, user.Username, mock.Anything).
			Return(errors.New("smtp down")).Once()

		require.NoError(t, svc.RequestPasswordReset(ctx, user.Email))
		assert.Len(t, d.tasks.Errors, 1)
	})

	t.Run("Пустой email", func(t *testing.T) {
		svc, _ := newAuthService()
		assert.ErrorIs(t, svc.RequestPasswordReset(ctx, "  "), services.ErrMissingFields)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Новый пароль хешируется перед погашением токена", func(t *testing.T) {
		svc, d := newAuthService()
		d.tokens.On("ConsumePasswordResetToken", ctx, "raw-token", mock.MatchedBy(func(hash string) bool {
			return strings.HasPrefix(hash, "$2") &&
				bcrypt.CompareHashAndPassword([]byte(hash), []byte("new-password")) == nil
		})).Return(nil).Once()

		require.NoError(t, svc.ResetPassword(ctx, "raw-token", "new-password"))
		d.assertExpectations(t)
	})

	t.Run("Недействительный токен", func(t *testing.T) {
		svc, d := newAuthService()
		d.tokens.On("ConsumePasswordResetToken", ctx, "bad", mock.Anything).
			Return(services.ErrInvalidResetToken).Once()

		assert.ErrorIs(t, svc.ResetPassword(ctx, "bad", "new-password"), services.ErrInvalidResetToken)
	})

	t.Run("Пустые поля", func(t *testing.T) {
		svc, _ := newAuthService()
		assert.ErrorIs(t, svc.ResetPassword(ctx, "", "x"), services.ErrMissingFields)
		assert.ErrorIs(t, svc.ResetPassword(ctx, "x", ""), services.ErrMissingFields)
	})
}
