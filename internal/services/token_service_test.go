package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/repository"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/services"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// memResetRepo - хранилище токенов сброса в памяти с семантикой Postgres-репозитория.
type memResetRepo struct {
	mu        sync.Mutex
	nextID    int64
	byUser    map[int64]*models.PasswordReset
	passwords map[int64]string
}

func newMemResetRepo() *memResetRepo {
	return &memResetRepo{
		byUser:    make(map[int64]*models.PasswordReset),
		passwords: make(map[int64]string),
	}
}

func (r *memResetRepo) UpsertPasswordReset(_ context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.byUser[userID] = &models.PasswordReset{ID: r.nextID, UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt}
	return nil
}

func (r *memResetRepo) FindValidPasswordReset(_ context.Context, tokenHash string, now time.Time) (*models.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(tokenHash, now)
}

func (r *memResetRepo) findLocked(tokenHash string, now time.Time) (*models.PasswordReset, error) {
	for _, reset := range r.byUser {
		if reset.TokenHash == tokenHash && reset.ExpiresAt.After(now) {
			return reset, nil
		}
	}
	return nil, repository.ErrPasswordResetNotFound
}

func (r *memResetRepo) DeletePasswordReset(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, reset := range r.byUser {
		if reset.ID == id {
			delete(r.byUser, userID)
			return nil
		}
	}
	return repository.ErrPasswordResetNotFound
}

func (r *memResetRepo) ConsumePasswordReset(_ context.Context, tokenHash, passwordHash string, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reset, err := r.findLocked(tokenHash, now)
	if err != nil {
		return 0, err
	}
	r.passwords[reset.UserID] = passwordHash
	delete(r.byUser, reset.UserID)
	return reset.UserID, nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTokenService(repo repository.PasswordResetRepository, clock *fakeClock) services.TokenService {
	return services.NewTokenService(testSecret, repo, services.WithClock(clock.Now))
}

func TestTokenService_SessionToken(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc := newTokenService(newMemResetRepo(), clock)

	token, err := svc.IssueSessionToken(42, "alice@example.com")
	require.NoError(t, err)

	t.Run("Валидный токен", func(t *testing.T) {
		p, verifyErr := svc.VerifySessionToken(token)
		require.NoError(t, verifyErr)
		assert.Equal(t, &models.Principal{ID: 42, Email: "alice@example.com"}, p)
	})

	t.Run("Токен действует почти 7 дней", func(t *testing.T) {
		c := &fakeClock{now: clock.now.Add(services.SessionTokenTTL - time.Minute)}
		_, verifyErr := newTokenService(newMemResetRepo(), c).VerifySessionToken(token)
		assert.NoError(t, verifyErr)
	})

	t.Run("Истекший токен", func(t *testing.T) {
		c := &fakeClock{now: clock.now.Add(services.SessionTokenTTL + time.Minute)}
		_, verifyErr := newTokenService(newMemResetRepo(), c).VerifySessionToken(token)
		assert.ErrorIs(t, verifyErr, services.ErrInvalidToken)
	})

	t.Run("Чужая подпись", func(t *testing.T) {
		other := services.NewTokenService("other-secret", newMemResetRepo(), services.WithClock(clock.Now))
		_, verifyErr := other.VerifySessionToken(token)
		assert.ErrorIs(t, verifyErr, services.ErrInvalidToken)
	})

	t.Run("Мусор вместо токена", func(t *testing.T) {
		_, verifyErr := svc.VerifySessionToken("not-a-jwt")
		assert.ErrorIs(t, verifyErr, services.ErrInvalidToken)
	})

	t.Run("Токен без срока действия", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 42, "email": "a@b.c"})
		raw, signErr := unsigned.SignedString([]byte(testSecret))
		require.NoError(t, signErr)

		_, verifyErr := svc.VerifySessionToken(raw)
		assert.ErrorIs(t, verifyErr, services.ErrInvalidToken)
	})

	t.Run("Алгоритм none отклоняется", func(t *testing.T) {
		none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"id": 42, "exp": clock.now.Add(time.Hour).Unix(),
		})
		raw, signErr := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, signErr)

		_, verifyErr := svc.VerifySessionToken(raw)
		assert.ErrorIs(t, verifyErr, services.ErrInvalidToken)
	})
}

func TestTokenService_PasswordResetLifecycle(t *testing.T) {
	ctx := context.Background()
	const userID = int64(7)

	t.Run("Токен хранится только в виде хеша", func(t *testing.T) {
		repo := newMemResetRepo()
		svc := newTokenService(repo, &fakeClock{now: time.Now()})

		token, err := svc.IssuePasswordResetToken(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, token, 64)

		stored := repo.byUser[userID]
		require.NotNil(t, stored)
		assert.NotEqual(t, token, stored.TokenHash)
		assert.Len(t, stored.TokenHash, 64)
	})

	t.Run("Токен одноразовый", func(t *testing.T) {
		repo := newMemResetRepo()
		svc := newTokenService(repo, &fakeClock{now: time.Now()})

		token, err := svc.IssuePasswordResetToken(ctx, userID)
		require.NoError(t, err)

		require.NoError(t, svc.ConsumePasswordResetToken(ctx, token, "hash-1"))
		assert.Equal(t, "hash-1", repo.passwords[userID])

		err = svc.ConsumePasswordResetToken(ctx, token, "hash-2")
		assert.ErrorIs(t, err, services.ErrInvalidResetToken)
		assert.Equal(t, "hash-1", repo.passwords[userID])
	})

	t.Run("Повторный запрос аннулирует прежний токен", func(t *testing.T) {
		repo := newMemResetRepo()
		svc := newTokenService(repo, &fakeClock{now: time.Now()})

		first, err := svc.IssuePasswordResetToken(ctx, userID)
		require.NoError(t, err)
		second, err := svc.IssuePasswordResetToken(ctx, userID)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)

		assert.ErrorIs(t, svc.ConsumePasswordResetToken(ctx, first, "hash"), services.ErrInvalidResetToken)
		assert.NoError(t, svc.ConsumePasswordResetToken(ctx, second, "hash"))
	})

	t.Run("Токен истекает через час", func(t *testing.T) {
		repo := newMemResetRepo()
		clock := &fakeClock{now: time.Now()}
		svc := newTokenService(repo, clock)

		token, err := svc.IssuePasswordResetToken(ctx, userID)
		require.NoError(t, err)

		clock.Advance(services.PasswordResetTokenTTL + time.Second)
		assert.ErrorIs(t, svc.ConsumePasswordResetToken(ctx, token, "hash"), services.ErrInvalidResetToken)
		assert.Empty(t, repo.passwords)
	})

	t.Run("Пустой и неизвестный токены", func(t *testing.T) {
		svc := newTokenService(newMemResetRepo(), &fakeClock{now: time.Now()})
		assert.ErrorIs(t, svc.ConsumePasswordResetToken(ctx, "", "hash"), services.ErrInvalidResetToken)
		assert.ErrorIs(t, svc.ConsumePasswordResetToken(ctx, "deadbeef", "hash"), services.ErrInvalidResetToken)
	})
}
