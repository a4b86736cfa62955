package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/handlers"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/mocks"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoutes(verifier *mocks.TokenService) routes {
	return routes{
		verifier: verifier,
		auth:     handlers.NewAuthHandler(nil),
		users:    handlers.NewUserHandler(nil),
		posts:    handlers.NewPostHandler(nil),
		likes:    handlers.NewLikeHandler(nil),
		follows:  handlers.NewFollowHandler(nil),
		comments: handlers.NewCommentHandler(nil),
		uploads:  handlers.NewUploadHandler(nil),
		graphql: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
	}
}

func TestSetupRouter(t *testing.T) {
	r := setupRouter(testRoutes(new(mocks.TokenService)), defaultCORSOrigin)
	require.NotNil(t, r)

	routesTable := []struct {
		method  string
		pattern string
	}{
		{http.MethodGet, "/ping"},
		{http.MethodPost, "/auth/register"},
		{http.MethodPost, "/auth/login"},
		{http.MethodPost, "/auth/logout"},
		{http.MethodPost, "/auth/forgot-password"},
		{http.MethodPost, "/auth/reset-password"},
		{http.MethodGet, "/users/me"},
		{http.MethodGet, "/users/{id}"},
		{http.MethodGet, "/posts/"},
		{http.MethodPost, "/posts/"},
		{http.MethodGet, "/posts/{id}"},
		{http.MethodPut, "/posts/{id}"},
		{http.MethodDelete, "/posts/{id}"},
		{http.MethodPost, "/likes/{postId}"},
		{http.MethodDelete, "/likes/{postId}"},
		{http.MethodPost, "/follows/{userId}"},
		{http.MethodDelete, "/follows/{userId}"},
		{http.MethodGet, "/follows/{userId}/followers"},
		{http.MethodGet, "/follows/{userId}/following"},
		{http.MethodGet, "/comments/post/{postId}"},
		{http.MethodPost, "/comments/post/{postId}"},
		{http.MethodGet, "/comments/{id}"},
		{http.MethodPut, "/comments/{id}"},
		{http.MethodDelete, "/comments/{id}"},
		{http.MethodGet, "/uploads/*"},
		{http.MethodPost, "/graphql"},
	}
	for _, tt := range routesTable {
		assert.True(t, hasRoute(r, tt.method, tt.pattern), "нет маршрута %s %s", tt.method, tt.pattern)
	}
}

func TestRouterBehaviour(t *testing.T) {
	verifier := new(mocks.TokenService)
	verifier.On("VerifySessionToken", "bad").Return(nil, errors.New("invalid"))
	r := setupRouter(testRoutes(verifier), defaultCORSOrigin)

	t.Run("ping", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong\n", rec.Body.String())
	})

	t.Run("Закрытый маршрут без токена", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/likes/1", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("GraphQL с невалидным токеном обрабатывается анонимно", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("CORS preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/posts", nil)
		req.Header.Set("Origin", defaultCORSOrigin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, defaultCORSOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

// Вспомогательная функция для проверки наличия маршрута.
func hasRoute(r chi.Router, method, pattern string) bool {
	found := false
	// Ошибка от chi.Walk используется только для прерывания обхода
	_ = chi.Walk(r, func(m, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if m == method && route == pattern {
			found = true
			return errors.New("found")
		}
		return nil
	})
	return found
}

func TestSetupDependencies(t *testing.T) {
	originalNewPostgresDB := newPostgresDB
	originalRunMigrations := runMigrations
	originalNewFileStorage := newFileStorage
	t.Cleanup(func() {
		newPostgresDB = originalNewPostgresDB
		runMigrations = originalRunMigrations
		newFileStorage = originalNewFileStorage
	})

	mockDB := func(_ string) (*sqlx.DB, error) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		return sqlx.NewDb(db, "sqlmock"), nil
	}
	noMigrations := func(context.Context, *sqlx.DB) error { return nil }
	mockStorage := func(context.Context, storage.MinioConfig) (storage.FileStorage, error) {
		return new(mocks.FileStorage), nil
	}
	cfg := &config{DatabaseDSN: "dsn", JWTSecret: "secret", FrontendURL: defaultFrontendURL}

	t.Run("Ошибка: БД недоступна", func(t *testing.T) {
		newPostgresDB = func(string) (*sqlx.DB, error) { return nil, errors.New("connection refused") }

		_, err := setupDependencies(context.Background(), cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ошибка инициализации БД")
	})

	t.Run("Ошибка: миграции", func(t *testing.T) {
		newPostgresDB = mockDB
		runMigrations = func(context.Context, *sqlx.DB) error { return errors.New("dirty") }

		_, err := setupDependencies(context.Background(), cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ошибка миграций БД")
	})

	t.Run("Ошибка: MinIO", func(t *testing.T) {
		newPostgresDB = mockDB
		runMigrations = noMigrations
		newFileStorage = func(context.Context, storage.MinioConfig) (storage.FileStorage, error) {
			return nil, errors.New("bucket")
		}

		_, err := setupDependencies(context.Background(), cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ошибка инициализации клиента MinIO")
	})

	t.Run("Успешная сборка зависимостей", func(t *testing.T) {
		newPostgresDB = mockDB
		runMigrations = noMigrations
		var got storage.MinioConfig
		newFileStorage = func(ctx context.Context, c storage.MinioConfig) (storage.FileStorage, error) {
			got = c
			return mockStorage(ctx, c)
		}
		withMinio := *cfg
		withMinio.Minio = minioConfig{Endpoint: "minio:9000", User: "u", Password: "p", Bucket: "b", Region: "eu-central-1"}

		deps, err := setupDependencies(context.Background(), &withMinio)
		require.NoError(t, err)
		defer deps.close()

		assert.Equal(t, storage.MinioConfig{
			Endpoint:        "minio:9000",
			AccessKeyID:     "u",
			SecretAccessKey: "p",
			BucketName:      "b",
			Region:          "eu-central-1",
		}, got)

		assert.NotNil(t, deps.db)
		assert.NotNil(t, deps.fileStorage)
		assert.NotNil(t, deps.runner)
		assert.NotNil(t, deps.routes.verifier)
		assert.NotNil(t, deps.routes.graphql)
		assert.NotNil(t, deps.routes.posts)
	})
}
