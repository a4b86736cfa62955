package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/background"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/graph"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/handlers"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/mailer"
	appmiddleware "github.com/dennysis/Social-Media-Feed-Backend/internal/middleware"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/repository"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/services"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 15 * time.Second
	corsMaxAge             = 300
)

// Точки подмены внешних подключений в тестах.
var (
	newPostgresDB  = repository.NewPostgresDB
	runMigrations  = repository.RunMigrations
	newFileStorage = func(ctx context.Context, cfg storage.MinioConfig) (storage.FileStorage, error) {
		return storage.NewMinioClient(ctx, cfg)
	}
)

// routes - обработчики и проверка токенов, из которых собирается роутер.
type routes struct {
	verifier appmiddleware.TokenVerifier
	auth     *handlers.AuthHandler
	users    *handlers.UserHandler
	posts    *handlers.PostHandler
	likes    *handlers.LikeHandler
	follows  *handlers.FollowHandler
	comments *handlers.CommentHandler
	uploads  *handlers.UploadHandler
	graphql  http.Handler
}

// Структура для хранения инициализированных зависимостей.
type dependencies struct {
	db          *sqlx.DB
	fileStorage storage.FileStorage
	runner      *background.Runner
	routes      routes
}

// close освобождает ресурсы: дожидается фоновых задач и закрывает БД.
func (d *dependencies) close() {
	if d.runner != nil {
		d.runner.Close()
	}
	if d.db != nil {
		if err := d.db.Close(); err != nil {
			log.Printf("Ошибка закрытия соединения с БД: %v", err)
		}
	}
}

// main - точка входа. Вызывает run и обрабатывает ошибку.
func main() {
	if err := run(); err != nil {
		log.Printf("Ошибка выполнения сервера: %v", err)
		os.Exit(1)
	}
}

// run содержит основную логику запуска сервера и возвращает ошибку.
func run() error {
	log.Println("Запуск сервера Social Media Feed...")

	cfg, err := parseFlags()
	if err != nil {
		return fmt.Errorf("ошибка конфигурации: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := setupDependencies(ctx, cfg)
	if err != nil {
		return fmt.Errorf("ошибка инициализации зависимостей: %w", err)
	}
	defer deps.close()

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      setupRouter(deps.routes, cfg.CORSOrigin),
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if cfg.TLSEnabled() {
			log.Printf("Запуск HTTPS-сервера на %s (сертификат: %s)...", cfg.Addr, cfg.CertFile)
			errCh <- server.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
			return
		}
		log.Printf("Запуск HTTP-сервера на %s...", cfg.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ошибка запуска сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Println("Получен сигнал остановки, завершаем работу...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}
	log.Println("Сервер остановлен.")
	return nil
}

// setupDependencies инициализирует и возвращает все необходимые зависимости сервера.
func setupDependencies(ctx context.Context, cfg *config) (*dependencies, error) {
	deps := &dependencies{}
	var err error

	// 1. Подключение к БД и миграции
	deps.db, err = newPostgresDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации БД: %w", err)
	}
	if err = runMigrations(ctx, deps.db); err != nil {
		deps.close()
		return nil, fmt.Errorf("ошибка миграций БД: %w", err)
	}

	// 2. Инициализация клиента MinIO
	deps.fileStorage, err = newFileStorage(ctx, storage.MinioConfig{
		Endpoint:        cfg.Minio.Endpoint,
		AccessKeyID:     cfg.Minio.User,
		SecretAccessKey: cfg.Minio.Password,
		UseSSL:          cfg.Minio.UseSSL,
		BucketName:      cfg.Minio.Bucket,
		Region:          cfg.Minio.Region,
	})
	if err != nil {
		deps.close()
		return nil, fmt.Errorf("ошибка инициализации клиента MinIO: %w", err)
	}

	// 3. Почта и фоновые задачи
	mail, err := mailer.New(mailer.Config{
		Host:        cfg.Email.Host,
		Port:        cfg.Email.Port,
		Username:    cfg.Email.User,
		Password:    cfg.Email.Password,
		From:        cfg.Email.From,
		Secure:      cfg.Email.Secure,
		FrontendURL: cfg.FrontendURL,
	})
	if err != nil {
		deps.close()
		return nil, fmt.Errorf("ошибка инициализации почтового клиента: %w", err)
	}
	deps.runner = background.NewRunner()

	// 4. Создание репозиториев
	userRepo := repository.NewPostgresUserRepository(deps.db)
	postRepo := repository.NewPostgresPostRepository(deps.db)
	likeRepo := repository.NewPostgresLikeRepository(deps.db)
	followRepo := repository.NewPostgresFollowRepository(deps.db)
	commentRepo := repository.NewPostgresCommentRepository(deps.db)
	resetRepo := repository.NewPostgresPasswordResetRepository(deps.db)

	// 5. Создание сервисов
	tokenService := services.NewTokenService(cfg.JWTSecret, resetRepo)
	authService := services.NewAuthService(userRepo, tokenService, mail, deps.runner, cfg.FrontendURL)
	postService := services.NewPostService(postRepo, userRepo, likeRepo, deps.fileStorage, deps.runner)
	userService := services.NewUserService(userRepo, followRepo, postService)
	likeService := services.NewLikeService(likeRepo, postRepo)
	followService := services.NewFollowService(followRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, postRepo, userRepo)

	graphHandler, err := graph.NewHandler(graph.Services{
		Auth:     authService,
		Users:    userService,
		Posts:    postService,
		Likes:    likeService,
		Follows:  followService,
		Comments: commentService,
	})
	if err != nil {
		deps.close()
		return nil, fmt.Errorf("ошибка построения GraphQL-схемы: %w", err)
	}

	// 6. Создание обработчиков
	deps.routes = routes{
		verifier: tokenService,
		auth:     handlers.NewAuthHandler(authService),
		users:    handlers.NewUserHandler(userService),
		posts:    handlers.NewPostHandler(postService),
		likes:    handlers.NewLikeHandler(likeService),
		follows:  handlers.NewFollowHandler(followService),
		comments: handlers.NewCommentHandler(commentService),
		uploads:  handlers.NewUploadHandler(deps.fileStorage),
		graphql:  graphHandler,
	}

	return deps, nil
}

// setupRouter настраивает и возвращает роутер chi.
func setupRouter(h routes, corsOrigin string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	}))

	requireAuth := appmiddleware.Authenticator(h.verifier)

	// --- Маршруты --- //
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong\n"))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.auth.Register)
		r.Post("/login", h.auth.Login)
		r.Post("/logout", h.auth.Logout)
		r.Post("/forgot-password", h.auth.ForgotPassword)
		r.Post("/reset-password", h.auth.ResetPassword)
	})

	r.Route("/users", func(r chi.Router) {
		r.With(requireAuth).Get("/me", h.users.Me)
		r.Get("/{id}", h.users.GetProfile)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", h.posts.List)
		r.Get("/{id}", h.posts.Get)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", h.posts.Create)
			r.Put("/{id}", h.posts.Update)
			r.Delete("/{id}", h.posts.Delete)
		})
	})

	r.Route("/likes", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/{postId}", h.likes.Like)
		r.Delete("/{postId}", h.likes.Unlike)
	})

	r.Route("/follows", func(r chi.Router) {
		r.Get("/{userId}/followers", h.follows.Followers)
		r.Get("/{userId}/following", h.follows.Following)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/{userId}", h.follows.Follow)
			r.Delete("/{userId}", h.follows.Unfollow)
		})
	})

	r.Route("/comments", func(r chi.Router) {
		r.Get("/post/{postId}", h.comments.ListByPost)
		r.Get("/{id}", h.comments.Get)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/post/{postId}", h.comments.Create)
			r.Put("/{id}", h.comments.Update)
			r.Delete("/{id}", h.comments.Delete)
		})
	})

	r.Get(storage.PublicPathPrefix+"*", h.uploads.Serve)

	r.With(appmiddleware.OptionalAuthenticator(h.verifier)).Post("/graphql", h.graphql.ServeHTTP)

	return r
}
