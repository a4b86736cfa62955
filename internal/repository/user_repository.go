package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/dennysis/Social-Media-Feed-Backend/models"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const userColumns = `id, username, email, password_hash, created_at, updated_at`

// UserRepository определяет методы для работы с данными пользователей в хранилище.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []int64) ([]models.User, error)
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
}

// postgresUserRepository реализует UserRepository для PostgreSQL.
type postgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository создает новый экземпляр репозитория пользователей для PostgreSQL.
func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

// CreateUser создает нового пользователя в базе данных.
// Заполняет ID и временные метки переданного пользователя.
func (r *postgresUserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	query := `INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			if pgErr.Constraint == "users_username_key" {
				log.Printf("[Repo] Ошибка создания пользователя: имя '%s' уже занято", user.Username)
				return 0, ErrUsernameTaken
			}
			log.Printf("[Repo] Ошибка создания пользователя: email '%s' уже занят", user.Email)
			return 0, ErrEmailTaken
		}
		log.Printf("[Repo] Непредвиденная ошибка при создании пользователя '%s': %v", user.Username, err)
		return 0, fmt.Errorf("ошибка выполнения запроса на создание пользователя: %w", err)
	}

	log.Printf("[Repo] Пользователь '%s' успешно создан с ID %d", user.Username, user.ID)
	return user.ID, nil
}

// GetUserByID находит пользователя по ID.
func (r *postgresUserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	var user models.User

	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		log.Printf("[Repo] Ошибка при поиске пользователя ID %d: %v", id, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение пользователя: %w", err)
	}

	return &user, nil
}

// GetUserByEmail находит пользователя по email.
func (r *postgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	var user models.User

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("[Repo] Пользователь с email '%s' не найден", email)
			return nil, ErrUserNotFound
		}
		log.Printf("[Repo] Ошибка при поиске пользователя '%s': %v", email, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение пользователя: %w", err)
	}

	log.Printf("[Repo] Найден пользователь '%s' (ID: %d)", email, user.ID)
	return &user, nil
}

// GetUsersByIDs возвращает пользователей с указанными ID (порядок не гарантируется).
func (r *postgresUserRepository) GetUsersByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	query, args, err := sqlx.In(`SELECT `+userColumns+` FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса на получение пользователей: %w", err)
	}

	if err = r.db.SelectContext(ctx, &users, r.db.Rebind(query), args...); err != nil {
		log.Printf("[Repo] Ошибка при получении пользователей %v: %v", ids, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение пользователей: %w", err)
	}

	return users, nil
}

// UpdateUserPassword заменяет хеш пароля пользователя.
func (r *postgresUserRepository) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	return updateUserPassword(ctx, r.db, id, passwordHash)
}

func updateUserPassword(ctx context.Context, ex sqlx.ExecerContext, id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash=$1, updated_at=NOW() WHERE id=$2`

	res, err := ex.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		log.Printf("[Repo] Ошибка обновления пароля пользователя ID %d: %v", id, err)
		return fmt.Errorf("ошибка выполнения запроса на обновление пароля: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка получения числа обновленных строк: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	log.Printf("[Repo] Пароль пользователя ID %d обновлен", id)
	return nil
}

// Кастомные ошибки репозитория.
var (
	ErrUserNotFound  = errors.New("пользователь не найден")
	ErrUsernameTaken = errors.New("имя пользователя уже занято")
	ErrEmailTaken    = errors.New("email уже зарегистрирован")
)
