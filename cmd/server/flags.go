package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
)

const (
	defaultServerAddr  = ":4000"
	defaultFrontendURL = "http://localhost:3000"
	defaultCORSOrigin  = "http://localhost:5173"

	// Переменные окружения сервера.
	envServerAddr  = "SERVER_ADDRESS"
	envTLSCertFile = "TLS_CERT_FILE"
	envTLSKeyFile  = "TLS_KEY_FILE"
	envDatabaseDSN = "DATABASE_DSN"
	envJWTSecret   = "JWT_SECRET" //nolint:gosec // Имя переменной окружения, а не секрет
	envFrontendURL = "FRONTEND_URL"
	envCORSOrigin  = "CORS_ORIGIN"

	// Переменные окружения для MinIO (значения по умолчанию из docker-compose).
	envMinioEndpoint     = "MINIO_ENDPOINT"
	envMinioUser         = "MINIO_USER"
	envMinioPassword     = "MINIO_PASSWORD"
	envMinioBucket       = "MINIO_BUCKET"
	envMinioUseSSL       = "MINIO_USE_SSL"
	envMinioRegion       = "MINIO_REGION"
	defaultMinioEndpoint = "localhost:9000"
	defaultMinioUser     = "minioadmin"
	defaultMinioPassword = "minioadmin"
	defaultMinioBucket   = "social-media-uploads"

	// Переменные окружения для SMTP.
	envEmailHost     = "EMAIL_HOST"
	envEmailPort     = "EMAIL_PORT"
	envEmailUser     = "EMAIL_USER"
	envEmailPassword = "EMAIL_PASSWORD" //nolint:gosec // Имя переменной окружения, а не секрет
	envEmailFrom     = "EMAIL_FROM"
	envEmailSecure   = "EMAIL_SECURE"
	defaultEmailPort = 587
)

type minioConfig struct {
	Endpoint string
	User     string
	Password string
	Bucket   string
	Region   string
	UseSSL   bool
}

type emailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Secure   bool
}

// config хранит конфигурацию сервера.
type config struct {
	Addr        string
	CertFile    string
	KeyFile     string
	DatabaseDSN string
	JWTSecret   string
	FrontendURL string
	CORSOrigin  string
	Minio       minioConfig
	Email       emailConfig
}

// TLSEnabled - сервер запускается по HTTPS, только если заданы и сертификат, и ключ.
func (c *config) TLSEnabled() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

// parseFlags разбирает флаги и переменные окружения, возвращает config или ошибку.
// Приоритет: флаг, затем переменная окружения, затем значение по умолчанию.
func parseFlags() (*config, error) {
	cfg := &config{}

	// Определяем флаги
	flag.StringVar(&cfg.Addr, "addr", "",
		fmt.Sprintf("Адрес HTTP-сервера (env: %s, default: %s)", envServerAddr, defaultServerAddr))
	flag.StringVar(&cfg.CertFile, "cert-file", "",
		fmt.Sprintf("Путь к файлу TLS-сертификата (env: %s)", envTLSCertFile))
	flag.StringVar(&cfg.KeyFile, "key-file", "",
		fmt.Sprintf("Путь к файлу TLS-ключа (env: %s)", envTLSKeyFile))
	flag.StringVar(&cfg.DatabaseDSN, "database-dsn", "",
		fmt.Sprintf("Строка подключения к базе данных (env: %s)", envDatabaseDSN))
	flag.StringVar(&cfg.JWTSecret, "jwt-secret", "",
		fmt.Sprintf("Секрет для подписи JWT (env: %s)", envJWTSecret))
	flag.StringVar(&cfg.FrontendURL, "frontend-url", "",
		fmt.Sprintf("Адрес фронтенда для ссылок в письмах (env: %s, default: %s)", envFrontendURL, defaultFrontendURL))
	flag.StringVar(&cfg.CORSOrigin, "cors-origin", "",
		fmt.Sprintf("Разрешенный CORS origin (env: %s, default: %s)", envCORSOrigin, defaultCORSOrigin))

	// Парсим флаги
	flag.Parse()

	// Применяем переменные окружения, если флаги не заданы
	applyEnv(&cfg.Addr, envServerAddr, defaultServerAddr)
	applyEnv(&cfg.CertFile, envTLSCertFile, "")
	applyEnv(&cfg.KeyFile, envTLSKeyFile, "")
	applyEnv(&cfg.DatabaseDSN, envDatabaseDSN, "")
	applyEnv(&cfg.JWTSecret, envJWTSecret, "")
	applyEnv(&cfg.FrontendURL, envFrontendURL, defaultFrontendURL)
	applyEnv(&cfg.CORSOrigin, envCORSOrigin, defaultCORSOrigin)

	cfg.Minio = minioConfig{
		Endpoint: getEnv(envMinioEndpoint, defaultMinioEndpoint),
		User:     getEnv(envMinioUser, defaultMinioUser),
		Password: getEnv(envMinioPassword, defaultMinioPassword),
		Bucket:   getEnv(envMinioBucket, defaultMinioBucket),
		Region:   getEnv(envMinioRegion, ""),
		UseSSL:   getEnvBool(envMinioUseSSL, false),
	}
	cfg.Email = emailConfig{
		Host:     getEnv(envEmailHost, ""),
		Port:     getEnvInt(envEmailPort, defaultEmailPort),
		User:     getEnv(envEmailUser, ""),
		Password: getEnv(envEmailPassword, ""),
		From:     getEnv(envEmailFrom, ""),
		Secure:   getEnvBool(envEmailSecure, false),
	}

	// Проверяем обязательные параметры
	if cfg.DatabaseDSN == "" {
		return nil, errors.New("не указана строка подключения к БД (--database-dsn или " + envDatabaseDSN + ")")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("не указан секрет JWT (--jwt-secret или " + envJWTSecret + ")")
	}
	if (cfg.CertFile == "") != (cfg.KeyFile == "") {
		return nil, errors.New("для HTTPS нужны и сертификат, и ключ (" + envTLSCertFile + ", " + envTLSKeyFile + ")")
	}

	return cfg, nil
}

// applyEnv заполняет пустое значение флага из окружения или значением по умолчанию.
func applyEnv(value *string, key, fallback string) {
	if *value != "" {
		return
	}
	if env, ok := os.LookupEnv(key); ok {
		*value = env
		return
	}
	*value = fallback
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Переменная окружения '%s' содержит не число ('%s'), используется значение по умолчанию: %d",
			key, raw, fallback)
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Переменная окружения '%s' содержит не bool ('%s'), используется значение по умолчанию: %t",
			key, raw, fallback)
		return fallback
	}
	return value
}
