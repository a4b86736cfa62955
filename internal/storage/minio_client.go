// Package storage хранит изображения постов в S3-совместимом хранилище (MinIO).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// PublicPathPrefix - префикс URL, по которому сервер отдает изображения.
const PublicPathPrefix = "/uploads/"

const postImagesPrefix = "posts/"

// Ошибки хранилища.
var (
	ErrObjectNotFound = errors.New("объект не найден в хранилище")
	ErrInvalidKey     = errors.New("недопустимый ключ объекта")
)

// Object - содержимое объекта вместе с метаданными. Reader нужно закрыть.
type Object struct {
	io.ReadCloser
	Size        int64
	ContentType string
}

// FileStorage определяет интерфейс для взаимодействия с объектным хранилищем.
type FileStorage interface {
	UploadFile(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) error
	DownloadFile(ctx context.Context, objectKey string) (*Object, error)
	DeleteFile(ctx context.Context, objectKey string) error
}

// MinioClient реализует FileStorage для MinIO.
type MinioClient struct {
	client     *minio.Client
	bucketName string
}

// MinioConfig содержит параметры для подключения к MinIO.
type MinioConfig struct {
	Endpoint        string // Адрес MinIO (например, "localhost:9000")
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	BucketName      string
	Region          string
}

// NewMinioClient создает клиент MinIO и при необходимости бакет для изображений.
func NewMinioClient(ctx context.Context, cfg MinioConfig) (*MinioClient, error) {
	log.Printf("[Minio] Инициализация клиента для эндпоинта %s...", cfg.Endpoint)

	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации клиента MinIO: %w", err)
	}

	exists, err := minioClient.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки существования бакета '%s': %w", cfg.BucketName, err)
	}
	if !exists {
		log.Printf("[Minio] Бакет '%s' не найден, создаем...", cfg.BucketName)
		if err = minioClient.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("ошибка создания бакета '%s': %w", cfg.BucketName, err)
		}
	}

	log.Printf("[Minio] Клиент инициализирован для бакета '%s'", cfg.BucketName)
	return &MinioClient{
		client:     minioClient,
		bucketName: cfg.BucketName,
	}, nil
}

// UploadFile загружает файл в MinIO.
func (c *MinioClient) UploadFile(
	ctx context.Context,
	objectKey string,
	reader io.Reader,
	size int64,
	contentType string,
) error {
	uploadInfo, err := c.client.PutObject(ctx, c.bucketName, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		log.Printf("[Minio] Ошибка загрузки файла '%s': %v", objectKey, err)
		return fmt.Errorf("ошибка загрузки файла в MinIO: %w", err)
	}

	log.Printf("[Minio] Файл '%s' загружен, размер: %d, ETag: %s", objectKey, uploadInfo.Size, uploadInfo.ETag)
	return nil
}

// DownloadFile открывает объект на чтение.
// GetObject ленивый, поэтому наличие объекта проверяется через Stat.
func (c *MinioClient) DownloadFile(ctx context.Context, objectKey string) (*Object, error) {
	object, err := c.client.GetObject(ctx, c.bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, c.wrapError("получения", objectKey, err)
	}

	stat, err := object.Stat()
	if err != nil {
		_ = object.Close()
		return nil, c.wrapError("получения метаданных", objectKey, err)
	}

	return &Object{
		ReadCloser:  object,
		Size:        stat.Size,
		ContentType: stat.ContentType,
	}, nil
}

// DeleteFile удаляет объект. Отсутствие объекта ошибкой не считается.
func (c *MinioClient) DeleteFile(ctx context.Context, objectKey string) error {
	if err := c.client.RemoveObject(ctx, c.bucketName, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return c.wrapError("удаления", objectKey, err)
	}
	log.Printf("[Minio] Файл '%s' удален", objectKey)
	return nil
}

func (c *MinioClient) wrapError(action, objectKey string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrObjectNotFound
	}
	log.Printf("[Minio] Ошибка %s файла '%s': %v", action, objectKey, err)
	return fmt.Errorf("ошибка %s файла в MinIO: %w", action, err)
}

// NewPostImageKey генерирует уникальный ключ для изображения поста,
// сохраняя расширение исходного файла.
func NewPostImageKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if len(ext) > 8 || strings.ContainsAny(ext, "/\\") {
		ext = ""
	}
	return postImagesPrefix + uuid.NewString() + ext
}

// PublicURL возвращает путь, по которому изображение доступно клиентам.
func PublicURL(objectKey string) string {
	return PublicPathPrefix + objectKey
}

// KeyFromPublicPath извлекает ключ объекта из пути запроса вида /uploads/<key>.
func KeyFromPublicPath(urlPath string) (string, error) {
	key := strings.TrimPrefix(urlPath, PublicPathPrefix)
	if key == urlPath || key == "" || strings.Contains(key, "..") || !strings.HasPrefix(key, postImagesPrefix) {
		return "", ErrInvalidKey
	}
	return key, nil
}
