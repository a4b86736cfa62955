package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/mailer"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/storage"
	"github.com/stretchr/testify/mock"
)

var (
	_ storage.FileStorage = (*FileStorage)(nil)
	_ mailer.Mailer       = (*Mailer)(nil)
)

// FileStorage - мок storage.FileStorage.
type FileStorage struct {
	mock.Mock
}

func (m *FileStorage) UploadFile(
	ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string,
) error {
	return m.Called(ctx, objectKey, reader, size, contentType).Error(0)
}

func (m *FileStorage) DownloadFile(ctx context.Context, objectKey string) (*storage.Object, error) {
	args := m.Called(ctx, objectKey)
	obj, _ := args.Get(0).(*storage.Object)
	return obj, args.Error(1)
}

func (m *FileStorage) DeleteFile(ctx context.Context, objectKey string) error {
	return m.Called(ctx, objectKey).Error(0)
}

// Mailer - мок mailer.Mailer.
type Mailer struct {
	mock.Mock
}

func (m *Mailer) SendWelcomeEmail(ctx context.Context, to, username string) error {
	return m.Called(ctx, to, username).Error(0)
}

func (m *Mailer) SendPasswordResetEmail(ctx context.Context, to, username, resetURL string) error {
	return m.Called(ctx, to, username, resetURL).Error(0)
}

// TaskRunner выполняет задачи синхронно и запоминает их имена и ошибки.
type TaskRunner struct {
	mu     sync.Mutex
	Names  []string
	Errors []error
}

func (r *TaskRunner) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	err := fn(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.Names = append(r.Names, name)
	if err != nil {
		r.Errors = append(r.Errors, err)
	}
}
