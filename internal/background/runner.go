// Package background запускает отвязанные от запроса задачи (письма, удаление файлов).
// Ошибки задач уходят в собственный канал и логируются, вызывающий их не ждет.
package background

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

const (
	defaultTaskTimeout = 30 * time.Second
	errorsBufferSize   = 32
)

// TaskError - ошибка фоновой задачи.
type TaskError struct {
	Task string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("фоновая задача '%s': %v", e.Task, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// ErrRunnerClosed возвращается задачам, запущенным после Close.
var ErrRunnerClosed = errors.New("обработчик фоновых задач остановлен")

// Runner выполняет задачи в отдельных горутинах.
type Runner struct {
	timeout time.Duration
	onError func(error)

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	errs    chan error
	drained chan struct{}
}

// Option настраивает Runner.
type Option func(*Runner)

// WithTimeout задает предельное время выполнения одной задачи.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithErrorHandler задает обработчик ошибок задач (по умолчанию - запись в лог).
func WithErrorHandler(fn func(error)) Option {
	return func(r *Runner) {
		r.onError = fn
	}
}

// NewRunner создает Runner и запускает горутину чтения канала ошибок.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		timeout: defaultTaskTimeout,
		onError: func(err error) {
			log.Printf("[Background] %v", err)
		},
		errs:    make(chan error, errorsBufferSize),
		drained: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}

	go r.drain()
	return r
}

// Go запускает fn с контекстом, унаследовавшим значения ctx, но не его отмену.
func (r *Runner) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.onError(&TaskError{Task: name, Err: ErrRunnerClosed})
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		taskCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		if err := r.run(taskCtx, fn); err != nil {
			r.errs <- &TaskError{Task: name, Err: err}
		}
	}()
}

func (r *Runner) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("паника: %v", p)
		}
	}()
	return fn(ctx)
}

func (r *Runner) drain() {
	defer close(r.drained)
	for err := range r.errs {
		r.onError(err)
	}
}

// Close дожидается завершения запущенных задач и останавливает Runner.
// Повторный вызов безопасен.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		<-r.drained
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.wg.Wait()
	close(r.errs)
	<-r.drained
}
