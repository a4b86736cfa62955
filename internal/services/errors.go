package services

import "errors"

// Code - машиночитаемый код ошибки, отдаваемый клиенту.
type Code string

// Коды ошибок, общие для REST и GraphQL.
const (
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeBadUserInput    Code = "BAD_USER_INPUT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeInternal        Code = "INTERNAL_SERVER_ERROR"
)

// Error - ошибка сервисного слоя с кодом и сообщением для клиента.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CodeOf возвращает код ошибки. Ошибки без кода считаются внутренними.
func CodeOf(err error) Code {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return CodeInternal
}

// MessageOf возвращает сообщение, которое можно показать клиенту.
func MessageOf(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return ErrInternal.Message
}

// Кастомные ошибки сервиса.
var (
	ErrInternal = newError(CodeInternal, "Внутренняя ошибка сервера")

	ErrUnauthenticated    = newError(CodeUnauthenticated, "Требуется аутентификация")
	ErrInvalidToken       = newError(CodeUnauthenticated, "Невалидный токен")
	ErrInvalidCredentials = newError(CodeUnauthenticated, "Неверный email или пароль")

	ErrForbidden = newError(CodeForbidden, "Доступ запрещен")

	ErrMissingFields     = newError(CodeBadUserInput, "Не заполнены обязательные поля")
	ErrEmailTaken        = newError(CodeBadUserInput, "Пользователь с таким email уже существует")
	ErrUsernameTaken     = newError(CodeBadUserInput, "Имя пользователя уже занято")
	ErrInvalidResetToken = newError(CodeBadUserInput, "Недействительный или истекший токен сброса пароля")
	ErrEmptyPost         = newError(CodeBadUserInput, "Нужен текст поста или изображение")
	ErrInvalidImage      = newError(CodeBadUserInput, "Неверный тип файла. Разрешены только изображения")
	ErrImageTooLarge     = newError(CodeBadUserInput, "Файл слишком большой. Максимальный размер 5MB")
	ErrEmptyComment      = newError(CodeBadUserInput, "Нужен текст комментария")
	ErrSelfFollow        = newError(CodeBadUserInput, "Нельзя подписаться на себя")
	ErrAlreadyFollowing  = newError(CodeBadUserInput, "Вы уже подписаны на этого пользователя")
	ErrAlreadyLiked      = newError(CodeBadUserInput, "Вы уже лайкнули этот пост")
	ErrInvalidID         = newError(CodeBadUserInput, "Неверный идентификатор")

	ErrUserNotFound    = newError(CodeNotFound, "Пользователь не найден")
	ErrPostNotFound    = newError(CodeNotFound, "Пост не найден")
	ErrCommentNotFound = newError(CodeNotFound, "Комментарий не найден")
	ErrLikeNotFound    = newError(CodeNotFound, "Лайк не найден")
	ErrNotFollowing    = newError(CodeNotFound, "Вы не подписаны на этого пользователя")
)
