package graph

import (
	"github.com/dennysis/Social-Media-Feed-Backend/internal/services"
	"github.com/graphql-go/graphql/gqlerrors"
)

var _ gqlerrors.ExtendedError = (*Error)(nil)

// Error - ошибка резолвера с кодом в extensions.code.
type Error struct {
	Code    services.Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Extensions реализует gqlerrors.ExtendedError.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.Code)}
}

// wrapError приводит любую ошибку сервиса к Error. Детали внутренних ошибок не раскрываются.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: services.CodeOf(err), Message: services.MessageOf(err)}
}

func badRequestErrors(message string) []gqlerrors.FormattedError {
	formatted := gqlerrors.NewFormattedError(message)
	formatted.Extensions = (&Error{Code: services.CodeBadUserInput, Message: message}).Extensions()
	return []gqlerrors.FormattedError{formatted}
}
