// Package apierr переводит доменные ошибки в ответы huma.
package apierr

import (
	"errors"

	"nodex/internal/domain/record"
	"nodex/internal/domain/user"
	"nodex/internal/domain/validation"
	"nodex/internal/utils/logger"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// From возвращает huma-ошибку для err. Неизвестные ошибки логируются и отдаются как 500 без деталей.
func From(log *slog.Logger, err error) error {
	var verrs validation.Errors

	switch {
	case errors.As(err, &verrs):
		details := make([]error, 0, len(verrs))
		for _, v := range verrs {
			details = append(details, &huma.ErrorDetail{
				Location: "body." + v.Field,
				Message:  v.Message,
			})
		}
		return huma.Error400BadRequest("validation failed", details...)
	case errors.Is(err, user.ErrDuplicateEmail):
		return huma.Error400BadRequest("This email is already in use.")
	case errors.Is(err, user.ErrInvalidCredentials):
		return huma.Error400BadRequest("Please try to login with correct credentials")
	case errors.Is(err, record.ErrConflict):
		return huma.Error400BadRequest("Record already exists")
	case errors.Is(err, record.ErrForbidden):
		return huma.Error403Forbidden("Access denied")
	case errors.Is(err, record.ErrNotFound), errors.Is(err, user.ErrNotFound):
		return huma.Error404NotFound("Record doesn't exist")
	}

	log.Error("internal error", logger.Err(err))
	return huma.Error500InternalServerError("internal error")
}
