package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/Sunil-havanur/Splitwise-Clone/internal/auth"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/models"
)

var errUnauthenticated = errors.New("authentication required")

// toConnectError maps domain errors onto Connect codes:
// validation -> invalid_argument, missing record -> not_found, credential problems ->
// unauthenticated. Anything unrecognized is internal and its detail stays in the log.
func toConnectError(logger *slog.Logger, op string, err error) error {
	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return connectErr
	case errors.Is(err, models.ErrValidation):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, models.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, errUnauthenticated):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}

	logger.Error(op+" failed", "error", err)
	return connect.NewError(connect.CodeInternal, errors.New("internal error"))
}

func requireField(field, value string) error {
	if value == "" {
		return &models.ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}
