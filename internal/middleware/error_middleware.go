package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/estatecore/backend/internal/app/models/dto"
	"github.com/estatecore/backend/internal/pkg/apperrors"
	"github.com/estatecore/backend/internal/pkg/logger"
)

// HandleAPIError maps service-layer errors onto HTTP responses. Messages
// attached through apperrors.CustomError are passed through to the client;
// unknown errors are logged and reported generically.
func HandleAPIError(c *gin.Context, err error) {
	status := statusForError(err)
	message := messageForError(err, status)

	if status == 500 {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
	}

	c.JSON(status, dto.NewErrorResponse(message))
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrPictureRequired),
		errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrInvalidResetToken),
		errors.Is(err, apperrors.ErrInvalidVerificationToken),
		errors.Is(err, apperrors.ErrInvalidTransition):
		return 400
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrAccountNotVerified),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrUnauthorized):
		return 401
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return 403
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrAgentNotFound),
		errors.Is(err, apperrors.ErrPropertyNotFound),
		errors.Is(err, apperrors.ErrAppointmentNotFound):
		return 404
	default:
		return 500
	}
}

func messageForError(err error, status int) string {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}
	if status == 500 {
		return "Internal server error"
	}
	return err.Error()
}
