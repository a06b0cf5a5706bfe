package handler

import (
	"errors"
	"net/http"

	"chmfc/internal/core"

	pbCore "github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrAuthRequired), errors.Is(err, core.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrAlreadyVoted),
		errors.Is(err, core.ErrVoteConflict),
		errors.Is(err, core.ErrEmailTaken),
		errors.Is(err, core.ErrPollClosed):
		return http.StatusConflict
	case errors.Is(err, core.ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": message}. The message is shown to the user as is.
func respondError(e *pbCore.RequestEvent, logger *zap.Logger, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("[HTTP] request failed",
			zap.String("method", e.Request.Method),
			zap.String("path", e.Request.URL.Path),
			zap.Error(err),
		)
	}
	return e.JSON(status, map[string]string{"error": err.Error()})
}

func badRequest(e *pbCore.RequestEvent, msg string) error {
	return e.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}

func ok(e *pbCore.RequestEvent, msg string) error {
	return e.JSON(http.StatusOK, map[string]string{"message": msg})
}
