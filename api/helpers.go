package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hanjelito/hackatonNasa2025/domain"
)

// errorResponse maps a domain error to a stable HTTP error body. Every
// failure yields a distinct kind so a client can decide whether to
// re-establish a session, resend, or give up; raw collaborator errors
// never cross this boundary.
func (h *Handler) errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, errorBody("invalid_input", "invalid request"))
	case errors.Is(err, domain.ErrSessionRequired):
		return c.JSON(http.StatusBadRequest, errorBody("session_required", "a session token is required; create a session first"))
	case errors.Is(err, domain.ErrSessionExpired):
		return c.JSON(http.StatusGone, errorBody("session_expired", "session expired; create a new session and resend"))
	case errors.Is(err, domain.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, errorBody("session_not_found", "no such session"))
	case errors.Is(err, domain.ErrCompletionFailed):
		return c.JSON(http.StatusBadGateway, errorBody("completion_failed", "the model backend did not return a reply"))
	default:
		h.logger.Error("internal error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorBody("internal", "internal error"))
	}
}

func errorBody(kind, message string) map[string]string {
	return map[string]string{
		"error":   kind,
		"message": message,
	}
}
