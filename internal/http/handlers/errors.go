package handlers

import (
	"context"
	"errors"
	"net/http"

	"contentportal/internal/automation"
	"contentportal/internal/domain"
	"contentportal/internal/middleware"
	"contentportal/internal/videoservice"
)

const timeoutMessage = "timed out waiting for automation response; the request may still be processing in the background"

// fail maps a service error onto the HTTP error taxonomy and writes it.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation    *domain.ValidationError
		remote        *automation.RemoteError
		autoTransport *automation.TransportError
		vidTransport  *videoservice.TransportError
	)
	switch {
	case errors.As(err, &validation):
		a.error(w, http.StatusBadRequest, "validation_failed", validation.Error())
	case errors.Is(err, domain.ErrInvalidStatus):
		a.error(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "No se encontró el item")
	case errors.Is(err, domain.ErrImmutableRecord):
		a.error(w, http.StatusConflict, "immutable_record", err.Error())
	case errors.Is(err, videoservice.ErrMissingVideoID):
		a.error(w, http.StatusBadRequest, "bad_request", "Se requiere el parámetro videoId")
	case errors.Is(err, automation.ErrTimeout):
		a.error(w, http.StatusGatewayTimeout, "automation_timeout", timeoutMessage)
	case errors.Is(err, automation.ErrMissingWebhookURL):
		a.error(w, http.StatusServiceUnavailable, "automation_unconfigured", "automation webhook is not configured")
	case errors.As(err, &remote):
		a.error(w, http.StatusBadGateway, "automation_error", remote.Message)
	case errors.Is(err, automation.ErrNoTaskID), errors.Is(err, automation.ErrNormalizeDepth):
		a.error(w, http.StatusBadGateway, "automation_error", err.Error())
	case errors.As(err, &autoTransport):
		a.error(w, http.StatusBadGateway, "automation_unavailable", autoTransport.Error())
	case errors.As(err, &vidTransport):
		a.error(w, http.StatusBadGateway, "video_service_unavailable", vidTransport.Error())
	case errors.Is(err, context.DeadlineExceeded):
		a.error(w, http.StatusGatewayTimeout, "timeout", "the request timed out")
	default:
		a.Logger.Error().Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "No se pudo completar la operación.")
	}
}
