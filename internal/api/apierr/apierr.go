// Package apierr maps service errors to HTTP responses.
package apierr

import (
	"errors"
	"net/http"

	"prize_wheel/internal/model"
	"prize_wheel/internal/render"
	"prize_wheel/internal/repository"
	"prize_wheel/internal/service/auth"
	"prize_wheel/internal/service/kiosk"
	"prize_wheel/pkg/logger"
	"prize_wheel/pkg/resp"

	"go.uber.org/zap"
)

func Status(err error) int {
	var (
		fetchErr  *model.FetchError
		updateErr *model.UpdateError
	)
	switch {
	case errors.Is(err, model.ErrInvalidQuantity),
		errors.Is(err, model.ErrEmptyPatch),
		errors.Is(err, render.ErrInvalidRotation):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrPrizeNotFound), errors.Is(err, kiosk.ErrNoOutcome):
		return http.StatusNotFound
	case errors.Is(err, kiosk.ErrSpinInProgress):
		return http.StatusConflict
	case errors.As(err, &fetchErr), errors.As(err, &updateErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Write logs err and writes it with the mapped status. Internal errors are
// not echoed to the client.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	logger.L().Warn("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err))
	resp.WriteError(w, status, msg)
}
