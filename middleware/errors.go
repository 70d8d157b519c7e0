// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/rangepoll/models"
)

// WriteDomainError maps a domain error onto the HTTP surface and writes the
// JSON error body. Storage failures and anything unrecognized become a
// plain 500 without leaking the cause.
func WriteDomainError(w http.ResponseWriter, err error) {
	var (
		duplicate     *models.DuplicateRankError
		unimplemented *models.UnimplementedError
	)
	switch {
	case errors.Is(err, models.ErrNotFound):
		ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrPermissionDenied):
		ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrInvalidInput):
		ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrTimedOut):
		ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		ErrorResponse(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &duplicate):
		ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &unimplemented):
		ErrorResponse(w, http.StatusNotImplemented, err.Error())
	default:
		slog.Error("request failed", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "internal error")
	}
}
