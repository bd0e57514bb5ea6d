package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"vacationbooking/internal/delivery/http/helpers"
	"vacationbooking/internal/domain"
)

// writeServiceError maps a service failure onto the API error envelope.
// Business-rule failures keep their message; anything unexpected becomes a
// logged 500.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrPublished):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodePublished, err.Error())
	case errors.Is(err, domain.ErrAlreadyPublished),
		errors.Is(err, domain.ErrDuplicateTitle),
		errors.Is(err, domain.ErrDuplicateName),
		errors.Is(err, domain.ErrPeriodConflict):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidBooking), errors.Is(err, domain.ErrMalformedDateTime):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}
