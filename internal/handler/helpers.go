package handler

import (
	"errors"
	"net/http"

	"codolio/internal/domain"
	"codolio/internal/httputil"
)

// handleError converts domain errors to envelope HTTP responses. Storage
// fault detail is passed through: this is a personal tool, and the detail
// is worth more than hiding it.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
