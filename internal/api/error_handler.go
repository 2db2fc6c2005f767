package api

import (
	"net/http"

	"github.com/lcampos/vocadeck/internal/errors"
	"github.com/lcampos/vocadeck/internal/logger"
)

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	// Check if it's already an AppError
	appErr, ok := err.(*errors.AppError)
	if !ok {
		// Wrap unknown errors as internal errors
		appErr = errors.NewInternalError(err)
	}

	status := appErr.Status
	if status < 400 {
		status = http.StatusInternalServerError
	}

	// Log based on status code
	if status >= 500 {
		log.Error("server error: %v", appErr)
	} else {
		log.Warn("client error: %v", appErr)
	}

	writeError(w, status, appErr.Message)
}
