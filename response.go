package ridelogfilter

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/theoremus-urban-solutions/ridelog-filter/auth"
	"github.com/theoremus-urban-solutions/ridelog-filter/ridelog"
	"github.com/theoremus-urban-solutions/ridelog-filter/schema"
)

type errorPayload struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorPayload{Error: msg})
}

// statusForError selects the HTTP status deterministically from the error
// kind. Every pipeline stage returns a typed error; nothing panics for
// control flow.
func statusForError(err error) int {
	var (
		missingErr    *schema.MissingColumnsError
		validationErr *ridelog.ValidationError
		noDataErr     *ridelog.NoValidDataError
		notFoundErr   *ridelog.NotFoundError
		authErr       auth.Error
	)
	switch {
	case errors.As(err, &missingErr), errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &noDataErr), errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
