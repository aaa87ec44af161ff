package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"

	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/nikolayk812/storefront-sync/internal/wire"
)

const maxRequestBodySize = 1 << 20

var errUnauthenticated = errors.New("unauthenticated")

func respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		loggerFrom(r.Context()).WithError(err).Warn("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string, fieldErrors map[string][]string) {
	respondJSON(w, r, status, wire.ErrorBody{
		Message: message,
		Errors:  fieldErrors,
	})
}

func respondValidation(w http.ResponseWriter, r *http.Request, err error) {
	respondFieldErrors(w, r, wire.FieldErrors(err))
}

// respondFieldErrors answers 422 with the first message (by field name) as the summary.
func respondFieldErrors(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	message := "The given data was invalid."
	if fields := slices.Sorted(maps.Keys(fieldErrors)); len(fields) > 0 {
		message = fieldErrors[fields[0]][0]
	}
	respondError(w, r, http.StatusUnprocessableEntity, message, fieldErrors)
}

// handleError maps repository failures to responses. Unknown failures are
// logged and hidden behind a generic 500.
func handleError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, port.ErrNotFound):
		respondError(w, r, http.StatusNotFound, notFoundMessage, nil)
	case errors.Is(err, domain.ErrInvalidQuantity):
		respondError(w, r, http.StatusUnprocessableEntity, "The quantity field must be at least 1.",
			map[string][]string{"quantity": {"The quantity field must be at least 1."}})
	case errors.Is(err, errUnauthenticated):
		respondError(w, r, http.StatusUnauthorized, "Unauthenticated.", nil)
	default:
		loggerFrom(r.Context()).WithError(err).Error("request failed")
		respondError(w, r, http.StatusInternalServerError, "Server Error", nil)
	}
}

// decodeBody reads a JSON body into dst and validates it. It writes the error
// response itself and reports whether the handler may continue.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		message := "Malformed JSON body."
		if errors.Is(err, io.EOF) {
			message = "Request body is empty."
		}
		respondError(w, r, http.StatusBadRequest, message, nil)
		return false
	}

	if err := wire.Validate(dst); err != nil {
		respondValidation(w, r, err)
		return false
	}

	return true
}

func ack() wire.Ack {
	return wire.Ack{OK: true}
}

func fieldError(field, format string, args ...any) map[string][]string {
	return map[string][]string{field: {fmt.Sprintf(format, args...)}}
}
