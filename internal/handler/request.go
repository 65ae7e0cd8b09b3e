package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/mementoapp/memento/internal/apperr"
	"github.com/mementoapp/memento/internal/validation"
)

const maxBodyBytes = 1 << 20 // 1MB, bodies are small JSON documents

// decode reads a JSON body into dst and validates it.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperr.Invalid("Request body is required")
		case errors.As(err, &maxBytesErr):
			return apperr.Invalid("Request body is too large")
		default:
			return apperr.Invalid("Request body must be valid JSON")
		}
	}

	err = validation.ValidateStruct(dst)
	if err != nil {
		return apperr.Invalid(err.Error())
	}

	return nil
}
