// Package httpx provides JSON response utilities and the error-to-status translator.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/apiempleados/api-empleados/internal/shared"
)

const maxBodyBytes = 1 << 20

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// DecodeJSON decodes the JSON request body into target. Decode failures are
// reported as shared.ErrMalformedBody.
func DecodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", shared.ErrMalformedBody)
		}
		return fmt.Errorf("%w: %v", shared.ErrMalformedBody, err)
	}
	return nil
}
