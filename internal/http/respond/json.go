// Package respond writes HTTP responses.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// JSON takes a response status code and arbitrary data and writes a json response to the client
func JSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	for _, h := range headers {
		for key, value := range h {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}
	return nil
}
