package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/go-chat-core/models"
)

// maxBodySize caps JSON request bodies read by DecodeJSON.
const maxBodySize = 1 << 20

// WriteJSON serializes data and writes it with statusCode and a JSON
// content type. On a marshal failure it answers 500 and returns the error.
//
//	WriteJSON(w, profile, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes a models.ErrorResponse. field names the offending
// settings or request field and may be empty.
func WriteError(w http.ResponseWriter, statusCode int, message, field string) {
	_, _ = WriteJSON(w, models.ErrorResponse{Error: message, Field: field}, statusCode)
}

// DecodeJSON reads at most 1 MiB of body into v.
func DecodeJSON(body io.Reader, v any) error {
	if err := json.NewDecoder(io.LimitReader(body, maxBodySize)).Decode(v); err != nil {
		return fmt.Errorf("error decoding request body: %w", err)
	}
	return nil
}
