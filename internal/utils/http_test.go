package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-chat-core/models"
)

func TestWriteJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	profile := models.UserProfile{UID: "u1", Email: "a@b.c", DisplayName: "Alice"}

	n, err := WriteJSON(w, profile, http.StatusOK)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if n == 0 {
		t.Error("expected non-zero bytes written")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got '%s'", ct)
	}

	expected, _ := json.Marshal(profile)
	if w.Body.String() != string(expected) {
		t.Errorf("expected body %s, got %s", expected, w.Body.String())
	}
}

func TestWriteJSON_InvalidData(t *testing.T) {
	w := httptest.NewRecorder()

	// channels cannot be marshaled to JSON
	if _, err := WriteJSON(w, make(chan int), http.StatusOK); err == nil {
		t.Fatal("expected error for non-serializable data, got nil")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestWriteJSON_NilData(t *testing.T) {
	w := httptest.NewRecorder()

	if _, err := WriteJSON(w, nil, http.StatusOK); err != nil {
		t.Fatalf("expected no error for nil data, got: %v", err)
	}
	if w.Body.String() != "null" {
		t.Errorf("expected body 'null', got '%s'", w.Body.String())
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, http.StatusBadRequest, "invalid value", "accessibility.fontSize")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != "invalid value" || resp.Field != "accessibility.fontSize" {
		t.Errorf("unexpected body %+v", resp)
	}
}

func TestDecodeJSON(t *testing.T) {
	var req models.CreateMessageRequest
	err := DecodeJSON(strings.NewReader(`{"receiverId":"u2","text":"hi"}`), &req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.ReceiverID != "u2" || req.Text != "hi" {
		t.Errorf("unexpected request %+v", req)
	}

	if err := DecodeJSON(strings.NewReader(`{`), &req); err == nil {
		t.Fatal("expected error for malformed body")
	}
}
