// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResponseWriter_WriteHeader_CalledTwice_IgnoresSecond verifies that
// only the first status is forwarded.
func TestResponseWriter_WriteHeader_CalledTwice_IgnoresSecond(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusCreated, w.status)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

// TestResponseWriter_Write_TableTest verifies implicit status and size
// accounting across writes.
func TestResponseWriter_Write_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		writes     []string
		wantStatus int
		wantSize   int
	}{
		{name: "single write", writes: []string{"hello"}, wantStatus: http.StatusOK, wantSize: 5},
		{name: "several writes", writes: []string{"ab", "cde", ""}, wantStatus: http.StatusOK, wantSize: 5},
		{name: "empty write", writes: []string{""}, wantStatus: http.StatusOK, wantSize: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			w := &responseWriter{ResponseWriter: rec}

			for _, s := range tt.writes {
				_, err := w.Write([]byte(s))
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantStatus, w.status)
			assert.Equal(t, tt.wantSize, w.size)
			assert.Equal(t, tt.wantSize, rec.Body.Len())
		})
	}
}

// TestResponseWriter_Hijack_Unsupported verifies the error of writers that
// cannot be hijacked.
func TestResponseWriter_Hijack_Unsupported(t *testing.T) {
	w := &responseWriter{ResponseWriter: httptest.NewRecorder()}

	_, _, err := w.Hijack()
	assert.Error(t, err)
}

// TestResponseWriter_Flush verifies that Flush reaches the recorder.
func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.Flush()

	assert.True(t, rec.Flushed)
}
