package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{code: ErrAdNotFound, status: http.StatusNotFound},
		{code: ErrInvalidRequest, status: http.StatusBadRequest},
		{code: ErrInvalidCredentials, status: http.StatusUnauthorized},
		{code: ErrInsufficientPrivilege, status: http.StatusForbidden},
		{code: "UNKNOWN", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(rec, tt.code, "message", map[string]any{"field": "title"})

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "message", body.Message)
		})
	}
}

func TestFromError(t *testing.T) {
	assert.Equal(t, ErrInternalServer, FromError(nil, ErrAdNotFound).Code)

	apiErr := FromError(errors.New("gone"), ErrAdNotFound)
	assert.Equal(t, ErrAdNotFound, apiErr.Code)
	assert.Equal(t, "gone", apiErr.Message)
}
