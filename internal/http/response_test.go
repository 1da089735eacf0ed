package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"education-backend-go/internal/apperrors"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var payload ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	return payload
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusBadRequest, "bad input")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	payload := decodeError(t, rec)
	assert.Equal(t, http.StatusBadRequest, payload.StatusCode)
	require.Len(t, payload.Detail, 1)
	assert.Equal(t, "bad input", payload.Detail[0].Msg)
}

func TestWriteErrorUnauthorizedChallenge(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusUnauthorized, "you are not authorized")
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestWriteDomainError(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		status    int
		challenge bool
	}{
		{"not found", apperrors.NotFound("no user found"), http.StatusNotFound, false},
		{"forbidden", apperrors.Forbidden("access denied"), http.StatusForbidden, false},
		{"unauthorized", apperrors.Unauthorized("you are not authorized"), http.StatusUnauthorized, true},
		{"bad credentials", apperrors.BadCredentials("could not validate credentials"), http.StatusUnauthorized, true},
		{"file too large", apperrors.FileTooLarge("maximum file size is 10240 KiB"), http.StatusRequestEntityTooLarge, false},
		{"validation", apperrors.Validation("filter must contain at least one condition"), http.StatusBadRequest, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteDomainError(rec, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			if tc.challenge {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			} else {
				assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
			}
			payload := decodeError(t, rec)
			assert.Equal(t, tc.status, payload.StatusCode)
			require.NotEmpty(t, payload.Detail)
		})
	}
}

func TestWriteDomainErrorUnclassified(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteDomainError(rec, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	payload := decodeError(t, rec)
	require.Len(t, payload.Detail, 1)
	assert.Equal(t, "Internal server error", payload.Detail[0].Msg)
	assert.NotContains(t, payload.Detail[0].Msg, "pq:")
}
