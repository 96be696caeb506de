package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverPanics(t *testing.T) {
	handler := recoverPanics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp ErrorResponse
	decode(t, rec, &resp)
	assert.Equal(t, "error", resp.Status)
}

func TestRequestLoggerRecordsAdmin(t *testing.T) {
	tokens, err := NewTokenManager("secret", 1)
	require.NoError(t, err)
	token, _, err := tokens.CreateToken("jordan")
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := requestLogger(logger)(newAuthMiddleware(tokens).authenticate(ok))

	req := httptest.NewRequest(http.MethodDelete, "/project/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "jordan", line["admin"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, float64(http.StatusNoContent), line["status"])

	buf.Reset()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/project/1", nil))

	line = map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.NotContains(t, line, "admin")
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, float64(http.StatusUnauthorized), line["status"])
}

func TestStatusResponseWriterCountsBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	srw := newStatusResponseWriter(rec)

	_, err := srw.Write([]byte("hello"))
	require.NoError(t, err)
	srw.WriteHeader(http.StatusTeapot)

	assert.Equal(t, http.StatusOK, srw.status)
	assert.Equal(t, 5, srw.bytes)
	assert.Equal(t, http.StatusOK, rec.Code)
}
