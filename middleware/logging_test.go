package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/staticd/core/handler"
	"github.com/dmitrymomot/staticd/core/logger"
	"github.com/dmitrymomot/staticd/core/response"
	"github.com/dmitrymomot/staticd/middleware"
)

func jsonLogger(buf *bytes.Buffer) *slog.Logger {
	return logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(buf),
		logger.WithLevel(slog.LevelDebug),
	)
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		records = append(records, rec)
	}
	return records
}

func TestAccessLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := serveWith(
		func(ctx *handler.BaseContext) handler.Response { return response.String("ok") },
		middleware.RequestIDWithConfig[*handler.BaseContext](middleware.RequestIDConfig{
			Generator: func() string { return "req-1" },
		}),
		middleware.AccessLog[*handler.BaseContext](jsonLogger(&buf)),
	)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/%2e%2e/app.js?v=2", nil))
	require.Equal(t, http.StatusOK, w.Code)

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "Request: GET /assets/%2e%2e/app.js", records[0]["msg"])
	assert.Equal(t, "GET", records[0]["method"])
	assert.Equal(t, "/assets/%2e%2e/app.js", records[0]["path"])
	assert.Equal(t, "req-1", records[0]["request_id"])
}

func TestAccessLogSkip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := serveWith(
		func(ctx *handler.BaseContext) handler.Response { return response.String("ok") },
		middleware.AccessLogWithConfig[*handler.BaseContext](middleware.AccessLogConfig{
			Logger: jsonLogger(&buf),
			Skip:   func(handler.Context) bool { return true },
		}),
	)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, buf.String())
}

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    handler.HandlerFunc[*handler.BaseContext]
		wantStatus float64
		wantLevel  string
		wantBytes  float64
	}{
		{
			name: "success",
			handler: func(ctx *handler.BaseContext) handler.Response {
				return response.String("hello")
			},
			wantStatus: 200,
			wantLevel:  "DEBUG",
			wantBytes:  5,
		},
		{
			name: "direct not found",
			handler: func(ctx *handler.BaseContext) handler.Response {
				return response.HTMLWithStatus("gone", http.StatusNotFound)
			},
			wantStatus: 404,
			wantLevel:  "WARN",
			wantBytes:  4,
		},
		{
			name: "status from returned error",
			handler: func(ctx *handler.BaseContext) handler.Response {
				return response.Error(response.ErrForbidden)
			},
			wantStatus: 403,
			wantLevel:  "WARN",
		},
		{
			name: "unknown error",
			handler: func(ctx *handler.BaseContext) handler.Response {
				return response.Error(errors.New("boom"))
			},
			wantStatus: 500,
			wantLevel:  "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			h := serveWith(tt.handler, middleware.Logging[*handler.BaseContext](jsonLogger(&buf)))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

			records := decodeLines(t, &buf)
			require.Len(t, records, 1)
			rec := records[0]
			assert.Equal(t, "HTTP request completed", rec["msg"])
			assert.Equal(t, tt.wantLevel, rec["level"])
			assert.Equal(t, tt.wantStatus, rec["status_code"])
			assert.Equal(t, tt.wantBytes, rec["bytes_out"])
			assert.Equal(t, "/x", rec["path"])
		})
	}
}
