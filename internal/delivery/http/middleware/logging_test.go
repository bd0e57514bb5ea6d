package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus string
		wantLevel  string
	}{
		{
			name: "success logged at info",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{"data":{}}`))
			},
			wantStatus: "status=201",
			wantLevel:  "level=INFO",
		},
		{
			name: "server error logged at warn",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantStatus: "status=500",
			wantLevel:  "level=WARN",
		},
		{
			name:       "implicit 200 when handler never calls WriteHeader",
			handler:    func(w http.ResponseWriter, r *http.Request) {},
			wantStatus: "status=200",
			wantLevel:  "level=INFO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			req := httptest.NewRequest(http.MethodGet, "http://test/vacations", nil)
			rr := httptest.NewRecorder()
			LoggingMiddleware(logger, tt.handler).ServeHTTP(rr, req)

			out := buf.String()
			require.NotEmpty(t, out)
			assert.Contains(t, out, tt.wantLevel)
			assert.Contains(t, out, tt.wantStatus)
			assert.Contains(t, out, "path=/vacations")
		})
	}
}
