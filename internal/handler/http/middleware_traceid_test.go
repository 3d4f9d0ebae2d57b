package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-manager/internal/logger"
)

func executeWithTraceID(t *testing.T, traceID string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()
	h := &Handler{logger: logger.Nop()}

	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if traceID != "" {
		req.Header.Set(traceIDHeader, traceID)
	}

	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)
	require.NotNil(t, captured)

	return rr, captured
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{name: "client id is reused", incoming: "my-custom-trace-id", wantSame: true},
		{name: "missing id is generated", incoming: ""},
		{name: "id with spaces is replaced", incoming: "bad trace id"},
		{name: "oversized id is replaced", incoming: strings.Repeat("a", maxTraceIDLength+1)},
		{name: "id at the length limit is kept", incoming: strings.Repeat("a", maxTraceIDLength), wantSame: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, _ := executeWithTraceID(t, tt.incoming)

			got := rr.Header().Get(traceIDHeader)
			if tt.wantSame {
				assert.Equal(t, tt.incoming, got)
				return
			}
			parsed, err := uuid.Parse(got)
			require.NoError(t, err)
			assert.Equal(t, uuid.Version(7), parsed.Version())
		})
	}
}

func TestWithTraceID_UniqueIDs(t *testing.T) {
	seen := make(map[string]struct{})
	for range 50 {
		rr, _ := executeWithTraceID(t, "")
		id := rr.Header().Get(traceIDHeader)
		_, dup := seen[id]
		require.False(t, dup, "duplicate trace id %s", id)
		seen[id] = struct{}{}
	}
}

func TestWithTraceID_LoggerInContext(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(traceIDHeader, "trace-1")
	h.withTraceID(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"trace_id":"trace-1"`)
	assert.Contains(t, buf.String(), `"message":"inside"`)
}

func TestValidTraceID(t *testing.T) {
	assert.True(t, validTraceID("0192f3c4-trace"))
	assert.False(t, validTraceID(""))
	assert.False(t, validTraceID("tab\there"))
	assert.False(t, validTraceID("ünicode"))
}
