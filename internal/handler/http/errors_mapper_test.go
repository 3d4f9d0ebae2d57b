package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/validators"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation",
			err:        fmt.Errorf("user update failed: %w", validators.ValidationErrors{{Type: "field", Msg: "Title is required", Path: "title", Location: "body"}}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"errors":[{"type":"field","msg":"Title is required","path":"title","location":"body"}]}`,
		},
		{name: "duplicate email", err: fmt.Errorf("wrapped: %w", store.ErrDuplicateEmail), wantStatus: http.StatusBadRequest, wantBody: `{"error":"Email already exists"}`},
		{name: "invalid updates", err: service.ErrInvalidUpdates, wantStatus: http.StatusBadRequest, wantBody: `{"error":"Invalid updates!"}`},
		{name: "unauthenticated", err: fmt.Errorf("%w: expired", service.ErrUnauthenticated), wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Please authenticate."}`},
		{name: "invalid credentials", err: service.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantBody: `{"message":"Invalid credentials"}`},
		{name: "confirmation mismatch", err: service.ErrConfirmationMismatch, wantStatus: http.StatusBadRequest, wantBody: `{"message":"New password must be confirmed"}`},
		{name: "task not found", err: fmt.Errorf("task update failed: %w", store.ErrTaskNotFound), wantStatus: http.StatusNotFound},
		{name: "user not found", err: store.ErrNoUserWasFound, wantStatus: http.StatusNotFound},
		{name: "anything else", err: assert.AnError, wantStatus: http.StatusInternalServerError, wantBody: `{"error":"Internal Server Error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeError(rr, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody == "" {
				assert.Empty(t, rr.Body.String())
				return
			}
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}
