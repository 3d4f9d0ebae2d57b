// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/validators"
	"github.com/MKhiriev/go-task-manager/models"
)

var johnDoe = models.AuthResponse{
	User:  models.User{UserID: "user-1", Name: "John Doe", Email: "john@doe.com"},
	Token: "fresh-token",
}

func TestRegister(t *testing.T) {
	req := models.RegisterRequest{Name: "John Doe", Email: "john@doe.com", Password: "secret123"}

	tests := []struct {
		name       string
		body       any
		setup      func(f *handlerFixture)
		wantStatus int
		wantBody   string
	}{
		{
			name: "created",
			body: req,
			setup: func(f *handlerFixture) {
				f.auth.EXPECT().Register(gomock.Any(), req).Return(johnDoe, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"user":{"_id":"user-1","name":"John Doe","email":"john@doe.com"},"token":"fresh-token"}`,
		},
		{
			name: "duplicate email",
			body: req,
			setup: func(f *handlerFixture) {
				f.auth.EXPECT().Register(gomock.Any(), req).
					Return(models.AuthResponse{}, fmt.Errorf("user creation ended with error: %w", store.ErrDuplicateEmail))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Email already exists"}`,
		},
		{
			name: "validation errors",
			body: models.RegisterRequest{},
			setup: func(f *handlerFixture) {
				f.auth.EXPECT().Register(gomock.Any(), models.RegisterRequest{}).Return(models.AuthResponse{}, validators.ValidationErrors{
					{Type: "field", Msg: "Name is required", Path: "name", Location: "body"},
					{Type: "field", Msg: "Email is required", Path: "email", Location: "body"},
				})
			},
			wantStatus: http.StatusBadRequest,
			wantBody: `{"errors":[
				{"type":"field","msg":"Name is required","path":"name","location":"body"},
				{"type":"field","msg":"Email is required","path":"email","location":"body"}
			]}`,
		},
		{
			name:       "malformed json",
			body:       `{"name":`,
			setup:      func(f *handlerFixture) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid JSON was passed"}`,
		},
		{
			name: "unexpected failure",
			body: req,
			setup: func(f *handlerFixture) {
				f.auth.EXPECT().Register(gomock.Any(), req).Return(models.AuthResponse{}, assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			tt.setup(f)

			rr := f.do(newJSONRequest(t, http.MethodPost, "/api/auth/register", tt.body))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestLogin(t *testing.T) {
	req := models.LoginRequest{Email: "john@doe.com", Password: "secret123"}

	t.Run("success", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.auth.EXPECT().Login(gomock.Any(), req).Return(johnDoe, nil)

		rr := f.do(newJSONRequest(t, http.MethodPost, "/api/auth/login", req))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, johnDoe, decodeBody[models.AuthResponse](t, rr))
	})

	t.Run("invalid credentials", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.auth.EXPECT().Login(gomock.Any(), req).Return(models.AuthResponse{}, service.ErrInvalidCredentials)

		rr := f.do(newJSONRequest(t, http.MethodPost, "/api/auth/login", req))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"message":"Invalid credentials"}`, rr.Body.String())
	})
}

func TestChangePassword(t *testing.T) {
	req := models.ChangePasswordRequest{OldPassword: "secret123", NewPassword: "secret456", ConfirmPassword: "secret456"}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "changed",
			wantStatus: http.StatusOK,
			wantBody:   `{"user":{"_id":"user-1","name":"John Doe","email":"john@doe.com"},"token":"fresh-token"}`,
		},
		{
			name:       "wrong old password",
			err:        service.ErrInvalidCredentials,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"Invalid old password provided"}`,
		},
		{
			name:       "confirmation mismatch",
			err:        service.ErrConfirmationMismatch,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"New password must be confirmed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.authenticated()
			resp := johnDoe
			if tt.err != nil {
				resp = models.AuthResponse{}
			}
			f.auth.EXPECT().ChangePassword(gomock.Any(), testIdentity, req).Return(resp, tt.err)

			rr := f.do(withBearer(newJSONRequest(t, http.MethodPost, "/api/auth/change-password", req)))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestProfile(t *testing.T) {
	f := newHandlerFixture(t)
	f.authenticated()

	rr := f.do(withBearer(newJSONRequest(t, http.MethodGet, "/api/auth/profile", nil)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"_id":"user-1","name":"John Doe","email":"john@doe.com"}`, rr.Body.String())
}

func TestUpdateProfile(t *testing.T) {
	req := models.ProfileUpdateRequest{Name: "Jane Doe", Email: "jane@doe.com"}

	t.Run("updated", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.authenticated()
		updated := models.AuthResponse{User: models.User{UserID: "user-1", Name: "Jane Doe", Email: "jane@doe.com"}, Token: "t2"}
		f.auth.EXPECT().UpdateProfile(gomock.Any(), testIdentity, req).Return(updated, nil)

		rr := f.do(withBearer(newJSONRequest(t, http.MethodPut, "/api/auth/profile", req)))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, updated, decodeBody[models.AuthResponse](t, rr))
	})

	t.Run("email taken", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.authenticated()
		f.auth.EXPECT().UpdateProfile(gomock.Any(), testIdentity, req).Return(models.AuthResponse{}, store.ErrDuplicateEmail)

		rr := f.do(withBearer(newJSONRequest(t, http.MethodPut, "/api/auth/profile", req)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Email already exists"}`, rr.Body.String())
	})
}
