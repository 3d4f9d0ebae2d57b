// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func buildRouter() *chi.Mux {
	router := chi.NewRouter()
	router.MethodNotAllowed(CheckHTTPMethod)

	router.Get("/api/items", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("items"))
	})
	router.Post("/api/items", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.Route("/api/nested", func(r chi.Router) {
		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {})
	})

	return router
}

func TestCheckHTTPMethod(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "registered get", method: http.MethodGet, path: "/api/items", wantStatus: http.StatusOK, wantBody: "items"},
		{name: "registered post", method: http.MethodPost, path: "/api/items", wantStatus: http.StatusCreated},
		{name: "unregistered method", method: http.MethodPut, path: "/api/items", wantStatus: http.StatusNotFound},
		{name: "unregistered method in sub router", method: http.MethodGet, path: "/api/nested/1", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
		})
	}
}
