// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ErrorResponse is the {error: "..."} envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the {message: "..."} envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

// FieldError describes one violated field of a request body.
type FieldError struct {
	Type     string `json:"type"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

// ValidationErrorsResponse is the {errors: [...]} envelope listing every
// violated field.
type ValidationErrorsResponse struct {
	Errors []FieldError `json:"errors"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
