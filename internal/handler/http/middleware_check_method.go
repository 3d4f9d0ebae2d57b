// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-manager/internal/logger"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
//
// A known path requested with a method it does not serve is answered with
// 404 and an empty body, the same as an unknown resource, instead of chi's
// default 405.
func CheckHTTPMethod(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("method is not registered for path")

	w.WriteHeader(http.StatusNotFound)
}
