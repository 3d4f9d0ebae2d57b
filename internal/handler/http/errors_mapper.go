package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-task-manager/internal/app"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/internal/validators"
	"github.com/MKhiriev/go-task-manager/models"
)

// Response bodies shared by several handlers.
var (
	unauthenticatedResponse = models.ErrorResponse{Error: app.MsgPleaseAuthenticate}
	internalErrorResponse   = models.ErrorResponse{Error: app.MsgInternalServerError}
	invalidJSONResponse     = models.ErrorResponse{Error: app.MsgInvalidJSON}
	invalidFormResponse     = models.ErrorResponse{Error: app.MsgInvalidForm}
)

// errorResponses maps service and store sentinels onto statuses and bodies.
// The first matching entry wins; a nil body means an empty response.
var errorResponses = []struct {
	target error
	status int
	body   any
}{
	{target: service.ErrUnauthenticated, status: http.StatusUnauthorized, body: unauthenticatedResponse},
	{target: store.ErrDuplicateEmail, status: http.StatusBadRequest, body: models.ErrorResponse{Error: app.MsgEmailAlreadyExists}},
	{target: service.ErrInvalidUpdates, status: http.StatusBadRequest, body: models.ErrorResponse{Error: app.MsgInvalidUpdates}},
	{target: service.ErrInvalidCredentials, status: http.StatusUnauthorized, body: models.MessageResponse{Message: app.MsgInvalidCredentials}},
	{target: service.ErrConfirmationMismatch, status: http.StatusBadRequest, body: models.MessageResponse{Message: app.MsgPasswordNotConfirmed}},
	{target: store.ErrNotFound, status: http.StatusNotFound},
}

// writeError renders err. Validation errors list every violated field,
// known sentinels use errorResponses and anything else is logged and
// reported as 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var verrs validators.ValidationErrors
	if errors.As(err, &verrs) {
		log.Debug().Err(err).Msg("request validation failed")
		utils.WriteJSON(w, models.ValidationErrorsResponse{Errors: verrs}, http.StatusBadRequest)
		return
	}

	for _, resp := range errorResponses {
		if !errors.Is(err, resp.target) {
			continue
		}
		log.Debug().Err(err).Int("status", resp.status).Msg("request failed")
		if resp.body == nil {
			w.WriteHeader(resp.status)
			return
		}
		utils.WriteJSON(w, resp.body, resp.status)
		return
	}

	log.Err(err).Msg("unexpected error occurred")
	utils.WriteJSON(w, internalErrorResponse, http.StatusInternalServerError)
}
