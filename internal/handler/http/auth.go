package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-task-manager/internal/app"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
)

// decodeJSON reads the request body into v, answering 400 on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, invalidJSONResponse, http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	registered, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("user_id", registered.User.UserID).Msg("user successfully registered")
	utils.WriteJSON(w, registered, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	loggedIn, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("user_id", loggedIn.User.UserID).Msg("user successfully logged in")
	utils.WriteJSON(w, loggedIn, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := identityOrReject(w, r)
	if !ok {
		return
	}

	var req models.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	changed, err := h.services.AuthService.ChangePassword(ctx, identity, req)
	if err != nil {
		// a wrong old password is a client error here, unlike at login
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Debug().Str("user_id", identity.User.UserID).Msg("invalid old password provided")
			utils.WriteJSON(w, models.MessageResponse{Message: app.MsgInvalidOldPassword}, http.StatusBadRequest)
			return
		}
		writeError(w, r, err)
		return
	}

	log.Debug().Str("user_id", identity.User.UserID).Msg("password changed")
	utils.WriteJSON(w, changed, http.StatusOK)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrReject(w, r)
	if !ok {
		return
	}

	utils.WriteJSON(w, identity.User, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := identityOrReject(w, r)
	if !ok {
		return
	}

	var req models.ProfileUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.services.AuthService.UpdateProfile(ctx, identity, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}
