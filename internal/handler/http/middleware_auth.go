package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
)

// auth admits requests carrying a valid bearer token of an existing user.
//
// The identity resolved by [service.AuthService.Authenticate] is stored in
// the request context with [utils.WithIdentity]. Every rejection is a 401
// with the same body; the failing step is logged by the auth service.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		identity, err := h.services.AuthService.Authenticate(ctx, r.Header.Get("Authorization"))
		if err != nil {
			utils.WriteJSON(w, unauthenticatedResponse, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(ctx, identity)))
	})
}

// identityOrReject returns the admitted identity, answering 401 when the
// route was mounted without the auth middleware.
func identityOrReject(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok || identity.User.UserID == "" {
		utils.WriteJSON(w, unauthenticatedResponse, http.StatusUnauthorized)
		return models.Identity{}, false
	}
	return identity, true
}
