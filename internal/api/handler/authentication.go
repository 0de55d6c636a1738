package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/captive-portal-api/internal/domain"
	"github.com/vfg2006/captive-portal-api/internal/usecases/authenticating"
	"github.com/vfg2006/captive-portal-api/pkg/apiErrors"
)

// PortalLogin registers the visitor from the login screen form.
func PortalLogin(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}

		user, err := service.Login(r.Context(), req.Name, req.Email)
		if err != nil {
			if r.Context().Err() != nil {
				logrus.Info("Portal login abandoned by the client")
				return
			}
			writeUsecaseError(w, err, "Error logging in")
			return
		}

		writeJSON(w, http.StatusCreated, user)
	}
}

// PortalSession returns the current visitor and the elapsed session time.
func PortalSession(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := service.Session(r.Context())
		if err != nil {
			writeUsecaseError(w, err, "Error reading session")
			return
		}

		writeJSON(w, http.StatusOK, session)
	}
}

func PortalLogout(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.Logout(r.Context()); err != nil {
			writeUsecaseError(w, err, "Error logging out")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func AdminLogin(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.AdminLoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}

		token, err := service.AdminLogin(req.Email, req.Password)
		if err != nil {
			writeUsecaseError(w, err, "Error logging in")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"token": token,
		})
	}
}
