package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/captive-portal-api/internal/usecases/advertising"
	"github.com/vfg2006/captive-portal-api/internal/usecases/authenticating"
	"github.com/vfg2006/captive-portal-api/internal/usecases/rotating"
	"github.com/vfg2006/captive-portal-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("Error encoding response")
	}
}

// writeUsecaseError answers with the api code carried by a usecase error.
func writeUsecaseError(w http.ResponseWriter, err error, fallbackMessage string) {
	var adErr *advertising.AdError
	if errors.As(err, &adErr) {
		var details any
		if len(adErr.Details) > 0 {
			details = adErr.Details
		}
		apiErrors.WriteError(w, adErr.Code, adErr.Error(), details)
		return
	}

	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		if authErr.Code == apiErrors.ErrDatabaseOperation || authErr.Code == apiErrors.ErrInternalServer {
			logrus.WithError(err).Error(fallbackMessage)
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Err.Error(), nil)
		return
	}

	var rotErr *rotating.RotationError
	if errors.As(err, &rotErr) {
		apiErrors.WriteError(w, rotErr.Code, rotErr.Error(), nil)
		return
	}

	logrus.WithError(err).Error(fallbackMessage)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallbackMessage, nil)
}
