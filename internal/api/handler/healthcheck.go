package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/captive-portal-api/pkg/apiErrors"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthcheckHandler(store Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logrus.WithError(err).Warn("Healthcheck: store unreachable")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "store unreachable", nil)
			return
		}

		_, err := w.Write([]byte(time.Now().String()))
		if err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
