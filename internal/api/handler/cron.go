package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/captive-portal-api/pkg/apiErrors"
)

const (
	CronJobTypeRate     = "rate"
	CronJobTypeRotation = "rotations"
	CronJobTypeAll      = "all"
)

// CronJob is a background job that can be run on demand.
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

type CronJobServices struct {
	RateRefreshService    CronJob
	RotationReaperService CronJob
}

func (s CronJobServices) byType() map[string]CronJob {
	jobs := map[string]CronJob{}
	if s.RateRefreshService != nil {
		jobs[CronJobTypeRate] = s.RateRefreshService
	}
	if s.RotationReaperService != nil {
		jobs[CronJobTypeRotation] = s.RotationReaperService
	}
	return jobs
}

func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		jobs := services.byType()

		switch cronType {
		case CronJobTypeAll:
			for _, job := range jobs {
				job.TriggerManualSync()
			}
		case CronJobTypeRate, CronJobTypeRotation:
			job, ok := jobs[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Job not available", nil)
				return
			}
			job.TriggerManualSync()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid job type. Accepted values: rate, rotations, all", nil)
			return
		}

		logrus.WithField("type", cronType).Info("Cron job triggered manually")

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "job started",
			"type":    cronType,
		})
	}
}

func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		for name, job := range services.byType() {
			status[name] = job.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
