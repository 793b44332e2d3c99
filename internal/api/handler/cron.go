package handler

import (
	"net/http"

	"github.com/vfg2006/partner-analytics-api/internal/scheduler"
	"github.com/vfg2006/partner-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/partner-analytics-api/pkg/log"
)

const (
	CronJobTypeSnapshotSync = scheduler.JobSnapshotSync
	CronJobTypeAll          = "all"
)

// CronJob é o contrato dos jobs que podem ser disparados manualmente
type CronJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os jobs disponíveis, indexados pelo tipo usado na URL
type CronJobServices map[string]CronJob

// RunCronJob executa manualmente um job específico, ou todos com "all"
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := param(r, "type")
		log.ForContext(r.Context()).WithField("job", cronType).Info("INIT - RunCronJob")

		if cronType == CronJobTypeAll {
			started := make(map[string]bool, len(services))
			for name, job := range services {
				started[name] = job.TriggerManualSync()
			}
			writeJSON(w, r, http.StatusAccepted, map[string]any{
				"message": "Cron jobs iniciadas",
				"type":    cronType,
				"started": started,
			})
			return
		}

		job, ok := services[cronType]
		if !ok || job == nil {
			accepted := make([]string, 0, len(services)+1)
			for name := range services {
				accepted = append(accepted, name)
			}
			accepted = append(accepted, CronJobTypeAll)

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido", map[string]any{"accepted": accepted})
			return
		}

		if !job.TriggerManualSync() {
			apiErrors.WriteError(w, apiErrors.ErrJobRunning, "Cron job já em execução", map[string]any{"type": cronType})
			return
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	})
}

func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services))
		for name, job := range services {
			status[name] = job.GetStatus()
		}
		writeJSON(w, r, http.StatusOK, status)
	})
}
