package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/branch-insights-api/internal/scheduler"
	"github.com/vfg2006/branch-insights-api/pkg/apiErrors"
)

type CronJobServices struct {
	CacheJanitorService *scheduler.CacheJanitorService
}

// RunCronJob dispara manualmente um job agendado
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jobType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		switch jobType {
		case "cache-janitor":
			go services.CacheJanitorService.Sweep()
		default:
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Job desconhecido", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "started",
			"job":    jobType,
		})
	})
}

func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{
			"cache_janitor": services.CacheJanitorService.GetStatus(),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	})
}
