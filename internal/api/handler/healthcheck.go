package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/partner-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/partner-analytics-api/pkg/log"
)

// Pinger verifica a fonte de dados. Nil quando os dados são estáticos.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthcheckHandler(dataSource string, pinger Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := pinger.Ping(ctx); err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("error responding to healthcheck")
				apiErrors.WriteError(w, apiErrors.ErrUnavailable, "Fonte de dados indisponível", map[string]any{"data_source": dataSource})
				return
			}
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"status":      "ok",
			"data_source": dataSource,
			"time":        time.Now().UTC().Format(time.RFC3339),
		})
	})
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// NotFoundHandler mantém o formato padrão de erro para rotas inexistentes
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrNotFound, "Rota não encontrada", map[string]any{"path": r.URL.Path})
	})
}
