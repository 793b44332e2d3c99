package middleware

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/partner-analytics-api/internal/domain"
	"github.com/vfg2006/partner-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/partner-analytics-api/pkg/log"
)

// PlanResolver busca os planos do parceiro. found=false quando ele não existe.
type PlanResolver interface {
	ResolvePlans(partnerID string) (plans domain.PartnerPlans, found bool, err error)
}

// RequireFeature restringe a rota aos parceiros (param :id) cujo plano libera a funcionalidade
func RequireFeature(resolver PlanResolver, feature domain.Feature) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			partnerID := httprouter.ParamsFromContext(r.Context()).ByName("id")
			if partnerID == "" {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do parceiro é obrigatório", nil)
				return
			}

			plans, found, err := resolver.ResolvePlans(partnerID)
			if err != nil {
				log.ForContext(r.Context()).WithError(err).WithField("partner_id", partnerID).Error("Erro ao buscar planos do parceiro")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar planos do parceiro", nil)
				return
			}
			if !found {
				apiErrors.WriteError(w, apiErrors.ErrNotFound, "Parceiro não encontrado", nil)
				return
			}

			if !domain.CanAccess(feature, plans) {
				featureDeniedTotal.WithLabelValues(string(feature)).Inc()
				log.ForContext(r.Context()).WithFields(log.Fields{
					"partner_id": partnerID,
					"feature":    feature,
				}).Warn("Acesso negado: funcionalidade fora do plano")

				apiErrors.WriteError(w, apiErrors.ErrFeatureLocked, "Funcionalidade não disponível no plano do parceiro", map[string]any{
					"feature": feature,
					"plans":   plans,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
