package handler

import (
	"net/http"

	"github.com/vfg2006/partner-analytics-api/internal/domain"
	"github.com/vfg2006/partner-analytics-api/internal/usecases/dashboard"
	"github.com/vfg2006/partner-analytics-api/pkg/apiErrors"
)

type featureAccessResponse struct {
	PartnerID string         `json:"partner_id"`
	Feature   domain.Feature `json:"feature"`
	Allowed   bool           `json:"allowed"`
}

// ListFeatures lista o catálogo fechado de funcionalidades
func ListFeatures() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]any{"features": domain.AllFeatures()})
	})
}

func ListPartners(service dashboard.DashboardService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		partners, err := service.ListPartners()
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar parceiros")
			return
		}
		writeJSON(w, r, http.StatusOK, partners)
	})
}

func GetPartner(service dashboard.DashboardService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		partner, err := service.GetPartner(param(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar parceiro")
			return
		}
		writeJSON(w, r, http.StatusOK, partner)
	})
}

func GetPartnerFeatures(service dashboard.DashboardService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := param(r, "id")

		features, err := service.GetFeatureAccess(id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar funcionalidades do parceiro")
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"partner_id": id,
			"features":   features,
		})
	})
}

// CheckPartnerFeature responde se o parceiro tem acesso a uma funcionalidade.
// Nomes fora do catálogo são rejeitados com 400.
func CheckPartnerFeature(service dashboard.DashboardService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		feature, err := domain.ParseFeature(param(r, "feature"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Funcionalidade desconhecida", map[string]any{
				"feature":  param(r, "feature"),
				"accepted": domain.AllFeatures(),
			})
			return
		}

		id := param(r, "id")
		plans, found, err := service.ResolvePlans(id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar planos do parceiro")
			return
		}
		if !found {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Parceiro não encontrado", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, featureAccessResponse{
			PartnerID: id,
			Feature:   feature,
			Allowed:   domain.CanAccess(feature, plans),
		})
	})
}
