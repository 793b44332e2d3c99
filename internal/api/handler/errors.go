package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/partner-analytics-api/internal/domain"
	"github.com/vfg2006/partner-analytics-api/internal/usecases/dashboard"
	"github.com/vfg2006/partner-analytics-api/internal/usecases/ranking"
	"github.com/vfg2006/partner-analytics-api/internal/usecases/viewing"
	"github.com/vfg2006/partner-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/partner-analytics-api/pkg/log"
	"github.com/vfg2006/partner-analytics-api/pkg/utils"
)

// writeServiceError traduz os erros dos casos de uso para o formato padrão da API
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	logger := log.ForContext(r.Context()).WithError(err)

	var dashErr *dashboard.DashboardError
	if errors.As(err, &dashErr) {
		if apiErrors.StatusFor(dashErr.Code) >= http.StatusInternalServerError {
			logger.WithField("partner_id", dashErr.PartnerID).Error(fallback)
		}
		apiErrors.WriteError(w, dashErr.Code, dashErr.Error(), nil)
		return
	}

	var rankingErr *ranking.RankingError
	if errors.As(err, &rankingErr) {
		var details any
		if rankingErr.Feature != "" {
			details = map[string]any{"feature": rankingErr.Feature}
		}
		if apiErrors.StatusFor(rankingErr.Code) >= http.StatusInternalServerError {
			logger.Error(fallback)
		}
		apiErrors.WriteError(w, rankingErr.Code, rankingErr.Error(), details)
		return
	}

	switch {
	case errors.Is(err, viewing.ErrViewNotFound):
		apiErrors.WriteError(w, apiErrors.ErrNotFound, "Estado de visualização não encontrado", nil)

	case errors.Is(err, domain.ErrCustomRangeRequired),
		errors.Is(err, domain.ErrCustomRangeIncomplete),
		errors.Is(err, domain.ErrCustomRangeInverted),
		errors.Is(err, domain.ErrInvalidDate):
		apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)

	case errors.Is(err, domain.ErrInvalidSection),
		errors.Is(err, domain.ErrInvalidTab),
		errors.Is(err, domain.ErrInvalidTimeRange),
		errors.Is(err, domain.ErrInvalidCampaignFilter),
		errors.Is(err, domain.ErrInvalidRankedList),
		errors.Is(err, domain.ErrUnknownFeature):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	default:
		logger.Error(fallback)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	if err := utils.WriteJSON(w, status, body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao codificar resposta")
	}
}

func param(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}
