package handler

import (
	"net/http"

	"github.com/vfg2006/partner-analytics-api/internal/domain"
	"github.com/vfg2006/partner-analytics-api/internal/usecases/dashboard"
	"github.com/vfg2006/partner-analytics-api/internal/usecases/viewing"
)

func GetWebsitePerformance(service dashboard.DashboardService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		view, err := service.GetWebsitePerformance(param(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar desempenho do site")
			return
		}
		writeJSON(w, r, http.StatusOK, view)
	})
}

// GetPerformanceSeries usa o período do view_id quando informado. Sem ele, aceita
// time_range (preset) ou start/end (período personalizado).
func GetPerformanceSeries(service dashboard.DashboardService, views viewing.ViewService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		selection, err := selectionFromQuery(r, views)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao interpretar período")
			return
		}

		series, err := service.GetPerformanceSeries(param(r, "id"), selection)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar série de desempenho")
			return
		}
		writeJSON(w, r, http.StatusOK, series)
	})
}

func selectionFromQuery(r *http.Request, views viewing.ViewService) (domain.ViewState, error) {
	query := r.URL.Query()

	if viewID := query.Get("view_id"); viewID != "" {
		return views.Get(viewID)
	}

	selection := domain.DefaultViewState("")

	if query.Has("start") || query.Has("end") {
		return selection.ApplyCustomRange(query.Get("start"), query.Get("end"))
	}

	if raw := query.Get("time_range"); raw != "" {
		preset, err := domain.ParseTimeRangePreset(raw)
		if err != nil {
			return selection, err
		}
		return selection.WithTimeRange(preset)
	}

	return selection, nil
}

// ListCampaigns filtra por ?status=, ou pelo filtro salvo no view_id
func ListCampaigns(service dashboard.DashboardService, views viewing.ViewService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filter, err := domain.ParseCampaignFilter(query.Get("status"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao interpretar filtro")
			return
		}

		if viewID := query.Get("view_id"); viewID != "" && !query.Has("status") {
			view, err := views.Get(viewID)
			if err != nil {
				writeServiceError(w, r, err, "Erro ao buscar estado de visualização")
				return
			}
			filter = view.CampaignFilter
		}

		campaigns, err := service.ListCampaigns(param(r, "id"), filter)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar campanhas")
			return
		}
		writeJSON(w, r, http.StatusOK, campaigns)
	})
}

func ListSuggestions(service dashboard.DashboardService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suggestions, err := service.ListSuggestions(param(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar sugestões")
			return
		}
		writeJSON(w, r, http.StatusOK, suggestions)
	})
}
