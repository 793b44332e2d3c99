package handler

import (
	"net/http"

	"github.com/vfg2006/partner-analytics-api/internal/domain"
	"github.com/vfg2006/partner-analytics-api/internal/usecases/ranking"
)

func GetRankedList(service ranking.RankingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kind, err := domain.ParseRankedListKind(param(r, "kind"))
		if err != nil {
			writeServiceError(w, r, err, "Lista ranqueada inválida")
			return
		}

		list, err := service.GetRankedList(param(r, "id"), kind)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar lista ranqueada")
			return
		}
		writeJSON(w, r, http.StatusOK, list)
	})
}

// GetRankedItem devolve o item selecionado na lista
func GetRankedItem(service ranking.RankingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kind, err := domain.ParseRankedListKind(param(r, "kind"))
		if err != nil {
			writeServiceError(w, r, err, "Lista ranqueada inválida")
			return
		}

		item, err := service.GetRankedItem(param(r, "id"), kind, param(r, "item_id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar item da lista")
			return
		}
		writeJSON(w, r, http.StatusOK, item)
	})
}
