package handler

import (
	"net/http"

	"github.com/vfg2006/partner-analytics-api/internal/domain"
	"github.com/vfg2006/partner-analytics-api/internal/usecases/viewing"
	"github.com/vfg2006/partner-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/partner-analytics-api/pkg/utils"
)

type sectionRequest struct {
	Section domain.Section `json:"section"`
}

type tabRequest struct {
	Index *int `json:"index"`
}

type timeRangeRequest struct {
	TimeRange string `json:"time_range"`
}

type customRangeRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type campaignFilterRequest struct {
	Filter string `json:"filter"`
}

func CreateView(service viewing.ViewService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		view, err := service.Create()
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar estado de visualização")
			return
		}
		writeJSON(w, r, http.StatusCreated, view.Response())
	})
}

func GetView(service viewing.ViewService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		view, err := service.Get(param(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar estado de visualização")
			return
		}
		writeJSON(w, r, http.StatusOK, view.Response())
	})
}

func DeleteView(service viewing.ViewService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := service.Delete(param(r, "id")); err != nil {
			writeServiceError(w, r, err, "Erro ao remover estado de visualização")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func ResetView(service viewing.ViewService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		view, err := service.Reset(param(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao reiniciar estado de visualização")
			return
		}
		writeJSON(w, r, http.StatusOK, view.Response())
	})
}

// updateView decodifica o corpo em T e aplica a transição montada a partir dele.
// Em erro de validação, a resposta traz o estado atual, que não foi alterado.
func updateView[T any](service viewing.ViewService, build func(T) viewing.Transition) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body T
		if err := utils.DecodeJSON(r.Body, &body); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		transition := build(body)
		if transition == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campos obrigatórios ausentes", nil)
			return
		}

		id := param(r, "id")
		view, err := service.Update(id, transition)
		if err != nil {
			if view.ID == "" {
				writeServiceError(w, r, err, "Erro ao atualizar estado de visualização")
				return
			}
			writeViewRejected(w, err, view)
			return
		}

		writeJSON(w, r, http.StatusOK, view.Response())
	})
}

func writeViewRejected(w http.ResponseWriter, err error, current domain.ViewState) {
	code := apiErrors.ErrInvalidFormat
	switch err {
	case domain.ErrCustomRangeRequired, domain.ErrCustomRangeIncomplete,
		domain.ErrCustomRangeInverted, domain.ErrInvalidDate:
		code = apiErrors.ErrInvalidDateRange
	}

	apiErrors.WriteError(w, code, err.Error(), map[string]any{"view": current.Response()})
}

func UpdateViewSection(service viewing.ViewService) http.Handler {
	return updateView(service, func(body sectionRequest) viewing.Transition {
		return func(v domain.ViewState) (domain.ViewState, error) {
			return v.WithSection(body.Section)
		}
	})
}

func UpdateViewTab(service viewing.ViewService) http.Handler {
	return updateView(service, func(body tabRequest) viewing.Transition {
		if body.Index == nil {
			return nil
		}
		return func(v domain.ViewState) (domain.ViewState, error) {
			return v.WithTab(*body.Index)
		}
	})
}

func UpdateViewTimeRange(service viewing.ViewService) http.Handler {
	return updateView(service, func(body timeRangeRequest) viewing.Transition {
		return func(v domain.ViewState) (domain.ViewState, error) {
			preset, err := domain.ParseTimeRangePreset(body.TimeRange)
			if err != nil {
				return v, err
			}
			return v.WithTimeRange(preset)
		}
	})
}

func UpdateViewCustomRange(service viewing.ViewService) http.Handler {
	return updateView(service, func(body customRangeRequest) viewing.Transition {
		return func(v domain.ViewState) (domain.ViewState, error) {
			return v.ApplyCustomRange(body.Start, body.End)
		}
	})
}

func UpdateViewCampaignFilter(service viewing.ViewService) http.Handler {
	return updateView(service, func(body campaignFilterRequest) viewing.Transition {
		return func(v domain.ViewState) (domain.ViewState, error) {
			filter, err := domain.ParseCampaignFilter(body.Filter)
			if err != nil {
				return v, err
			}
			return v.WithCampaignFilter(filter)
		}
	})
}
