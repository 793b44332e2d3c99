package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/partner-analytics-api/infrastructure/repository"
	"github.com/vfg2006/partner-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/partner-analytics-api/internal/domain"
	"github.com/vfg2006/partner-analytics-api/internal/usecases/dashboard"
	"github.com/vfg2006/partner-analytics-api/internal/usecases/ranking"
	"github.com/vfg2006/partner-analytics-api/internal/usecases/viewing"
	"github.com/vfg2006/partner-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/partner-analytics-api/pkg/log"
)

type fakeJob struct {
	running  bool
	triggers int
}

func (f *fakeJob) TriggerManualSync() bool {
	if f.running {
		return false
	}
	f.triggers++
	return true
}

func (f *fakeJob) GetStatus() map[string]any {
	return map[string]any{"is_running": f.running, "triggers": f.triggers}
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error {
	return f.err
}

type testAPI struct {
	handler http.Handler
	views   *viewing.Service
	job     *fakeJob
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log.SetupTestLogger()

	repo := repository.NewStaticDashboardRepository(nil)
	dashboardService := dashboard.NewService(repo)
	rankingService := ranking.NewRankedListService(repo)
	views := viewing.NewService()
	job := &fakeJob{}

	rt := router.New(
		router.WithNotFound(NotFoundHandler()),
		router.WithRoutes(Healthcheck("mock", nil)...),
		router.WithRoutes(Partners(dashboardService)...),
		router.WithRoutes(Performance(dashboardService, views)...),
		router.WithRoutes(Rankings(rankingService)...),
		router.WithRoutes(Views(views)...),
		router.WithRoutes(CronJobs(CronJobServices{CronJobTypeSnapshotSync: job})...),
	)

	return &testAPI{handler: rt, views: views, job: job}
}

func (a *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(method, path, reader))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestPartners(t *testing.T) {
	api := newTestAPI(t)

	t.Run("lista parceiros com funcionalidades", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/v1/partners", "")
		require.Equal(t, http.StatusOK, rec.Code)

		partners := decode[[]domain.PartnerResponse](t, rec)
		require.Len(t, partners, 4)
		assert.Equal(t, "p-aurora", partners[0].ID)
		assert.True(t, partners[0].Features[domain.FeatureAISuggestionsFull])
	})

	t.Run("parceiro inexistente", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/v1/partners/p-missing", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrNotFound, decode[apiErrors.APIError](t, rec).Code)
	})

	t.Run("catálogo de funcionalidades", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/v1/features", "")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[map[string][]domain.Feature](t, rec)
		assert.Equal(t, domain.AllFeatures(), body["features"])
	})
}

func TestCheckPartnerFeature(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name    string
		path    string
		status  int
		allowed bool
		code    string
	}{
		{name: "creator pago libera sugestões", path: "/v1/partners/p-aurora/features/ai-suggestions-full", status: http.StatusOK, allowed: true},
		{name: "creator free não libera sugestões", path: "/v1/partners/p-brisa/features/ai-suggestions-full", status: http.StatusOK, allowed: false},
		{name: "shop free não libera analytics", path: "/v1/partners/p-brisa/features/advanced-analytics", status: http.StatusOK, allowed: false},
		{name: "sem plano creator", path: "/v1/partners/p-cobalt/features/creator-performance", status: http.StatusOK, allowed: false},
		{name: "funcionalidade desconhecida", path: "/v1/partners/p-aurora/features/white-label", status: http.StatusBadRequest, code: apiErrors.ErrInvalidFormat},
		{name: "parceiro inexistente", path: "/v1/partners/p-missing/features/shop-performance", status: http.StatusNotFound, code: apiErrors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, http.MethodGet, tt.path, "")
			require.Equal(t, tt.status, rec.Code)

			if tt.code != "" {
				assert.Equal(t, tt.code, decode[apiErrors.APIError](t, rec).Code)
				return
			}
			assert.Equal(t, tt.allowed, decode[featureAccessResponse](t, rec).Allowed)
		})
	}
}

func TestGetWebsitePerformance(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/partners/p-brisa/performance", "")
	require.Equal(t, http.StatusOK, rec.Code)

	view := decode[domain.PerformanceView](t, rec)
	assert.Len(t, view.Cards, 5)
	assert.Nil(t, view.Metrics.AdMetrics)
	assert.Nil(t, view.Metrics.Funnel)
	assert.Contains(t, view.Locked, domain.FeatureAdvancedAnalytics)
}

func TestCampaigns_FeatureGate(t *testing.T) {
	api := newTestAPI(t)

	t.Run("sem plano shop", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/v1/partners/p-dune/campaigns", "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, apiErrors.ErrFeatureLocked, decode[apiErrors.APIError](t, rec).Code)
	})

	t.Run("filtro por status", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/v1/partners/p-aurora/campaigns?status=active", "")
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[domain.CampaignListResponse](t, rec)
		assert.Equal(t, domain.CampaignFilterActive, resp.Filter)
		assert.Len(t, resp.Campaigns, 2)
	})

	t.Run("filtro inválido", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/v1/partners/p-aurora/campaigns?status=paused", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("filtro salvo na visualização", func(t *testing.T) {
		view, err := api.views.Create()
		require.NoError(t, err)
		_, err = api.views.Update(view.ID, func(v domain.ViewState) (domain.ViewState, error) {
			return v.WithCampaignFilter(domain.CampaignFilterCompleted)
		})
		require.NoError(t, err)

		rec := api.do(t, http.MethodGet, "/v1/partners/p-aurora/campaigns?view_id="+view.ID, "")
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[domain.CampaignListResponse](t, rec)
		assert.Equal(t, domain.CampaignFilterCompleted, resp.Filter)
		assert.Len(t, resp.Campaigns, 2)
	})
}

func TestGetPerformanceSeries(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name   string
		query  string
		status int
		points int
		first  string
		code   string
	}{
		{name: "padrão de 7 dias", query: "", status: http.StatusOK, points: 7, first: "2024-02-23"},
		{name: "preset de 30 dias", query: "?time_range=30d", status: http.StatusOK, points: 30, first: "2024-01-31"},
		{name: "período personalizado", query: "?start=2024-02-01&end=2024-02-10", status: http.StatusOK, points: 10, first: "2024-02-01"},
		{name: "período invertido", query: "?start=2024-02-10&end=2024-02-01", status: http.StatusBadRequest, code: apiErrors.ErrInvalidDateRange},
		{name: "período incompleto", query: "?start=2024-02-10", status: http.StatusBadRequest, code: apiErrors.ErrInvalidDateRange},
		{name: "custom sem datas", query: "?time_range=custom", status: http.StatusBadRequest, code: apiErrors.ErrInvalidDateRange},
		{name: "preset inválido", query: "?time_range=1y", status: http.StatusBadRequest, code: apiErrors.ErrInvalidFormat},
		{name: "visualização inexistente", query: "?view_id=view_missing", status: http.StatusNotFound, code: apiErrors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, http.MethodGet, "/v1/partners/p-aurora/performance/series"+tt.query, "")
			require.Equal(t, tt.status, rec.Code)

			if tt.code != "" {
				assert.Equal(t, tt.code, decode[apiErrors.APIError](t, rec).Code)
				return
			}

			resp := decode[domain.PerformanceSeriesResponse](t, rec)
			require.Len(t, resp.Points, tt.points)
			assert.Equal(t, tt.first, resp.Points[0].Date)
		})
	}
}

func TestSuggestions(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/partners/p-brisa/suggestions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[domain.SuggestionListResponse](t, rec)
	assert.True(t, resp.Locked)
	assert.Len(t, resp.Suggestions, 2)
	assert.Equal(t, 3, resp.HiddenCount)
}

func TestRankings(t *testing.T) {
	api := newTestAPI(t)

	t.Run("lista aberta", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/v1/partners/p-dune/rankings/traffic-sources", "")
		require.Equal(t, http.StatusOK, rec.Code)

		expected := repository.DefaultDataset().RankedLists["p-dune"][domain.RankedListTrafficSources]

		resp := decode[domain.RankedListResponse](t, rec)
		require.Len(t, resp.Entries, len(expected.Items))
		for i, item := range expected.Items {
			assert.Equal(t, item.ID, resp.Entries[i].ID)
		}
	})

	t.Run("lista restrita pelo plano", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/v1/partners/p-cobalt/rankings/top-creators", "")
		require.Equal(t, http.StatusForbidden, rec.Code)

		apiErr := decode[apiErrors.APIError](t, rec)
		assert.Equal(t, apiErrors.ErrFeatureLocked, apiErr.Code)
		assert.Equal(t, map[string]any{"feature": string(domain.FeatureCreatorPerformance)}, apiErr.Details)
	})

	t.Run("lista desconhecida", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/v1/partners/p-aurora/rankings/top-stores", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("item selecionado", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/v1/partners/p-aurora/rankings/top-products/items/p-aurora-prd-1", "")
		require.Equal(t, http.StatusOK, rec.Code)

		entry := decode[domain.RankedEntry](t, rec)
		assert.Equal(t, "p-aurora-prd-1", entry.ID)
		assert.Greater(t, entry.Percentage, 0.0)
	})

	t.Run("item inexistente", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/v1/partners/p-aurora/rankings/top-products/items/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestViews_Lifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/v1/views", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[domain.ViewStateResponse](t, rec)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, domain.TimeRange7d, created.TimeRange)
	assert.Equal(t, "Last 7 days", created.Label)
	base := "/v1/views/" + created.ID

	rec = api.do(t, http.MethodPut, base+"/custom-range", `{"start":"2024-02-01","end":"2024-02-10"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	custom := decode[domain.ViewStateResponse](t, rec)
	assert.True(t, custom.IsCustomRange)
	assert.Equal(t, "Feb 1 - Feb 10", custom.Label)

	rec = api.do(t, http.MethodPut, base+"/custom-range", `{"start":"2024-02-10","end":"2024-02-01"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decode[apiErrors.APIError](t, rec)
	assert.Equal(t, apiErrors.ErrInvalidDateRange, apiErr.Code)
	assert.Contains(t, rec.Body.String(), `"label":"Feb 1 - Feb 10"`)

	rec = api.do(t, http.MethodGet, "/v1/partners/p-aurora/performance/series?view_id="+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[domain.PerformanceSeriesResponse](t, rec).Points, 10)

	rec = api.do(t, http.MethodPut, base+"/time-range", `{"time_range":"30d"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	preset := decode[domain.ViewStateResponse](t, rec)
	assert.False(t, preset.IsCustomRange)
	assert.Nil(t, preset.CustomStart)

	rec = api.do(t, http.MethodPut, base+"/tab", `{"index":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ai-suggestions", decode[domain.ViewStateResponse](t, rec).ActiveTabName)

	rec = api.do(t, http.MethodPut, base+"/tab", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrMissingRequiredData, decode[apiErrors.APIError](t, rec).Code)

	rec = api.do(t, http.MethodPut, base+"/section", `{"section":"billing"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidFormat, decode[apiErrors.APIError](t, rec).Code)

	rec = api.do(t, http.MethodPut, base+"/section", `{"section":"shop","extra":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidRequest, decode[apiErrors.APIError](t, rec).Code)

	rec = api.do(t, http.MethodPost, base+"/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	reset := decode[domain.ViewStateResponse](t, rec)
	assert.Equal(t, domain.TimeRange7d, reset.TimeRange)
	assert.Equal(t, 0, reset.ActiveTab)

	rec = api.do(t, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodPut, base+"/section", `{"section":"shop"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCronJobs(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/v1/cron/jobs/snapshot-sync/run", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, api.job.triggers)

	api.job.running = true
	rec = api.do(t, http.MethodPost, "/v1/cron/jobs/snapshot-sync/run", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apiErrors.ErrJobRunning, decode[apiErrors.APIError](t, rec).Code)

	rec = api.do(t, http.MethodPost, "/v1/cron/jobs/unknown/run", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodGet, "/v1/cron/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[map[string]map[string]any](t, rec)
	assert.Equal(t, true, status[CronJobTypeSnapshotSync]["is_running"])
}

func TestHealthcheck(t *testing.T) {
	log.SetupTestLogger()

	rec := httptest.NewRecorder()
	HealthcheckHandler("postgres", fakePinger{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	HealthcheckHandler("postgres", fakePinger{err: errors.New("connection refused")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, apiErrors.ErrUnavailable, decode[apiErrors.APIError](t, rec).Code)
}

func TestNotFound(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v2/anything", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrNotFound, decode[apiErrors.APIError](t, rec).Code)
}
