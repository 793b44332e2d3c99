package handler

import (
	"net/http"

	"github.com/vfg2006/partner-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/partner-analytics-api/internal/domain"
	"github.com/vfg2006/partner-analytics-api/internal/usecases/dashboard"
	"github.com/vfg2006/partner-analytics-api/internal/usecases/ranking"
	"github.com/vfg2006/partner-analytics-api/internal/usecases/viewing"
	"github.com/vfg2006/partner-analytics-api/pkg/middleware"
)

func Healthcheck(dataSource string, pinger Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(dataSource, pinger),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: MetricsHandler(),
		},
	}
}

func Partners(service dashboard.DashboardService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/features",
			Method:  http.MethodGet,
			Handler: ListFeatures(),
		},
		{
			Path:    "/v1/partners",
			Method:  http.MethodGet,
			Handler: ListPartners(service),
		},
		{
			Path:    "/v1/partners/:id",
			Method:  http.MethodGet,
			Handler: GetPartner(service),
		},
		{
			Path:    "/v1/partners/:id/features",
			Method:  http.MethodGet,
			Handler: GetPartnerFeatures(service),
		},
		{
			Path:    "/v1/partners/:id/features/:feature",
			Method:  http.MethodGet,
			Handler: CheckPartnerFeature(service),
		},
	}
}

func Performance(service dashboard.DashboardService, views viewing.ViewService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/partners/:id/performance",
			Method:  http.MethodGet,
			Handler: GetWebsitePerformance(service),
		},
		{
			Path:    "/v1/partners/:id/performance/series",
			Method:  http.MethodGet,
			Handler: GetPerformanceSeries(service, views),
		},
		{
			Path:        "/v1/partners/:id/campaigns",
			Method:      http.MethodGet,
			Handler:     ListCampaigns(service, views),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireFeature(service, domain.FeatureShopPerformance)},
		},
		{
			Path:    "/v1/partners/:id/suggestions",
			Method:  http.MethodGet,
			Handler: ListSuggestions(service),
		},
	}
}

func Rankings(service ranking.RankingService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/partners/:id/rankings/:kind",
			Method:  http.MethodGet,
			Handler: GetRankedList(service),
		},
		{
			Path:    "/v1/partners/:id/rankings/:kind/items/:item_id",
			Method:  http.MethodGet,
			Handler: GetRankedItem(service),
		},
	}
}

func Views(service viewing.ViewService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/views",
			Method:  http.MethodPost,
			Handler: CreateView(service),
		},
		{
			Path:    "/v1/views/:id",
			Method:  http.MethodGet,
			Handler: GetView(service),
		},
		{
			Path:    "/v1/views/:id",
			Method:  http.MethodDelete,
			Handler: DeleteView(service),
		},
		{
			Path:    "/v1/views/:id/reset",
			Method:  http.MethodPost,
			Handler: ResetView(service),
		},
		{
			Path:    "/v1/views/:id/section",
			Method:  http.MethodPut,
			Handler: UpdateViewSection(service),
		},
		{
			Path:    "/v1/views/:id/tab",
			Method:  http.MethodPut,
			Handler: UpdateViewTab(service),
		},
		{
			Path:    "/v1/views/:id/time-range",
			Method:  http.MethodPut,
			Handler: UpdateViewTimeRange(service),
		},
		{
			Path:    "/v1/views/:id/custom-range",
			Method:  http.MethodPut,
			Handler: UpdateViewCustomRange(service),
		},
		{
			Path:    "/v1/views/:id/campaign-filter",
			Method:  http.MethodPut,
			Handler: UpdateViewCampaignFilter(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/jobs/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
