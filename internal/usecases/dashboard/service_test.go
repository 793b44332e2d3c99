package dashboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/partner-analytics-api/infrastructure/repository"
	"github.com/vfg2006/partner-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/partner-analytics-api/internal/domain"
	"github.com/vfg2006/partner-analytics-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func partnerWith(id string, shop, creator domain.PlanType) *domain.Partner {
	return &domain.Partner{ID: id, Name: "Parceiro " + id, Plans: domain.PartnerPlans{Shop: shop, Creator: creator}}
}

func sampleMetrics(id string) *domain.WebsitePerformanceMetrics {
	return &domain.WebsitePerformanceMetrics{
		PartnerID:   id,
		Revenue:     1234567,
		Conversions: 8920,
		ROAS:        99,
		Funnel:      &domain.Funnel{Clicks: 64200, Conversions: 8920, CVR: 13.9},
		Trend:       domain.Trend{Current: 1200, Previous: 1000},
		AdMetrics:   &domain.AdMetrics{Spend: 1000, Impressions: 50000, Clicks: 1000, Revenue: 4200},
		PerformanceRank: &domain.PerformanceRank{
			Position: 3, Total: 120, Tier: "top-5%",
		},
	}
}

func TestService_GetWebsitePerformance(t *testing.T) {
	tests := []struct {
		name       string
		partner    *domain.Partner
		wantLocked []domain.Feature
		wantAd     bool
		wantRank   bool
	}{
		{
			name:     "Plano pago completo mostra tudo",
			partner:  partnerWith("p1", domain.PlanPaid, domain.PlanPaid),
			wantAd:   true,
			wantRank: true,
		},
		{
			name:       "Shop gratuito esconde métricas avançadas",
			partner:    partnerWith("p2", domain.PlanFree, domain.PlanFree),
			wantLocked: []domain.Feature{domain.FeatureAdvancedAnalytics},
			wantRank:   true,
		},
		{
			name:       "Sem plano creator esconde benchmarking",
			partner:    partnerWith("p3", domain.PlanPaid, domain.PlanNone),
			wantLocked: []domain.Feature{domain.FeatureTopTierBenchmarking},
			wantAd:     true,
		},
		{
			name:       "Sem nenhum plano esconde os dois",
			partner:    partnerWith("p4", domain.PlanNone, domain.PlanNone),
			wantLocked: []domain.Feature{domain.FeatureAdvancedAnalytics, domain.FeatureTopTierBenchmarking},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockDashboardRepository(ctrl)

			repo.EXPECT().GetPartner(tt.partner.ID).Return(tt.partner, nil)
			repo.EXPECT().GetWebsitePerformance(tt.partner.ID).Return(sampleMetrics(tt.partner.ID), nil)

			view, err := NewService(repo).GetWebsitePerformance(tt.partner.ID)
			require.NoError(t, err)

			if tt.wantLocked == nil {
				assert.Empty(t, view.Locked)
			} else {
				assert.Equal(t, tt.wantLocked, view.Locked)
			}
			assert.Equal(t, tt.wantAd, view.Metrics.AdMetrics != nil)
			assert.Equal(t, tt.wantAd, view.Metrics.Funnel != nil)
			assert.Equal(t, tt.wantRank, view.Metrics.PerformanceRank != nil)

			// Derivados sempre recalculados
			assert.Equal(t, 4.2, view.Metrics.ROAS)
			assert.Equal(t, 138.4, view.Metrics.AOV)
			assert.Equal(t, domain.TrendUp, view.Metrics.Trend.Direction)

			require.Len(t, view.Cards, 5)
			assert.Equal(t, "$1,234,567", view.Cards[0].Display)
			assert.Equal(t, "8,920", view.Cards[1].Display)
			assert.Equal(t, "4.2x", view.Cards[2].Display)
			assert.Equal(t, "13.9%", view.Cards[3].Display)
		})
	}
}

func TestService_GetWebsitePerformance_UsesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDashboardRepository(ctrl)

	partner := partnerWith("p1", domain.PlanPaid, domain.PlanPaid)
	repo.EXPECT().GetPartner("p1").Return(partner, nil).Times(2)
	repo.EXPECT().GetWebsitePerformance("p1").Return(sampleMetrics("p1"), nil).Times(1)

	service := NewService(repo)

	first, err := service.GetWebsitePerformance("p1")
	require.NoError(t, err)
	first.Metrics.Revenue = 0

	second, err := service.GetWebsitePerformance("p1")
	require.NoError(t, err)
	assert.Equal(t, 1234567.0, second.Metrics.Revenue)
}

func TestService_GetPartner_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDashboardRepository(ctrl)
	service := NewService(repo)

	_, err := service.GetPartner("  ")
	assert.ErrorIs(t, err, ErrPartnerIDRequired)

	repo.EXPECT().GetPartner("missing").Return(nil, nil)
	_, err = service.GetPartner("missing")
	require.ErrorIs(t, err, ErrPartnerNotFound)

	var dashErr *DashboardError
	require.ErrorAs(t, err, &dashErr)
	assert.Equal(t, apiErrors.ErrNotFound, dashErr.Code)
	assert.Equal(t, "missing", dashErr.PartnerID)

	repo.EXPECT().GetPartner("broken").Return(nil, errors.New("connection refused"))
	_, err = service.GetPartner("broken")
	assert.ErrorIs(t, err, ErrFetchDashboard)
	require.ErrorAs(t, err, &dashErr)
	assert.Equal(t, apiErrors.ErrDatabaseOperation, dashErr.Code)
}

func TestService_GetPartner_FeatureMap(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDashboardRepository(ctrl)

	repo.EXPECT().GetPartner("p-dune").Return(partnerWith("p-dune", domain.PlanNone, domain.PlanFree), nil)

	partner, err := NewService(repo).GetPartner("p-dune")
	require.NoError(t, err)

	assert.False(t, partner.Features[domain.FeatureShopPerformance])
	assert.False(t, partner.Features[domain.FeatureAdvancedAnalytics])
	assert.True(t, partner.Features[domain.FeatureCreatorPerformance])
	assert.True(t, partner.Features[domain.FeatureTopTierBenchmarking])
	assert.False(t, partner.Features[domain.FeatureAISuggestionsFull])
}

func TestService_ResolvePlans(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDashboardRepository(ctrl)
	service := NewService(repo)

	repo.EXPECT().GetPartner("p1").Return(partnerWith("p1", domain.PlanFree, domain.PlanPaid), nil)
	plans, found, err := service.ResolvePlans("p1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.PlanPaid, plans.Creator)

	repo.EXPECT().GetPartner("nope").Return(nil, nil)
	_, found, err = service.ResolvePlans("nope")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestService_ListSuggestions(t *testing.T) {
	suggestions := []*domain.AISuggestion{
		{ID: "s1", VisibleInFree: true},
		{ID: "s2", VisibleInFree: false},
		{ID: "s3", VisibleInFree: true},
		{ID: "s4", VisibleInFree: false},
	}

	tests := []struct {
		name       string
		creator    domain.PlanType
		wantCount  int
		wantHidden int
		wantLocked bool
	}{
		{name: "Creator gratuito vê apenas as liberadas", creator: domain.PlanFree, wantCount: 2, wantHidden: 2, wantLocked: true},
		{name: "Creator pago vê todas", creator: domain.PlanPaid, wantCount: 4, wantHidden: 0, wantLocked: false},
		{name: "Sem plano vê apenas as liberadas", creator: domain.PlanNone, wantCount: 2, wantHidden: 2, wantLocked: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockDashboardRepository(ctrl)

			repo.EXPECT().GetPartner("p1").Return(partnerWith("p1", domain.PlanPaid, tt.creator), nil)
			repo.EXPECT().ListSuggestions("p1").Return(suggestions, nil)

			resp, err := NewService(repo).ListSuggestions("p1")
			require.NoError(t, err)
			assert.Len(t, resp.Suggestions, tt.wantCount)
			assert.Equal(t, tt.wantHidden, resp.HiddenCount)
			assert.Equal(t, tt.wantLocked, resp.Locked)
		})
	}
}

func TestService_ListCampaigns(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDashboardRepository(ctrl)

	repo.EXPECT().GetPartner("p1").Return(partnerWith("p1", domain.PlanPaid, domain.PlanPaid), nil)
	repo.EXPECT().ListCampaigns("p1").Return([]*domain.Campaign{
		{ID: "c1", Status: domain.CampaignStatusActive, Revenue: 400, Spend: 100, Clicks: 100, Conversions: 10},
		{ID: "c2", Status: domain.CampaignStatusPaused, Revenue: 100, Spend: 100},
		{ID: "c3", Status: domain.CampaignStatusCompleted, Revenue: 300, Spend: 0},
		{ID: "c4", Status: domain.CampaignStatusActive, Revenue: 200, Spend: 100, Clicks: 100, Conversions: 30},
	}, nil)

	resp, err := NewService(repo).ListCampaigns("p1", domain.CampaignFilterActive)
	require.NoError(t, err)

	require.Len(t, resp.Campaigns, 2)
	assert.Equal(t, "c1", resp.Campaigns[0].ID)
	assert.Equal(t, 4.0, resp.Campaigns[0].ROAS)
	assert.Equal(t, "c4", resp.Campaigns[1].ID)
	assert.Equal(t, 3.0, resp.Totals.ROAS)
	assert.Equal(t, 20.0, resp.Totals.CVR)
}

func TestService_GetPerformanceSeries(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDashboardRepository(ctrl)

	data := repository.DefaultDataset()
	repo.EXPECT().GetPartner("p-aurora").Return(partnerWith("p-aurora", domain.PlanPaid, domain.PlanPaid), nil).AnyTimes()
	repo.EXPECT().GetPerformanceSeries("p-aurora").Return(data.Series["p-aurora"], nil).AnyTimes()

	service := NewService(repo)

	resp, err := service.GetPerformanceSeries("p-aurora", domain.DefaultViewState("v1"))
	require.NoError(t, err)
	assert.Len(t, resp.Points, 7)
	assert.Equal(t, "2024-02-23", resp.StartDate)
	assert.Equal(t, "2024-02-29", resp.EndDate)
	assert.Equal(t, "Last 7 days", resp.Label)

	custom, err := domain.DefaultViewState("v1").ApplyCustomRange("2024-02-01", "2024-02-10")
	require.NoError(t, err)

	resp, err = service.GetPerformanceSeries("p-aurora", custom)
	require.NoError(t, err)
	assert.Len(t, resp.Points, 10)
	assert.Equal(t, "2024-02-01", resp.Points[0].Date)
	assert.Equal(t, "Feb 1 - Feb 10", resp.Label)
	assert.Equal(t, domain.TimeRangeCustom, resp.TimeRange)
}

func TestService_GetPerformanceSeries_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDashboardRepository(ctrl)

	repo.EXPECT().GetPartner("p1").Return(partnerWith("p1", domain.PlanFree, domain.PlanFree), nil)
	repo.EXPECT().GetPerformanceSeries("p1").Return(nil, nil)

	_, err := NewService(repo).GetPerformanceSeries("p1", domain.DefaultViewState("v1"))
	assert.ErrorIs(t, err, ErrSeriesNotFound)
}

func TestService_RefreshSnapshots(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDashboardRepository(ctrl)

	repo.EXPECT().ListPartners().Return([]*domain.Partner{
		partnerWith("p1", domain.PlanPaid, domain.PlanPaid),
		partnerWith("p2", domain.PlanFree, domain.PlanFree),
	}, nil)
	repo.EXPECT().GetWebsitePerformance("p1").Return(sampleMetrics("p1"), nil)
	repo.EXPECT().GetWebsitePerformance("p2").Return(nil, nil)

	service := NewService(repo)
	assert.True(t, service.LastRefresh().IsZero())

	count, err := service.RefreshSnapshots()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.False(t, service.LastRefresh().IsZero())

	// Leitura posterior usa o cache, sem nova chamada a GetWebsitePerformance
	repo.EXPECT().GetPartner("p1").Return(partnerWith("p1", domain.PlanPaid, domain.PlanPaid), nil)
	view, err := service.GetWebsitePerformance("p1")
	require.NoError(t, err)
	assert.Equal(t, 4.2, view.Metrics.ROAS)
}

func TestService_RefreshSnapshots_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDashboardRepository(ctrl)

	repo.EXPECT().ListPartners().Return(nil, errors.New("timeout"))

	_, err := NewService(repo).RefreshSnapshots()
	assert.Error(t, err)
}
