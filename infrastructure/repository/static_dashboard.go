package repository

import (
	"github.com/vfg2006/partner-analytics-api/internal/domain"
)

type staticDashboardRepository struct {
	data *Dataset
}

// NewStaticDashboardRepository serve o dataset estático. As respostas são cópias,
// então quem chama pode alterá-las sem afetar o dataset.
func NewStaticDashboardRepository(data *Dataset) DashboardRepository {
	if data == nil {
		data = DefaultDataset()
	}
	return &staticDashboardRepository{data: data}
}

func (r *staticDashboardRepository) ListPartners() ([]*domain.Partner, error) {
	partners := make([]*domain.Partner, 0, len(r.data.Partners))
	for _, p := range r.data.Partners {
		partner := *p
		partners = append(partners, &partner)
	}
	return partners, nil
}

func (r *staticDashboardRepository) GetPartner(id string) (*domain.Partner, error) {
	for _, p := range r.data.Partners {
		if p.ID == id {
			partner := *p
			return &partner, nil
		}
	}
	return nil, nil
}

func (r *staticDashboardRepository) GetWebsitePerformance(partnerID string) (*domain.WebsitePerformanceMetrics, error) {
	metrics, ok := r.data.Performance[partnerID]
	if !ok {
		return nil, nil
	}

	out := metrics.Clone()
	campaigns, err := r.ListCampaigns(partnerID)
	if err != nil {
		return nil, err
	}
	out.Campaigns = campaigns

	return out, nil
}

func (r *staticDashboardRepository) GetPerformanceSeries(partnerID string) ([]domain.DailyPerformance, error) {
	series, ok := r.data.Series[partnerID]
	if !ok {
		return nil, nil
	}

	out := make([]domain.DailyPerformance, len(series))
	copy(out, series)
	return out, nil
}

func (r *staticDashboardRepository) ListCampaigns(partnerID string) ([]*domain.Campaign, error) {
	campaigns := r.data.Campaigns[partnerID]

	out := make([]*domain.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		campaign := *c
		out = append(out, &campaign)
	}
	return out, nil
}

func (r *staticDashboardRepository) ListSuggestions(partnerID string) ([]*domain.AISuggestion, error) {
	suggestions := r.data.Suggestions[partnerID]

	out := make([]*domain.AISuggestion, 0, len(suggestions))
	for _, s := range suggestions {
		suggestion := *s
		out = append(out, &suggestion)
	}
	return out, nil
}

func (r *staticDashboardRepository) GetRankedList(partnerID string, kind domain.RankedListKind) (*domain.RankedList, error) {
	lists, ok := r.data.RankedLists[partnerID]
	if !ok {
		return nil, nil
	}

	list, ok := lists[kind]
	if !ok {
		return nil, nil
	}

	out := *list
	out.Items = make([]*domain.RankedListItem, 0, len(list.Items))
	for _, item := range list.Items {
		copied := *item
		out.Items = append(out.Items, &copied)
	}
	return &out, nil
}
