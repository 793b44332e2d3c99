package dashboard

import (
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/partner-analytics-api/infrastructure/repository"
	"github.com/vfg2006/partner-analytics-api/internal/domain"
	"github.com/vfg2006/partner-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/partner-analytics-api/pkg/format"
	"github.com/vfg2006/partner-analytics-api/pkg/log"
)

// FormatRatio identifica cards exibidos como múltiplo (ex.: ROAS "4.2x")
const FormatRatio = "ratio"

type DashboardService interface {
	ListPartners() ([]*domain.PartnerResponse, error)
	GetPartner(id string) (*domain.PartnerResponse, error)
	GetFeatureAccess(id string) (map[domain.Feature]bool, error)
	ResolvePlans(id string) (domain.PartnerPlans, bool, error)
	GetWebsitePerformance(id string) (*domain.PerformanceView, error)
	GetPerformanceSeries(id string, view domain.ViewState) (*domain.PerformanceSeriesResponse, error)
	ListCampaigns(id string, filter domain.CampaignFilter) (*domain.CampaignListResponse, error)
	ListSuggestions(id string) (*domain.SuggestionListResponse, error)
	RefreshSnapshots() (int, error)
	LastRefresh() time.Time
}

type Service struct {
	repo repository.DashboardRepository

	mu          sync.RWMutex
	snapshots   map[string]*domain.WebsitePerformanceMetrics
	lastRefresh time.Time
}

func NewService(repo repository.DashboardRepository) *Service {
	return &Service{
		repo:      repo,
		snapshots: make(map[string]*domain.WebsitePerformanceMetrics),
	}
}

func (s *Service) ListPartners() ([]*domain.PartnerResponse, error) {
	partners, err := s.repo.ListPartners()
	if err != nil {
		return nil, NewDashboardError(errors.Wrap(ErrFetchDashboard, err.Error()), apiErrors.ErrDatabaseOperation, "", "Falha ao listar parceiros")
	}

	response := make([]*domain.PartnerResponse, 0, len(partners))
	for _, partner := range partners {
		response = append(response, newPartnerResponse(partner))
	}

	return response, nil
}

func (s *Service) GetPartner(id string) (*domain.PartnerResponse, error) {
	partner, err := s.loadPartner(id)
	if err != nil {
		return nil, err
	}
	return newPartnerResponse(partner), nil
}

func newPartnerResponse(partner *domain.Partner) *domain.PartnerResponse {
	return &domain.PartnerResponse{
		Partner:  *partner,
		Features: domain.FeatureAccess(partner.Plans),
	}
}

func (s *Service) GetFeatureAccess(id string) (map[domain.Feature]bool, error) {
	partner, err := s.loadPartner(id)
	if err != nil {
		return nil, err
	}
	return domain.FeatureAccess(partner.Plans), nil
}

// ResolvePlans é usado pelo middleware de funcionalidades. found=false quando o parceiro não existe.
func (s *Service) ResolvePlans(id string) (domain.PartnerPlans, bool, error) {
	partner, err := s.loadPartner(id)
	if err != nil {
		if errors.Is(err, ErrPartnerNotFound) {
			return domain.PartnerPlans{}, false, nil
		}
		return domain.PartnerPlans{}, false, err
	}
	return partner.Plans, true, nil
}

func (s *Service) loadPartner(id string) (*domain.Partner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, NewDashboardError(ErrPartnerIDRequired, apiErrors.ErrMissingRequiredData, "", "")
	}

	partner, err := s.repo.GetPartner(id)
	if err != nil {
		return nil, NewDashboardError(errors.Wrap(ErrFetchDashboard, err.Error()), apiErrors.ErrDatabaseOperation, id, "Falha ao buscar parceiro")
	}
	if partner == nil {
		return nil, NewDashboardError(ErrPartnerNotFound, apiErrors.ErrNotFound, id, "")
	}

	return partner, nil
}

func (s *Service) GetWebsitePerformance(id string) (*domain.PerformanceView, error) {
	partner, err := s.loadPartner(id)
	if err != nil {
		return nil, err
	}

	metrics, err := s.snapshot(partner.ID)
	if err != nil {
		return nil, err
	}

	view := &domain.PerformanceView{
		Metrics: metrics,
		Cards:   buildCards(metrics),
		Locked:  make([]domain.Feature, 0),
	}

	if !domain.CanAccess(domain.FeatureAdvancedAnalytics, partner.Plans) {
		metrics.AdMetrics = nil
		metrics.Funnel = nil
		view.Locked = append(view.Locked, domain.FeatureAdvancedAnalytics)
	}

	if !domain.CanAccess(domain.FeatureTopTierBenchmarking, partner.Plans) {
		metrics.PerformanceRank = nil
		view.Locked = append(view.Locked, domain.FeatureTopTierBenchmarking)
	}

	return view, nil
}

// snapshot retorna uma cópia das métricas derivadas, usando o cache quando disponível
func (s *Service) snapshot(partnerID string) (*domain.WebsitePerformanceMetrics, error) {
	s.mu.RLock()
	cached, ok := s.snapshots[partnerID]
	s.mu.RUnlock()

	if ok {
		return cached.Clone(), nil
	}

	metrics, err := s.loadMetrics(partnerID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.snapshots[partnerID] = metrics
	s.mu.Unlock()

	return metrics.Clone(), nil
}

func (s *Service) loadMetrics(partnerID string) (*domain.WebsitePerformanceMetrics, error) {
	metrics, err := s.repo.GetWebsitePerformance(partnerID)
	if err != nil {
		return nil, NewDashboardError(errors.Wrap(ErrFetchDashboard, err.Error()), apiErrors.ErrDatabaseOperation, partnerID, "Falha ao buscar desempenho do site")
	}
	if metrics == nil {
		return nil, NewDashboardError(ErrPerformanceNotFound, apiErrors.ErrNotFound, partnerID, "")
	}

	metrics.Derive()
	return metrics, nil
}

func buildCards(m *domain.WebsitePerformanceMetrics) []domain.MetricCard {
	cvr := 0.0
	if m.Funnel != nil {
		cvr = m.Funnel.CVR
	}

	return []domain.MetricCard{
		newCard("revenue", "Revenue", m.Revenue, string(format.KindCurrency)),
		newCard("conversions", "Conversions", float64(m.Conversions), string(format.KindNumber)),
		newCard("roas", "ROAS", m.ROAS, FormatRatio),
		newCard("cvr", "CVR", cvr, string(format.KindPercentage)),
		newCard("aov", "AOV", m.AOV, string(format.KindCurrency)),
	}
}

func newCard(key, label string, value float64, kind string) domain.MetricCard {
	display := ""
	if kind == FormatRatio {
		display = format.FormatRatio(value)
	} else {
		display = format.Format(value, format.Kind(kind))
	}

	return domain.MetricCard{
		Key:     key,
		Label:   label,
		Value:   value,
		Display: display,
		Format:  kind,
	}
}

// GetPerformanceSeries filtra a série pela janela da seleção. Para presets, a janela
// termina no último ponto disponível.
func (s *Service) GetPerformanceSeries(id string, view domain.ViewState) (*domain.PerformanceSeriesResponse, error) {
	partner, err := s.loadPartner(id)
	if err != nil {
		return nil, err
	}

	series, err := s.repo.GetPerformanceSeries(partner.ID)
	if err != nil {
		return nil, NewDashboardError(errors.Wrap(ErrFetchDashboard, err.Error()), apiErrors.ErrDatabaseOperation, partner.ID, "Falha ao buscar série de desempenho")
	}
	if len(series) == 0 {
		return nil, NewDashboardError(ErrSeriesNotFound, apiErrors.ErrNotFound, partner.ID, "")
	}

	asOf, err := time.Parse(time.DateOnly, series[len(series)-1].Date)
	if err != nil {
		return nil, NewDashboardError(errors.Wrap(ErrFetchDashboard, err.Error()), apiErrors.ErrInternalServer, partner.ID, "Data inválida na série")
	}

	start, end := view.Window(asOf)
	startDate, endDate := domain.FormatDate(start), domain.FormatDate(end)

	points := make([]domain.DailyPerformance, 0, len(series))
	for _, point := range series {
		// Datas no formato YYYY-MM-DD comparam corretamente como string
		if point.Date < startDate || point.Date > endDate {
			continue
		}
		point.CVR = format.CVR(point.Conversions, point.Clicks)
		points = append(points, point)
	}

	return &domain.PerformanceSeriesResponse{
		PartnerID: partner.ID,
		TimeRange: view.TimeRange,
		Label:     view.Label(),
		StartDate: startDate,
		EndDate:   endDate,
		Points:    points,
	}, nil
}

func (s *Service) ListCampaigns(id string, filter domain.CampaignFilter) (*domain.CampaignListResponse, error) {
	partner, err := s.loadPartner(id)
	if err != nil {
		return nil, err
	}

	campaigns, err := s.repo.ListCampaigns(partner.ID)
	if err != nil {
		return nil, NewDashboardError(errors.Wrap(ErrFetchDashboard, err.Error()), apiErrors.ErrDatabaseOperation, partner.ID, "Falha ao listar campanhas")
	}

	for _, c := range campaigns {
		c.Derive()
	}

	filtered := domain.FilterCampaigns(campaigns, filter)

	return &domain.CampaignListResponse{
		PartnerID: partner.ID,
		Filter:    filter,
		Campaigns: filtered,
		Totals:    domain.SumCampaigns(filtered),
	}, nil
}

func (s *Service) ListSuggestions(id string) (*domain.SuggestionListResponse, error) {
	partner, err := s.loadPartner(id)
	if err != nil {
		return nil, err
	}

	suggestions, err := s.repo.ListSuggestions(partner.ID)
	if err != nil {
		return nil, NewDashboardError(errors.Wrap(ErrFetchDashboard, err.Error()), apiErrors.ErrDatabaseOperation, partner.ID, "Falha ao listar sugestões")
	}

	visible := domain.VisibleSuggestions(suggestions, partner.Plans)

	return &domain.SuggestionListResponse{
		PartnerID:   partner.ID,
		Suggestions: visible,
		HiddenCount: len(suggestions) - len(visible),
		Locked:      !domain.CanAccess(domain.FeatureAISuggestionsFull, partner.Plans),
	}, nil
}

// RefreshSnapshots recalcula as métricas de todos os parceiros e substitui o cache.
// Parceiros sem dados de desempenho são ignorados.
func (s *Service) RefreshSnapshots() (int, error) {
	partners, err := s.repo.ListPartners()
	if err != nil {
		return 0, errors.Wrap(err, "falha ao listar parceiros")
	}

	snapshots := make(map[string]*domain.WebsitePerformanceMetrics, len(partners))
	for _, partner := range partners {
		metrics, err := s.repo.GetWebsitePerformance(partner.ID)
		if err != nil {
			return 0, errors.Wrapf(err, "falha ao buscar desempenho do parceiro %s", partner.ID)
		}
		if metrics == nil {
			log.L.WithField("partner_id", partner.ID).Warn("Parceiro sem dados de desempenho")
			continue
		}

		metrics.Derive()
		snapshots[partner.ID] = metrics
	}

	s.mu.Lock()
	s.snapshots = snapshots
	s.lastRefresh = time.Now()
	s.mu.Unlock()

	return len(snapshots), nil
}

func (s *Service) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh
}
