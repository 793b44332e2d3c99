// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"github.com/vfg2006/partner-analytics-api/internal/domain"
)

// DashboardRepository é o provedor somente leitura dos dados do dashboard.
// Métodos de busca por ID retornam nil, nil quando o registro não existe.
type DashboardRepository interface {
	ListPartners() ([]*domain.Partner, error)
	GetPartner(id string) (*domain.Partner, error)
	GetWebsitePerformance(partnerID string) (*domain.WebsitePerformanceMetrics, error)
	GetPerformanceSeries(partnerID string) ([]domain.DailyPerformance, error)
	ListCampaigns(partnerID string) ([]*domain.Campaign, error)
	ListSuggestions(partnerID string) ([]*domain.AISuggestion, error)
	GetRankedList(partnerID string, kind domain.RankedListKind) (*domain.RankedList, error)
}
