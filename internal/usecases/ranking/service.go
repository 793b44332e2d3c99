package ranking

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"github.com/vfg2006/partner-analytics-api/infrastructure/repository"
	"github.com/vfg2006/partner-analytics-api/internal/domain"
	"github.com/vfg2006/partner-analytics-api/pkg/apiErrors"
)

var (
	ErrPartnerNotFound    = errors.New("partner not found")
	ErrRankedListNotFound = errors.New("ranked list not found")
	ErrItemNotFound       = errors.New("ranked list item not found")
	ErrFeatureLocked      = errors.New("feature not available on partner plan")
	ErrFetchRanking       = errors.New("error fetching ranked list")
)

// RankingError carrega o código de API e, quando bloqueado, a funcionalidade exigida
type RankingError struct {
	Err     error
	Code    string
	Feature domain.Feature
}

func (e *RankingError) Error() string {
	if e.Feature != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Feature)
	}
	return e.Err.Error()
}

func (e *RankingError) Unwrap() error {
	return e.Err
}

type RankingService interface {
	GetRankedList(partnerID string, kind domain.RankedListKind) (*domain.RankedListResponse, error)
	GetRankedItem(partnerID string, kind domain.RankedListKind, itemID string) (*domain.RankedEntry, error)
}

type RankedListService struct {
	DashboardRepository repository.DashboardRepository
}

func NewRankedListService(dashboardRepository repository.DashboardRepository) RankingService {
	return &RankedListService{
		DashboardRepository: dashboardRepository,
	}
}

func (s *RankedListService) GetRankedList(partnerID string, kind domain.RankedListKind) (*domain.RankedListResponse, error) {
	list, err := s.loadList(partnerID, kind)
	if err != nil {
		return nil, err
	}

	return &domain.RankedListResponse{
		PartnerID: partnerID,
		Kind:      list.Kind,
		Title:     list.Title,
		Total:     list.Total,
		Entries:   list.Entries(),
	}, nil
}

// GetRankedItem devolve o item selecionado com a sua participação no total
func (s *RankedListService) GetRankedItem(partnerID string, kind domain.RankedListKind, itemID string) (*domain.RankedEntry, error) {
	list, err := s.loadList(partnerID, kind)
	if err != nil {
		return nil, err
	}

	for _, entry := range list.Entries() {
		if entry.ID == itemID {
			return &entry, nil
		}
	}

	return nil, &RankingError{Err: ErrItemNotFound, Code: apiErrors.ErrNotFound}
}

func (s *RankedListService) loadList(partnerID string, kind domain.RankedListKind) (*domain.RankedList, error) {
	partner, err := s.DashboardRepository.GetPartner(partnerID)
	if err != nil {
		return nil, &RankingError{Err: pkgerrors.Wrap(ErrFetchRanking, err.Error()), Code: apiErrors.ErrDatabaseOperation}
	}
	if partner == nil {
		return nil, &RankingError{Err: ErrPartnerNotFound, Code: apiErrors.ErrNotFound}
	}

	if feature, gated := kind.RequiredFeature(); gated && !domain.CanAccess(feature, partner.Plans) {
		return nil, &RankingError{Err: ErrFeatureLocked, Code: apiErrors.ErrFeatureLocked, Feature: feature}
	}

	list, err := s.DashboardRepository.GetRankedList(partnerID, kind)
	if err != nil {
		return nil, &RankingError{Err: pkgerrors.Wrap(ErrFetchRanking, err.Error()), Code: apiErrors.ErrDatabaseOperation}
	}
	if list == nil {
		return nil, &RankingError{Err: ErrRankedListNotFound, Code: apiErrors.ErrNotFound}
	}

	return list, nil
}
