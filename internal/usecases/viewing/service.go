package viewing

import (
	"errors"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/vfg2006/partner-analytics-api/internal/domain"
	"github.com/vfg2006/partner-analytics-api/pkg/log"
	"github.com/vfg2006/partner-analytics-api/pkg/utils"
)

const idPrefix = "view_"

var (
	ErrViewNotFound = errors.New("view state not found")
	ErrGenerateID   = errors.New("error generating view ID")
)

// Transition aplica uma mudança ao estado. Em erro, o estado guardado não muda.
type Transition func(domain.ViewState) (domain.ViewState, error)

type ViewService interface {
	Create() (domain.ViewState, error)
	Get(id string) (domain.ViewState, error)
	Update(id string, transition Transition) (domain.ViewState, error)
	Reset(id string) (domain.ViewState, error)
	Delete(id string) error
	Count() int
}

// Service guarda os estados de visualização em memória, sem histórico
type Service struct {
	mu    sync.Mutex
	views map[string]domain.ViewState
	now   func() time.Time
}

func NewService() *Service {
	return &Service{
		views: make(map[string]domain.ViewState),
		now:   time.Now,
	}
}

func (s *Service) Create() (domain.ViewState, error) {
	id, err := utils.GenerateID(idPrefix)
	if err != nil {
		return domain.ViewState{}, pkgerrors.Wrap(ErrGenerateID, err.Error())
	}

	view := domain.DefaultViewState(id)
	view.UpdatedAt = s.now().UTC()

	s.mu.Lock()
	s.views[id] = view
	s.mu.Unlock()

	log.L.WithField("view_id", id).Debug("Estado de visualização criado")

	return view, nil
}

func (s *Service) Get(id string) (domain.ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, ok := s.views[id]
	if !ok {
		return domain.ViewState{}, ErrViewNotFound
	}
	return view, nil
}

// Update aplica a transição sob o lock, então atualizações concorrentes
// do mesmo estado são serializadas
func (s *Service) Update(id string, transition Transition) (domain.ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.views[id]
	if !ok {
		return domain.ViewState{}, ErrViewNotFound
	}

	next, err := transition(current)
	if err != nil {
		return current, err
	}

	next.ID = id
	next.UpdatedAt = s.now().UTC()
	s.views[id] = next

	return next, nil
}

func (s *Service) Reset(id string) (domain.ViewState, error) {
	return s.Update(id, func(domain.ViewState) (domain.ViewState, error) {
		return domain.DefaultViewState(id), nil
	})
}

func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.views[id]; !ok {
		return ErrViewNotFound
	}
	delete(s.views, id)
	return nil
}

func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}
