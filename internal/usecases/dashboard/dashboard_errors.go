package dashboard

import (
	"errors"
	"fmt"
)

var (
	ErrPartnerIDRequired   = errors.New("partner ID is required")
	ErrPartnerNotFound     = errors.New("partner not found")
	ErrPerformanceNotFound = errors.New("performance data not found")
	ErrSeriesNotFound      = errors.New("performance series not found")

	ErrFetchDashboard = errors.New("error fetching dashboard data")
)

// DashboardError carrega o código de API junto com o erro base
type DashboardError struct {
	Err       error
	Code      string
	PartnerID string
	Details   string
}

func (e *DashboardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *DashboardError) Unwrap() error {
	return e.Err
}

func NewDashboardError(err error, code string, partnerID string, details string) *DashboardError {
	return &DashboardError{
		Err:       err,
		Code:      code,
		PartnerID: partnerID,
		Details:   details,
	}
}
