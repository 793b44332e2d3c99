package domain

import (
	"errors"

	"github.com/vfg2006/partner-analytics-api/pkg/format"
)

type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// CampaignFilter é o filtro de status da tabela de campanhas
type CampaignFilter string

const (
	CampaignFilterAll       CampaignFilter = "all"
	CampaignFilterActive    CampaignFilter = "active"
	CampaignFilterCompleted CampaignFilter = "completed"
)

var ErrInvalidCampaignFilter = errors.New("invalid campaign filter")

// ParseCampaignFilter aceita all, active e completed. Vazio equivale a all.
func ParseCampaignFilter(s string) (CampaignFilter, error) {
	switch CampaignFilter(s) {
	case "", CampaignFilterAll:
		return CampaignFilterAll, nil
	case CampaignFilterActive:
		return CampaignFilterActive, nil
	case CampaignFilterCompleted:
		return CampaignFilterCompleted, nil
	default:
		return "", ErrInvalidCampaignFilter
	}
}

// Matches indica se a campanha aparece com o filtro. Pausadas só aparecem em all.
func (f CampaignFilter) Matches(status CampaignStatus) bool {
	switch f {
	case CampaignFilterAll:
		return true
	case CampaignFilterActive:
		return status == CampaignStatusActive
	case CampaignFilterCompleted:
		return status == CampaignStatusCompleted
	default:
		return false
	}
}

type Campaign struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Status      CampaignStatus `json:"status"`
	Clicks      int            `json:"clicks"`
	Conversions int            `json:"conversions"`
	Revenue     float64        `json:"revenue"`
	ROAS        float64        `json:"roas"`
	Spend       float64        `json:"spend"`
}

func (c *Campaign) Derive() {
	if c == nil {
		return
	}
	c.ROAS = format.ROAS(c.Revenue, c.Spend)
}

// FilterCampaigns mantém a ordem original
func FilterCampaigns(campaigns []*Campaign, filter CampaignFilter) []*Campaign {
	out := make([]*Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if filter.Matches(c.Status) {
			out = append(out, c)
		}
	}
	return out
}

type CampaignListResponse struct {
	PartnerID string         `json:"partner_id"`
	Filter    CampaignFilter `json:"filter"`
	Campaigns []*Campaign    `json:"campaigns"`
	Totals    CampaignTotals `json:"totals"`
}

type CampaignTotals struct {
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
	Revenue     float64 `json:"revenue"`
	Spend       float64 `json:"spend"`
	ROAS        float64 `json:"roas"`
	CVR         float64 `json:"cvr"`
}

func SumCampaigns(campaigns []*Campaign) CampaignTotals {
	var totals CampaignTotals
	for _, c := range campaigns {
		totals.Clicks += c.Clicks
		totals.Conversions += c.Conversions
		totals.Revenue += c.Revenue
		totals.Spend += c.Spend
	}
	totals.ROAS = format.ROAS(totals.Revenue, totals.Spend)
	totals.CVR = format.CVR(totals.Conversions, totals.Clicks)
	return totals
}
