package domain

import (
	"errors"

	"github.com/vfg2006/partner-analytics-api/pkg/format"
)

// RankedListKind identifica as listas ranqueadas do dashboard
type RankedListKind string

const (
	RankedListTopProducts    RankedListKind = "top-products"
	RankedListTopCreators    RankedListKind = "top-creators"
	RankedListTrafficSources RankedListKind = "traffic-sources"
)

var ErrInvalidRankedList = errors.New("invalid ranked list")

func ParseRankedListKind(s string) (RankedListKind, error) {
	switch RankedListKind(s) {
	case RankedListTopProducts, RankedListTopCreators, RankedListTrafficSources:
		return RankedListKind(s), nil
	default:
		return "", ErrInvalidRankedList
	}
}

// RequiredFeature retorna a funcionalidade exigida pela lista, vazio quando é aberta
func (k RankedListKind) RequiredFeature() (Feature, bool) {
	switch k {
	case RankedListTopProducts:
		return FeatureShopPerformance, true
	case RankedListTopCreators:
		return FeatureCreatorPerformance, true
	default:
		return "", false
	}
}

type RankedListItem struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Value    float64         `json:"value"`
	Change   *float64        `json:"change,omitempty"`
	Trend    *TrendDirection `json:"trend,omitempty"`
	SubLabel *string         `json:"sub_label,omitempty"`
}

type RankedList struct {
	Kind   RankedListKind    `json:"kind"`
	Title  string            `json:"title"`
	Format format.Kind       `json:"format"`
	Total  float64           `json:"total"`
	Items  []*RankedListItem `json:"items"`
}

// RankedEntry é o item acompanhado da sua participação no total
type RankedEntry struct {
	*RankedListItem
	Percentage float64 `json:"percentage"`
	Display    string  `json:"display"`
}

// Entries calcula a participação de cada item na ordem recebida.
// Total zero resulta em 0% e o valor não é limitado a 100%.
func (l *RankedList) Entries() []RankedEntry {
	if l == nil {
		return []RankedEntry{}
	}

	entries := make([]RankedEntry, 0, len(l.Items))
	for _, item := range l.Items {
		entries = append(entries, RankedEntry{
			RankedListItem: item,
			Percentage:     format.Share(item.Value, l.Total),
			Display:        format.Format(item.Value, l.Format),
		})
	}
	return entries
}

// Item procura um item pelo ID
func (l *RankedList) Item(id string) *RankedListItem {
	if l == nil {
		return nil
	}
	for _, item := range l.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

type RankedListResponse struct {
	PartnerID string         `json:"partner_id"`
	Kind      RankedListKind `json:"kind"`
	Title     string         `json:"title"`
	Total     float64        `json:"total"`
	Entries   []RankedEntry  `json:"entries"`
}
