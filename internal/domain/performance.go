package domain

import (
	"github.com/vfg2006/partner-analytics-api/pkg/format"
)

type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

// Funnel guarda cliques e conversões. CVR é sempre derivado.
type Funnel struct {
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
	CVR         float64 `json:"cvr"`
}

type Trend struct {
	Current       float64        `json:"current"`
	Previous      float64        `json:"previous"`
	ChangePercent float64        `json:"change_percent"`
	Direction     TrendDirection `json:"direction"`
}

type AdMetrics struct {
	Spend       float64 `json:"spend"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Revenue     float64 `json:"revenue"`
	CTR         float64 `json:"ctr"`
	CPC         float64 `json:"cpc"`
}

type ProductExposure struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Impressions int    `json:"impressions"`
	Clicks      int    `json:"clicks"`
	Conversions int    `json:"conversions"`
}

type PerformanceRank struct {
	Position int    `json:"position"`
	Total    int    `json:"total"`
	Tier     string `json:"tier"`
}

// WebsitePerformanceMetrics agrega o desempenho do site do parceiro
type WebsitePerformanceMetrics struct {
	PartnerID       string             `json:"partner_id"`
	Revenue         float64            `json:"revenue"`
	Conversions     int                `json:"conversions"`
	ROAS            float64            `json:"roas"`
	Funnel          *Funnel            `json:"funnel,omitempty"`
	AOV             float64            `json:"aov"`
	Trend           Trend              `json:"trend"`
	AdMetrics       *AdMetrics         `json:"ad_metrics,omitempty"`
	ProductExposure []*ProductExposure `json:"product_exposure"`
	Campaigns       []*Campaign        `json:"campaigns"`
	PerformanceRank *PerformanceRank   `json:"performance_rank,omitempty"`
}

// Derive recalcula todas as métricas derivadas a partir dos campos brutos.
// Valores armazenados para CVR, ROAS, AOV, CTR e CPC são descartados.
func (m *WebsitePerformanceMetrics) Derive() {
	if m == nil {
		return
	}

	if m.Funnel != nil {
		m.Funnel.CVR = format.CVR(m.Funnel.Conversions, m.Funnel.Clicks)
	}

	m.ROAS = 0
	if m.AdMetrics != nil {
		m.AdMetrics.CTR = format.Round2(format.Rate(float64(m.AdMetrics.Clicks), float64(m.AdMetrics.Impressions)))
		m.AdMetrics.CPC = format.Round2(format.SafeDivide(m.AdMetrics.Spend, float64(m.AdMetrics.Clicks)))
		m.ROAS = format.ROAS(m.AdMetrics.Revenue, m.AdMetrics.Spend)
	}

	m.AOV = format.AOV(m.Revenue, m.Conversions)
	m.Trend = NewTrend(m.Trend.Current, m.Trend.Previous)

	for _, c := range m.Campaigns {
		c.Derive()
	}
}

// Clone copia a estrutura para que o cache não seja alterado por quem lê
func (m *WebsitePerformanceMetrics) Clone() *WebsitePerformanceMetrics {
	if m == nil {
		return nil
	}

	out := *m
	if m.Funnel != nil {
		funnel := *m.Funnel
		out.Funnel = &funnel
	}
	if m.AdMetrics != nil {
		ad := *m.AdMetrics
		out.AdMetrics = &ad
	}
	if m.PerformanceRank != nil {
		rank := *m.PerformanceRank
		out.PerformanceRank = &rank
	}

	out.ProductExposure = make([]*ProductExposure, 0, len(m.ProductExposure))
	for _, p := range m.ProductExposure {
		product := *p
		out.ProductExposure = append(out.ProductExposure, &product)
	}

	out.Campaigns = make([]*Campaign, 0, len(m.Campaigns))
	for _, c := range m.Campaigns {
		campaign := *c
		out.Campaigns = append(out.Campaigns, &campaign)
	}

	return &out
}

func NewTrend(current, previous float64) Trend {
	change := format.ChangePercent(current, previous)

	direction := TrendFlat
	switch {
	case change > 0:
		direction = TrendUp
	case change < 0:
		direction = TrendDown
	}

	return Trend{
		Current:       current,
		Previous:      previous,
		ChangePercent: change,
		Direction:     direction,
	}
}

// MetricCard é um card de KPI já formatado para exibição
type MetricCard struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
	Format  string  `json:"format"`
}

// PerformanceView é a resposta do dashboard de desempenho, já filtrada pelo plano
type PerformanceView struct {
	Metrics *WebsitePerformanceMetrics `json:"metrics"`
	Cards   []MetricCard               `json:"cards"`
	Locked  []Feature                  `json:"locked"`
}

// DailyPerformance é um ponto da série usada nos gráficos
type DailyPerformance struct {
	Date        string  `json:"date"`
	Revenue     float64 `json:"revenue"`
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
	CVR         float64 `json:"cvr"`
}

type PerformanceSeriesResponse struct {
	PartnerID string             `json:"partner_id"`
	TimeRange TimeRangePreset    `json:"time_range"`
	Label     string             `json:"label"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Points    []DailyPerformance `json:"points"`
}
