package repository

import (
	"fmt"
	"math"
	"time"

	"github.com/vfg2006/partner-analytics-api/internal/domain"
	"github.com/vfg2006/partner-analytics-api/pkg/format"
)

// SeriesAnchor é o último dia das séries diárias do dataset estático
var SeriesAnchor = time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

const seriesDays = 90

// Dataset agrupa todos os dados do dashboard por parceiro
type Dataset struct {
	Partners    []*domain.Partner
	Performance map[string]*domain.WebsitePerformanceMetrics
	Series      map[string][]domain.DailyPerformance
	Campaigns   map[string][]*domain.Campaign
	Suggestions map[string][]*domain.AISuggestion
	RankedLists map[string]map[domain.RankedListKind]*domain.RankedList
}

type partnerSeed struct {
	partner domain.Partner
	scale   float64
	rank    *domain.PerformanceRank
}

var partnerSeeds = []partnerSeed{
	{
		partner: domain.Partner{ID: "p-aurora", Name: "Aurora Outfitters", Plans: domain.PartnerPlans{Shop: domain.PlanPaid, Creator: domain.PlanPaid}},
		scale:   1,
		rank:    &domain.PerformanceRank{Position: 3, Total: 120, Tier: "top-5%"},
	},
	{
		partner: domain.Partner{ID: "p-brisa", Name: "Brisa Beauty", Plans: domain.PartnerPlans{Shop: domain.PlanFree, Creator: domain.PlanFree}},
		scale:   0.42,
		rank:    &domain.PerformanceRank{Position: 37, Total: 120, Tier: "top-50%"},
	},
	{
		partner: domain.Partner{ID: "p-cobalt", Name: "Cobalt Tech Store", Plans: domain.PartnerPlans{Shop: domain.PlanPaid, Creator: domain.PlanNone}},
		scale:   0.75,
	},
	{
		partner: domain.Partner{ID: "p-dune", Name: "Dune Home", Plans: domain.PartnerPlans{Shop: domain.PlanNone, Creator: domain.PlanFree}},
		scale:   0.18,
		rank:    &domain.PerformanceRank{Position: 88, Total: 120, Tier: "bottom-50%"},
	},
}

// DefaultDataset monta o dataset estático. Cada chamada retorna uma cópia nova.
func DefaultDataset() *Dataset {
	ds := &Dataset{
		Partners:    make([]*domain.Partner, 0, len(partnerSeeds)),
		Performance: make(map[string]*domain.WebsitePerformanceMetrics),
		Series:      make(map[string][]domain.DailyPerformance),
		Campaigns:   make(map[string][]*domain.Campaign),
		Suggestions: make(map[string][]*domain.AISuggestion),
		RankedLists: make(map[string]map[domain.RankedListKind]*domain.RankedList),
	}

	for _, seed := range partnerSeeds {
		partner := seed.partner
		id := partner.ID

		ds.Partners = append(ds.Partners, &partner)
		ds.Campaigns[id] = buildCampaigns(id, seed.scale)
		ds.Performance[id] = buildPerformance(id, seed.scale, seed.rank)
		ds.Series[id] = buildSeries(seed.scale)
		ds.Suggestions[id] = buildSuggestions(id)
		ds.RankedLists[id] = buildRankedLists(id, seed.scale)
	}

	return ds
}

func scaleInt(v int, s float64) int {
	return int(math.Round(float64(v) * s))
}

func scaleFloat(v, s float64) float64 {
	return math.Round(v*s*100) / 100
}

// buildPerformance preenche campos derivados com valores arredondados, como
// vinham do painel antigo. Derive() recalcula tudo na leitura.
func buildPerformance(id string, s float64, rank *domain.PerformanceRank) *domain.WebsitePerformanceMetrics {
	clicks := scaleInt(64200, s)
	conversions := scaleInt(8920, s)

	return &domain.WebsitePerformanceMetrics{
		PartnerID:   id,
		Revenue:     scaleFloat(1234567, s),
		Conversions: conversions,
		ROAS:        3.4,
		Funnel: &domain.Funnel{
			Clicks:      clicks,
			Conversions: conversions,
			CVR:         13.9,
		},
		AOV: 138,
		Trend: domain.Trend{
			Current:  scaleFloat(1234567, s),
			Previous: scaleFloat(1085000, s),
		},
		AdMetrics: &domain.AdMetrics{
			Spend:       scaleFloat(285000, s),
			Impressions: scaleInt(2450000, s),
			Clicks:      clicks,
			Revenue:     scaleFloat(980000, s),
		},
		ProductExposure: []*domain.ProductExposure{
			{ProductID: id + "-prd-1", Name: "Linen Overshirt", Impressions: scaleInt(412000, s), Clicks: scaleInt(15800, s), Conversions: scaleInt(2480, s)},
			{ProductID: id + "-prd-2", Name: "Trail Runner 2", Impressions: scaleInt(356000, s), Clicks: scaleInt(12100, s), Conversions: scaleInt(1730, s)},
			{ProductID: id + "-prd-3", Name: "Merino Beanie", Impressions: scaleInt(198000, s), Clicks: scaleInt(6400, s), Conversions: scaleInt(1120, s)},
			{ProductID: id + "-prd-4", Name: "Canvas Tote", Impressions: scaleInt(121000, s), Clicks: scaleInt(3900, s), Conversions: scaleInt(540, s)},
		},
		PerformanceRank: rank,
	}
}

func buildCampaigns(id string, s float64) []*domain.Campaign {
	return []*domain.Campaign{
		{ID: id + "-cmp-1", Name: "Spring Collection Launch", Type: "social", Status: domain.CampaignStatusActive, Clicks: scaleInt(18400, s), Conversions: scaleInt(2650, s), Revenue: scaleFloat(392000, s), Spend: scaleFloat(84000, s)},
		{ID: id + "-cmp-2", Name: "Creator Try-On Series", Type: "creator", Status: domain.CampaignStatusActive, Clicks: scaleInt(14900, s), Conversions: scaleInt(2210, s), Revenue: scaleFloat(301500, s), Spend: scaleFloat(61000, s)},
		{ID: id + "-cmp-3", Name: "Retargeting Always-On", Type: "display", Status: domain.CampaignStatusPaused, Clicks: scaleInt(9700, s), Conversions: scaleInt(1190, s), Revenue: scaleFloat(148000, s), Spend: scaleFloat(52000, s)},
		{ID: id + "-cmp-4", Name: "Winter Clearance", Type: "search", Status: domain.CampaignStatusCompleted, Clicks: scaleInt(13100, s), Conversions: scaleInt(1870, s), Revenue: scaleFloat(221000, s), Spend: scaleFloat(58000, s)},
		{ID: id + "-cmp-5", Name: "Holiday Gift Guide", Type: "social", Status: domain.CampaignStatusCompleted, Clicks: scaleInt(8100, s), Conversions: scaleInt(1000, s), Revenue: scaleFloat(172067, s), Spend: scaleFloat(30000, s)},
	}
}

var weekdayFactors = []float64{0.9, 1.0, 1.05, 1.1, 1.2, 1.3, 0.95}

func buildSeries(s float64) []domain.DailyPerformance {
	series := make([]domain.DailyPerformance, 0, seriesDays)
	start := SeriesAnchor.AddDate(0, 0, -(seriesDays - 1))

	for i := 0; i < seriesDays; i++ {
		day := start.AddDate(0, 0, i)
		factor := weekdayFactors[int(day.Weekday())]

		clicks := int(math.Round(700 * s * factor))
		conversions := clicks * 14 / 100

		series = append(series, domain.DailyPerformance{
			Date:        domain.FormatDate(day),
			Revenue:     math.Round(float64(conversions)*138.4*100) / 100,
			Clicks:      clicks,
			Conversions: conversions,
			CVR:         format.CVR(conversions, clicks),
		})
	}

	return series
}

func buildSuggestions(id string) []*domain.AISuggestion {
	return []*domain.AISuggestion{
		{ID: id + "-sug-1", Title: "Shift budget to Creator Try-On Series", Description: "This campaign returns more revenue per dollar than the account average. Moving 15% of retargeting spend here should lift ROAS.", Impact: domain.ImpactHigh, VisibleInFree: true, PotentialGain: "+$18,400/mo"},
		{ID: id + "-sug-2", Title: "Bundle Merino Beanie with Linen Overshirt", Description: "Buyers of the overshirt frequently view the beanie within the same session. A bundle offer can raise AOV.", Impact: domain.ImpactHigh, VisibleInFree: false, PotentialGain: "+$9.20 AOV"},
		{ID: id + "-sug-3", Title: "Refresh product photos for Canvas Tote", Description: "Click-through on the tote is well below similar products with the same exposure.", Impact: domain.ImpactMedium, VisibleInFree: true, PotentialGain: "+0.8pp CTR"},
		{ID: id + "-sug-4", Title: "Invite top creators to the spring launch", Description: "Three creators with the highest conversion share have not posted about the new collection yet.", Impact: domain.ImpactMedium, VisibleInFree: false, PotentialGain: "+1,200 conversions"},
		{ID: id + "-sug-5", Title: "Pause low-intent search keywords", Description: "Six keywords account for 11% of search spend with no conversions in the last 30 days.", Impact: domain.ImpactLow, VisibleInFree: false, PotentialGain: "-$3,100/mo spend"},
	}
}

func floatPtr(f float64) *float64 { return &f }

func stringPtr(s string) *string { return &s }

func trendPtr(t domain.TrendDirection) *domain.TrendDirection { return &t }

func buildRankedLists(id string, s float64) map[domain.RankedListKind]*domain.RankedList {
	products := []*domain.RankedListItem{
		{ID: id + "-prd-1", Label: "Linen Overshirt", Value: scaleFloat(342000, s), Change: floatPtr(12.4), Trend: trendPtr(domain.TrendUp), SubLabel: stringPtr("2,480 orders")},
		{ID: id + "-prd-2", Label: "Trail Runner 2", Value: scaleFloat(251000, s), Change: floatPtr(-3.1), Trend: trendPtr(domain.TrendDown), SubLabel: stringPtr("1,730 orders")},
		{ID: id + "-prd-3", Label: "Merino Beanie", Value: scaleFloat(98400, s), Change: floatPtr(0), Trend: trendPtr(domain.TrendFlat)},
		{ID: id + "-prd-4", Label: "Canvas Tote", Value: scaleFloat(41200, s)},
	}

	creators := []*domain.RankedListItem{
		{ID: id + "-crt-1", Label: "@maya.moves", Value: scaleFloat(128000, s), Change: floatPtr(22.5), Trend: trendPtr(domain.TrendUp), SubLabel: stringPtr("Lifestyle")},
		{ID: id + "-crt-2", Label: "@trailtom", Value: scaleFloat(86500, s), Change: floatPtr(4.2), Trend: trendPtr(domain.TrendUp), SubLabel: stringPtr("Outdoor")},
		{ID: id + "-crt-3", Label: "@studio.ines", Value: scaleFloat(51200, s), Change: floatPtr(-8.0), Trend: trendPtr(domain.TrendDown), SubLabel: stringPtr("Fashion")},
	}

	sources := []*domain.RankedListItem{
		{ID: id + "-src-1", Label: "Instagram", Value: float64(scaleInt(24800, s))},
		{ID: id + "-src-2", Label: "Organic search", Value: float64(scaleInt(17300, s))},
		{ID: id + "-src-3", Label: "TikTok", Value: float64(scaleInt(12900, s))},
		{ID: id + "-src-4", Label: "Direct", Value: float64(scaleInt(6100, s))},
		{ID: id + "-src-5", Label: "Email", Value: float64(scaleInt(3100, s))},
	}

	return map[domain.RankedListKind]*domain.RankedList{
		domain.RankedListTopProducts: {
			Kind:   domain.RankedListTopProducts,
			Title:  "Top products by revenue",
			Format: format.KindCurrency,
			Total:  scaleFloat(1234567, s),
			Items:  products,
		},
		domain.RankedListTopCreators: {
			Kind:   domain.RankedListTopCreators,
			Title:  "Top creators by attributed revenue",
			Format: format.KindCurrency,
			Total:  sumValues(creators),
			Items:  creators,
		},
		domain.RankedListTrafficSources: {
			Kind:   domain.RankedListTrafficSources,
			Title:  "Traffic sources by clicks",
			Format: format.KindNumber,
			Total:  float64(scaleInt(64200, s)),
			Items:  sources,
		},
	}
}

func sumValues(items []*domain.RankedListItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Value
	}
	return total
}

// String facilita logs do dataset
func (d *Dataset) String() string {
	return fmt.Sprintf("dataset{partners=%d}", len(d.Partners))
}
