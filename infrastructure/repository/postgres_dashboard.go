package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/partner-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/partner-analytics-api/internal/domain"
	"github.com/vfg2006/partner-analytics-api/pkg/format"
)

const (
	partnersTable           = "partners p"
	websitePerformanceTable = "website_performance wp"
	performanceSeriesTable  = "performance_series ps"
	campaignsTable          = "campaigns c"
	suggestionsTable        = "ai_suggestions s"
	rankedListsTable        = "ranked_lists rl"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type postgresDashboardRepository struct {
	conn postgres.Queryer
}

func NewPostgresDashboardRepository(conn postgres.Queryer) DashboardRepository {
	return &postgresDashboardRepository{
		conn: conn,
	}
}

func partnersQuery(where squirrel.Sqlizer) squirrel.SelectBuilder {
	query := squirrel.
		Select("p.id, p.name, p.shop_plan, p.creator_plan").
		From(partnersTable).
		OrderBy("p.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if where != nil {
		query = query.Where(where)
	}

	return query
}

func (r *postgresDashboardRepository) ListPartners() ([]*domain.Partner, error) {
	partnersSQL, args, err := partnersQuery(nil).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(partnersSQL, args...)
	if err != nil {
		return nil, wrapDBError(err, "falha ao listar parceiros")
	}
	defer rows.Close()

	partners := make([]*domain.Partner, 0)
	for rows.Next() {
		partner, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		partners = append(partners, partner)
	}

	return partners, rows.Err()
}

func (r *postgresDashboardRepository) GetPartner(id string) (*domain.Partner, error) {
	partnerSQL, args, err := partnersQuery(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	partner, err := scanPartner(r.conn.QueryRow(partnerSQL, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError(err, "falha ao buscar parceiro")
	}

	return partner, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPartner(row scanner) (*domain.Partner, error) {
	var (
		partner     domain.Partner
		shopPlan    string
		creatorPlan string
	)

	if err := row.Scan(&partner.ID, &partner.Name, &shopPlan, &creatorPlan); err != nil {
		return nil, err
	}

	var err error
	if partner.Plans.Shop, err = domain.ParsePlanType(shopPlan); err != nil {
		return nil, errors.Wrapf(err, "parceiro %s: shop_plan %q", partner.ID, shopPlan)
	}
	if partner.Plans.Creator, err = domain.ParsePlanType(creatorPlan); err != nil {
		return nil, errors.Wrapf(err, "parceiro %s: creator_plan %q", partner.ID, creatorPlan)
	}

	return &partner, nil
}

func websitePerformanceQuery(partnerID string) squirrel.SelectBuilder {
	return squirrel.
		Select("wp.partner_id, wp.revenue, wp.conversions, wp.trend_current, wp.trend_previous, wp.funnel, wp.ad_metrics, wp.product_exposure, wp.performance_rank").
		From(websitePerformanceTable).
		Where(squirrel.Eq{"wp.partner_id": partnerID}).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *postgresDashboardRepository) GetWebsitePerformance(partnerID string) (*domain.WebsitePerformanceMetrics, error) {
	perfSQL, args, err := websitePerformanceQuery(partnerID).ToSql()
	if err != nil {
		return nil, err
	}

	var (
		metrics                           domain.WebsitePerformanceMetrics
		funnel, adMetrics, products, rank []byte
	)

	err = r.conn.QueryRow(perfSQL, args...).Scan(
		&metrics.PartnerID,
		&metrics.Revenue,
		&metrics.Conversions,
		&metrics.Trend.Current,
		&metrics.Trend.Previous,
		&funnel,
		&adMetrics,
		&products,
		&rank,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError(err, "falha ao buscar desempenho do site")
	}

	if err := unmarshalOptional(funnel, &metrics.Funnel); err != nil {
		return nil, errors.Wrap(err, "funnel inválido")
	}
	if err := unmarshalOptional(adMetrics, &metrics.AdMetrics); err != nil {
		return nil, errors.Wrap(err, "ad_metrics inválido")
	}
	if err := unmarshalOptional(rank, &metrics.PerformanceRank); err != nil {
		return nil, errors.Wrap(err, "performance_rank inválido")
	}
	if err := unmarshalOptional(products, &metrics.ProductExposure); err != nil {
		return nil, errors.Wrap(err, "product_exposure inválido")
	}
	if metrics.ProductExposure == nil {
		metrics.ProductExposure = []*domain.ProductExposure{}
	}

	metrics.Campaigns, err = r.ListCampaigns(partnerID)
	if err != nil {
		return nil, err
	}

	return &metrics, nil
}

// unmarshalOptional ignora colunas jsonb nulas
func unmarshalOptional(raw []byte, target any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, target)
}

func performanceSeriesQuery(partnerID string) squirrel.SelectBuilder {
	return squirrel.
		Select("ps.day, ps.revenue, ps.clicks, ps.conversions").
		From(performanceSeriesTable).
		Where(squirrel.Eq{"ps.partner_id": partnerID}).
		OrderBy("ps.day ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *postgresDashboardRepository) GetPerformanceSeries(partnerID string) ([]domain.DailyPerformance, error) {
	seriesSQL, args, err := performanceSeriesQuery(partnerID).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(seriesSQL, args...)
	if err != nil {
		return nil, wrapDBError(err, "falha ao buscar série de desempenho")
	}
	defer rows.Close()

	series := make([]domain.DailyPerformance, 0)
	for rows.Next() {
		var (
			point domain.DailyPerformance
			day   time.Time
		)
		if err := rows.Scan(&day, &point.Revenue, &point.Clicks, &point.Conversions); err != nil {
			return nil, err
		}
		point.Date = domain.FormatDate(day)
		point.CVR = format.CVR(point.Conversions, point.Clicks)
		series = append(series, point)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(series) == 0 {
		return nil, nil
	}

	return series, nil
}

func campaignsQuery(partnerID string) squirrel.SelectBuilder {
	return squirrel.
		Select("c.id, c.name, c.type, c.status, c.clicks, c.conversions, c.revenue, c.spend").
		From(campaignsTable).
		Where(squirrel.Eq{"c.partner_id": partnerID}).
		OrderBy("c.position ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *postgresDashboardRepository) ListCampaigns(partnerID string) ([]*domain.Campaign, error) {
	campaignsSQL, args, err := campaignsQuery(partnerID).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(campaignsSQL, args...)
	if err != nil {
		return nil, wrapDBError(err, "falha ao listar campanhas")
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		c := &domain.Campaign{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Status, &c.Clicks, &c.Conversions, &c.Revenue, &c.Spend); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}

	return campaigns, rows.Err()
}

func suggestionsQuery(partnerID string) squirrel.SelectBuilder {
	return squirrel.
		Select("s.id, s.title, s.description, s.impact, s.visible_in_free, s.potential_gain").
		From(suggestionsTable).
		Where(squirrel.Eq{"s.partner_id": partnerID}).
		OrderBy("s.position ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *postgresDashboardRepository) ListSuggestions(partnerID string) ([]*domain.AISuggestion, error) {
	suggestionsSQL, args, err := suggestionsQuery(partnerID).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(suggestionsSQL, args...)
	if err != nil {
		return nil, wrapDBError(err, "falha ao listar sugestões")
	}
	defer rows.Close()

	suggestions := make([]*domain.AISuggestion, 0)
	for rows.Next() {
		s := &domain.AISuggestion{}
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Impact, &s.VisibleInFree, &s.PotentialGain); err != nil {
			return nil, err
		}
		suggestions = append(suggestions, s)
	}

	return suggestions, rows.Err()
}

func rankedListQuery(partnerID string, kind domain.RankedListKind) squirrel.SelectBuilder {
	return squirrel.
		Select("rl.kind, rl.title, rl.format, rl.total, rl.items").
		From(rankedListsTable).
		Where(squirrel.Eq{"rl.partner_id": partnerID, "rl.kind": string(kind)}).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *postgresDashboardRepository) GetRankedList(partnerID string, kind domain.RankedListKind) (*domain.RankedList, error) {
	listSQL, args, err := rankedListQuery(partnerID, kind).ToSql()
	if err != nil {
		return nil, err
	}

	var (
		list       domain.RankedList
		listFormat string
		items      []byte
	)

	err = r.conn.QueryRow(listSQL, args...).Scan(&list.Kind, &list.Title, &listFormat, &list.Total, &items)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError(err, "falha ao buscar lista ranqueada")
	}

	list.Format = format.ParseKind(listFormat)
	if err := unmarshalOptional(items, &list.Items); err != nil {
		return nil, errors.Wrap(err, "items inválido")
	}
	if list.Items == nil {
		list.Items = []*domain.RankedListItem{}
	}

	return &list, nil
}

func wrapDBError(err error, msg string) error {
	if pqErr, ok := err.(*pq.Error); ok {
		return errors.Wrap(err, fmt.Sprintf("%s (code: %s)", msg, pqErr.Code))
	}
	return errors.Wrap(err, msg)
}
