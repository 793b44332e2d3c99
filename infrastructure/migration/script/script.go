package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/partner-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/partner-analytics-api/infrastructure/repository"
	"github.com/vfg2006/partner-analytics-api/internal/config"
	"github.com/vfg2006/partner-analytics-api/internal/domain"
	"github.com/vfg2006/partner-analytics-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var schema = []string{
	`CREATE TABLE IF NOT EXISTS partners (
		id           VARCHAR(64) PRIMARY KEY,
		name         TEXT NOT NULL,
		shop_plan    VARCHAR(8) NOT NULL DEFAULT 'none',
		creator_plan VARCHAR(8) NOT NULL DEFAULT 'none'
	)`,
	`CREATE TABLE IF NOT EXISTS website_performance (
		partner_id       VARCHAR(64) PRIMARY KEY REFERENCES partners(id) ON DELETE CASCADE,
		revenue          NUMERIC(14,2) NOT NULL,
		conversions      INTEGER NOT NULL,
		trend_current    NUMERIC(14,2) NOT NULL,
		trend_previous   NUMERIC(14,2) NOT NULL,
		funnel           JSONB,
		ad_metrics       JSONB,
		product_exposure JSONB,
		performance_rank JSONB
	)`,
	`CREATE TABLE IF NOT EXISTS performance_series (
		partner_id  VARCHAR(64) NOT NULL REFERENCES partners(id) ON DELETE CASCADE,
		day         DATE NOT NULL,
		revenue     NUMERIC(14,2) NOT NULL,
		clicks      INTEGER NOT NULL,
		conversions INTEGER NOT NULL,
		PRIMARY KEY (partner_id, day)
	)`,
	`CREATE TABLE IF NOT EXISTS campaigns (
		id          VARCHAR(64) PRIMARY KEY,
		partner_id  VARCHAR(64) NOT NULL REFERENCES partners(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		name        TEXT NOT NULL,
		type        VARCHAR(32) NOT NULL,
		status      VARCHAR(16) NOT NULL,
		clicks      INTEGER NOT NULL,
		conversions INTEGER NOT NULL,
		revenue     NUMERIC(14,2) NOT NULL,
		spend       NUMERIC(14,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ai_suggestions (
		id              VARCHAR(64) PRIMARY KEY,
		partner_id      VARCHAR(64) NOT NULL REFERENCES partners(id) ON DELETE CASCADE,
		position        INTEGER NOT NULL,
		title           TEXT NOT NULL,
		description     TEXT NOT NULL,
		impact          VARCHAR(8) NOT NULL,
		visible_in_free BOOLEAN NOT NULL DEFAULT FALSE,
		potential_gain  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ranked_lists (
		partner_id VARCHAR(64) NOT NULL REFERENCES partners(id) ON DELETE CASCADE,
		kind       VARCHAR(32) NOT NULL,
		title      TEXT NOT NULL,
		format     VARCHAR(16) NOT NULL,
		total      NUMERIC(14,2) NOT NULL,
		items      JSONB NOT NULL DEFAULT '[]',
		PRIMARY KEY (partner_id, kind)
	)`,
}

// Ordem inversa das dependências
var seededTables = []string{"ranked_lists", "ai_suggestions", "campaigns", "performance_series", "website_performance", "partners"}

func createSchema(ctx context.Context, tx *sql.Tx) error {
	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "falha ao criar schema")
		}
	}
	logrus.WithField("tables", len(schema)).Info("Schema criado")
	return nil
}

func truncate(ctx context.Context, tx *sql.Tx) error {
	for _, table := range seededTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return errors.Wrapf(err, "falha ao limpar %s", table)
		}
	}
	return nil
}

func exec(ctx context.Context, tx *sql.Tx, query squirrel.InsertBuilder) error {
	stmt, args, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, stmt, args...)
	return err
}

// jsonb devolve nil para valores ausentes, gravando NULL
func jsonb(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(raw) == "null" {
		return nil, nil
	}
	return string(raw), nil
}

func insertPartners(ctx context.Context, tx *sql.Tx, partners []*domain.Partner) error {
	if len(partners) == 0 {
		return nil
	}

	query := squirrel.Insert("partners").Columns("id", "name", "shop_plan", "creator_plan")
	for _, p := range partners {
		query = query.Values(p.ID, p.Name, p.Plans.Shop.String(), p.Plans.Creator.String())
	}

	if err := exec(ctx, tx, query); err != nil {
		return errors.Wrap(err, "falha ao inserir parceiros")
	}
	logrus.WithField("count", len(partners)).Info("Parceiros inseridos")
	return nil
}

func insertPerformance(ctx context.Context, tx *sql.Tx, m *domain.WebsitePerformanceMetrics) error {
	values := []any{m.PartnerID, m.Revenue, m.Conversions, m.Trend.Current, m.Trend.Previous}
	for _, field := range []any{m.Funnel, m.AdMetrics, m.ProductExposure, m.PerformanceRank} {
		raw, err := jsonb(field)
		if err != nil {
			return errors.Wrapf(err, "parceiro %s", m.PartnerID)
		}
		values = append(values, raw)
	}

	query := squirrel.Insert("website_performance").
		Columns("partner_id", "revenue", "conversions", "trend_current", "trend_previous", "funnel", "ad_metrics", "product_exposure", "performance_rank").
		Values(values...)

	return errors.Wrapf(exec(ctx, tx, query), "falha ao inserir desempenho do parceiro %s", m.PartnerID)
}

func insertSeries(ctx context.Context, tx *sql.Tx, partnerID string, series []domain.DailyPerformance) error {
	if len(series) == 0 {
		return nil
	}

	query := squirrel.Insert("performance_series").Columns("partner_id", "day", "revenue", "clicks", "conversions")
	for _, point := range series {
		day, err := time.Parse(time.DateOnly, point.Date)
		if err != nil {
			return errors.Wrapf(err, "data inválida na série do parceiro %s", partnerID)
		}
		query = query.Values(partnerID, day, point.Revenue, point.Clicks, point.Conversions)
	}

	return errors.Wrapf(exec(ctx, tx, query), "falha ao inserir série do parceiro %s", partnerID)
}

func insertCampaigns(ctx context.Context, tx *sql.Tx, partnerID string, campaigns []*domain.Campaign) error {
	if len(campaigns) == 0 {
		return nil
	}

	query := squirrel.Insert("campaigns").
		Columns("id", "partner_id", "position", "name", "type", "status", "clicks", "conversions", "revenue", "spend")
	for i, c := range campaigns {
		query = query.Values(c.ID, partnerID, i, c.Name, c.Type, string(c.Status), c.Clicks, c.Conversions, c.Revenue, c.Spend)
	}

	return errors.Wrapf(exec(ctx, tx, query), "falha ao inserir campanhas do parceiro %s", partnerID)
}

func insertSuggestions(ctx context.Context, tx *sql.Tx, partnerID string, suggestions []*domain.AISuggestion) error {
	if len(suggestions) == 0 {
		return nil
	}

	query := squirrel.Insert("ai_suggestions").
		Columns("id", "partner_id", "position", "title", "description", "impact", "visible_in_free", "potential_gain")
	for i, s := range suggestions {
		query = query.Values(s.ID, partnerID, i, s.Title, s.Description, string(s.Impact), s.VisibleInFree, s.PotentialGain)
	}

	return errors.Wrapf(exec(ctx, tx, query), "falha ao inserir sugestões do parceiro %s", partnerID)
}

func insertRankedLists(ctx context.Context, tx *sql.Tx, partnerID string, lists map[domain.RankedListKind]*domain.RankedList) error {
	if len(lists) == 0 {
		return nil
	}

	query := squirrel.Insert("ranked_lists").Columns("partner_id", "kind", "title", "format", "total", "items")
	for kind, list := range lists {
		items, err := json.Marshal(list.Items)
		if err != nil {
			return errors.Wrapf(err, "lista %s do parceiro %s", kind, partnerID)
		}
		query = query.Values(partnerID, string(kind), list.Title, string(list.Format), list.Total, string(items))
	}

	return errors.Wrapf(exec(ctx, tx, query), "falha ao inserir listas do parceiro %s", partnerID)
}

func seed(ctx context.Context, tx *sql.Tx, data *repository.Dataset) error {
	if err := insertPartners(ctx, tx, data.Partners); err != nil {
		return err
	}

	for _, p := range data.Partners {
		logger := logrus.WithField("partner_id", p.ID)

		if m, ok := data.Performance[p.ID]; ok {
			if err := insertPerformance(ctx, tx, m); err != nil {
				return err
			}
		}
		if err := insertSeries(ctx, tx, p.ID, data.Series[p.ID]); err != nil {
			return err
		}
		if err := insertCampaigns(ctx, tx, p.ID, data.Campaigns[p.ID]); err != nil {
			return err
		}
		if err := insertSuggestions(ctx, tx, p.ID, data.Suggestions[p.ID]); err != nil {
			return err
		}
		if err := insertRankedLists(ctx, tx, p.ID, data.RankedLists[p.ID]); err != nil {
			return err
		}

		logger.Debug("Dados do parceiro inseridos")
	}

	return nil
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Setup(cfg.App.LogLevel)
	logrus.Info("Iniciando script de migração...")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao banco de dados")
	}
	defer conn.Close()
	logrus.Info("Conexão com o banco de dados estabelecida com sucesso")

	data := repository.DefaultDataset()
	startTime := time.Now()

	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := createSchema(ctx, tx); err != nil {
			return err
		}
		if err := truncate(ctx, tx); err != nil {
			return err
		}
		return seed(ctx, tx, data)
	})
	if err != nil {
		logrus.WithError(err).Fatal("Migração revertida")
	}

	logrus.WithFields(logrus.Fields{
		"partners": len(data.Partners),
		"elapsed":  time.Since(startTime).String(),
	}).Info("Carga inicial concluída")
}
