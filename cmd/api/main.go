package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/partner-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/partner-analytics-api/infrastructure/repository"
	"github.com/vfg2006/partner-analytics-api/internal/api"
	"github.com/vfg2006/partner-analytics-api/internal/api/handler"
	"github.com/vfg2006/partner-analytics-api/internal/config"
	"github.com/vfg2006/partner-analytics-api/internal/scheduler"
	"github.com/vfg2006/partner-analytics-api/internal/usecases/dashboard"
	"github.com/vfg2006/partner-analytics-api/internal/usecases/ranking"
	"github.com/vfg2006/partner-analytics-api/internal/usecases/viewing"
	"github.com/vfg2006/partner-analytics-api/pkg/log"
)

func main() {
	// Permite encontrar o .env relativo ao binário em desenvolvimento
	_, file, _, _ := runtime.Caller(0)
	_ = os.Chdir(path.Dir(file))

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		dashboardRepo repository.DashboardRepository
		pinger        handler.Pinger
	)

	switch cfg.App.DataSource {
	case config.DataSourcePostgres:
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		dashboardRepo = repository.NewPostgresDashboardRepository(pgConn)
		pinger = pgConn
	default:
		dashboardRepo = repository.NewStaticDashboardRepository(nil)
		logrus.Info("Usando dados estáticos em memória")
	}

	dashboardService := dashboard.NewService(dashboardRepo)
	rankingService := ranking.NewRankedListService(dashboardRepo)
	viewService := viewing.NewService()

	snapshotSyncService := scheduler.NewSnapshotSyncService(dashboardService, cfg)
	if err := snapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização de snapshots")
	} else {
		logrus.Info("Agendador de atualização de snapshots iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Dashboard: dashboardService,
		Ranking:   rankingService,
		Views:     viewService,
		CronJobs: handler.CronJobServices{
			handler.CronJobTypeSnapshotSync: snapshotSyncService,
		},
		Pinger: pinger,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
