package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/partner-analytics-api/internal/config"
)

const JobSnapshotSync = "snapshot-sync"

// SnapshotRefresher recalcula o cache de métricas do dashboard
type SnapshotRefresher interface {
	RefreshSnapshots() (int, error)
}

type SnapshotSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
	RunOnStart   bool
}

// SnapshotSyncService agenda a atualização do cache de métricas dos parceiros
type SnapshotSyncService struct {
	scheduler *gocron.Scheduler
	config    SnapshotSyncConfig
	refresher SnapshotRefresher

	syncMutex           sync.Mutex
	syncRunning         bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncPartners    int
	lastSyncError       string
}

func NewSnapshotSyncService(refresher SnapshotRefresher, appConfig *config.Config) *SnapshotSyncService {
	syncConfig := SnapshotSyncConfig{
		CronSchedule: appConfig.SnapshotSync.CronSchedule,
		SyncEnabled:  appConfig.SnapshotSync.Enabled,
		RunOnStart:   appConfig.SnapshotSync.RunOnStart,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
		"run_on_start":  syncConfig.RunOnStart,
	}).Info("Configuração do agendador de snapshots carregada")

	return &SnapshotSyncService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    syncConfig,
		refresher: refresher,
	}
}

// Start agenda a sincronização e para o agendador quando o contexto é cancelado
func (s *SnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de snapshots desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshots")

	_, err := s.scheduler.Cron(s.config.CronSchedule).SingletonMode().Do(s.syncSnapshots)
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de snapshots: %w", err)
	}

	s.scheduler.StartAsync()

	if s.config.RunOnStart {
		go s.syncSnapshots()
	}

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshots")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *SnapshotSyncService) syncSnapshots() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	startTime := time.Now()
	partners, err := s.refresher.RefreshSnapshots()

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	s.syncRunning = false

	if err != nil {
		s.lastSyncError = err.Error()
		logrus.WithError(err).WithField("job", JobSnapshotSync).Error("Erro ao atualizar snapshots")
		return
	}

	s.lastSyncError = ""
	s.lastSyncPartners = partners
	s.lastSyncCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"job":      JobSnapshotSync,
		"partners": partners,
		"duration": time.Since(startTime).String(),
	}).Info("Sincronização de snapshots concluída")
}

// TriggerManualSync dispara uma sincronização em background. Retorna false quando
// já existe uma em andamento.
func (s *SnapshotSyncService) TriggerManualSync() bool {
	if s.IsRunning() {
		logrus.Info("Sincronização de snapshots já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando sincronização manual de snapshots")
	go s.syncSnapshots()
	return true
}

func (s *SnapshotSyncService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do agendador
func (s *SnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_partners":     s.lastSyncPartners,
		"last_sync_error":        s.lastSyncError,
	}
}
