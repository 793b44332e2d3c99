package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/partner-analytics-api/internal/config"
)

type fakeRefresher struct {
	calls   atomic.Int32
	count   int
	err     error
	release chan struct{}
}

func (f *fakeRefresher) RefreshSnapshots() (int, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	return f.count, f.err
}

func newTestService(refresher SnapshotRefresher, enabled bool) *SnapshotSyncService {
	cfg := &config.Config{
		SnapshotSync: config.SnapshotSync{
			CronSchedule: "*/15 * * * *",
			Enabled:      enabled,
		},
	}
	return NewSnapshotSyncService(refresher, cfg)
}

func TestSnapshotSyncService_syncSnapshots(t *testing.T) {
	refresher := &fakeRefresher{count: 4}
	service := newTestService(refresher, true)

	service.syncSnapshots()

	status := service.GetStatus()
	assert.Equal(t, int32(1), refresher.calls.Load())
	assert.Equal(t, 4, status["last_sync_partners"])
	assert.Equal(t, "", status["last_sync_error"])
	assert.False(t, status["sync_running"].(bool))
	assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
}

func TestSnapshotSyncService_syncSnapshots_Error(t *testing.T) {
	refresher := &fakeRefresher{err: errors.New("db down")}
	service := newTestService(refresher, true)

	service.syncSnapshots()

	status := service.GetStatus()
	assert.Equal(t, "db down", status["last_sync_error"])
	assert.True(t, status["last_sync_completed_at"].(time.Time).IsZero())
}

func TestSnapshotSyncService_TriggerManualSync_IgnoresWhileRunning(t *testing.T) {
	refresher := &fakeRefresher{count: 2, release: make(chan struct{})}
	service := newTestService(refresher, true)

	require.True(t, service.TriggerManualSync())
	require.Eventually(t, service.IsRunning, time.Second, 5*time.Millisecond)

	assert.False(t, service.TriggerManualSync())

	close(refresher.release)
	require.Eventually(t, func() bool { return !service.IsRunning() }, time.Second, 5*time.Millisecond)

	assert.Equal(t, int32(1), refresher.calls.Load())
	assert.Equal(t, 2, service.GetStatus()["last_sync_partners"])
}

func TestSnapshotSyncService_Start_Disabled(t *testing.T) {
	refresher := &fakeRefresher{}
	service := newTestService(refresher, false)

	require.NoError(t, service.Start(context.Background()))
	assert.Equal(t, int32(0), refresher.calls.Load())
}

func TestSnapshotSyncService_Start_InvalidCron(t *testing.T) {
	service := newTestService(&fakeRefresher{}, true)
	service.config.CronSchedule = "not a cron"

	assert.Error(t, service.Start(context.Background()))
}
