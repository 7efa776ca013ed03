package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/branch-insights-api/internal/cache"
	"github.com/vfg2006/branch-insights-api/internal/config"
)

func janitorConfig(enabled bool, cron string) *config.Config {
	return &config.Config{
		CacheJanitor: config.CacheJanitor{
			CronSchedule: cron,
			Enabled:      enabled,
		},
	}
}

func TestSweepExpiresEntriesPastTTL(t *testing.T) {
	synchronizer := cache.NewSynchronizer()
	ctx := context.Background()

	_, err := synchronizer.Read(ctx, "records:B1?{}", time.Millisecond, func(ctx context.Context) (any, error) {
		return "x", nil
	})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	service := NewCacheJanitorService(synchronizer, janitorConfig(true, "*/1 * * * *"))
	service.Sweep()

	status, _ := synchronizer.EntryStatus("records:B1?{}")
	assert.Equal(t, cache.StatusStale, status)

	report := service.GetStatus()
	assert.Equal(t, 1, report["last_sweep_expired"])
	assert.False(t, report["last_sweep_at"].(time.Time).IsZero())
}

func TestSweepLeavesEntriesWithinTTL(t *testing.T) {
	synchronizer := cache.NewSynchronizer()
	ctx := context.Background()

	_, err := synchronizer.Read(ctx, "records:B1?{}", time.Hour, func(ctx context.Context) (any, error) {
		return "x", nil
	})
	require.NoError(t, err)

	service := NewCacheJanitorService(synchronizer, janitorConfig(true, "*/1 * * * *"))
	service.Sweep()

	status, _ := synchronizer.EntryStatus("records:B1?{}")
	assert.Equal(t, cache.StatusFresh, status)

	report := service.GetStatus()
	assert.Equal(t, 0, report["last_sweep_expired"])
}

func TestStartDisabledIsNoOp(t *testing.T) {
	service := NewCacheJanitorService(cache.NewSynchronizer(), janitorConfig(false, "*/1 * * * *"))

	err := service.Start(context.Background())

	assert.NoError(t, err)

	report := service.GetStatus()
	assert.Equal(t, false, report["enabled"])
}

func TestStartRejectsInvalidCron(t *testing.T) {
	service := NewCacheJanitorService(cache.NewSynchronizer(), janitorConfig(true, "não é cron"))

	err := service.Start(context.Background())

	assert.Error(t, err)
}
