// Package scheduler contém os serviços de agendamento da aplicação
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/branch-insights-api/internal/cache"
	"github.com/vfg2006/branch-insights-api/internal/config"
)

type CacheJanitorConfig struct {
	CronSchedule string
	Enabled      bool
}

// CacheJanitorService marca como obsoletas as entradas frescas do cache cujo
// TTL venceu, para a próxima leitura disparar a revalidação
type CacheJanitorService struct {
	scheduler        *gocron.Scheduler
	synchronizer     *cache.Synchronizer
	config           CacheJanitorConfig
	sweepRunning     bool
	sweepMutex       sync.Mutex
	lastSweepAt      time.Time
	lastSweepExpired int
}

func NewCacheJanitorService(synchronizer *cache.Synchronizer, cfg *config.Config) *CacheJanitorService {
	janitorConfig := CacheJanitorConfig{
		CronSchedule: cfg.CacheJanitor.CronSchedule,
		Enabled:      cfg.CacheJanitor.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": janitorConfig.CronSchedule,
	}).Info("Configuração do agendador de limpeza do cache carregada")

	return &CacheJanitorService{
		scheduler:    scheduler,
		synchronizer: synchronizer,
		config:       janitorConfig,
	}
}

func (s *CacheJanitorService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de limpeza do cache desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de limpeza do cache")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.Sweep()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza do cache: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de limpeza do cache")
		s.scheduler.Stop()
	}()

	return nil
}

// Sweep executa uma varredura única sobre as entradas do cache
func (s *CacheJanitorService) Sweep() {
	s.sweepMutex.Lock()
	defer s.sweepMutex.Unlock()

	if s.sweepRunning {
		logrus.Warn("Varredura do cache já está em execução")
		return
	}

	s.sweepRunning = true
	defer func() {
		s.sweepRunning = false
		s.lastSweepAt = time.Now()
	}()

	expired := s.synchronizer.ExpireFresh()
	s.lastSweepExpired = expired

	if expired > 0 {
		logrus.WithFields(logrus.Fields{
			"expired_entries": expired,
			"total_entries":   s.synchronizer.Len(),
		}).Info("Varredura do cache concluída")
	}
}

// GetStatus retorna o status atual do agendador
func (s *CacheJanitorService) GetStatus() map[string]any {
	s.sweepMutex.Lock()
	defer s.sweepMutex.Unlock()

	return map[string]any{
		"enabled":            s.config.Enabled,
		"cron":               s.config.CronSchedule,
		"last_sweep_at":      s.lastSweepAt,
		"last_sweep_expired": s.lastSweepExpired,
	}
}
