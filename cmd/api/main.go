package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/branch-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/branch-insights-api/infrastructure/integrator/backoffice"
	"github.com/vfg2006/branch-insights-api/infrastructure/integrator/backoffice/backofficeclient"
	"github.com/vfg2006/branch-insights-api/infrastructure/repository"
	"github.com/vfg2006/branch-insights-api/internal/api"
	"github.com/vfg2006/branch-insights-api/internal/cache"
	"github.com/vfg2006/branch-insights-api/internal/config"
	"github.com/vfg2006/branch-insights-api/internal/domain"
	"github.com/vfg2006/branch-insights-api/internal/realtime"
	"github.com/vfg2006/branch-insights-api/internal/scheduler"
	"github.com/vfg2006/branch-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/branch-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/branch-insights-api/internal/usecases/returning"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	rollupRepo := repository.NewRollupRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	backofficeClient := backofficeclient.NewClient(cfg)
	backofficeIntegrator := backoffice.New(cfg, backofficeClient)

	synchronizer := cache.NewSynchronizer()

	insightService := insighting.NewService(cfg, backofficeIntegrator, rollupRepo, synchronizer)
	returnService := returning.NewService(backofficeIntegrator, insightService, synchronizer, nil)

	// O canal realtime assina o escopo de serviço (admin, todas as filiais) e
	// traduz os eventos do backoffice em invalidações de cache
	if cfg.Realtime.Enabled {
		channel := realtime.NewChannel(cfg.Realtime.URL, domain.SessionContext{
			Role: domain.RoleAdmin,
		}, synchronizer, nil)

		go channel.Run(ctx)
	}

	cacheJanitorService := scheduler.NewCacheJanitorService(synchronizer, cfg)
	if err := cacheJanitorService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza do cache")
	} else {
		logrus.Info("Agendador de limpeza do cache iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		insightService,
		returnService,
		authenticator,
		cacheJanitorService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
