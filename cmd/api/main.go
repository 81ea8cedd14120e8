package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/alsham360/prima-api/infrastructure/archive"
	"github.com/alsham360/prima-api/infrastructure/database/postgres"
	"github.com/alsham360/prima-api/infrastructure/integrator/automation"
	"github.com/alsham360/prima-api/infrastructure/integrator/automation/automationclient"
	"github.com/alsham360/prima-api/infrastructure/localstore"
	"github.com/alsham360/prima-api/infrastructure/migration"
	"github.com/alsham360/prima-api/infrastructure/repository"
	"github.com/alsham360/prima-api/internal/api"
	"github.com/alsham360/prima-api/internal/config"
	"github.com/alsham360/prima-api/internal/realtime"
	"github.com/alsham360/prima-api/internal/scheduler"
	"github.com/alsham360/prima-api/internal/usecases/pipeline"
	"github.com/alsham360/prima-api/pkg/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
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

	if err := migration.RunMigrations(cfg.Database.DSN); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrações")
	}

	store, err := localstore.Open(cfg.Cache.LocalStorePath)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao abrir armazenamento local")
	}
	defer store.Close()

	opportunityRepo := repository.NewOpportunityRepository(pgConn)
	gamificationRepo := repository.NewGamificationRepository(pgConn)
	outboxRepo := repository.NewOutboxRepository(pgConn)

	pipelineService := pipeline.NewService(opportunityRepo, gamificationRepo, repository.NewStageMover(pgConn), store, cfg)

	automationClient := automationclient.NewClient(cfg)
	automationService := automation.New(automationClient)

	outboxDispatchService := scheduler.NewOutboxDispatchService(outboxRepo, automationService, cfg)
	if err := outboxDispatchService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de despacho do outbox")
	} else {
		logrus.Info("Agendador de despacho do outbox iniciado com sucesso")
	}

	if cfg.Realtime.Enabled {
		listener := realtime.NewListener(pipelineService, cfg.Realtime.Channel)
		go func() {
			if err := listener.Start(ctx, cfg.Database.DSN); err != nil {
				logrus.WithError(err).Error("Listener de alterações do pipeline encerrado com erro")
			}
		}()
	}

	var uploader archive.Uploader
	if cfg.Archive.Bucket != "" {
		s3Uploader, err := archive.NewS3Uploader(ctx, cfg.Archive)
		if err != nil {
			logrus.WithError(err).Error("Erro ao configurar arquivamento de exportações, seguindo sem ele")
		} else {
			uploader = s3Uploader
		}
	}

	validator := middleware.NewSupabaseValidator(cfg.Supabase.JWTSecret)

	server, err := api.New(
		cfg,
		pipelineService,
		validator,
		outboxDispatchService,
		uploader,
		pgConn,
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
	_ = os.Chdir(dir)

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
