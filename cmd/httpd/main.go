// Command httpd runs the civic complaint resolver HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/civicsetu/resolver/internal/api"
	"github.com/civicsetu/resolver/internal/classifier"
	"github.com/civicsetu/resolver/internal/config"
	"github.com/civicsetu/resolver/internal/database"
	"github.com/civicsetu/resolver/internal/directory"
	"github.com/civicsetu/resolver/internal/gazetteer"
	"github.com/civicsetu/resolver/internal/geocode"
	"github.com/civicsetu/resolver/internal/logger"
	"github.com/civicsetu/resolver/internal/notify"
	"github.com/civicsetu/resolver/internal/reddit"
	"github.com/civicsetu/resolver/internal/resolver"
	"github.com/civicsetu/resolver/internal/telemetry"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	// Optional; real deployments use environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service",
		logger.String("name", cfg.Service.Name),
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
	)

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	log.Info("database ready",
		logger.String("host", cfg.Database.Host),
		logger.String("database", cfg.Database.Database),
	)

	tel := telemetry.NewProvider()

	repo := database.NewComplaintsRepository(db)
	engine := classifier.NewEngine(log)
	extractor := gazetteer.NewExtractor()
	authorities := directory.New()
	geocoder := geocode.NewClient(cfg.Geocode, cfg.Reddit.UserAgent, log)
	fetcher := reddit.NewClient(cfg.Reddit, reddit.NewTokenCache(), log)
	emailSender := notify.NewEmailSender(cfg.Notify, log)
	smsSender := notify.NewSMSSender(cfg.Notify, log)
	citizenNotifier := notify.NewCitizenNotifier(emailSender, smsSender)

	pipeline := resolver.New(
		engine,
		extractor,
		geocoder,
		authorities,
		repo,
		emailSender,
		citizenNotifier,
		tel,
		log,
	)

	handler := api.NewHandler(pipeline, fetcher, repo, db, cfg, log)
	server := api.NewServer(handler, api.ServerConfig{
		Port:  cfg.Service.Port,
		Debug: cfg.Service.Debug,
	}, tel.Handler(), log)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server: %w", err)
	case sig := <-shutdown:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		log.Info("server stopped")
	}

	return nil
}
