package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/leadflow/internal/bot"
	"github.com/alexanderramin/leadflow/internal/catalog"
	"github.com/alexanderramin/leadflow/internal/cli"
	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/repository"
	"github.com/alexanderramin/leadflow/internal/service"
	"github.com/alexanderramin/leadflow/internal/webhook"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	dbPath := os.Getenv("LEADFLOW_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".leadflow", "leadflow.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	cfg := webhook.LoadConfig()
	var observer webhook.Observer = webhook.NoopObserver{}
	var useCases []service.UseCaseObserver
	if cfg.LogCalls {
		observer = webhook.NewLogObserver(os.Stderr)
		useCases = append(useCases, service.NewLogUseCaseObserver(os.Stderr))
	}
	gateway := webhook.NewGateway(cfg, observer)

	discoveryRepo := repository.NewSQLiteDiscoveryRepo(database)
	prefRepo := repository.NewSQLitePreferenceRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Catalog:     catalog.Default(),
		Gateway:     gateway,
		Discoveries: service.NewDiscoveryService(discoveryRepo, prefRepo, uow, useCases...),
		Gates:       service.NewGateService(prefRepo, useCases...),
		Bot: bot.Options{
			Observer: observer,
			Pacing:   pacingFromEnv(),
		},
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

func pacingFromEnv() time.Duration {
	if v := os.Getenv("LEADFLOW_PACING_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	return bot.DefaultPacing
}
