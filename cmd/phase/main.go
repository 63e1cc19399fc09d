package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/sergioanunez/phase/internal/cli"
	"github.com/sergioanunez/phase/internal/db"
	"github.com/sergioanunez/phase/internal/repository"
	"github.com/sergioanunez/phase/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.phase/phase.db
	dbPath := os.Getenv("PHASE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".phase", "phase.db")
	}

	tenantID := os.Getenv("PHASE_TENANT")
	if tenantID == "" {
		tenantID = "default"
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	homeRepo := repository.NewSQLiteHomeRepo(database)
	itemRepo := repository.NewSQLiteTemplateItemRepo(database)
	depRepo := repository.NewSQLiteTemplateDependencyRepo(database)
	gateRepo := repository.NewSQLiteCategoryGateRepo(database)
	taskRepo := repository.NewSQLiteHomeTaskRepo(database)
	punchRepo := repository.NewSQLitePunchItemRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("PHASE_LOG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Homes:      service.NewHomeService(homeRepo, observer),
		Templates:  service.NewTemplateService(itemRepo, depRepo),
		Gates:      service.NewCategoryGateService(gateRepo),
		Tasks:      service.NewTaskService(homeRepo, taskRepo, itemRepo, depRepo, gateRepo, punchRepo, uow, observer),
		PunchItems: service.NewPunchService(punchRepo, taskRepo),
		Scheduling: service.NewSchedulingService(homeRepo, taskRepo, depRepo, gateRepo, punchRepo, observer),
		Forecast:   service.NewForecastService(homeRepo, taskRepo, depRepo, uow, observer),
		TenantID:   tenantID,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
