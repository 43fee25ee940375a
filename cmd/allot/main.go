package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/allot/internal/cli"
	"github.com/alexanderramin/allot/internal/config"
	"github.com/alexanderramin/allot/internal/db"
	"github.com/alexanderramin/allot/internal/logging"
	"github.com/alexanderramin/allot/internal/repository"
	"github.com/alexanderramin/allot/internal/service"
	"github.com/m-mizutani/ctxlog"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), os.Stderr, logging.ParseFormat(cfg.LogFormat))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = ctxlog.With(ctx, logger)

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	observer := service.NewLogUseCaseObserver(logger)

	app := &cli.App{
		Projects:    service.NewProjectService(store.Projects),
		Resources:   service.NewResourceService(store.Resources),
		Assignments: service.NewAssignmentService(store.Projects, store.Resources, store.Assignments),
		Calendar:    service.NewCalendarService(store.Projects, store.Resources, store.Assignments, observer),
		Import:      service.NewImportService(store.Tx, observer),

		Logger:       logger,
		HTTPAddr:     cfg.HTTPAddr,
		FetchTimeout: cfg.FetchTimeout(),
	}

	// Detect interactive terminal for forms and spinners.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

func openStore(ctx context.Context, cfg config.Config) (*repository.Store, error) {
	switch cfg.Store {
	case config.StoreFirestore:
		store, err := repository.NewFirestoreStore(ctx, cfg.FirestoreProject, cfg.FirestoreDatabase)
		if err != nil {
			return nil, fmt.Errorf("opening firestore: %w", err)
		}
		return store, nil
	default:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		return repository.NewSQLiteStore(database), nil
	}
}
