package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alexanderramin/grindfit/internal/cli"
	"github.com/alexanderramin/grindfit/internal/config"
	"github.com/alexanderramin/grindfit/internal/db"
	"github.com/alexanderramin/grindfit/internal/intelligence"
	"github.com/alexanderramin/grindfit/internal/llm"
	"github.com/alexanderramin/grindfit/internal/repository"
	"github.com/alexanderramin/grindfit/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", cli.FriendlyError(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultOptions())
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	// Wire repositories
	kv := repository.NewSQLKVStore(database)
	programRepo := repository.NewKVProgramRepo(kv)
	cursorRepo := repository.NewKVCursorRepo(kv)
	iconRepo := repository.NewKVIconRepo(kv)
	uow := db.NewUnitOfWork(database)

	llmCfg := cfg.LLMConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewSlogObserver(logger)
	}
	llmClient := llm.NewClient(llmCfg, observer)

	opts := []service.Option{
		service.WithLogger(logger),
		service.WithObserver(service.NewLogUseCaseObserver(logger)),
	}

	app := &cli.App{
		Programs: service.NewProgramService(programRepo, cursorRepo, uow, intelligence.NewPlanGenerator(llmClient), opts...),
		Icons:    service.NewIconService(iconRepo, intelligence.NewIconGenerator(llmClient), opts...),
	}

	// Forms, spinners and the board need a terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func openDatabase(cfg *config.Config) (*sql.DB, error) {
	if cfg.Remote() {
		return db.OpenRemote(cfg.Database.URL, cfg.Database.AuthToken)
	}
	return db.OpenDB(cfg.Database.Path)
}
