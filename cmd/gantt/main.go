package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/sitecrew/gantt/internal/cache"
	"github.com/sitecrew/gantt/internal/cli"
	"github.com/sitecrew/gantt/internal/clock"
	"github.com/sitecrew/gantt/internal/config"
	"github.com/sitecrew/gantt/internal/db"
	"github.com/sitecrew/gantt/internal/events"
	"github.com/sitecrew/gantt/internal/repository"
	"github.com/sitecrew/gantt/internal/service"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)

	database, dialect, err := db.Open(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer database.Close()
	logger.Debug("database opened", "dialect", dialect.String())

	// Wire repositories
	conn := db.Bind(database, dialect)
	projectRepo := repository.NewSQLProjectRepo(conn)
	taskRepo := repository.NewSQLTaskRepo(conn)
	uow := db.NewUnitOfWork(database, dialect)

	var taskCache cache.TaskCache = cache.NewMemory(cfg.Cache.TTL)
	if cfg.CacheEnabled() {
		client := cache.NewRedisClient(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		defer client.Close()
		taskCache = cache.NewRedisTaskCache(client, cfg.Cache.TTL)
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.EventsEnabled() {
		amqpPub, err := events.DialAMQP(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			return err
		}
		defer amqpPub.Close()
		publisher = amqpPub
	}

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.Log.UseCases {
		observer = service.NewLogUseCaseObserver(logger)
	}

	clk := clock.System{}
	opts := []service.Option{
		service.WithCache(taskCache),
		service.WithPublisher(publisher),
		service.WithObserver(observer),
		service.WithLogger(logger),
		service.WithClock(clk),
	}

	app := &cli.App{
		Projects: service.NewProjectService(projectRepo, opts...),
		Tasks:    service.NewTaskService(taskRepo, opts...),
		Schedule: service.NewScheduleService(projectRepo, taskRepo, uow, opts...),
		Repair:   service.NewRepairService(taskRepo, nil, opts...),
		Import:   service.NewImportService(uow, afero.NewOsFs(), opts...),
		Clock:    clk,
		CopyDefaults: cli.CopyDefaults{
			StripResources:     cfg.Copy.StripResources,
			HonorRelationships: cfg.Copy.HonorRelationships,
		},
	}

	// Detect interactive terminal for prompts and the schedule view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
