package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexanderramin/quest/internal/cli"
	"github.com/alexanderramin/quest/internal/config"
	"github.com/alexanderramin/quest/internal/db"
	"github.com/alexanderramin/quest/internal/lock"
	"github.com/alexanderramin/quest/internal/repository"
	"github.com/alexanderramin/quest/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configFlag pulls --config out of the arguments before the command tree is
// built, since building it needs the loaded configuration.
func configFlag(args []string) string {
	fs := pflag.NewFlagSet("quest", pflag.ContinueOnError)
	fs.ParseErrorsAllowlist.UnknownFlags = true
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}

func run() error {
	cfg, err := config.Load(configFlag(os.Args[1:]))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	questionRepo := repository.NewSQLiteQuestionRepo(database)
	noteRepo := repository.NewSQLiteNoteRepo(database)
	urlRepo := repository.NewSQLiteURLInfoRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	locker, closeLocker, err := newLocker(cfg.Lock, logger)
	if err != nil {
		return err
	}
	defer closeLocker()

	var observers []service.UseCaseObserver
	if cfg.Log.UseCases {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	app := &cli.App{
		Projects:  service.NewProjectService(projectRepo, uow, observers...),
		Questions: service.NewQuestionService(projectRepo, questionRepo, noteRepo, uow, observers...),
		Notes:     service.NewNoteService(questionRepo, noteRepo, urlRepo, uow, locker, observers...),
		URLs:      service.NewURLService(projectRepo, urlRepo, uow, observers...),
		Reports:   service.NewReportService(projectRepo, questionRepo, noteRepo),
		Logger:    logger,
		Server:    cfg.Server,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	root := cli.NewRootCmd(app)
	root.PersistentFlags().String("config", "", "Config file (default $QUEST_CONFIG or ~/.config/quest/config.yaml)")
	return root.ExecuteContext(context.Background())
}

func newLocker(cfg config.LockConfig, logger *slog.Logger) (lock.Locker, func(), error) {
	if cfg.Backend != config.LockBackendRedis {
		return lock.NewKeyedMutex(), func() {}, nil
	}
	rl, err := lock.NewRedisLocker(cfg.RedisURL, cfg.TTL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting lock backend: %w", err)
	}
	return rl.WithLogger(logger), func() { _ = rl.Close() }, nil
}
