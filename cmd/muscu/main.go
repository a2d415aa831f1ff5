package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/djouu94/workout-tracker-v2/internal/catalog"
	"github.com/djouu94/workout-tracker-v2/internal/cli"
	"github.com/djouu94/workout-tracker-v2/internal/config"
	"github.com/djouu94/workout-tracker-v2/internal/db"
	"github.com/djouu94/workout-tracker-v2/internal/mcp"
	"github.com/djouu94/workout-tracker-v2/internal/repository"
	"github.com/djouu94/workout-tracker-v2/internal/server"
	"github.com/djouu94/workout-tracker-v2/internal/service"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfgPath, err := configPath(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// stdout carries command output and the MCP stream.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(log)

	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		cat, err = catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
	}

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	setRepo := repository.NewSQLiteExerciseSetRepo(database)
	warmupRepo := repository.NewSQLiteWarmupRepo(database)
	finisherRepo := repository.NewSQLiteFinisherRepo(database)
	statsRepo := repository.NewSQLiteStatsRepo(database)
	schemaRepo := repository.NewSQLiteSchemaRepo(database)

	var observers []service.UseCaseObserver
	if cfg.Log.UseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	// Wire services
	recorder := service.NewRecorderService(db.NewSQLiteUnitOfWork(database), observers...)
	history := service.NewHistoryService(sessionRepo, setRepo, warmupRepo, finisherRepo, observers...)
	records := service.NewRecordService(setRepo, observers...)
	dashboard := service.NewDashboardService(statsRepo, setRepo, log, observers...)

	app := &cli.App{
		Catalog:     cat,
		Recorder:    recorder,
		History:     history,
		Records:     records,
		Dashboard:   dashboard,
		Schema:      schemaRepo,
		Logger:      log,
		DefaultDays: cfg.History.DefaultDays,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	app.Serve = func(ctx context.Context) error {
		handler := server.New(server.Deps{
			Catalog:     cat,
			Recorder:    recorder,
			History:     history,
			Records:     records,
			Dashboard:   dashboard,
			DefaultDays: cfg.History.DefaultDays,
		}, log)
		return serveHTTP(ctx, cfg.Server.Addr(), handler, log)
	}

	app.ServeMCP = func(ctx context.Context) error {
		s := mcp.New(mcp.Deps{
			Catalog:   cat,
			History:   history,
			Records:   records,
			Dashboard: dashboard,
			Schema:    schemaRepo,
		}, version, log)
		log.Info("mcp server listening on stdio")
		err := mcpserver.NewStdioServer(s).Listen(ctx, os.Stdin, os.Stdout)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	root := cli.NewRootCmd(app)
	root.Version = version
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

// configPath pre-parses --config so the store can be opened before cobra
// runs. Every other flag is left for cobra.
func configPath(args []string) (string, error) {
	fs := pflag.NewFlagSet("muscu", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	path := fs.String("config", "", "")
	fs.BoolP("help", "h", false, "")
	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("parsing flags: %w", err)
	}
	if *path != "" {
		return *path, nil
	}
	if v := os.Getenv("MUSCU_CONFIG"); v != "" {
		return v, nil
	}
	return config.DefaultPath(), nil
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler, log *slog.Logger) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
