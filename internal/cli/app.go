package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"go.uber.org/zap"

	"learner/internal/catalog"
	"learner/internal/config"
	"learner/internal/duckdb"
	"learner/internal/history"
	"learner/internal/kvstore"
	"learner/internal/logger"
	"learner/internal/profile"
	"learner/internal/ui/lessonview"
)

var (
	// userHomeDir locates the fallback root when no config file is found.
	userHomeDir = os.UserHomeDir
	// now is the wall clock used for profile timestamps.
	now = time.Now
)

// app holds the services a command runs against.
type app struct {
	cfg      config.Config
	cfgPath  string
	log      *zap.Logger
	catalog  *catalog.Catalog
	profiles *profile.Store
	history  *history.Recorder
	dbs      map[string]*sql.DB
	closers  []func() error
}

type appOptions struct {
	configPath string
	command    string
	history    bool
}

// openApp resolves config, then opens the logger, catalog, and stores.
func openApp(ctx context.Context, opts appOptions) (*app, error) {
	home, err := userHomeDir()
	if err != nil {
		home = "."
	}
	cfg, cfgPath, err := config.Resolve(opts.configPath, "", home)
	if err != nil {
		return nil, err
	}

	log, closeLog, err := logger.New(logger.Options{
		Path:       cfg.Log.Path,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	a := &app{
		cfg:     cfg,
		cfgPath: cfgPath,
		log:     log.With(zap.String("command", opts.command)),
		dbs:     map[string]*sql.DB{},
		closers: []func() error{closeLog},
	}

	if a.catalog, err = loadCatalog(cfg.Catalog.Dir); err != nil {
		_ = a.Close()
		return nil, err
	}

	kv, err := a.openKV(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.closers = append(a.closers, kv.Close)
	a.profiles = profile.NewStore(kv, a.log)

	if opts.history && cfg.HistoryEnabled() {
		db, err := a.database(ctx, cfg.History.Path)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		if a.history, err = history.New(ctx, db); err != nil {
			_ = a.Close()
			return nil, err
		}
		a.closers = append(a.closers, a.history.Close)
	}

	a.log.Debug("app opened",
		zap.String("config", cfgPath),
		zap.String("storage", cfg.Storage.Backend),
		zap.Bool("history", a.history != nil),
	)
	return a, nil
}

func (a *app) openKV(ctx context.Context) (kvstore.Store, error) {
	switch a.cfg.Storage.Backend {
	case config.BackendDuckDB:
		db, err := a.database(ctx, a.cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		return kvstore.NewDuckDB(ctx, db)
	default:
		return kvstore.NewFile(a.cfg.Storage.Path)
	}
}

// database opens each DuckDB file once so the profile table and attempt
// history can share a connection pool.
func (a *app) database(ctx context.Context, path string) (*sql.DB, error) {
	if db, ok := a.dbs[path]; ok {
		return db, nil
	}
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	a.dbs[path] = db
	a.closers = append(a.closers, db.Close)
	return db, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func loadCatalog(dir string) (*catalog.Catalog, error) {
	if strings.TrimSpace(dir) == "" {
		return catalog.Default()
	}
	return catalog.Load(dir)
}

// withApp opens the app, runs fn, and maps errors to exit codes.
func withApp(opts appOptions, stderr io.Writer, fn func(ctx context.Context, a *app) int) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := openApp(ctx, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to start: %v\n", err)
		return ExitError
	}
	code := fn(ctx, a)
	if err := a.Close(); err != nil {
		fmt.Fprintf(stderr, "Failed to close: %v\n", err)
		if code == ExitOK {
			code = ExitError
		}
	}
	return code
}

// renderOptions derives lessonview options for stdout.
func (a *app) renderOptions(stdout io.Writer, noColor bool) lessonview.Options {
	return lessonview.Options{
		NoColor: noColor || a.cfg.UI.NoColor || !isTerminal(stdout),
		Width:   terminalWidth(stdout),
	}
}

// resolveLesson parses a lesson id and checks it against the catalog.
func (a *app) resolveLesson(id string) (catalog.Level, string, catalog.LessonContent, error) {
	level, slug, _, ok := profile.ParseLessonID(id)
	if !ok {
		return "", "", catalog.LessonContent{}, fmt.Errorf("invalid lesson id %q (expected <level>/<slug>)", id)
	}
	content, found := a.catalog.Lesson(level, slug)
	if !found {
		return "", "", catalog.LessonContent{}, fmt.Errorf("unknown lesson %q", profile.LessonID(level, slug))
	}
	return level, slug, content, nil
}
