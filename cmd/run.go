package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/abhisek/praxis/internal/actionplan"
	"github.com/abhisek/praxis/internal/app"
	"github.com/abhisek/praxis/internal/catalogsync"
	"github.com/abhisek/praxis/internal/config"
	"github.com/abhisek/praxis/internal/dashboard"
	"github.com/abhisek/praxis/internal/llm"
	"github.com/abhisek/praxis/internal/questions"
	"github.com/abhisek/praxis/internal/store"
)

// runtime holds the opened store and the services built on it.
type runtime struct {
	cfg       config.Config
	log       *slog.Logger
	store     *store.Store
	redis     *redis.Client
	logFile   io.Closer
	catalog   *questions.Catalog
	dashboard *dashboard.Service
	plans     *actionplan.Generator
}

func (r *runtime) Close() {
	if r.redis != nil {
		_ = r.redis.Close()
	}
	_ = r.store.Close()
	if r.logFile != nil {
		_ = r.logFile.Close()
	}
}

// openRuntime loads config, opens the store and builds every service. Logs
// go to logOut; a nil logOut writes them next to the database.
func openRuntime(cmd *cobra.Command, logOut io.Writer) (*runtime, error) {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	var logFile io.Closer
	if logOut == nil {
		f, err := os.OpenFile(filepath.Join(filepath.Dir(dbPath), "praxis.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logOut, logFile = f, f
	}
	log := cfg.NewLogger(logOut)

	closeLog := func() {
		if logFile != nil {
			_ = logFile.Close()
		}
	}

	catDir, err := catalogDir(cmd, cfg)
	if err != nil {
		closeLog()
		return nil, err
	}
	cat, err := catalogsync.Open(catDir)
	if err != nil {
		closeLog()
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open store: %w", err)
	}
	rt := &runtime{cfg: cfg, log: log, store: st, logFile: logFile, catalog: cat}

	var cache dashboard.Cache = dashboard.NopCache{}
	if cfg.Redis.URL != "" {
		client, err := dashboard.DialRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn("dashboard cache disabled", "error", err)
		} else {
			rt.redis = client
			cache = dashboard.NewRedisCache(client, cfg.Redis.Prefix)
		}
	}
	rt.dashboard = dashboard.NewService(st.AssessmentRepo(), cat, dashboard.Options{
		Cache:  cache,
		TTL:    cfg.Redis.TTL,
		Logger: log,
	})

	var provider llm.Provider
	if p, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), log); err != nil {
		log.Warn("LLM provider not configured; action plans use catalog prompts only", "error", err)
	} else {
		provider = p
	}
	rt.plans = actionplan.NewGenerator(cat, provider, actionplan.DefaultConfig(), log)

	return rt, nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, startAssessment bool) error {
	rt, err := openRuntime(cmd, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	return app.Run(app.Options{
		Catalog:         rt.catalog,
		Dashboard:       rt.dashboard,
		Assessments:     rt.store.AssessmentRepo(),
		Plans:           rt.plans,
		StartAssessment: startAssessment,
	})
}

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Start a new assessment",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, true)
	},
}

// withRuntime runs fn against a runtime that logs to stderr.
func withRuntime(cmd *cobra.Command, fn func(ctx context.Context, rt *runtime) error) error {
	rt, err := openRuntime(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(cmd.Context(), rt)
}
