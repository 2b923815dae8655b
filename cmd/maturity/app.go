package main

import (
	"context"
	"fmt"
	"io"
	"maturity/internal/archive"
	"maturity/internal/blob"
	"maturity/internal/config"
	"maturity/internal/core"
	"maturity/pkg/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries per-invocation state shared by the commands.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath  string
	verbose     bool
	metricsFile string
	// environ overrides the process environment when non-nil.
	environ   map[string]string
	newLogger func(level zapcore.Level) (*zap.Logger, error)

	cfg      config.Config
	logger   *zap.Logger
	storage  domain.StateStorage
	store    *core.Store
	registry *prometheus.Registry
}

func newApp(out, errOut io.Writer) *app {
	return &app{out: out, errOut: errOut, newLogger: productionLogger, logger: zap.NewNop()}
}

func productionLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// setup loads configuration and builds the logger. Storage is opened lazily.
func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.LoadWithEnv(a.configPath, a.environ)
	if err != nil {
		return err
	}
	if a.metricsFile != "" {
		cfg.MetricsFile = a.metricsFile
	}
	a.cfg = cfg
	level, _ := cfg.Level()
	if a.verbose {
		level = zapcore.DebugLevel
	}
	logger, err := a.newLogger(level)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// teardown writes the metrics file, if configured, and closes storage.
func (a *app) teardown() error {
	var err error
	if a.registry != nil && a.cfg.MetricsFile != "" {
		if werr := prometheus.WriteToTextfile(a.cfg.MetricsFile, a.registry); werr != nil {
			err = fmt.Errorf("write metrics: %w", werr)
		}
		a.registry = nil
	}
	if a.storage != nil {
		if cerr := a.storage.Close(); cerr != nil {
			a.logger.Warn("close storage", zap.Error(cerr))
		}
		a.storage = nil
	}
	_ = a.logger.Sync()
	return err
}

func (a *app) openStore(ctx context.Context) (*core.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	storage, err := core.OpenStorage(ctx, a.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	registry := prometheus.NewRegistry()
	metrics, err := core.NewPrometheusMetrics(registry)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}
	store, err := core.NewStore(ctx, storage,
		core.WithLogger(a.logger.Named("store")),
		core.WithMetrics(metrics),
		core.WithStorageKey(a.cfg.Storage.Key),
	)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}
	a.storage = storage
	a.store = store
	a.registry = registry
	a.logger.Debug("storage opened", zap.String("driver", a.cfg.Storage.Driver), zap.String("key", store.Key()))
	return store, nil
}

func (a *app) openArchive(ctx context.Context) (*archive.Archive, error) {
	store, err := blob.Open(ctx, a.cfg.Archive.BlobOptions())
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return archive.New(store), nil
}

// withStore adapts a store-backed handler to cobra's RunE.
func (a *app) withStore(fn func(cmd *cobra.Command, args []string, s *core.Store) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := a.openStore(cmd.Context())
		if err != nil {
			return err
		}
		return fn(cmd, args, s)
	}
}

// mutation runs a store operation and prints the resulting summary line.
func (a *app) mutation(op func(cmd *cobra.Command, args []string, s *core.Store) (domain.Assessment, error)) func(*cobra.Command, []string) error {
	return a.withStore(func(cmd *cobra.Command, args []string, s *core.Store) error {
		if _, err := op(cmd, args, s); err != nil {
			return err
		}
		p := s.Progress()
		fmt.Fprintf(a.out, "saved (%d/%d dimensions assessed)\n", p.Completed, p.Total)
		return nil
	})
}
