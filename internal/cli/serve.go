package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/ontodag/internal/server"
	"github.com/matzehuels/ontodag/pkg/config"
	"github.com/matzehuels/ontodag/pkg/observability/prom"
	"github.com/matzehuels/ontodag/pkg/session"
	"github.com/matzehuels/ontodag/pkg/store"
)

// shutdownTimeout bounds how long in-flight requests may run after a stop
// signal.
const shutdownTimeout = 10 * time.Second

// serveOpts holds the flags of the serve command. Flags that were set
// override the configuration file.
type serveOpts struct {
	configPath string
	addr       string
	backend    string
	storeDir   string
	optimized  bool
	noMetrics  bool
}

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve ontology sessions over HTTP",
		Long: `Serve ontology sessions over HTTP.

Each client creates its own session with POST /sessions and works on it
through the /sessions/{id}/... routes. Idle sessions expire after
session.ttl; snapshots go to the configured store backend.

Examples:
  ontodag serve --addr :9000
  ontodag serve --config ontodag.toml --store redis`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			return c.serve(cmd.Context(), cfg, !opts.noMetrics)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().StringVar(&opts.backend, "store", "", "snapshot backend: null, file, redis, badger, mongo")
	cmd.Flags().StringVar(&opts.storeDir, "store-dir", "", "directory of the file or badger backend")
	cmd.Flags().BoolVar(&opts.optimized, "optimized", false, "use optimized insertion by default")
	cmd.Flags().BoolVar(&opts.noMetrics, "no-metrics", false, "do not serve /metrics")

	return cmd
}

// config loads the file, if any, and applies the flags that were set.
func (o serveOpts) config(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Server.Addr = o.addr
	}
	if flags.Changed("store") {
		cfg.Store.Backend = o.backend
	}
	if flags.Changed("store-dir") {
		cfg.Store.File.Dir = o.storeDir
		cfg.Store.Badger.Dir = o.storeDir
	}
	if flags.Changed("optimized") {
		cfg.Server.Optimized = o.optimized
	}
	return cfg, cfg.Validate()
}

func (c *CLI) serve(ctx context.Context, cfg config.Config, metrics bool) error {
	logger := c.Logger
	if logger.GetLevel() > log.DebugLevel {
		// --verbose wins over the configured level.
		level, _ := log.ParseLevel(cfg.Log.Level)
		logger.SetLevel(level)
	}

	st, err := store.Open(ctx, cfg.StoreConfig())
	if err != nil {
		return err
	}
	defer st.Close()

	sessions := session.NewManager(session.Options{
		Store:       st,
		TTL:         cfg.Session.TTL,
		SnapshotTTL: cfg.Store.TTL,
		Logger:      logger.WithPrefix("session"),
	})

	opts := server.Options{
		Sessions:  sessions,
		Logger:    logger.WithPrefix("http"),
		Optimized: cfg.Server.Optimized,
	}
	if metrics {
		m := prom.New()
		m.Register()
		opts.Metrics = m.Handler()
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.New(opts),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.Server.Addr, "store", cfg.Store.Backend, "optimized", cfg.Server.Optimized)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		return sessions.Run(gctx, cfg.Session.CleanupInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "sessions", sessions.Len())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
