package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flowboardhq/flowboard/pkg/cache"
	"github.com/flowboardhq/flowboard/pkg/compose"
	"github.com/flowboardhq/flowboard/pkg/config"
	"github.com/flowboardhq/flowboard/pkg/server"
	"github.com/flowboardhq/flowboard/pkg/store"
)

// shutdownTimeout bounds graceful shutdown after the context is cancelled.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the flowboard HTTP API",
		Long: `Run the flowboard HTTP API.

The server exposes compose, reconcile, render, and saved-view endpoints
under /api. Cache and store backends are selected via the config file:
memory (default), file, redis for the cache; memory, file, mongo for the
view store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config TOML file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// runServe builds the backends from config and serves until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		c.SetLogLevel(level)
	}

	cch, err := c.serveCache(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	st, err := serveStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close()

	var keyer cache.Keyer
	if cfg.Cache.KeyPrefix != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.KeyPrefix)
	}

	runner := compose.NewRunner(cch, keyer, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(server.Options{Runner: runner, Store: st, Logger: c.Logger}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", cfg.Addr, "cache", cfg.Cache.Backend, "store", cfg.Store.Backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	prog := newProgress(c.Logger)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	prog.done("Server stopped")
	return nil
}

// serveCache builds the cache backend named in cfg.
func (c *CLI) serveCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.CacheMemory:
		return cache.NewMemoryCache(), nil
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// serveStore builds the saved-view store backend named in cfg.
func serveStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case config.StoreMemory:
		return store.NewMemoryStore(), nil
	case config.StoreFile:
		return store.NewFileStore(cfg.Dir)
	case config.StoreMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
