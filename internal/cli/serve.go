package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groupgen/groupgen/internal/api"
	"github.com/groupgen/groupgen/pkg/cache"
	"github.com/groupgen/groupgen/pkg/export"
	"github.com/groupgen/groupgen/pkg/model"
	"github.com/groupgen/groupgen/pkg/registry"
)

// serveParams holds the command-line flags for the serve command.
type serveParams struct {
	configPath string // alternate config file
	library    string // library file for the in-memory registry
	listen     string // listen address override
}

// serveCommand creates the serve command running the HTTP export API.
func (c *CLI) serveCommand() *cobra.Command {
	var params serveParams

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP export API",
		Long: `Run the HTTP export API.

The server exposes the export pipeline over HTTP: POST /api/export
generates code for a group, GET /api/groups lists the registry, and
GET /healthz reports liveness.

Groups come from MongoDB when [mongo].uri is configured, otherwise from
the library file given with --library. The generated-code cache backend
([cache].backend: file, redis, or none) is taken from the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), params)
		},
	}

	cmd.Flags().StringVar(&params.configPath, "config", "", "config file (default ~/.config/groupgen/config.toml)")
	cmd.Flags().StringVar(&params.library, "library", "", "library file for the in-memory registry")
	cmd.Flags().StringVar(&params.listen, "listen", "", "listen address (overrides config)")

	return cmd
}

// runServe wires registry and cache from config and runs the server
// until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, params serveParams) error {
	cfg, err := LoadConfig(params.configPath)
	if err != nil {
		return err
	}
	if params.listen != "" {
		cfg.Server.Listen = params.listen
	}

	reg, cleanup, err := c.buildRegistry(ctx, cfg, params.library)
	if err != nil {
		return err
	}
	defer cleanup()

	store, err := buildServeCache(ctx, cfg)
	if err != nil {
		return err
	}

	runner := export.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	srv := api.New(reg, runner, c.Logger)
	c.Logger.Infof("Listening on %s", cfg.Server.Listen)
	return srv.ListenAndServe(ctx, cfg.Server.Listen)
}

// buildRegistry selects the group registry: MongoDB when configured,
// otherwise an in-memory registry seeded from the library file.
func (c *CLI) buildRegistry(ctx context.Context, cfg Config, library string) (registry.Registry, func(), error) {
	if cfg.Mongo.URI != "" {
		m, err := registry.NewMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		c.Logger.Infof("Registry: mongodb database %s", cfg.Mongo.Database)
		return m, func() { _ = m.Disconnect(context.Background()) }, nil
	}

	if library == "" {
		return nil, nil, fmt.Errorf("no registry configured: set [mongo].uri or pass --library")
	}
	lib, err := model.ReadLibraryFile(library)
	if err != nil {
		return nil, nil, fmt.Errorf("load library %s: %w", library, err)
	}
	c.Logger.Infof("Registry: %d groups from %s", len(lib.Groups), library)
	return registry.NewMemory(lib), func() {}, nil
}

// buildServeCache creates the cache backend named in the config.
func buildServeCache(ctx context.Context, cfg Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
	default:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}
