package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/workcell/internal/metrics"
	"github.com/matzehuels/workcell/internal/server"
	"github.com/matzehuels/workcell/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var envFile, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout pipeline over HTTP",
		Long: `Serve runs the HTTP API (POST /v1/solve, /v1/validate, /v1/compare, GET
/healthz and /metrics).

Settings come from the environment with the WORKCELL_ prefix:

  WORKCELL_ADDR           listen address (default :8080)
  WORKCELL_CACHE          memory, redis, file or none (default memory)
  WORKCELL_CACHE_SIZE     memory cache entries
  WORKCELL_CACHE_DIR      file cache directory
  WORKCELL_REDIS_URL      redis://host:6379/0
  WORKCELL_KEY_PREFIX     prefix for cache keys in a shared redis
  WORKCELL_SOLVER_CONFIG  solver config file (TOML)

Variables in --env-file are loaded first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := server.LoadConfig(envFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			solverCfg, err := cfg.LoadSolverConfig()
			if err != nil {
				return err
			}
			store, err := cfg.OpenCache(ctx, logger)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			metrics.New(reg).Register()

			runner := pipeline.NewRunner(store, cfg.Keyer(), logger)
			defer runner.Close()

			return server.New(runner, solverCfg, logger, reg).ListenAndServe(ctx, cfg.Addr)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides WORKCELL_ADDR)")

	return cmd
}
