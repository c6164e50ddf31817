// Package cli implements the catalog command line
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nainya/plantcatalog/internal/config"
	"github.com/nainya/plantcatalog/internal/logger"
	"github.com/nainya/plantcatalog/internal/metrics"
	"github.com/nainya/plantcatalog/pkg/catalog"
)

// flags shared by every command
type globalFlags struct {
	configPath  string
	dataPath    string
	storePath   string
	memory      bool
	logLevel    string
	pretty      bool
	metricsFile string
	checkImages bool
}

// NewRootCommand builds the catalog command tree.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "catalog",
		Short: "Plant catalog content-display engine",
		Long: `catalog loads a delimited plant dataset and renders filtered lists,
search candidates, detail projections and bloom/zone charts as JSON.

Selections persist between invocations in a local store.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", config.DefaultFile, "Configuration file")
	root.PersistentFlags().StringVarP(&g.dataPath, "data", "d", "", "Dataset file (overrides config)")
	root.PersistentFlags().StringVar(&g.storePath, "store", "", "Selection store path (overrides config)")
	root.PersistentFlags().BoolVar(&g.memory, "memory", false, "Keep selections in memory only")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error, off")
	root.PersistentFlags().BoolVar(&g.pretty, "pretty", false, "Human-readable logs")
	root.PersistentFlags().StringVar(&g.metricsFile, "metrics-file", "", "Write metrics in textfile format on exit")
	root.PersistentFlags().BoolVar(&g.checkImages, "check-images", false, "Fall back to the placeholder for missing images")

	root.AddCommand(
		newListCmd(g),
		newSearchCmd(g),
		newShowCmd(g),
		newChartCmd(g),
		newSelectCmd(g),
		newValidateCmd(g),
	)

	return root
}

// loadConfig reads the config file and applies command line overrides.
func (g *globalFlags) loadConfig() (config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return cfg, err
	}
	if g.dataPath != "" {
		cfg.Data.Path = g.dataPath
	}
	if g.storePath != "" {
		cfg.Selection.Path = g.storePath
	}
	if g.memory {
		cfg.Selection.Store = config.StoreMemory
	}
	if g.logLevel != "" {
		cfg.Logging.Level = g.logLevel
	}
	if g.pretty {
		cfg.Logging.Pretty = true
	}
	if g.metricsFile != "" {
		cfg.Metrics.Textfile = g.metricsFile
	}
	if g.checkImages {
		cfg.Site.CheckImages = true
	}
	return cfg, cfg.Validate()
}

type runFunc func(ctx context.Context, cmd *cobra.Command, c *catalog.Catalog, args []string) error

// withCatalog opens a catalog for one invocation, runs fn, and records the
// outcome in logs and metrics.
func (g *globalFlags) withCatalog(name string, fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := g.loadConfig()
		if err != nil {
			return err
		}

		session := uuid.NewString()
		log := logger.NewLogger(logger.Config{
			Level:  cfg.Logging.Level,
			Pretty: cfg.Logging.Pretty,
			Output: cmd.ErrOrStderr(),
		}).WithFields(map[string]interface{}{"command": name})
		m := metrics.NewMetrics()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		c, err := catalog.Open(ctx, cfg,
			catalog.WithLogger(log),
			catalog.WithMetrics(m),
			catalog.WithSession(session),
		)
		if err != nil {
			return fmt.Errorf("open catalog: %w", err)
		}

		log.Info("session started").
			Str("session", session).
			Str("data", cfg.Data.Path).
			Bool("durable", c.Durable()).
			Send()

		start := time.Now()
		runErr := fn(ctx, cmd, c, args)
		duration := time.Since(start)

		status := "success"
		if runErr != nil {
			status = "error"
		}
		m.RecordOperation("command_"+name, status, duration)
		log.LogOperation(name, duration, 0, runErr)

		if err := c.Close(); err != nil && runErr == nil {
			runErr = err
		}
		if cfg.Metrics.Textfile != "" {
			if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil && runErr == nil {
				runErr = fmt.Errorf("write metrics: %w", err)
			}
		}
		return runErr
	}
}
