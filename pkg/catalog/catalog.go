// ABOUTME: Catalog ties the dataset to its filter, search, selection, detail and chart views
// ABOUTME: One Catalog per invocation; not safe for concurrent use

package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nainya/plantcatalog/internal/config"
	"github.com/nainya/plantcatalog/internal/logger"
	"github.com/nainya/plantcatalog/internal/metrics"
	"github.com/nainya/plantcatalog/pkg/dataset"
	"github.com/nainya/plantcatalog/pkg/detail"
	"github.com/nainya/plantcatalog/pkg/filter"
	"github.com/nainya/plantcatalog/pkg/search"
	"github.com/nainya/plantcatalog/pkg/selection"
	"github.com/nainya/plantcatalog/pkg/vis"
)

// Catalog is the page controller state for one loaded dataset.
type Catalog struct {
	cfg config.Config

	ds        *dataset.Dataset
	filters   *filter.Engine
	index     *search.Index
	tracker   *selection.Tracker
	projector *detail.Projector
	adapter   *vis.Adapter

	store   selection.Store
	log     *logger.Logger
	metrics *metrics.Metrics
	session string

	reported filter.Stats
}

// Option configures Open.
type Option func(*Catalog)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Catalog) {
		c.log = l
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Catalog) {
		c.metrics = m
	}
}

// WithStore overrides the selection store named in the configuration.
func WithStore(s selection.Store) Option {
	return func(c *Catalog) {
		c.store = s
	}
}

// WithSession tags every log line with a session identifier.
func WithSession(id string) Option {
	return func(c *Catalog) {
		c.session = id
	}
}

// Open loads the configured dataset and builds every view over it.
func Open(ctx context.Context, cfg config.Config, opts ...Option) (*Catalog, error) {
	c := &Catalog{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	if c.session != "" {
		c.log = c.log.WithFields(map[string]interface{}{"session": c.session})
	}
	if c.metrics == nil {
		c.metrics = metrics.NewMetrics()
	}

	matchers, err := cfg.MatcherFuncs()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ds, err := dataset.LoadFile(ctx, cfg.Data.Path, dataset.LoadOptions{
		Delimiter:      cfg.DelimiterRune(),
		IDField:        cfg.Data.IDField,
		RequiredFields: cfg.Data.RequiredFields,
		StrictIDs:      cfg.Data.StrictIDs,
		Slug:           cfg.SlugFunc(),
		Logger:         c.log.Component("dataset"),
	})
	elapsed := time.Since(start)
	c.log.LogDatasetLoad(cfg.Data.Path, datasetLen(ds), elapsed, err)
	if err != nil {
		c.metrics.RecordOperation("load", "error", elapsed)
		return nil, err
	}
	c.metrics.RecordOperation("load", "ok", elapsed)
	c.metrics.UpdateDatasetStats(ds.Len(), len(ds.Collisions()), elapsed)
	c.ds = ds

	c.filters = filter.NewEngine(ds,
		filter.WithMatchers(matchers),
		filter.WithLogger(c.log.Component("filter")),
	)
	c.index = search.New(ds, cfg.Search.AuxFields, cfg.Search.TextFields)

	projOpts := []detail.Option{}
	if cfg.Site.CheckImages {
		projOpts = append(projOpts, detail.WithImageProbe(c.imageExists))
	}
	c.projector = detail.NewProjector(detail.Config{
		NameField:        cfg.Fields.Name,
		SecondaryField:   cfg.Fields.Secondary,
		ImageTitlesField: cfg.Fields.ImageTitles,
		ImageSeparator:   cfg.Fields.ImageSeparator,
		ImageDir:         cfg.Site.ImageDir,
		ImageExt:         cfg.Site.ImageExt,
		Placeholder:      cfg.Site.Placeholder,
		Slug:             cfg.SlugFunc(),
	}, projOpts...)

	c.adapter = vis.NewAdapter(vis.Config{
		NameField:  cfg.Fields.Name,
		ZoneField:  cfg.Fields.Zone,
		BloomField: cfg.Fields.Bloom,
		Link:       cfg.DetailLink,
	})

	if c.store == nil {
		c.store = c.openStore()
	}
	c.tracker = selection.NewTracker(c.store,
		selection.WithLogger(c.log.Component("selection")),
		selection.WithFailureHook(func(op string, _ error) {
			c.metrics.RecordStoreFailure(op)
		}),
	)
	c.metrics.RecordSelection("restore", status(c.tracker.Durable()), c.tracker.Len())

	c.log.Debug("catalog ready").
		Int("rows", ds.Len()).
		Int("selected", c.tracker.Len()).
		Bool("durable", c.tracker.Durable()).
		Send()

	return c, nil
}

// openStore returns nil when the durable store cannot be opened; the
// tracker then runs in memory.
func (c *Catalog) openStore() selection.Store {
	switch c.cfg.Selection.Store {
	case config.StoreMemory:
		return selection.NewMemoryStore()
	default:
		s, err := selection.OpenSQLiteStore(c.cfg.Selection.Path)
		if err != nil {
			c.log.Warn("selection store unavailable").
				Str("path", c.cfg.Selection.Path).
				Err(err).
				Send()
			c.metrics.RecordStoreFailure("open")
			return nil
		}
		return s
	}
}

func (c *Catalog) imageExists(p string) bool {
	_, err := os.Stat(filepath.Join(c.cfg.Site.Dir, filepath.FromSlash(p)))
	return err == nil
}

// Close releases the selection store.
func (c *Catalog) Close() error {
	if closer, ok := c.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil && !errors.Is(err, selection.ErrStoreClosed) {
			return fmt.Errorf("close selection store: %w", err)
		}
	}
	return nil
}

// Config returns the configuration the catalog was opened with.
func (c *Catalog) Config() config.Config {
	return c.cfg
}

// Dataset returns the loaded dataset.
func (c *Catalog) Dataset() *dataset.Dataset {
	return c.ds
}

// Metrics returns the metrics sink.
func (c *Catalog) Metrics() *metrics.Metrics {
	return c.metrics
}

func datasetLen(ds *dataset.Dataset) int {
	if ds == nil {
		return 0
	}
	return ds.Len()
}

func status(ok bool) string {
	if ok {
		return "ok"
	}
	return "degraded"
}
