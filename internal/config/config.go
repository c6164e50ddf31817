// Package config loads catalog configuration from YAML
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/nainya/plantcatalog/pkg/filter"
	"github.com/nainya/plantcatalog/pkg/slug"
)

// DefaultFile is read when no config path is given.
const DefaultFile = "catalog.yaml"

// DefaultSearchLimit caps search candidates when search.limit is unset.
const DefaultSearchLimit = 25

// Store kinds for the selection store.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config is the top-level catalog configuration.
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Fields    FieldsConfig    `yaml:"fields"`
	Filters   FiltersConfig   `yaml:"filters"`
	Search    SearchConfig    `yaml:"search"`
	Site      SiteConfig      `yaml:"site"`
	Selection SelectionConfig `yaml:"selection"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// DataConfig describes the dataset file.
type DataConfig struct {
	Path           string   `yaml:"path"`
	Delimiter      string   `yaml:"delimiter"`
	IDField        string   `yaml:"id_field"`
	RequiredFields []string `yaml:"required_fields"`
	StrictIDs      bool     `yaml:"strict_ids"`
	FoldAccents    bool     `yaml:"fold_accents"` // "Échinacea" -> "echinacea" instead of "chinacea"
}

// FieldsConfig names the fields with special roles.
type FieldsConfig struct {
	Name           string `yaml:"name"`
	Secondary      string `yaml:"secondary"`
	ImageTitles    string `yaml:"image_titles"`
	ImageSeparator string `yaml:"image_separator"`
	Zone           string `yaml:"zone"`
	Bloom          string `yaml:"bloom"`
}

// FiltersConfig maps field names to matcher names.
type FiltersConfig struct {
	Matchers map[string]string `yaml:"matchers"`
}

// SearchConfig configures the search index.
type SearchConfig struct {
	TextFields []string `yaml:"text_fields"`
	AuxFields  []string `yaml:"aux_fields"`
	Limit      *int     `yaml:"limit"` // 0 means unlimited; unset means DefaultSearchLimit
}

// SiteConfig locates static resources.
type SiteConfig struct {
	Dir         string `yaml:"dir"` // root the image paths are resolved against
	ImageDir    string `yaml:"image_dir"`
	ImageExt    string `yaml:"image_ext"`
	Placeholder string `yaml:"placeholder"`
	DetailPage  string `yaml:"detail_page"`
	CheckImages bool   `yaml:"check_images"`
}

// SelectionConfig configures the durable selection store.
type SelectionConfig struct {
	Store string `yaml:"store"` // sqlite or memory
	Path  string `yaml:"path"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// MetricsConfig configures metric export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Default returns the configuration for the plant catalog.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// Load reads path, falling back to defaults when the file does not exist.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyDefaults fills unset values.
func (c *Config) ApplyDefaults() {
	if c.Data.Path == "" {
		c.Data.Path = "plants.csv"
	}
	if c.Data.Delimiter == "" {
		c.Data.Delimiter = "|"
	}
	if c.Fields.Name == "" {
		c.Fields.Name = "Scientific Name"
	}
	if c.Data.IDField == "" {
		c.Data.IDField = c.Fields.Name
	}
	if c.Fields.Secondary == "" {
		c.Fields.Secondary = "Common Name"
	}
	if c.Fields.ImageTitles == "" {
		c.Fields.ImageTitles = "Image Titles"
	}
	if c.Fields.ImageSeparator == "" {
		c.Fields.ImageSeparator = ":"
	}
	if c.Fields.Zone == "" {
		c.Fields.Zone = "Zone"
	}
	if c.Fields.Bloom == "" {
		c.Fields.Bloom = "When it Blooms"
	}
	if c.Filters.Matchers == nil {
		c.Filters.Matchers = map[string]string{c.Fields.Zone: filter.MatchNumericRange}
	}
	if len(c.Search.TextFields) == 0 {
		c.Search.TextFields = []string{c.Fields.Name, c.Fields.Secondary}
	}
	if c.Search.AuxFields == nil {
		c.Search.AuxFields = []string{"Year(s) Sold"}
	}
	if c.Search.Limit == nil {
		limit := DefaultSearchLimit
		c.Search.Limit = &limit
	}
	if c.Site.Dir == "" {
		c.Site.Dir = "."
	}
	if c.Site.ImageDir == "" {
		c.Site.ImageDir = "images"
	}
	if c.Site.ImageExt == "" {
		c.Site.ImageExt = ".jpg"
	}
	if c.Site.Placeholder == "" {
		c.Site.Placeholder = path.Join(c.Site.ImageDir, "butterflies.jpg")
	}
	if c.Site.DetailPage == "" {
		c.Site.DetailPage = "plant-details.html"
	}
	if c.Selection.Store == "" {
		c.Selection.Store = StoreSQLite
	}
	if c.Selection.Path == "" {
		c.Selection.Path = "selections.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if utf8.RuneCountInString(c.Data.Delimiter) != 1 {
		return fmt.Errorf("%w: delimiter %q must be a single character", ErrInvalid, c.Data.Delimiter)
	}
	if c.Data.IDField == "" {
		return fmt.Errorf("%w: data.id_field is required", ErrInvalid)
	}
	if c.SearchLimit() < 0 {
		return fmt.Errorf("%w: search.limit must not be negative", ErrInvalid)
	}
	if _, err := c.MatcherFuncs(); err != nil {
		return err
	}
	switch c.Selection.Store {
	case StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("%w: unknown selection store %q", ErrInvalid, c.Selection.Store)
	}
	return nil
}

// SearchLimit returns the candidate cap, 0 meaning unlimited.
func (c Config) SearchLimit() int {
	if c.Search.Limit == nil {
		return DefaultSearchLimit
	}
	return *c.Search.Limit
}

// SlugFunc returns the identifier function selected by data.fold_accents.
func (c Config) SlugFunc() slug.Func {
	if c.Data.FoldAccents {
		return slug.MakeFoldedID
	}
	return slug.MakeID
}

// DelimiterRune returns the dataset delimiter.
func (c Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Data.Delimiter)
	return r
}

// MatcherFuncs resolves the configured matcher names.
func (c Config) MatcherFuncs() (map[string]filter.Matcher, error) {
	out := make(map[string]filter.Matcher, len(c.Filters.Matchers))
	for field, name := range c.Filters.Matchers {
		m, err := filter.MatcherByName(name)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrInvalid, field, err)
		}
		out[field] = m
	}
	return out, nil
}

// DetailLink builds the detail page link for an identifier.
func (c Config) DetailLink(id string) string {
	return c.Site.DetailPage + "?name=" + url.QueryEscape(id)
}
