package config

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vango-dev/listkit/internal/errors"
	"github.com/vango-dev/listkit/pkg/paging"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "listkit.json"

	// DefaultPort is the default serve port.
	DefaultPort = 3000

	// DefaultHost is the default serve host.
	DefaultHost = "localhost"

	// DefaultSpanCount is the default number of grid columns.
	DefaultSpanCount = 2

	// DefaultWidth is the default grid width in cells.
	DefaultWidth = 80

	// DefaultPageSize is the default paging page size.
	DefaultPageSize = 20

	// DefaultTick is the default interval between demo list changes.
	DefaultTick = "1s"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "listkit"
)

// Config represents the complete listkit.json configuration.
type Config struct {
	// Grid contains terminal grid configuration.
	Grid GridConfig `json:"grid,omitempty"`

	// Paging contains paged source configuration.
	Paging PagingConfig `json:"paging,omitempty"`

	// Serve contains WebSocket server configuration.
	Serve ServeConfig `json:"serve,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// GridConfig contains terminal grid settings.
type GridConfig struct {
	// SpanCount is the number of columns.
	SpanCount int `json:"spanCount,omitempty"`

	// Width is the total grid width in cells.
	Width int `json:"width,omitempty"`
}

// PagingConfig contains paged source settings.
type PagingConfig struct {
	// PageSize is the number of items per page.
	PageSize int `json:"pageSize,omitempty"`

	// InitialLoadSize is the size of the first page (default: 3 * PageSize).
	InitialLoadSize int `json:"initialLoadSize,omitempty"`

	// PrefetchDistance is how close to the end an access loads the next page.
	PrefetchDistance int `json:"prefetchDistance,omitempty"`

	// Placeholders pads unloaded pages with placeholder rows.
	Placeholders bool `json:"placeholders,omitempty"`
}

// ServeConfig contains WebSocket server settings.
type ServeConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Tick is the interval between list changes (e.g., "500ms").
	Tick string `json:"tick,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from the specified directory.
// It looks for listkit.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadOrDefault is Load, returning defaults when the file does not exist.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if stderrors.Is(err, errors.Sentinel("E141")) {
		return New(), nil
	}
	return cfg, err
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No listkit.json found in " + filepath.Dir(path)).
				WithSuggestion("Create listkit.json or run without a config to use defaults")
		}
		return nil, errors.New("E140").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E140").
			WithDetail("Failed to parse listkit.json: " + err.Error()).
			WithSuggestion("Check that listkit.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E140").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E140").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Grid.SpanCount == 0 {
		c.Grid.SpanCount = DefaultSpanCount
	}
	if c.Grid.Width == 0 {
		c.Grid.Width = DefaultWidth
	}

	if c.Paging.PageSize == 0 {
		c.Paging.PageSize = DefaultPageSize
	}

	if c.Serve.Host == "" {
		c.Serve.Host = DefaultHost
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = DefaultPort
	}
	if c.Serve.Tick == "" {
		c.Serve.Tick = DefaultTick
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return errors.New("E142").
			WithDetail("serve.port must be between 0 and 65535")
	}
	if c.Grid.SpanCount < 1 {
		return errors.New("E142").
			WithDetailf("grid.spanCount must be at least 1, got %d", c.Grid.SpanCount)
	}
	if c.Grid.Width < c.Grid.SpanCount {
		return errors.New("E142").
			WithDetailf("grid.width %d is narrower than %d columns", c.Grid.Width, c.Grid.SpanCount)
	}
	if d, err := time.ParseDuration(c.Serve.Tick); err != nil || d <= 0 {
		return errors.New("E142").
			WithDetailf("serve.tick %q is not a positive duration", c.Serve.Tick).
			WithSuggestion(`Use a Go duration such as "500ms" or "2s"`)
	}
	if err := c.PagingConfig().Validate(); err != nil {
		return errors.New("E142").WithDetail("paging").Wrap(err)
	}
	return nil
}

// PagingConfig converts the paging section for paging.NewPager.
func (c *Config) PagingConfig() paging.Config {
	return paging.Config{
		PageSize:           c.Paging.PageSize,
		InitialLoadSize:    c.Paging.InitialLoadSize,
		PrefetchDistance:   c.Paging.PrefetchDistance,
		EnablePlaceholders: c.Paging.Placeholders,
	}
}

// TickInterval returns the parsed serve tick, or one second if invalid.
func (c *Config) TickInterval() time.Duration {
	d, err := time.ParseDuration(c.Serve.Tick)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// ServeAddress returns the address string for the server.
func (c *Config) ServeAddress() string {
	return c.Serve.Host + ":" + strconv.Itoa(c.Serve.Port)
}

// ServeURL returns the full URL for the server.
func (c *Config) ServeURL() string {
	return "http://" + c.ServeAddress()
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
