package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/robalyx/modlog/internal/endpoint"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
	ErrInvalidPageURL        = errors.New("invalid page url")
)

// RepositoryVersion is the repository version tag for config file references.
const RepositoryVersion = "v1.0.0"

// CurrentVersion is the current version of the config file.
const CurrentVersion = 1

// FileName is the name of the config file looked up in every search path.
const FileName = "modlog.toml"

// EnvPrefix is the prefix of every environment variable the config reads.
const EnvPrefix = "MODLOG_"

// envKeys maps environment variables onto config keys.
var envKeys = map[string]string{
	"MODLOG_API_URL":      "api.build_url",
	"MODLOG_PAGE_URL":     "api.page_url",
	"MODLOG_LOG_LEVEL":    "debug.log_level",
	"MODLOG_LOG_DIR":      "debug.log_dir",
	"MODLOG_LANG":         "dashboard.language",
	"MODLOG_UPTRACE_DSN":  "telemetry.uptrace_dsn",
	"MODLOG_SERVICE_NAME": "telemetry.service_name",
}

// Config represents the entire application configuration.
type Config struct {
	// Version of the config file.
	Version   int       `koanf:"version"`
	API       API       `koanf:"api"`
	Debug     Debug     `koanf:"debug"`
	Dashboard Dashboard `koanf:"dashboard"`
	Telemetry Telemetry `koanf:"telemetry"`
}

// API contains the inputs of API base resolution.
type API struct {
	// Runtime base URL, takes precedence over everything else.
	BaseURL string `koanf:"base_url"`
	// Build-time override, normally supplied through MODLOG_API_URL.
	BuildURL string `koanf:"build_url"`
	// Location the viewer is opened from, used by the host heuristic.
	PageURL string `koanf:"page_url"`
	// Port of the API on development hosts.
	DevPort int `koanf:"dev_port"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Maximum log sessions to keep.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
	// Maximum lines per log file.
	MaxLogLines int `koanf:"max_log_lines"`
	// Directory log sessions are written to.
	LogDir string `koanf:"log_dir"`
}

// Dashboard contains terminal dashboard configuration.
type Dashboard struct {
	// Countdown refresh interval in milliseconds.
	TickInterval int `koanf:"tick_interval"`
	// Display language (en, uz).
	Language string `koanf:"language"`
}

// Telemetry contains trace export configuration.
type Telemetry struct {
	// Uptrace DSN, export is disabled when empty.
	UptraceDSN string `koanf:"uptrace_dsn"`
	// Service name reported with traces.
	ServiceName string `koanf:"service_name"`
}

// Options controls where LoadConfig looks for its inputs.
type Options struct {
	// Explicit config file path. When set the file must exist.
	Path string
	// Directories searched for FileName when Path is empty.
	SearchPaths []string
	// Dotenv files loaded into the environment before reading it. Missing files are skipped.
	EnvFiles []string
}

// DefaultSearchPaths returns the directories searched for the config file.
func DefaultSearchPaths() []string {
	paths := []string{".modlog"}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".modlog", "config"))
	}

	return append(paths, "/etc/modlog/config", "config", ".")
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		API: API{
			PageURL: "http://localhost/",
			DevPort: endpoint.DevPort,
		},
		Debug: Debug{
			LogLevel:      "info",
			MaxLogsToKeep: 10,
			MaxLogLines:   10000,
			LogDir:        "logs",
		},
		Dashboard: Dashboard{
			TickInterval: 1000,
			Language:     "en",
		},
		Telemetry: Telemetry{
			ServiceName: "modlog",
		},
	}
}

// LoadConfig loads the configuration from the config file, dotenv files and the environment.
// A missing config file is not an error unless Options.Path names it explicitly.
// Returns the config along with the directory the config file was found in.
func LoadConfig(opts Options) (*Config, string, error) {
	k := koanf.New(".")

	usedConfigPath, err := loadFile(k, opts)
	if err != nil {
		return nil, "", err
	}

	// Dotenv files never override variables that are already set
	for _, envFile := range opts.EnvFiles {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, "", fmt.Errorf("error loading environment: %w", err)
	}

	config := Default()
	if usedConfigPath != "" {
		config.Version = 0
	}

	if err := k.Unmarshal("", config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if usedConfigPath != "" {
		if err := checkConfigVersion(config.Version, CurrentVersion); err != nil {
			return nil, "", err
		}
	}

	config.applyDefaults()

	return config, usedConfigPath, nil
}

// loadFile loads the first config file found and returns its directory.
func loadFile(k *koanf.Koanf, opts Options) (string, error) {
	if opts.Path != "" {
		if _, err := os.Stat(opts.Path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, opts.Path)
		}

		if err := k.Load(file.Provider(opts.Path), toml.Parser()); err != nil {
			return "", fmt.Errorf("error loading %s: %w", opts.Path, err)
		}

		return filepath.Dir(opts.Path), nil
	}

	searchPaths := opts.SearchPaths
	if searchPaths == nil {
		searchPaths = DefaultSearchPaths()
	}

	for _, path := range searchPaths {
		configPath := filepath.Join(path, FileName)
		if _, err := os.Stat(configPath); err != nil {
			continue
		}

		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return "", fmt.Errorf("error loading %s: %w", configPath, err)
		}

		return path, nil
	}

	return "", nil
}

// applyDefaults fills settings a config file left empty.
func (c *Config) applyDefaults() {
	defaults := Default()

	if c.API.PageURL == "" {
		c.API.PageURL = defaults.API.PageURL
	}

	if c.API.DevPort <= 0 {
		c.API.DevPort = defaults.API.DevPort
	}

	if c.Debug.LogLevel == "" {
		c.Debug.LogLevel = defaults.Debug.LogLevel
	}

	if c.Debug.MaxLogsToKeep <= 0 {
		c.Debug.MaxLogsToKeep = defaults.Debug.MaxLogsToKeep
	}

	if c.Debug.MaxLogLines <= 0 {
		c.Debug.MaxLogLines = defaults.Debug.MaxLogLines
	}

	if c.Debug.LogDir == "" {
		c.Debug.LogDir = defaults.Debug.LogDir
	}

	if c.Dashboard.TickInterval <= 0 {
		c.Dashboard.TickInterval = defaults.Dashboard.TickInterval
	}

	if c.Dashboard.Language == "" {
		c.Dashboard.Language = defaults.Dashboard.Language
	}

	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = defaults.Telemetry.ServiceName
	}
}

// Sources returns the endpoint resolver inputs described by the API section.
func (a *API) Sources() (endpoint.Sources, error) {
	src := endpoint.Sources{
		Runtime: a.BaseURL,
		Build:   a.BuildURL,
		DevPort: a.DevPort,
	}

	if strings.TrimSpace(a.PageURL) == "" {
		return src, nil
	}

	page, err := url.Parse(a.PageURL)
	if err != nil {
		return endpoint.Sources{}, fmt.Errorf("%w: %w", ErrInvalidPageURL, err)
	}

	src.Page = page

	return src, nil
}

// Interval returns the countdown refresh interval.
func (d *Dashboard) Interval() time.Duration {
	return time.Duration(d.TickInterval) * time.Millisecond
}

// checkConfigVersion checks if the config file version is correct.
func checkConfigVersion(current, expected int) error {
	if current == 0 {
		return fmt.Errorf("%w: %s", ErrConfigVersionMissing, FileName)
	}

	if current != expected {
		return fmt.Errorf(
			"%w: %s (got: %d, expected: %d)\n"+
				"Please update your config file from: https://github.com/robalyx/modlog/tree/%s/config/%s",
			ErrConfigVersionMismatch,
			FileName,
			current,
			expected,
			RepositoryVersion,
			FileName,
		)
	}

	return nil
}
