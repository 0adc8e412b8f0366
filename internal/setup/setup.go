package setup

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/robalyx/modlog/internal/endpoint"
	"github.com/robalyx/modlog/internal/engine"
	"github.com/robalyx/modlog/internal/fetcher"
	"github.com/robalyx/modlog/internal/i18n"
	"github.com/robalyx/modlog/internal/setup/config"
	"github.com/robalyx/modlog/internal/setup/telemetry"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Version is the application version reported with traces.
var Version = "dev"

// Overrides are command line values that take precedence over the config file.
type Overrides struct {
	ConfigPath string // Explicit config file
	APIURL     string // Runtime API base
	PageURL    string // Page location for the host heuristic
	Language   string // Display language
	LogLevel   string // Log level
}

// App bundles all core dependencies and services needed by the application.
type App struct {
	Config     *config.Config     // Application configuration
	Logger     *zap.Logger        // Main application logger
	LogManager *telemetry.Manager // Log management system
	Endpoint   endpoint.Resolved  // Resolved API base
	HTTPClient *http.Client       // Client every API request goes through
	Engine     *engine.Engine     // Record loading and derivation
	Labels     *i18n.Labels       // Display strings for the configured language
	tracing    bool               // Whether trace export was configured
}

// InitializeApp bootstraps all application dependencies in the correct order.
// Nothing is set up once ctx is done, and ctx bounds the teardown of a failed setup.
func InitializeApp(ctx context.Context, overrides Overrides) (*App, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, configDir, err := config.LoadConfig(config.Options{
		Path:     overrides.ConfigPath,
		EnvFiles: []string{".env"},
	})
	if err != nil {
		return nil, err
	}

	applyOverrides(cfg, overrides)

	// Logging system is initialized next to capture setup issues
	logManager := telemetry.NewManager(&cfg.Debug)

	logger, err := logManager.GetLogger()
	if err != nil {
		_ = logManager.Close()
		return nil, err
	}

	if configDir != "" {
		logger.Info("Loaded config", zap.String("dir", configDir))
	} else {
		logger.Info("No config file found, using defaults")
	}

	// Trace export is optional
	tracing := false
	if cfg.Telemetry.UptraceDSN != "" {
		uptrace.ConfigureOpentelemetry(
			uptrace.WithDSN(cfg.Telemetry.UptraceDSN),
			uptrace.WithServiceName(cfg.Telemetry.ServiceName),
			uptrace.WithServiceVersion(Version),
			uptrace.WithResourceAttributes(
				attribute.String("service.instance.id", logManager.GetInstanceID()),
			),
		)
		tracing = true
	}

	sources, err := cfg.API.Sources()
	if err != nil {
		abort(ctx, logger, logManager, tracing)
		return nil, fmt.Errorf("failed to resolve API base: %w", err)
	}

	resolved := endpoint.ResolveDetailed(sources)
	logger.Info("Resolved API base",
		zap.String("base", resolved.Base),
		zap.Bool("build_override", resolved.BuildOverride),
		zap.String("session_dir", logManager.GetCurrentSessionDir()))

	httpClient := &http.Client{}
	f := fetcher.New(httpClient, resolved, logger)

	return &App{
		Config:     cfg,
		Logger:     logger,
		LogManager: logManager,
		Endpoint:   resolved,
		HTTPClient: httpClient,
		Engine:     engine.New(f, logger),
		Labels:     i18n.For(cfg.Dashboard.Language),
		tracing:    tracing,
	}, nil
}

// Cleanup ensures graceful shutdown of all components in reverse initialization order.
// Logs but does not fail on cleanup errors to ensure all components get cleanup attempts.
func (s *App) Cleanup(ctx context.Context) {
	if s.tracing {
		if err := uptrace.Shutdown(ctx); err != nil {
			s.Logger.Error("Failed to shutdown trace exporter", zap.Error(err))
		}
	}

	s.HTTPClient.CloseIdleConnections()

	// Sync buffered logs before shutdown
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.LogManager.Close(); err != nil {
		log.Printf("Failed to close log files: %v", err)
	}
}

// abort releases what a failed InitializeApp already set up.
func abort(ctx context.Context, logger *zap.Logger, logManager *telemetry.Manager, tracing bool) {
	if tracing {
		if err := uptrace.Shutdown(ctx); err != nil {
			logger.Error("Failed to shutdown trace exporter", zap.Error(err))
		}
	}

	_ = logger.Sync()
	_ = logManager.Close()
}

// applyOverrides copies non-empty command line values onto the config.
func applyOverrides(cfg *config.Config, o Overrides) {
	if o.APIURL != "" {
		cfg.API.BaseURL = o.APIURL
	}

	if o.PageURL != "" {
		cfg.API.PageURL = o.PageURL
	}

	if o.Language != "" {
		cfg.Dashboard.Language = o.Language
	}

	if o.LogLevel != "" {
		cfg.Debug.LogLevel = o.LogLevel
	}
}
