package config

import (
	"context"
	"fmt"
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/models"
	"github.com/akeren/waitlist-api/pkg/constants"
	"gorm.io/gorm"
)

// AppConfig is the service-level configuration.
type AppConfig struct {
	SuccessMessage   string        `env:"WAITLIST_SUCCESS_MESSAGE" envDefault:"Thank you for joining the waitlist!"`
	StrictValidation bool          `env:"WAITLIST_STRICT_VALIDATION" envDefault:"true"`
	MembershipTTL    time.Duration `env:"WAITLIST_CACHE_TTL" envDefault:"24h"`
	HTTP             router.Config
}

// Settings is everything read from the environment at startup.
type Settings struct {
	Store   StoreConfig
	App     AppConfig
	Cache   CacheConfig
	Tracing TracingConfig
}

// LoadSettings parses the environment. A missing STORE_URL or
// STORE_SERVICE_KEY is an error.
func LoadSettings() (*Settings, error) {
	s, err := ParseEnv[Settings]()
	if err != nil {
		return nil, err
	}
	if s.App.SuccessMessage == "" {
		s.App.SuccessMessage = constants.DefaultSuccessMessage
	}
	if _, err := StoreDriver(s.Store.URL); err != nil {
		return nil, err
	}
	return s, nil
}

type ApplicationConfig struct {
	DB              *gorm.DB
	RouterService   *router.RouterService
	Logger          *log.Logger
	Cache           Cache
	Config          *AppConfig
	TracingShutdown func(context.Context) error
}

func shutdownTracing(logger *log.Logger, shutdown func(context.Context) error) {
	if shutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown tracer provider", "error", err)
	}
}

func (ac *ApplicationConfig) Cleanup() {
	shutdownTracing(ac.Logger, ac.TracingShutdown)

	if ac.DB != nil {
		CloseDatabase(ac.DB, ac.Logger)
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	if ac.Cache != nil {
		_ = CloseCache(ac.Cache, ac.Logger)
	}

	ac.Logger.Info("Application cleanup completed")
}

func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	settings, err := LoadSettings()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		return nil, err
	}

	if autoMigrate {
		appEnv := GetAppEnv()
		if err := ValidateAutoMigrateAllowed(appEnv); err != nil {
			return nil, err
		}
		if appEnv == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	tracingShutdown, err := SetupTracing(logger, &settings.Tracing)
	if err != nil {
		return nil, err
	}

	db, err := NewDatabase(logger, &settings.Store)
	if err != nil {
		shutdownTracing(logger, tracingShutdown)
		return nil, err
	}

	if autoMigrate {
		if err := AutoMigrate(logger, db, models.ModelRegistry...); err != nil {
			CloseDatabase(db, logger)
			shutdownTracing(logger, tracingShutdown)
			return nil, err
		}
	}

	cache := settings.Cache.NewCacheOrNil(logger)

	httpCfg := settings.App.HTTP
	if settings.Tracing.Enabled {
		httpCfg.TracingServiceName = settings.Tracing.ServiceName
	}
	routerService := router.CreateRouterService(logger, &httpCfg)

	logger.Info("Application configuration loaded successfully", "settings", settings.String())

	return &ApplicationConfig{
		DB:              db,
		RouterService:   routerService,
		Logger:          logger,
		Cache:           cache,
		Config:          &settings.App,
		TracingShutdown: tracingShutdown,
	}, nil
}

// String is safe to log: it never includes the service key.
func (s *Settings) String() string {
	return fmt.Sprintf("store=%s strict=%t cache=%t tracing=%t",
		s.Store.Redacted(), s.App.StrictValidation, s.Cache.IsConfigured(), s.Tracing.Enabled)
}
