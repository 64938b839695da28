package config

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// StoreConfig locates the waitlist store. URL and ServiceKey are both
// required; the process must not start without them.
type StoreConfig struct {
	URL             string        `env:"STORE_URL,required,notEmpty"`
	ServiceKey      string        `env:"STORE_SERVICE_KEY,required,notEmpty"`
	SSLMode         string        `env:"STORE_SSLMODE" envDefault:"require"`
	MaxIdleConns    int           `env:"STORE_MAX_IDLE_CONNS" envDefault:"10"`
	MaxOpenConns    int           `env:"STORE_MAX_OPEN_CONNS" envDefault:"100"`
	ConnMaxLifetime time.Duration `env:"STORE_CONN_MAX_LIFETIME" envDefault:"1m"`
}

var ErrUnsupportedStore = errors.New("unsupported STORE_URL scheme (want postgres://, postgresql://, sqlite:// or file:)")

// StoreDriver names the SQL driver for a store URL.
func StoreDriver(rawURL string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(rawURL))
	switch {
	case strings.HasPrefix(s, "postgres://"), strings.HasPrefix(s, "postgresql://"):
		return DriverPostgres, nil
	case strings.HasPrefix(s, "sqlite://"), strings.HasPrefix(s, "file:"):
		return DriverSQLite, nil
	default:
		return "", ErrUnsupportedStore
	}
}

// DSN turns the store URL into a driver DSN. For Postgres the service key
// becomes the password unless the URL already carries one.
func (cfg *StoreConfig) DSN() (string, error) {
	driver, err := StoreDriver(cfg.URL)
	if err != nil {
		return "", err
	}

	raw := strings.TrimSpace(cfg.URL)
	if driver == DriverSQLite {
		if strings.HasPrefix(strings.ToLower(raw), "sqlite://") {
			return raw[len("sqlite://"):], nil
		}
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid STORE_URL: %w", err)
	}
	if u.Host == "" {
		return "", errors.New("invalid STORE_URL: missing host")
	}

	username := "postgres"
	if u.User != nil && u.User.Username() != "" {
		username = u.User.Username()
	}
	if _, hasPassword := u.User.Password(); !hasPassword {
		u.User = url.UserPassword(username, cfg.ServiceKey)
	}

	q := u.Query()
	if q.Get("sslmode") == "" && cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// Redacted is the store URL with any password hidden, for logs.
func (cfg *StoreConfig) Redacted() string {
	u, err := url.Parse(strings.TrimSpace(cfg.URL))
	if err != nil || u.Scheme == "" {
		return "<unparseable>"
	}
	return u.Redacted()
}

func NewDatabase(logger *log.Logger, cfg *StoreConfig) (*gorm.DB, error) {
	if cfg == nil {
		return nil, errors.New("store configuration is missing")
	}

	driver, err := StoreDriver(cfg.URL)
	if err != nil {
		logger.Error("Unsupported store URL", "store", cfg.Redacted())
		return nil, err
	}

	dsn, err := cfg.DSN()
	if err != nil {
		logger.Error("Invalid store URL", "error", err)
		return nil, err
	}

	var dialector gorm.Dialector
	if driver == DriverPostgres {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError:       true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Error("Failed to connect to database", "driver", driver, "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Error("Failed to get database instance", "error", err)
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	if driver == DriverSQLite && strings.Contains(dsn, ":memory:") {
		// Each connection to :memory: is its own database.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	if err := pingOrClose(sqlDB); err != nil {
		logger.Error("Database ping failed", "error", err)
		return nil, err
	}

	logger.Info("Database connection established successfully", "driver", driver, "store", cfg.Redacted())
	return gdb, nil
}

// pingOrClose closes the pool when the first ping fails.
func pingOrClose(sqlDB *sql.DB) error {
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func AutoMigrate(logger *log.Logger, db *gorm.DB, models ...interface{}) error {
	if db == nil {
		logger.Error("Cannot migrate: db is empty")
		return fmt.Errorf("cannot migrate: db is empty")
	}

	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Database migration failed", "error", err)
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	logger.Info("Database migration completed successfully")

	return nil
}

func CloseDatabase(db *gorm.DB, logger *log.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get SQL DB instance", "error", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	} else {
		logger.Info("Database closed successfully")
	}
}
