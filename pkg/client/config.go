package client

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingAPIURL means WAITLIST_API_URL was found neither in the
// environment nor in the config file.
var ErrMissingAPIURL = errors.New("WAITLIST_API_URL is not set")

// Config is what the intake clients need to reach the API.
type Config struct {
	APIURL  string        `mapstructure:"WAITLIST_API_URL"`
	Timeout time.Duration `mapstructure:"WAITLIST_TIMEOUT"`
}

// LoadConfig reads WAITLIST_* settings from the environment, falling back to
// configFile (a .env file by default). Environment values win.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("WAITLIST_TIMEOUT", DefaultTimeout)
	_ = v.BindEnv("WAITLIST_API_URL")
	_ = v.BindEnv("WAITLIST_TIMEOUT")

	if configFile == "" {
		configFile = ".env"
	}
	v.SetConfigFile(configFile)
	// A missing file is fine; the environment may carry everything.
	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("client config %s: %w", configFile, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("client config: %w", err)
	}

	cfg.APIURL = strings.TrimSpace(cfg.APIURL)
	if cfg.APIURL == "" {
		return nil, ErrMissingAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &cfg, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// NewFromConfig builds a Client from cfg.
func NewFromConfig(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, ErrMissingAPIURL
	}
	return New(cfg.APIURL, WithTimeout(cfg.Timeout))
}
