package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the moneyd configuration.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Money  MoneyConfig  `mapstructure:"money"`
}

// AppConfig identifies the running service.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"` // development, production
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int             `mapstructure:"port"`
	ReadTimeout     time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig configures the per-client request limiter.
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Rate    float64       `mapstructure:"rate"`     // requests per second
	Burst   int           `mapstructure:"burst"`    // burst capacity
	IdleTTL time.Duration `mapstructure:"idle_ttl"` // idle clients are forgotten after this
}

// LogConfig configures the service logger.
type LogConfig struct {
	Level    string `mapstructure:"level"`  // debug, info, warn, error
	Format   string `mapstructure:"format"` // json, console
	Output   string `mapstructure:"output"` // stdout, file
	FilePath string `mapstructure:"file_path"`
}

// MoneyConfig lists the locales the service can render and parse.
type MoneyConfig struct {
	DefaultLocale   string               `mapstructure:"default_locale"`
	Locales         []string             `mapstructure:"locales"` // BCP 47 tags, optionally "tag:ISO"
	Custom          []CustomLocaleConfig `mapstructure:"custom"`
	MaxInstallments int                  `mapstructure:"max_installments"`
}

// CustomLocaleConfig declares a locale by its punctuation.
// Pattern lists four of none, space, symbol, sign and value.
type CustomLocaleConfig struct {
	Name         string   `mapstructure:"name"`
	DecimalPoint string   `mapstructure:"decimal_point"`
	ThousandsSep string   `mapstructure:"thousands_sep"`
	Grouping     []int    `mapstructure:"grouping"`
	Symbol       string   `mapstructure:"symbol"`
	IntlSymbol   string   `mapstructure:"intl_symbol"`
	PositiveSign string   `mapstructure:"positive_sign"`
	NegativeSign string   `mapstructure:"negative_sign"`
	FracDigits   int      `mapstructure:"frac_digits"`
	PosPattern   []string `mapstructure:"pos_pattern"`
	NegPattern   []string `mapstructure:"neg_pattern"`
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Validate checks values that viper cannot type-check.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Money.DefaultLocale == "" {
		errs = append(errs, errors.New("money.default_locale is empty"))
	}
	if c.Money.MaxInstallments <= 0 {
		errs = append(errs, fmt.Errorf("money.max_installments must be positive, got %d", c.Money.MaxInstallments))
	}
	if c.Log.Output == "file" && c.Log.FilePath == "" {
		errs = append(errs, errors.New("log.file_path is empty"))
	}
	for i, l := range c.Money.Custom {
		if l.Name == "" {
			errs = append(errs, fmt.Errorf("money.custom[%d].name is empty", i))
		}
	}
	return errors.Join(errs...)
}

// Load reads the configuration from configPath, or from config.yaml in the
// working directory or ./config when configPath is empty.
// Environment variables prefixed with MONEYD_ override file values,
// e.g. MONEYD_SERVER_PORT=9090.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("MONEYD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Defaults only
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "moneyd")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.env", "development")

	// Server
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.rate", 50)
	v.SetDefault("server.rate_limit.burst", 100)
	v.SetDefault("server.rate_limit.idle_ttl", "10m")

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "logs/moneyd.log")

	// Money
	v.SetDefault("money.default_locale", "en-US")
	v.SetDefault("money.locales", []string{"en-US", "en-GB", "de-DE", "fr-FR", "ja-JP"})
	v.SetDefault("money.max_installments", 120)
}
