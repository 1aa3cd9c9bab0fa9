// Package config provides configuration management for the advisory
// application.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"stock-advisor/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Advisory AdvisoryConfig `mapstructure:"advisory"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr    string `mapstructure:"addr"`
	Metrics bool   `mapstructure:"metrics"`
}

// DatabaseConfig holds persistence configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// AdvisoryConfig holds the advisory engine parameters.
type AdvisoryConfig struct {
	ShortPeriod       int     `mapstructure:"short_period"`
	LongPeriod        int     `mapstructure:"long_period"`
	OscillatorPeriod  int     `mapstructure:"oscillator_period"`
	ProfitTakingRate  float64 `mapstructure:"profit_taking_rate"`
	RiskControlRate   float64 `mapstructure:"risk_control_rate"`
	VolatilityCeiling float64 `mapstructure:"volatility_ceiling"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/stock-advisor"
	}
	return filepath.Join(home, ".config", "stock-advisor")
}

// Load loads configuration from the specified directory. If configDir is
// empty, the default config directory is used; a missing config file is
// replaced with a generated template plus defaults.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		if err := writeTemplate(configDir); err != nil {
			return nil, fmt.Errorf("creating config template: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.metrics", true)
	v.SetDefault("database.path", filepath.Join(configDir, "advisor.db"))
	v.SetDefault("advisory.short_period", 5)
	v.SetDefault("advisory.long_period", 20)
	v.SetDefault("advisory.oscillator_period", 14)
	v.SetDefault("advisory.profit_taking_rate", 20.0)
	v.SetDefault("advisory.risk_control_rate", -20.0)
	v.SetDefault("advisory.volatility_ceiling", 0.5)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 7)
	v.SetDefault("logging.max_age", 30)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STOCK_ADVISOR_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("STOCK_ADVISOR_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("STOCK_ADVISOR_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Advisory.ShortPeriod <= 0 || c.Advisory.LongPeriod <= 0 || c.Advisory.OscillatorPeriod <= 0 {
		return errors.Wrap(errors.ErrConfigInvalid, "advisory periods must be positive")
	}
	if c.Advisory.ShortPeriod >= c.Advisory.LongPeriod {
		return errors.Wrap(errors.ErrConfigInvalid, "short_period must be less than long_period")
	}
	if c.Advisory.VolatilityCeiling <= 0 {
		return errors.Wrap(errors.ErrConfigInvalid, "volatility_ceiling must be positive")
	}
	if c.Database.Path == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "database path must be set")
	}
	return nil
}

const configTemplate = `# stock-advisor configuration

[server]
addr = ":8080"
metrics = true

[database]
# path = "~/.config/stock-advisor/advisor.db"

[advisory]
short_period = 5
long_period = 20
oscillator_period = 14
profit_taking_rate = 20.0
risk_control_rate = -20.0
volatility_ceiling = 0.5

[logging]
level = "info"
console = true
file = true
max_size = 100
max_backups = 7
max_age = 30
`

func writeTemplate(configDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0o644)
}
