package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Runtime environments. They select the log level and format.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// DatabaseConfig holds the local SQLite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// TenantConfig identifies whose tasks this instance serves.
type TenantConfig struct {
	CompanyCode string `mapstructure:"company_code" yaml:"company_code"`
	EmployeeID  string `mapstructure:"employee_id" yaml:"employee_id"`

	// Scope is "mine" (assigned to the employee) or "created"
	// (created by the employee for someone else).
	Scope string `mapstructure:"scope" yaml:"scope"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// SweeperConfig controls the completed-task purge schedule.
type SweeperConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Schedule string `mapstructure:"schedule" yaml:"schedule"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Env      string         `mapstructure:"env" yaml:"env"`
	LogFile  string         `mapstructure:"log_file" yaml:"log_file"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Tenant   TenantConfig   `mapstructure:"tenant" yaml:"tenant"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Sweeper  SweeperConfig  `mapstructure:"sweeper" yaml:"sweeper"`
}

// configDir returns ~/.config/loopwork, or the working directory when the
// home directory cannot be resolved.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "loopwork")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/loopwork/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Env: EnvLocal,
		Database: DatabaseConfig{
			Path: filepath.Join(configDir(), "loopwork.db"),
		},
		Tenant: TenantConfig{
			Scope: "mine",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Sweeper: SweeperConfig{
			Enabled:  true,
			Schedule: "@every 1h",
		},
	}
}

func setDefaults(v *viper.Viper, cfg *AppConfig) {
	v.SetDefault("env", cfg.Env)
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("tenant.company_code", cfg.Tenant.CompanyCode)
	v.SetDefault("tenant.employee_id", cfg.Tenant.EmployeeID)
	v.SetDefault("tenant.scope", cfg.Tenant.Scope)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("sweeper.enabled", cfg.Sweeper.Enabled)
	v.SetDefault("sweeper.schedule", cfg.Sweeper.Schedule)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with LOOPWORK_ override file values
// (LOOPWORK_TENANT_COMPANY_CODE, LOOPWORK_SERVER_ADDR, ...).
// If the file does not exist, defaults plus environment are returned.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("LOOPWORK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, defaultAppConfig())

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *AppConfig) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}
	switch c.Tenant.Scope {
	case "mine", "created":
	default:
		return fmt.Errorf("unknown tenant scope %q", c.Tenant.Scope)
	}
	if c.Database.Path == "" {
		return errors.New("database.path must not be empty")
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("env", cfg.Env)
	v.Set("log_file", cfg.LogFile)
	v.Set("database", cfg.Database)
	v.Set("tenant", cfg.Tenant)
	v.Set("server", cfg.Server)
	v.Set("sweeper", cfg.Sweeper)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
