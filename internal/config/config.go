// Package config loads service configuration from an optional YAML file
// and IROPS_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service.
type Config struct {
	Warehouse  WarehouseConfig
	Store      StoreConfig
	Agent      AgentConfig
	Compliance ComplianceConfig
	Log        LogConfig
}

// WarehouseConfig holds the analytics warehouse connection settings.
// Password is intentionally env-only; token auth is used when a session
// token file is present (container deployments).
type WarehouseConfig struct {
	Account   string
	User      string
	Password  string
	Host      string
	TokenPath string
	Warehouse string
	Database  string
	Schema    string
}

// StoreConfig holds the durable recovery-session store settings.
type StoreConfig struct {
	Path string
}

// AgentConfig holds the hosted-LLM assistant settings.
type AgentConfig struct {
	Model   string
	Enabled bool
}

// ComplianceConfig points at an optional duty-limit rulebook override.
type ComplianceConfig struct {
	RulesPath string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from config file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("warehouse.account", "")
	v.SetDefault("warehouse.user", "")
	v.SetDefault("warehouse.host", "")
	v.SetDefault("warehouse.token_path", "/snowflake/session/token")
	v.SetDefault("warehouse.warehouse", "PHANTOM_IROPS_WH")
	v.SetDefault("warehouse.database", "PHANTOM_IROPS")
	v.SetDefault("warehouse.schema", "ANALYTICS")
	v.SetDefault("store.path", "irops.db")
	v.SetDefault("agent.model", "claude-3-5-sonnet")
	v.SetDefault("agent.enabled", true)
	v.SetDefault("compliance.rules_path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/irops")
	v.AddConfigPath(".")

	if configPath := os.Getenv("IROPS_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine; defaults plus env vars apply.
	}

	v.SetEnvPrefix("IROPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Warehouse: WarehouseConfig{
			Account:   v.GetString("warehouse.account"),
			User:      v.GetString("warehouse.user"),
			Password:  v.GetString("warehouse.password"),
			Host:      v.GetString("warehouse.host"),
			TokenPath: v.GetString("warehouse.token_path"),
			Warehouse: v.GetString("warehouse.warehouse"),
			Database:  v.GetString("warehouse.database"),
			Schema:    v.GetString("warehouse.schema"),
		},
		Store: StoreConfig{
			Path: v.GetString("store.path"),
		},
		Agent: AgentConfig{
			Model:   v.GetString("agent.model"),
			Enabled: v.GetBool("agent.enabled"),
		},
		Compliance: ComplianceConfig{
			RulesPath: v.GetString("compliance.rules_path"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	return nil
}
