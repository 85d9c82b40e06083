// Package config loads the settings of the radioitems demo server.
//
// Load starts from Defaults, merges an optional config file named by
// RADIOITEMS_CONFIG, then RADIOITEMS_* environment overrides, and validates
// the result.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RADIOITEMS_ADDR.
const EnvPrefix = "RADIOITEMS"

// Config is the demo server configuration.
type Config struct {
	Addr        string `mapstructure:"addr"`
	Prefix      string `mapstructure:"prefix"`
	JWTSecret   string `mapstructure:"jwt_secret"`
	OptionsFile string `mapstructure:"options_file"`
	AssetsDir   string `mapstructure:"assets_dir"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`

	// CORSOrigins enables CORS for the listed origins; empty disables it.
	CORSOrigins []string `mapstructure:"cors_origins"`

	// SelectRate limits selections per client and second; 0 disables it.
	SelectRate  float64 `mapstructure:"select_rate"`
	SelectBurst int     `mapstructure:"select_burst"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Addr:        ":8080",
		Prefix:      "/radio",
		LogLevel:    "info",
		SelectBurst: 10,
	}
}

// Load merges defaults, the optional config file and the environment.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.BindEnv("config"); err != nil {
		return nil, err
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.CORSOrigins = compact(cfg.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv overrides reach Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("addr", d.Addr)
	v.SetDefault("prefix", d.Prefix)
	v.SetDefault("jwt_secret", d.JWTSecret)
	v.SetDefault("options_file", d.OptionsFile)
	v.SetDefault("assets_dir", d.AssetsDir)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("select_rate", d.SelectRate)
	v.SetDefault("select_burst", d.SelectBurst)
}

// compact trims list entries split from "a, b," and drops empty ones.
func compact(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if !strings.HasPrefix(c.Prefix, "/") {
		return fmt.Errorf("prefix %q must start with /", c.Prefix)
	}
	if c.SelectRate < 0 {
		return fmt.Errorf("select rate %v must not be negative", c.SelectRate)
	}
	if c.SelectRate > 0 && c.SelectBurst < 1 {
		return fmt.Errorf("select burst %d must be at least 1", c.SelectBurst)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
