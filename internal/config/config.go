// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads biobesu settings from a YAML file, BIOBESU_*
// environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/molgenis/biobesu/pkg/types"
)

const (
	// EnvPrefix prefixes every environment override, e.g. BIOBESU_JAVA_BIN.
	EnvPrefix = "BIOBESU"

	// FileName is the config file base name searched for when no explicit
	// path is given.
	FileName = "biobesu"
)

// Validate checks all configuration invariants and reports every
// violation at once.
func Validate(c types.Config) error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateHTTP(c.HTTP); err != nil {
		errs = append(errs, err.Error())
	}
	if strings.TrimSpace(c.Java.Bin) == "" {
		errs = append(errs, "java.bin must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l types.LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateHTTP(h types.HTTPConfig) error {
	var errs []string
	if h.Timeout <= 0 {
		errs = append(errs, fmt.Sprintf("http.timeout must be positive, got %s", h.Timeout))
	}
	if h.UserAgent == "" {
		errs = append(errs, "http.user_agent must not be empty")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// New returns a viper instance with defaults, env overrides and the config
// search path set up. When path is empty, biobesu.yaml is looked up in the
// working directory and in ~/.config/biobesu.
func New(path string) *viper.Viper {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	return v
}

// Load reads the configuration file, applies environment overrides and
// validates the result. A missing file is only an error when path was
// given explicitly.
func Load(path string) (types.Config, error) {
	v := New(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper builds a Config from an already-configured viper instance.
func FromViper(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// SetDefaults registers the default for every known key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("http.timeout", "30m")
	v.SetDefault("http.user_agent", "biobesu (https://github.com/molgenis/biobesu)")

	v.SetDefault("java.bin", "java")
}
