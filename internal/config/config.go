// Package config loads application settings: storage location, mentor
// endpoint, catalog override and reflection timing. Values come from an
// optional ~/.mentme.yaml plus MENTME_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Storage struct {
	Path      string `mapstructure:"path"`
	Namespace string `mapstructure:"namespace"`
}

type Mentor struct {
	Endpoint       string `mapstructure:"endpoint"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type Catalog struct {
	Path string `mapstructure:"path"`
}

type Reflection struct {
	Hour int `mapstructure:"hour"`
}

type Config struct {
	Storage    Storage    `mapstructure:"storage"`
	Mentor     Mentor     `mapstructure:"mentor"`
	Catalog    Catalog    `mapstructure:"catalog"`
	Reflection Reflection `mapstructure:"reflection"`
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "mentme.db"
	}
	return filepath.Join(home, ".mentme", "mentme.db")
}

// Load reads configuration with defaults, then the optional config file,
// then environment overrides.
func Load() (Config, error) {
	return load("")
}

// LoadFrom reads configuration from an explicit file. Test hook.
func LoadFrom(path string) (Config, error) {
	return load(path)
}

func load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("storage.path", defaultStoragePath())
	v.SetDefault("storage.namespace", "default")
	v.SetDefault("mentor.endpoint", "http://localhost:8787/v1/chat")
	v.SetDefault("mentor.timeout_seconds", 120)
	v.SetDefault("catalog.path", "")
	v.SetDefault("reflection.hour", 19)

	v.SetEnvPrefix("MENTME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		v.SetConfigName(".mentme")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: read: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.Reflection.Hour < 0 || cfg.Reflection.Hour > 23 {
		return Config{}, fmt.Errorf("config: reflection.hour %d out of range", cfg.Reflection.Hour)
	}
	return cfg, nil
}
