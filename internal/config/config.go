// Package config loads the service configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is not set.
const DefaultPath = "config.yaml"

// Config holds everything main needs to wire the service.
type Config struct {
	Server struct {
		Host          string        `yaml:"host" validate:"required"`
		Port          string        `yaml:"port" validate:"required,startswith=:"`
		Prefork       bool          `yaml:"prefork"`
		EnableMonitor bool          `yaml:"enable_monitor"`
		ReadTimeout   time.Duration `yaml:"read_timeout" validate:"gte=0"`
		WriteTimeout  time.Duration `yaml:"write_timeout" validate:"gte=0"`
	} `yaml:"server"`

	Logger struct {
		File       string `yaml:"file"`
		Level      string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
		MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
		MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
		MaxAgeDays int    `yaml:"max_age_days" validate:"gte=0"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"logger"`

	Icons struct {
		Dir      string `yaml:"dir" validate:"required"`
		MaxBytes int64  `yaml:"max_bytes" validate:"gt=0"`
	} `yaml:"icons"`
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return c.Server.Host + c.Server.Port
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var cfg Config
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = ":8080"
	cfg.Server.ReadTimeout = 5 * time.Second
	cfg.Server.WriteTimeout = 10 * time.Second
	cfg.Logger.Level = "info"
	cfg.Logger.MaxSizeMB = 10
	cfg.Logger.MaxBackups = 3
	cfg.Logger.MaxAgeDays = 28
	cfg.Icons.Dir = "icons/outlined"
	cfg.Icons.MaxBytes = 64 * 1024
	return cfg
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validateInst
}

// Load reads the file named by CONFIG_PATH (or DefaultPath).
func Load() Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	return LoadFrom(path)
}

// LoadFrom reads path on top of Default, applies environment overrides and
// validates the result. A missing file yields the defaults; a broken file or
// an invalid value panics.
func LoadFrom(path string) Config {
	cfg, err := parse(path)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

func parse(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SVGBANNER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SVGBANNER_PORT"); v != "" {
		if !strings.HasPrefix(v, ":") {
			v = ":" + v
		}
		cfg.Server.Port = v
	}
	if v := os.Getenv("SVGBANNER_ICONS_DIR"); v != "" {
		cfg.Icons.Dir = v
	}
	if v := os.Getenv("SVGBANNER_LOG_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
}

// Validate checks struct constraints and reports the first offending field.
func Validate(cfg Config) error {
	err := validatorInstance().Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid %s: failed %q constraint (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
	}
	return err
}
