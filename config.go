package main

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"qtcount/internal/optimize"
)

// DefaultConfigPath is read when --config is not given. A missing default
// file is not an error.
const DefaultConfigPath = "qtcount.yaml"

// ErrInvalidConfig wraps every configuration load or validation failure.
var ErrInvalidConfig = errors.New("qtcount: invalid configuration")

var configValidate = validator.New()

// Config holds the optimizer and logging settings shared by all commands.
type Config struct {
	Method        string        `yaml:"method" validate:"oneof=tohpe fasttodd"`
	Workers       int           `yaml:"workers" validate:"min=1,max=256"`
	Gadgetize     bool          `yaml:"gadgetize"`
	CleanAncillas []int         `yaml:"clean_ancillas" validate:"dive,min=0"`
	CacheSize     int           `yaml:"cache_size" validate:"min=1"`
	Timeout       time.Duration `yaml:"timeout" validate:"min=0"`
	Log           LogConfig     `yaml:"log"`
}

// LogConfig selects the zap logger built by newLogger.
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// DefaultConfig returns FastTODD with gadgetization, one worker and info
// logging.
func DefaultConfig() Config {
	return Config{
		Method:    string(optimize.MethodFastTODD),
		Workers:   1,
		Gadgetize: true,
		CacheSize: optimize.DefaultCacheSize,
		Log:       LogConfig{Level: "info"},
	}
}

// LoadConfig decodes path over the defaults. When required is false a
// missing file yields the defaults.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return cfg, errors.Wrapf(ErrInvalidConfig, "read %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(ErrInvalidConfig, "parse %s: %v", path, err)
	}
	cfg.Method = strings.ToLower(cfg.Method)
	return cfg, cfg.Validate()
}

// Validate checks the tagged constraints.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "%v", err)
	}
	return nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidConfig, "timeout %q", s)
	}
	return d, nil
}

// Options converts the configuration into pipeline options.
func (c Config) Options() optimize.Options {
	return optimize.Options{
		Method:        optimize.Method(c.Method),
		Workers:       c.Workers,
		Gadgetize:     c.Gadgetize,
		CleanAncillas: c.CleanAncillas,
		CacheSize:     c.CacheSize,
	}
}
