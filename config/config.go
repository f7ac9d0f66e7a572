// Package config loads credentials and cache settings for the
// command line tools from a YAML file.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spkg/bom"
	"gopkg.in/yaml.v3"
)

type PTV struct {
	DevID string `yaml:"devid" validate:"required"`
	Key   string `yaml:"key" validate:"required"`
}

type Walking struct {
	Key string `yaml:"key"`
}

type Cache struct {
	Backend    string `yaml:"backend" validate:"omitempty,oneof=memory sqlite postgres"`
	DSN        string `yaml:"dsn"`
	TTLMinutes int    `yaml:"ttl_minutes" validate:"gte=0"`
}

type Config struct {
	PTV     PTV     `yaml:"ptv"`
	Walking Walking `yaml:"walking"`
	Cache   Cache   `yaml:"cache"`
}

// Load reads and validates a config file. A UTF-8 BOM, if present, is
// stripped. The walking key is optional; without it only stop
// resolution is available, not walking filtering.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

func Parse(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(bom.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}

	v := validator.New()
	if err := v.Struct(cfg.PTV); err != nil {
		return nil, fmt.Errorf("validating ptv credentials: %w", err)
	}
	if err := v.Struct(cfg.Cache); err != nil {
		return nil, fmt.Errorf("validating cache settings: %w", err)
	}

	return cfg, nil
}
