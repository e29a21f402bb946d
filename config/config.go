// Package config loads the viewer's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// APIConfig selects the upstream endpoint.
type APIConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

// CacheConfig bounds the local cache store.
type CacheConfig struct {
	Dir         string `yaml:"dir"`
	MaxBytes    int64  `yaml:"maxBytes"`
	MaxEntries  int    `yaml:"maxEntries"`
	MaxAgeHours int    `yaml:"maxAgeHours"`
}

// LoaderConfig tunes scroll batches and the preload cadence.
type LoaderConfig struct {
	BatchSize          int `yaml:"batchSize"`
	PreloadBatchSize   int `yaml:"preloadBatchSize"`
	PreloadDelayMs     int `yaml:"preloadDelayMs"`
	AcceleratedDelayMs int `yaml:"acceleratedDelayMs"`
	BusyRetryMs        int `yaml:"busyRetryMs"`
	AcceleratedRetryMs int `yaml:"acceleratedRetryMs"`
}

type Config struct {
	API    APIConfig    `yaml:"api"`
	Cache  CacheConfig  `yaml:"cache"`
	Loader LoaderConfig `yaml:"loader"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{BaseURL: "https://pokeapi.co/api/v2/pokemon"},
		Cache: CacheConfig{
			Dir:         defaultCacheDir(),
			MaxBytes:    8 << 20,
			MaxEntries:  40,
			MaxAgeHours: 24,
		},
		Loader: LoaderConfig{
			BatchSize:          30,
			PreloadBatchSize:   10,
			PreloadDelayMs:     800,
			AcceleratedDelayMs: 200,
			BusyRetryMs:        1000,
			AcceleratedRetryMs: 200,
		},
	}
}

// Load reads filename over the defaults. A missing file yields the
// defaults unchanged.
func Load(filename string) (*Config, error) {
	c := Default()
	buf, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	return c, nil
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".dexview-cache"
	}
	return filepath.Join(base, "dexview")
}
