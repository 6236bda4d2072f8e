package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const DefaultListenerAddr = ":3000"

type LogConfig struct {
	// debug, info, warn, error
	Level       string `toml:"level" yaml:"level"`
	Development bool   `toml:"development" yaml:"development"`
}

type APIConfig struct {
	ListenerAddr string `toml:"listener_addr" yaml:"listener_addr"`
}

type Config struct {
	Log LogConfig `toml:"log" yaml:"log"`
	API APIConfig `toml:"api" yaml:"api"`
}

func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		API: APIConfig{
			ListenerAddr: DefaultListenerAddr,
		},
	}
}

// Load reads a .toml, .yaml or .yml file over the defaults. Keys missing
// from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("load config: unsupported extension '%s'", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.API.ListenerAddr == "" {
		return fmt.Errorf("config: api listener_addr is empty")
	}
	return nil
}
