package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

type Redis struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Config is the top-level application configuration, read from a YAML file.
type Config struct {
	// Backend selects the key-value substrate: "memory", "file", or "redis".
	Backend string `yaml:"backend"`

	// DataDir is the directory the file backend keeps its blobs in.
	DataDir string `yaml:"data_dir"`

	Redis Redis `yaml:"redis"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`

	// PrettyLog indents each log record for interactive runs.
	PrettyLog bool `yaml:"pretty_log"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:  BackendFile,
		DataDir:  "data",
		Redis:    Redis{Host: "localhost", Port: 6379},
		LogLevel: "info",
	}
}

// Normalize fills in missing values so partially-filled configs still behave.
func (c *Config) Normalize() {
	switch c.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		c.Backend = BackendFile
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Load reads the configuration from the given YAML path. A missing file is
// the expected first-run case: the default config is written through and
// returned, mirroring how the stored collections seed themselves.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", path, err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration atomically via a temp file and rename.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".gatherly-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
