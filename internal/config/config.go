package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures dataset, recommendation, server and logging settings for MovieMatch.
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset"`
	Recommend RecommendConfig `yaml:"recommend"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DatasetConfig locates the movie catalog.
type DatasetConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
	Table  string `yaml:"table"`
}

// RecommendConfig tunes query answers.
type RecommendConfig struct {
	Limit       int `yaml:"limit"`
	Suggestions int `yaml:"suggestions"`
}

// ServerConfig defines the HTTP query surface.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LoggingConfig controls diagnostic logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	ToFile *bool  `yaml:"to_file"`
}

const defaultConfigFile = "moviematch.yaml"

// Default returns a Config pre-populated with the defaults of the desktop tool.
func Default() Config {
	toFile := true
	return Config{
		Dataset: DatasetConfig{
			Path:  "movies.csv",
			Table: "movies",
		},
		Recommend: RecommendConfig{
			Limit:       10,
			Suggestions: 3,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8088,
		},
		Logging: LoggingConfig{
			Level:  "info",
			ToFile: &toFile,
		},
	}
}

// Resolve loads configuration from file and environment variables.
func Resolve() (Config, error) {
	cfg := Default()

	path := strings.TrimSpace(os.Getenv("APP_CONFIG"))
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	} else if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("provided APP_CONFIG file %q not found", path)
	}

	if path != "" {
		loaded, err := loadFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = merge(cfg, loaded)
	}

	applyEnvOverrides(&cfg)

	return cfg, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %q: %w", path, err)
	}

	return cfg, nil
}

func merge(base, override Config) Config {
	result := base

	if override.Dataset.Path != "" {
		result.Dataset.Path = override.Dataset.Path
	}
	if override.Dataset.Format != "" {
		result.Dataset.Format = override.Dataset.Format
	}
	if override.Dataset.Table != "" {
		result.Dataset.Table = override.Dataset.Table
	}

	if override.Recommend.Limit != 0 {
		result.Recommend.Limit = override.Recommend.Limit
	}
	if override.Recommend.Suggestions != 0 {
		result.Recommend.Suggestions = override.Recommend.Suggestions
	}

	if override.Server.Host != "" {
		result.Server.Host = override.Server.Host
	}
	if override.Server.Port != 0 {
		result.Server.Port = override.Server.Port
	}

	if override.Logging.Level != "" {
		result.Logging.Level = override.Logging.Level
	}
	if override.Logging.ToFile != nil {
		v := *override.Logging.ToFile
		result.Logging.ToFile = &v
	}

	return result
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("APP_DATASET")); v != "" {
		cfg.Dataset.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("APP_DATASET_FORMAT")); v != "" {
		cfg.Dataset.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("APP_DATASET_TABLE")); v != "" {
		cfg.Dataset.Table = v
	}
	if v := strings.TrimSpace(os.Getenv("APP_TOP_N")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Recommend.Limit = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("APP_SUGGESTIONS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Recommend.Suggestions = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("APP_SERVER_HOST")); v != "" {
		cfg.Server.Host = v
	}
	if v := strings.TrimSpace(os.Getenv("APP_SERVER_PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Server.Port = port
		}
	}
	if v := strings.TrimSpace(os.Getenv("APP_LOG_LEVEL")); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("APP_LOG_TO_FILE")); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Logging.ToFile = &enabled
		}
	}
}

// LogToFile reports whether logs should bypass the terminal.
func (c Config) LogToFile() bool {
	return c.Logging.ToFile == nil || *c.Logging.ToFile
}

// Address returns the host:port the HTTP server listens on.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
