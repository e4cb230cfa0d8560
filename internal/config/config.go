package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Input   InputConfig   `yaml:"input" envconfig:"INPUT"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// InputConfig describes the observation table source
type InputConfig struct {
	File string `yaml:"file" envconfig:"FILE" default:"taxonomic_data.csv"`
}

// OutputConfig describes where artifacts are written
type OutputConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" default:"output"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/taxonstats.log"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("TAXONSTATS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs merges a file config into the env config; file values win
// where set, so the environment acts as the defaulting layer.
func mergeConfigs(file, env Config) Config {
	merged := env
	if file.Input.File != "" {
		merged.Input.File = file.Input.File
	}
	if file.Output.Dir != "" {
		merged.Output.Dir = file.Output.Dir
	}
	if file.Logging.Level != "" {
		merged.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" {
		merged.Logging.Format = file.Logging.Format
	}
	if file.Logging.Output != "" {
		merged.Logging.Output = file.Logging.Output
	}
	if file.Logging.FilePath != "" {
		merged.Logging.FilePath = file.Logging.FilePath
	}
	return merged
}

func getConfigFilePath() string {
	if p := os.Getenv("TAXONSTATS_CONFIG_FILE"); p != "" {
		return p
	}
	return "config.yaml"
}

// validate checks the configuration for invalid values
func (c *Config) validate() error {
	if c.Input.File == "" {
		return fmt.Errorf("input file path must not be empty")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output directory must not be empty")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging format: %s", c.Logging.Format)
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %s", c.Logging.Output)
	}

	return nil
}

// EnsureDirectories creates the output directory (and the log directory when
// file logging is enabled) if they don't exist. Creating an existing
// directory is not an error, so the setup step is safe to repeat across runs.
// This is invoked explicitly by the entry point, never as an import side
// effect.
func (c *Config) EnsureDirectories(logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	directories := []string{c.Output.Dir}
	if c.Logging.Output == "file" || c.Logging.Output == "both" {
		directories = append(directories, filepath.Dir(c.Logging.FilePath))
	}

	for _, dir := range directories {
		_, statErr := os.Stat(dir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		if os.IsNotExist(statErr) {
			logger.Info("created directory", slog.String("path", dir))
		}
	}

	return nil
}
