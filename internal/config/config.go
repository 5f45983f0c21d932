package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Tracing TracingConfig `yaml:"tracing" envconfig:"TRACING"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/stocktally.log"`
}

// OutputConfig contains summary workbook output configuration
type OutputConfig struct {
	SheetName      string  `yaml:"sheet_name" envconfig:"SHEET_NAME" default:"Summary"`
	LabelHeader    string  `yaml:"label_header" envconfig:"LABEL_HEADER" default:"Category"`
	MinColumnWidth float64 `yaml:"min_column_width" envconfig:"MIN_COLUMN_WIDTH" default:"10"`
}

// TracingConfig contains OpenTelemetry tracing configuration
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled" envconfig:"ENABLED" default:"false"`
	Exporter    string  `yaml:"exporter" envconfig:"EXPORTER" default:"stdout"`
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" default:"1.0"`
}

// ConfigFileName is the optional per-root configuration file.
const ConfigFileName = "stocktally.yaml"

// Load loads configuration for the given root directory. Environment
// variables (STOCKTALLY_*) take precedence over the yaml file, which takes
// precedence over struct defaults. The root is passed explicitly; there is
// no process-global configuration path.
func Load(root string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("STOCKTALLY", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := filepath.Join(root, ConfigFileName)
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if !filepath.IsAbs(cfg.Logging.FilePath) {
		cfg.Logging.FilePath = filepath.Join(root, cfg.Logging.FilePath)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
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

// mergeConfigs merges file config with env config (env takes precedence,
// envconfig defaults lose to explicit file values only where env left the
// field at its default zero-equivalent).
func mergeConfigs(fileCfg, envCfg Config) Config {
	merged := envCfg

	if fileCfg.Logging.Level != "" && !isSet("STOCKTALLY_LOGGING_LEVEL") {
		merged.Logging.Level = fileCfg.Logging.Level
	}
	if fileCfg.Logging.Format != "" && !isSet("STOCKTALLY_LOGGING_FORMAT") {
		merged.Logging.Format = fileCfg.Logging.Format
	}
	if fileCfg.Logging.Output != "" && !isSet("STOCKTALLY_LOGGING_OUTPUT") {
		merged.Logging.Output = fileCfg.Logging.Output
	}
	if fileCfg.Logging.FilePath != "" && !isSet("STOCKTALLY_LOGGING_FILE_PATH") {
		merged.Logging.FilePath = fileCfg.Logging.FilePath
	}
	if fileCfg.Output.SheetName != "" && !isSet("STOCKTALLY_OUTPUT_SHEET_NAME") {
		merged.Output.SheetName = fileCfg.Output.SheetName
	}
	if fileCfg.Output.LabelHeader != "" && !isSet("STOCKTALLY_OUTPUT_LABEL_HEADER") {
		merged.Output.LabelHeader = fileCfg.Output.LabelHeader
	}
	if fileCfg.Output.MinColumnWidth > 0 && !isSet("STOCKTALLY_OUTPUT_MIN_COLUMN_WIDTH") {
		merged.Output.MinColumnWidth = fileCfg.Output.MinColumnWidth
	}
	if fileCfg.Tracing.Enabled {
		merged.Tracing.Enabled = true
	}
	if fileCfg.Tracing.Exporter != "" && !isSet("STOCKTALLY_TRACING_EXPORTER") {
		merged.Tracing.Exporter = fileCfg.Tracing.Exporter
	}
	if fileCfg.Tracing.SampleRatio > 0 && !isSet("STOCKTALLY_TRACING_SAMPLE_RATIO") {
		merged.Tracing.SampleRatio = fileCfg.Tracing.SampleRatio
	}

	return merged
}

func isSet(name string) bool {
	_, ok := os.LookupEnv(name)
	return ok
}
