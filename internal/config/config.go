package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Engine  EngineConfig  `yaml:"engine" envconfig:"ENGINE"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	AllowedOrigins  []string      `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"100"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"50"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// PathsConfig contains the input exports and output locations.
type PathsConfig struct {
	FlowFile    string `yaml:"flow_file" envconfig:"FLOW_FILE" default:"data/flow_meter.csv"`
	QualityFile string `yaml:"quality_file" envconfig:"QUALITY_FILE" default:"data/water_quality.csv"`
	ReportsDir  string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
	LogsDir     string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// EngineConfig holds the analytics constants: the plant's local timezone,
// the three shift boundaries, the anomaly detector defaults and the
// trailing-breach lookback. All are overridable; the defaults match the
// metering equipment's deployment.
type EngineConfig struct {
	Timezone             string        `yaml:"timezone" envconfig:"TIMEZONE" default:"Asia/Kolkata"`
	ShiftAStartHour      int           `yaml:"shift_a_start_hour" envconfig:"SHIFT_A_START_HOUR" default:"6"`
	ShiftBStartHour      int           `yaml:"shift_b_start_hour" envconfig:"SHIFT_B_START_HOUR" default:"14"`
	ShiftCStartHour      int           `yaml:"shift_c_start_hour" envconfig:"SHIFT_C_START_HOUR" default:"22"`
	AnomalyWindow        int           `yaml:"anomaly_window" envconfig:"ANOMALY_WINDOW" default:"24"`
	AnomalyMultiplier    float64       `yaml:"anomaly_multiplier" envconfig:"ANOMALY_MULTIPLIER" default:"3.0"`
	BreachLookback       time.Duration `yaml:"breach_lookback" envconfig:"BREACH_LOOKBACK" default:"24h"`
	CorrelationParameter string        `yaml:"correlation_parameter" envconfig:"CORRELATION_PARAMETER" default:"HUMIDITY (HUMIDITY)"`
}

// Location resolves the configured timezone.
func (e EngineConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", e.Timezone, err)
	}
	return loc, nil
}

// Load loads configuration from environment variables and an optional
// config file. Environment variables take precedence.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("WPL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile := getConfigFilePath(); configFile != "" {
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

// loadFromFile loads configuration from a YAML file.
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

// mergeConfigs merges file config with env config (env takes precedence).
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Paths.FlowFile == "" {
		envConfig.Paths.FlowFile = fileConfig.Paths.FlowFile
	}
	if envConfig.Paths.QualityFile == "" {
		envConfig.Paths.QualityFile = fileConfig.Paths.QualityFile
	}
	if envConfig.Paths.ReportsDir == "" {
		envConfig.Paths.ReportsDir = fileConfig.Paths.ReportsDir
	}
	if envConfig.Engine.Timezone == "" {
		envConfig.Engine.Timezone = fileConfig.Engine.Timezone
	}
	if envConfig.Engine.AnomalyWindow == 0 {
		envConfig.Engine.AnomalyWindow = fileConfig.Engine.AnomalyWindow
	}
	if envConfig.Engine.CorrelationParameter == "" {
		envConfig.Engine.CorrelationParameter = fileConfig.Engine.CorrelationParameter
	}
	return envConfig
}

// validate validates the configuration.
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if _, err := c.Engine.Location(); err != nil {
		return err
	}

	if c.Engine.AnomalyWindow < 2 {
		return fmt.Errorf("anomaly window must be at least 2, got %d", c.Engine.AnomalyWindow)
	}

	if c.Engine.AnomalyMultiplier <= 0 {
		return fmt.Errorf("anomaly multiplier must be positive")
	}

	if c.Engine.BreachLookback <= 0 {
		return fmt.Errorf("breach lookback must be positive")
	}

	for _, h := range []int{c.Engine.ShiftAStartHour, c.Engine.ShiftBStartHour, c.Engine.ShiftCStartHour} {
		if h < 0 || h > 23 {
			return fmt.Errorf("shift start hour out of range: %d", h)
		}
	}

	return nil
}

// getConfigFilePath returns the path to the config file.
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			AllowedOrigins:  []string{"http://localhost:8080"},
			RateLimitRPS:    100,
			RateLimitBurst:  50,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			FlowFile:    "data/flow_meter.csv",
			QualityFile: "data/water_quality.csv",
			ReportsDir:  "reports",
			LogsDir:     "logs",
		},
		Engine: DefaultEngineConfig(),
	}
}

// DefaultEngineConfig returns the engine constants' documented defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Timezone:             "Asia/Kolkata",
		ShiftAStartHour:      6,
		ShiftBStartHour:      14,
		ShiftCStartHour:      22,
		AnomalyWindow:        24,
		AnomalyMultiplier:    3.0,
		BreachLookback:       24 * time.Hour,
		CorrelationParameter: "HUMIDITY (HUMIDITY)",
	}
}
