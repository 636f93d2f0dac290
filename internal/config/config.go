package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	Sweep     SweepConfig     `yaml:"sweep" envconfig:"SWEEP"`
	Tunnel    TunnelConfig    `yaml:"tunnel" envconfig:"TUNNEL"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" validate:"gte=0"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" validate:"gt=0"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" envconfig:"MAX_BODY_BYTES" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" validate:"gt=0"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gt=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"min=1"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	Environment    string  `yaml:"environment" envconfig:"ENVIRONMENT"`
	EnableTracing  bool    `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
	EnableMetrics  bool    `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" validate:"oneof=prometheus none"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
}

// SweepConfig controls how sweeps are driven
type SweepConfig struct {
	MaxConcurrency int  `yaml:"max_concurrency" envconfig:"MAX_CONCURRENCY" validate:"gte=0,lte=256"`
	FailFast       bool `yaml:"fail_fast" envconfig:"FAIL_FAST"`
	// Summary adds the polar summary to sweep reports
	Summary bool `yaml:"summary" envconfig:"SUMMARY"`
	// IncludeWake adds the merged wake profile to every case result
	IncludeWake bool `yaml:"include_wake" envconfig:"INCLUDE_WAKE"`
}

// Load builds the configuration from defaults, the YAML file named by
// AERO_CONFIG_FILE (or the first file found in the usual locations) and the
// AERO_* environment, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom is Load with an explicit file path; an empty path skips the file
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFromFile overlays a YAML file on cfg; keys absent from the file keep
// their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%s: %w", filePath, err)
	}
	return nil
}

var validate = validator.New()

// validate validates the configuration
func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}
	if err := c.Tunnel.validate(); err != nil {
		return fmt.Errorf("tunnel: %w", err)
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG_FILE"); p != "" {
		return p
	}

	locations := []string{
		"aeroreduce.yaml",
		"configs/aeroreduce.yaml",
		"../configs/aeroreduce.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			MaxBodyBytes:    DefaultMaxBodyBytes,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  DefaultRequestTimeout,
		},
		Security: SecurityConfig{
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimit,
				Burst:   DefaultBurstSize,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/aeroreduce.log",
		},
		Telemetry: TelemetryConfig{
			Environment:    "development",
			EnableTracing:  false,
			EnableMetrics:  true,
			TraceExporter:  "stdout",
			MetricExporter: "prometheus",
			SampleRatio:    1.0,
		},
		Sweep: SweepConfig{
			MaxConcurrency: DefaultMaxConcurrency,
			Summary:        true,
		},
		Tunnel: DefaultTunnel(),
	}
}
