// Package config provides configuration management for the permission mapping services
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Service identification
	ServiceName string `mapstructure:"service_name"`
	Environment string `mapstructure:"environment"`
	Port        int    `mapstructure:"port"`
	LogLevel    string `mapstructure:"log_level"`

	// Mapping table source; empty means the built-in table
	MappingTableFile string `mapstructure:"mapping_table_file"`
	// Refuse to start when the mapping table is malformed
	StrictMappingTable bool `mapstructure:"strict_mapping_table"`

	CORSAllowedOrigins string        `mapstructure:"cors_allowed_origins"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`

	Tracing TracingConfig `mapstructure:"tracing"`
}

// TracingConfig holds OpenTelemetry export settings
type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	Endpoint   string  `mapstructure:"endpoint"`    // OTLP gRPC endpoint, e.g. "localhost:4317"
	SampleRate float64 `mapstructure:"sample_rate"` // 0.0 to 1.0
}

// Load reads configuration from file and environment variables
func Load(serviceName string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/permmap")

	// The config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("PERMMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.ServiceName = serviceName

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("port", 8010)

	v.SetDefault("mapping_table_file", "")
	v.SetDefault("strict_mapping_table", true)

	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("shutdown_timeout", 15*time.Second)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.sample_rate", 1.0)
}

func bindEnvVars(v *viper.Viper) {
	// Unprefixed variables shared with the rest of the deployment
	envMappings := map[string]string{
		"environment":        "APP_ENV",
		"log_level":          "LOG_LEVEL",
		"port":               "PORT",
		"mapping_table_file": "MAPPING_TABLE_FILE",
		"tracing.enabled":    "TRACING_ENABLED",
		"tracing.endpoint":   "OTEL_EXPORTER_OTLP_ENDPOINT",
	}

	for key, env := range envMappings {
		v.BindEnv(key, "PERMMAP_"+strings.ToUpper(strings.NewReplacer(".", "_").Replace(key)), env)
	}
}

func validate(cfg *Config) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if cfg.Tracing.SampleRate < 0 || cfg.Tracing.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be between 0 and 1")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}
	return nil
}

// GetCORSOrigins returns CORS allowed origins as a slice
func (c *Config) GetCORSOrigins() []string {
	if c.CORSAllowedOrigins == "*" {
		return []string{"*"}
	}
	origins := strings.Split(c.CORSAllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
