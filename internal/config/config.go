// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Network    NetworkConfig    `mapstructure:"network"`
	Credential CredentialConfig `mapstructure:"credentials"`
	RateLimits RateLimitConfig  `mapstructure:"rate_limits"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// NetworkConfig selects and optionally overrides an OKX network profile.
type NetworkConfig struct {
	// Profile is one of "mainnet", "aws-mainnet", "testnet". Overridden
	// fields below only apply when non-empty.
	Profile             string        `mapstructure:"profile"`
	RestDomain          string        `mapstructure:"rest_domain"`
	PublicWSDomain      string        `mapstructure:"public_ws_domain"`
	PrivateWSDomain     string        `mapstructure:"private_ws_domain"`
	BusinessWSDomain    string        `mapstructure:"business_ws_domain"`
	HTTPTimeout         time.Duration `mapstructure:"http_timeout"`
	WSInitialBackoff    time.Duration `mapstructure:"ws_initial_backoff"`
	WSMaxBackoff        time.Duration `mapstructure:"ws_max_backoff"`
	WSPingInterval      time.Duration `mapstructure:"ws_ping_interval"`
}

// CredentialConfig holds API credentials for authenticated sessions.
// Left empty, only public endpoints/sessions are usable.
type CredentialConfig struct {
	APIKey     string `mapstructure:"api_key"`
	SecretKey  string `mapstructure:"secret_key"`
	Passphrase string `mapstructure:"passphrase"`
}

// HasCredentials reports whether credentials were supplied.
func (c CredentialConfig) HasCredentials() bool {
	return c.APIKey != "" && c.SecretKey != "" && c.Passphrase != ""
}

// RateLimitOverride overrides one api_id's governor window.
type RateLimitOverride struct {
	Capacity int `mapstructure:"capacity"`
	WindowMs int `mapstructure:"window_ms"`
}

// RateLimitConfig carries per-api_id overrides of the built-in defaults.
type RateLimitConfig struct {
	Overrides map[string]RateLimitOverride `mapstructure:"overrides"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("OKX")
	v.AutomaticEnv()

	// Bind env vars to config keys
	bindEnvVars(v)

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "OKX_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "OKX_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "OKX_LOG_LEVEL", "LOG_LEVEL")

	// Network
	v.BindEnv("network.profile", "OKX_NETWORK_PROFILE")
	v.BindEnv("network.rest_domain", "OKX_REST_DOMAIN")
	v.BindEnv("network.public_ws_domain", "OKX_PUBLIC_WS_DOMAIN")
	v.BindEnv("network.private_ws_domain", "OKX_PRIVATE_WS_DOMAIN")
	v.BindEnv("network.business_ws_domain", "OKX_BUSINESS_WS_DOMAIN")

	// Credentials
	v.BindEnv("credentials.api_key", "OKX_API_KEY")
	v.BindEnv("credentials.secret_key", "OKX_SECRET_KEY")
	v.BindEnv("credentials.passphrase", "OKX_PASSPHRASE")

	// Telemetry
	v.BindEnv("telemetry.enabled", "OKX_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "OKX_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "OKX_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "okx-client")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Network defaults
	v.SetDefault("network.profile", "mainnet")
	v.SetDefault("network.http_timeout", "10s")
	v.SetDefault("network.ws_initial_backoff", "1s")
	v.SetDefault("network.ws_max_backoff", "30s")
	v.SetDefault("network.ws_ping_interval", "5s")

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "okx-client")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Network.Profile {
	case "mainnet", "aws-mainnet", "testnet", "":
	default:
		return fmt.Errorf("network.profile must be one of mainnet, aws-mainnet, testnet, got %q", c.Network.Profile)
	}
	return nil
}
