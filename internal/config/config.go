// Package config loads the process configuration from environment
// variables, prefixed with CONFIRMWATCH_, and validates it before anything
// else starts.
package config

import (
	"time"

	"github.com/gabapcia/confirmwatch/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix is applied to every variable, e.g. CONFIRMWATCH_RPC_ENDPOINT.
const envPrefix = "confirmwatch"

// Config is the full process configuration. At least one of RPCEndpoint
// and WSEndpoint must be set; when both are present the websocket
// connection wins so the watcher can use push subscriptions.
type Config struct {
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	TelemetryEnabled bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`

	RPCEndpoint string `envconfig:"RPC_ENDPOINT" validate:"required_without=WSEndpoint,omitempty,url"`
	WSEndpoint  string `envconfig:"WS_ENDPOINT" validate:"required_without=RPCEndpoint,omitempty,uri"`

	ConfirmationThreshold  uint64        `envconfig:"CONFIRMATION_THRESHOLD" default:"12" validate:"gte=1"`
	PollingInterval        time.Duration `envconfig:"POLLING_INTERVAL" default:"12s" validate:"gt=0"`
	ReceiptPollingInterval time.Duration `envconfig:"RECEIPT_POLLING_INTERVAL" default:"0" validate:"gte=0"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisUsername string `envconfig:"REDIS_USERNAME"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Load reads and validates the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, err
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
