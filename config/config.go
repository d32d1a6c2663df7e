// Package config defines the environment variable and command-line flags
// supported by this service and includes default values for particular
// fields.
package config

import (
	"sync"
	"time"

	"github.com/companieshouse/gofigure"
)

var cfg *Config
var mtx sync.Mutex

// Config defines the configuration options for this service.
type Config struct {
	BindAddr               string   `env:"BIND_ADDR"               flag:"bind-addr"               flagDesc:"Bind address"`
	ValidationRulesPath    string   `env:"VALIDATION_RULES_PATH"   flag:"validation-rules-path"   flagDesc:"Path to the input validation rules resource"`
	GroupsPath             string   `env:"GROUPS_PATH"             flag:"groups-path"             flagDesc:"Path to the payment groups resource"`
	UserAgent              string   `env:"USER_AGENT"              flag:"user-agent"              flagDesc:"User-Agent sent to the payment list API"`
	RequestTimeoutSeconds  int      `env:"REQUEST_TIMEOUT_SECONDS" flag:"request-timeout-seconds" flagDesc:"Timeout for a single payment list API call"`
	ConnectTimeoutSeconds  int      `env:"CONNECT_TIMEOUT_SECONDS" flag:"connect-timeout-seconds" flagDesc:"Timeout for establishing a connection"`
	NetworkWorkers         int      `env:"NETWORK_WORKERS"         flag:"network-workers"         flagDesc:"Maximum number of concurrent network tasks"`
	LangFetchConcurrency   int      `env:"LANG_FETCH_CONCURRENCY"  flag:"lang-fetch-concurrency"  flagDesc:"Maximum concurrent localization downloads per session"`
	BrokerAddr             []string `env:"KAFKA_BROKER_ADDR"       flag:"kafka-broker-addr"       flagDesc:"Kafka broker address"`
	SchemaRegistryURL      string   `env:"SCHEMA_REGISTRY_URL"     flag:"schema-registry-url"     flagDesc:"Schema registry url"`
	EnableMetrics          bool     `env:"ENABLE_METRICS"          flag:"enable-metrics"          flagDesc:"Expose prometheus metrics"`
	ClosedRetentionSeconds int      `env:"CLOSED_RETENTION_SECONDS" flag:"closed-retention-seconds" flagDesc:"How long a closed checkout can still be read"`
}

// DefaultConfig returns a pointer to a Config instance that has been populated
// with default values.
func DefaultConfig() *Config {
	return &Config{
		BindAddr:               ":18080",
		ValidationRulesPath:    "assets/validations.json",
		GroupsPath:             "assets/groups.json",
		UserAgent:              "checkout.payments.ch.gov.uk",
		RequestTimeoutSeconds:  30,
		ConnectTimeoutSeconds:  5,
		NetworkWorkers:         4,
		LangFetchConcurrency:   4,
		ClosedRetentionSeconds: 300,
	}
}

// Get returns a pointer to a Config instance that has been populated with
// values provided by the environment or command-line flags, or with default
// values if none are provided.
func Get() (*Config, error) {
	mtx.Lock()
	defer mtx.Unlock()

	if cfg != nil {
		return cfg, nil
	}

	cfg = DefaultConfig()

	err := gofigure.Gofigure(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// RequestTimeout is the per call timeout of the payment list API client
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// ConnectTimeout is the dial timeout of the payment list API client
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutSeconds) * time.Second
}

// ClosedRetention is how long a closed checkout is kept before it is forgotten
func (c *Config) ClosedRetention() time.Duration {
	return time.Duration(c.ClosedRetentionSeconds) * time.Second
}

// KafkaEnabled reports whether checkout results should be published to kafka
func (c *Config) KafkaEnabled() bool {
	return len(c.BrokerAddr) > 0 && c.SchemaRegistryURL != ""
}
