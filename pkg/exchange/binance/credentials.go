package binance

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"fapitrade/pkg/exchange"
)

const (
	// TestnetBaseURL is the USD-M futures testnet host.
	TestnetBaseURL = "https://testnet.binancefuture.com"
	// MainnetBaseURL is the USD-M futures production host.
	MainnetBaseURL = "https://fapi.binance.com"

	defaultTimeout = 10 * time.Second
)

// Credentials holds everything needed to authenticate against the exchange.
// It is built once at startup and never mutated.
type Credentials struct {
	APIKey    string        `envconfig:"BINANCE_API_KEY"`
	APISecret string        `envconfig:"BINANCE_API_SECRET"`
	BaseURL   string        `envconfig:"BINANCE_BASE_URL" default:"https://testnet.binancefuture.com"`
	Timeout   time.Duration `envconfig:"BINANCE_TIMEOUT" default:"10s"`
}

// LoadCredentials reads credentials from the process environment. A missing
// or empty key or secret is a fatal *exchange.ConfigError.
func LoadCredentials() (Credentials, error) {
	var creds Credentials
	if err := envconfig.Process("", &creds); err != nil {
		return Credentials{}, &exchange.ConfigError{Field: "environment", Err: err}
	}
	creds.APIKey = strings.TrimSpace(creds.APIKey)
	creds.APISecret = strings.TrimSpace(creds.APISecret)
	creds.BaseURL = strings.TrimSpace(creds.BaseURL)
	if err := creds.Validate(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// Validate checks that both secrets are present and the timeout is not
// negative. A zero timeout selects the 10s default.
func (c Credentials) Validate() error {
	if c.APIKey == "" {
		return &exchange.ConfigError{Field: "BINANCE_API_KEY", Err: exchange.ErrMissingCredentials}
	}
	if c.APISecret == "" {
		return &exchange.ConfigError{Field: "BINANCE_API_SECRET", Err: exchange.ErrMissingCredentials}
	}
	if c.Timeout < 0 {
		return &exchange.ConfigError{Field: "BINANCE_TIMEOUT", Err: fmt.Errorf("timeout must not be negative, got %s", c.Timeout)}
	}
	return nil
}

func (c Credentials) withDefaults() Credentials {
	if c.BaseURL == "" {
		c.BaseURL = TestnetBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// String hides the secret so credentials can be logged safely.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{APIKey:%s, BaseURL:%s, Timeout:%s}", maskKey(c.APIKey), c.BaseURL, c.Timeout)
}

func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-4)
}
