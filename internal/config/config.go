package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"

	"fapitrade/pkg/confkit"
	exchangepkg "fapitrade/pkg/exchange"
)

// DefaultExchangeFile is the exchange config looked up under the project root
// when no application config is given.
const DefaultExchangeFile = "etc/exchange.yaml"

// OrderConf is the order the entry flow places after querying the account.
type OrderConf struct {
	Symbol      string `json:",default=BTCUSDT"`
	Side        string `json:",default=BUY"`
	Type        string `json:",default=LIMIT"`
	Quantity    string `json:",default=0.001"`
	Price       string `json:",optional"`
	TimeInForce string `json:",optional"`
}

type Config struct {
	Name string `json:",default=fapitrade"`
	// Env indicates the running environment: test | dev | prod
	Env string       `json:",default=test"`
	Log logx.LogConf `json:",optional"`

	// DryRun swaps the exchange for the in-memory sim provider.
	DryRun        bool   `json:",optional"`
	DryRunBalance string `json:",default=10000"`

	Exchange confkit.Section[exchangepkg.Config] `json:",optional"`
	Order    OrderConf                           `json:",optional"`

	mainPath string
	baseDir  string
}

func (c *Config) IsTestEnv() bool {
	return c.Env == "test" || c.Env == ""
}

// LoadOption adjusts the configuration after it is read and before the
// exchange section is hydrated.
type LoadOption func(*Config)

// WithDryRun forces dry-run mode. A dry run never reads the exchange section,
// so no credentials are needed.
func WithDryRun(dryRun bool) LoadOption {
	return func(c *Config) {
		if dryRun {
			c.DryRun = true
		}
	}
}

func MustLoad(path string, opts ...LoadOption) *Config {
	cfg, err := Load(path, opts...)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string, opts ...LoadOption) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	var cfg Config
	if err := conf.Load(absPath, &cfg, conf.UseEnv()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", absPath, err)
	}

	cfg.mainPath = absPath
	cfg.baseDir = filepath.Dir(absPath)
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.hydrateSections(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given: the default
// order template plus etc/exchange.yaml from the project root when that file
// exists. Without it the provider is built from BINANCE_* variables.
func Default(opts ...LoadOption) (*Config, error) {
	confkit.LoadDotenvOnce()

	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if path, err := confkit.ProjectPath(DefaultExchangeFile); err == nil && !cfg.DryRun && fileExists(path) {
		cfg.baseDir = filepath.Dir(path)
		cfg.Exchange.File = path
	}
	if err := cfg.hydrateSections(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "", "test", "dev", "prod":
		if strings.TrimSpace(c.Env) == "" {
			c.Env = "test"
		}
	default:
		return errors.New("config: env must be one of test|dev|prod")
	}
	if strings.TrimSpace(c.Name) == "" {
		c.Name = "fapitrade"
	}
	if strings.TrimSpace(c.DryRunBalance) == "" {
		c.DryRunBalance = "10000"
	}
	if _, err := decimal.NewFromString(c.DryRunBalance); err != nil {
		return fmt.Errorf("config: dryRunBalance %q is not a number", c.DryRunBalance)
	}
	return c.Order.validate()
}

func (o *OrderConf) validate() error {
	if strings.TrimSpace(o.Symbol) == "" {
		o.Symbol = "BTCUSDT"
	}
	if strings.TrimSpace(o.Side) == "" {
		o.Side = string(exchangepkg.OrderSideBuy)
	}
	if strings.TrimSpace(o.Type) == "" {
		o.Type = string(exchangepkg.OrderTypeLimit)
	}
	if strings.TrimSpace(o.Quantity) == "" {
		o.Quantity = "0.001"
	}
	switch strings.ToUpper(strings.TrimSpace(o.Side)) {
	case string(exchangepkg.OrderSideBuy), string(exchangepkg.OrderSideSell):
	default:
		return fmt.Errorf("config: order.side must be BUY or SELL, got %q", o.Side)
	}
	return nil
}

func (c *Config) hydrateSections() error {
	if c.DryRun {
		return nil
	}
	if err := c.Exchange.Hydrate(c.baseDir, exchangepkg.LoadConfig); err != nil {
		return fmt.Errorf("load exchange config: %w", err)
	}
	return nil
}

func (c *Config) MainPath() string {
	return c.mainPath
}

func (c *Config) BaseDir() string {
	return c.baseDir
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
