package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fapitrade/pkg/exchange"
	"fapitrade/pkg/exchange/binance"
	"fapitrade/pkg/exchange/sim"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadWithExchangeSection(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	t.Setenv("BINANCE_API_KEY", "key")
	t.Setenv("BINANCE_API_SECRET", "secret")
	dir := t.TempDir()

	writeFile(t, dir, "exchange.yaml", `
default: testnet
providers:
  testnet:
    type: binance
    api_key: ${BINANCE_API_KEY}
    api_secret: ${BINANCE_API_SECRET}
    timeout: 3s
`)
	mainPath := writeFile(t, dir, "fapitrade.yaml", `
Name: fapitrade
Env: dev
Log:
  Mode: console
  Level: info
Exchange:
  File: exchange.yaml
Order:
  Symbol: ETHUSDT
  Side: sell
  Type: LIMIT
  Quantity: "0.5"
  Price: "3000.25"
`)

	cfg, err := Load(mainPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "dev" {
		t.Fatalf("unexpected env %q", cfg.Env)
	}
	if cfg.BaseDir() != dir {
		t.Fatalf("unexpected base dir %q", cfg.BaseDir())
	}
	if cfg.Exchange.Value == nil {
		t.Fatalf("exchange section not hydrated")
	}
	if got := cfg.Exchange.File; got != filepath.Join(dir, "exchange.yaml") {
		t.Fatalf("exchange file not resolved, got %q", got)
	}

	provider, err := cfg.BuildProvider()
	if err != nil {
		t.Fatalf("BuildProvider: %v", err)
	}
	if _, ok := provider.(*binance.Client); !ok {
		t.Fatalf("expected *binance.Client, got %T", provider)
	}

	order, err := cfg.Order.OrderRequest()
	if err != nil {
		t.Fatalf("OrderRequest: %v", err)
	}
	if order.Symbol != "ETHUSDT" || order.NormalisedSide() != "SELL" || !order.IsLimit() {
		t.Fatalf("unexpected order %+v", order)
	}
	if order.Price == nil || order.Price.String() != "3000.25" {
		t.Fatalf("unexpected price %v", order.Price)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	dir := t.TempDir()
	mainPath := writeFile(t, dir, "fapitrade.yaml", "Name: fapitrade\n")

	cfg, err := Load(mainPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.IsTestEnv() {
		t.Fatalf("expected test env, got %q", cfg.Env)
	}
	if cfg.Order.Symbol != "BTCUSDT" || cfg.Order.Type != "LIMIT" || cfg.Order.Quantity != "0.001" {
		t.Fatalf("order defaults not applied: %+v", cfg.Order)
	}
	if cfg.Exchange.Configured() {
		t.Fatalf("exchange section should be empty")
	}
}

func TestValidateRejectsUnknownEnv(t *testing.T) {
	cfg := &Config{Env: "staging"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected env validation error")
	}
}

func TestValidateRejectsBadSide(t *testing.T) {
	cfg := &Config{Order: OrderConf{Side: "HOLD"}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected order.side validation error")
	}
}

func TestValidateRejectsBadBalance(t *testing.T) {
	cfg := &Config{DryRunBalance: "lots"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected dryRunBalance validation error")
	}
}

func TestOrderRequestParsing(t *testing.T) {
	if _, err := (OrderConf{Quantity: "abc"}).OrderRequest(); !errors.Is(err, exchange.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for bad quantity, got %v", err)
	}
	if _, err := (OrderConf{Quantity: "1", Price: "x"}).OrderRequest(); !errors.Is(err, exchange.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for bad price, got %v", err)
	}

	order, err := (OrderConf{Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET", Quantity: "0.002", TimeInForce: "ioc"}).OrderRequest()
	if err != nil {
		t.Fatalf("OrderRequest: %v", err)
	}
	if order.Price != nil {
		t.Fatalf("expected nil price")
	}
	if order.TimeInForce != exchange.TimeInForceIOC {
		t.Fatalf("unexpected time in force %q", order.TimeInForce)
	}
}

func TestBuildProviderDryRun(t *testing.T) {
	cfg, err := Default(WithDryRun(true))
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	cfg.DryRunBalance = "42"

	provider, err := cfg.BuildProvider()
	if err != nil {
		t.Fatalf("BuildProvider: %v", err)
	}
	if _, ok := provider.(*sim.Provider); !ok {
		t.Fatalf("expected *sim.Provider, got %T", provider)
	}
}

func TestBuildProviderFromEnvRequiresSecret(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	t.Setenv("BINANCE_API_KEY", "key")
	t.Setenv("BINANCE_API_SECRET", "")
	t.Setenv("BINANCE_BASE_URL", "")
	t.Setenv("BINANCE_TIMEOUT", "")
	os.Unsetenv("BINANCE_BASE_URL")
	os.Unsetenv("BINANCE_TIMEOUT")

	cfg := &Config{}
	_, err := cfg.BuildProvider()
	var cfgErr *exchange.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %T: %v", err, err)
	}
	if !errors.Is(err, exchange.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestBuildProviderFromEnv(t *testing.T) {
	t.Setenv("BINANCE_API_KEY", "key")
	t.Setenv("BINANCE_API_SECRET", "secret")
	t.Setenv("BINANCE_BASE_URL", "")
	t.Setenv("BINANCE_TIMEOUT", "")
	os.Unsetenv("BINANCE_BASE_URL")
	os.Unsetenv("BINANCE_TIMEOUT")

	provider, err := (&Config{}).BuildProvider()
	if err != nil {
		t.Fatalf("BuildProvider: %v", err)
	}
	client, ok := provider.(*binance.Client)
	if !ok {
		t.Fatalf("expected *binance.Client, got %T", provider)
	}
	if client.BaseURL() != binance.TestnetBaseURL {
		t.Fatalf("unexpected base url %q", client.BaseURL())
	}
}

func TestDefaultUsesProjectExchangeFile(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	t.Setenv("BINANCE_API_KEY", "key")
	t.Setenv("BINANCE_API_SECRET", "secret")

	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if cfg.Exchange.Value == nil {
		t.Fatalf("etc/exchange.yaml not hydrated")
	}
	if cfg.Exchange.Value.Default != "binance_testnet" {
		t.Fatalf("unexpected default %q", cfg.Exchange.Value.Default)
	}
	if _, ok := cfg.Exchange.Value.Providers["paper"]; !ok {
		t.Fatalf("paper provider missing from etc/exchange.yaml")
	}
}

func TestDryRunSkipsExchangeSection(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	for _, key := range []string{"BINANCE_API_KEY", "BINANCE_API_SECRET"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	mainPath, err := filepath.Abs(filepath.Join("..", "..", "etc", "fapitrade.yaml"))
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}

	if _, err := Load(mainPath); !errors.Is(err, exchange.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials without dry run, got %v", err)
	}

	cfg, err := Load(mainPath, WithDryRun(true))
	if err != nil {
		t.Fatalf("Load dry run: %v", err)
	}
	if !cfg.DryRun || cfg.Exchange.Value != nil {
		t.Fatalf("dry run should leave the exchange section unloaded: %+v", cfg.Exchange)
	}
	provider, err := cfg.BuildProvider()
	if err != nil {
		t.Fatalf("BuildProvider: %v", err)
	}
	if _, ok := provider.(*sim.Provider); !ok {
		t.Fatalf("expected *sim.Provider, got %T", provider)
	}

	cfg, err = Default(WithDryRun(true))
	if err != nil {
		t.Fatalf("Default dry run: %v", err)
	}
	if cfg.Exchange.Value != nil {
		t.Fatalf("dry run default should not hydrate etc/exchange.yaml")
	}
}
