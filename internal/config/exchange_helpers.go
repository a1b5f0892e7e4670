package config

import (
	"fmt"

	"fapitrade/pkg/exchange"
	"fapitrade/pkg/exchange/binance"
	_ "fapitrade/pkg/exchange/sim"
)

// BuildProvider resolves the provider the entry flow talks to. Dry runs use
// the sim provider; otherwise the exchange section's default provider is
// used, falling back to a testnet client built from BINANCE_* variables.
func (c *Config) BuildProvider() (exchange.Provider, error) {
	if c.DryRun {
		return exchange.GetProvider("sim", &exchange.ProviderConfig{WalletBalance: c.DryRunBalance})
	}
	if c.Exchange.Value != nil {
		provider, err := c.Exchange.Value.DefaultProvider()
		if err != nil {
			return nil, fmt.Errorf("exchange section %s: %w", c.Exchange.File, err)
		}
		return provider, nil
	}
	creds, err := binance.LoadCredentials()
	if err != nil {
		return nil, err
	}
	return binance.NewClient(creds)
}
