package binance

import (
	"fapitrade/pkg/exchange"
	"fapitrade/pkg/logging"
)

func init() {
	exchange.RegisterProvider("binance", func(name string, cfg *exchange.ProviderConfig) (exchange.Provider, error) {
		creds := Credentials{
			APIKey:    cfg.APIKey,
			APISecret: cfg.APISecret,
			BaseURL:   cfg.BaseURL,
			Timeout:   cfg.Timeout,
		}
		if creds.BaseURL == "" && cfg.Mainnet {
			creds.BaseURL = MainnetBaseURL
		}
		opts := []ClientOption{WithLogger(logging.New("binance." + name))}
		if cfg.RecvWindow > 0 {
			opts = append(opts, WithRecvWindow(cfg.RecvWindow))
		}
		return NewClient(creds, opts...)
	})
}

var _ exchange.Provider = (*Client)(nil)
