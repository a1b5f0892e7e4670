package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zeromicro/go-zero/core/logx"

	"fapitrade/internal/config"
)

func TestConfigSummaryLines(t *testing.T) {
	assert.Equal(t, []string{"Configuration: <nil>"}, ConfigSummaryLines(nil))

	cfg := &config.Config{
		Env:           "test",
		DryRun:        true,
		DryRunBalance: "500",
		Order: config.OrderConf{
			Symbol:   "BTCUSDT",
			Side:     "buy",
			Type:     "limit",
			Quantity: "0.001",
			Price:    "25000",
		},
	}
	cfg.Exchange.File = "/etc/fapitrade/exchange.yaml"

	lines := ConfigSummaryLines(cfg)
	assert.Equal(t, []string{
		"Environment: test",
		"Dry run: enabled",
		"Exchange config: /etc/fapitrade/exchange.yaml",
		"Order: LIMIT BUY BTCUSDT qty=0.001 price=25000",
		"Dry run balance: 500",
	}, lines)
}

func TestConfigSummaryEnvironmentCredentials(t *testing.T) {
	cfg := &config.Config{Env: "dev", Order: config.OrderConf{Symbol: "ETHUSDT", Side: "SELL", Type: "MARKET", Quantity: "1"}}
	lines := ConfigSummaryLines(cfg)
	assert.Contains(t, lines, "Exchange config: environment")
	assert.Contains(t, lines, "Order: MARKET SELL ETHUSDT qty=1")
	assert.Len(t, lines, 4)
}

func TestLogConfigSummary(t *testing.T) {
	var buf bytes.Buffer
	prev := logx.Reset()
	logx.SetWriter(logx.NewWriter(&buf))
	t.Cleanup(func() {
		logx.Reset()
		if prev != nil {
			logx.SetWriter(prev)
		}
	})

	LogConfigSummary(&config.Config{Env: "prod"})
	assert.Contains(t, buf.String(), "configuration summary")
	assert.Contains(t, buf.String(), "Environment: prod")
}
