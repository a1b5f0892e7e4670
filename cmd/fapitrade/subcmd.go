package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/zeromicro/go-zero/core/logx"

	appcli "fapitrade/internal/cli"
	"fapitrade/internal/config"
	"fapitrade/pkg/exchange"
	"fapitrade/pkg/logging"
)

var (
	runCommand = &cli.Command{
		Name:   "run",
		Usage:  "query the account, then place the configured order (the default LIMIT template needs --price)",
		Flags:  orderFlags,
		Action: runAction,
	}
	accountCommand = &cli.Command{
		Name:   "account",
		Usage:  "query account balances and positions",
		Action: accountAction,
	}
	orderCommand = &cli.Command{
		Name:   "order",
		Usage:  "place a single order (LIMIT orders need --price)",
		Flags:  orderFlags,
		Action: orderAction,
	}
	openOrdersCommand = &cli.Command{
		Name:   "open-orders",
		Usage:  "list resting orders",
		Flags:  []cli.Flag{SymbolFlag},
		Action: openOrdersAction,
	}
	cancelCommand = &cli.Command{
		Name:  "cancel",
		Usage: "cancel a resting order",
		Flags: []cli.Flag{
			SymbolFlag,
			&cli.Int64Flag{Name: "order-id", Usage: "exchange order `id`", Required: true},
		},
		Action: cancelAction,
	}
	pingCommand = &cli.Command{
		Name:   "ping",
		Usage:  "check connectivity and report the exchange clock",
		Action: pingAction,
	}
)

func runAction(c *cli.Context) error {
	cfg, r, err := setup(c)
	if err != nil {
		return err
	}
	order, err := orderFromFlags(c, cfg.Order)
	if err != nil {
		return r.reportError(c.Context, err)
	}
	return r.run(c.Context, order)
}

func accountAction(c *cli.Context) error {
	_, r, err := setup(c)
	if err != nil {
		return err
	}
	_, err = r.account(c.Context)
	return err
}

func orderAction(c *cli.Context) error {
	cfg, r, err := setup(c)
	if err != nil {
		return err
	}
	order, err := orderFromFlags(c, cfg.Order)
	if err != nil {
		return r.reportError(c.Context, err)
	}
	_, err = r.placeOrder(c.Context, order)
	return err
}

func openOrdersAction(c *cli.Context) error {
	cfg, r, err := setup(c)
	if err != nil {
		return err
	}
	symbol := cfg.Order.Symbol
	if c.IsSet(SymbolFlag.Name) {
		symbol = c.String(SymbolFlag.Name)
	}
	_, err = r.openOrders(c.Context, symbol)
	return err
}

func cancelAction(c *cli.Context) error {
	cfg, r, err := setup(c)
	if err != nil {
		return err
	}
	symbol := cfg.Order.Symbol
	if c.IsSet(SymbolFlag.Name) {
		symbol = c.String(SymbolFlag.Name)
	}
	_, err = r.cancel(c.Context, symbol, c.Int64("order-id"))
	return err
}

func pingAction(c *cli.Context) error {
	_, r, err := setup(c)
	if err != nil {
		return err
	}
	return r.ping(c.Context)
}

// setup loads configuration, configures logging and resolves the provider.
// Configuration failures are fatal and logged before returning.
func setup(c *cli.Context) (*config.Config, *runner, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		logx.Errorf("load configuration: %v", err)
		return nil, nil, &loggedError{err: err}
	}
	if err := logx.SetUp(cfg.Log); err != nil {
		return nil, nil, fmt.Errorf("set up logging: %w", err)
	}
	if level := c.String(LogLevelFlag.Name); level != "" {
		logging.SetLevel(level)
	}
	appcli.LogConfigSummary(cfg)

	logger := logging.New(cfg.Name)
	provider, err := cfg.BuildProvider()
	if err != nil {
		return nil, nil, newRunner(nil, logger).reportError(c.Context, err)
	}
	return cfg, newRunner(provider, logger), nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	dryRun := config.WithDryRun(c.Bool(DryRunFlag.Name))
	if path := strings.TrimSpace(c.String(ConfigFlag.Name)); path != "" {
		return config.Load(path, dryRun)
	}
	return config.Default(dryRun)
}

// orderFromFlags overlays any order flags given on the command line onto the
// configured order template.
func orderFromFlags(c *cli.Context, base config.OrderConf) (exchange.OrderRequest, error) {
	overlay := func(flag *cli.StringFlag, dst *string) {
		if c.IsSet(flag.Name) {
			*dst = c.String(flag.Name)
		}
	}
	overlay(SymbolFlag, &base.Symbol)
	overlay(SideFlag, &base.Side)
	overlay(TypeFlag, &base.Type)
	overlay(QuantityFlag, &base.Quantity)
	overlay(PriceFlag, &base.Price)
	overlay(TimeInForceFlag, &base.TimeInForce)
	return base.OrderRequest()
}
