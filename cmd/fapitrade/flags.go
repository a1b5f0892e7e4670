package main

import "github.com/urfave/cli/v2"

var (
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"f"},
		Value:   "",
		Usage:   "load application configuration from `file` (credentials come from the environment when omitted)",
	}
	DryRunFlag = &cli.BoolFlag{
		Name:  "dry-run",
		Usage: "use the in-memory sim provider instead of the exchange",
	}
	LogLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Value: "",
		Usage: "override the log `level` (debug|info|error|severe)",
	}

	SymbolFlag = &cli.StringFlag{
		Name:  "symbol",
		Usage: "contract `symbol`, e.g. BTCUSDT",
	}
	SideFlag = &cli.StringFlag{
		Name:  "side",
		Usage: "order `side`: BUY or SELL",
	}
	TypeFlag = &cli.StringFlag{
		Name:  "type",
		Usage: "order `type`: LIMIT, MARKET, ...",
	}
	QuantityFlag = &cli.StringFlag{
		Name:    "quantity",
		Aliases: []string{"q"},
		Usage:   "order `quantity`",
	}
	PriceFlag = &cli.StringFlag{
		Name:    "price",
		Aliases: []string{"p"},
		Usage:   "limit `price`, required for LIMIT orders",
	}
	TimeInForceFlag = &cli.StringFlag{
		Name:  "tif",
		Usage: "time in force for LIMIT orders (default GTC)",
	}

	orderFlags = []cli.Flag{SymbolFlag, SideFlag, TypeFlag, QuantityFlag, PriceFlag, TimeInForceFlag}
)
