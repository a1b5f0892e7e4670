package main

import (
	"context"
	"errors"

	"fapitrade/pkg/exchange"
	"fapitrade/pkg/logging"
)

// runner drives the provider for one CLI invocation and logs every outcome.
type runner struct {
	provider exchange.Provider
	logger   logging.Logger
}

func newRunner(provider exchange.Provider, logger logging.Logger) *runner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &runner{provider: provider, logger: logger}
}

// run is the default flow: one account query followed by one order. An
// account failure stops the flow before the order is sent.
func (r *runner) run(ctx context.Context, order exchange.OrderRequest) error {
	if _, err := r.account(ctx); err != nil {
		return err
	}
	_, err := r.placeOrder(ctx, order)
	return err
}

func (r *runner) account(ctx context.Context) (exchange.Response, error) {
	info, err := r.provider.GetAccountInfo(ctx)
	if err != nil {
		return nil, r.reportError(ctx, err)
	}
	r.logger.Info(ctx, "account info", logging.Fields{
		"totalWalletBalance": info.String("totalWalletBalance"),
		"availableBalance":   info.String("availableBalance"),
	})
	return info, nil
}

func (r *runner) placeOrder(ctx context.Context, order exchange.OrderRequest) (exchange.Response, error) {
	resp, err := r.provider.PlaceOrder(ctx, order)
	if err != nil {
		return nil, r.reportError(ctx, err)
	}
	r.logger.Info(ctx, "order placed", logging.Fields{
		"symbol":  resp.String("symbol"),
		"orderId": resp.String("orderId"),
		"status":  resp.String("status"),
		"side":    resp.String("side"),
		"type":    resp.String("type"),
	})
	return resp, nil
}

func (r *runner) openOrders(ctx context.Context, symbol string) ([]exchange.Response, error) {
	orders, err := r.provider.GetOpenOrders(ctx, symbol)
	if err != nil {
		return nil, r.reportError(ctx, err)
	}
	r.logger.Info(ctx, "open orders", logging.Fields{"symbol": symbol, "count": len(orders)})
	for _, o := range orders {
		r.logger.Info(ctx, "open order", logging.Fields{
			"orderId": o.String("orderId"),
			"symbol":  o.String("symbol"),
			"price":   o.String("price"),
			"origQty": o.String("origQty"),
		})
	}
	return orders, nil
}

func (r *runner) cancel(ctx context.Context, symbol string, orderID int64) (exchange.Response, error) {
	resp, err := r.provider.CancelOrder(ctx, symbol, orderID)
	if err != nil {
		return nil, r.reportError(ctx, err)
	}
	r.logger.Info(ctx, "order cancelled", logging.Fields{
		"orderId": resp.String("orderId"),
		"status":  resp.String("status"),
	})
	return resp, nil
}

func (r *runner) ping(ctx context.Context) error {
	if err := r.provider.Ping(ctx); err != nil {
		return r.reportError(ctx, err)
	}
	serverTime, err := r.provider.ServerTime(ctx)
	if err != nil {
		return r.reportError(ctx, err)
	}
	r.logger.Info(ctx, "exchange reachable", logging.Fields{"serverTime": serverTime.UTC().Format("2006-01-02T15:04:05.000Z")})
	return nil
}

// errorFields classifies err for logging.
func errorFields(err error) logging.Fields {
	var (
		apiErr       *exchange.APIError
		transportErr *exchange.TransportError
		validErr     *exchange.ValidationError
		cfgErr       *exchange.ConfigError
	)
	switch {
	case errors.As(err, &apiErr):
		fields := logging.Fields{"kind": "api", "status": apiErr.StatusCode, "body": apiErr.Body}
		if code, msg, ok := apiErr.ExchangeCode(); ok {
			fields["code"], fields["msg"] = code, msg
		}
		return fields
	case errors.As(err, &transportErr):
		return logging.Fields{"kind": "transport", "method": transportErr.Method, "path": transportErr.Path}
	case errors.As(err, &validErr):
		return logging.Fields{"kind": "validation", "field": validErr.Field}
	case errors.As(err, &cfgErr):
		return logging.Fields{"kind": "config", "field": cfgErr.Field}
	default:
		return logging.Fields{"kind": "unknown"}
	}
}

// reportError logs err once and marks it as logged so main does not print it
// again.
func (r *runner) reportError(ctx context.Context, err error) error {
	r.logger.Error(ctx, err, errorFields(err))
	return &loggedError{err: err}
}

// loggedError wraps an error that has already been written to the log.
type loggedError struct {
	err error
}

func (e *loggedError) Error() string { return e.err.Error() }

func (e *loggedError) Unwrap() error { return e.err }

// alreadyLogged reports whether err was written to the log by an action.
func alreadyLogged(err error) bool {
	var logged *loggedError
	return errors.As(err, &logged)
}
