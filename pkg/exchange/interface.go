package exchange

import (
	"context"
	"time"
)

// Provider exposes the trading operations supported by the CLI.
type Provider interface {
	// Account information.
	GetAccountInfo(ctx context.Context) (Response, error)

	// Order management.
	PlaceOrder(ctx context.Context, order OrderRequest) (Response, error)
	CancelOrder(ctx context.Context, symbol string, orderID int64) (Response, error)
	GetOpenOrders(ctx context.Context, symbol string) ([]Response, error)

	// Connectivity.
	Ping(ctx context.Context) error
	ServerTime(ctx context.Context) (time.Time, error)
}
