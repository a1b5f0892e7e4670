package binance

import (
	"context"
	"net/http"

	"fapitrade/pkg/exchange"
)

// GetAccountInfo fetches the futures account snapshot (balances, positions).
func (c *Client) GetAccountInfo(ctx context.Context) (exchange.Response, error) {
	payload, err := c.signed(ctx, http.MethodGet, pathAccount, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(payload)
}
