package binance

import (
	"context"
	"net/http"
	"strings"

	"fapitrade/pkg/exchange"
)

// buildOrderParams converts an order into wire parameters. LIMIT orders must
// carry a price and additionally send price and timeInForce; every other type
// is forwarded with symbol, side, type and quantity only.
func buildOrderParams(order exchange.OrderRequest) (*Params, error) {
	if err := exchange.ValidateOrder(order); err != nil {
		return nil, err
	}
	params := NewParams().
		Set("symbol", String(order.Symbol)).
		Set("side", String(order.NormalisedSide())).
		Set("type", String(order.NormalisedType())).
		Set("quantity", Decimal(order.Quantity))
	if order.IsLimit() {
		params.Set("price", Decimal(*order.Price))
		params.Set("timeInForce", String(order.EffectiveTimeInForce()))
	}
	return params, nil
}

// PlaceOrder submits a single order. Validation failures are returned before
// any request is sent.
func (c *Client) PlaceOrder(ctx context.Context, order exchange.OrderRequest) (exchange.Response, error) {
	params, err := buildOrderParams(order)
	if err != nil {
		return nil, err
	}
	payload, err := c.signed(ctx, http.MethodPost, pathOrder, params)
	if err != nil {
		return nil, err
	}
	return decodeObject(payload)
}

// CancelOrder cancels a resting order by exchange order id.
func (c *Client) CancelOrder(ctx context.Context, symbol string, orderID int64) (exchange.Response, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, exchange.NewValidationError("symbol", "symbol is required", nil)
	}
	if orderID <= 0 {
		return nil, exchange.NewValidationError("orderId", "order id must be positive", orderID)
	}
	params := NewParams().
		Set("symbol", String(symbol)).
		Set("orderId", Int(orderID))
	payload, err := c.signed(ctx, http.MethodDelete, pathOrder, params)
	if err != nil {
		return nil, err
	}
	return decodeObject(payload)
}

// GetOpenOrders lists resting orders, optionally restricted to one symbol.
func (c *Client) GetOpenOrders(ctx context.Context, symbol string) ([]exchange.Response, error) {
	params := NewParams().Set("symbol", String(strings.TrimSpace(symbol)))
	payload, err := c.signed(ctx, http.MethodGet, pathOpenOrders, params)
	if err != nil {
		return nil, err
	}
	return decodeList(payload)
}
