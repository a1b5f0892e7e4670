package config

import (
	"strings"

	"github.com/shopspring/decimal"

	exchangepkg "fapitrade/pkg/exchange"
)

// OrderRequest converts the configured template into an order. Quantity and
// price are parsed as decimals; an empty price leaves Price nil so that LIMIT
// validation happens in the provider.
func (o OrderConf) OrderRequest() (exchangepkg.OrderRequest, error) {
	qty, err := decimal.NewFromString(strings.TrimSpace(o.Quantity))
	if err != nil {
		return exchangepkg.OrderRequest{}, exchangepkg.NewValidationError("quantity", "quantity is not a number", o.Quantity)
	}
	req := exchangepkg.OrderRequest{
		Symbol:      strings.TrimSpace(o.Symbol),
		Side:        exchangepkg.OrderSide(o.Side),
		Type:        exchangepkg.OrderType(o.Type),
		Quantity:    qty,
		TimeInForce: exchangepkg.TimeInForce(strings.ToUpper(strings.TrimSpace(o.TimeInForce))),
	}
	if raw := strings.TrimSpace(o.Price); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return exchangepkg.OrderRequest{}, exchangepkg.NewValidationError("price", "price is not a number", o.Price)
		}
		req.Price = &price
	}
	return req, nil
}
