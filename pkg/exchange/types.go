package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderSide represents order direction. Values are upper-cased before they
// reach the wire, so "buy" and "BUY" are equivalent.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// OrderType is the exchange order type. Only LIMIT carries extra
// requirements; every other type is forwarded as-is.
type OrderType string

const (
	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeMarket OrderType = "MARKET"
)

// TimeInForce controls how long a LIMIT order rests on the book.
type TimeInForce string

const (
	TimeInForceGTC TimeInForce = "GTC"
	TimeInForceIOC TimeInForce = "IOC"
	TimeInForceFOK TimeInForce = "FOK"
	TimeInForceGTX TimeInForce = "GTX"
)

// OrderRequest describes a single order placement.
type OrderRequest struct {
	Symbol      string
	Side        OrderSide
	Type        OrderType
	Quantity    decimal.Decimal
	Price       *decimal.Decimal // required for LIMIT orders, ignored otherwise
	TimeInForce TimeInForce      // defaults to GTC for LIMIT orders
}

// NormalisedSide returns the upper-cased side.
func (o OrderRequest) NormalisedSide() string {
	return strings.ToUpper(strings.TrimSpace(string(o.Side)))
}

// NormalisedType returns the upper-cased order type.
func (o OrderRequest) NormalisedType() string {
	return strings.ToUpper(strings.TrimSpace(string(o.Type)))
}

// IsLimit reports whether the order type is LIMIT after normalisation.
func (o OrderRequest) IsLimit() bool {
	return o.NormalisedType() == string(OrderTypeLimit)
}

// EffectiveTimeInForce returns the configured time in force or GTC.
func (o OrderRequest) EffectiveTimeInForce() string {
	tif := strings.TrimSpace(string(o.TimeInForce))
	if tif == "" {
		return string(TimeInForceGTC)
	}
	return tif
}

// ValidateOrder checks the preconditions shared by every provider. A LIMIT
// order must carry a price; no other order type is inspected.
func ValidateOrder(o OrderRequest) error {
	if o.IsLimit() && o.Price == nil {
		return NewValidationError("price", "price is required for LIMIT orders", nil)
	}
	return nil
}

// Response is a decoded JSON object returned by the exchange. Numbers are kept
// as json.Number so no precision is lost.
type Response map[string]interface{}

// DecodeResponse parses a JSON object body.
func DecodeResponse(body []byte) (Response, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var out Response
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeResponseList parses a JSON array of objects.
func DecodeResponseList(body []byte) ([]Response, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var out []Response
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// String returns the value at key rendered as a string, or "" when absent.
func (r Response) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Int64 returns the integer value at key.
func (r Response) Int64(key string) (int64, error) {
	switch v := r[key].(type) {
	case json.Number:
		return v.Int64()
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case nil:
		return 0, fmt.Errorf("response: field %q missing", key)
	default:
		return 0, fmt.Errorf("response: field %q is %T, not a number", key, v)
	}
}

// Decode re-marshals the response into a typed structure.
func (r Response) Decode(into interface{}) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("response: encode: %w", err)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("response: decode: %w", err)
	}
	return nil
}
