package sim

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"fapitrade/pkg/exchange"
	"fapitrade/pkg/logging"
)

var defaultWalletBalance = decimal.NewFromInt(10000)

// Provider is a dry-run exchange: it validates orders exactly like the live
// client, keeps them in memory and never touches the network.
type Provider struct {
	mu sync.Mutex

	walletBalance decimal.Decimal
	nextOrderID   int64
	orders        []Order
	open          map[int64]Order

	logger logging.Logger
	clock  func() time.Time
}

// Order is an order accepted by the simulator.
type Order struct {
	ID      int64
	Request exchange.OrderRequest
	Status  string
	Time    time.Time
}

// Option customises the simulator.
type Option func(*Provider)

// WithWalletBalance sets the balance reported by GetAccountInfo.
func WithWalletBalance(balance decimal.Decimal) Option {
	return func(p *Provider) {
		if balance.IsPositive() {
			p.walletBalance = balance
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger logging.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(p *Provider) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// New constructs a simulator with a default wallet balance.
func New(opts ...Option) *Provider {
	p := &Provider{
		walletBalance: defaultWalletBalance,
		nextOrderID:   1,
		open:          make(map[int64]Order),
		logger:        logging.New("sim"),
		clock:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func init() {
	exchange.RegisterProvider("sim", func(name string, cfg *exchange.ProviderConfig) (exchange.Provider, error) {
		opts := []Option{WithLogger(logging.New("sim." + name))}
		if cfg.WalletBalance != "" {
			balance, err := decimal.NewFromString(cfg.WalletBalance)
			if err != nil {
				return nil, fmt.Errorf("sim: invalid wallet_balance %q: %w", cfg.WalletBalance, err)
			}
			opts = append(opts, WithWalletBalance(balance))
		}
		return New(opts...), nil
	})
}

// GetAccountInfo reports the configured wallet balance.
func (p *Provider) GetAccountInfo(ctx context.Context) (exchange.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	balance := p.walletBalance.String()
	return exchange.Response{
		"totalWalletBalance": balance,
		"availableBalance":   balance,
		"canTrade":           true,
		"updateTime":         p.clock().UnixMilli(),
	}, nil
}

// PlaceOrder validates and records the order. MARKET orders fill at once,
// LIMIT orders rest until cancelled.
func (p *Provider) PlaceOrder(ctx context.Context, req exchange.OrderRequest) (exchange.Response, error) {
	if err := exchange.ValidateOrder(req); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	order := Order{
		ID:      p.nextOrderID,
		Request: req,
		Status:  "FILLED",
		Time:    p.clock(),
	}
	p.nextOrderID++
	if req.IsLimit() {
		order.Status = "NEW"
		p.open[order.ID] = order
	}
	p.orders = append(p.orders, order)

	p.logger.Info(ctx, "dry-run order accepted", logging.Fields{
		"orderId": order.ID,
		"symbol":  req.Symbol,
		"side":    req.NormalisedSide(),
		"type":    req.NormalisedType(),
	})
	return orderResponse(order), nil
}

// CancelOrder removes a resting order.
func (p *Provider) CancelOrder(ctx context.Context, symbol string, orderID int64) (exchange.Response, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, exchange.NewValidationError("symbol", "symbol is required", nil)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	order, ok := p.open[orderID]
	if !ok || !strings.EqualFold(order.Request.Symbol, symbol) {
		return nil, &exchange.APIError{StatusCode: 400, Body: `{"code":-2011,"msg":"Unknown order sent."}`}
	}
	delete(p.open, orderID)
	order.Status = "CANCELED"
	return orderResponse(order), nil
}

// GetOpenOrders lists resting orders, optionally for one symbol.
func (p *Provider) GetOpenOrders(ctx context.Context, symbol string) ([]exchange.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]exchange.Response, 0, len(p.open))
	for _, order := range p.orders {
		open, ok := p.open[order.ID]
		if !ok {
			continue
		}
		if symbol != "" && !strings.EqualFold(open.Request.Symbol, symbol) {
			continue
		}
		out = append(out, orderResponse(open))
	}
	return out, nil
}

// Ping always succeeds.
func (p *Provider) Ping(ctx context.Context) error { return nil }

// ServerTime returns the simulator clock.
func (p *Provider) ServerTime(ctx context.Context) (time.Time, error) {
	return p.clock(), nil
}

// Orders returns every order accepted so far.
func (p *Provider) Orders() []Order {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Order(nil), p.orders...)
}

func orderResponse(order Order) exchange.Response {
	resp := exchange.Response{
		"orderId":    order.ID,
		"symbol":     order.Request.Symbol,
		"side":       order.Request.NormalisedSide(),
		"type":       order.Request.NormalisedType(),
		"origQty":    order.Request.Quantity.String(),
		"status":     order.Status,
		"updateTime": order.Time.UnixMilli(),
	}
	if order.Request.IsLimit() {
		resp["price"] = order.Request.Price.String()
		resp["timeInForce"] = order.Request.EffectiveTimeInForce()
	}
	return resp
}

var _ exchange.Provider = (*Provider)(nil)
