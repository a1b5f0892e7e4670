package binance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fapitrade/pkg/exchange"
	"fapitrade/pkg/logging"
)

const (
	apiKeyHeader = "X-MBX-APIKEY"

	pathAccount    = "/fapi/v2/account"
	pathOrder      = "/fapi/v1/order"
	pathOpenOrders = "/fapi/v1/openOrders"
	pathPing       = "/fapi/v1/ping"
	pathTime       = "/fapi/v1/time"
)

// HTTPDoer is the subset of *http.Client the client depends on.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues requests against the Binance USD-M futures REST API. Each
// call is a single attempt; nothing is retried.
type Client struct {
	creds      Credentials
	httpClient HTTPDoer
	signer     Signer
	logger     logging.Logger
	clock      func() time.Time
	recvWindow time.Duration
}

// ClientOption customises the Binance client.
type ClientOption func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(httpClient HTTPDoer) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger attaches a logger (defaults to a logx logger named "binance").
func WithLogger(logger logging.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source used for request timestamps.
func WithClock(clock func() time.Time) ClientOption {
	return func(c *Client) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithSigner replaces the HMAC signer derived from the API secret.
func WithSigner(signer Signer) ClientOption {
	return func(c *Client) {
		if signer != nil {
			c.signer = signer
		}
	}
}

// WithRecvWindow adds a recvWindow parameter to signed requests.
func WithRecvWindow(window time.Duration) ClientOption {
	return func(c *Client) {
		if window > 0 {
			c.recvWindow = window
		}
	}
}

// NewClient validates creds and constructs a client. Missing credentials fail
// here, before any network activity.
func NewClient(creds Credentials, opts ...ClientOption) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	creds = creds.withDefaults()

	client := &Client{
		creds:      creds,
		httpClient: &http.Client{Timeout: creds.Timeout},
		signer:     NewHMACSigner(creds.APISecret),
		logger:     logging.New("binance"),
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// BaseURL returns the host requests are sent to.
func (c *Client) BaseURL() string {
	return c.creds.BaseURL
}

// get issues an unsigned GET.
func (c *Client) get(ctx context.Context, path string, params *Params) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, params, false)
}

// signed issues a signed request.
func (c *Client) signed(ctx context.Context, method, path string, params *Params) ([]byte, error) {
	return c.do(ctx, method, path, params, true)
}

// do sends one request and returns the body of a 200 response. Failures
// before a response arrives become *exchange.TransportError; any other status
// becomes *exchange.APIError carrying the raw body.
func (c *Client) do(ctx context.Context, method, path string, params *Params, signed bool) ([]byte, error) {
	params = params.Clone()

	var query string
	if signed {
		params.Set("timestamp", Int(c.clock().UnixMilli()))
		if c.recvWindow > 0 {
			params.Set("recvWindow", Int(c.recvWindow.Milliseconds()))
		}
		query = SignParams(params, c.signer)
	} else {
		query = params.Encode()
	}

	reqURL := c.creds.BaseURL + path
	var body io.Reader
	switch method {
	case http.MethodPost, http.MethodPut:
		body = strings.NewReader(query)
	default:
		if query != "" {
			reqURL += "?" + query
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.creds.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("binance: build request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.creds.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &exchange.TransportError{Method: method, Path: path, Err: c.redact(err, path)}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &exchange.TransportError{Method: method, Path: path, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug(ctx, "binance request completed", logging.Fields{
		"method":  method,
		"path":    path,
		"signed":  signed,
		"status":  resp.StatusCode,
		"elapsed": time.Since(started).String(),
	})

	if resp.StatusCode != http.StatusOK {
		return nil, &exchange.APIError{StatusCode: resp.StatusCode, Body: string(payload)}
	}
	return payload, nil
}

// redact strips the query string (timestamp and signature) from URL errors so
// transport failures can be logged as-is.
func (c *Client) redact(err error, path string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		clone := *urlErr
		clone.URL = c.creds.BaseURL + path
		return &clone
	}
	return err
}

func decodeObject(payload []byte) (exchange.Response, error) {
	resp, err := exchange.DecodeResponse(payload)
	if err != nil {
		return nil, fmt.Errorf("binance: decode response: %w", err)
	}
	return resp, nil
}

func decodeList(payload []byte) ([]exchange.Response, error) {
	resp, err := exchange.DecodeResponseList(payload)
	if err != nil {
		return nil, fmt.Errorf("binance: decode response: %w", err)
	}
	return resp, nil
}

// Ping checks connectivity with an unsigned request.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, pathPing, nil)
	return err
}

// ServerTime returns the exchange clock.
func (c *Client) ServerTime(ctx context.Context) (time.Time, error) {
	payload, err := c.get(ctx, pathTime, nil)
	if err != nil {
		return time.Time{}, err
	}
	resp, err := decodeObject(payload)
	if err != nil {
		return time.Time{}, err
	}
	ms, err := resp.Int64("serverTime")
	if err != nil {
		return time.Time{}, fmt.Errorf("binance: %w", err)
	}
	return time.UnixMilli(ms), nil
}
