package oracle

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Request is one asynchronous job for the oracle network: run the supplied
// source program with the given arguments and post the result back to the
// callback endpoint, correlated by the request id.
type Request struct {
	ID           uuid.UUID `json:"request_id"`
	Source       []byte    `json:"source"`
	Args         [3]string `json:"args"`
	Subscription uint64    `json:"subscription"`
	GasLimit     uint32    `json:"gas_limit"`
	CallbackURL  string    `json:"callback_url"`
}

// Response is the oracle network's terminal answer for one request. Exactly
// one of Payload and Err is non-empty.
type Response struct {
	RequestID uuid.UUID `json:"request_id"`
	Payload   []byte    `json:"payload"`
	Err       []byte    `json:"error"`
}

// Client dispatches requests to the oracle network. Dispatch returns as soon
// as the request is accepted; the answer arrives later through the callback
// endpoint.
type Client interface {
	Dispatch(ctx context.Context, req Request) error
}

// HTTPClient posts requests to an oracle gateway over HTTP.
type HTTPClient struct {
	gatewayURL string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Options configures the HTTP oracle client.
type Options struct {
	GatewayURL string
	Timeout    time.Duration
	// RequestsPerSecond caps outbound dispatch; the gateway meters
	// subscriptions and rejects bursts.
	RequestsPerSecond float64
	Burst             int
}

// NewHTTPClient returns a rate-limited oracle gateway client.
func NewHTTPClient(opts Options) *HTTPClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 1
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	return &HTTPClient{
		gatewayURL: opts.GatewayURL,
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
	}
}

// Dispatch sends the request to the gateway. A non-2xx status is an error;
// the caller's transaction aborts and the correlation entry never commits.
func (c *HTTPClient) Dispatch(ctx context.Context, req Request) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("oracle dispatch rate limit: %w", err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode oracle request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build oracle request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("dispatch oracle request %s: %w", req.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("oracle gateway rejected request %s: status %d", req.ID, resp.StatusCode)
	}
	return nil
}

// DecodeUint32 extracts the low 32 bits of a big-endian response payload.
// Scoring responses pack the final score there as away*1000 + home.
func DecodeUint32(payload []byte) (uint32, error) {
	if len(payload) == 0 {
		return 0, fmt.Errorf("empty oracle payload")
	}
	if len(payload) < 4 {
		padded := make([]byte, 4)
		copy(padded[4-len(payload):], payload)
		return binary.BigEndian.Uint32(padded), nil
	}
	return binary.BigEndian.Uint32(payload[len(payload)-4:]), nil
}
