package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// Transport issues a single report request. Implementations never retry.
// A nil response without an error is treated as malformed.
type Transport interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// httpTransport implements Transport over the JSON/HTTP contract.
type httpTransport struct {
	cfg  Config
	http *http.Client
}

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

// NewHTTPTransport creates a Transport that POSTs to cfg.Endpoint.
func NewHTTPTransport(cfg Config) Transport {
	return &httpTransport{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DisableKeepAlives: true,
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

func (c *httpTransport) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	tiers, err := c.doRequest(ctx, req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if isConnectionError(err) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, err
	}

	return &Response{Tiers: tiers, LatencyMs: time.Since(start).Milliseconds()}, nil
}

func (c *httpTransport) doRequest(ctx context.Context, req Request) ([]domain.Tier, error) {
	data, err := json.Marshal(wireRequest{Modules: req.ModuleIDs})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if req.ID != "" {
		httpReq.Header.Set("X-Request-ID", req.ID)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if !isJSONMediaType(httpResp.Header.Get("Content-Type")) {
		return nil, fmt.Errorf("%w: status %d, content type %q",
			ErrContentType, httpResp.StatusCode, httpResp.Header.Get("Content-Type"))
	}

	tiers, err := decodeEnvelope(body)
	var logical *LogicalError
	if errors.As(err, &logical) {
		return nil, err
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, httpResp.StatusCode)
	}
	return tiers, err
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
