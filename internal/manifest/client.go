package manifest

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tagnology/embed-go/internal/infrastructure/logging"
	"github.com/tagnology/embed-go/internal/infrastructure/monitoring"
	"github.com/tagnology/embed-go/internal/infrastructure/resilience"
	"github.com/tagnology/embed-go/internal/shared/types"
)

// DefaultEndpoint is the production page-info endpoint.
const DefaultEndpoint = "https://embed.tagnology.co/api/product/getPageInfo"

// ClientConfig configures the manifest client transport.
type ClientConfig struct {
	Endpoint string
	Timeout  time.Duration
	// RequestsPerSecond throttles outbound fetches; <=0 means unlimited.
	RequestsPerSecond float64
}

// DefaultClientConfig returns production transport settings.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Endpoint: DefaultEndpoint,
		Timeout:  30 * time.Second,
	}
}

// Client fetches widget manifests from the embed service.
type Client struct {
	resty    *resty.Client
	limiter  *rate.Limiter
	breaker  *resilience.Breaker
	endpoint string
	logger   *logging.Logger
	metrics  *monitoring.Metrics
}

// pageInfoRequest is the wire shape of the manifest request body.
type pageInfoRequest struct {
	ProductID string `json:"productId"`
	Platform  string `json:"platform"`
	Page      string `json:"page"`
}

// NewClient creates a manifest client over a retryable transport.
func NewClient(cfg ClientConfig, logger *logging.Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = logging.NewDefault()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 30 * time.Second
	retryClient.Logger = nil // Disable logging

	restyClient := resty.New()
	restyClient.
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "embed-go/1.0").
		SetHeader("Content-Type", "application/json")
	restyClient.SetTransport(retryClient.HTTPClient.Transport)

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), int(cfg.RequestsPerSecond))
	}

	breaker := resilience.New("manifest-fetch", resilience.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			// The embed service fronts a CDN; only trip on sustained failure.
			return counts.ConsecutiveFailures >= 10
		},
	})

	return &Client{
		resty:    restyClient,
		limiter:  limiter,
		breaker:  breaker,
		endpoint: cfg.Endpoint,
		logger:   logger,
	}
}

// WithMetrics adds fetch outcome tracking to the client
func (c *Client) WithMetrics(metrics *monitoring.Metrics) *Client {
	c.metrics = metrics
	return c
}

// Fetch performs a single page-info POST and decodes the manifest.
// Failures are *NetworkError or *DecodingError; there is exactly one
// logical attempt per call.
func (c *Client) Fetch(ctx context.Context, productID, platform, pageURL string) (*types.Manifest, error) {
	var timer *monitoring.FetchTimer
	if c.metrics != nil {
		timer = monitoring.NewFetchTimer(c.metrics)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		timer.Stop("throttled")
		return nil, &NetworkError{Err: fmt.Errorf("rate limit: %w", err)}
	}

	body := pageInfoRequest{ProductID: productID, Platform: platform, Page: pageURL}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.resty.R().
			SetContext(ctx).
			SetBody(body).
			Post(c.endpoint)
		if err != nil {
			return nil, &NetworkError{Err: err}
		}
		if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
			return nil, &NetworkError{Status: resp.StatusCode()}
		}
		return resp.Body(), nil
	})
	if err != nil {
		if err == resilience.ErrCircuitOpen || err == resilience.ErrTooManyRequests {
			err = &NetworkError{Err: err}
		}
		timer.Stop("error")
		c.logger.Warn("manifest fetch failed",
			zap.String("product_id", productID),
			zap.String("page", pageURL),
			zap.Error(err),
		)
		return nil, err
	}

	manifest, err := decodeManifest(result.([]byte))
	if err != nil {
		timer.Stop("decode_error")
		c.logger.Warn("manifest decode failed",
			zap.String("product_id", productID),
			zap.Error(err),
		)
		return nil, err
	}

	timer.Stop("success")
	c.logger.Debug("manifest fetched",
		zap.String("product_id", productID),
		zap.Int("folders", len(manifest.PageInfo)),
	)
	return manifest, nil
}

// decodeManifest parses and validates the response body.
func decodeManifest(data []byte) (*types.Manifest, error) {
	var manifest types.Manifest
	if err := sonic.Unmarshal(data, &manifest); err != nil {
		return nil, &DecodingError{Err: err}
	}
	for i, folder := range manifest.PageInfo {
		if folder.FolderID == "" {
			return nil, &DecodingError{Err: fmt.Errorf("pageInfo[%d] missing folderId", i)}
		}
	}
	return &manifest, nil
}
