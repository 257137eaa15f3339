// Package ups provides the UPS carrier integration: OAuth client
// credentials with a cached, single-flight token and the JSON Rating API.
package ups

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/devacc8/cybership-carrier-service/pkg/carrier"
	"github.com/devacc8/cybership-carrier-service/pkg/carrier/transport"
	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const carrierCode = carrier.CarrierUPS

// Client is the UPS carrier client. It implements the carrier.Carrier
// interface and executes rating calls through the transport collaborator.
type Client struct {
	cfg    Config
	http   transport.Doer
	auth   *AuthManager
	mapper *mapper
	logger *otelzap.Logger
	tracer trace.Tracer
}

// New creates a new UPS client using the production HTTP transport.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return NewWithTransport(cfg, transport.NewClient(), logger, tracer)
}

// NewWithTransport creates a new UPS client with a custom transport.
// This is useful for injecting mock transports in tests.
func NewWithTransport(cfg Config, doer transport.Doer, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	cfg.applyDefaults()
	return &Client{
		cfg:    cfg,
		http:   doer,
		auth:   NewAuthManager(cfg, doer, logger),
		mapper: &mapper{cfg: cfg},
		logger: logger,
		tracer: tracer,
	}
}

// Code returns the carrier identifier.
func (c *Client) Code() carrier.CarrierCode {
	return carrierCode
}

// GetRates returns UPS quotes for the request. A 401 from the Rating API
// invalidates the cached token and retries the whole request exactly once.
func (c *Client) GetRates(ctx context.Context, req *carrier.RateRequest) (*carrier.RateResponse, error) {
	if c.tracer != nil {
		var span trace.Span
		ctx, span = c.tracer.Start(ctx, "ups.GetRates")
		defer span.End()
	}

	c.logger.Info("Getting UPS rates",
		zap.String("origin_city", req.Origin.City),
		zap.String("destination_city", req.Destination.City),
		zap.Int("package_count", len(req.Packages)),
		zap.String("service_level", string(req.ServiceLevel)),
	)

	return c.executeRateRequest(ctx, req, false)
}

func (c *Client) executeRateRequest(ctx context.Context, req *carrier.RateRequest, isRetry bool) (*carrier.RateResponse, error) {
	body, err := json.Marshal(c.mapper.toUPSRateRequest(req))
	if err != nil {
		return nil, carrier.NewCarrierError(carrier.ErrCodeUnknown, "failed to encode UPS rate request").
			WithCarrier(carrierCode).
			WithCause(err)
	}

	requestOption := "Shop"
	if req.ServiceLevel != "" {
		requestOption = "Rate"
	}
	url := fmt.Sprintf("%s/api/rating/%s/%s", c.cfg.BaseURL, c.cfg.Version, requestOption)

	token, err := c.auth.GetAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Post(ctx, url, body, map[string]string{
		"Authorization":  "Bearer " + token,
		"Content-Type":   "application/json",
		"transId":        uuid.New().String(),
		"transactionSrc": c.cfg.TransactionSrc,
	}, c.cfg.RatingTimeout)
	if err != nil {
		if transport.IsTimeout(err) {
			return nil, carrier.NewCarrierError(carrier.ErrCodeTimeout, "UPS API request timed out").
				WithCarrier(carrierCode).
				WithRetryable(true).
				WithCause(err)
		}
		return nil, carrier.NewCarrierError(carrier.ErrCodeNetwork, "failed to connect to UPS API").
			WithCarrier(carrierCode).
			WithRetryable(true).
			WithCause(err)
	}

	switch {
	case resp.Status == http.StatusUnauthorized && !isRetry:
		// Token likely expired server-side; refresh and retry once. A
		// second 401 falls through to the generic API error below.
		c.logger.Warn("UPS returned 401, invalidating token and retrying")
		c.auth.InvalidateToken()
		return c.executeRateRequest(ctx, req, true)

	case resp.Status == http.StatusTooManyRequests:
		return nil, carrier.NewCarrierError(carrier.ErrCodeRateLimited, "UPS rate limit exceeded").
			WithCarrier(carrierCode).
			WithStatus(resp.Status).
			WithRetryable(true)

	case resp.Status >= 400:
		return nil, c.apiError(resp)
	}

	var parsed rateResponseBody
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return nil, carrier.NewCarrierError(carrier.ErrCodeMalformedResponse,
			"UPS returned an unexpected response format").
			WithCarrier(carrierCode).
			WithCause(err)
	}
	if issues := checkShape(&parsed); issues != nil {
		return nil, carrier.NewCarrierError(carrier.ErrCodeMalformedResponse,
			"UPS returned an unexpected response format").
			WithCarrier(carrierCode).
			WithDetails(map[string]any{"issues": issues})
	}

	return c.mapper.toRateResponse(&parsed), nil
}

// apiError builds a CARRIER_API_ERROR from a >=400 rating response,
// surfacing the first message of the UPS error envelope when present.
func (c *Client) apiError(resp *transport.Response) error {
	cerr := carrier.NewCarrierError(carrier.ErrCodeCarrierAPI,
		fmt.Sprintf("UPS API error: %d", resp.Status)).
		WithCarrier(carrierCode).
		WithStatus(resp.Status).
		WithRetryable(resp.Status >= 500)

	var envelope errorResponseBody
	if err := json.Unmarshal(resp.Body, &envelope); err == nil && len(envelope.Response.Errors) > 0 {
		cerr.Message = envelope.Response.Errors[0].Message
		return cerr.WithDetails(map[string]any{"errors": envelope.Response.Errors})
	}

	return cerr.WithDetails(map[string]any{"rawBody": string(resp.Body)})
}

var _ carrier.Carrier = (*Client)(nil)
