// Package mock provides a configurable in-memory carrier for testing and
// local development.
package mock

import (
	"context"
	"sync"

	"github.com/devacc8/cybership-carrier-service/pkg/carrier"
)

// Client is a mock carrier. Zero-value behavior returns two fixed quotes;
// Err, Quotes, Warnings, and GetRatesFunc override it per test.
type Client struct {
	code carrier.CarrierCode

	// GetRatesFunc, when set, handles the call entirely.
	GetRatesFunc func(ctx context.Context, req *carrier.RateRequest) (*carrier.RateResponse, error)

	// Err, when set, fails every call.
	Err error

	// Quotes and Warnings, when set, are returned as-is.
	Quotes   []carrier.RateQuote
	Warnings []string

	mu    sync.Mutex
	calls int
}

// New creates a new mock carrier with the given code.
func New(code carrier.CarrierCode) *Client {
	return &Client{code: code}
}

// Code returns the carrier identifier.
func (c *Client) Code() carrier.CarrierCode {
	return c.code
}

// GetRates returns the configured outcome.
func (c *Client) GetRates(ctx context.Context, req *carrier.RateRequest) (*carrier.RateResponse, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	if c.GetRatesFunc != nil {
		return c.GetRatesFunc(ctx, req)
	}
	if c.Err != nil {
		return nil, c.Err
	}
	if c.Quotes != nil {
		return &carrier.RateResponse{Quotes: c.Quotes, Warnings: c.Warnings}, nil
	}

	return &carrier.RateResponse{
		Quotes: []carrier.RateQuote{
			{
				Carrier:               c.code,
				ServiceLevel:          carrier.ServiceGround,
				ServiceName:           string(c.code) + " Ground",
				TotalCharges:          carrier.MonetaryAmount{Amount: 15.82, Currency: "USD"},
				TransportationCharges: carrier.MonetaryAmount{Amount: 14.00, Currency: "USD"},
				BillingWeight:         carrier.PackageWeight{Value: 5, Unit: carrier.WeightLBS},
			},
			{
				Carrier:               c.code,
				ServiceLevel:          carrier.ServiceSecondDayAir,
				ServiceName:           string(c.code) + " 2nd Day Air",
				TotalCharges:          carrier.MonetaryAmount{Amount: 29.95, Currency: "USD"},
				TransportationCharges: carrier.MonetaryAmount{Amount: 27.10, Currency: "USD"},
				BillingWeight:         carrier.PackageWeight{Value: 5, Unit: carrier.WeightLBS},
			},
		},
	}, nil
}

// Calls returns how many times GetRates was invoked.
func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

var _ carrier.Carrier = (*Client)(nil)
