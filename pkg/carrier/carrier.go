// Package carrier provides a normalized rating layer across shipping carriers.
package carrier

import (
	"context"
)

// Carrier defines the interface that all carrier integrations must implement.
type Carrier interface {
	// Code returns the carrier identifier (e.g., CarrierUPS).
	Code() CarrierCode

	// GetRates returns price/transit quotes for a shipment.
	GetRates(ctx context.Context, req *RateRequest) (*RateResponse, error)
}
