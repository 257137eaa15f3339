package carrier

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RateService validates rate requests and dispatches them to one carrier
// or to every registered carrier in parallel.
type RateService struct {
	registry *Registry
	logger   *otelzap.Logger
}

// NewRateService creates a new rate service backed by the given registry.
func NewRateService(registry *Registry, logger *otelzap.Logger) *RateService {
	return &RateService{
		registry: registry,
		logger:   logger,
	}
}

// GetRates returns quotes from a single carrier. Carrier failures are
// propagated to the caller unchanged.
func (s *RateService) GetRates(ctx context.Context, code CarrierCode, req *RateRequest) (*RateResponse, error) {
	if err := ValidateRateRequest(req); err != nil {
		return nil, err
	}

	c, err := s.registry.Get(code)
	if err != nil {
		return nil, err
	}

	return c.GetRates(ctx, req)
}

// ShopRates fans the request out to every registered carrier in parallel
// and merges the outcomes. A failing carrier contributes a warning instead
// of aborting the others; the combined quote list is stably sorted
// ascending by total charges. The only hard failure is an empty registry.
func (s *RateService) ShopRates(ctx context.Context, req *RateRequest) (*RateResponse, error) {
	if err := ValidateRateRequest(req); err != nil {
		return nil, err
	}

	carriers := s.registry.All()
	if len(carriers) == 0 {
		return nil, NewCarrierError(ErrCodeCarrierNotFound, "no carriers registered")
	}

	var (
		mu       sync.Mutex
		quotes   []RateQuote
		warnings []string
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range carriers {
		g.Go(func() error {
			resp, err := c.GetRates(gctx, req)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warn("Carrier failed during rate shopping",
					zap.String("carrier", string(c.Code())),
					zap.Error(err),
				)
				warnings = append(warnings, fmt.Sprintf("%s: %s", c.Code(), ErrorMessage(err)))
				return nil // one carrier failing never aborts the fan-out
			}
			quotes = append(quotes, resp.Quotes...)
			warnings = append(warnings, resp.Warnings...)
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].TotalCharges.Amount < quotes[j].TotalCharges.Amount
	})

	s.logger.Info("Rate shopping complete",
		zap.Int("carrier_count", len(carriers)),
		zap.Int("quote_count", len(quotes)),
		zap.Int("warning_count", len(warnings)),
	)

	return &RateResponse{Quotes: quotes, Warnings: warnings}, nil
}
