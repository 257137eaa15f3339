package main

import (
	"context"

	"github.com/devacc8/cybership-carrier-service/internal/config"
	"github.com/devacc8/cybership-carrier-service/internal/telemetry"
	"github.com/devacc8/cybership-carrier-service/pkg/carrier"
	"github.com/devacc8/cybership-carrier-service/pkg/carrier/mock"
	"github.com/devacc8/cybership-carrier-service/pkg/carrier/ups"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return func(context.Context) error { return nil }, nil
	}

	_, shutdown, err := telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
	return shutdown, err
}

func initCarrierRegistry(cfg *config.Config, logger *otelzap.Logger) *carrier.Registry {
	registry := carrier.NewRegistry()

	var tracer trace.Tracer
	if cfg.OTELEnabled {
		tracer = otel.GetTracerProvider().Tracer(cfg.ServiceName)
	}

	if cfg.UPSEnabled {
		if cfg.UPSUseMock {
			registry.Register(mock.New(carrier.CarrierUPS))
		} else {
			registry.Register(ups.New(ups.Config{
				ClientID:       cfg.UPSClientID,
				ClientSecret:   cfg.UPSClientSecret,
				AccountNumber:  cfg.UPSAccountNumber,
				BaseURL:        cfg.UPSBaseURL,
				OAuthURL:       cfg.UPSOAuthURL,
				Version:        cfg.UPSAPIVersion,
				TransactionSrc: cfg.UPSTransactionSrc,
				AuthTimeout:    cfg.UPSAuthTimeout,
				RatingTimeout:  cfg.UPSRatingTimeout,
			}, logger, tracer))
		}
	}

	return registry
}
