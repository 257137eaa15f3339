package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/devacc8/cybership-carrier-service/internal/server"
	"github.com/devacc8/cybership-carrier-service/internal/telemetry"
	"github.com/devacc8/cybership-carrier-service/pkg/carrier"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "carrier-service",
	Short:   "Cybership Carrier Service - Multi-carrier freight rating API",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP rating server",
	RunE:  runServe,
}

var quoteCmd = &cobra.Command{
	Use:   "quote [request.json]",
	Short: "Shop rates for a JSON rate request (file or stdin) and print the quotes",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runQuote,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(quoteCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(ctx)
	}

	registry := initCarrierRegistry(cfg, logger)

	logger.Info("Starting Cybership Carrier Service",
		zap.Int("port", cfg.Port),
		zap.String("version", cfg.Version),
	)

	srv := server.New(server.Config{Port: cfg.Port}, registry, logger, telemetry.NewMetrics())
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func runQuote(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := initLogger("error")
	if err != nil {
		return err
	}
	defer logger.Sync()

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var req carrier.RateRequest
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return fmt.Errorf("decoding rate request: %w", err)
	}

	registry := initCarrierRegistry(cfg, logger)
	rates := carrier.NewRateService(registry, logger)

	resp, err := rates.ShopRates(ctx, &req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, q := range resp.Quotes {
		fmt.Fprintf(out, "%-8s %-28s %8.2f %s\n",
			q.Carrier, q.ServiceName, q.TotalCharges.Amount, q.TotalCharges.Currency)
	}
	for _, w := range resp.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	return nil
}
