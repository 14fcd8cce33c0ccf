package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/koinval/koinval/internal/api"
	"github.com/koinval/koinval/internal/config"
	"github.com/koinval/koinval/internal/rate"
	"github.com/koinval/koinval/internal/worker"
)

func main() {
	app := &cli.App{
		Name:  "koinval",
		Usage: "USDT holdings valuation and projection service",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: runServe,
			},
			{
				Name:   "rate",
				Usage:  "fetch the current USD/IDR rate once and print it",
				Action: runRate,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newRateService(cfg config.Config) *rate.Service {
	client := rate.NewClient(cfg.RateAPIURL, cfg.RateTimeout)
	return rate.NewService(client, cfg.FallbackRate, cfg.RateCacheTTL)
}

func runServe(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	rateSvc := newRateService(cfg)

	// The worker's immediate first fetch seeds the form's rate field.
	rateWorker := worker.NewRateWorker(rateSvc, cfg.RateRefreshInterval)
	go rateWorker.Run(ctx)

	handler := api.NewHandler(rateSvc)
	srv := api.NewServer(cfg.HTTPPort, handler)

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
	return nil
}

func runRate(c *cli.Context) error {
	cfg := config.Load()
	quote := newRateService(cfg).Fetch(c.Context)

	fmt.Printf("USD/IDR %s (%s)\n", quote.Rate, quote.Source)
	if quote.Advisory != "" {
		fmt.Println(quote.Advisory)
	}
	return nil
}
