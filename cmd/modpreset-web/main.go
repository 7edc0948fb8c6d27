// Command modpreset-web serves the upload page that converts launcher mod
// list exports into preset text.
//
//	MODPRESET_ADDR=:8080 modpreset-web
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"modpreset/internal/metrics"
	"modpreset/internal/metrics/datadog"
	"modpreset/internal/preset"
	"modpreset/internal/web"
)

func main() {
	var (
		addr           string
		strategyPath   string
		metricsBackend string
		skipMalformed  bool
	)

	flag.StringVar(&addr, "addr", "", "listen address (overrides env MODPRESET_ADDR, default :8080)")
	flag.StringVar(&strategyPath, "strategy", "", "optional JSON file with selector-based row layout")
	flag.StringVar(&metricsBackend, "metrics-backend", "", "metrics backend: none or datadog (env METRICS_BACKEND)")
	flag.BoolVar(&skipMalformed, "skip-malformed", false, "skip unreadable rows instead of failing the upload")
	flag.Parse()

	if addr == "" {
		addr = os.Getenv("MODPRESET_ADDR")
	}
	if addr == "" {
		addr = ":8080"
	}

	logger := log.New(os.Stderr, "modpreset-web: ", log.LstdFlags)

	extractor := preset.NewExtractor(nil)
	if strategyPath != "" {
		s, err := preset.LoadStrategyFile(strategyPath)
		if err != nil {
			logger.Fatalf("load strategy: %v", err)
		}
		extractor = s.Extractor()
	}
	extractor.SkipMalformed = skipMalformed
	extractor.Logger = logger

	if metricsBackend == "" {
		metricsBackend = os.Getenv("METRICS_BACKEND")
	}
	switch metricsBackend {
	case "", "none":
	case "datadog":
		b, err := datadog.NewBackend(context.Background(), datadog.Options{
			JobName: "modpreset-web",
			Tags:    datadog.ParseTagsCSV(os.Getenv("METRICS_TAGS")),
		})
		if err != nil {
			logger.Printf("metrics: failed to init datadog backend: %v; using nop", err)
			break
		}
		metrics.SetBackend(b)
		defer func() {
			if err := b.Close(); err != nil {
				logger.Printf("metrics: datadog close/flush error: %v", err)
			}
		}()
	default:
		logger.Printf("metrics: unknown backend %q; metrics disabled", metricsBackend)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           web.RegisterRoutes(extractor, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Printf("listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Printf("server error: %v", err)
	}
}
