package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/purgo-project/purgo-detector/pkg/apiserver"
	"github.com/purgo-project/purgo-detector/pkg/config"
	"github.com/purgo-project/purgo-detector/pkg/observability/logging"
	"github.com/purgo-project/purgo-detector/pkg/services"
)

func main() {
	var (
		configPath  = flag.String("config", "config/config.yaml", "Path to the configuration file")
		apiPort     = flag.Int("api-port", 0, "Port for the analysis API (overrides config)")
		metricsPort = flag.Int("metrics-port", 0, "Port for Prometheus metrics (overrides config)")
	)
	flag.Parse()

	if _, err := logging.InitLoggerFromEnv(); err != nil {
		// Fallback to stderr since logger initialization failed
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Fatalf("Failed to load config: %v", err)
	}
	if *apiPort != 0 {
		cfg.API.Port = *apiPort
	}
	if *metricsPort != 0 {
		cfg.Metrics.Port = *metricsPort
	}

	// Term store and model weights load before the server accepts traffic.
	// Any failure here aborts startup; a degraded detector must not serve.
	if _, err := services.NewAnalysisService(cfg); err != nil {
		logging.Fatalf("Failed to initialize analysis service: %v", err)
	}

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		metricsAddr := fmt.Sprintf(":%d", cfg.Metrics.Port)
		logging.Infof("Starting metrics server on %s", metricsAddr)
		if err := http.ListenAndServe(metricsAddr, nil); err != nil {
			logging.Errorf("Metrics server error: %v", err)
		}
	}()

	if err := apiserver.Init(cfg.API.Port); err != nil {
		logging.Fatalf("Analysis API server error: %v", err)
	}
}
