package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	GatewayBaseURL    string
	JWTSecret         string
	OrderPollInterval time.Duration
	WorkerPoolSize    int
	ShutdownTimeout   time.Duration
	MaxOrdersBatch    int
	RabbitURL         string
	OrderEventsQueue  string
}

const (
	defaultRunAddress        = ":8080"
	defaultGatewayBaseURL    = "http://localhost:5000"
	defaultJWTSecret         = "change-me-in-production"
	defaultOrderPollInterval = 30 * time.Second
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
	defaultMaxOrdersBatch    = 32
	defaultOrderEventsQueue  = "order_status_events"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	// The storefront historically read the gateway base URL under either of
	// two names; both stay honored, EXTERNAL_API_BASE_URL winning.
	gatewayURL := getString(lookup, "EXTERNAL_API_BASE_URL", "")
	if gatewayURL == "" {
		gatewayURL = getString(lookup, "NEXT_PUBLIC_API_URL", defaultGatewayBaseURL)
	}

	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		GatewayBaseURL:    gatewayURL,
		JWTSecret:         getString(lookup, "JWT_SECRET", defaultJWTSecret),
		OrderPollInterval: getDuration(lookup, "ORDER_POLL_INTERVAL", defaultOrderPollInterval),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MaxOrdersBatch:    getInt(lookup, "POLL_BATCH_SIZE", defaultMaxOrdersBatch),
		RabbitURL:         getString(lookup, "RABBITMQ_URL", ""),
		OrderEventsQueue:  getString(lookup, "ORDER_EVENTS_QUEUE", defaultOrderEventsQueue),
	}

	fs := flag.NewFlagSet("mealsub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.OrderPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GatewayBaseURL, "g", cfg.GatewayBaseURL, "Delivery backend base URL")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for verifying auth tokens")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent tracking workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between order tracking polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxOrdersBatch, "poll-batch", cfg.MaxOrdersBatch, "Maximum tracked orders per polling batch")
	fs.StringVar(&cfg.RabbitURL, "rabbit", cfg.RabbitURL, "RabbitMQ URL for order status events (empty disables publishing)")
	fs.StringVar(&cfg.OrderEventsQueue, "rabbit-queue", cfg.OrderEventsQueue, "Queue for order status events")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.OrderPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxOrdersBatch <= 0 {
		cfg.MaxOrdersBatch = defaultMaxOrdersBatch
	}

	if cfg.OrderPollInterval <= 0 {
		cfg.OrderPollInterval = defaultOrderPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayBaseURL == "" {
		return nil, fmt.Errorf("gateway base URL must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
