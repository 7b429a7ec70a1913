package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DEFAULT_OUTPUT_DIR               = "processed_results"
	DEFAULT_PROBE_TIMEOUT_SECONDS    = 2
	DEFAULT_DISPATCH_TIMEOUT_SECONDS = 45
	DEFAULT_MAX_CONCURRENT_DISPATCH  = 16
)

// Interface is the configuration surface consumed by the server, kept as an
// interface so tests can substitute a mock.
type Interface interface {
	GetLogLevel() string
	GetServiceName() string
	GetListenAddr() string
	GetOutputDir() string
	GetProbeTimeout() time.Duration
	GetDispatchTimeout() time.Duration
	GetMaxConcurrentDispatches() int
}

type GlobalConfig struct {
	logLevel                string
	serviceName             string
	listenAddr              string
	outputDir               string
	probeTimeout            time.Duration
	dispatchTimeout         time.Duration
	maxConcurrentDispatches int
}

func NewConfig() (GlobalConfig, error) {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		return GlobalConfig{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	// Set log level from environment
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		return GlobalConfig{}, fmt.Errorf("LOG_LEVEL environment variable is required")
	}

	// Get coordinator listen address from environment
	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		return GlobalConfig{}, fmt.Errorf("LISTEN_ADDR environment variable is required")
	}

	// Get output base directory from environment (optional with default)
	outputDir := os.Getenv("OUTPUT_DIR")
	if outputDir == "" {
		outputDir = DEFAULT_OUTPUT_DIR
	}

	// Get probe timeout from environment (optional with default)
	probeTimeoutSecs := DEFAULT_PROBE_TIMEOUT_SECONDS
	if probeStr := os.Getenv("PROBE_TIMEOUT_SECONDS"); probeStr != "" {
		parsed, err := strconv.Atoi(probeStr)
		if err != nil {
			return GlobalConfig{}, fmt.Errorf("PROBE_TIMEOUT_SECONDS must be a valid integer: %w", err)
		}
		probeTimeoutSecs = parsed
	}

	// Get dispatch timeout from environment (optional with default)
	dispatchTimeoutSecs := DEFAULT_DISPATCH_TIMEOUT_SECONDS
	if dispatchStr := os.Getenv("DISPATCH_TIMEOUT_SECONDS"); dispatchStr != "" {
		parsed, err := strconv.Atoi(dispatchStr)
		if err != nil {
			return GlobalConfig{}, fmt.Errorf("DISPATCH_TIMEOUT_SECONDS must be a valid integer: %w", err)
		}
		dispatchTimeoutSecs = parsed
	}

	// Get outbound dispatch concurrency cap from environment (optional with default)
	maxConcurrent := DEFAULT_MAX_CONCURRENT_DISPATCH
	if concurrentStr := os.Getenv("MAX_CONCURRENT_DISPATCHES"); concurrentStr != "" {
		parsed, err := strconv.Atoi(concurrentStr)
		if err != nil {
			return GlobalConfig{}, fmt.Errorf("MAX_CONCURRENT_DISPATCHES must be a valid integer: %w", err)
		}
		if parsed < 1 {
			return GlobalConfig{}, fmt.Errorf("MAX_CONCURRENT_DISPATCHES must be at least 1")
		}
		maxConcurrent = parsed
	}

	return GlobalConfig{
		logLevel:                logLevel,
		serviceName:             "task-coordinator-service",
		listenAddr:              listenAddr,
		outputDir:               outputDir,
		probeTimeout:            time.Duration(probeTimeoutSecs) * time.Second,
		dispatchTimeout:         time.Duration(dispatchTimeoutSecs) * time.Second,
		maxConcurrentDispatches: maxConcurrent,
	}, nil
}

// GlobalConfig getters
func (c GlobalConfig) GetLogLevel() string {
	return c.logLevel
}

func (c GlobalConfig) GetServiceName() string {
	return c.serviceName
}

func (c GlobalConfig) GetListenAddr() string {
	return c.listenAddr
}

func (c GlobalConfig) GetOutputDir() string {
	return c.outputDir
}

func (c GlobalConfig) GetProbeTimeout() time.Duration {
	return c.probeTimeout
}

func (c GlobalConfig) GetDispatchTimeout() time.Duration {
	return c.dispatchTimeout
}

func (c GlobalConfig) GetMaxConcurrentDispatches() int {
	return c.maxConcurrentDispatches
}
