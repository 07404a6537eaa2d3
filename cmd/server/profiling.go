package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"sync"
	"time"
)

// ProfilingConfig holds configuration for profiling
type ProfilingConfig struct {
	Enabled bool
	Port    string
}

// StartProfiling starts the pprof server on its own port.
func StartProfiling(config ProfilingConfig) {
	if !config.Enabled {
		return
	}

	runtime.SetBlockProfileRate(1)
	runtime.SetMutexProfileFraction(1)

	go func() {
		log.Printf("Starting pprof server on :%s", config.Port)
		if err := http.ListenAndServe(":"+config.Port, nil); err != nil {
			log.Printf("pprof server failed: %v", err)
		}
	}()
}

// GetProfilingConfigFromEnv creates profiling config from environment variables
func GetProfilingConfigFromEnv() ProfilingConfig {
	port := os.Getenv("PPROF_PORT")
	if port == "" {
		port = "42069"
	}
	return ProfilingConfig{
		Enabled: os.Getenv("ENABLE_PROFILING") == "true",
		Port:    port,
	}
}

// IntentMetrics counts handled intents and their average latency per type.
type IntentMetrics struct {
	mu        sync.Mutex
	startTime time.Time
	handled   map[string]int64
	failed    map[string]int64
	avg       map[string]time.Duration
}

func NewIntentMetrics() *IntentMetrics {
	return &IntentMetrics{
		startTime: time.Now(),
		handled:   make(map[string]int64),
		failed:    make(map[string]int64),
		avg:       make(map[string]time.Duration),
	}
}

// Track records one intent of the given type.
func (m *IntentMetrics) Track(intent string, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handled[intent]++
	if err != nil {
		m.failed[intent]++
	}
	n := time.Duration(m.handled[intent])
	m.avg[intent] = (m.avg[intent]*(n-1) + duration) / n
}

func (m *IntentMetrics) Handled(intent string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handled[intent]
}

func (m *IntentMetrics) Failed(intent string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failed[intent]
}

// LogMetrics logs current intent metrics
func (m *IntentMetrics) LogMetrics(logger Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	logger.Printf("=== Intent Metrics ===")
	logger.Printf("Uptime: %v", time.Since(m.startTime))
	for intent, n := range m.handled {
		logger.Printf("%s: %d handled, %d failed, avg %v", intent, n, m.failed[intent], m.avg[intent])
	}
	logger.Printf("Goroutines: %d", runtime.NumGoroutine())
}
