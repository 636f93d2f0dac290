package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"aeroreduce/pkg/contracts"
)

// HealthService reports liveness, readiness and build information
type HealthService struct {
	reduction *ReductionService
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a health service. reduction may be nil, in which
// case readiness reports not_ready.
func NewHealthService(reduction *ReductionService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		reduction: reduction,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "health check",
		slog.String("uptime", time.Since(hs.startTime).String()))

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   contracts.Version,
	}
}

// ReadinessCheck reports whether the reducer is configured
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Services:  make(map[string]ServiceHealth),
	}

	if hs.reduction == nil {
		status.Services["reduction"] = ServiceHealth{Status: "not_ready", Message: "reducer not configured"}
		status.Status = "not_ready"
		return status
	}
	cfg := hs.reduction.AeroConfig()
	status.Services["reduction"] = ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("%d top taps, %d bottom taps, %d rake ports",
			len(cfg.Layout.Top), len(cfg.Layout.Bottom), len(cfg.Rake.Ports)),
	}
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns build information
func (hs *HealthService) Version() contracts.VersionInfo {
	return contracts.GetVersionInfo()
}
