// Package services sits between the transports (HTTP, CLI) and the reduction
// core. It converts API contracts to aero inputs, runs cases and sweeps under
// OpenTelemetry spans and metrics, and converts results back.
package services
