// Package middleware holds the HTTP middleware chain of the reduction API:
// request IDs, structured logging, rate limiting, deadlines, body limits,
// OpenTelemetry instrumentation and request validation.
package middleware
