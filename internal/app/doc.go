// Package app wires the reduction API server: configuration, logging,
// OpenTelemetry, the reduction and health services, the chi router with its
// middleware chain, and the HTTP server lifecycle.
//
// Middleware order is RequestID, RealIP, OTel, StructuredLogger, recovery,
// SecurityHeaders and the optional rate limiter. Routes under /api/v1 also
// get a request deadline, a body size limit and a JSON content-type check.
//
// Usage:
//
//	a, err := app.NewApplication(cfg)
//	if err != nil {
//	    return err
//	}
//	return a.Run(ctx)
//
// Run returns after SIGINT, SIGTERM or cancellation of ctx, once in-flight
// requests have drained and telemetry has been flushed.
package app
