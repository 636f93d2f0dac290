// Package http implements the HTTP handlers of the reduction API. Handlers
// decode and validate requests, delegate to the services layer and render
// results as JSON; failures are rendered as RFC 7807 problem details.
//
// Routes:
//
//	GET  /api/health             liveness summary
//	GET  /api/health/ready       readiness of the reducer
//	GET  /api/version            build information
//	POST /api/v1/cases/reduce    reduce one angle-of-attack case
//	POST /api/v1/sweeps/reduce   reduce a sweep of cases
package http
