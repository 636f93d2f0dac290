package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"aeroreduce/internal/aero"
)

// Problem types following RFC 7807
const (
	TypeValidation      = "/errors/validation"
	TypePrecondition    = "/errors/precondition"
	TypeDomain          = "/errors/domain"
	TypeNotFound        = "/errors/not-found"
	TypeMethod          = "/errors/method-not-allowed"
	TypeRateLimit       = "/errors/rate-limit"
	TypeTimeout         = "/errors/timeout"
	TypePayloadTooLarge = "/errors/payload-too-large"
	TypeInternal        = "/errors/internal"
)

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError converts any error to RFC 7807 format and responds
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	reqID := middleware.GetReqID(r.Context())

	problem := h.ErrorToProblem(err, r)
	problem.WithExtension("trace_id", reqID)

	level := slog.LevelWarn
	if problem.Status >= http.StatusInternalServerError {
		level = slog.LevelError
		if h.includeStack {
			problem.WithExtension("stack", getStackTrace())
		}
	}
	h.logger.Log(r.Context(), level, "request failed",
		slog.String("error", err.Error()),
		slog.String("problem_type", problem.Type),
		slog.Int("status", problem.Status),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	render.Render(w, r, problem)
}

// ErrorToProblem converts an error to RFC 7807 Problem Details
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	path := r.URL.Path

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProblemDetails(http.StatusGatewayTimeout, TypeTimeout, "Request Timeout",
			"The request took too long to process and was cancelled", path)
	}

	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return NewProblemDetails(http.StatusRequestEntityTooLarge, TypePayloadTooLarge, "Payload Too Large",
			fmt.Sprintf("The request body exceeds the maximum of %d bytes", maxBytes.Limit), path)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return h.apiErrorToProblem(apiErr, r)
	}

	var problem *ProblemDetails
	var pre *aero.PreconditionError
	var dom *aero.DomainError
	switch {
	case errors.As(err, &pre):
		problem = NewProblemDetails(http.StatusBadRequest, TypePrecondition, "Precondition Violation", err.Error(), path).
			WithExtension("op", pre.Op).
			WithExtension("field", pre.Field)
		if pre.Want != 0 || pre.Got != 0 {
			problem.WithExtension("want", pre.Want).WithExtension("got", pre.Got)
		}
	case errors.As(err, &dom):
		problem = NewProblemDetails(http.StatusUnprocessableEntity, TypeDomain, "Numerical Domain Error", err.Error(), path).
			WithExtension("op", dom.Op).
			WithExtension("field", dom.Field).
			WithExtension("index", dom.Index)
	default:
		return NewProblemDetails(http.StatusInternalServerError, TypeInternal, "Internal Server Error",
			"An unexpected error occurred while processing your request", path)
	}

	var caseErr *aero.CaseError
	if errors.As(err, &caseErr) {
		problem.WithExtension("case_index", caseErr.Index)
		if caseErr.ID != "" {
			problem.WithExtension("case_id", caseErr.ID)
		}
	}
	return problem
}

func (h *ErrorHandler) apiErrorToProblem(apiErr *APIError, r *http.Request) *ProblemDetails {
	problemType := TypeInternal
	switch apiErr.ErrorCode {
	case "VALIDATION_FAILED", "INVALID_REQUEST":
		problemType = TypeValidation
	case "NOT_FOUND":
		problemType = TypeNotFound
	case "RATE_LIMIT_EXCEEDED":
		problemType = TypeRateLimit
	case "PAYLOAD_TOO_LARGE":
		problemType = TypePayloadTooLarge
	}

	problem := NewProblemDetails(
		apiErr.StatusCode,
		problemType,
		http.StatusText(apiErr.StatusCode),
		apiErr.Message,
		r.URL.Path,
	).WithExtension("error_code", apiErr.ErrorCode)

	if apiErr.Details != nil {
		problem.WithExtension("details", apiErr.Details)
	}
	return problem
}

// HandlePanic recovers from panics and returns RFC 7807 error
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered interface{}) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.ErrorContext(r.Context(), "panic recovered",
		slog.Any("panic", recovered),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("stack", string(debug.Stack())),
	)

	problem := NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred",
		r.URL.Path,
	).WithExtension("trace_id", reqID)

	if h.includeStack {
		problem.WithExtension("panic", fmt.Sprintf("%v", recovered))
		problem.WithExtension("stack", getStackTrace())
	}

	render.Render(w, r, problem)
}

// NotFound returns a standard 404 error
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusNotFound,
		TypeNotFound,
		"Not Found",
		"The requested resource was not found",
		r.URL.Path,
	).WithExtension("trace_id", middleware.GetReqID(r.Context()))

	render.Render(w, r, problem)
}

// MethodNotAllowed returns a standard 405 error
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusMethodNotAllowed,
		TypeMethod,
		"Method Not Allowed",
		fmt.Sprintf("Method %s is not allowed for this endpoint", r.Method),
		r.URL.Path,
	).WithExtension("trace_id", middleware.GetReqID(r.Context()))

	render.Render(w, r, problem)
}

// RecoveryMiddleware turns handler panics into problem responses
func (h *ErrorHandler) RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h.HandlePanic(w, r, rec)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func getStackTrace() string {
	buf := make([]byte, 1024*8)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}
