package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "aeroreduce/internal/errors"
)

// RequestValidator decodes JSON bodies and validates them against struct tags
type RequestValidator struct {
	validator *validator.Validate
	logger    *slog.Logger
}

// NewRequestValidator creates a validator reporting fields by their JSON names
func NewRequestValidator(logger *slog.Logger) *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RequestValidator{
		validator: v,
		logger:    logger.With(slog.String("component", "request_validator")),
	}
}

// Decode reads a JSON body into v and validates it. Oversized bodies surface
// as *http.MaxBytesError; everything else is an *errors.APIError.
func (rv *RequestValidator) Decode(r *http.Request, v interface{}) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		rv.logger.DebugContext(r.Context(), "request body rejected",
			slog.String("error", err.Error()),
			slog.String("request_id", GetRequestID(r.Context())),
		)
		return apierrors.InvalidRequestWithError(err)
	}
	return rv.Struct(v)
}

// Struct validates v and converts failures into a validation APIError
func (rv *RequestValidator) Struct(v interface{}) error {
	err := rv.validator.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierrors.InvalidRequestWithError(err)
	}

	out := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, apierrors.ValidationError{
			Field:   trimNamespace(fe.Namespace()),
			Message: formatValidationError(fe),
		})
	}
	return apierrors.NewValidationErrors(out)
}

// trimNamespace drops the root struct name: "SweepRequest.cases[2].alpha" -> "cases[2].alpha"
func trimNamespace(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if err.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s items", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if err.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at most %s items", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// ContentTypeValidator rejects bodies whose Content-Type is not listed
func ContentTypeValidator(errorHandler *apierrors.ErrorHandler, contentTypes ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodDelete {
				next.ServeHTTP(w, r)
				return
			}

			contentType := r.Header.Get("Content-Type")
			for _, allowed := range contentTypes {
				if strings.HasPrefix(contentType, allowed) {
					next.ServeHTTP(w, r)
					return
				}
			}

			errorHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusUnsupportedMediaType,
				"UNSUPPORTED_MEDIA_TYPE",
				"Unsupported content type",
				map[string]interface{}{
					"content_type": contentType,
					"allowed":      contentTypes,
				},
			))
		})
	}
}
