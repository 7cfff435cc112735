package types

import (
	"context"
	"errors"
	"net/http"

	"github.com/Aleksandr-Gamble/scale-serp/internal/services/scaleserp"
	apperrors "github.com/Aleksandr-Gamble/scale-serp/pkg/errors"
)

// UpstreamError classifies an upstream client failure into a structured
// application error carrying the HTTP status to report.
func UpstreamError(err error) *apperrors.AppError {
	var schemaErr *scaleserp.SchemaError
	var statusErr *scaleserp.StatusError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.ErrCodeAPITimeout, "Upstream request timed out")
	case errors.Is(err, scaleserp.ErrRateLimited):
		return apperrors.Wrap(err, apperrors.ErrCodeAPIRateLimit, "Upstream rate limit exceeded")
	case errors.As(err, &schemaErr):
		return apperrors.Wrap(err, apperrors.ErrCodeSchemaViolation, "Upstream response failed validation").
			WithDetail("path", schemaErr.Path)
	case errors.As(err, &statusErr):
		if statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden {
			return apperrors.Wrap(err, apperrors.ErrCodeTransport, "Upstream rejected the API key").
				WithDetail("status_code", statusErr.StatusCode)
		}
		return apperrors.Wrap(err, apperrors.ErrCodeTransport, "Upstream returned an error status").
			WithDetail("status_code", statusErr.StatusCode)
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeTransport, "Upstream request failed")
	}
}

// UpstreamErrorResponse builds the status code and JSON body for an
// upstream failure.
func UpstreamErrorResponse(err error) (int, ErrorResponse) {
	appErr := UpstreamError(err)
	return appErr.GetHTTPCode(), ErrorResponse{
		Status:  StatusError,
		Message: appErr.Message,
		Error:   string(appErr.Code),
		Details: err.Error(),
	}
}
