package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/failsafe-go/failsafe-go/timeout"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
)

// errorInfo is how a flow error is presented to a client.
type errorInfo struct {
	Status  int
	Code    string
	Message string
}

func classifyError(err error) errorInfo {
	switch {
	case errors.Is(err, apperrors.ErrEmptyQuery):
		return errorInfo{http.StatusBadRequest, "EMPTY_QUERY", "Enter a show title to search for."}
	case errors.Is(err, &apperrors.ErrInvalidShowID{}):
		return errorInfo{http.StatusBadRequest, "INVALID_SHOW_ID", err.Error()}
	case errors.Is(err, &apperrors.ErrNotFound{}):
		return errorInfo{http.StatusNotFound, "NOT_FOUND", err.Error()}
	case errors.Is(err, circuitbreaker.ErrOpen):
		return errorInfo{http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "The show database is temporarily unavailable. Try again shortly."}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, timeout.ErrExceeded):
		return errorInfo{http.StatusGatewayTimeout, "UPSTREAM_TIMEOUT", "The show database took too long to answer."}
	case errors.Is(err, &apperrors.ErrUpstreamStatus{}), errors.Is(err, &apperrors.ErrMalformedResponse{}):
		return errorInfo{http.StatusBadGateway, "UPSTREAM_ERROR", "The show database returned an unexpected answer."}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return errorInfo{http.StatusBadGateway, "UPSTREAM_ERROR", "The show database could not be reached."}
	}
	return errorInfo{http.StatusInternalServerError, "INTERNAL", "Something went wrong."}
}
