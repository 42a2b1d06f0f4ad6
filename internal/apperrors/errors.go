package apperrors

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery is returned when a search is requested with a blank query.
// No upstream request is made.
var ErrEmptyQuery = errors.New("search query is empty")

// ErrInvalidShowID is returned when an episode listing is requested for an id
// that cannot have come from a show summary.
type ErrInvalidShowID struct {
	Value string
}

// Error implements the error interface.
func (e *ErrInvalidShowID) Error() string {
	return fmt.Sprintf("invalid show ID %q", e.Value)
}

// Is allows for error checking with errors.Is().
func (e *ErrInvalidShowID) Is(target error) bool {
	_, ok := target.(*ErrInvalidShowID)
	return ok
}

// ErrNotFound represents an error when a requested resource is not found.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewShowNotFoundError creates a specific error for when a show id is unknown upstream.
func NewShowNotFoundError(showID int) *ErrNotFound {
	return &ErrNotFound{
		Resource: "show",
		ID:       showID,
	}
}

// ErrUpstreamStatus is returned when the upstream API answers with a non-2xx status.
type ErrUpstreamStatus struct {
	Endpoint   string
	StatusCode int
}

// Error implements the error interface.
func (e *ErrUpstreamStatus) Error() string {
	return fmt.Sprintf("upstream %s returned status %d", e.Endpoint, e.StatusCode)
}

// Is allows for error checking with errors.Is().
func (e *ErrUpstreamStatus) Is(target error) bool {
	_, ok := target.(*ErrUpstreamStatus)
	return ok
}

// ErrMalformedResponse is returned when the upstream body does not have the expected JSON shape.
type ErrMalformedResponse struct {
	Endpoint string
	Err      error
}

// Error implements the error interface.
func (e *ErrMalformedResponse) Error() string {
	return fmt.Sprintf("malformed %s response: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ErrMalformedResponse) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrMalformedResponse) Is(target error) bool {
	_, ok := target.(*ErrMalformedResponse)
	return ok
}

// IsCallerError reports whether err was caused by the caller's input rather
// than by the upstream API.
func IsCallerError(err error) bool {
	return errors.Is(err, ErrEmptyQuery) || errors.Is(err, &ErrInvalidShowID{})
}
