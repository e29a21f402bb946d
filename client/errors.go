package client

import (
	"errors"
	"fmt"
)

// ErrInvalidResponse marks a list envelope that does not match the
// expected {results: [{name, url}]} shape.
var ErrInvalidResponse = errors.New("invalid list response")

// ErrInvalidRecord marks a detail payload rejected by normalization.
var ErrInvalidRecord = errors.New("invalid record payload")

// StatusError is returned for non-2xx transport status codes.
type StatusError struct {
	Status int
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.Status)
}
