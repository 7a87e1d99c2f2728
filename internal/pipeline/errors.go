package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"stayscraper/internal/fetcher"
	"stayscraper/internal/sites/airbnb"
)

var (
	// ErrInvalidInput marks a request that can never succeed as given.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNavigationTimeout marks a page that did not load in time. It is the
	// same sentinel the fetchers return.
	ErrNavigationTimeout = fetcher.ErrTimeout
	// ErrBlockedContent marks a page showing anti-automation content instead of the listing.
	ErrBlockedContent = errors.New("blocked content")
)

// InputError is a rejected request. Message is safe to show to callers.
type InputError struct {
	Message string
	Err     error
}

func (e *InputError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *InputError) Unwrap() []error { return []error{ErrInvalidInput, e.Err} }

func invalidInput(msg string, err error) error {
	return &InputError{Message: msg, Err: err}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so Retry stops without further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

func isPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// StatusCode maps an error to the HTTP status the API answers with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, airbnb.ErrInvalidURL),
		errors.Is(err, airbnb.ErrInvalidStep):
		return http.StatusBadRequest
	case errors.Is(err, ErrNavigationTimeout),
		errors.Is(err, context.DeadlineExceeded),
		strings.Contains(strings.ToLower(err.Error()), "timeout"):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// navigationError tags a fetcher error with the pipeline taxonomy.
func navigationError(err error) error {
	if !errors.Is(err, ErrNavigationTimeout) && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrNavigationTimeout, err)
	}
	return err
}
