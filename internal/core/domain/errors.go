package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrExtraction      = errors.New("text extraction failed")
	ErrConfiguration   = errors.New("configuration error")
	ErrTemporary       = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// ProviderFailure is the single shape every outbound LLM or news adapter
// reports upstream failures in.
type ProviderFailure struct {
	Provider   string
	StatusCode int
	Message    string
	RawPayload json.RawMessage
}

func (f *ProviderFailure) Error() string {
	if f == nil {
		return "provider failure"
	}
	if f.Provider == "" {
		return fmt.Sprintf("provider status %d: %s", f.Status(), f.Message)
	}
	return fmt.Sprintf("%s status %d: %s", f.Provider, f.Status(), f.Message)
}

// Status falls back to 500 when the failure carried no usable code.
func (f *ProviderFailure) Status() int {
	if f == nil || f.StatusCode < 400 || f.StatusCode > 599 {
		return http.StatusInternalServerError
	}
	return f.StatusCode
}

// IsQuota reports a rate-limit or billing-exhaustion condition: status 429 or
// a message mentioning quota in any case.
func (f *ProviderFailure) IsQuota() bool {
	if f == nil {
		return false
	}
	if f.Status() == http.StatusTooManyRequests {
		return true
	}
	return strings.Contains(strings.ToLower(f.Message), "quota")
}

func AsProviderFailure(err error) (*ProviderFailure, bool) {
	var failure *ProviderFailure
	if errors.As(err, &failure) && failure != nil {
		return failure, true
	}
	return nil, false
}

// UserError carries a message that is safe to return to API callers as is.
type UserError struct {
	Kind    error
	Message string
}

func NewUserError(kind error, message string) error {
	return &UserError{Kind: kind, Message: message}
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Kind
}

// PublicMessage returns the caller-facing text of err, or fallback when err
// carries nothing safe to expose.
func PublicMessage(err error, fallback string) string {
	var userErr *UserError
	if errors.As(err, &userErr) && userErr.Message != "" {
		return userErr.Message
	}
	if failure, ok := AsProviderFailure(err); ok && failure.Message != "" {
		return failure.Message
	}
	return fallback
}
