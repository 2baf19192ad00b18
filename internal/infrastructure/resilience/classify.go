package resilience

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
)

// FailureFilter reports whether an error counts against a breaker.
type FailureFilter func(err error) bool

// ProviderFault counts upstream outages and transport errors. Quota failures
// never count, so a primary out of quota keeps returning them to the router
// for fallback. Other client errors and cancellations do not count either.
func ProviderFault(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if failure, ok := domain.AsProviderFailure(err); ok {
		if failure.IsQuota() {
			return false
		}
		switch failure.Status() {
		case http.StatusRequestTimeout, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	return true
}

// NormalizeCircuitError turns breaker rejections into a provider failure so
// routing sees one error shape.
func NormalizeCircuitError(provider string, err error) error {
	if err == nil || !IsCircuitOpen(err) {
		return err
	}
	return &domain.ProviderFailure{
		Provider:   provider,
		StatusCode: http.StatusServiceUnavailable,
		Message:    fmt.Sprintf("%s circuit open: %v", provider, err),
	}
}
