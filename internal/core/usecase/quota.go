package usecase

import "github.com/legalaipro/legal-ai-gateway/internal/core/domain"

// IsQuotaFailure reports whether a provider failure qualifies for the
// secondary provider.
func IsQuotaFailure(failure *domain.ProviderFailure) bool {
	return failure.IsQuota()
}
