package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
)

func (m *GatewayMetrics) ObserveProviderCall(provider string, duration time.Duration, err error) {
	m.providerCallDuration.WithLabelValues(m.service, labelOrUnknown(provider), callStatus(err)).Observe(duration.Seconds())
}

func (m *GatewayMetrics) ObserveFallback(reason string) {
	m.chatFallbacksTotal.WithLabelValues(m.service, labelOrUnknown(reason)).Inc()
}

func (m *GatewayMetrics) ObserveChatReply(slot domain.ProviderSlot, vendor string) {
	m.chatRepliesTotal.WithLabelValues(m.service, labelOrUnknown(string(slot)), labelOrUnknown(vendor)).Inc()
}

func (m *GatewayMetrics) ObserveAnalysis(endpoint, status string, duration time.Duration) {
	m.analysisTotal.WithLabelValues(m.service, labelOrUnknown(endpoint), labelOrUnknown(status)).Inc()
	m.analysisDuration.WithLabelValues(m.service, labelOrUnknown(endpoint)).Observe(duration.Seconds())
}

func (m *GatewayMetrics) ObserveExtraction(format string, chars int, err error) {
	format = labelOrUnknown(format)
	if err != nil {
		m.extractionTotal.WithLabelValues(m.service, format, "error").Inc()
		return
	}
	m.extractionTotal.WithLabelValues(m.service, format, "success").Inc()
	m.extractedChars.WithLabelValues(m.service, format).Observe(float64(chars))
}

// ObserveBreakerState matches resilience.StateObserver.
func (m *GatewayMetrics) ObserveBreakerState(operation, _, to string) {
	value := 0.0
	switch to {
	case "half-open":
		value = 1
	case "open":
		value = 2
	}
	m.breakerState.WithLabelValues(m.service, labelOrUnknown(operation)).Set(value)
}

// callStatus reports the upstream HTTP status for provider failures and a
// coarse class for everything else.
func callStatus(err error) string {
	if err == nil {
		return strconv.Itoa(http.StatusOK)
	}
	if failure, ok := domain.AsProviderFailure(err); ok {
		return strconv.Itoa(failure.Status())
	}
	return "error"
}

func labelOrUnknown(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
