package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
)

type errorResponse struct {
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details,omitempty"`
}

func mapErrorToHTTPStatus(err error) int {
	if failure, ok := domain.AsProviderFailure(err); ok {
		return failure.Status()
	}
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError exposes only caller-safe messages; anything else becomes
// fallback. Upstream payloads travel in details.
func writeError(w http.ResponseWriter, err error, fallback string) {
	resp := errorResponse{Error: domain.PublicMessage(err, fallback)}
	if failure, ok := domain.AsProviderFailure(err); ok && len(failure.RawPayload) > 0 {
		resp.Details = failure.RawPayload
	}
	writeJSON(w, mapErrorToHTTPStatus(err), resp)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
