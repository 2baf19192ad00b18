package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
	"github.com/legalaipro/legal-ai-gateway/internal/observability/logging"
)

const (
	maxJSONBodyBytes = 1 << 20

	analyzeFailedMessage  = "Error analyzing the PDF."
	insightsFailedMessage = "Failed to fetch AI insights"
	chatFailedMessage     = "Failed to get response from OpenAI"
	newsFailedMessage     = "Failed to fetch legal news"
)

func (rt *Router) analyzeDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := readUploadedDocument(w, r, rt.cfg.MaxUploadBytes)
	if err != nil {
		writeError(w, err, analyzeFailedMessage)
		return
	}

	result, err := rt.documents.AnalyzeDocument(detach(r), doc)
	if err != nil {
		if !domain.IsKind(err, domain.ErrInvalidInput) {
			slog.Error("analyze_failed",
				"request_id", logging.RequestIDFromContext(r.Context()),
				"filename", doc.Filename,
				"field", doc.FieldName,
				"error", err,
			)
		}
		writeError(w, err, analyzeFailedMessage)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"extractedText": result.ExtractedText,
		"modelAnswer":   result.ModelAnswer,
		"analysis":      result.ModelAnswer,
	})
}

func (rt *Router) analyzeText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query json.RawMessage `json:"query"`
	}
	decodeJSONBody(w, r, &req)

	answer, err := rt.text.AnalyzeText(detach(r), rawString(req.Query))
	if err != nil {
		if domain.IsKind(err, domain.ErrInvalidInput) {
			writeError(w, err, insightsFailedMessage)
			return
		}
		writeMessage(w, http.StatusInternalServerError, insightsFailedMessage)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"analysis": answer})
}

func (rt *Router) chatReply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message json.RawMessage `json:"message"`
		History json.RawMessage `json:"history"`
	}
	decodeJSONBody(w, r, &req)

	reply, err := rt.chat.Reply(detach(r), rawString(req.Message), decodeHistory(req.History))
	if err != nil {
		writeError(w, err, chatFailedMessage)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"replyText":    reply.ReplyText,
		"providerName": string(reply.ProviderName),
		"reply":        reply.ReplyText,
		"provider":     reply.Vendor,
	})
}

func (rt *Router) searchNews(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	query := domain.NewsQuery{
		Topic: values.Get("topic"),
		Scope: domain.NewsScope(strings.ToLower(strings.TrimSpace(values.Get("scope")))),
	}
	if raw := strings.TrimSpace(values.Get("max")); raw != "" {
		max, err := strconv.Atoi(raw)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "'max' must be an integer.")
			return
		}
		query.Max = max
	}

	articles, err := rt.news.Search(r.Context(), query)
	if err != nil {
		slog.Error("news_search_failed",
			"request_id", logging.RequestIDFromContext(r.Context()),
			"topic", query.Topic,
			"error", err,
		)
		writeError(w, err, newsFailedMessage)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"articles": articles})
}

// detach keeps request-scoped values but lets upstream calls finish after
// the client goes away; outbound clients carry their own timeouts.
func detach(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// decodeJSONBody leaves dst untouched for absent or malformed bodies so
// the use case reports the missing field.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) {
	if r.Body == nil {
		return
	}
	body := http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		slog.Debug("json_body_ignored",
			"request_id", logging.RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
	}
}

// rawString returns the value only when raw is a JSON string.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return value
}

func decodeHistory(raw json.RawMessage) []domain.ChatMessage {
	if len(raw) == 0 {
		return nil
	}
	var history []domain.ChatMessage
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil
	}
	return history
}
