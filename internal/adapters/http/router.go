package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/legalaipro/legal-ai-gateway/internal/config"
	"github.com/legalaipro/legal-ai-gateway/internal/core/ports"
	"github.com/legalaipro/legal-ai-gateway/internal/observability/metrics"
)

const backpressureWaitTimeout = 250 * time.Millisecond

type Router struct {
	cfg       config.Config
	chat      ports.ChatService
	status    ports.ProviderStatus
	documents ports.DocumentAnalyzer
	text      ports.TextAnalyzer
	news      ports.NewsService
	metrics   *metrics.GatewayMetrics
	openAPI   []byte
}

func NewRouter(
	cfg config.Config,
	chat ports.ChatService,
	status ports.ProviderStatus,
	documents ports.DocumentAnalyzer,
	text ports.TextAnalyzer,
	news ports.NewsService,
	gatewayMetrics *metrics.GatewayMetrics,
) *Router {
	return &Router{
		cfg:       cfg,
		chat:      chat,
		status:    status,
		documents: documents,
		text:      text,
		news:      news,
		metrics:   gatewayMetrics,
	}
}

// WithOpenAPIDocument enables GET /openapi.json.
func (rt *Router) WithOpenAPIDocument(doc []byte) *Router {
	rt.openAPI = doc
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", rt.analyzeDocument)
	mux.HandleFunc("POST /analyze-text", rt.analyzeText)
	mux.HandleFunc("POST /chat", rt.chatReply)
	mux.HandleFunc("GET /chat/health", rt.chatHealth)
	mux.HandleFunc("GET /health", rt.health)
	mux.HandleFunc("GET /news", rt.searchNews)
	if rt.openAPI != nil {
		mux.HandleFunc("GET /openapi.json", rt.openAPIDocument)
	}
	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.cfg.MaxInFlightRequests > 0 {
		handler = backpressureMiddleware(handler, rt.cfg.MaxInFlightRequests, backpressureWaitTimeout)
	}
	handler = corsMiddleware(handler, rt.cfg.CORSAllowedOrigins)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(handler)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) primaryConfigured() bool {
	return rt.status != nil && rt.status.PrimaryConfigured()
}

func (rt *Router) chatHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":                   true,
		"primaryKeyConfigured": rt.primaryConfigured(),
	})
}

func (rt *Router) health(w http.ResponseWriter, _ *http.Request) {
	port, err := strconv.Atoi(rt.cfg.Port)
	var portValue any = port
	if err != nil {
		portValue = rt.cfg.Port
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":                   true,
		"serviceName":          rt.cfg.ServiceName,
		"port":                 portValue,
		"primaryKeyConfigured": rt.primaryConfigured(),
	})
}

func (rt *Router) openAPIDocument(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rt.openAPI)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
