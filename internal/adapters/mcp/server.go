// Package mcpadapter exposes the chat and text analysis use cases as Model
// Context Protocol tools.
package mcpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
	"github.com/legalaipro/legal-ai-gateway/internal/core/ports"
)

const (
	ToolLegalChat   = "legal_chat"
	ToolAnalyzeText = "analyze_text"
)

type Server struct {
	chat ports.ChatService
	text ports.TextAnalyzer
	mcp  *server.MCPServer
}

func NewServer(name, version string, chat ports.ChatService, text ports.TextAnalyzer) *Server {
	s := &Server{
		chat: chat,
		text: text,
		mcp:  server.NewMCPServer(name, version, server.WithToolCapabilities(false)),
	}

	s.mcp.AddTool(mcp.NewTool(ToolLegalChat,
		mcp.WithDescription("Ask the Indian legal assistant a question. Falls back to the secondary model when the primary one is out of quota."),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The question to ask."),
		),
		mcp.WithString("history",
			mcp.Description(`Optional JSON array of earlier turns, e.g. [{"role":"user","content":"..."}].`),
		),
	), s.handleChat)

	s.mcp.AddTool(mcp.NewTool(ToolAnalyzeText,
		mcp.WithDescription("Send free text to the analysis model and return its answer verbatim."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to analyse."),
		),
	), s.handleAnalyzeText)

	return s
}

func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) handleChat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := req.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("'message' is required."), nil
	}

	var history []domain.ChatMessage
	if raw := strings.TrimSpace(req.GetString("history", "")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &history); err != nil {
			history = nil
		}
	}

	reply, err := s.chat.Reply(ctx, message, history)
	if err != nil {
		slog.Error("mcp_tool_failed", "tool", ToolLegalChat, "error", err)
		return mcp.NewToolResultError(domain.PublicMessage(err, "Failed to get a reply")), nil
	}
	return mcp.NewToolResultText(reply.ReplyText), nil
}

func (s *Server) handleAnalyzeText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("'query' text is required."), nil
	}

	answer, err := s.text.AnalyzeText(ctx, query)
	if err != nil {
		slog.Error("mcp_tool_failed", "tool", ToolAnalyzeText, "error", err)
		if domain.IsKind(err, domain.ErrInvalidInput) {
			return mcp.NewToolResultError(domain.PublicMessage(err, "")), nil
		}
		return mcp.NewToolResultError("Failed to fetch AI insights"), nil
	}
	return mcp.NewToolResultText(answer), nil
}
