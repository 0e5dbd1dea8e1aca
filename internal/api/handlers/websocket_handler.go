package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/DJ-no1/floatchat-backend/internal/agent"
	"github.com/DJ-no1/floatchat-backend/pkg/logger"
)

// WebSocketHandler streams chat responses: the summary is sent word by word
// as chunk frames, then one complete frame carries the blocks and sources.
type WebSocketHandler struct {
	agent *agent.Agent
}

func NewWebSocketHandler(a *agent.Agent) *WebSocketHandler {
	return &WebSocketHandler{agent: a}
}

func (h *WebSocketHandler) HandleConnection(c *websocket.Conn) {
	logger.Info("WebSocket connection established")

	// Pipeline calls run under a context tied to the connection, so a
	// disconnect does not leave search or summarizer calls running.
	ctx, cancel := context.WithCancel(context.Background())

	defer func() {
		cancel()
		c.Close()
		logger.Info("WebSocket connection closed")
	}()

	for {
		var msg struct {
			Type      string `json:"type"`
			Content   string `json:"content"`
			SessionID string `json:"session_id"`
		}

		if err := c.ReadJSON(&msg); err != nil {
			logger.Debug("WebSocket read ended", zap.Error(err))
			break
		}

		if msg.Type != "query" || msg.Content == "" {
			continue
		}

		if err := h.streamResponse(ctx, c, msg.Content, msg.SessionID); err != nil {
			logger.Error("Failed to stream chat response", zap.Error(err))
			h.send(c, map[string]interface{}{
				"type":  "error",
				"error": "Failed to process query",
			})
		}
	}
}

func (h *WebSocketHandler) streamResponse(ctx context.Context, c *websocket.Conn, query, sessionID string) error {
	h.send(c, map[string]interface{}{
		"type":    "status",
		"content": "Searching...",
	})

	response, err := h.agent.ProcessQuery(ctx, agent.ChatRequest{
		Query:     query,
		SessionID: sessionID,
	})
	if err != nil {
		return err
	}

	words := strings.Fields(response.SummaryMD)
	for i, word := range words {
		chunk := word
		if i < len(words)-1 {
			chunk += " "
		}
		if err := h.send(c, map[string]interface{}{
			"type":    "chunk",
			"content": chunk,
		}); err != nil {
			return err
		}
	}

	return h.send(c, map[string]interface{}{
		"type":       "complete",
		"session_id": response.SessionID,
		"intent":     response.Intent,
		"blocks":     response.Blocks,
		"sources":    response.Sources,
		"latency_ms": response.LatencyMS,
	})
}

func (h *WebSocketHandler) send(c *websocket.Conn, msg map[string]interface{}) error {
	return c.WriteJSON(msg)
}
