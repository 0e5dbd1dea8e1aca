package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DJ-no1/floatchat-backend/internal/agent"
	"github.com/DJ-no1/floatchat-backend/internal/metrics"
	"github.com/DJ-no1/floatchat-backend/pkg/logger"
	"github.com/DJ-no1/floatchat-backend/pkg/utils"
)

// ResponseCache replays previously composed responses for repeated queries.
// A nil cache disables caching.
type ResponseCache interface {
	SetResponse(ctx context.Context, queryHash string, response interface{}) error
	GetResponse(ctx context.Context, queryHash string) ([]byte, bool, error)
}

type ChatHandler struct {
	agent *agent.Agent
	cache ResponseCache
}

func NewChatHandler(a *agent.Agent, cache ResponseCache) *ChatHandler {
	return &ChatHandler{
		agent: a,
		cache: cache,
	}
}

func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req struct {
		Query     string `json:"query"`
		SessionID string `json:"session_id"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query is required",
		})
	}

	if cached := h.tryCache(c, req.Query, req.SessionID); cached {
		return nil
	}

	response, err := h.agent.ProcessQuery(c.Context(), agent.ChatRequest{
		Query:     req.Query,
		SessionID: req.SessionID,
	})
	if err != nil {
		if errors.Is(err, agent.ErrEmptyQuery) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		logger.Error("Failed to process chat query", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process query",
		})
	}

	h.storeCache(c.Context(), req.Query, response)

	return c.JSON(response)
}

// tryCache replays a cached payload if present, patching the fields that are
// per-request (session id, timestamp). Returns true when the response was
// already written. The hit/miss metrics only count lookups against a
// configured cache; with caching disabled neither moves.
func (h *ChatHandler) tryCache(c *fiber.Ctx, query, sessionID string) bool {
	if h.cache == nil {
		return false
	}

	data, hit, err := h.cache.GetResponse(c.Context(), utils.HashQuery(query))
	if err != nil {
		logger.Warn("Response cache lookup failed", zap.Error(err))
		metrics.CacheMisses.Inc()
		return false
	}
	if !hit {
		metrics.CacheMisses.Inc()
		return false
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		logger.Warn("Discarding unreadable cached response", zap.Error(err))
		metrics.CacheMisses.Inc()
		return false
	}

	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	payload["session_id"] = sessionID
	payload["timestamp"] = time.Now().UTC().Format(time.RFC3339)

	metrics.CacheHits.Inc()
	if err := c.JSON(payload); err != nil {
		logger.Error("Failed to write cached response", zap.Error(err))
	}
	return true
}

func (h *ChatHandler) storeCache(ctx context.Context, query string, response *agent.ChatResponse) {
	if h.cache == nil {
		return
	}
	if err := h.cache.SetResponse(ctx, utils.HashQuery(query), response); err != nil {
		logger.Warn("Failed to cache chat response", zap.Error(err))
	}
}
