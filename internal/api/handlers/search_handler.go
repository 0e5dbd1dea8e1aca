package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/DJ-no1/floatchat-backend/internal/agent"
	"github.com/DJ-no1/floatchat-backend/internal/search/web"
)

type SearchHandler struct {
	agent *agent.Agent
}

func NewSearchHandler(a *agent.Agent) *SearchHandler {
	return &SearchHandler{agent: a}
}

// HandleSearch is the direct-search entry point: search, rank, truncate — no
// intent classification or query enhancement. Invalid parameters are the
// caller's error and are rejected before any backend call.
func (h *SearchHandler) HandleSearch(c *fiber.Ctx) error {
	var req struct {
		Query      string   `json:"query"`
		SiteFilter []string `json:"site_filter"`
		TimeRange  string   `json:"time_range"`
		TopK       *int     `json:"top_k"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	timeRange := web.TimeRange(req.TimeRange)
	if req.TimeRange == "" {
		timeRange = web.TimeYear
	}

	topK := 5
	if req.TopK != nil {
		topK = *req.TopK
	}

	query := web.Query{
		Text:       req.Query,
		SiteFilter: req.SiteFilter,
		TimeRange:  timeRange,
		TopK:       topK,
	}

	results, err := h.agent.DirectSearch(c.Context(), query)
	if err != nil {
		if isValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Search failed",
		})
	}

	if results == nil {
		results = []web.Result{}
	}

	return c.JSON(fiber.Map{
		"results":   results,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func isValidationError(err error) bool {
	return errors.Is(err, web.ErrEmptyQuery) ||
		errors.Is(err, web.ErrInvalidTimeRange) ||
		errors.Is(err, web.ErrInvalidTopK)
}
