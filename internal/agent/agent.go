// Package agent orchestrates the chat pipeline: classify the user's intent,
// enhance the query, search the web, rank the hits, and compose the
// presentation payload. One request is one independent pass; the only shared
// state is the read-only policy and pattern tables.
package agent

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DJ-no1/floatchat-backend/internal/compose"
	"github.com/DJ-no1/floatchat-backend/internal/intent"
	"github.com/DJ-no1/floatchat-backend/internal/metrics"
	"github.com/DJ-no1/floatchat-backend/internal/search/rank"
	"github.com/DJ-no1/floatchat-backend/internal/search/web"
	"github.com/DJ-no1/floatchat-backend/pkg/logger"
)

// Searcher is the narrow interface to the external search capability.
// Implementations absorb backend failures and return an empty slice instead
// of an error.
type Searcher interface {
	Search(ctx context.Context, q web.Query) []web.Result
}

var ErrEmptyQuery = errors.New("query is required")

type Agent struct {
	classifier  *intent.Classifier
	searcher    Searcher
	ranker      *rank.Ranker
	composer    *compose.Composer
	defaultTopK int
}

func New(classifier *intent.Classifier, searcher Searcher, ranker *rank.Ranker, composer *compose.Composer, defaultTopK int) *Agent {
	if defaultTopK < web.MinResults || defaultTopK > web.MaxResults {
		defaultTopK = 5
	}
	return &Agent{
		classifier:  classifier,
		searcher:    searcher,
		ranker:      ranker,
		composer:    composer,
		defaultTopK: defaultTopK,
	}
}

type ChatRequest struct {
	Query     string
	SessionID string
}

type ChatResponse struct {
	SessionID string           `json:"session_id"`
	Intent    string           `json:"intent"`
	SummaryMD string           `json:"assistant_summary_md"`
	Blocks    []compose.Block  `json:"blocks"`
	Sources   []compose.Source `json:"sources_used"`
	LatencyMS int              `json:"latency_ms"`
	Timestamp string           `json:"timestamp"`
}

// ProcessQuery runs the full chat pipeline with the standard defaults: no
// site filter, results from the last year, top 5. It always returns a
// well-formed response for a non-empty query — a failing search backend
// surfaces as a response with a warning block, not as an error.
func (a *Agent) ProcessQuery(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.Query == "" {
		return nil, ErrEmptyQuery
	}

	start := time.Now()

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	it := a.classifier.Classify(req.Query)
	metrics.IntentClassified.WithLabelValues(it.String()).Inc()

	enhanced := intent.Enhance(req.Query, it)
	logger.Info("Processing chat query",
		zap.String("session_id", sessionID),
		zap.String("intent", it.String()),
		zap.String("enhanced_query", enhanced),
	)

	query := web.Query{
		Text:      enhanced,
		TimeRange: web.TimeYear,
		TopK:      a.defaultTopK,
	}

	ranked := a.searchAndRank(ctx, query)
	composed := a.composer.Compose(ctx, req.Query, it, ranked)

	status := "ok"
	if len(ranked) == 0 {
		status = "empty"
	}
	metrics.ChatTotal.WithLabelValues(it.String(), status).Inc()
	metrics.ChatDuration.Observe(time.Since(start).Seconds())

	latency := int(time.Since(start).Milliseconds())
	logger.Info("Chat query processed",
		zap.String("session_id", sessionID),
		zap.String("intent", it.String()),
		zap.Int("results", len(ranked)),
		zap.Int("latency_ms", latency),
	)

	return &ChatResponse{
		SessionID: sessionID,
		Intent:    it.String(),
		SummaryMD: composed.SummaryMD,
		Blocks:    composed.Blocks,
		Sources:   composed.Sources,
		LatencyMS: latency,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// DirectSearch runs search, rank, and truncate only — no classification or
// enhancement. Validation happens here, before any backend call; an invalid
// query is the caller's error and is never silently clamped.
func (a *Agent) DirectSearch(ctx context.Context, q web.Query) ([]web.Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return a.searchAndRank(ctx, q), nil
}

// searchAndRank is the shared back half of both entry points. Filtering
// happened inside the searcher, so ranking sees every allowed hit and the
// cap is applied last.
func (a *Agent) searchAndRank(ctx context.Context, q web.Query) []web.Result {
	searchStart := time.Now()
	results := a.searcher.Search(ctx, q)
	metrics.SearchDuration.Observe(time.Since(searchStart).Seconds())
	metrics.SearchResultsReturned.Observe(float64(len(results)))

	ranked := a.ranker.Rank(results)
	if len(ranked) > q.TopK {
		ranked = ranked[:q.TopK]
	}
	return ranked
}
