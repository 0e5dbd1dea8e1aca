package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/DJ-no1/floatchat-backend/internal/domains"
	"github.com/DJ-no1/floatchat-backend/internal/metrics"
	"github.com/DJ-no1/floatchat-backend/pkg/circuitbreaker"
	"github.com/DJ-no1/floatchat-backend/pkg/config"
	"github.com/DJ-no1/floatchat-backend/pkg/logger"
	"github.com/DJ-no1/floatchat-backend/pkg/retry"
)

const (
	defaultEndpoint   = "https://www.googleapis.com/customsearch/v1"
	defaultScrapeBase = "https://www.google.com/search"

	// backendPageSize is requested from the backend regardless of the
	// caller's cap: filtering and ranking happen over the full page, and
	// truncation to the cap happens last. Truncating first would let a
	// low-priority domain take a slot a listed domain should win.
	backendPageSize = 10
)

// Client executes searches against Google's Custom Search JSON API, falling
// back to scraping result pages when no API key is configured. Results from
// deny-listed domains are dropped before anything downstream sees them.
//
// Backend failures degrade to an empty result set rather than an error:
// callers treat zero results as a normal outcome, and the warning surface in
// the composed response is identical for "nothing found" and "backend down".
// Failure kinds are still distinguished in logs and metrics.
type Client struct {
	apiKey     string
	engineID   string
	endpoint   string
	scrapeBase string
	policy     *domains.Policy
	httpClient *http.Client
	cb         *circuitbreaker.CircuitBreaker
	retryCfg   retry.Config
}

func NewClient(cfg config.SearchConfig, policy *domains.Policy) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	maxAttempts := cfg.MaxRetries
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	cb := circuitbreaker.New("search-backend", circuitbreaker.Config{
		MaxRequests:      2,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Logger:           logger.GetLogger(),
	})

	return &Client{
		apiKey:     cfg.APIKey,
		engineID:   cfg.EngineID,
		endpoint:   defaultEndpoint,
		scrapeBase: defaultScrapeBase,
		policy:     policy,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cb: cb,
		retryCfg: retry.Config{
			MaxAttempts:  maxAttempts,
			InitialDelay: 250 * time.Millisecond,
			Logger:       logger.GetLogger(),
		},
	}
}

// Search runs q against the backend and returns normalized, deny-filtered
// results in backend order. The slice is empty on failure; Search never
// returns an error.
func (c *Client) Search(ctx context.Context, q Query) []Result {
	logger.Info("Performing web search",
		zap.String("query", q.Text),
		zap.Strings("site_filter", q.SiteFilter),
		zap.String("time_range", string(q.TimeRange)),
	)

	var results []Result
	err := c.cb.Execute(ctx, func() error {
		return retry.Do(ctx, c.retryCfg, func() error {
			var err error
			if c.apiKey == "" {
				results, err = c.scrapeSearch(ctx, q)
			} else {
				results, err = c.apiSearch(ctx, q)
			}
			return err
		})
	})

	if err != nil {
		reason := failureReason(err)
		logger.Error("Search backend call failed, returning empty results",
			zap.Error(err),
			zap.String("reason", reason),
		)
		metrics.SearchBackendFailures.WithLabelValues(reason).Inc()
		return nil
	}

	logger.Info("Web search completed", zap.Int("results", len(results)))
	return results
}

func (c *Client) apiSearch(ctx context.Context, q Query) ([]Result, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", buildQueryText(q))
	params.Set("num", fmt.Sprintf("%d", backendPageSize))
	params.Set("safe", "active")
	if restrict := q.TimeRange.dateRestrict(); restrict != "" {
		params.Set("dateRestrict", restrict)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", errHTTPStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var searchResp struct {
		Items []struct {
			Title   string          `json:"title"`
			Link    string          `json:"link"`
			Snippet string          `json:"snippet"`
			Pagemap json.RawMessage `json:"pagemap"`
		} `json:"items"`
	}

	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedPayload, err)
	}

	results := make([]Result, 0, len(searchResp.Items))
	for i, item := range searchResp.Items {
		source := deriveSource(item.Link)
		if c.policy.Disallowed(source) {
			logger.Debug("Dropping disallowed domain", zap.String("source", source))
			metrics.SearchResultsFiltered.Inc()
			continue
		}

		result := Result{
			Rank:    i + 1,
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
			Source:  source,
		}
		result.Published, result.Updated = extractDates(item.Pagemap)

		results = append(results, result)
	}

	return results, nil
}

// buildQueryText appends an OR-joined site: clause when a site filter is set.
// The enhanced query text itself is only an auxiliary signal; the site filter
// is the hard scoping mechanism.
func buildQueryText(q Query) string {
	if len(q.SiteFilter) == 0 {
		return q.Text
	}

	clauses := make([]string, 0, len(q.SiteFilter))
	for _, domain := range q.SiteFilter {
		clauses = append(clauses, "site:"+domain)
	}
	return fmt.Sprintf("%s (%s)", q.Text, strings.Join(clauses, " OR "))
}

// deriveSource extracts the normalized source domain from a hit URL. An
// unparseable URL yields an empty source rather than an error; such hits
// simply never match the priority list.
func deriveSource(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return domains.Normalize(parsed.Hostname())
}

var (
	errHTTPStatus       = errors.New("search backend returned non-2xx status")
	errMalformedPayload = errors.New("search backend returned malformed payload")
)

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, circuitbreaker.ErrCircuitOpen), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		return "circuit_open"
	case errors.Is(err, errHTTPStatus):
		return "http_status"
	case errors.Is(err, errMalformedPayload):
		return "parse_error"
	default:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "timeout"
		}
		return "network_error"
	}
}
