package compose

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/DJ-no1/floatchat-backend/internal/domains"
	"github.com/DJ-no1/floatchat-backend/internal/intent"
	"github.com/DJ-no1/floatchat-backend/internal/metrics"
	"github.com/DJ-no1/floatchat-backend/internal/search/web"
	"github.com/DJ-no1/floatchat-backend/pkg/logger"
)

// Summarizer produces a natural-language summary grounded in the given
// results. Implementations must not introduce facts absent from the results.
type Summarizer interface {
	Summarize(ctx context.Context, query string, it intent.Intent, results []web.Result) (string, error)
}

// Source is one distinct cited domain, carried alongside the blocks for the
// UI's "sources used" panel.
type Source struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Domain string `json:"domain"`
}

// Response is the composed payload handed back to the request layer.
type Response struct {
	SummaryMD string   `json:"assistant_summary_md"`
	Blocks    []Block  `json:"blocks"`
	Sources   []Source `json:"sources"`
}

// Composer turns a ranked result set into presentation blocks. Every factual
// block traces back to an entry in the ranked set; when the set is empty the
// composer emits guidance only, never placeholder facts.
type Composer struct {
	policy     *domains.Policy
	summarizer Summarizer
	now        func() time.Time
}

// New builds a Composer. summarizer may be nil, in which case the
// deterministic template summary is always used.
func New(policy *domains.Policy, summarizer Summarizer) *Composer {
	return &Composer{
		policy:     policy,
		summarizer: summarizer,
		now:        time.Now,
	}
}

func (c *Composer) Compose(ctx context.Context, query string, it intent.Intent, ranked []web.Result) Response {
	sources := distinctSources(ranked)

	if len(ranked) == 0 {
		message := "No results found for your query. Consider relaxing the site filter, widening the time range, or rephrasing the question."
		return Response{
			SummaryMD: message,
			Blocks:    []Block{NewWarning(message)},
			Sources:   []Source{},
		}
	}

	summary := c.summarize(ctx, query, it, ranked)

	blocks := []Block{
		NewText(StyleBody, summary),
		NewMetrics(
			Metric{Label: "Results", Value: fmt.Sprintf("%d", len(ranked))},
			Metric{Label: "Sources", Value: fmt.Sprintf("%d", len(sources)), Help: "Distinct domains cited"},
		),
		c.linksBlock(ranked),
	}

	if stale := c.staleSources(ranked); len(stale) > 0 {
		blocks = append(blocks, NewWarning(fmt.Sprintf(
			"Some cited pages appear older than %d months (%s). Verify against the primary portals before relying on figures.",
			c.policy.FreshnessMonths(), strings.Join(stale, ", "),
		)))
	}

	return Response{
		SummaryMD: summary,
		Blocks:    blocks,
		Sources:   sources,
	}
}

func (c *Composer) summarize(ctx context.Context, query string, it intent.Intent, ranked []web.Result) string {
	if c.summarizer != nil {
		summary, err := c.summarizer.Summarize(ctx, query, it, ranked)
		if err == nil && summary != "" {
			return summary
		}
		logger.Warn("Summarizer failed, using template summary", zap.Error(err))
		metrics.SummaryFallbacks.Inc()
	}
	return templateSummary(it, ranked)
}

// summaryLeads carries the per-intent lead sentence of the template summary.
var summaryLeads = map[intent.Intent]string{
	intent.ProgramOverview: "Here is what the top sources say about the Argo program and the variables its floats measure.",
	intent.RegionalStatus:  "Here is the latest reported status of Argo floats in the region you asked about.",
	intent.DataAccess:      "These sources explain how to access and download Argo data (GDAC portals, NetCDF files).",
	intent.LocationLookup:  "These tools and pages help locate Argo floats near a position of interest.",
}

func templateSummary(it intent.Intent, ranked []web.Result) string {
	lead, ok := summaryLeads[it]
	if !ok {
		lead = summaryLeads[intent.Default]
	}

	top := ranked[0]
	return fmt.Sprintf("%s Found %d relevant results, led by %s: [%s](%s).",
		lead, len(ranked), top.Source, top.Title, top.URL)
}

func (c *Composer) linksBlock(ranked []web.Result) LinksBlock {
	items := make([]LinkItem, 0, len(ranked))
	for _, r := range ranked {
		items = append(items, LinkItem{
			Title:  r.Title,
			URL:    r.URL,
			Source: r.Source,
		})
	}
	return NewLinks("Results", items)
}

// staleSources lists domains whose cited pages fall outside the freshness
// window, in result order without duplicates.
func (c *Composer) staleSources(ranked []web.Result) []string {
	now := c.now()
	seen := make(map[string]bool)
	var stale []string
	for _, r := range ranked {
		if c.policy.StaleYear(r.Year(), now) && !seen[r.Source] {
			seen[r.Source] = true
			stale = append(stale, r.Source)
		}
	}
	return stale
}

// distinctSources returns unique domains across ranked in first-seen order.
func distinctSources(ranked []web.Result) []Source {
	seen := make(map[string]bool)
	sources := make([]Source, 0, len(ranked))
	for _, r := range ranked {
		if seen[r.Source] {
			continue
		}
		seen[r.Source] = true
		sources = append(sources, Source{
			Title:  r.Title,
			URL:    r.URL,
			Domain: r.Source,
		})
	}
	return sources
}
