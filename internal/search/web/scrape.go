package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// scrapeSearch is the keyless fallback: it scrapes a Google results page
// instead of calling the Custom Search API. Meant for local development —
// result quality is worse and no page metadata (dates) is available.
func (c *Client) scrapeSearch(ctx context.Context, q Query) ([]Result, error) {
	searchURL := fmt.Sprintf("%s?q=%s&num=%d",
		c.scrapeBase, url.QueryEscape(buildQueryText(q)), backendPageSize)
	if tbs := scrapeRecencyParam(q.TimeRange); tbs != "" {
		searchURL += "&tbs=" + tbs
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", errHTTPStatus, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedPayload, err)
	}

	results := make([]Result, 0, backendPageSize)
	doc.Find("div.g").Each(func(i int, s *goquery.Selection) {
		title := s.Find("h3").Text()
		link, _ := s.Find("a").Attr("href")
		snippet := s.Find("div.VwiC3b").Text()

		if title == "" || link == "" {
			return
		}

		source := deriveSource(link)
		if c.policy.Disallowed(source) {
			return
		}

		results = append(results, Result{
			Rank:    i + 1,
			Title:   title,
			URL:     link,
			Snippet: snippet,
			Source:  source,
		})
	})

	return results, nil
}

func scrapeRecencyParam(t TimeRange) string {
	switch t {
	case TimeWeek:
		return "qdr:w"
	case TimeMonth:
		return "qdr:m"
	case TimeYear:
		return "qdr:y"
	default:
		return ""
	}
}
