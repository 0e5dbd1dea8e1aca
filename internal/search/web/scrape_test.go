package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DJ-no1/floatchat-backend/pkg/config"
)

const scrapeFixture = `<html><body>
<div class="g"><a href="https://incois.gov.in/argo"><h3>INCOIS Argo</h3></a><div class="VwiC3b">Float status</div></div>
<div class="g"><a href="https://m.facebook.com/argo"><h3>Social post</h3></a><div class="VwiC3b">Chatter</div></div>
<div class="g"><a href="https://argo.ucsd.edu/"><h3>Argo home</h3></a><div class="VwiC3b">About the program</div></div>
<div class="g"><div class="VwiC3b">No title or link, skipped</div></div>
</body></html>`

// newScrapeClient builds a keyless client, which routes Search through the
// scrape fallback, pointed at a fake results page.
func newScrapeClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.SearchConfig{
		TimeoutSec: 5,
		MaxRetries: 1,
	}, testPolicy())
	client.scrapeBase = server.URL
	return client
}

func TestScrapeSearchParsesAndFiltersResults(t *testing.T) {
	client := newScrapeClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scrapeFixture))
	})

	results := client.Search(context.Background(), Query{Text: "argo", TimeRange: TimeAny, TopK: 5})
	require.Len(t, results, 2)

	assert.Equal(t, "INCOIS Argo", results[0].Title)
	assert.Equal(t, "incois.gov.in", results[0].Source)
	assert.Equal(t, "Float status", results[0].Snippet)
	assert.Equal(t, 1, results[0].Rank)

	// The denied facebook.com hit is dropped; rank keeps the page position.
	assert.Equal(t, "argo.ucsd.edu", results[1].Source)
	assert.Equal(t, 3, results[1].Rank)
}

func TestScrapeSearchSendsRecencyAndQueryParams(t *testing.T) {
	var gotQuery map[string]string
	client := newScrapeClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"q":   r.URL.Query().Get("q"),
			"num": r.URL.Query().Get("num"),
			"tbs": r.URL.Query().Get("tbs"),
		}
		w.Write([]byte(scrapeFixture))
	})

	client.Search(context.Background(), Query{
		Text:       "argo status",
		SiteFilter: []string{"incois.gov.in"},
		TimeRange:  TimeWeek,
		TopK:       5,
	})

	assert.Equal(t, "argo status (site:incois.gov.in)", gotQuery["q"])
	assert.Equal(t, "10", gotQuery["num"])
	assert.Equal(t, "qdr:w", gotQuery["tbs"])
}

func TestScrapeSearchOmitsRecencyParamForAny(t *testing.T) {
	var hasTBS bool
	client := newScrapeClient(t, func(w http.ResponseWriter, r *http.Request) {
		hasTBS = r.URL.Query().Has("tbs")
		w.Write([]byte(scrapeFixture))
	})

	client.Search(context.Background(), Query{Text: "argo", TimeRange: TimeAny, TopK: 5})
	assert.False(t, hasTBS)
}

func TestScrapeSearchReturnsEmptyOnBackendError(t *testing.T) {
	client := newScrapeClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	results := client.Search(context.Background(), Query{Text: "argo", TimeRange: TimeAny, TopK: 5})
	assert.Empty(t, results)
}

func TestScrapeRecencyParam(t *testing.T) {
	assert.Equal(t, "", scrapeRecencyParam(TimeAny))
	assert.Equal(t, "qdr:w", scrapeRecencyParam(TimeWeek))
	assert.Equal(t, "qdr:m", scrapeRecencyParam(TimeMonth))
	assert.Equal(t, "qdr:y", scrapeRecencyParam(TimeYear))
}
