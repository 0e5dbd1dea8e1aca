package web

import (
	"errors"
	"regexp"
	"strconv"
)

// TimeRange restricts a search to a recency window.
type TimeRange string

const (
	TimeAny   TimeRange = "any"
	TimeWeek  TimeRange = "week"
	TimeMonth TimeRange = "month"
	TimeYear  TimeRange = "year"
)

func (t TimeRange) Valid() bool {
	switch t {
	case TimeAny, TimeWeek, TimeMonth, TimeYear:
		return true
	}
	return false
}

// dateRestrict maps the range onto the backend's native recency filter.
// TimeAny means no restriction.
func (t TimeRange) dateRestrict() string {
	switch t {
	case TimeWeek:
		return "d7"
	case TimeMonth:
		return "m1"
	case TimeYear:
		return "y1"
	default:
		return ""
	}
}

const (
	MinResults = 1
	MaxResults = 10
)

var (
	ErrEmptyQuery       = errors.New("query text is required")
	ErrInvalidTimeRange = errors.New("time_range must be one of: any, week, month, year")
	ErrInvalidTopK      = errors.New("top_k must be between 1 and 10")
)

// Query is one fully-specified search request. Build it once, validate it at
// the boundary, hand it to the client; it is not reused across requests.
type Query struct {
	Text       string
	SiteFilter []string
	TimeRange  TimeRange
	TopK       int
}

// Validate rejects caller errors before any backend call is attempted.
// Out-of-range values are an error, never silently clamped.
func (q Query) Validate() error {
	if q.Text == "" {
		return ErrEmptyQuery
	}
	if !q.TimeRange.Valid() {
		return ErrInvalidTimeRange
	}
	if q.TopK < MinResults || q.TopK > MaxResults {
		return ErrInvalidTopK
	}
	return nil
}

// Result is one normalized backend hit. Source is derived from URL
// (lower-cased host, leading "www." stripped) and is what the domain policy
// and ranker key off. Published and Updated are free text straight from page
// metadata; either may be empty.
type Result struct {
	Rank      int    `json:"rank"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Snippet   string `json:"snippet"`
	Published string `json:"published,omitempty"`
	Updated   string `json:"updated,omitempty"`
	Source    string `json:"source"`
}

var yearPattern = regexp.MustCompile(`(19|20)\d{2}`)

// Year extracts the freshest 4-digit calendar year mentioned in the result's
// date strings, or 0 when none parses. Result dates are free text and
// unreliable, so the year is the only signal taken from them.
func (r Result) Year() int {
	year := maxYear(r.Published)
	if year == 0 {
		year = maxYear(r.Updated)
	}
	return year
}

func maxYear(s string) int {
	best := 0
	for _, m := range yearPattern.FindAllString(s, -1) {
		if y, err := strconv.Atoi(m); err == nil && y > best {
			best = y
		}
	}
	return best
}
