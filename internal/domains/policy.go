package domains

import (
	"strings"
	"time"
)

// Policy holds the source-domain preferences used by the search pipeline:
// an ordered priority list (earlier is better), substring patterns for
// domains that are never surfaced, and the freshness window beyond which
// cited pages trigger a warning.
//
// A Policy is built once at startup and read concurrently without locking;
// it must not be mutated after New.
type Policy struct {
	priority        []string
	priorityIndex   map[string]int
	deniedPatterns  []string
	freshnessWindow time.Duration
}

func New(priority, denied []string, freshnessMonths int) *Policy {
	index := make(map[string]int, len(priority))
	normalized := make([]string, 0, len(priority))
	for _, d := range priority {
		d = Normalize(d)
		if _, ok := index[d]; ok {
			continue
		}
		index[d] = len(normalized)
		normalized = append(normalized, d)
	}

	if freshnessMonths <= 0 {
		freshnessMonths = 24
	}

	return &Policy{
		priority:        normalized,
		priorityIndex:   index,
		deniedPatterns:  denied,
		freshnessWindow: time.Duration(freshnessMonths) * 30 * 24 * time.Hour,
	}
}

// Normalize lower-cases a host and strips a leading "www.".
func Normalize(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	return strings.TrimPrefix(domain, "www.")
}

// PriorityIndex returns the 0-based rank of domain in the priority list.
// Domains not on the list rank after every listed one.
func (p *Policy) PriorityIndex(domain string) int {
	if idx, ok := p.priorityIndex[Normalize(domain)]; ok {
		return idx
	}
	return len(p.priority)
}

// Disallowed reports whether domain matches any deny-list pattern.
// Patterns are plain substrings, so "facebook.com" also catches
// "m.facebook.com".
func (p *Policy) Disallowed(domain string) bool {
	domain = Normalize(domain)
	for _, pattern := range p.deniedPatterns {
		if strings.Contains(domain, pattern) {
			return true
		}
	}
	return false
}

// StaleYear reports whether a page whose freshest extracted calendar year is
// year falls outside the freshness window relative to now. Result dates are
// free text, so staleness is judged at year granularity only; an unknown
// year (0) is never stale.
func (p *Policy) StaleYear(year int, now time.Time) bool {
	if year == 0 {
		return false
	}
	return year < now.Year()-p.FreshnessMonths()/12
}

// FreshnessMonths returns the window size for user-facing messages.
func (p *Policy) FreshnessMonths() int {
	return int(p.freshnessWindow / (30 * 24 * time.Hour))
}

// Priority returns a copy of the ordered priority list.
func (p *Policy) Priority() []string {
	out := make([]string, len(p.priority))
	copy(out, p.priority)
	return out
}
