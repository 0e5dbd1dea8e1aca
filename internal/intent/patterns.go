package intent

import "regexp"

// rule pairs one pattern with the intent it selects. Rules live in a flat
// ordered slice rather than a map keyed by intent: classification is
// "first match wins, in this exact order", and a slice keeps that order
// visible and testable.
type rule struct {
	re     *regexp.Regexp
	intent Intent
}

// defaultRules is the built-in rule table. Patterns are matched against the
// lower-cased input, earlier rules win.
var defaultRules = []rule{
	{regexp.MustCompile(`what is argo`), ProgramOverview},
	{regexp.MustCompile(`how does argo work`), ProgramOverview},
	{regexp.MustCompile(`variables measured by argo`), ProgramOverview},
	{regexp.MustCompile(`argo program`), ProgramOverview},
	{regexp.MustCompile(`argo network`), ProgramOverview},

	{regexp.MustCompile(`indian ocean argo`), RegionalStatus},
	{regexp.MustCompile(`status of argo floats`), RegionalStatus},
	{regexp.MustCompile(`arabian sea`), RegionalStatus},
	{regexp.MustCompile(`bay of bengal`), RegionalStatus},
	{regexp.MustCompile(`salinity level`), RegionalStatus},
	{regexp.MustCompile(`argo india`), RegionalStatus},
	{regexp.MustCompile(`incois argo`), RegionalStatus},
	{regexp.MustCompile(`indian ocean status`), RegionalStatus},

	{regexp.MustCompile(`where to download argo data`), DataAccess},
	{regexp.MustCompile(`get argo profiles`), DataAccess},
	{regexp.MustCompile(`how to access argo netcdf`), DataAccess},
	{regexp.MustCompile(`argo data download`), DataAccess},
	{regexp.MustCompile(`gdac`), DataAccess},
	{regexp.MustCompile(`argo ftp`), DataAccess},

	{regexp.MustCompile(`nearest argo floats to`), LocationLookup},
	{regexp.MustCompile(`floats near`), LocationLookup},
	{regexp.MustCompile(`closest argo to coordinates`), LocationLookup},
	{regexp.MustCompile(`argo map`), LocationLookup},
	{regexp.MustCompile(`find argo floats`), LocationLookup},
}

// defaultHints carries the search-hint vocabulary appended to queries per
// intent. Every declared intent has exactly one entry, so enhancement can
// never come up empty.
var defaultHints = map[Intent]string{
	ProgramOverview: "Argo program overview what variables measured temperature salinity pressure ocean profiling floats how it works",
	RegionalStatus:  "Indian Ocean Argo floats status current number active INCOIS Arabian Sea Bay Bengal distribution",
	DataAccess:      "Argo data download access GDAC global data assembly centers netCDF files instructions how to",
	LocationLookup:  "Argo float interactive map finder location coordinates nearest search tools ocean-ops",
}

// PatternInfo describes one intent for the /intents metadata endpoint.
type PatternInfo struct {
	Intent   Intent   `json:"intent"`
	Patterns []string `json:"patterns"`
}

// Patterns returns the rule table grouped by intent, preserving declaration
// order within each group.
func Patterns() []PatternInfo {
	grouped := make(map[Intent][]string)
	for _, r := range defaultRules {
		grouped[r.intent] = append(grouped[r.intent], r.re.String())
	}

	out := make([]PatternInfo, 0, len(grouped))
	for _, it := range All() {
		out = append(out, PatternInfo{Intent: it, Patterns: grouped[it]})
	}
	return out
}
