package intent

// Enhance appends the hint vocabulary for it to the user's text, biasing
// keyword overlap toward authoritative terminology before the query reaches
// the search backend. An unrecognized intent falls back to the default
// intent's hint, so the result always starts with text and is never just
// text alone.
func Enhance(text string, it Intent) string {
	hint, ok := defaultHints[it]
	if !ok {
		hint = defaultHints[Default]
	}
	return text + " " + hint
}
