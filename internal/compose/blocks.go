// Package compose shapes ranked search results into the block payload the
// presentation layer renders. Blocks are a pure projection: they carry no
// reference back to the pipeline data that produced them.
package compose

// Block is the tagged variant consumed by the UI renderer. Concrete types
// serialize with a "type" discriminator matching what the renderer switches
// on: text, metrics, table, links, warning.
type Block interface {
	blockType() string
}

type TextBlock struct {
	Type      string `json:"type"`
	Style     string `json:"style"`
	ContentMD string `json:"content_md"`
}

func (TextBlock) blockType() string { return "text" }

// Text styles understood by the renderer.
const (
	StyleTitle    = "title"
	StyleSubtitle = "subtitle"
	StyleBody     = "body"
	StyleCaption  = "caption"
)

func NewText(style, contentMD string) TextBlock {
	return TextBlock{Type: "text", Style: style, ContentMD: contentMD}
}

type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Help  string `json:"help,omitempty"`
}

type MetricsBlock struct {
	Type  string   `json:"type"`
	Items []Metric `json:"items"`
}

func (MetricsBlock) blockType() string { return "metrics" }

func NewMetrics(items ...Metric) MetricsBlock {
	return MetricsBlock{Type: "metrics", Items: items}
}

type TableBlock struct {
	Type    string     `json:"type"`
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Note    string     `json:"note,omitempty"`
}

func (TableBlock) blockType() string { return "table" }

func NewTable(name string, columns []string, rows [][]string, note string) TableBlock {
	return TableBlock{Type: "table", Name: name, Columns: columns, Rows: rows, Note: note}
}

type LinkItem struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

type LinksBlock struct {
	Type  string     `json:"type"`
	Name  string     `json:"name"`
	Items []LinkItem `json:"items"`
}

func (LinksBlock) blockType() string { return "links" }

func NewLinks(name string, items []LinkItem) LinksBlock {
	return LinksBlock{Type: "links", Name: name, Items: items}
}

type WarningBlock struct {
	Type      string `json:"type"`
	MessageMD string `json:"message_md"`
}

func (WarningBlock) blockType() string { return "warning" }

func NewWarning(messageMD string) WarningBlock {
	return WarningBlock{Type: "warning", MessageMD: messageMD}
}
