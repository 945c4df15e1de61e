package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xa0c/tally/internal/aggregator"
	"github.com/xa0c/tally/internal/model"
)

// Renderer writes analysis results to an output stream.
type Renderer interface {
	Summary(counts *aggregator.Counts) error
	Details(level model.Level, records []model.Record) error
}

// sortedLevels returns the discovered levels ordered by count descending.
// The sort is stable over first-occurrence order, so equal counts keep the
// order in which the levels first appeared in the input.
func sortedLevels(counts *aggregator.Counts) []model.Level {
	levels := counts.Levels()
	sort.SliceStable(levels, func(i, j int) bool {
		return counts.Get(levels[i]) > counts.Get(levels[j])
	})
	return levels
}

// ---------------------------------------------------------------------------
// Text Renderer (colorized terminal output)
// ---------------------------------------------------------------------------

var (
	styleDebug   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")) // gray
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("220")) // yellow
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red bold
	styleHeader  = lipgloss.NewStyle().Bold(true)
)

const (
	columnLevel = "Log Level"
	columnCount = "Count"
)

// TextRenderer prints a bordered count table and, on request, the record
// lines for one level, with severity-based colors when enabled.
type TextRenderer struct {
	w     io.Writer
	color bool
}

// NewTextRenderer returns a Renderer that writes formatted text to w.
func NewTextRenderer(w io.Writer, color bool) *TextRenderer {
	return &TextRenderer{w: w, color: color}
}

func (r *TextRenderer) Summary(counts *aggregator.Counts) error {
	levels := sortedLevels(counts)

	// First column is as wide as its longest cell plus one trailing space.
	width := len(columnLevel)
	for _, level := range levels {
		if len(level) > width {
			width = len(level)
		}
	}
	width++

	var b strings.Builder
	fmt.Fprintf(&b, "%s│ %s\n", pad(columnLevel, width), columnCount)
	fmt.Fprintf(&b, "%s┼─%s\n", strings.Repeat("─", width), strings.Repeat("─", len(columnCount)))
	for _, level := range levels {
		fmt.Fprintf(&b, "%s│ %d\n", r.styleLevel(level, width), counts.Get(level))
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *TextRenderer) Details(level model.Level, records []model.Record) error {
	header := fmt.Sprintf("Log details for the level '%s':", level)
	if r.color {
		header = styleHeader.Render(header)
	}

	var b strings.Builder
	b.WriteByte('\n')
	b.WriteString(header)
	b.WriteByte('\n')
	for _, rec := range records {
		fmt.Fprintf(&b, "%s - %s\n", rec.Timestamp.Format(model.TimeLayout), rec.Message)
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

// styleLevel pads before styling so ANSI escapes never skew column widths.
func (r *TextRenderer) styleLevel(level model.Level, width int) string {
	padded := pad(string(level), width)
	if !r.color {
		return padded
	}
	switch level {
	case model.LevelDebug:
		return styleDebug.Render(padded)
	case model.LevelWarning:
		return styleWarning.Render(padded)
	case model.LevelError:
		return styleError.Render(padded)
	default:
		return styleInfo.Render(padded)
	}
}

func pad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// JSONRenderer prints each result as a single JSON object per line.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer that writes JSON lines to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(w)}
}

type levelCount struct {
	Level model.Level `json:"level"`
	Count int         `json:"count"`
}

type summaryDoc struct {
	Counts []levelCount `json:"counts"`
}

type detailsDoc struct {
	Level   model.Level    `json:"level"`
	Records []model.Record `json:"records"`
}

func (r *JSONRenderer) Summary(counts *aggregator.Counts) error {
	levels := sortedLevels(counts)
	doc := summaryDoc{Counts: make([]levelCount, 0, len(levels))}
	for _, level := range levels {
		doc.Counts = append(doc.Counts, levelCount{Level: level, Count: counts.Get(level)})
	}
	return r.enc.Encode(doc)
}

func (r *JSONRenderer) Details(level model.Level, records []model.Record) error {
	if records == nil {
		records = []model.Record{}
	}
	return r.enc.Encode(detailsDoc{Level: level, Records: records})
}
