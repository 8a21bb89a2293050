// Package report writes search matches as text or JSON lines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/muesli/termenv"

	"github.com/jacoelho/yamlgrep/internal/pointer"
	"github.com/jacoelho/yamlgrep/internal/search"
)

// OutputFormat represents the line format of the report.
type OutputFormat int

const (
	FormatText OutputFormat = iota
	FormatJSON
)

// ParseOutputFormat maps a flag value to an OutputFormat.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch name {
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown output format %q (want text or json)", name)
	}
}

// Reporter formats matches. Color is already resolved by the caller.
type Reporter struct {
	Writer     io.Writer
	PathFormat pointer.Format
	Output     OutputFormat
	Color      bool
	// MaxMatches caps the number of reported matches; 0 means unlimited.
	MaxMatches int
	Logger     *slog.Logger
}

// Report pulls matches until the sequence ends or MaxMatches is reached,
// at which point it stops ranging so no further nodes are visited.
// It returns the number of matches written.
func (r *Reporter) Report(matches iter.Seq[search.Match]) (int, error) {
	count := 0
	for m := range matches {
		if err := r.write(m); err != nil {
			return count, fmt.Errorf("write match: %w", err)
		}
		count++

		if r.MaxMatches > 0 && count >= r.MaxMatches {
			r.logger().Debug("max matches reached, stopping search", "max_matches", r.MaxMatches)
			break
		}
	}
	return count, nil
}

func (r *Reporter) write(m search.Match) error {
	if r.Output == FormatJSON {
		return r.writeJSON(m)
	}
	return r.writeText(m)
}

func (r *Reporter) writeText(m search.Match) error {
	label := "(VAL)"
	if m.In == search.InKey {
		label = "(KEY)"
	}

	_, err := fmt.Fprintf(r.Writer, "%s\t%s\t%s\n",
		pointer.Render(m.Path, r.PathFormat), label, r.highlight(m))
	return err
}

// highlight wraps every matched span in bold escape codes when color is on.
// Empty spans have nothing to mark.
func (r *Reporter) highlight(m search.Match) string {
	if !r.Color {
		return m.Text
	}

	var b strings.Builder
	prev := 0
	for _, span := range m.Spans {
		if span.Start == span.End {
			continue
		}
		b.WriteString(m.Text[prev:span.Start])
		b.WriteString(termenv.String(m.Text[span.Start:span.End]).Bold().String())
		prev = span.End
	}
	b.WriteString(m.Text[prev:])
	return b.String()
}

type jsonSpan struct {
	Match string `json:"match"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type jsonMatch struct {
	Path    string     `json:"path"`
	In      string     `json:"in"`
	Text    string     `json:"text"`
	Matches []jsonSpan `json:"matches"`
}

func (r *Reporter) writeJSON(m search.Match) error {
	matched := m.Matched()
	spans := make([]jsonSpan, len(m.Spans))
	for i, span := range m.Spans {
		spans[i] = jsonSpan{
			Match: matched[i],
			Start: span.Start,
			End:   span.End,
		}
	}

	enc := json.NewEncoder(r.Writer)
	enc.SetEscapeHTML(false)
	return enc.Encode(jsonMatch{
		Path:    pointer.Render(m.Path, r.PathFormat),
		In:      m.In.String(),
		Text:    m.Text,
		Matches: spans,
	})
}

func (r *Reporter) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}
