package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

// timeFormat is used for every instant in text output.
const timeFormat = "2006-01-02 15:04:05 MST"

// printer writes command results as text, JSON or TOML. TOML needs a table
// at the top level, so callers always pass a struct.
type printer struct {
	w       io.Writer
	format  string
	tz      *time.Location
	heading lipgloss.Style
	muted   lipgloss.Style
}

func newPrinter(w io.Writer, format string, tz *time.Location) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:       w,
		format:  format,
		tz:      tz,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		muted:   r.NewStyle().Faint(true),
	}
}

// emit encodes v in the structured formats and calls text otherwise.
func (p *printer) emit(v any, text func() error) error {
	switch p.format {
	case "json":
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "toml":
		return toml.NewEncoder(p.w).Encode(v)
	default:
		return text()
	}
}

func (p *printer) title(format string, args ...any) {
	fmt.Fprintln(p.w, p.heading.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) note(format string, args ...any) {
	fmt.Fprintln(p.w, p.muted.Render(fmt.Sprintf(format, args...)))
}

// table writes tab-separated rows aligned into columns.
func (p *printer) table(rows [][]string) error {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func (p *printer) time(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(p.tz).Format(timeFormat)
}
