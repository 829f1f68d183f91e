// Package render writes libdep reports as plain text or HTML by driving the
// report visitors of package libdep.
package render

import (
	"fmt"
	"io"

	"github.com/jward/libdep"
)

// Output formats accepted by New.
const (
	FormatText = "text"
	FormatHTML = "html"
)

// DefaultTitle is the HTML page title used when Page.Title is empty.
const DefaultTitle = "Boost Dependency Report"

// Page holds the HTML page decorations. The text format ignores it.
type Page struct {
	Title      string
	Footer     string
	Stylesheet string
	Prefix     string
}

// Renderer writes a sequence of reports to one output. Write errors are
// sticky: the first one is kept, later writes are dropped, and Close
// returns it.
type Renderer interface {
	Primary(r *libdep.PrimaryReport)
	Reverse(r *libdep.ReverseReport)
	Secondary(c *libdep.Closure)
	Header(r *libdep.HeaderReport)
	Subset(r *libdep.SubsetReport)
	Levels(r *libdep.LevelReport)
	Weights(r *libdep.WeightReport)
	Overview(lines []libdep.ModuleDependencies)
	Close() error
}

// New returns a Renderer for format writing to w. The HTML renderer writes
// the page header immediately and the footer on Close.
func New(format string, w io.Writer, page Page) (Renderer, error) {
	switch format {
	case FormatText:
		return &textRenderer{p: &printer{w: w}}, nil
	case FormatHTML:
		r := &htmlRenderer{p: &printer{w: w}, page: page}
		r.begin()
		return r, nil
	default:
		return nil, fmt.Errorf("render: unknown format %q", format)
	}
}

// printer is an io.Writer wrapper that remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) print(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}
