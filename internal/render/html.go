package render

import (
	"html"

	"github.com/jward/libdep"
)

type htmlRenderer struct {
	p    *printer
	page Page
}

func (r *htmlRenderer) begin() {
	title := r.page.Title
	if title == "" {
		title = DefaultTitle
	}
	r.p.print("<html>\n<head>\n")
	r.p.printf("<title>%s</title>\n", html.EscapeString(title))
	if r.page.Stylesheet != "" {
		r.p.printf("<link rel=\"stylesheet\" type=\"text/css\" href=\"%s\" />\n", html.EscapeString(r.page.Stylesheet))
	}
	r.p.print("</head>\n<body>\n")
	if r.page.Prefix != "" {
		r.p.printf("%s\n", r.page.Prefix)
	}
}

// Close writes the page footer. Prefix and Footer are emitted as given so
// callers can pass markup.
func (r *htmlRenderer) Close() error {
	r.p.print("<hr />\n")
	r.p.printf("<p class=\"footer\">%s</p>\n", r.page.Footer)
	r.p.print("</body>\n</html>\n")
	return r.p.err
}

func (r *htmlRenderer) Primary(rep *libdep.PrimaryReport) {
	libdep.WalkPrimary(rep, &htmlGroups{p: r.p, kind: "Primary", id: "primary-dependencies"})
}

func (r *htmlRenderer) Reverse(rep *libdep.ReverseReport) {
	libdep.WalkReverse(rep, &htmlGroups{p: r.p, kind: "Reverse", id: "reverse-dependencies", anchor: "reverse-"})
}

func (r *htmlRenderer) Secondary(c *libdep.Closure) {
	libdep.WalkSecondary(c, &htmlSecondary{p: r.p})
}

func (r *htmlRenderer) Header(rep *libdep.HeaderReport) {
	libdep.WalkHeader(rep, &htmlHeader{p: r.p})
}

func (r *htmlRenderer) Subset(rep *libdep.SubsetReport) {
	libdep.WalkSubset(rep, &htmlSubset{p: r.p})
}

func (r *htmlRenderer) Levels(rep *libdep.LevelReport) {
	libdep.WalkLevels(rep, &htmlLevels{p: r.p})
}

func (r *htmlRenderer) Weights(rep *libdep.WeightReport) {
	libdep.WalkWeights(rep, &htmlWeights{p: r.p})
}

func (r *htmlRenderer) Overview(lines []libdep.ModuleDependencies) {
	libdep.WalkOverview(lines, &htmlOverview{p: r.p})
}

var esc = html.EscapeString

// htmlGroups renders primary and reverse reports. Module headings carry
// anchor+module as their id.
type htmlGroups struct {
	p      *printer
	kind   string
	id     string
	anchor string
}

func (v *htmlGroups) Heading(m string) {
	v.p.printf("\n\n<h1 id=\"%s\">%s dependencies for <em>%s</em></h1>\n", v.id, v.kind, esc(m))
}

func (v *htmlGroups) ModuleStart(m string) {
	v.p.printf("  <h2 id=\"%s%s\"><a href=\"%s.html\"><em>%s</em></a></h2>\n", v.anchor, esc(m), esc(m), esc(m))
}

func (v *htmlGroups) ModuleEnd(string) {}

func (v *htmlGroups) HeaderStart(h string) {
	v.p.printf("    <h3><code>&lt;%s&gt;</code></h3><ul>\n", esc(h))
}

func (v *htmlGroups) HeaderEnd(string) { v.p.print("    </ul>\n") }

func (v *htmlGroups) FromHeader(f string) {
	v.p.printf("      <li>from <code>&lt;%s&gt;</code></li>\n", esc(f))
}

type htmlSecondary struct {
	p      *printer
	module string
}

func (v *htmlSecondary) Heading(m string) {
	v.p.printf("\n\n<h1 id=\"secondary-dependencies\">Secondary dependencies for <em>%s</em></h1>\n", esc(m))
}

func (v *htmlSecondary) ModuleStart(m string) {
	v.p.printf("  <h2><a href=\"%s.html\"><em>%s</em></a></h2><ul>\n", esc(m), esc(m))
	v.module = m
}

func (v *htmlSecondary) Adds(m string) {
	v.p.printf("    <li><a href=\"%s.html#%s\">adds <em>%s</em></a></li>\n", esc(v.module), esc(m), esc(m))
}

func (v *htmlSecondary) ModuleEnd(string) { v.p.print("  </ul>\n") }

type htmlHeader struct{ p *printer }

func (v *htmlHeader) Heading(h, m string) {
	v.p.printf("<h1>Inclusion report for <code>&lt;%s&gt;</code> (in module <em>%s</em>)</h1>\n", esc(h), esc(m))
}

func (v *htmlHeader) ModuleStart(m string) {
	v.p.printf("  <h2>From <a href=\"%s.html\"><em>%s</em></a></h2><ul>\n", esc(m), esc(m))
}

func (v *htmlHeader) Header(h string) {
	v.p.printf("    <li><code>&lt;%s&gt;</code></li>\n", esc(h))
}

func (v *htmlHeader) ModuleEnd(string) { v.p.print("  </ul>\n") }

type htmlSubset struct{ p *printer }

func (v *htmlSubset) Heading(m string) {
	v.p.printf("\n\n<h1 id=\"subset-dependencies\">Subset dependencies for <em>%s</em></h1>\n", esc(m))
}

func (v *htmlSubset) ModuleStart(m string) {
	v.p.printf("  <h2 id=\"subset-%s\"><a href=\"%s.html\"><em>%s</em></a></h2><ul>\n", esc(m), esc(m), esc(m))
}

func (v *htmlSubset) Path(path []string) {
	v.p.print("    <li>")
	for i, h := range path {
		if i > 0 {
			v.p.print(" &#8674; ")
		}
		v.p.printf("<code>%s</code>", esc(h))
	}
	v.p.print("</li>\n")
}

func (v *htmlSubset) ModuleEnd(string) { v.p.print("</ul>\n") }

type htmlLevels struct {
	p     *printer
	level int
}

func (v *htmlLevels) Begin() { v.p.print("<div id='module-levels'><h1>Module Levels</h1>\n") }
func (v *htmlLevels) End()   { v.p.print("</div>\n") }

func (v *htmlLevels) LevelStart(level int) {
	if libdep.IsUndetermined(level) {
		v.p.print("  <h2>Level <em>undetermined</em></h2>\n")
	} else {
		v.p.printf("  <h2 id='level:%d'>Level %d</h2>\n", level, level)
	}
	v.level = level
}

func (v *htmlLevels) LevelEnd(int) {}

func (v *htmlLevels) ModuleStart(m string) {
	v.p.printf("    <h3 id='%s'><a href=\"%s.html\">%s</a></h3><p class='primary-list'>", esc(m), esc(m), esc(m))
}

func (v *htmlLevels) ModuleEnd(string) { v.p.print("</p>\n") }

// Dependency emphasizes dependencies that sit just below the current level,
// the ones that pin the module where it is.
func (v *htmlLevels) Dependency(m string, level int) {
	v.p.print(" ")
	known := !libdep.IsUndetermined(level)
	important := known && level > 1 && level >= v.level-1
	if important {
		v.p.print("<strong>")
	}
	v.p.print(esc(m))
	if known {
		v.p.printf("<sup>%d</sup>", level)
	}
	if important {
		v.p.print("</strong>")
	}
}

type htmlWeights struct {
	p      *printer
	weight int
}

func (v *htmlWeights) Begin() { v.p.print("<div id='module-weights'>\n<h1>Module Weights</h1>\n") }
func (v *htmlWeights) End()   { v.p.print("</div>\n") }

func (v *htmlWeights) WeightStart(w int) {
	v.p.printf("  <h2 id='weight:%d'>Weight %d</h2>\n", w, w)
	v.weight = w
}

func (v *htmlWeights) WeightEnd(int) {}

func (v *htmlWeights) ModuleStart(m string) {
	v.p.printf("    <h3 id='%s'><a href=\"%s.html\">%s</a></h3>", esc(m), esc(m), esc(m))
}

func (v *htmlWeights) ModuleEnd(string) { v.p.print("\n") }
func (v *htmlWeights) PrimaryStart()    { v.p.print("<p class='primary-list'>") }

// Primary emphasizes dependencies carrying at least 80% of the module's own
// weight.
func (v *htmlWeights) Primary(m string, w int) {
	v.p.print(" ")
	heavy := float64(w) >= 0.8*float64(v.weight)
	if heavy {
		v.p.print("<strong>")
	}
	v.p.printf("%s<sup>%d</sup>", esc(m), w)
	if heavy {
		v.p.print("</strong>")
	}
}

func (v *htmlWeights) PrimaryEnd()               { v.p.print("</p>") }
func (v *htmlWeights) SecondaryStart()           { v.p.print("<p class='secondary-list'>") }
func (v *htmlWeights) Secondary(m string, _ int) { v.p.printf(" %s", esc(m)) }
func (v *htmlWeights) SecondaryEnd()             { v.p.print("</p>") }

type htmlOverview struct{ p *printer }

func (v *htmlOverview) Begin() { v.p.print("<div id='module-overview'><h1>Module Overview</h1>\n") }
func (v *htmlOverview) End()   { v.p.print("</div>\n") }

func (v *htmlOverview) ModuleStart(m string) {
	v.p.printf("  <h2 id='%s'><a href=\"%s.html\"><em>%s</em></a></h2><p class='primary-list'>", esc(m), esc(m), esc(m))
}

func (v *htmlOverview) Dependency(m string) { v.p.printf(" %s", esc(m)) }
func (v *htmlOverview) ModuleEnd(string)    { v.p.print("</p>\n") }
