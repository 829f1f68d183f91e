package render

import (
	"strings"

	"github.com/jward/libdep"
)

type textRenderer struct {
	p *printer
}

func (r *textRenderer) Primary(rep *libdep.PrimaryReport) {
	libdep.WalkPrimary(rep, &textGroups{p: r.p, kind: "Primary"})
}

func (r *textRenderer) Reverse(rep *libdep.ReverseReport) {
	libdep.WalkReverse(rep, &textGroups{p: r.p, kind: "Reverse"})
}

func (r *textRenderer) Secondary(c *libdep.Closure) {
	libdep.WalkSecondary(c, &textSecondary{p: r.p})
}

func (r *textRenderer) Header(rep *libdep.HeaderReport) {
	libdep.WalkHeader(rep, &textHeader{p: r.p})
}

func (r *textRenderer) Subset(rep *libdep.SubsetReport) {
	libdep.WalkSubset(rep, &textSubset{p: r.p})
}

func (r *textRenderer) Levels(rep *libdep.LevelReport) {
	libdep.WalkLevels(rep, &textLevels{p: r.p})
}

func (r *textRenderer) Weights(rep *libdep.WeightReport) {
	libdep.WalkWeights(rep, &textWeights{p: r.p})
}

func (r *textRenderer) Overview(lines []libdep.ModuleDependencies) {
	libdep.WalkOverview(lines, &textOverview{p: r.p})
}

func (r *textRenderer) Close() error { return r.p.err }

// textGroups renders primary and reverse reports, which share a layout.
type textGroups struct {
	p    *printer
	kind string
}

func (v *textGroups) Heading(m string) {
	v.p.printf("%s dependencies for %s:\n\n", v.kind, m)
}
func (v *textGroups) ModuleStart(m string) { v.p.printf("%s:\n", m) }
func (v *textGroups) ModuleEnd(string)     { v.p.print("\n") }
func (v *textGroups) HeaderStart(h string) { v.p.printf("    <%s>\n", h) }
func (v *textGroups) HeaderEnd(string)     {}
func (v *textGroups) FromHeader(f string)  { v.p.printf("        from <%s>\n", f) }

type textSecondary struct{ p *printer }

func (v *textSecondary) Heading(m string)     { v.p.printf("Secondary dependencies for %s:\n\n", m) }
func (v *textSecondary) ModuleStart(m string) { v.p.printf("%s:\n", m) }
func (v *textSecondary) Adds(m string)        { v.p.printf("    adds %s\n", m) }
func (v *textSecondary) ModuleEnd(string)     { v.p.print("\n") }

type textHeader struct{ p *printer }

func (v *textHeader) Heading(h, m string) {
	v.p.printf("Inclusion report for <%s> (in module %s):\n\n", h, m)
}
func (v *textHeader) ModuleStart(m string) { v.p.printf("    from %s:\n", m) }
func (v *textHeader) Header(h string)      { v.p.printf("        <%s>\n", h) }
func (v *textHeader) ModuleEnd(string)     { v.p.print("\n") }

type textSubset struct{ p *printer }

func (v *textSubset) Heading(m string)     { v.p.printf("Subset dependencies for %s:\n\n", m) }
func (v *textSubset) ModuleStart(m string) { v.p.printf("%s:\n", m) }
func (v *textSubset) Path(path []string)   { v.p.printf("  %s\n", strings.Join(path, " -> ")) }
func (v *textSubset) ModuleEnd(string)     { v.p.print("\n") }

type textLevels struct {
	p     *printer
	level int
}

func (v *textLevels) Begin() { v.p.print("Module Levels:\n\n") }
func (v *textLevels) End()   {}

func (v *textLevels) LevelStart(level int) {
	if libdep.IsUndetermined(level) {
		v.p.print("Level (undetermined):\n")
	} else {
		v.p.printf("Level %d:\n", level)
	}
	v.level = level
}

func (v *textLevels) LevelEnd(int) { v.p.print("\n") }

func (v *textLevels) ModuleStart(m string) {
	v.p.printf("    %s", m)
	if v.level > 0 {
		v.p.print(" ->")
	}
}

func (v *textLevels) ModuleEnd(string) { v.p.print("\n") }

func (v *textLevels) Dependency(m string, level int) {
	if libdep.IsUndetermined(level) {
		v.p.printf(" %s(-)", m)
		return
	}
	v.p.printf(" %s(%d)", m, level)
}

type textWeights struct{ p *printer }

func (v *textWeights) Begin()                  { v.p.print("Module Weights:\n\n") }
func (v *textWeights) End()                    {}
func (v *textWeights) WeightStart(w int)       { v.p.printf("Weight %d:\n", w) }
func (v *textWeights) WeightEnd(int)           { v.p.print("\n") }
func (v *textWeights) ModuleStart(m string)    { v.p.printf("    %s", m) }
func (v *textWeights) ModuleEnd(string)        { v.p.print("\n") }
func (v *textWeights) PrimaryStart()           { v.p.print(" ->") }
func (v *textWeights) Primary(m string, w int) { v.p.printf(" %s(%d)", m, w) }
func (v *textWeights) PrimaryEnd()             {}
func (v *textWeights) SecondaryStart()         { v.p.print(" ->") }
func (v *textWeights) Secondary(m string, _ int) {
	v.p.printf(" %s", m)
}
func (v *textWeights) SecondaryEnd() {}

type textOverview struct {
	p    *printer
	deps bool
}

func (v *textOverview) Begin() { v.p.print("Module Overview:\n\n") }
func (v *textOverview) End()   {}

func (v *textOverview) ModuleStart(m string) {
	v.p.print(m)
	v.deps = false
}

func (v *textOverview) Dependency(m string) {
	if !v.deps {
		v.p.print(" ->")
		v.deps = true
	}
	v.p.printf(" %s", m)
}

func (v *textOverview) ModuleEnd(string) { v.p.print("\n") }
