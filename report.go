package libdep

// Report visitors. Each report kind has its own narrow interface and a
// Walk function that calls it: one heading, then groups in sorted order,
// each bracketed by start and end calls around its items. Renderers that
// emit flat text can leave the end calls empty.

// PrimaryVisitor renders a primary dependency report.
type PrimaryVisitor interface {
	Heading(module string)
	ModuleStart(module string)
	ModuleEnd(module string)
	HeaderStart(header string)
	HeaderEnd(header string)
	FromHeader(header string)
}

// WalkPrimary drives v over r.
func WalkPrimary(r *PrimaryReport, v PrimaryVisitor) {
	v.Heading(r.Module)
	walkGroups(r.Groups, v)
}

// ReverseVisitor renders a reverse dependency report. Groups are the
// dependent modules; headers are the subject module's headers they include.
type ReverseVisitor interface {
	Heading(module string)
	ModuleStart(module string)
	ModuleEnd(module string)
	HeaderStart(header string)
	HeaderEnd(header string)
	FromHeader(header string)
}

// WalkReverse drives v over r.
func WalkReverse(r *ReverseReport, v ReverseVisitor) {
	v.Heading(r.Module)
	walkGroups(r.Groups, v)
}

type groupVisitor interface {
	ModuleStart(module string)
	ModuleEnd(module string)
	HeaderStart(header string)
	HeaderEnd(header string)
	FromHeader(header string)
}

func walkGroups(groups []DependencyGroup, v groupVisitor) {
	for _, g := range groups {
		v.ModuleStart(g.Module)
		for _, h := range g.Headers {
			v.HeaderStart(h.Header)
			for _, f := range h.From {
				v.FromHeader(f)
			}
			v.HeaderEnd(h.Header)
		}
		v.ModuleEnd(g.Module)
	}
}

// SecondaryVisitor renders a closure.
type SecondaryVisitor interface {
	Heading(module string)
	ModuleStart(module string)
	Adds(module string)
	ModuleEnd(module string)
}

// WalkSecondary drives v over c, one group per closure step.
func WalkSecondary(c *Closure, v SecondaryVisitor) {
	v.Heading(c.Module)
	for _, st := range c.Steps {
		v.ModuleStart(st.Module)
		for _, a := range st.Adds {
			v.Adds(a)
		}
		v.ModuleEnd(st.Module)
	}
}

// HeaderVisitor renders a header inclusion report.
type HeaderVisitor interface {
	Heading(header, module string)
	ModuleStart(module string)
	Header(header string)
	ModuleEnd(module string)
}

// WalkHeader drives v over r.
func WalkHeader(r *HeaderReport, v HeaderVisitor) {
	v.Heading(r.Header, r.Module)
	for _, g := range r.Groups {
		v.ModuleStart(g.Module)
		for _, h := range g.Headers {
			v.Header(h)
		}
		v.ModuleEnd(g.Module)
	}
}

// LevelVisitor renders a level report.
type LevelVisitor interface {
	Begin()
	LevelStart(level int)
	ModuleStart(module string)
	Dependency(module string, level int)
	ModuleEnd(module string)
	LevelEnd(level int)
	End()
}

// WalkLevels drives v over r.
func WalkLevels(r *LevelReport, v LevelVisitor) {
	v.Begin()
	for _, g := range r.Groups {
		v.LevelStart(g.Level)
		for _, m := range g.Modules {
			v.ModuleStart(m.Module)
			for _, d := range m.Dependencies {
				v.Dependency(d.Module, d.Level)
			}
			v.ModuleEnd(m.Module)
		}
		v.LevelEnd(g.Level)
	}
	v.End()
}

// WeightVisitor renders a weight report. The primary and secondary lists
// of a module are bracketed only when non-empty.
type WeightVisitor interface {
	Begin()
	WeightStart(weight int)
	ModuleStart(module string)
	PrimaryStart()
	Primary(module string, weight int)
	PrimaryEnd()
	SecondaryStart()
	Secondary(module string, weight int)
	SecondaryEnd()
	ModuleEnd(module string)
	WeightEnd(weight int)
	End()
}

// WalkWeights drives v over r.
func WalkWeights(r *WeightReport, v WeightVisitor) {
	v.Begin()
	for _, g := range r.Groups {
		v.WeightStart(g.Weight)
		for _, m := range g.Modules {
			v.ModuleStart(m.Module)
			if len(m.Primary) > 0 {
				v.PrimaryStart()
				for _, d := range m.Primary {
					v.Primary(d.Module, d.Weight)
				}
				v.PrimaryEnd()
			}
			if len(m.Secondary) > 0 {
				v.SecondaryStart()
				for _, d := range m.Secondary {
					v.Secondary(d.Module, d.Weight)
				}
				v.SecondaryEnd()
			}
			v.ModuleEnd(m.Module)
		}
		v.WeightEnd(g.Weight)
	}
	v.End()
}

// SubsetVisitor renders a subset report.
type SubsetVisitor interface {
	Heading(module string)
	ModuleStart(module string)
	Path(path []string)
	ModuleEnd(module string)
}

// WalkSubset drives v over r.
func WalkSubset(r *SubsetReport, v SubsetVisitor) {
	v.Heading(r.Module)
	for _, g := range r.Groups {
		v.ModuleStart(g.Module)
		for _, p := range g.Paths {
			v.Path(p)
		}
		v.ModuleEnd(g.Module)
	}
}

// OverviewVisitor renders the module overview.
type OverviewVisitor interface {
	Begin()
	ModuleStart(module string)
	Dependency(module string)
	ModuleEnd(module string)
	End()
}

// WalkOverview drives v over the overview lines.
func WalkOverview(lines []ModuleDependencies, v OverviewVisitor) {
	v.Begin()
	for _, l := range lines {
		v.ModuleStart(l.Module)
		for _, d := range l.Dependencies {
			v.Dependency(d)
		}
		v.ModuleEnd(l.Module)
	}
	v.End()
}
