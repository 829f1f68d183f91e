package libdep

// Graph is the snapshot of the four collection-wide relations. It is
// built once and never modified, so any number of queries may read it.
type Graph struct {
	reg    *Registry
	policy ScanPolicy

	// primary[a] holds b when a file of a includes a header of b, a != b.
	primary setMap
	// reverse is the inverse of primary.
	reverse setMap
	// headerDeps[h] holds the files of other modules that include h.
	headerDeps setMap
	// headerIncludes[f] holds every collection header f includes.
	headerIncludes setMap
}

func newGraph(reg *Registry, policy ScanPolicy) *Graph {
	return &Graph{
		reg:            reg,
		policy:         policy,
		primary:        setMap{},
		reverse:        setMap{},
		headerDeps:     setMap{},
		headerIncludes: setMap{},
	}
}

// accumulate adds one module's scan to the relations. Self edges are kept
// out of primary and reverse, and the UnknownModule bucket never becomes a
// module edge.
func (g *Graph) accumulate(d *Dependencies) {
	for _, m := range d.Modules(true) {
		cross := m != d.Module
		if cross && m != UnknownModule {
			g.primary.add(d.Module, m)
			g.reverse.add(m, d.Module)
		}
		for _, h := range d.Headers(m) {
			for _, f := range d.From(h) {
				if cross {
					g.headerDeps.add(h, f)
				}
				g.headerIncludes.add(f, h)
			}
		}
	}
}

// Registry returns the registry the graph was built from.
func (g *Graph) Registry() *Registry { return g.reg }

// Policy returns the scan policy the graph was built with.
func (g *Graph) Policy() ScanPolicy { return g.policy }

// Modules returns every registered module, sorted.
func (g *Graph) Modules() []string { return g.reg.Modules() }

// Primary returns the modules m depends on directly, sorted.
func (g *Graph) Primary(m string) []string { return g.primary.get(m) }

// Reverse returns the modules that depend directly on m, sorted.
func (g *Graph) Reverse(m string) []string { return g.reverse.get(m) }

// IncludedBy returns the files of other modules that include header, sorted.
func (g *Graph) IncludedBy(header string) []string { return g.headerDeps.get(header) }

// Includes returns the collection headers that file includes, sorted.
func (g *Graph) Includes(file string) []string { return g.headerIncludes.get(file) }
