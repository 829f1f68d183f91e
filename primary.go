package libdep

// ScanPolicy selects which trees of a module are scanned in addition to
// its include tree.
type ScanPolicy struct {
	Sources bool
	Tests   bool
}

// Dependencies is the result of scanning one module: the headers it
// references grouped by owning module, and for each referenced header the
// local files that include it.
type Dependencies struct {
	Module string
	deps   setMap
	from   setMap
}

func newDependencies(module string) *Dependencies {
	return &Dependencies{Module: module, deps: setMap{}, from: setMap{}}
}

// record files one include of target by file. Targets outside the
// collection are dropped.
func (d *Dependencies) record(reg *Registry, file, target string) {
	m, ok := reg.Classify(target)
	if !ok {
		return
	}
	d.deps.add(m, target)
	d.from.add(target, file)
}

// Modules returns the referenced modules, sorted. The scanned module itself
// is included only when includeSelf is set. UnknownModule appears when an
// unresolved reference was seen.
func (d *Dependencies) Modules(includeSelf bool) []string {
	var out []string
	for _, m := range d.deps.keys() {
		if m == d.Module && !includeSelf {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Requirements returns the referenced modules other than the scanned module
// and UnknownModule, sorted. This is the set build and package metadata
// declare.
func (d *Dependencies) Requirements() []string {
	var out []string
	for _, m := range d.deps.keys() {
		if m == d.Module || m == UnknownModule {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Headers returns the headers of module referenced by the scan, sorted.
func (d *Dependencies) Headers(module string) []string { return d.deps.get(module) }

// From returns the local files that include header, sorted.
func (d *Dependencies) From(header string) []string { return d.from.get(header) }

// PrimaryReport is the primary dependency report of one module.
type PrimaryReport struct {
	Module string            `json:"module"`
	Groups []DependencyGroup `json:"groups"`
}

// DependencyGroup lists the headers of one depended-on module.
type DependencyGroup struct {
	Module  string         `json:"module"`
	Headers []HeaderSource `json:"headers"`
}

// HeaderSource is one referenced header and the local files including it.
type HeaderSource struct {
	Header string   `json:"header"`
	From   []string `json:"from"`
}

// Report converts d into a PrimaryReport.
func (d *Dependencies) Report(includeSelf bool) *PrimaryReport {
	r := &PrimaryReport{Module: d.Module}
	for _, m := range d.Modules(includeSelf) {
		g := DependencyGroup{Module: m}
		for _, h := range d.Headers(m) {
			g.Headers = append(g.Headers, HeaderSource{Header: h, From: d.From(h)})
		}
		r.Groups = append(r.Groups, g)
	}
	return r
}
