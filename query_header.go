package libdep

import "fmt"

// HeaderReport lists the files of other modules that include one header,
// grouped by the module they belong to.
type HeaderReport struct {
	Header string        `json:"header"`
	Module string        `json:"module"`
	Groups []HeaderGroup `json:"groups"`
}

// HeaderGroup is the set of including files from one module.
type HeaderGroup struct {
	Module  string   `json:"module"`
	Headers []string `json:"headers"`
}

// HeaderInclusion reports who includes header from outside its module.
// Including files outside every module are grouped under "".
func (q *QueryBuilder) HeaderInclusion(header string) (*HeaderReport, error) {
	module, ok := q.reg.Classify(header)
	includers := q.graph.IncludedBy(header)
	if !ok || (module == UnknownModule && len(includers) == 0) {
		return nil, fmt.Errorf("libdep: header: %w: %q", ErrUnknownHeader, header)
	}

	byModule := setMap{}
	for _, f := range includers {
		byModule.add(q.reg.OwnerOf(f), f)
	}

	r := &HeaderReport{Header: header, Module: module}
	for _, m := range byModule.keys() {
		r.Groups = append(r.Groups, HeaderGroup{Module: m, Headers: byModule.get(m)})
	}
	return r, nil
}

// ReverseReport lists, per dependent module, which headers of the subject
// module it includes and from where.
type ReverseReport struct {
	Module string            `json:"module"`
	Groups []DependencyGroup `json:"groups"`
}

// ReverseDependencies builds the reverse report of m.
func (q *QueryBuilder) ReverseDependencies(m string) (*ReverseReport, error) {
	m, err := q.module("reverse", m)
	if err != nil {
		return nil, err
	}

	r := &ReverseReport{Module: m}
	headers := q.reg.Headers(m)
	for _, dep := range q.graph.Reverse(m) {
		g := DependencyGroup{Module: dep}
		for _, h := range headers {
			var from []string
			for _, f := range q.graph.IncludedBy(h) {
				if q.reg.OwnerOf(f) == dep {
					from = append(from, f)
				}
			}
			if len(from) > 0 {
				g.Headers = append(g.Headers, HeaderSource{Header: h, From: from})
			}
		}
		r.Groups = append(r.Groups, g)
	}
	return r, nil
}
