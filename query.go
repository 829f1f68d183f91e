package libdep

import (
	"fmt"
	"sort"
	"strings"
)

// QueryBuilder answers read-only questions over one Graph snapshot.
type QueryBuilder struct {
	graph *Graph
	reg   *Registry
}

// NewQueryBuilder returns a QueryBuilder over g.
func NewQueryBuilder(g *Graph) *QueryBuilder {
	return &QueryBuilder{graph: g, reg: g.Registry()}
}

// Graph returns the snapshot the builder reads.
func (q *QueryBuilder) Graph() *Graph { return q.graph }

// Registry returns the registry of the snapshot.
func (q *QueryBuilder) Registry() *Registry { return q.reg }

// Modules returns every registered module, sorted.
func (q *QueryBuilder) Modules() []string { return q.reg.Modules() }

func (q *QueryBuilder) module(op, m string) (string, error) {
	m = NormalizeModule(m)
	if !q.reg.HasModule(m) {
		return "", fmt.Errorf("libdep: %s: %w: %q", op, ErrUnknownModule, m)
	}
	return m, nil
}

// Primary returns the modules m depends on directly.
func (q *QueryBuilder) Primary(m string) ([]string, error) {
	m, err := q.module("primary", m)
	if err != nil {
		return nil, err
	}
	return q.graph.Primary(m), nil
}

// Reverse returns the modules that depend directly on m.
func (q *QueryBuilder) Reverse(m string) ([]string, error) {
	m, err := q.module("reverse", m)
	if err != nil {
		return nil, err
	}
	return q.graph.Reverse(m), nil
}

// ModuleDependencies is one line of the module overview.
type ModuleDependencies struct {
	Module       string   `json:"module"`
	Dependencies []string `json:"dependencies"`
}

// Overview returns every module with its primary dependencies.
func (q *QueryBuilder) Overview() []ModuleDependencies {
	var out []ModuleDependencies
	for _, m := range q.reg.Modules() {
		out = append(out, ModuleDependencies{Module: m, Dependencies: q.graph.Primary(m)})
	}
	return out
}

// ExceptionGroup lists the headers of one module that sit outside its
// conventional include directory.
type ExceptionGroup struct {
	Module  string   `json:"module"`
	Headers []string `json:"headers"`
}

// Exceptions returns, per module, the headers that are neither below
// "<prefix><module path>/" nor equal to "<prefix><module path>.hpp".
func (q *QueryBuilder) Exceptions() []ExceptionGroup {
	layout := q.reg.Layout()
	var out []ExceptionGroup
	for _, m := range q.reg.Modules() {
		base := layout.Prefix + ModulePath(m)
		var odd []string
		for _, h := range q.reg.Headers(m) {
			if strings.HasPrefix(h, base+"/") || h == base+".hpp" {
				continue
			}
			odd = append(odd, h)
		}
		if len(odd) > 0 {
			out = append(out, ExceptionGroup{Module: m, Headers: odd})
		}
	}
	return out
}

// Cycles returns the strongly connected components of the primary graph
// that contain more than one module, each sorted, ordered by first member.
func (q *QueryBuilder) Cycles() [][]string {
	type nodeInfo struct {
		index   int
		lowlink int
		onStack bool
	}
	info := map[string]*nodeInfo{}
	index := 0
	var stack []string
	var result [][]string

	var strongconnect func(v string)
	strongconnect = func(v string) {
		ni := &nodeInfo{index: index, lowlink: index, onStack: true}
		info[v] = ni
		index++
		stack = append(stack, v)

		for _, w := range q.graph.Primary(v) {
			wInfo, visited := info[w]
			if !visited {
				strongconnect(w)
				wInfo = info[w]
				if wInfo.lowlink < ni.lowlink {
					ni.lowlink = wInfo.lowlink
				}
			} else if wInfo.onStack {
				if wInfo.index < ni.lowlink {
					ni.lowlink = wInfo.index
				}
			}
		}

		if ni.lowlink == ni.index {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				info[w].onStack = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			if len(scc) > 1 {
				sort.Strings(scc)
				result = append(result, scc)
			}
		}
	}

	for _, m := range q.reg.Modules() {
		if _, visited := info[m]; !visited {
			strongconnect(m)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i][0] < result[j][0]
	})
	return result
}
