package libdep

import "sort"

// maxSubsetPaths caps the example paths kept per reached module.
const maxSubsetPaths = 4

// SubsetReport lists, per reached module, the shortest include chains that
// lead into it from the start headers.
type SubsetReport struct {
	Module string        `json:"module"`
	Groups []SubsetGroup `json:"groups"`
}

// SubsetGroup holds up to four chains into one module, one per start
// header, in start header order.
type SubsetGroup struct {
	Module string     `json:"module"`
	Paths  [][]string `json:"paths"`
}

// Subset computes the subset report for start headers analyzed on behalf
// of module. Chains follow the graph's header-includes relation.
func (q *QueryBuilder) Subset(module string, start []string) *SubsetReport {
	return q.subsetWith(module, start, q.graph.Includes)
}

// subsetWith computes a subset report over an arbitrary includes function.
// Each start header is expanded breadth first with neighbors visited in
// sorted order, so the first chain found to a target is a shortest one and
// ties go to the earliest discovered.
func (q *QueryBuilder) subsetWith(module string, start []string, includes func(string) []string) *SubsetReport {
	starts := stringSet{}
	for _, h := range start {
		starts.add(h)
	}

	// owner -> start header -> chain
	best := map[string]map[string][]string{}

	for _, h := range starts.sorted() {
		paths := shortestPaths(h, includes)
		targets := make([]string, 0, len(paths))
		for t := range paths {
			targets = append(targets, t)
		}
		sort.Strings(targets)

		for _, t := range targets {
			owner, ok := q.reg.ModuleOf(t)
			if !ok {
				continue
			}
			byStart, ok := best[owner]
			if !ok {
				byStart = map[string][]string{}
				best[owner] = byStart
			}
			if cur, seen := byStart[h]; !seen || len(cur) > len(paths[t]) {
				byStart[h] = paths[t]
			}
		}
	}

	r := &SubsetReport{Module: module}
	owners := make([]string, 0, len(best))
	for m := range best {
		owners = append(owners, m)
	}
	sort.Strings(owners)
	for _, m := range owners {
		if m == module {
			continue
		}
		heads := make([]string, 0, len(best[m]))
		for h := range best[m] {
			heads = append(heads, h)
		}
		sort.Strings(heads)
		if len(heads) > maxSubsetPaths {
			heads = heads[:maxSubsetPaths]
		}
		g := SubsetGroup{Module: m}
		for _, h := range heads {
			g.Paths = append(g.Paths, best[m][h])
		}
		r.Groups = append(r.Groups, g)
	}
	return r
}

// shortestPaths returns, for every header reachable from start through at
// least one include, a shortest chain beginning with start and ending with
// the header.
func shortestPaths(start string, includes func(string) []string) map[string][]string {
	paths := map[string][]string{}
	queue := []string{start}
	chain := map[string][]string{start: {start}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range includes(cur) {
			if _, seen := paths[next]; seen {
				continue
			}
			p := make([]string, len(chain[cur])+1)
			copy(p, chain[cur])
			p[len(p)-1] = next
			paths[next] = p
			if _, queued := chain[next]; !queued {
				chain[next] = p
				queue = append(queue, next)
			}
		}
	}
	return paths
}
