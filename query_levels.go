package libdep

import "sort"

// LevelReport buckets every module by its display level, lowest first.
// The undetermined bucket, if any, is last.
type LevelReport struct {
	Groups []LevelGroup `json:"groups"`
}

// LevelGroup holds the modules sharing one level.
type LevelGroup struct {
	Level        int           `json:"level"`
	Undetermined bool          `json:"undetermined,omitempty"`
	Modules      []ModuleLevel `json:"modules"`
}

// ModuleLevel is one module with the levels of its primary dependencies.
type ModuleLevel struct {
	Module       string            `json:"module"`
	Dependencies []LevelDependency `json:"dependencies"`
}

// LevelDependency is a primary dependency and its display level.
type LevelDependency struct {
	Module string `json:"module"`
	Level  int    `json:"level"`
}

// levelTable holds the dense-index form of the primary graph used to
// assign levels.
type levelTable struct {
	names   []string
	deps    [][]int
	closure []bitset
}

func (q *QueryBuilder) newLevelTable() *levelTable {
	names := q.reg.Modules()
	index := make(map[string]int, len(names))
	for i, m := range names {
		index[m] = i
	}
	t := &levelTable{
		names:   names,
		deps:    make([][]int, len(names)),
		closure: make([]bitset, len(names)),
	}
	for i, m := range names {
		t.closure[i] = newBitset(len(names))
		for _, d := range q.graph.Primary(m) {
			j, ok := index[d]
			if !ok {
				continue
			}
			t.deps[i] = append(t.deps[i], j)
			t.closure[i].set(j)
		}
	}
	return t
}

// close extends every row of the closure with the rows it reaches until no
// row grows.
func (t *levelTable) close() {
	n := len(t.names)
	for {
		grew := false
		for i := range n {
			for j := range n {
				if j != i && t.closure[i].has(j) && t.closure[i].union(t.closure[j]) {
					grew = true
				}
			}
		}
		if !grew {
			return
		}
	}
}

// assign returns the display level of every module, by dense index.
//
// Modules without dependencies are level 0. In round k of the acyclic pass
// a module whose dependencies yield exactly k gets level k; modules on a
// cycle never do. The cyclic pass then gives each remaining module a lower
// bound: a determined dependency contributes its level plus one, and an
// undetermined one contributes its own bound, plus one only when it cannot
// reach back to the module. A zero bound stays undetermined.
func (t *levelTable) assign() []int {
	n := len(t.names)
	level := make([]int, n)
	for i := range n {
		if len(t.deps[i]) > 0 {
			level[i] = UndeterminedLevel
		}
	}

	for k := 1; k < n; k++ {
		for i := range n {
			if !IsUndetermined(level[i]) {
				continue
			}
			l := 0
			for _, j := range t.deps[i] {
				l = max(l, level[j]+1)
			}
			if l == k {
				level[i] = l
			}
		}
	}

	t.close()

	minLevel := make([]int, n)
	for i := range n {
		if !IsUndetermined(level[i]) {
			minLevel[i] = level[i]
		}
	}
	for k := 1; k < n; k++ {
		for i := range n {
			if !IsUndetermined(level[i]) {
				continue
			}
			l := 0
			for _, j := range t.deps[i] {
				if !IsUndetermined(level[j]) {
					l = max(l, level[j]+1)
					continue
				}
				ml := minLevel[j]
				if !t.closure[j].has(i) {
					ml++
				}
				l = max(l, ml)
			}
			minLevel[i] = l
		}
	}

	display := make([]int, n)
	for i := range n {
		switch {
		case !IsUndetermined(level[i]):
			display[i] = level[i]
		case minLevel[i] != 0:
			display[i] = minLevel[i]
		default:
			display[i] = UndeterminedLevel
		}
	}
	return display
}

func (q *QueryBuilder) levelMap() map[string]int {
	t := q.newLevelTable()
	display := t.assign()
	out := make(map[string]int, len(t.names))
	for i, m := range t.names {
		out[m] = display[i]
	}
	return out
}

// Level returns the display level of m, which is UndeterminedLevel for a
// module on a cycle with no usable lower bound.
func (q *QueryBuilder) Level(m string) (int, error) {
	m, err := q.module("level", m)
	if err != nil {
		return 0, err
	}
	return q.levelMap()[m], nil
}

// Levels assigns a level to every module and buckets them.
func (q *QueryBuilder) Levels() *LevelReport {
	levels := q.levelMap()

	byLevel := map[int][]string{}
	for _, m := range q.reg.Modules() {
		l := levels[m]
		byLevel[l] = append(byLevel[l], m)
	}
	keys := make([]int, 0, len(byLevel))
	for l := range byLevel {
		keys = append(keys, l)
	}
	sort.Ints(keys)

	r := &LevelReport{}
	for _, l := range keys {
		g := LevelGroup{Level: l, Undetermined: IsUndetermined(l)}
		for _, m := range byLevel[l] {
			ml := ModuleLevel{Module: m}
			for _, d := range q.graph.Primary(m) {
				ml.Dependencies = append(ml.Dependencies, LevelDependency{Module: d, Level: levels[d]})
			}
			g.Modules = append(g.Modules, ml)
		}
		r.Groups = append(r.Groups, g)
	}
	return r
}
