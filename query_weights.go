package libdep

import "sort"

// WeightReport buckets every module by weight, lightest first.
type WeightReport struct {
	Groups []WeightGroup `json:"groups"`
}

// WeightGroup holds the modules sharing one weight.
type WeightGroup struct {
	Weight  int            `json:"weight"`
	Modules []ModuleWeight `json:"modules"`
}

// ModuleWeight is one module with its primary and secondary-only
// dependencies, each annotated with its own weight.
type ModuleWeight struct {
	Module    string           `json:"module"`
	Primary   []WeightedModule `json:"primary"`
	Secondary []WeightedModule `json:"secondary"`
}

// WeightedModule is a module and its weight.
type WeightedModule struct {
	Module string `json:"module"`
	Weight int    `json:"weight"`
}

// weightTable holds the secondary-only additions and weight of every
// module.
type weightTable struct {
	secondary map[string][]string
	weight    map[string]int
}

func (q *QueryBuilder) newWeightTable() *weightTable {
	t := &weightTable{
		secondary: map[string][]string{},
		weight:    map[string]int{},
	}
	for _, m := range q.reg.Modules() {
		primary := q.graph.Primary(m)
		adds := q.closure(m, primary).Additions()
		t.secondary[m] = adds
		t.weight[m] = len(primary) + len(adds)
	}
	return t
}

// Weight returns |primary(m)| plus the number of modules m reaches only
// transitively.
func (q *QueryBuilder) Weight(m string) (int, error) {
	m, err := q.module("weight", m)
	if err != nil {
		return 0, err
	}
	return len(q.graph.Primary(m)) + len(q.closure(m, q.graph.Primary(m)).Additions()), nil
}

// Weights computes every module's weight and buckets them.
func (q *QueryBuilder) Weights() *WeightReport {
	t := q.newWeightTable()

	byWeight := map[int][]string{}
	for _, m := range q.reg.Modules() {
		w := t.weight[m]
		byWeight[w] = append(byWeight[w], m)
	}
	keys := make([]int, 0, len(byWeight))
	for w := range byWeight {
		keys = append(keys, w)
	}
	sort.Ints(keys)

	r := &WeightReport{}
	for _, w := range keys {
		g := WeightGroup{Weight: w}
		for _, m := range byWeight[w] {
			mw := ModuleWeight{Module: m}
			for _, d := range q.graph.Primary(m) {
				mw.Primary = append(mw.Primary, WeightedModule{Module: d, Weight: t.weight[d]})
			}
			for _, d := range t.secondary[m] {
				mw.Secondary = append(mw.Secondary, WeightedModule{Module: d, Weight: t.weight[d]})
			}
			g.Modules = append(g.Modules, mw)
		}
		r.Groups = append(r.Groups, g)
	}
	return r
}
