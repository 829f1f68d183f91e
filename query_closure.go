package libdep

// Closure is the transitive expansion of a module's dependencies, with the
// step that introduced each newly reached module.
type Closure struct {
	Module string        `json:"module"`
	Start  []string      `json:"start"`
	Steps  []ClosureStep `json:"steps"`
}

// ClosureStep records that Module's primary dependencies added modules not
// yet reached.
type ClosureStep struct {
	Module string   `json:"module"`
	Adds   []string `json:"adds"`
}

// Additions returns every module added by some step, sorted. These are the
// secondary-only dependencies when the closure starts from the primary set.
func (c *Closure) Additions() []string {
	s := stringSet{}
	for _, st := range c.Steps {
		for _, m := range st.Adds {
			s.add(m)
		}
	}
	return s.sorted()
}

// Reachable returns the start set together with every addition, without
// the module itself, sorted.
func (c *Closure) Reachable() []string {
	s := stringSet{}
	for _, m := range c.Start {
		s.add(m)
	}
	for _, st := range c.Steps {
		for _, m := range st.Adds {
			s.add(m)
		}
	}
	delete(s, c.Module)
	return s.sorted()
}

// Secondary expands the primary dependencies of m to a fixed point.
func (q *QueryBuilder) Secondary(m string) (*Closure, error) {
	m, err := q.module("secondary", m)
	if err != nil {
		return nil, err
	}
	return q.closure(m, q.graph.Primary(m)), nil
}

// SecondaryFrom expands an arbitrary start set on behalf of m.
func (q *QueryBuilder) SecondaryFrom(m string, start []string) *Closure {
	return q.closure(NormalizeModule(m), start)
}

// closure grows the working set round by round. In each round every member
// of the set as it stood at the start of the round contributes its primary
// dependencies not yet in that set; the round's contributions are merged
// afterwards. It stops when a round adds nothing, which happens after at
// most one round per module.
func (q *QueryBuilder) closure(m string, start []string) *Closure {
	c := &Closure{Module: m, Start: append([]string(nil), start...)}

	deps := stringSet{}
	for _, s := range start {
		deps.add(s)
	}
	deps.add(m)

	for {
		next := deps.clone()
		for _, i := range deps.sorted() {
			var adds []string
			for _, j := range q.graph.Primary(i) {
				if !deps[j] {
					adds = append(adds, j)
				}
			}
			if len(adds) == 0 {
				continue
			}
			c.Steps = append(c.Steps, ClosureStep{Module: i, Adds: adds})
			for _, j := range adds {
				next.add(j)
			}
		}
		if len(next) == len(deps) {
			return c
		}
		deps = next
	}
}
